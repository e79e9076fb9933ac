package interfaces

import (
	"context"
	"encoding/json"

	"github.com/iwtcode/machineMonitor/internal/domain/entities"
	"github.com/iwtcode/machineMonitor/internal/domain/models"
)

// SnapshotCache хранит последнюю телеметрию и состояние каждого станка
type SnapshotCache interface {
	Get(machineID string) (*models.CachedSnapshot, bool)
	Set(machineID string, snapshot models.CachedSnapshot)
	Delete(machineID string)
}

// Broadcaster рассылает снимок парка подписчикам
type Broadcaster interface {
	Publish(ctx context.Context, snapshot models.FleetSnapshot) error
	Close() error
}

// TelemetrySource снимает и нормализует телеметрию одного станка
type TelemetrySource interface {
	Poll(ctx context.Context, machine entities.Machine) models.PollResult
}

// MonitorService - жизненный цикл опроса и ручные операции с интервалами
type MonitorService interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Reset(ctx context.Context) error
	State() string
	PollOnce(ctx context.Context) (models.FleetSnapshot, error)
	LastSnapshot() (models.FleetSnapshot, error)
	CloseStatus(machineID string) (*entities.MachineStatus, error)
	CreateStatus(machineID string, state models.State) (*entities.MachineStatus, error)
}

// AnalyticsService - агрегирование истории интервалов
type AnalyticsService interface {
	Overview(query models.OverviewQuery) (*models.Overview, error)
	Timeline() (*models.Timeline, error)
}

// AdapterControl - служебные команды внешнему адаптеру FANUC
type AdapterControl interface {
	ResetFanucAdapter(ctx context.Context) (json.RawMessage, error)
}
