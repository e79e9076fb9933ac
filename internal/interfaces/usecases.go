package interfaces

import (
	"context"
	"encoding/json"

	"github.com/iwtcode/machineMonitor/internal/domain/entities"
	"github.com/iwtcode/machineMonitor/internal/domain/models"
)

// Usecases - это агрегирующий интерфейс для всех use cases
type Usecases interface {
	StartMonitoring(ctx context.Context) error
	StopMonitoring(ctx context.Context) error
	ResetMonitoring(ctx context.Context) error
	MonitorState() string
	PollOnce(ctx context.Context) (models.FleetSnapshot, error)
	CurrentSnapshot() (models.FleetSnapshot, error)

	GetOverview(startDate, endDate, view string, utcOffsetMinutes int) (*models.Overview, error)
	GetTimeline() (*models.Timeline, error)

	CloseStatus(machineID string) (*entities.MachineStatus, error)
	CreateStatus(machineID string, state models.State) (*entities.MachineStatus, error)

	ListMachines() ([]entities.Machine, error)
	CreateMachine(req models.MachineRequest) (*entities.Machine, error)
	UpdateMachine(id string, req models.MachineRequest) (*entities.Machine, error)

	ResetFanucAdapter(ctx context.Context) (json.RawMessage, error)
}
