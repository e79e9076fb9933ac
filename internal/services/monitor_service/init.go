package monitor_service

import (
	"sync"
	"time"

	"github.com/iwtcode/machineMonitor/internal/config"
	"github.com/iwtcode/machineMonitor/internal/domain/models"
	"github.com/iwtcode/machineMonitor/internal/interfaces"
	"github.com/iwtcode/machineMonitor/internal/middleware/logging"
	"github.com/iwtcode/machineMonitor/internal/services/ledger"
)

// Состояния жизненного цикла мониторинга
const (
	StateStopped  = "STOPPED"
	StateStarting = "STARTING"
	StateRunning  = "RUNNING"
	StateStopping = "STOPPING"
)

// Observer получает показатели проходов опроса
type Observer interface {
	ObservePass(d time.Duration)
	PollFailure(kind models.FailureKind)
	SetFleet(snapshot models.FleetSnapshot)
}

type monitorService struct {
	machines    interfaces.MachineRepository
	source      interfaces.TelemetrySource
	ledger      *ledger.Ledger
	cache       interfaces.SnapshotCache
	broadcaster interfaces.Broadcaster
	obs         Observer
	logger      *logging.Logger

	interval    time.Duration
	concurrency int
	now         func() time.Time

	mu     sync.Mutex
	state  string
	cancel func()
	done   chan struct{}

	// passMu не дает ручному PollOnce и таймеру выполнять проходы одновременно
	passMu sync.Mutex

	lastMu sync.RWMutex
	last   models.FleetSnapshot
}

func NewMonitorService(
	cfg *config.AppConfig,
	machines interfaces.MachineRepository,
	source interfaces.TelemetrySource,
	ledger *ledger.Ledger,
	cache interfaces.SnapshotCache,
	broadcaster interfaces.Broadcaster,
	obs Observer,
	logger *logging.Logger,
) interfaces.MonitorService {
	interval := cfg.Monitor.PollInterval
	if interval <= 0 {
		interval = time.Second
	}
	concurrency := cfg.Monitor.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	return &monitorService{
		machines:    machines,
		source:      source,
		ledger:      ledger,
		cache:       cache,
		broadcaster: broadcaster,
		obs:         obs,
		logger:      logger.WithPrefix("POLLER"),
		interval:    interval,
		concurrency: concurrency,
		now:         func() time.Time { return time.Now().UTC() },
		state:       StateStopped,
	}
}

func (s *monitorService) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
