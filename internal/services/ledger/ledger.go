package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/iwtcode/machineMonitor/internal/domain/entities"
	"github.com/iwtcode/machineMonitor/internal/domain/models"
	"github.com/iwtcode/machineMonitor/internal/interfaces"
	"github.com/iwtcode/machineMonitor/internal/middleware/logging"
	apperrors "github.com/iwtcode/machineMonitor/pkg/errors"
)

// Observer получает уведомления об открытии нового интервала
type Observer interface {
	Transition(from, to models.State)
}

// Ledger поддерживает инвариант: у станка не больше одного открытого интервала.
// Записи одного станка сериализуются; CloseAll исключает все остальные записи.
type Ledger struct {
	repo   interfaces.MachineStatusRepository
	logger *logging.Logger
	obs    Observer
	now    func() time.Time

	global sync.RWMutex
	mu     sync.Mutex
	locks  map[string]*sync.Mutex
}

func New(repo interfaces.MachineStatusRepository, obs Observer, logger *logging.Logger) *Ledger {
	return &Ledger{
		repo:   repo,
		logger: logger.WithPrefix("LEDGER"),
		obs:    obs,
		now:    Now,
		locks:  make(map[string]*sync.Mutex),
	}
}

// Now - часы леджера. Время усекается до миллисекунд, чтобы duration совпадала с endTime-startTime точно.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// WithClock подменяет часы, используется в тестах
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

func (l *Ledger) lock(machineID string) func() {
	l.global.RLock()
	l.mu.Lock()
	m, ok := l.locks[machineID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[machineID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		l.global.RUnlock()
	}
}

// Apply фиксирует классификацию. Если открытый интервал уже в том же состоянии, ничего не меняется.
// Возвращает true, если был открыт новый интервал.
func (l *Ledger) Apply(machineID string, state models.State, t models.Telemetry) (bool, error) {
	unlock := l.lock(machineID)
	defer unlock()

	var (
		changed bool
		from    models.State
	)
	err := l.repo.Transaction(func(tx interfaces.MachineStatusRepository) error {
		open, err := tx.FindOpen(machineID)
		if err != nil {
			return err
		}

		if len(open) > 0 && open[0].State == state {
			return nil
		}
		if len(open) > 0 {
			from = open[0].State
		}

		now := l.now()
		if _, err := tx.CloseOpen(machineID, now); err != nil {
			return err
		}
		changed = true
		return tx.Create(entities.NewMachineStatus(machineID, state, t, now))
	})
	if err != nil {
		return false, fmt.Errorf("apply %s for machine %s: %w", state, machineID, err)
	}

	if changed {
		l.logger.Info("Machine state changed", "machineID", machineID, "from", from, "to", state)
		if l.obs != nil {
			l.obs.Transition(from, state)
		}
	}
	return changed, nil
}

// CloseAll закрывает все открытые интервалы системы. Вызывается при остановке мониторинга.
func (l *Ledger) CloseAll() ([]entities.MachineStatus, error) {
	l.global.Lock()
	defer l.global.Unlock()

	var closed []entities.MachineStatus
	err := l.repo.Transaction(func(tx interfaces.MachineStatusRepository) error {
		var err error
		closed, err = tx.CloseAllOpen(l.now())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("close all open intervals: %w", err)
	}

	l.logger.Info("Open intervals closed", "count", len(closed))
	return closed, nil
}

// CloseStatus вручную закрывает открытый интервал станка
func (l *Ledger) CloseStatus(machineID string) (*entities.MachineStatus, error) {
	unlock := l.lock(machineID)
	defer unlock()

	var closed []entities.MachineStatus
	err := l.repo.Transaction(func(tx interfaces.MachineStatusRepository) error {
		var err error
		closed, err = tx.CloseOpen(machineID, l.now())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("close status for machine %s: %w", machineID, err)
	}
	if len(closed) == 0 {
		return nil, fmt.Errorf("machine %s: %w", machineID, apperrors.ErrStatusNotFound)
	}

	latest := closed[0]
	for _, s := range closed[1:] {
		if s.StartTime.After(latest.StartTime) {
			latest = s
		}
	}
	l.logger.Info("Status closed manually", "machineID", machineID, "state", latest.State, "duration", latest.Duration)
	return &latest, nil
}

// CreateStatus вручную открывает интервал в заданном состоянии, закрывая текущий.
// В отличие от Apply, интервал открывается даже при совпадении состояния.
func (l *Ledger) CreateStatus(machineID string, state models.State, t models.Telemetry) (*entities.MachineStatus, error) {
	if !state.Valid() {
		return nil, fmt.Errorf("%q: %w", state, apperrors.ErrInvalidState)
	}

	unlock := l.lock(machineID)
	defer unlock()

	var created *entities.MachineStatus
	err := l.repo.Transaction(func(tx interfaces.MachineStatusRepository) error {
		now := l.now()
		if _, err := tx.CloseOpen(machineID, now); err != nil {
			return err
		}
		created = entities.NewMachineStatus(machineID, state, t, now)
		return tx.Create(created)
	})
	if err != nil {
		return nil, fmt.Errorf("create status for machine %s: %w", machineID, err)
	}

	l.logger.Info("Status created manually", "machineID", machineID, "state", state)
	return created, nil
}
