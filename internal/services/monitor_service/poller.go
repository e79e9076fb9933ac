package monitor_service

import (
	"context"
	"fmt"
	"time"

	"github.com/iwtcode/machineMonitor/internal/domain/entities"
	"github.com/iwtcode/machineMonitor/internal/domain/models"
	"github.com/iwtcode/machineMonitor/internal/services/classifier"
	"golang.org/x/sync/errgroup"
)

// Start запускает периодический опрос. Повторный вызов при работающем мониторинге ничего не делает.
// Если справочник станков недоступен, мониторинг не запускается.
func (s *monitorService) Start(_ context.Context) error {
	s.mu.Lock()
	if s.state != StateStopped {
		s.mu.Unlock()
		return nil
	}
	s.state = StateStarting
	s.mu.Unlock()

	machines, err := s.machines.ListEnabled()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = StateStopped
		return fmt.Errorf("не удалось прочитать справочник станков: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	s.state = StateRunning

	go s.loop(runCtx, done)

	s.logger.Info("Monitoring started", "machines", len(machines), "interval", s.interval, "concurrency", s.concurrency)
	return nil
}

// loop - единственная горутина таймера, поэтому проходы не перекрываются.
// Тики, пришедшие во время прохода, отбрасываются.
func (s *monitorService) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug("Polling goroutine started")
	defer s.logger.Debug("Polling goroutine stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.PollOnce(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error("Poll pass failed", "error", err)
			}
		}
	}
}

// Stop останавливает таймер, прерывает запросы в полете и закрывает все открытые интервалы
func (s *monitorService) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return nil
	}
	s.state = StateStopping
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	cancel()
	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("Polling goroutine did not stop in time", "error", ctx.Err())
	}

	s.passMu.Lock()
	closed, err := s.ledger.CloseAll()
	if err == nil {
		for _, st := range closed {
			s.cache.Delete(st.MachineID)
		}
	}
	s.passMu.Unlock()

	s.mu.Lock()
	s.state = StateStopped
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Failed to close open intervals on stop", "error", err)
		return err
	}
	s.logger.Info("Monitoring stopped", "closedIntervals", len(closed))
	return nil
}

// Reset перезапускает мониторинг с чистым кешем снимков
func (s *monitorService) Reset(ctx context.Context) error {
	if err := s.Stop(ctx); err != nil {
		return err
	}

	machines, err := s.machines.GetAll()
	if err != nil {
		return fmt.Errorf("не удалось прочитать справочник станков: %w", err)
	}
	for _, m := range machines {
		s.cache.Delete(m.ID)
	}

	s.lastMu.Lock()
	s.last = models.FleetSnapshot{}
	s.lastMu.Unlock()

	s.logger.Info("Monitoring reset", "machines", len(machines))
	return s.Start(ctx)
}

// PollOnce выполняет один проход по всем включенным станкам.
// Ошибка возвращается, только если справочник недоступен или проход был прерван.
func (s *monitorService) PollOnce(ctx context.Context) (models.FleetSnapshot, error) {
	s.passMu.Lock()
	defer s.passMu.Unlock()

	started := time.Now()
	machines, err := s.machines.ListEnabled()
	if err != nil {
		return models.FleetSnapshot{}, fmt.Errorf("list enabled machines: %w", err)
	}

	results := make([]models.MachineSnapshot, len(machines))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, m := range machines {
		i, m := i, m
		g.Go(func() error {
			results[i] = s.pollMachine(ctx, m)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return models.FleetSnapshot{}, err
	}

	snapshot := models.FleetSnapshot{Timestamp: s.now(), Machines: results}

	s.lastMu.Lock()
	s.last = snapshot
	s.lastMu.Unlock()

	if s.obs != nil {
		s.obs.ObservePass(time.Since(started))
		s.obs.SetFleet(snapshot)
	}
	if s.broadcaster != nil {
		if err := s.broadcaster.Publish(ctx, snapshot); err != nil {
			s.logger.Warn("Snapshot broadcast incomplete", "error", err)
		}
	}

	s.logger.Debug("Poll pass finished", "machines", len(results), "elapsed", time.Since(started))
	return snapshot, nil
}

// pollMachine прогоняет конвейер одного станка. Любой сбой, включая панику в хранилище,
// превращается в OFFLINE только для этого станка.
func (s *monitorService) pollMachine(ctx context.Context, m entities.Machine) (snapshot models.MachineSnapshot) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Machine pipeline panicked", "machineID", m.ID, "panic", r)
			if s.obs != nil {
				s.obs.PollFailure(models.FailurePanic)
			}
			snapshot = snapshotOf(m, models.OfflineTelemetry(s.now()), models.StateOffline)
		}
	}()

	previous, _ := s.cache.Get(m.ID)
	state, t, failure := s.classify(ctx, m, previous)

	if failure != nil {
		if ctx.Err() != nil {
			// проход прерван остановкой, это не недоступность станка
			return snapshotOf(m, t, state)
		}
		s.logger.Debug("Machine poll failed", "machineID", m.ID, "kind", failure.Kind, "error", failure.Err)
		if s.obs != nil {
			s.obs.PollFailure(failure.Kind)
		}
	}

	if _, err := s.ledger.Apply(m.ID, state, t); err != nil {
		s.logger.Error("Failed to record machine state", "machineID", m.ID, "state", state, "error", err)
	}
	s.cache.Set(m.ID, models.CachedSnapshot{Telemetry: t, State: state})

	return snapshotOf(m, t, state)
}

func (s *monitorService) classify(ctx context.Context, m entities.Machine, previous *models.CachedSnapshot) (state models.State, t models.Telemetry, failure *models.PollFailure) {
	defer func() {
		if r := recover(); r != nil {
			state = models.StateOffline
			t = models.OfflineTelemetry(s.now())
			failure = models.NewPollFailure(models.FailurePanic, fmt.Errorf("%v", r))
		}
	}()

	switch m.ControllerType {
	case entities.ControllerMazak, entities.ControllerFanuc:
	default:
		failure = models.NewPollFailure(models.FailureConfig, fmt.Errorf("unknown controller family %q", m.ControllerType))
		return models.StateOffline, models.OfflineTelemetry(s.now()), failure
	}

	result := s.source.Poll(ctx, m)
	if !result.Ok() {
		failure = result.Failure
		if failure == nil {
			failure = models.NewPollFailure(models.FailureParse, fmt.Errorf("no telemetry"))
		}
		return models.StateOffline, models.OfflineTelemetry(s.now()), failure
	}

	state, t = classifier.Classify(m.ControllerType, *result.Telemetry, previous)
	return state, t, nil
}

func snapshotOf(m entities.Machine, t models.Telemetry, state models.State) models.MachineSnapshot {
	return models.MachineSnapshot{
		MachineID:   m.ID,
		MachineName: m.Name,
		MachineType: m.Type,
		Telemetry:   t,
		State:       state,
	}
}
