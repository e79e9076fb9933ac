package monitor_service

import (
	"github.com/iwtcode/machineMonitor/internal/domain/entities"
	"github.com/iwtcode/machineMonitor/internal/domain/models"
)

// LastSnapshot собирает снимок парка из кеша, не опрашивая станки.
// Станок без записи в кеше отдается как OFFLINE с обнуленной телеметрией.
func (s *monitorService) LastSnapshot() (models.FleetSnapshot, error) {
	machines, err := s.machines.ListEnabled()
	if err != nil {
		return models.FleetSnapshot{}, err
	}

	s.lastMu.RLock()
	ts := s.last.Timestamp
	s.lastMu.RUnlock()
	if ts.IsZero() {
		ts = s.now()
	}

	snapshot := models.FleetSnapshot{Timestamp: ts, Machines: make([]models.MachineSnapshot, 0, len(machines))}
	for _, m := range machines {
		cached, ok := s.cache.Get(m.ID)
		if !ok {
			snapshot.Machines = append(snapshot.Machines, snapshotOf(m, models.OfflineTelemetry(ts), models.StateOffline))
			continue
		}
		snapshot.Machines = append(snapshot.Machines, snapshotOf(m, cached.Telemetry, cached.State))
	}
	return snapshot, nil
}

// CloseStatus вручную закрывает открытый интервал станка
func (s *monitorService) CloseStatus(machineID string) (*entities.MachineStatus, error) {
	if _, err := s.machines.GetByID(machineID); err != nil {
		return nil, err
	}
	return s.ledger.CloseStatus(machineID)
}

// CreateStatus вручную открывает интервал. Телеметрия берется из последнего снимка станка,
// а состояние в кеше заменяется, чтобы следующий опрос исходил из него.
func (s *monitorService) CreateStatus(machineID string, state models.State) (*entities.MachineStatus, error) {
	if _, err := s.machines.GetByID(machineID); err != nil {
		return nil, err
	}

	t := models.Telemetry{CapturedAt: s.now()}
	cached, ok := s.cache.Get(machineID)
	if ok {
		t = cached.Telemetry
	}

	created, err := s.ledger.CreateStatus(machineID, state, t)
	if err != nil {
		return nil, err
	}

	if ok {
		s.cache.Set(machineID, models.CachedSnapshot{Telemetry: t, State: state})
	}
	return created, nil
}
