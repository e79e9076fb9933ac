package monitor_service

import (
	"context"
	"time"

	"github.com/iwtcode/machineMonitor/internal/domain/entities"
	"github.com/iwtcode/machineMonitor/internal/domain/models"
	"github.com/iwtcode/machineMonitor/internal/interfaces"
	"github.com/iwtcode/machineMonitor/internal/services/protocol"
	"github.com/iwtcode/machineMonitor/internal/services/telemetry"
)

// telemetrySource - стадия адаптер+нормализатор. Любой исход выражается значением PollResult.
type telemetrySource struct {
	adapter *protocol.Adapter
}

func NewTelemetrySource(adapter *protocol.Adapter) interfaces.TelemetrySource {
	return &telemetrySource{adapter: adapter}
}

func (s *telemetrySource) Poll(ctx context.Context, machine entities.Machine) models.PollResult {
	raw, failure := s.adapter.Fetch(ctx, machine)
	if failure != nil {
		return models.PollResult{Failure: failure}
	}

	t, err := telemetry.Normalize(protocol.ProtocolOf(machine), raw, time.Now().UTC())
	if err != nil {
		return models.PollResult{Failure: models.NewPollFailure(models.FailureParse, err)}
	}
	return models.PollResult{Telemetry: t}
}
