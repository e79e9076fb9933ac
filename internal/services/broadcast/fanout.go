package broadcast

import (
	"context"
	"errors"
	"fmt"

	"github.com/iwtcode/machineMonitor/internal/domain/models"
	"github.com/iwtcode/machineMonitor/internal/middleware/logging"
)

// Sink - один канал доставки снимков
type Sink interface {
	Name() string
	Publish(ctx context.Context, snapshot models.FleetSnapshot) error
	Close() error
}

// FailureObserver учитывает неудачные доставки
type FailureObserver interface {
	BroadcastFailure(sink string)
}

// Fanout рассылает снимок во все каналы. Ошибка одного канала не мешает остальным.
type Fanout struct {
	sinks  []Sink
	obs    FailureObserver
	logger *logging.Logger
}

func NewFanout(obs FailureObserver, logger *logging.Logger, sinks ...Sink) *Fanout {
	return &Fanout{sinks: sinks, obs: obs, logger: logger.WithPrefix("BROADCAST")}
}

func (f *Fanout) Publish(ctx context.Context, snapshot models.FleetSnapshot) error {
	var errs []error
	for _, sink := range f.sinks {
		if err := sink.Publish(ctx, snapshot); err != nil {
			f.logger.Warn("Broadcast failed", "sink", sink.Name(), "error", err)
			if f.obs != nil {
				f.obs.BroadcastFailure(sink.Name())
			}
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func (f *Fanout) Close() error {
	var errs []error
	for _, sink := range f.sinks {
		if err := sink.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Sinks возвращает имена подключенных каналов
func (f *Fanout) Sinks() []string {
	names := make([]string, 0, len(f.sinks))
	for _, s := range f.sinks {
		names = append(names, s.Name())
	}
	return names
}
