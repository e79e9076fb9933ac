package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iwtcode/machineMonitor/internal/domain/entities"
	"github.com/iwtcode/machineMonitor/internal/domain/models"
	"github.com/iwtcode/machineMonitor/internal/services/monitor_service"
	apperrors "github.com/iwtcode/machineMonitor/pkg/errors"
)

func (u *Usecase) StartMonitoring(ctx context.Context) error {
	return u.monitor.Start(ctx)
}

// StopMonitoring останавливает только работающий мониторинг, иначе ErrMonitorNotRunning
func (u *Usecase) StopMonitoring(ctx context.Context) error {
	if state := u.monitor.State(); state != monitor_service.StateRunning {
		return fmt.Errorf("stop requested in state %s: %w", state, apperrors.ErrMonitorNotRunning)
	}
	return u.monitor.Stop(ctx)
}

func (u *Usecase) ResetMonitoring(ctx context.Context) error {
	return u.monitor.Reset(ctx)
}

func (u *Usecase) MonitorState() string {
	return u.monitor.State()
}

func (u *Usecase) PollOnce(ctx context.Context) (models.FleetSnapshot, error) {
	return u.monitor.PollOnce(ctx)
}

func (u *Usecase) CurrentSnapshot() (models.FleetSnapshot, error) {
	return u.monitor.LastSnapshot()
}

func (u *Usecase) CloseStatus(machineID string) (*entities.MachineStatus, error) {
	return u.monitor.CloseStatus(machineID)
}

func (u *Usecase) CreateStatus(machineID string, state models.State) (*entities.MachineStatus, error) {
	return u.monitor.CreateStatus(machineID, state)
}

func (u *Usecase) ResetFanucAdapter(ctx context.Context) (json.RawMessage, error) {
	return u.adapters.ResetFanucAdapter(ctx)
}
