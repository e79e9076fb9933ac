package usecases

import (
	"fmt"

	"github.com/iwtcode/machineMonitor/internal/domain/entities"
	"github.com/iwtcode/machineMonitor/internal/domain/models"
)

func (u *Usecase) ListMachines() ([]entities.Machine, error) {
	return u.machines.GetAll()
}

func (u *Usecase) CreateMachine(req models.MachineRequest) (*entities.Machine, error) {
	machine := &entities.Machine{}
	applyRequest(machine, req)

	if err := u.machines.Create(machine); err != nil {
		return nil, fmt.Errorf("create machine %q: %w", req.Name, err)
	}
	return machine, nil
}

// UpdateMachine перезаписывает конфигурацию станка. Изменения подхватываются следующим проходом опроса.
func (u *Usecase) UpdateMachine(id string, req models.MachineRequest) (*entities.Machine, error) {
	machine, err := u.machines.GetByID(id)
	if err != nil {
		return nil, err
	}
	applyRequest(machine, req)

	if err := u.machines.Update(machine); err != nil {
		return nil, fmt.Errorf("update machine %s: %w", id, err)
	}
	return machine, nil
}

func applyRequest(machine *entities.Machine, req models.MachineRequest) {
	machine.Name = req.Name
	machine.Type = req.Type
	machine.ControllerType = entities.ControllerType(req.ControllerType)
	machine.Protocol = entities.ProtocolType(req.Protocol)
	if machine.Protocol == "" {
		machine.Protocol = entities.DefaultProtocol(machine.ControllerType)
	}
	machine.Host = req.Host
	machine.Port = req.Port
	machine.ConnectionURL = req.ConnectionURL
	machine.Enabled = req.Enabled == nil || *req.Enabled
}
