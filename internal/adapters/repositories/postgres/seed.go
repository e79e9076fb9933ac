package postgres

import (
	"fmt"
	"os"

	"github.com/iwtcode/machineMonitor/internal/domain/entities"
	"github.com/iwtcode/machineMonitor/internal/interfaces"
	"gopkg.in/yaml.v3"
)

type machineSeed struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	Type           string `yaml:"type"`
	ControllerType string `yaml:"controller_type"`
	Protocol       string `yaml:"protocol"`
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	ConnectionURL  string `yaml:"connection_url"`
	Enabled        *bool  `yaml:"enabled"`
}

type fleetFile struct {
	Machines []machineSeed `yaml:"machines"`
}

// SeedMachines создает станки из YAML файла. Уже существующие (по id или имени) пропускаются.
func SeedMachines(repo interfaces.MachineRepository, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var fleet fleetFile
	if err := yaml.Unmarshal(data, &fleet); err != nil {
		return 0, fmt.Errorf("некорректный YAML: %w", err)
	}

	existing, err := repo.GetAll()
	if err != nil {
		return 0, err
	}
	known := make(map[string]struct{}, len(existing)*2)
	for _, m := range existing {
		known["id:"+m.ID] = struct{}{}
		known["name:"+m.Name] = struct{}{}
	}

	created := 0
	for _, s := range fleet.Machines {
		if s.Name == "" {
			return created, fmt.Errorf("станок без имени в %s", path)
		}
		if _, ok := known["name:"+s.Name]; ok {
			continue
		}
		if _, ok := known["id:"+s.ID]; ok && s.ID != "" {
			continue
		}

		m := seedToMachine(s)
		if err := repo.Create(m); err != nil {
			return created, err
		}
		known["name:"+m.Name] = struct{}{}
		created++
	}
	return created, nil
}

func seedToMachine(s machineSeed) *entities.Machine {
	controller := entities.ControllerType(s.ControllerType)
	if controller == "" {
		controller = entities.ControllerMazak
	}
	protocol := entities.ProtocolType(s.Protocol)
	if protocol == "" {
		protocol = entities.DefaultProtocol(controller)
	}
	enabled := true
	if s.Enabled != nil {
		enabled = *s.Enabled
	}
	return &entities.Machine{
		ID:             s.ID,
		Name:           s.Name,
		Type:           s.Type,
		ControllerType: controller,
		Protocol:       protocol,
		Host:           s.Host,
		Port:           s.Port,
		ConnectionURL:  s.ConnectionURL,
		Enabled:        enabled,
	}
}
