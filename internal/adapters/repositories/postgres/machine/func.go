package machine

import (
	"errors"
	"fmt"

	"github.com/iwtcode/machineMonitor/internal/domain/entities"
	apperrors "github.com/iwtcode/machineMonitor/pkg/errors"
	"gorm.io/gorm"
)

// ListEnabled возвращает станки, которые нужно опрашивать, в стабильном порядке
func (r *MachineRepositoryImpl) ListEnabled() ([]entities.Machine, error) {
	var machines []entities.Machine
	if err := r.db.Where("enabled = ?", true).Order("name, id").Find(&machines).Error; err != nil {
		return nil, err
	}
	return machines, nil
}

// GetAll возвращает все сохраненные станки
func (r *MachineRepositoryImpl) GetAll() ([]entities.Machine, error) {
	var machines []entities.Machine
	if err := r.db.Order("name, id").Find(&machines).Error; err != nil {
		return nil, err
	}
	return machines, nil
}

func (r *MachineRepositoryImpl) GetByID(id string) (*entities.Machine, error) {
	var machine entities.Machine
	err := r.db.Where("id = ?", id).First(&machine).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("machine %s: %w", id, apperrors.ErrMachineNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &machine, nil
}

func (r *MachineRepositoryImpl) Create(machine *entities.Machine) error {
	return r.db.Create(machine).Error
}

// Update сохраняет все поля станка, включая нулевые (например, enabled=false)
func (r *MachineRepositoryImpl) Update(machine *entities.Machine) error {
	result := r.db.Model(&entities.Machine{}).Where("id = ?", machine.ID).Select("*").Omit("created_at").Updates(machine)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("machine %s: %w", machine.ID, apperrors.ErrMachineNotFound)
	}
	return nil
}
