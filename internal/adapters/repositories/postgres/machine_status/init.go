package machine_status

import (
	"github.com/iwtcode/machineMonitor/internal/interfaces"
	"gorm.io/gorm"
)

type MachineStatusRepositoryImpl struct {
	db *gorm.DB
}

func NewMachineStatusRepository(db *gorm.DB) interfaces.MachineStatusRepository {
	return &MachineStatusRepositoryImpl{db: db}
}
