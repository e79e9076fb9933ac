package machine

import (
	"github.com/iwtcode/machineMonitor/internal/interfaces"
	"gorm.io/gorm"
)

type MachineRepositoryImpl struct {
	db *gorm.DB
}

func NewMachineRepository(db *gorm.DB) interfaces.MachineRepository {
	return &MachineRepositoryImpl{db: db}
}
