package interfaces

import (
	"time"

	"github.com/iwtcode/machineMonitor/internal/domain/entities"
	"github.com/iwtcode/machineMonitor/internal/domain/models"
)

// MachineRepository определяет контракт справочника станков
type MachineRepository interface {
	ListEnabled() ([]entities.Machine, error)
	GetAll() ([]entities.Machine, error)
	GetByID(id string) (*entities.Machine, error)
	Create(machine *entities.Machine) error
	Update(machine *entities.Machine) error
}

// StatusFilter ограничивает выборку интервалов. Пустые поля не фильтруют.
type StatusFilter struct {
	MachineID string
	State     models.State
}

// MachineStatusRepository определяет контракт хранилища интервалов состояний
type MachineStatusRepository interface {
	FindOpen(machineID string) ([]entities.MachineStatus, error)
	CloseOpen(machineID string, endTime time.Time) ([]entities.MachineStatus, error)
	CloseAllOpen(endTime time.Time) ([]entities.MachineStatus, error)
	Create(status *entities.MachineStatus) error
	QueryOverlapping(filter StatusFilter, from, to time.Time) ([]entities.MachineStatus, error)
	// Transaction выполняет fn атомарно; репозиторий внутри fn привязан к транзакции
	Transaction(fn func(repo MachineStatusRepository) error) error
}
