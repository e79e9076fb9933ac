package machine_status

import (
	"time"

	"github.com/iwtcode/machineMonitor/internal/domain/entities"
	"github.com/iwtcode/machineMonitor/internal/interfaces"
	"gorm.io/gorm"
)

// FindOpen возвращает открытые интервалы станка, самый свежий первым.
// При соблюдении инварианта их не больше одного.
func (r *MachineStatusRepositoryImpl) FindOpen(machineID string) ([]entities.MachineStatus, error) {
	var statuses []entities.MachineStatus
	err := r.db.Where("machine_id = ? AND end_time IS NULL", machineID).
		Order("start_time DESC").
		Find(&statuses).Error
	if err != nil {
		return nil, err
	}
	return statuses, nil
}

// CloseOpen закрывает все открытые интервалы станка и возвращает их
func (r *MachineStatusRepositoryImpl) CloseOpen(machineID string, endTime time.Time) ([]entities.MachineStatus, error) {
	return r.closeWhere(r.db.Where("machine_id = ? AND end_time IS NULL", machineID), endTime)
}

// CloseAllOpen закрывает открытые интервалы всех станков
func (r *MachineStatusRepositoryImpl) CloseAllOpen(endTime time.Time) ([]entities.MachineStatus, error) {
	return r.closeWhere(r.db.Where("end_time IS NULL"), endTime)
}

func (r *MachineStatusRepositoryImpl) closeWhere(query *gorm.DB, endTime time.Time) ([]entities.MachineStatus, error) {
	var open []entities.MachineStatus
	if err := query.Find(&open).Error; err != nil {
		return nil, err
	}

	endTime = endTime.UTC()
	for i := range open {
		open[i].Close(endTime)
		err := r.db.Model(&entities.MachineStatus{}).
			Where("id = ?", open[i].ID).
			Updates(map[string]interface{}{
				"end_time": open[i].EndTime,
				"duration": open[i].Duration,
			}).Error
		if err != nil {
			return nil, err
		}
	}
	return open, nil
}

func (r *MachineStatusRepositoryImpl) Create(status *entities.MachineStatus) error {
	return r.db.Create(status).Error
}

// QueryOverlapping возвращает интервалы, пересекающие [from, to).
// Открытые интервалы считаются продолжающимися.
func (r *MachineStatusRepositoryImpl) QueryOverlapping(filter interfaces.StatusFilter, from, to time.Time) ([]entities.MachineStatus, error) {
	query := r.db.Model(&entities.MachineStatus{}).
		Where("machine_statuses.start_time < ?", to.UTC()).
		Where("(machine_statuses.end_time IS NULL OR machine_statuses.end_time > ?)", from.UTC())

	if filter.MachineID != "" {
		query = query.Where("machine_statuses.machine_id = ?", filter.MachineID)
	}
	if filter.State != "" {
		query = query.Where("machine_statuses.state = ?", filter.State)
	}

	var statuses []entities.MachineStatus
	if err := query.Order("machine_statuses.start_time").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

// Transaction выполняет fn в транзакции БД
func (r *MachineStatusRepositoryImpl) Transaction(fn func(repo interfaces.MachineStatusRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&MachineStatusRepositoryImpl{db: tx})
	})
}
