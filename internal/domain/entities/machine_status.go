package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/iwtcode/machineMonitor/internal/domain/models"
	"gorm.io/gorm"
)

// MachineStatus - интервал, в течение которого станок непрерывно находился в одном состоянии.
// EndTime == nil означает открытый (текущий) интервал.
type MachineStatus struct {
	ID           string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	MachineID    string         `gorm:"type:varchar(36);not null;index:idx_status_machine_end,priority:1" json:"machine_id"`
	State        models.State   `gorm:"not null;index" json:"state"`
	Execution    string         `json:"execution"`
	Controller   string         `json:"controller"`
	Program      string         `json:"program"`
	Tool         string         `json:"tool"`
	Metrics      models.Metrics `gorm:"serializer:json" json:"metrics"`
	AlarmCode    string         `json:"alarm_code"`
	AlarmMessage string         `json:"alarm_message"`
	StartTime    time.Time      `gorm:"not null;index" json:"start_time"`
	EndTime      *time.Time     `gorm:"index:idx_status_machine_end,priority:2" json:"end_time"`
	Duration     int64          `json:"duration"` // миллисекунды, достоверно только после закрытия
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (s *MachineStatus) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// NewMachineStatus открывает интервал состояния, копируя поля вызвавшей его телеметрии
func NewMachineStatus(machineID string, state models.State, t models.Telemetry, start time.Time) *MachineStatus {
	return &MachineStatus{
		MachineID:  machineID,
		State:      state,
		Execution:  t.Execution,
		Controller: t.Controller,
		Program:    t.Program,
		Tool:       t.Tool,
		Metrics:    t.Metrics,
		AlarmCode:  t.Alarm,
		StartTime:  start,
	}
}

// IsOpen сообщает, продолжается ли интервал
func (s *MachineStatus) IsOpen() bool {
	return s.EndTime == nil
}

// Close закрывает интервал; duration всегда равна endTime - startTime
func (s *MachineStatus) Close(at time.Time) {
	if at.Before(s.StartTime) {
		at = s.StartTime
	}
	end := at
	s.EndTime = &end
	s.Duration = end.Sub(s.StartTime).Milliseconds()
}

// EffectiveEnd возвращает конец интервала; открытый интервал считается идущим до now
func (s *MachineStatus) EffectiveEnd(now time.Time) time.Time {
	if s.EndTime != nil {
		return *s.EndTime
	}
	return now
}
