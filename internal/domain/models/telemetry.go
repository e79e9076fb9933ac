package models

import (
	"strings"
	"time"
)

// State - каноническое состояние станка
type State string

const (
	StateActive  State = "ACTIVE"
	StateSetup   State = "SETUP"
	StateIdle    State = "IDLE"
	StateAlarm   State = "ALARM"
	StateOffline State = "OFFLINE"
	// StateUnknown никогда не выставляется классификатором: так аналитика обозначает время без интервалов.
	StateUnknown State = "UNKNOWN"
)

// AllStates задает порядок состояний в распределениях и отчетах
var AllStates = []State{StateActive, StateSetup, StateIdle, StateAlarm, StateOffline, StateUnknown}

// Valid сообщает, может ли состояние быть записано в интервал
func (s State) Valid() bool {
	switch s {
	case StateActive, StateSetup, StateIdle, StateAlarm, StateOffline:
		return true
	}
	return false
}

const (
	AvailabilityAvailable   = "AVAILABLE"
	AvailabilityUnavailable = "UNAVAILABLE"

	ExecutionOffline = "OFFLINE"
)

// AxisPositions содержит положение по трем осям
type AxisPositions struct {
	X float64 `json:"X"`
	Y float64 `json:"Y"`
	Z float64 `json:"Z"`
}

// Metrics содержит числовые показатели станка
type Metrics struct {
	SpindleSpeed  float64       `json:"spindleSpeed"`
	FeedRate      float64       `json:"feedRate"`
	AxisPositions AxisPositions `json:"axisPositions"`
}

// Telemetry - нормализованный снимок показаний станка. После создания не изменяется.
type Telemetry struct {
	Availability string    `json:"availability"`
	Execution    string    `json:"execution"`
	Controller   string    `json:"controller"`
	Program      string    `json:"program"`
	Tool         string    `json:"tool"`
	Metrics      Metrics   `json:"metrics"`
	Alarm        string    `json:"alarm"`
	CapturedAt   time.Time `json:"timestamp"`
}

// Reachable возвращает false, только если контроллер явно сообщил о недоступности
func (t Telemetry) Reachable() bool {
	return !strings.EqualFold(strings.TrimSpace(t.Availability), AvailabilityUnavailable)
}

// OfflineTelemetry возвращает обнуленную телеметрию для станка без связи
func OfflineTelemetry(at time.Time) Telemetry {
	return Telemetry{
		Availability: AvailabilityUnavailable,
		Execution:    ExecutionOffline,
		Controller:   ExecutionOffline,
		CapturedAt:   at,
	}
}

// CachedSnapshot - последнее показание станка вместе с состоянием, которое оно дало
type CachedSnapshot struct {
	Telemetry
	State State `json:"state"`
}

// MachineSnapshot - элемент живой рассылки по парку
type MachineSnapshot struct {
	MachineID   string `json:"machineId"`
	MachineName string `json:"machineName"`
	MachineType string `json:"machineType"`
	Telemetry
	State State `json:"state"`
}

// FleetSnapshot - результат одного прохода опроса по всему парку
type FleetSnapshot struct {
	Timestamp time.Time         `json:"timestamp"`
	Machines  []MachineSnapshot `json:"machines"`
}
