package models

import "time"

const (
	ViewAll     = "all"
	ViewGroup   = "group"
	ViewMachine = "machine"
)

// ValidView проверяет допустимость группировки
func ValidView(view string) bool {
	switch view {
	case ViewAll, ViewGroup, ViewMachine:
		return true
	}
	return false
}

// OverviewQuery - параметры запроса аналитики
type OverviewQuery struct {
	Start            time.Time
	End              time.Time
	View             string
	UTCOffsetMinutes int // как в JS getTimezoneOffset: сколько минут клиент отстает от UTC
}

// KPI - значение показателя и его изменение в процентах
type KPI struct {
	Value  float64 `json:"value"`
	Change float64 `json:"change"`
}

// KPIs - ключевые показатели за окно
type KPIs struct {
	Utilization      KPI `json:"utilization"`
	AverageRuntime   KPI `json:"averageRuntime"`
	AlarmCount       KPI `json:"alarmCount"`
	TargetAttainment KPI `json:"targetAttainment"`
}

// GroupUtilization - загрузка одной группы в одном интервале
type GroupUtilization struct {
	Utilization *float64 `json:"utilization"`
	Runtime     int64    `json:"runtime"`
}

// UtilizationPoint - один интервал (bucket) ряда загрузки.
// Utilization == nil означает "данных еще нет", а не нулевую загрузку.
type UtilizationPoint struct {
	Label       string                      `json:"label"`
	RangeLabel  string                      `json:"rangeLabel"`
	Start       time.Time                   `json:"start"`
	End         time.Time                   `json:"end"`
	Utilization *float64                    `json:"utilization"`
	Runtime     int64                       `json:"runtime"`
	Groups      map[string]GroupUtilization `json:"groups,omitempty"`
}

// StateTotal - суммарное время в состоянии (мс) и его доля в доступном времени
type StateTotal struct {
	State      State   `json:"state"`
	Total      int64   `json:"total"`
	Percentage float64 `json:"percentage"`
}

// MachineSummary - краткая информация о станке для клиентов
type MachineSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Overview - ответ аналитики за окно
type Overview struct {
	Scale       string             `json:"scale"`
	KPIs        KPIs               `json:"kpis"`
	Utilization []UtilizationPoint `json:"utilization"`
	States      []StateTotal       `json:"states"`
	Machines    []MachineSummary   `json:"machines"`
}

// Timeline - список станков для построения диаграммы Ганта
type Timeline struct {
	Machines []MachineSummary `json:"machines"`
}
