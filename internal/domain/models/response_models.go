package models

import "encoding/json"

// ErrorResponse представляет стандартный ответ с ошибкой.
type ErrorResponse struct {
	Status string `json:"status" example:"error"`
	Error  struct {
		Code    int    `json:"code" example:"404"`
		Message string `json:"message" example:"Станок не найден"`
	} `json:"error"`
}

// MessageResponse представляет стандартный успешный ответ с сообщением.
type MessageResponse struct {
	Status  string `json:"status" example:"ok"`
	Message string `json:"message" example:"Monitoring started"`
}

// MonitorStatusResponse представляет состояние жизненного цикла монитора.
type MonitorStatusResponse struct {
	Status  string `json:"status" example:"ok"`
	State   string `json:"state" example:"RUNNING"`
	Running bool   `json:"running"`
}

// SnapshotResponse представляет последний снимок парка.
type SnapshotResponse struct {
	Status   string        `json:"status" example:"ok"`
	Snapshot FleetSnapshot `json:"snapshot"`
}

// OverviewResponse представляет ответ аналитики.
type OverviewResponse struct {
	Status string   `json:"status" example:"ok"`
	Data   Overview `json:"data"`
}

// TimelineResponse представляет список станков для временной шкалы.
type TimelineResponse struct {
	Status string   `json:"status" example:"ok"`
	Data   Timeline `json:"data"`
}

// MachineResponse представляет один станок.
type MachineResponse struct {
	Status  string        `json:"status" example:"ok"`
	Machine MachineEntity `json:"machine"`
}

// MachinesResponse представляет справочник станков.
type MachinesResponse struct {
	Status   string          `json:"status" example:"ok"`
	Count    int             `json:"count" example:"3"`
	Machines []MachineEntity `json:"machines"`
}

// StatusResponse представляет интервал состояния, затронутый ручной операцией.
type StatusResponse struct {
	Status   string         `json:"status" example:"ok"`
	Interval StatusInterval `json:"interval"`
}

// MachineEntity - описание станка для документации API
type MachineEntity struct {
	ID             string `json:"id" example:"3f1c9a2e-8d7b-4a51-9c1e-2b6f0d4e7a10"`
	Name           string `json:"name" example:"Lathe #1"`
	Type           string `json:"type" example:"Lathe"`
	ControllerType string `json:"controller_type" example:"MAZAK"`
	Protocol       string `json:"protocol" example:"MTCONNECT"`
	Host           string `json:"host" example:"10.0.0.21"`
	Port           int    `json:"port" example:"5000"`
	ConnectionURL  string `json:"connection_url"`
	Enabled        bool   `json:"enabled" example:"true"`
}

// StatusInterval - описание интервала состояния для документации API
type StatusInterval struct {
	ID        string  `json:"id"`
	MachineID string  `json:"machine_id"`
	State     State   `json:"state" example:"SETUP"`
	StartTime string  `json:"start_time" example:"2024-01-01T08:00:00Z"`
	EndTime   *string `json:"end_time"`
	Duration  int64   `json:"duration" example:"0"`
}

// AdapterResetResponse содержит ответ адаптера FANUC на сброс как есть.
type AdapterResetResponse struct {
	Status  string          `json:"status" example:"ok"`
	Adapter json.RawMessage `json:"adapter" swaggertype:"object"`
}
