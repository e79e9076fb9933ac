package models

// MachineRequest определяет структуру для создания и изменения станка.
type MachineRequest struct {
	Name           string `json:"name" binding:"required"`
	Type           string `json:"type"`
	ControllerType string `json:"controller_type" binding:"required,oneof=MAZAK FANUC"`
	Protocol       string `json:"protocol" binding:"omitempty,oneof=MTCONNECT FANUC_ADAPTER"`
	Host           string `json:"host"`
	Port           int    `json:"port" binding:"gte=0,lte=65535"`
	ConnectionURL  string `json:"connection_url"`
	Enabled        *bool  `json:"enabled"`
}

// StatusRequest определяет структуру для ручной записи состояния станка.
type StatusRequest struct {
	State string `json:"state" binding:"required,oneof=ACTIVE SETUP IDLE ALARM OFFLINE"`
}
