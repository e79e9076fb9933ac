package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ControllerType - семейство контроллера, определяет таблицу классификации состояний
type ControllerType string

const (
	ControllerMazak ControllerType = "MAZAK"
	ControllerFanuc ControllerType = "FANUC"
)

// ProtocolType - протокол, по которому снимается телеметрия
type ProtocolType string

const (
	ProtocolMTConnect    ProtocolType = "MTCONNECT"
	ProtocolFanucAdapter ProtocolType = "FANUC_ADAPTER"
)

// DefaultProtocol возвращает протокол, которым обычно опрашивается семейство контроллера
func DefaultProtocol(c ControllerType) ProtocolType {
	if c == ControllerFanuc {
		return ProtocolFanucAdapter
	}
	return ProtocolMTConnect
}

// Machine - конфигурация станка. Для движка мониторинга только для чтения.
type Machine struct {
	ID             string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name           string         `gorm:"not null" json:"name"`
	Type           string         `gorm:"index" json:"type"` // группа станков, например "Lathe"
	ControllerType ControllerType `gorm:"not null" json:"controller_type"`
	Protocol       ProtocolType   `json:"protocol"`
	Host           string         `json:"host"`
	Port           int            `json:"port"`
	ConnectionURL  string         `json:"connection_url"`
	Enabled        bool           `gorm:"not null;index" json:"enabled"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (m *Machine) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// Endpoint возвращает адрес телеметрии: явный URL либо URL, собранный из host:port
func (m *Machine) Endpoint() string {
	if m.ConnectionURL != "" {
		return m.ConnectionURL
	}
	if m.Host == "" {
		return ""
	}
	if m.Port > 0 {
		return fmt.Sprintf("http://%s:%d/current", m.Host, m.Port)
	}
	return fmt.Sprintf("http://%s/current", m.Host)
}
