package usecases

import "github.com/iwtcode/machineMonitor/internal/interfaces"

// Usecase - тонкий слой между HTTP обработчиками и сервисами движка
type Usecase struct {
	monitor   interfaces.MonitorService
	analytics interfaces.AnalyticsService
	machines  interfaces.MachineRepository
	adapters  interfaces.AdapterControl
}

// NewUsecases - конструктор для Usecases
func NewUsecases(
	monitor interfaces.MonitorService,
	analytics interfaces.AnalyticsService,
	machines interfaces.MachineRepository,
	adapters interfaces.AdapterControl,
) interfaces.Usecases {
	return &Usecase{
		monitor:   monitor,
		analytics: analytics,
		machines:  machines,
		adapters:  adapters,
	}
}
