package usecases

import (
	"github.com/iwtcode/machineMonitor/internal/domain/models"
	"github.com/iwtcode/machineMonitor/internal/services/analytics"
)

// GetOverview разворачивает даты клиента в окно целых дней и строит аналитику
func (u *Usecase) GetOverview(startDate, endDate, view string, utcOffsetMinutes int) (*models.Overview, error) {
	window, err := analytics.ParseDateRange(startDate, endDate, utcOffsetMinutes)
	if err != nil {
		return nil, err
	}
	return u.analytics.Overview(models.OverviewQuery{
		Start:            window.Start,
		End:              window.End,
		View:             view,
		UTCOffsetMinutes: utcOffsetMinutes,
	})
}

func (u *Usecase) GetTimeline() (*models.Timeline, error) {
	return u.analytics.Timeline()
}
