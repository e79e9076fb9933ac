package analytics

import (
	"fmt"
	"time"

	apperrors "github.com/iwtcode/machineMonitor/pkg/errors"
)

// DateRange - окно запроса из целых дней клиента и предшествующее ему окно той же длины
type DateRange struct {
	Start         time.Time
	End           time.Time
	PreviousStart time.Time
	PreviousEnd   time.Time
}

// ClientZone строит часовой пояс по смещению в формате JS getTimezoneOffset
// (минуты, на которые клиент отстает от UTC: для UTC-5 это 300)
func ClientZone(utcOffsetMinutes int) *time.Location {
	return time.FixedZone("client", -utcOffsetMinutes*60)
}

// ParseDateRange разбирает даты YYYY-MM-DD. Окно начинается в полночь startDate
// и заканчивается в полночь после endDate по времени клиента.
func ParseDateRange(startDate, endDate string, utcOffsetMinutes int) (DateRange, error) {
	loc := ClientZone(utcOffsetMinutes)

	start, err := time.ParseInLocation("2006-01-02", startDate, loc)
	if err != nil {
		return DateRange{}, fmt.Errorf("startDate %q: %w", startDate, apperrors.ErrInvalidDateRange)
	}
	last, err := time.ParseInLocation("2006-01-02", endDate, loc)
	if err != nil {
		return DateRange{}, fmt.Errorf("endDate %q: %w", endDate, apperrors.ErrInvalidDateRange)
	}
	if last.Before(start) {
		return DateRange{}, fmt.Errorf("startDate is after endDate: %w", apperrors.ErrInvalidDateRange)
	}

	end := last.AddDate(0, 0, 1)
	return newDateRange(start, end), nil
}

func newDateRange(start, end time.Time) DateRange {
	duration := end.Sub(start)
	return DateRange{
		Start:         start,
		End:           end,
		PreviousStart: start.Add(-duration),
		PreviousEnd:   start,
	}
}
