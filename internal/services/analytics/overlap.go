package analytics

import (
	"time"

	"github.com/iwtcode/machineMonitor/internal/domain/entities"
	"github.com/iwtcode/machineMonitor/internal/domain/models"
)

// Totals суммирует пересечение интервалов с окном [from, to) по состояниям, в миллисекундах.
// Открытый интервал считается продолжающимся до now.
func Totals(statuses []entities.MachineStatus, from, to, now time.Time) map[models.State]int64 {
	totals := make(map[models.State]int64, len(models.AllStates))
	for _, s := range statuses {
		if d := Overlap(s, from, to, now); d > 0 {
			totals[s.State] += d.Milliseconds()
		}
	}
	return totals
}

// Overlap возвращает длительность пересечения интервала с окном; ноль, если они не пересекаются
func Overlap(s entities.MachineStatus, from, to, now time.Time) time.Duration {
	start := s.StartTime
	end := s.EffectiveEnd(now)

	if start.Before(from) {
		start = from
	}
	if end.After(to) {
		end = to
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

func sum(totals map[models.State]int64) int64 {
	var total int64
	for _, v := range totals {
		total += v
	}
	return total
}

// available - машинное время окна за вычетом его будущей части, в миллисекундах
func available(from, to, now time.Time, machines int) int64 {
	past := to
	if now.Before(past) {
		past = now
	}
	if !past.After(from) {
		return 0
	}
	return past.Sub(from).Milliseconds() * int64(machines)
}
