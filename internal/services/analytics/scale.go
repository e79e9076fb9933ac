package analytics

import (
	"math"
	"time"
)

// Scale - гранулярность интервалов ряда загрузки
type Scale string

const (
	ScaleHour    Scale = "hour"
	ScaleDay     Scale = "day"
	ScaleWeek    Scale = "week"
	ScaleMonth   Scale = "month"
	ScaleQuarter Scale = "quarter"
	ScaleYear    Scale = "year"
)

const day = 24 * time.Hour

// SelectScale выбирает гранулярность по длине окна и возвращает число интервалов.
// Порог квартала совпадает с порогом месяца, поэтому квартальная шкала недостижима.
func SelectScale(start, end time.Time) (Scale, int) {
	days := float64(end.Sub(start)) / float64(day)

	switch {
	case days <= 3:
		return ScaleHour, ceil(days * 24)
	case days <= 20:
		return ScaleDay, ceil(days)
	case days <= 84:
		return ScaleWeek, ceil(days / 7)
	case days <= 548:
		return ScaleMonth, ceil(days / 30.4375)
	case days <= 548:
		return ScaleQuarter, ceil(days / 91.3125)
	default:
		return ScaleYear, ceil(days / 365.25)
	}
}

func ceil(v float64) int {
	n := int(math.Ceil(v))
	if n < 1 {
		return 1
	}
	return n
}

// Division - один интервал (bucket) окна
type Division struct {
	Start time.Time
	End   time.Time
}

// Divisions режет окно [start, end) на календарные интервалы в часовом поясе start.
// Конец каждого интервала ограничен концом окна; последний растягивается до конца окна.
func Divisions(start, end time.Time, scale Scale, count int) []Division {
	out := make([]Division, 0, count)
	for i := 0; i < count; i++ {
		ds := shift(start, scale, i)
		if !ds.Before(end) {
			break
		}
		de := shift(start, scale, i+1)
		if de.After(end) || i == count-1 {
			de = end
		}
		out = append(out, Division{Start: ds, End: de})
	}
	return out
}

func shift(t time.Time, scale Scale, n int) time.Time {
	switch scale {
	case ScaleHour:
		return t.Add(time.Duration(n) * time.Hour)
	case ScaleDay:
		return t.AddDate(0, 0, n)
	case ScaleWeek:
		return t.AddDate(0, 0, 7*n)
	case ScaleMonth:
		return t.AddDate(0, n, 0)
	case ScaleQuarter:
		return t.AddDate(0, 3*n, 0)
	default:
		return t.AddDate(n, 0, 0)
	}
}
