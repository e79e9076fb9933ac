package analytics

import (
	"fmt"
	"time"
)

// Label - подпись интервала для оси графика
func Label(t time.Time, scale Scale) string {
	switch scale {
	case ScaleHour:
		return hour(t)
	case ScaleDay:
		return t.Format("Jan 2")
	case ScaleWeek:
		return "Week of " + t.Format("Jan 2")
	case ScaleMonth:
		return t.Format("January 2006")
	case ScaleQuarter:
		return quarter(t)
	default:
		return t.Format("2006")
	}
}

// RangeLabel - подпись интервала для подсказки: "Jan 2 - Jan 9".
// Для часовой шкалы неполный час конца округляется вверх.
func RangeLabel(start, end time.Time, scale Scale) string {
	switch scale {
	case ScaleHour:
		if end.Minute() != 0 || end.Second() != 0 || end.Nanosecond() != 0 {
			end = time.Date(end.Year(), end.Month(), end.Day(), end.Hour()+1, 0, 0, 0, end.Location())
		}
		return hour(start) + " - " + hour(end)
	case ScaleDay, ScaleWeek:
		return start.Format("Jan 2") + " - " + end.Format("Jan 2")
	case ScaleMonth:
		return start.Format("January 2006") + " - " + end.Format("January 2006")
	case ScaleQuarter:
		return quarter(start) + " - " + quarter(end)
	default:
		return start.Format("2006") + " - " + end.Format("2006")
	}
}

func hour(t time.Time) string {
	return t.Format("3") + ":00 " + t.Format("PM")
}

func quarter(t time.Time) string {
	return fmt.Sprintf("Q%d %d", (int(t.Month())-1)/3+1, t.Year())
}
