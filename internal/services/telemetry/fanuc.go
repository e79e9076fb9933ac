package telemetry

import "strings"

// Канонические значения execution (словарь MTConnect)
const (
	ExecutionActive      = "ACTIVE"
	ExecutionFeedHold    = "FEED_HOLD"
	ExecutionStopped     = "STOPPED"
	ExecutionInterrupted = "INTERRUPTED"
	ExecutionAlarm       = "ALARM"
)

// FanucExecution приводит состояние выполнения FANUC (ODBST.run или его текст на дисплее)
// к каноническому виду. Неизвестные значения возвращаются как есть.
func FanucExecution(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "0", "RESET", "****", "1", "STOP":
		return ExecutionStopped
	case "2", "HOLD":
		return ExecutionFeedHold
	case "3", "START", "STRT":
		return ExecutionActive
	case "4", "MSTR":
		return ExecutionInterrupted
	case "ALARM", "ALM":
		return ExecutionAlarm
	default:
		return strings.TrimSpace(raw)
	}
}
