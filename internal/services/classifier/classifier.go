package classifier

import (
	"math"
	"strings"

	"github.com/iwtcode/machineMonitor/internal/domain/entities"
	"github.com/iwtcode/machineMonitor/internal/domain/models"
)

// Epsilon - допуск на дрожание датчиков при сравнении метрик
const Epsilon = 0.0001

// Classify определяет состояние станка по текущей телеметрии и предыдущему снимку.
// Возвращает также телеметрию, которую нужно записать: для недоступного станка она обнуляется.
func Classify(family entities.ControllerType, current models.Telemetry, previous *models.CachedSnapshot) (models.State, models.Telemetry) {
	if !current.Reachable() {
		return models.StateOffline, models.OfflineTelemetry(current.CapturedAt)
	}

	switch family {
	case entities.ControllerFanuc:
		return classifyFanuc(current, previous), current
	default:
		return classifyMazak(current, previous), current
	}
}

func classifyMazak(current models.Telemetry, previous *models.CachedSnapshot) models.State {
	execution := strings.ToUpper(strings.TrimSpace(current.Execution))
	switch execution {
	case "", models.ExecutionOffline:
		return models.StateOffline
	case "ALARM":
		return models.StateAlarm
	case "ACTIVE", "FEED_HOLD":
		return models.StateActive
	case "STOPPED":
		return models.StateIdle
	}
	return byMovement(current, previous)
}

// classifyFanuc дополнительно считает аварией любой непустой текст alarm:
// адаптер FANUC отдает его только при активной аварии.
func classifyFanuc(current models.Telemetry, previous *models.CachedSnapshot) models.State {
	execution := strings.ToUpper(strings.TrimSpace(current.Execution))
	switch {
	case execution == "" || execution == models.ExecutionOffline:
		return models.StateOffline
	case execution == "ALARM" || strings.TrimSpace(current.Alarm) != "":
		return models.StateAlarm
	case execution == "ACTIVE" || execution == "FEED_HOLD":
		return models.StateActive
	case execution == "STOPPED":
		return models.StateIdle
	}
	return byMovement(current, previous)
}

// byMovement - эвристика для случая, когда контроллер не дает однозначного сигнала
func byMovement(current models.Telemetry, previous *models.CachedSnapshot) models.State {
	moved := HasMoved(current, previous)

	var prevState models.State
	if previous != nil {
		prevState = previous.State
	}

	if prevState == models.StateSetup && !moved {
		return models.StateIdle
	}
	if prevState != models.StateActive && moved {
		return models.StateSetup
	}
	return models.StateIdle
}

// HasMoved сравнивает метрики с предыдущим снимком с допуском Epsilon.
// Смена инструмента тоже считается движением. Без предыдущего снимка движения нет.
func HasMoved(current models.Telemetry, previous *models.CachedSnapshot) bool {
	if previous == nil {
		return false
	}

	cur, prev := current.Metrics, previous.Metrics
	if differs(cur.SpindleSpeed, prev.SpindleSpeed) || differs(cur.FeedRate, prev.FeedRate) {
		return true
	}
	if differs(cur.AxisPositions.X, prev.AxisPositions.X) ||
		differs(cur.AxisPositions.Y, prev.AxisPositions.Y) ||
		differs(cur.AxisPositions.Z, prev.AxisPositions.Z) {
		return true
	}

	return current.Tool != previous.Tool
}

func differs(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	return math.Abs(a-b) > Epsilon
}
