package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/iwtcode/machineMonitor/internal/config"
	"github.com/iwtcode/machineMonitor/internal/domain/entities"
	"github.com/iwtcode/machineMonitor/internal/domain/models"
	"github.com/iwtcode/machineMonitor/internal/interfaces"
	"github.com/iwtcode/machineMonitor/internal/middleware/logging"
	apperrors "github.com/iwtcode/machineMonitor/pkg/errors"
)

// unknownGroup - ключ группы для станков без типа
const unknownGroup = "unknown"

type analyticsService struct {
	machines    interfaces.MachineRepository
	statuses    interfaces.MachineStatusRepository
	targetHours float64
	logger      *logging.Logger
	now         func() time.Time
}

func NewAnalyticsService(cfg *config.AppConfig, machines interfaces.MachineRepository, statuses interfaces.MachineStatusRepository, logger *logging.Logger) interfaces.AnalyticsService {
	return newAnalyticsService(cfg, machines, statuses, logger, func() time.Time { return time.Now().UTC() })
}

func newAnalyticsService(cfg *config.AppConfig, machines interfaces.MachineRepository, statuses interfaces.MachineStatusRepository, logger *logging.Logger, now func() time.Time) *analyticsService {
	target := cfg.Analytics.DailyTargetHours
	if target <= 0 {
		target = 7.5
	}
	return &analyticsService{
		machines:    machines,
		statuses:    statuses,
		targetHours: target,
		logger:      logger.WithPrefix("ANALYTICS"),
		now:         now,
	}
}

// fleet - включенные станки и их интервалы в окне
type fleet struct {
	machines []entities.Machine
	groups   map[string]int // ключ группы -> число станков
	keyOf    map[string]string
}

func (s *analyticsService) Overview(q models.OverviewQuery) (*models.Overview, error) {
	if !q.End.After(q.Start) {
		return nil, fmt.Errorf("window end must be after start: %w", apperrors.ErrInvalidDateRange)
	}
	if q.View == "" {
		q.View = models.ViewAll
	}
	if !models.ValidView(q.View) {
		return nil, fmt.Errorf("%q: %w", q.View, apperrors.ErrInvalidView)
	}

	now := s.now()
	loc := ClientZone(q.UTCOffsetMinutes)
	window := newDateRange(q.Start.In(loc), q.End.In(loc))

	machines, err := s.machines.ListEnabled()
	if err != nil {
		return nil, fmt.Errorf("list machines: %w", err)
	}
	f := newFleet(machines, q.View)

	current, err := s.query(f, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	previous, err := s.query(f, window.PreviousStart, window.PreviousEnd)
	if err != nil {
		return nil, err
	}

	n := len(machines)
	totals := Totals(current, window.Start, window.End, now)
	avail := available(window.Start, window.End, now, n)
	if unknown := avail - sum(totals); unknown > 0 {
		totals[models.StateUnknown] = unknown
	}

	prevTotals := Totals(previous, window.PreviousStart, window.PreviousEnd, now)
	prevAvail := available(window.PreviousStart, window.PreviousEnd, now, n)

	scale, count := SelectScale(window.Start, window.End)
	overview := &models.Overview{
		Scale:       string(scale),
		KPIs:        s.kpis(window, totals, avail, prevTotals, prevAvail, current, previous, n),
		Utilization: series(f, current, Divisions(window.Start, window.End, scale, count), scale, q.View, now),
		States:      distribution(totals, avail),
		Machines:    summaries(machines),
	}

	s.logger.Debug("Overview computed", "scale", scale, "buckets", len(overview.Utilization), "machines", n, "intervals", len(current))
	return overview, nil
}

func (s *analyticsService) Timeline() (*models.Timeline, error) {
	machines, err := s.machines.GetAll()
	if err != nil {
		return nil, fmt.Errorf("list machines: %w", err)
	}
	return &models.Timeline{Machines: summaries(machines)}, nil
}

// query выбирает интервалы окна только для станков парка
func (s *analyticsService) query(f fleet, from, to time.Time) ([]entities.MachineStatus, error) {
	rows, err := s.statuses.QueryOverlapping(interfaces.StatusFilter{}, from, to)
	if err != nil {
		return nil, fmt.Errorf("query intervals: %w", err)
	}
	out := rows[:0]
	for _, r := range rows {
		if _, ok := f.keyOf[r.MachineID]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func newFleet(machines []entities.Machine, view string) fleet {
	f := fleet{
		machines: machines,
		groups:   make(map[string]int),
		keyOf:    make(map[string]string, len(machines)),
	}
	for _, m := range machines {
		key := m.ID
		if view == models.ViewGroup {
			key = m.Type
			if key == "" {
				key = unknownGroup
			}
		}
		f.keyOf[m.ID] = key
		f.groups[key]++
	}
	return f
}

func (s *analyticsService) kpis(
	window DateRange,
	totals map[models.State]int64, avail int64,
	prevTotals map[models.State]int64, prevAvail int64,
	current, previous []entities.MachineStatus,
	machines int,
) models.KPIs {
	active := totals[models.StateActive]
	prevActive := prevTotals[models.StateActive]

	utilization := percent(active, avail)
	prevUtilization := percent(prevActive, prevAvail)

	var runtime, prevRuntime float64
	if machines > 0 {
		runtime = float64(active) / float64(machines)
		prevRuntime = float64(prevActive) / float64(machines)
	}

	alarms := countState(current, models.StateAlarm)
	prevAlarms := countState(previous, models.StateAlarm)

	days := math.Ceil(window.End.Sub(window.Start).Hours() / 24)
	target := s.targetHours * float64(time.Hour.Milliseconds()) * float64(machines) * days
	var attainment float64
	if target > 0 {
		attainment = float64(active) / target * 100
	}

	return models.KPIs{
		Utilization:      models.KPI{Value: utilization, Change: change(utilization, prevUtilization)},
		AverageRuntime:   models.KPI{Value: runtime, Change: change(runtime, prevRuntime)},
		AlarmCount:       models.KPI{Value: float64(alarms), Change: change(float64(alarms), float64(prevAlarms))},
		TargetAttainment: models.KPI{Value: attainment},
	}
}

// series строит ряд загрузки. Интервал, начинающийся в будущем, получает nil вместо нуля.
func series(f fleet, statuses []entities.MachineStatus, divisions []Division, scale Scale, view string, now time.Time) []models.UtilizationPoint {
	var byGroup map[string][]entities.MachineStatus
	if view != models.ViewAll {
		byGroup = make(map[string][]entities.MachineStatus, len(f.groups))
		for _, st := range statuses {
			key := f.keyOf[st.MachineID]
			byGroup[key] = append(byGroup[key], st)
		}
	}

	points := make([]models.UtilizationPoint, 0, len(divisions))
	for _, d := range divisions {
		future := d.Start.After(now)
		bucket := d.End.Sub(d.Start).Milliseconds()

		active := Totals(statuses, d.Start, d.End, now)[models.StateActive]
		point := models.UtilizationPoint{
			Label:       Label(d.Start, scale),
			RangeLabel:  RangeLabel(d.Start, d.End, scale),
			Start:       d.Start,
			End:         d.End,
			Utilization: bucketUtilization(active, bucket*int64(len(f.machines)), future),
			Runtime:     active,
		}

		if byGroup != nil {
			point.Groups = make(map[string]models.GroupUtilization, len(f.groups))
			for key, count := range f.groups {
				groupActive := Totals(byGroup[key], d.Start, d.End, now)[models.StateActive]
				point.Groups[key] = models.GroupUtilization{
					Utilization: bucketUtilization(groupActive, bucket*int64(count), future),
					Runtime:     groupActive,
				}
			}
		}
		points = append(points, point)
	}
	return points
}

func bucketUtilization(active, total int64, future bool) *float64 {
	if future || total <= 0 {
		return nil
	}
	v := round2(float64(active) / float64(total) * 100)
	return &v
}

// distribution - доли состояний в доступном времени, включая UNKNOWN
func distribution(totals map[models.State]int64, avail int64) []models.StateTotal {
	out := make([]models.StateTotal, 0, len(models.AllStates))
	for _, st := range models.AllStates {
		out = append(out, models.StateTotal{
			State:      st,
			Total:      totals[st],
			Percentage: percent(totals[st], avail),
		})
	}
	return out
}

func summaries(machines []entities.Machine) []models.MachineSummary {
	out := make([]models.MachineSummary, 0, len(machines))
	for _, m := range machines {
		out = append(out, models.MachineSummary{ID: m.ID, Name: m.Name, Type: m.Type})
	}
	return out
}

func countState(statuses []entities.MachineStatus, state models.State) int {
	n := 0
	for _, s := range statuses {
		if s.State == state {
			n++
		}
	}
	return n
}

func percent(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// change - изменение в процентах относительно предыдущего окна; 0, если там был ноль
func change(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
