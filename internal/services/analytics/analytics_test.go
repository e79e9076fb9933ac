package analytics

import (
	"testing"
	"time"

	"github.com/iwtcode/machineMonitor/internal/config"
	"github.com/iwtcode/machineMonitor/internal/domain/entities"
	"github.com/iwtcode/machineMonitor/internal/domain/models"
	"github.com/iwtcode/machineMonitor/internal/interfaces"
	"github.com/iwtcode/machineMonitor/internal/middleware/logging"
	apperrors "github.com/iwtcode/machineMonitor/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMachines struct {
	machines []entities.Machine
}

func (f *fakeMachines) ListEnabled() ([]entities.Machine, error) {
	var out []entities.Machine
	for _, m := range f.machines {
		if m.Enabled {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMachines) GetAll() ([]entities.Machine, error) { return f.machines, nil }

func (f *fakeMachines) GetByID(id string) (*entities.Machine, error) {
	for i := range f.machines {
		if f.machines[i].ID == id {
			return &f.machines[i], nil
		}
	}
	return nil, apperrors.ErrMachineNotFound
}

func (f *fakeMachines) Create(*entities.Machine) error { return nil }
func (f *fakeMachines) Update(*entities.Machine) error { return nil }

type fakeStatuses struct {
	interfaces.MachineStatusRepository
	rows []entities.MachineStatus
}

func (f *fakeStatuses) QueryOverlapping(_ interfaces.StatusFilter, from, to time.Time) ([]entities.MachineStatus, error) {
	var out []entities.MachineStatus
	for _, r := range f.rows {
		if r.StartTime.Before(to) && (r.EndTime == nil || r.EndTime.After(from)) {
			out = append(out, r)
		}
	}
	return out, nil
}

var day0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(h float64) time.Time {
	return day0.Add(time.Duration(h * float64(time.Hour)))
}

func interval(machineID string, state models.State, from, to float64) entities.MachineStatus {
	end := at(to)
	return entities.MachineStatus{MachineID: machineID, State: state, StartTime: at(from), EndTime: &end}
}

func machine(id, typ string) entities.Machine {
	return entities.Machine{ID: id, Name: id, Type: typ, ControllerType: entities.ControllerMazak, Enabled: true}
}

func newTestService(machines []entities.Machine, rows []entities.MachineStatus, now time.Time) *analyticsService {
	cfg := &config.AppConfig{Analytics: config.AnalyticsConfig{DailyTargetHours: 7.5}}
	return newAnalyticsService(cfg, &fakeMachines{machines: machines}, &fakeStatuses{rows: rows}, logging.NewNopLogger(), func() time.Time { return now })
}

func oneDay(view string) models.OverviewQuery {
	return models.OverviewQuery{Start: day0, End: day0.Add(24 * time.Hour), View: view}
}

func stateTotal(o *models.Overview, st models.State) models.StateTotal {
	for _, s := range o.States {
		if s.State == st {
			return s
		}
	}
	return models.StateTotal{}
}

func TestOverviewHalfActiveDay(t *testing.T) {
	svc := newTestService(
		[]entities.Machine{machine("m1", "Lathe")},
		[]entities.MachineStatus{
			interval("m1", models.StateActive, 0, 12),
			interval("m1", models.StateIdle, 12, 24),
		},
		at(48),
	)

	o, err := svc.Overview(oneDay(""))
	require.NoError(t, err)

	assert.Equal(t, "hour", o.Scale)
	assert.InDelta(t, 50.0, o.KPIs.Utilization.Value, 1e-9)
	assert.InDelta(t, float64(12*time.Hour/time.Millisecond), o.KPIs.AverageRuntime.Value, 1e-9)
	assert.InDelta(t, 160.0, o.KPIs.TargetAttainment.Value, 1e-9)
	assert.Zero(t, o.KPIs.Utilization.Change, "no previous data")

	require.Len(t, o.Utilization, 24)
	require.NotNil(t, o.Utilization[0].Utilization)
	assert.InDelta(t, 100.0, *o.Utilization[0].Utilization, 1e-9)
	require.NotNil(t, o.Utilization[12].Utilization)
	assert.InDelta(t, 0.0, *o.Utilization[12].Utilization, 1e-9)
	assert.Equal(t, "12:00 AM", o.Utilization[0].Label)
	assert.Nil(t, o.Utilization[0].Groups)

	assert.InDelta(t, 50.0, stateTotal(o, models.StateActive).Percentage, 1e-9)
	assert.Zero(t, stateTotal(o, models.StateUnknown).Total)
	assert.Len(t, o.States, len(models.AllStates))
	assert.Len(t, o.Machines, 1)
}

func TestOverviewUnknownFillsGaps(t *testing.T) {
	svc := newTestService(
		[]entities.Machine{machine("m1", "Lathe")},
		[]entities.MachineStatus{interval("m1", models.StateActive, 0, 6)},
		at(48),
	)

	o, err := svc.Overview(oneDay(models.ViewAll))
	require.NoError(t, err)

	assert.Equal(t, int64(18*time.Hour/time.Millisecond), stateTotal(o, models.StateUnknown).Total)
	assert.InDelta(t, 75.0, stateTotal(o, models.StateUnknown).Percentage, 1e-9)
	assert.InDelta(t, 25.0, o.KPIs.Utilization.Value, 1e-9)
}

func TestOverviewClipsIntervalsToWindow(t *testing.T) {
	open := entities.MachineStatus{MachineID: "m1", State: models.StateActive, StartTime: at(20)}
	svc := newTestService(
		[]entities.Machine{machine("m1", "Lathe")},
		[]entities.MachineStatus{
			interval("m1", models.StateAlarm, -5, 2),
			open,
		},
		at(30),
	)

	o, err := svc.Overview(oneDay(models.ViewAll))
	require.NoError(t, err)

	assert.Equal(t, int64(2*time.Hour/time.Millisecond), stateTotal(o, models.StateAlarm).Total)
	assert.Equal(t, int64(4*time.Hour/time.Millisecond), stateTotal(o, models.StateActive).Total)
	assert.InDelta(t, 1.0, o.KPIs.AlarmCount.Value, 1e-9)
}

func TestOverviewFutureWindowHasNoData(t *testing.T) {
	svc := newTestService(
		[]entities.Machine{machine("m1", "Lathe")},
		nil,
		at(-24),
	)

	o, err := svc.Overview(oneDay(models.ViewAll))
	require.NoError(t, err)

	assert.Zero(t, o.KPIs.Utilization.Value)
	assert.Zero(t, stateTotal(o, models.StateUnknown).Total)
	for _, p := range o.Utilization {
		assert.Nil(t, p.Utilization, p.Label)
	}
}

func TestOverviewPartiallyElapsedWindow(t *testing.T) {
	svc := newTestService(
		[]entities.Machine{machine("m1", "Lathe")},
		[]entities.MachineStatus{{MachineID: "m1", State: models.StateActive, StartTime: at(0)}},
		at(6.5),
	)

	o, err := svc.Overview(oneDay(models.ViewAll))
	require.NoError(t, err)

	assert.InDelta(t, 100.0, o.KPIs.Utilization.Value, 1e-9)
	require.NotNil(t, o.Utilization[6].Utilization)
	assert.InDelta(t, 50.0, *o.Utilization[6].Utilization, 1e-9)
	assert.Nil(t, o.Utilization[7].Utilization)
	assert.Nil(t, o.Utilization[23].Utilization)
}

func TestOverviewGroupAndMachineViews(t *testing.T) {
	disabled := machine("m4", "Lathe")
	disabled.Enabled = false
	machines := []entities.Machine{machine("m1", "Lathe"), machine("m2", "Lathe"), machine("m3", "Mill"), machine("m5", ""), disabled}
	rows := []entities.MachineStatus{
		interval("m1", models.StateActive, 0, 24),
		interval("m3", models.StateActive, 0, 12),
		interval("m4", models.StateActive, 0, 24),
	}
	svc := newTestService(machines, rows, at(48))

	o, err := svc.Overview(oneDay(models.ViewGroup))
	require.NoError(t, err)

	groups := o.Utilization[0].Groups
	require.Len(t, groups, 3)
	require.NotNil(t, groups["Lathe"].Utilization)
	assert.InDelta(t, 50.0, *groups["Lathe"].Utilization, 1e-9)
	assert.InDelta(t, 100.0, *groups["Mill"].Utilization, 1e-9)
	assert.InDelta(t, 0.0, *groups[unknownGroup].Utilization, 1e-9)
	assert.InDelta(t, 0.0, *o.Utilization[13].Groups["Mill"].Utilization, 1e-9)
	assert.Len(t, o.Machines, 4, "disabled machines are excluded")

	o, err = svc.Overview(oneDay(models.ViewMachine))
	require.NoError(t, err)
	groups = o.Utilization[0].Groups
	require.Len(t, groups, 4)
	assert.InDelta(t, 100.0, *groups["m1"].Utilization, 1e-9)
	assert.InDelta(t, 0.0, *groups["m2"].Utilization, 1e-9)
	assert.NotContains(t, groups, "m4")
}

func TestOverviewChangeAgainstPreviousWindow(t *testing.T) {
	svc := newTestService(
		[]entities.Machine{machine("m1", "Lathe")},
		[]entities.MachineStatus{
			interval("m1", models.StateAlarm, -20, -19),
			interval("m1", models.StateAlarm, -10, -9),
			interval("m1", models.StateActive, -6, 0),
			interval("m1", models.StateAlarm, 1, 2),
			interval("m1", models.StateAlarm, 3, 4),
			interval("m1", models.StateAlarm, 5, 6),
			interval("m1", models.StateActive, 6, 18),
		},
		at(48),
	)

	o, err := svc.Overview(oneDay(models.ViewAll))
	require.NoError(t, err)

	assert.InDelta(t, 3.0, o.KPIs.AlarmCount.Value, 1e-9)
	assert.InDelta(t, 50.0, o.KPIs.AlarmCount.Change, 1e-9)
	assert.InDelta(t, 100.0, o.KPIs.Utilization.Change, 1e-9)
	assert.InDelta(t, 100.0, o.KPIs.AverageRuntime.Change, 1e-9)
}

func TestOverviewValidation(t *testing.T) {
	svc := newTestService(nil, nil, at(48))

	_, err := svc.Overview(models.OverviewQuery{Start: day0, End: day0, View: models.ViewAll})
	assert.ErrorIs(t, err, apperrors.ErrInvalidDateRange)

	_, err = svc.Overview(oneDay("cell"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidView)

	o, err := svc.Overview(oneDay(models.ViewAll))
	require.NoError(t, err)
	assert.Zero(t, o.KPIs.Utilization.Value)
	assert.Zero(t, o.KPIs.TargetAttainment.Value)
	assert.Nil(t, o.Utilization[0].Utilization, "no machines means no data")
}

func TestTimelineListsAllMachines(t *testing.T) {
	disabled := machine("m2", "Mill")
	disabled.Enabled = false
	svc := newTestService([]entities.Machine{machine("m1", "Lathe"), disabled}, nil, at(0))

	tl, err := svc.Timeline()
	require.NoError(t, err)
	assert.Len(t, tl.Machines, 2)

	empty := newTestService(nil, nil, at(0))
	tl, err = empty.Timeline()
	require.NoError(t, err)
	assert.NotNil(t, tl.Machines)
	assert.Empty(t, tl.Machines)
}

func TestSelectScale(t *testing.T) {
	cases := []struct {
		days  float64
		scale Scale
		count int
	}{
		{1, ScaleHour, 24},
		{3, ScaleHour, 72},
		{4, ScaleDay, 4},
		{20, ScaleDay, 20},
		{21, ScaleWeek, 3},
		{85, ScaleMonth, 3},
		{365, ScaleMonth, 12},
		{600, ScaleYear, 2},
	}
	for _, c := range cases {
		scale, count := SelectScale(day0, day0.Add(time.Duration(c.days*float64(day))))
		assert.Equal(t, c.scale, scale, "days=%v", c.days)
		assert.Equal(t, c.count, count, "days=%v", c.days)
	}

	scale, count := SelectScale(day0, day0.Add(time.Minute))
	assert.Equal(t, ScaleHour, scale)
	assert.Equal(t, 1, count)
}

func TestDivisions(t *testing.T) {
	end := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	d := Divisions(day0, end, ScaleMonth, 3)
	require.Len(t, d, 3)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), d[0].End)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), d[2].Start)
	assert.Equal(t, end, d[2].End)

	d = Divisions(day0, at(3), ScaleHour, 2)
	require.Len(t, d, 2)
	assert.Equal(t, at(3), d[1].End, "last division is stretched to the window end")

	d = Divisions(day0, at(2.5), ScaleHour, 5)
	require.Len(t, d, 3, "divisions past the window end are skipped")
	assert.Equal(t, at(2.5), d[2].End)
}

func TestLabels(t *testing.T) {
	ts := time.Date(2024, 5, 7, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, "3:00 PM", Label(ts, ScaleHour))
	assert.Equal(t, "May 7", Label(ts, ScaleDay))
	assert.Equal(t, "Week of May 7", Label(ts, ScaleWeek))
	assert.Equal(t, "May 2024", Label(ts, ScaleMonth))
	assert.Equal(t, "Q2 2024", Label(ts, ScaleQuarter))
	assert.Equal(t, "2024", Label(ts, ScaleYear))

	assert.Equal(t, "3:00 PM - 4:00 PM", RangeLabel(ts, ts.Add(30*time.Minute), ScaleHour))
	assert.Equal(t, "3:00 PM - 4:00 PM", RangeLabel(ts, ts.Add(time.Hour), ScaleHour))
	assert.Equal(t, "May 7 - May 14", RangeLabel(ts, ts.AddDate(0, 0, 7), ScaleWeek))
}

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("2024-01-01", "2024-01-01", 300)
	require.NoError(t, err)

	assert.True(t, r.Start.Equal(time.Date(2024, 1, 1, 5, 0, 0, 0, time.UTC)))
	assert.True(t, r.End.Equal(time.Date(2024, 1, 2, 5, 0, 0, 0, time.UTC)))
	assert.True(t, r.PreviousStart.Equal(time.Date(2023, 12, 31, 5, 0, 0, 0, time.UTC)))
	assert.True(t, r.PreviousEnd.Equal(r.Start))

	_, err = ParseDateRange("2024-13-01", "2024-01-01", 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDateRange)

	_, err = ParseDateRange("2024-01-05", "2024-01-01", 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDateRange)
}
