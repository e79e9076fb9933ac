package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/iwtcode/machineMonitor/internal/adapters/handlers"
	"github.com/iwtcode/machineMonitor/internal/config"
	"github.com/iwtcode/machineMonitor/internal/domain/entities"
	"github.com/iwtcode/machineMonitor/internal/domain/models"
	"github.com/iwtcode/machineMonitor/internal/middleware/logging"
	"github.com/iwtcode/machineMonitor/internal/middleware/swagger"
	"github.com/iwtcode/machineMonitor/internal/services/metrics"
	apperrors "github.com/iwtcode/machineMonitor/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsecases struct {
	state string

	overviewArgs []interface{}
	overviewErr  error

	machines   []entities.Machine
	machineErr error
	created    *models.MachineRequest

	statusErr error
	stopErr   error

	resetPayload json.RawMessage
	resetErr     error
}

func (f *fakeUsecases) StartMonitoring(context.Context) error { f.state = "RUNNING"; return nil }
func (f *fakeUsecases) StopMonitoring(context.Context) error {
	if f.stopErr != nil {
		return f.stopErr
	}
	f.state = "STOPPED"
	return nil
}
func (f *fakeUsecases) ResetMonitoring(context.Context) error { f.state = "RUNNING"; return nil }
func (f *fakeUsecases) MonitorState() string                  { return f.state }

func (f *fakeUsecases) PollOnce(context.Context) (models.FleetSnapshot, error) {
	return f.CurrentSnapshot()
}

func (f *fakeUsecases) CurrentSnapshot() (models.FleetSnapshot, error) {
	return models.FleetSnapshot{Machines: []models.MachineSnapshot{{MachineID: "m1", State: models.StateActive}}}, nil
}

func (f *fakeUsecases) GetOverview(startDate, endDate, view string, offset int) (*models.Overview, error) {
	f.overviewArgs = []interface{}{startDate, endDate, view, offset}
	if f.overviewErr != nil {
		return nil, f.overviewErr
	}
	return &models.Overview{Scale: "day"}, nil
}

func (f *fakeUsecases) GetTimeline() (*models.Timeline, error) {
	return &models.Timeline{Machines: []models.MachineSummary{}}, nil
}

func (f *fakeUsecases) CloseStatus(machineID string) (*entities.MachineStatus, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return &entities.MachineStatus{MachineID: machineID, State: models.StateIdle}, nil
}

func (f *fakeUsecases) CreateStatus(machineID string, state models.State) (*entities.MachineStatus, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return &entities.MachineStatus{MachineID: machineID, State: state}, nil
}

func (f *fakeUsecases) ListMachines() ([]entities.Machine, error) {
	return f.machines, f.machineErr
}

func (f *fakeUsecases) CreateMachine(req models.MachineRequest) (*entities.Machine, error) {
	f.created = &req
	return &entities.Machine{ID: "new", Name: req.Name}, nil
}

func (f *fakeUsecases) UpdateMachine(id string, req models.MachineRequest) (*entities.Machine, error) {
	if id != "m1" {
		return nil, fmt.Errorf("machine %s: %w", id, apperrors.ErrMachineNotFound)
	}
	return &entities.Machine{ID: id, Name: req.Name}, nil
}

func (f *fakeUsecases) ResetFanucAdapter(context.Context) (json.RawMessage, error) {
	return f.resetPayload, f.resetErr
}

type fakeFeed struct{}

func (fakeFeed) ServeWS(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusTeapot)
}

type envelope struct {
	Status string `json:"status"`
	Error  struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func setup(t *testing.T, uc *fakeUsecases) http.Handler {
	t.Helper()
	h := handlers.NewHandler(uc, fakeFeed{}, metrics.NewMetrics(), logging.NewNopLogger())
	return handlers.ProvideRouter(h, &config.AppConfig{GinMode: gin.TestMode}, &swagger.Config{Enabled: false})
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	assert.Equal(t, "error", e.Status)
	assert.Equal(t, w.Code, e.Error.Code)
	return e
}

func TestMonitorEndpoints(t *testing.T) {
	uc := &fakeUsecases{state: "STOPPED"}
	router := setup(t, uc)

	w := do(router, http.MethodPost, "/api/v1/monitor/start", "")
	require.Equal(t, http.StatusOK, w.Code)
	var status models.MonitorStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "RUNNING", status.State)
	assert.True(t, status.Running)

	w = do(router, http.MethodPost, "/api/v1/monitor/stop", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"STOPPED"`)

	w = do(router, http.MethodGet, "/api/v1/monitor/snapshot", "")
	require.Equal(t, http.StatusOK, w.Code)
	var snap models.SnapshotResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	require.Len(t, snap.Snapshot.Machines, 1)
	assert.Equal(t, models.StateActive, snap.Snapshot.Machines[0].State)

	w = do(router, http.MethodGet, "/api/v1/monitor/ws", "")
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestOverviewQueryHandling(t *testing.T) {
	uc := &fakeUsecases{}
	router := setup(t, uc)

	w := do(router, http.MethodGet, "/api/v1/machines/overview?startDate=2024-01-01", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	decodeError(t, w)

	w = do(router, http.MethodGet, "/api/v1/machines/overview?startDate=2024-01-01&endDate=2024-01-02&utcOffset=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodGet, "/api/v1/machines/overview?startDate=2024-01-01&endDate=2024-01-02&utcOffset=300", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{"2024-01-01", "2024-01-02", "all", 300}, uc.overviewArgs)
	assert.Contains(t, w.Body.String(), `"scale":"day"`)

	uc.overviewErr = fmt.Errorf("%q: %w", "cell", apperrors.ErrInvalidView)
	w = do(router, http.MethodGet, "/api/v1/machines/overview?startDate=2024-01-01&endDate=2024-01-02&view=cell", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w).Error.Message, "invalid view")
}

func TestMachineEndpoints(t *testing.T) {
	uc := &fakeUsecases{machines: []entities.Machine{{ID: "m1", Name: "Lathe #1"}}}
	router := setup(t, uc)

	w := do(router, http.MethodGet, "/api/v1/machines", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)

	w = do(router, http.MethodPost, "/api/v1/machines", `{"name":"Mill","controller_type":"HAAS"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, uc.created)

	w = do(router, http.MethodPost, "/api/v1/machines", `{"name":"Mill","type":"Mill","controller_type":"FANUC","host":"10.0.0.5"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, uc.created)
	assert.Equal(t, "FANUC", uc.created.ControllerType)

	w = do(router, http.MethodPut, "/api/v1/machines/ghost", `{"name":"Mill","controller_type":"MAZAK"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.True(t, strings.HasPrefix(decodeError(t, w).Error.Message, apperrors.NotFound))
}

func TestStatusEndpoints(t *testing.T) {
	uc := &fakeUsecases{}
	router := setup(t, uc)

	w := do(router, http.MethodPost, "/api/v1/machines/m1/status", `{"state":"SETUP"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"SETUP"`)

	w = do(router, http.MethodPost, "/api/v1/machines/m1/status", `{"state":"UNKNOWN"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	uc.statusErr = fmt.Errorf("m1: %w", apperrors.ErrStatusNotFound)
	w = do(router, http.MethodPost, "/api/v1/machines/m1/status/close", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	decodeError(t, w)
}

func TestInternalErrorHidesDetails(t *testing.T) {
	router := setup(t, &fakeUsecases{machineErr: errors.New("connection refused")})

	w := do(router, http.MethodGet, "/api/v1/machines", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	e := decodeError(t, w)
	assert.Equal(t, apperrors.InternalServerError, e.Error.Message)
}

func TestMetricsEndpointCountsRoutes(t *testing.T) {
	router := setup(t, &fakeUsecases{})

	do(router, http.MethodGet, "/api/v1/machines/timeline", "")

	w := do(router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `machine_monitor_http_requests_total{route="/api/v1/machines/timeline",status="200"} 1`)
}

func TestSwaggerDocServed(t *testing.T) {
	h := handlers.NewHandler(&fakeUsecases{}, fakeFeed{}, metrics.NewMetrics(), logging.NewNopLogger())
	router := handlers.ProvideRouter(h, &config.AppConfig{GinMode: gin.TestMode},
		&swagger.Config{Enabled: true, Path: "/swagger", Host: "monitor.local:9000"})

	w := do(router, http.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"/monitor/start"`)
	assert.Contains(t, w.Body.String(), `"host": "monitor.local:9000"`)
}

func TestStopWhenIdleIsConflict(t *testing.T) {
	uc := &fakeUsecases{state: "STOPPED", stopErr: fmt.Errorf("stop requested in state STOPPED: %w", apperrors.ErrMonitorNotRunning)}
	w := do(setup(t, uc), http.MethodPost, "/api/v1/monitor/stop", "")

	require.Equal(t, http.StatusConflict, w.Code)
	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Error.Message, "monitor is not running")
}

func TestResetFanucAdapter(t *testing.T) {
	uc := &fakeUsecases{resetPayload: json.RawMessage(`{"status":"reconnected","machines":3}`)}
	w := do(setup(t, uc), http.MethodPost, "/api/v1/adapters/fanuc/reset", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Status  string `json:"status"`
		Adapter struct {
			Status   string `json:"status"`
			Machines int    `json:"machines"`
		} `json:"adapter"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "reconnected", resp.Adapter.Status)
	assert.Equal(t, 3, resp.Adapter.Machines)
}

func TestResetFanucAdapterErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not configured", apperrors.ErrAdapterNotConfigured, http.StatusServiceUnavailable},
		{"unavailable", fmt.Errorf("%w: unexpected status 500", apperrors.ErrAdapterUnavailable), http.StatusBadGateway},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(setup(t, &fakeUsecases{resetErr: tt.err}), http.MethodPost, "/api/v1/adapters/fanuc/reset", "")
			require.Equal(t, tt.code, w.Code)

			var resp envelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}
