package protocol

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iwtcode/machineMonitor/internal/config"
	"github.com/iwtcode/machineMonitor/internal/domain/entities"
	"github.com/iwtcode/machineMonitor/internal/domain/models"
	"github.com/iwtcode/machineMonitor/internal/middleware/logging"
	apperrors "github.com/iwtcode/machineMonitor/pkg/errors"
)

// maxPayloadSize ограничивает размер ответа контроллера
const maxPayloadSize = 4 << 20

// resetTimeout - адаптер переподключает все станки, это дольше обычного опроса
const resetTimeout = 10 * time.Second

// Adapter снимает сырую телеметрию со станка по HTTP.
// Каждый запрос ограничен собственным таймаутом, поэтому медленный станок не задерживает остальных.
type Adapter struct {
	client  *http.Client
	timeout time.Duration
	apiKey  string
	fanuc   string
	logger  *logging.Logger
}

func NewAdapter(cfg *config.AppConfig, logger *logging.Logger) *Adapter {
	return &Adapter{
		client:  &http.Client{},
		timeout: cfg.Monitor.PollTimeout,
		apiKey:  cfg.Monitor.FanucAPIKey,
		fanuc:   strings.TrimSuffix(cfg.Monitor.FanucAdapterURL, "/"),
		logger:  logger.WithPrefix("ADAPTER"),
	}
}

// Fetch возвращает тело ответа либо PollFailure. Паники и "исключений" нет:
// любая ошибка транспорта становится значением.
func (a *Adapter) Fetch(ctx context.Context, machine entities.Machine) (string, *models.PollFailure) {
	endpoint := machine.Endpoint()
	if endpoint == "" {
		return "", models.NewPollFailure(models.FailureConfig, fmt.Errorf("machine %s has no connection endpoint", machine.ID))
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", models.NewPollFailure(models.FailureConfig, err)
	}

	if err := a.decorate(req, machine); err != nil {
		return "", models.NewPollFailure(models.FailureConfig, err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", models.NewPollFailure(models.FailureTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxPayloadSize))
		return "", models.NewPollFailure(models.FailureTransport, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadSize))
	if err != nil {
		return "", models.NewPollFailure(models.FailureTransport, err)
	}

	a.logger.Debug("Telemetry fetched", "machineID", machine.ID, "endpoint", endpoint, "bytes", len(body))
	return string(body), nil
}

// ResetFanucAdapter просит адаптер FANUC переподключиться к своим станкам.
// Ответ адаптера возвращается без разбора.
func (a *Adapter) ResetFanucAdapter(ctx context.Context) (json.RawMessage, error) {
	if a.fanuc == "" {
		return nil, apperrors.ErrAdapterNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, resetTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.fanuc+"/api/reset", nil)
	if err != nil {
		return nil, fmt.Errorf("build reset request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrAdapterUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrAdapterUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", apperrors.ErrAdapterUnavailable, resp.StatusCode)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: response is not json", apperrors.ErrAdapterUnavailable)
	}

	a.logger.Info("FANUC adapter reset", "url", a.fanuc)
	return json.RawMessage(body), nil
}

// decorate выставляет заголовки, специфичные для протокола станка
func (a *Adapter) decorate(req *http.Request, machine entities.Machine) error {
	req.Header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Expires", "0")

	switch ProtocolOf(machine) {
	case entities.ProtocolMTConnect:
		req.Header.Set("Accept", "application/xml, text/xml, text/plain")
	case entities.ProtocolFanucAdapter:
		// общий секрет адаптера FANUC, не граница безопасности
		req.Header.Set("X-API-Key", a.apiKey)
		req.Header.Set("Accept", "application/json, text/plain")
	default:
		return errors.New("unsupported protocol " + string(machine.Protocol))
	}
	return nil
}

// ProtocolOf возвращает протокол станка, подставляя протокол по умолчанию для его семейства
func ProtocolOf(machine entities.Machine) entities.ProtocolType {
	if machine.Protocol != "" {
		return machine.Protocol
	}
	return entities.DefaultProtocol(machine.ControllerType)
}
