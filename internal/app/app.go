package app

import (
	"context"
	"net/http"
	"time"

	"github.com/iwtcode/machineMonitor/internal/adapters/handlers"
	"github.com/iwtcode/machineMonitor/internal/adapters/repositories/postgres"
	"github.com/iwtcode/machineMonitor/internal/config"
	"github.com/iwtcode/machineMonitor/internal/interfaces"
	"github.com/iwtcode/machineMonitor/internal/middleware/logging"
	"github.com/iwtcode/machineMonitor/internal/middleware/swagger"
	"github.com/iwtcode/machineMonitor/internal/services/analytics"
	"github.com/iwtcode/machineMonitor/internal/services/broadcast"
	"github.com/iwtcode/machineMonitor/internal/services/cache"
	"github.com/iwtcode/machineMonitor/internal/services/ledger"
	"github.com/iwtcode/machineMonitor/internal/services/metrics"
	"github.com/iwtcode/machineMonitor/internal/services/monitor_service"
	"github.com/iwtcode/machineMonitor/internal/services/protocol"
	"github.com/iwtcode/machineMonitor/internal/usecases"

	"go.uber.org/fx"
)

// New создает новый экземпляр fx.App
func New() *fx.App {
	return fx.New(
		ConfigModule,
		LoggingModule,
		RepositoryModule,
		MetricsModule,
		BroadcastModule,
		ServiceModule,
		UsecaseModule,
		HttpServerModule,
		// Invoke-функции для запуска фоновых задач и хуков жизненного цикла
		fx.Invoke(InvokeMonitor),
	)
}

// --- Модули FX ---

var ConfigModule = fx.Module("config_module",
	fx.Provide(config.LoadConfiguration),
)

func ProvideLogger(cfg *config.AppConfig) *logging.Logger {
	loggerCfg := &logging.Config{
		Enabled:    cfg.Logging.Enable,
		Level:      cfg.Logging.Level,
		LogsDir:    cfg.Logging.LogsDir,
		SavingDays: uint(cfg.Logging.SavingDays),
	}
	return logging.NewLogger(loggerCfg, "MachineMonitorApp")
}

var LoggingModule = fx.Module("logging_module",
	fx.Provide(ProvideLogger),
)

func ProvideMachineRepository(repo *postgres.Repository) interfaces.MachineRepository {
	return repo.Machines
}

func ProvideStatusRepository(repo *postgres.Repository) interfaces.MachineStatusRepository {
	return repo.Statuses
}

var RepositoryModule = fx.Module("repository_module",
	fx.Provide(
		postgres.NewRepository,
		ProvideMachineRepository,
		ProvideStatusRepository,
	),
)

var MetricsModule = fx.Module("metrics_module",
	fx.Provide(metrics.NewMetrics),
)

// ProvideBroadcaster собирает каналы рассылки: WebSocket всегда, Kafka и MQTT по конфигурации.
// Недоступный MQTT брокер не мешает запуску.
func ProvideBroadcaster(cfg *config.AppConfig, hub *broadcast.Hub, m *metrics.Metrics, logger *logging.Logger) interfaces.Broadcaster {
	sinks := []broadcast.Sink{hub}

	if cfg.Broadcast.KafkaEnable {
		sinks = append(sinks, broadcast.NewKafkaProducer(cfg, logger, m.BroadcastFailure))
	}
	if cfg.Broadcast.MQTTBroker != "" {
		publisher, err := broadcast.NewMQTTPublisher(cfg, logger, m.BroadcastFailure)
		if err != nil {
			logger.Warn("MQTT publisher disabled", "broker", cfg.Broadcast.MQTTBroker, "error", err)
		} else {
			sinks = append(sinks, publisher)
		}
	}

	fanout := broadcast.NewFanout(m, logger, sinks...)
	logger.Info("Broadcast sinks configured", "sinks", fanout.Sinks())
	return fanout
}

func ProvideHub(cfg *config.AppConfig, logger *logging.Logger) *broadcast.Hub {
	return broadcast.NewHub(cfg.Broadcast.WSBuffer, logger)
}

var BroadcastModule = fx.Module("broadcast_module",
	fx.Provide(
		ProvideHub,
		ProvideBroadcaster,
	),
)

func ProvideCache(m *metrics.Metrics) interfaces.SnapshotCache {
	return cache.New(m)
}

func ProvideLedger(repo interfaces.MachineStatusRepository, m *metrics.Metrics, logger *logging.Logger) *ledger.Ledger {
	return ledger.New(repo, m, logger)
}

func ProvideMonitorService(
	cfg *config.AppConfig,
	machines interfaces.MachineRepository,
	source interfaces.TelemetrySource,
	l *ledger.Ledger,
	snapshots interfaces.SnapshotCache,
	broadcaster interfaces.Broadcaster,
	m *metrics.Metrics,
	logger *logging.Logger,
) interfaces.MonitorService {
	return monitor_service.NewMonitorService(cfg, machines, source, l, snapshots, broadcaster, m, logger)
}

func ProvideAdapterControl(a *protocol.Adapter) interfaces.AdapterControl {
	return a
}

var ServiceModule = fx.Module("service_module",
	fx.Provide(
		ProvideCache,
		ProvideLedger,
		protocol.NewAdapter,
		ProvideAdapterControl,
		monitor_service.NewTelemetrySource,
		ProvideMonitorService,
		analytics.NewAnalyticsService,
	),
)

var UsecaseModule = fx.Module("usecases_module",
	fx.Provide(usecases.NewUsecases),
)

func NewSwaggerConfig(cfg *config.AppConfig) *swagger.Config {
	return &swagger.Config{
		Enabled: cfg.GinMode != "release",
		Path:    "/swagger",
		Host:    "localhost:" + cfg.ServerPort,
	}
}

func ProvideHandler(uc interfaces.Usecases, hub *broadcast.Hub, m *metrics.Metrics, logger *logging.Logger) *handlers.Handler {
	return handlers.NewHandler(uc, hub, m, logger)
}

var HttpServerModule = fx.Module("http_server_module",
	fx.Provide(
		NewSwaggerConfig,
		ProvideHandler,
		handlers.ProvideRouter,
	),
	fx.Invoke(InvokeHttpServer),
)

// InvokeMonitor запускает опрос при старте и закрывает открытые интервалы при остановке.
// Если справочник станков недоступен, приложение не стартует.
func InvokeMonitor(lc fx.Lifecycle, cfg *config.AppConfig, monitor interfaces.MonitorService, broadcaster interfaces.Broadcaster, logger *logging.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !cfg.Monitor.AutoStart {
				logger.Info("Monitor autostart disabled, waiting for /monitor/start")
				return nil
			}
			if err := monitor.Start(ctx); err != nil {
				logger.Error("FATAL: Failed to start monitoring", "error", err)
				return err // Это остановит запуск приложения
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping monitoring...")
			if err := monitor.Stop(ctx); err != nil {
				logger.Error("Failed to stop monitoring cleanly", "error", err)
			}
			return broadcaster.Close()
		},
	})
}

// InvokeHttpServer запускает HTTP-сервер.
func InvokeHttpServer(lc fx.Lifecycle, cfg *config.AppConfig, h http.Handler, logger *logging.Logger) {
	serverAddr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     h,
		ReadTimeout: 10 * time.Second,
		// WriteTimeout не задан: /monitor/ws держит соединение открытым
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("HTTP Server is starting", "address", serverAddr)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("Failed to start server", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server...")
			return server.Shutdown(ctx)
		},
	})
}
