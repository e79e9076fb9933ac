package handlers

import (
	"net/http"
	"time"

	"github.com/iwtcode/machineMonitor/internal/config"
	"github.com/iwtcode/machineMonitor/internal/interfaces"
	"github.com/iwtcode/machineMonitor/internal/middleware/logging"
	"github.com/iwtcode/machineMonitor/internal/middleware/swagger"

	"github.com/gin-gonic/gin"
)

// LiveFeed раздает снимки парка по WebSocket
type LiveFeed interface {
	ServeWS(w http.ResponseWriter, r *http.Request)
}

// HTTPMetrics учитывает запросы и отдает показатели в формате Prometheus
type HTTPMetrics interface {
	Handler() http.Handler
	ObserveHTTP(route string, status int, d time.Duration)
}

// Handler - структура для обработчиков HTTP-запросов
type Handler struct {
	usecase interfaces.Usecases
	feed    LiveFeed
	metrics HTTPMetrics
	logger  *logging.Logger
}

// NewHandler создает новый экземпляр Handler
func NewHandler(usecase interfaces.Usecases, feed LiveFeed, metrics HTTPMetrics, logger *logging.Logger) *Handler {
	return &Handler{
		usecase: usecase,
		feed:    feed,
		metrics: metrics,
		logger:  logger.WithPrefix("HANDLER"),
	}
}

// ProvideRouter настраивает и возвращает HTTP-роутер
func ProvideRouter(h *Handler, cfg *config.AppConfig, swagCfg *swagger.Config) http.Handler {
	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(gin.Recovery())

	// Swagger
	swagger.Setup(router, swagCfg)

	// Prometheus
	router.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	// Logger Middleware
	router.Use(LoggingMiddleware(h.logger), MetricsMiddleware(h.metrics))

	// Группа API v1
	v1 := router.Group("/api/v1")
	{
		monitor := v1.Group("/monitor")
		{
			monitor.POST("/start", h.StartMonitoring)
			monitor.POST("/stop", h.StopMonitoring)
			monitor.POST("/reset", h.ResetMonitoring)
			monitor.POST("/poll", h.PollOnce)
			monitor.GET("/status", h.MonitorStatus)
			monitor.GET("/snapshot", h.Snapshot)
			monitor.GET("/ws", h.LiveFeed)
		}

		machines := v1.Group("/machines")
		{
			machines.GET("/overview", h.Overview)
			machines.GET("/timeline", h.Timeline)

			machines.GET("", h.ListMachines)
			machines.POST("", h.CreateMachine)
			machines.PUT("/:id", h.UpdateMachine)

			machines.POST("/:id/status", h.CreateStatus)
			machines.POST("/:id/status/close", h.CloseStatus)
		}

		v1.POST("/adapters/fanuc/reset", h.ResetFanucAdapter)
	}

	return router
}
