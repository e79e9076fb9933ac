package handlers

import (
	"net/http"

	"github.com/iwtcode/machineMonitor/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// StartMonitoring запускает периодический опрос парка.
// @Summary Запустить мониторинг
// @Description Запускает опрос всех включенных станков. Повторный запуск ничего не делает.
// @Tags Monitor
// @Produce json
// @Success 200 {object} models.MonitorStatusResponse "Состояние мониторинга после запуска"
// @Failure 500 {object} models.ErrorResponse "Справочник станков недоступен"
// @Router /monitor/start [post]
func (h *Handler) StartMonitoring(c *gin.Context) {
	if err := h.usecase.StartMonitoring(c.Request.Context()); err != nil {
		h.Fail(c, err)
		return
	}
	h.logger.Info("Monitoring start requested")
	h.monitorStatus(c)
}

// StopMonitoring останавливает опрос и закрывает открытые интервалы.
// @Summary Остановить мониторинг
// @Description Останавливает опрос, прерывает запросы в полете и закрывает все открытые интервалы.
// @Tags Monitor
// @Produce json
// @Success 200 {object} models.MonitorStatusResponse "Состояние мониторинга после остановки"
// @Failure 409 {object} models.ErrorResponse "Мониторинг не запущен"
// @Failure 500 {object} models.ErrorResponse "Внутренняя ошибка сервера"
// @Router /monitor/stop [post]
func (h *Handler) StopMonitoring(c *gin.Context) {
	if err := h.usecase.StopMonitoring(c.Request.Context()); err != nil {
		h.Fail(c, err)
		return
	}
	h.logger.Info("Monitoring stop requested")
	h.monitorStatus(c)
}

// ResetMonitoring перезапускает мониторинг с пустым кешем.
// @Summary Перезапустить мониторинг
// @Tags Monitor
// @Produce json
// @Success 200 {object} models.MonitorStatusResponse "Состояние мониторинга после перезапуска"
// @Failure 500 {object} models.ErrorResponse "Внутренняя ошибка сервера"
// @Router /monitor/reset [post]
func (h *Handler) ResetMonitoring(c *gin.Context) {
	if err := h.usecase.ResetMonitoring(c.Request.Context()); err != nil {
		h.Fail(c, err)
		return
	}
	h.logger.Info("Monitoring reset requested")
	h.monitorStatus(c)
}

// PollOnce выполняет один проход опроса вне расписания.
// @Summary Опросить парк
// @Description Выполняет один проход опроса и возвращает полученный снимок.
// @Tags Monitor
// @Produce json
// @Success 200 {object} models.SnapshotResponse "Снимок парка"
// @Failure 500 {object} models.ErrorResponse "Справочник станков недоступен"
// @Router /monitor/poll [post]
func (h *Handler) PollOnce(c *gin.Context) {
	snapshot, err := h.usecase.PollOnce(c.Request.Context())
	if err != nil {
		h.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SnapshotResponse{Status: "ok", Snapshot: snapshot})
}

// MonitorStatus возвращает состояние жизненного цикла мониторинга.
// @Summary Состояние мониторинга
// @Tags Monitor
// @Produce json
// @Success 200 {object} models.MonitorStatusResponse "STOPPED, STARTING, RUNNING или STOPPING"
// @Router /monitor/status [get]
func (h *Handler) MonitorStatus(c *gin.Context) {
	h.monitorStatus(c)
}

func (h *Handler) monitorStatus(c *gin.Context) {
	state := h.usecase.MonitorState()
	c.JSON(http.StatusOK, models.MonitorStatusResponse{
		Status:  "ok",
		State:   state,
		Running: state == "RUNNING",
	})
}

// Snapshot возвращает последний снимок парка из кеша.
// @Summary Текущий снимок парка
// @Description Возвращает состояние каждого включенного станка по последнему опросу без обращения к контроллерам.
// @Tags Monitor
// @Produce json
// @Success 200 {object} models.SnapshotResponse "Снимок парка"
// @Failure 500 {object} models.ErrorResponse "Внутренняя ошибка сервера"
// @Router /monitor/snapshot [get]
func (h *Handler) Snapshot(c *gin.Context) {
	snapshot, err := h.usecase.CurrentSnapshot()
	if err != nil {
		h.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SnapshotResponse{Status: "ok", Snapshot: snapshot})
}

// LiveFeed переключает соединение на WebSocket и рассылает снимки после каждого прохода.
// @Summary Живая лента снимков
// @Tags Monitor
// @Success 101 "Switching Protocols"
// @Router /monitor/ws [get]
func (h *Handler) LiveFeed(c *gin.Context) {
	h.feed.ServeWS(c.Writer, c.Request)
}
