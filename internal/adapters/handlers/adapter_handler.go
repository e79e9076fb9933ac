package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iwtcode/machineMonitor/internal/domain/models"
)

// ResetFanucAdapter передает команду сброса внешнему адаптеру FANUC.
// @Summary Сбросить адаптер FANUC
// @Description Отправляет POST /api/reset адаптеру FANUC и возвращает его ответ без изменений.
// @Tags Adapters
// @Produce json
// @Success 200 {object} models.AdapterResetResponse "Ответ адаптера"
// @Failure 502 {object} models.ErrorResponse "Адаптер недоступен или ответил ошибкой"
// @Failure 503 {object} models.ErrorResponse "Адрес адаптера не настроен"
// @Router /adapters/fanuc/reset [post]
func (h *Handler) ResetFanucAdapter(c *gin.Context) {
	payload, err := h.usecase.ResetFanucAdapter(c.Request.Context())
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.logger.Info("FANUC adapter reset requested")
	c.JSON(http.StatusOK, models.AdapterResetResponse{Status: "ok", Adapter: payload})
}
