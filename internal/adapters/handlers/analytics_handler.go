package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/iwtcode/machineMonitor/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// Overview возвращает KPI, ряд загрузки и распределение состояний за период.
// @Summary Аналитика загрузки
// @Description Даты задаются в часовом поясе клиента; endDate включается в окно целиком.
// @Tags Analytics
// @Produce json
// @Param startDate query string true "Первый день окна" example(2024-01-01)
// @Param endDate query string true "Последний день окна" example(2024-01-07)
// @Param view query string false "Группировка ряда" Enums(all, group, machine) default(all)
// @Param utcOffset query int false "Смещение клиента в минутах, как в getTimezoneOffset" default(0)
// @Success 200 {object} models.OverviewResponse "Аналитика за период"
// @Failure 400 {object} models.ErrorResponse "Неверный период или группировка"
// @Failure 500 {object} models.ErrorResponse "Внутренняя ошибка сервера"
// @Router /machines/overview [get]
func (h *Handler) Overview(c *gin.Context) {
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if startDate == "" || endDate == "" {
		h.BadRequest(c, errors.New("startDate and endDate are required"), "Invalid query")
		return
	}

	offset := 0
	if raw := c.Query("utcOffset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, err, "Invalid utcOffset")
			return
		}
		offset = v
	}

	overview, err := h.usecase.GetOverview(startDate, endDate, c.DefaultQuery("view", models.ViewAll), offset)
	if err != nil {
		h.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": overview})
}

// Timeline возвращает станки для временной шкалы.
// @Summary Станки для временной шкалы
// @Tags Analytics
// @Produce json
// @Success 200 {object} models.TimelineResponse "Список станков"
// @Failure 500 {object} models.ErrorResponse "Внутренняя ошибка сервера"
// @Router /machines/timeline [get]
func (h *Handler) Timeline(c *gin.Context) {
	timeline, err := h.usecase.GetTimeline()
	if err != nil {
		h.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": timeline})
}
