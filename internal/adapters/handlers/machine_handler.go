package handlers

import (
	"net/http"

	"github.com/iwtcode/machineMonitor/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// ListMachines возвращает справочник станков.
// @Summary Список станков
// @Tags Machines
// @Produce json
// @Success 200 {object} models.MachinesResponse "Все станки, включая выключенные"
// @Failure 500 {object} models.ErrorResponse "Внутренняя ошибка сервера"
// @Router /machines [get]
func (h *Handler) ListMachines(c *gin.Context) {
	machines, err := h.usecase.ListMachines()
	if err != nil {
		h.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"count":    len(machines),
		"machines": machines,
	})
}

// CreateMachine добавляет станок в справочник.
// @Summary Добавить станок
// @Description Протокол по умолчанию выбирается по семейству контроллера. Новый станок опрашивается со следующего прохода.
// @Tags Machines
// @Accept json
// @Produce json
// @Param input body models.MachineRequest true "Конфигурация станка"
// @Success 201 {object} models.MachineResponse "Созданный станок"
// @Failure 400 {object} models.ErrorResponse "Неверный формат запроса"
// @Failure 500 {object} models.ErrorResponse "Внутренняя ошибка сервера"
// @Router /machines [post]
func (h *Handler) CreateMachine(c *gin.Context) {
	var req models.MachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	machine, err := h.usecase.CreateMachine(req)
	if err != nil {
		h.Fail(c, err)
		return
	}

	h.logger.Info("Machine created", "machineID", machine.ID, "name", machine.Name)
	c.JSON(http.StatusCreated, gin.H{"status": "ok", "machine": machine})
}

// UpdateMachine изменяет конфигурацию станка.
// @Summary Изменить станок
// @Tags Machines
// @Accept json
// @Produce json
// @Param id path string true "ID станка"
// @Param input body models.MachineRequest true "Конфигурация станка"
// @Success 200 {object} models.MachineResponse "Измененный станок"
// @Failure 400 {object} models.ErrorResponse "Неверный формат запроса"
// @Failure 404 {object} models.ErrorResponse "Станок не найден"
// @Router /machines/{id} [put]
func (h *Handler) UpdateMachine(c *gin.Context) {
	var req models.MachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	machine, err := h.usecase.UpdateMachine(c.Param("id"), req)
	if err != nil {
		h.Fail(c, err)
		return
	}

	h.logger.Info("Machine updated", "machineID", machine.ID)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "machine": machine})
}

// CreateStatus вручную открывает интервал состояния.
// @Summary Записать состояние вручную
// @Description Закрывает открытые интервалы станка и открывает новый с указанным состоянием.
// @Tags Status
// @Accept json
// @Produce json
// @Param id path string true "ID станка"
// @Param input body models.StatusRequest true "Новое состояние"
// @Success 200 {object} models.StatusResponse "Открытый интервал"
// @Failure 400 {object} models.ErrorResponse "Неверное состояние"
// @Failure 404 {object} models.ErrorResponse "Станок не найден"
// @Router /machines/{id}/status [post]
func (h *Handler) CreateStatus(c *gin.Context) {
	var req models.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	machineID := c.Param("id")
	status, err := h.usecase.CreateStatus(machineID, models.State(req.State))
	if err != nil {
		h.Fail(c, err)
		return
	}

	h.logger.Info("Status created manually", "machineID", machineID, "state", req.State)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "interval": status})
}

// CloseStatus закрывает открытый интервал станка.
// @Summary Закрыть текущий интервал
// @Tags Status
// @Produce json
// @Param id path string true "ID станка"
// @Success 200 {object} models.StatusResponse "Закрытый интервал"
// @Failure 404 {object} models.ErrorResponse "Открытый интервал не найден"
// @Router /machines/{id}/status/close [post]
func (h *Handler) CloseStatus(c *gin.Context) {
	machineID := c.Param("id")
	status, err := h.usecase.CloseStatus(machineID)
	if err != nil {
		h.Fail(c, err)
		return
	}

	h.logger.Info("Status closed manually", "machineID", machineID)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "interval": status})
}
