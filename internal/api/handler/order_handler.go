package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Nikhil2247/digital-frontend/internal/core/ports"
)

// OrderHandler lets vendors move orders through the kitchen.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// UpdateStatus handles PATCH /orders/:id/status.
//
// @Summary      Update an order's status
// @Tags         orders
// @Accept       json
// @Param        id    path      string               true  "Order id"
// @Param        body  body      updateStatusRequest  true  "PENDING, IN_PROGRESS, READY or SERVED"
// @Success      204
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	gate, err := ctxGate(c)
	if err != nil {
		return err
	}

	if err := h.service.UpdateStatus(c.Request().Context(), gate, c.Param("id"), req.Status); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
