package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Nikhil2247/digital-frontend/internal/core/ports"
)

// CartHandler serves the guest cart of a table.
type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// Get handles GET /event/:eventId/table/:tableNumber/cart.
//
// @Summary      Get the table cart
// @Tags         cart
// @Produce      json
// @Param        eventId      path      string  true  "Event id"
// @Param        tableNumber  path      string  true  "Table number from the QR code"
// @Success      200          {object}  cartResponse
// @Failure      500          {object}  errorResponse
// @Router       /event/{eventId}/table/{tableNumber}/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	key, err := ctxCartKey(c)
	if err != nil {
		return err
	}
	cart, err := h.service.Get(c.Request().Context(), key)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// AddItem handles POST /event/:eventId/table/:tableNumber/cart/items.
//
// @Summary      Add an item to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        eventId      path      string          true  "Event id"
// @Param        tableNumber  path      string          true  "Table number"
// @Param        body         body      addItemRequest  true  "Menu item"
// @Success      200          {object}  cartResponse
// @Failure      400          {object}  errorResponse
// @Failure      422          {object}  errorResponse
// @Router       /event/{eventId}/table/{tableNumber}/cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	key, err := ctxCartKey(c)
	if err != nil {
		return err
	}

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	cart, err := h.service.AddItem(c.Request().Context(), key, ports.AddItemInput{
		ItemID:    req.ItemID,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Quantity:  quantity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// SetQuantity handles PATCH /event/:eventId/table/:tableNumber/cart/items/:itemId.
//
// @Summary      Set an item's quantity (0 removes it)
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        eventId      path      string              true  "Event id"
// @Param        tableNumber  path      string              true  "Table number"
// @Param        itemId       path      string              true  "Menu item id"
// @Param        body         body      setQuantityRequest  true  "New quantity"
// @Success      200          {object}  cartResponse
// @Failure      400          {object}  errorResponse
// @Failure      422          {object}  errorResponse
// @Router       /event/{eventId}/table/{tableNumber}/cart/items/{itemId} [patch]
func (h *CartHandler) SetQuantity(c echo.Context) error {
	key, err := ctxCartKey(c)
	if err != nil {
		return err
	}

	var req setQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cart, err := h.service.SetQuantity(c.Request().Context(), key, c.Param("itemId"), *req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// Clear handles DELETE /event/:eventId/table/:tableNumber/cart.
//
// @Summary      Empty the cart
// @Tags         cart
// @Param        eventId      path  string  true  "Event id"
// @Param        tableNumber  path  string  true  "Table number"
// @Success      204
// @Router       /event/{eventId}/table/{tableNumber}/cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	key, err := ctxCartKey(c)
	if err != nil {
		return err
	}
	if err := h.service.Clear(c.Request().Context(), key); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Submit handles POST /event/:eventId/table/:tableNumber/cart/submit.
//
// @Summary      Place the cart as an order
// @Tags         cart
// @Produce      json
// @Param        eventId      path      string  true  "Event id"
// @Param        tableNumber  path      string  true  "Table number"
// @Success      201          {object}  submitResponse
// @Failure      404          {object}  errorResponse
// @Failure      409          {object}  errorResponse
// @Failure      502          {object}  errorResponse
// @Router       /event/{eventId}/table/{tableNumber}/cart/submit [post]
func (h *CartHandler) Submit(c echo.Context) error {
	key, err := ctxCartKey(c)
	if err != nil {
		return err
	}
	confirmation, err := h.service.Submit(c.Request().Context(), key)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, submitResponse{
		OrderID: confirmation.ID,
		Status:  confirmation.Status,
	})
}
