package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/atolyeos/atolye-api/internal/application/dto"
	"github.com/atolyeos/atolye-api/internal/application/order"
)

// OrderHandler handles the order intake and lifecycle endpoints (protected).
type OrderHandler struct {
	uc *order.UseCase
}

// NewOrderHandler builds the handler.
func NewOrderHandler(uc *order.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Create an order (unit prices frozen from the catalog)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Order data"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	o, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewOrderResponse(o))
}

// List godoc
// @Summary      List orders, optionally filtered by status
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Order status filter"
// @Success      200     {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.uc.List(c.Context(), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.NewOrderResponse(o))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Get an order with its items
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Order ID"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	o, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewOrderResponse(o))
}

// UpdateStatus godoc
// @Summary      Manually override an order's status
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Order ID"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "New status"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	o, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewOrderResponse(o))
}

// Delete godoc
// @Summary      Delete an order
// @Tags         orders
// @Security     Bearer
// @Param        id  path  string  true  "Order ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Proforma godoc
// @Summary      Download the proforma invoice PDF
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "Order ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/proforma [get]
func (h *OrderHandler) Proforma(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.GenerateProformaPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="proforma-`+c.Params("id")+`.pdf"`)
	return c.Send(pdfBytes)
}
