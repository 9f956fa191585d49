package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/atolyeos/atolye-api/internal/application/dto"
	"github.com/atolyeos/atolye-api/internal/application/shipment"
)

// ShipmentHandler handles the dispatch endpoints (protected).
type ShipmentHandler struct {
	uc *shipment.UseCase
}

// NewShipmentHandler builds the handler.
func NewShipmentHandler(uc *shipment.UseCase) *ShipmentHandler {
	return &ShipmentHandler{uc: uc}
}

// Create godoc
// @Summary      Ship a READY_FOR_SHIPMENT order (idempotent per order)
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShipmentRequest  true  "Shipment data"
// @Success      201   {object}  dto.ShipmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shipments [post]
func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	s, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewShipmentResponse(s))
}

// List godoc
// @Summary      List shipments, newest first
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ShipmentResponse
// @Router       /api/shipments [get]
func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	shipments, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ShipmentResponse, 0, len(shipments))
	for _, s := range shipments {
		out = append(out, dto.NewShipmentResponse(s))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Get a shipment with its order
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Shipment ID"
// @Success      200  {object}  dto.ShipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [get]
func (h *ShipmentHandler) GetByID(c *fiber.Ctx) error {
	s, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewShipmentResponse(s))
}

// Waybill godoc
// @Summary      Download the waybill PDF
// @Tags         shipments
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "Shipment ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/waybill [get]
func (h *ShipmentHandler) Waybill(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.GenerateWaybillPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="waybill-`+c.Params("id")+`.pdf"`)
	return c.Send(pdfBytes)
}
