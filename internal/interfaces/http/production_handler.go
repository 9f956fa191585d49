package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/atolyeos/atolye-api/internal/application/dto"
	"github.com/atolyeos/atolye-api/internal/application/production"
	"github.com/atolyeos/atolye-api/internal/domain/entity"
)

// ProductionHandler handles the production tracker endpoints (protected).
type ProductionHandler struct {
	uc *production.UseCase
}

// NewProductionHandler builds the handler.
func NewProductionHandler(uc *production.UseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// Start godoc
// @Summary      Start production for a PENDING order (deducts materials atomically)
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartProductionRequest  true  "Order to start"
// @Success      201   {object}  dto.TrackingResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production/start [post]
func (h *ProductionHandler) Start(c *fiber.Ctx) error {
	var in dto.StartProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	tracking, err := h.uc.StartProduction(c.Context(), in.OrderID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewTrackingResponse(tracking))
}

// Ensure godoc
// @Summary      Get or create the order's tracking without deducting stock
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartProductionRequest  true  "Order"
// @Success      200   {object}  dto.TrackingResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/production/ensure [post]
func (h *ProductionHandler) Ensure(c *fiber.Ctx) error {
	var in dto.StartProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	tracking, err := h.uc.EnsureTracking(c.Context(), in.OrderID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewTrackingResponse(tracking))
}

// ListActive godoc
// @Summary      List trackings still on the shop floor
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TrackingResponse
// @Router       /api/production [get]
func (h *ProductionHandler) ListActive(c *fiber.Ctx) error {
	trackings, err := h.uc.ListActive(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TrackingResponse, 0, len(trackings))
	for _, t := range trackings {
		out = append(out, dto.NewTrackingResponse(t))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Get a tracking with its stage history
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Tracking ID"
// @Success      200  {object}  dto.TrackingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production/{id} [get]
func (h *ProductionHandler) GetByID(c *fiber.Ctx) error {
	tracking, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewTrackingResponse(tracking))
}

// UpdateStage godoc
// @Summary      Advance a tracking to a stage (never backwards)
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Tracking ID"
// @Param        body  body  dto.UpdateStageRequest  true  "Target stage"
// @Success      200   {object}  dto.TrackingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production/{id}/stage [patch]
func (h *ProductionHandler) UpdateStage(c *fiber.Ctx) error {
	var in dto.UpdateStageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	tracking, err := h.uc.AdvanceStage(c.Context(), c.Params("id"), entity.Stage(in.Stage))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewTrackingResponse(tracking))
}
