package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/atolyeos/atolye-api/internal/application/dto"
	"github.com/atolyeos/atolye-api/internal/application/usecase"
)

// MaterialHandler handles the stock ledger endpoints (protected).
type MaterialHandler struct {
	uc *usecase.MaterialUseCase
}

// NewMaterialHandler builds the handler.
func NewMaterialHandler(uc *usecase.MaterialUseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc}
}

// Create godoc
// @Summary      Create a material
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaterialRequest  true  "Material data"
// @Success      201   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/materials [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	material, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMaterialResponse(material))
}

// List godoc
// @Summary      List materials with their stock condition
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MaterialResponse
// @Router       /api/materials [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	materials, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MaterialResponse, 0, len(materials))
	for _, m := range materials {
		out = append(out, dto.NewMaterialResponse(m))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Get a material
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Material ID"
// @Success      200  {object}  dto.MaterialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [get]
func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	material, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewMaterialResponse(material))
}

// Update godoc
// @Summary      Update a material (price changes append to the price history)
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Material ID"
// @Param        body  body  dto.UpdateMaterialRequest  true  "Fields to update"
// @Success      200   {object}  dto.MaterialResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [put]
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	material, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewMaterialResponse(material))
}

// AdjustStock godoc
// @Summary      Apply a stock delta (negative deducts)
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Material ID"
// @Param        body  body  dto.AdjustStockRequest  true  "Quantity delta"
// @Success      200   {object}  dto.MaterialResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/stock [post]
func (h *MaterialHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	material, err := h.uc.AdjustStock(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewMaterialResponse(material))
}

// PriceHistory godoc
// @Summary      List a material's price history (oldest first)
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Material ID"
// @Success      200  {array}  dto.PriceHistoryDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/price-history [get]
func (h *MaterialHandler) PriceHistory(c *fiber.Ctx) error {
	history, err := h.uc.ListPriceHistory(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewPriceHistoryDTOs(history))
}

// Delete godoc
// @Summary      Delete a material
// @Tags         materials
// @Security     Bearer
// @Param        id  path  string  true  "Material ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [delete]
func (h *MaterialHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
