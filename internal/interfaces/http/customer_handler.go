package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/atolyeos/atolye-api/internal/application/dto"
	"github.com/atolyeos/atolye-api/internal/application/usecase"
)

// CustomerHandler handles the customer record endpoints (protected).
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler builds the handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create godoc
// @Summary      Create a customer
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "Customer data"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	customer, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewCustomerResponse(customer))
}

// List godoc
// @Summary      List customers
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CustomerResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	customers, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, cust := range customers {
		out = append(out, dto.NewCustomerResponse(cust))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Get a customer
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Customer ID"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	customer, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewCustomerResponse(customer))
}

// Update godoc
// @Summary      Update a customer
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Customer ID"
// @Param        body  body  dto.UpdateCustomerRequest  true  "Fields to update"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	customer, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewCustomerResponse(customer))
}

// Delete godoc
// @Summary      Delete a customer (orders keep their frozen name)
// @Tags         customers
// @Security     Bearer
// @Param        id  path  string  true  "Customer ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
