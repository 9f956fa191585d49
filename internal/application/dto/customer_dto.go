package dto

import (
	"time"

	"github.com/atolyeos/atolye-api/internal/domain/entity"
)

// CreateCustomerRequest body for POST /api/customers.
type CreateCustomerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	TaxID     string `json:"tax_id"`
	TaxOffice string `json:"tax_office"`
}

// UpdateCustomerRequest body for PUT /api/customers/:id.
type UpdateCustomerRequest struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	TaxID     *string `json:"tax_id,omitempty"`
	TaxOffice *string `json:"tax_office,omitempty"`
}

// CustomerResponse public view of a customer record.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	TaxID     string    `json:"tax_id"`
	TaxOffice string    `json:"tax_office"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCustomerResponse maps a customer to its public view.
func NewCustomerResponse(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		TaxID:     c.TaxID,
		TaxOffice: c.TaxOffice,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
