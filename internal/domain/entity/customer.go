package entity

import "time"

// Customer is a buyer record (construction firms, cooperatives, individuals).
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	TaxID     string
	TaxOffice string
	CreatedAt time.Time
	UpdatedAt time.Time
}
