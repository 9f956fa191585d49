package entity

import "time"

// User roles.
const (
	RoleAdmin  = "ADMIN"
	RoleWorker = "WORKER"
)

// User is an operator account for the admin dashboard.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
