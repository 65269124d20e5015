package entities

import "time"

// Admin is a management principal. Its vote weight multiplies any vote it
// casts; the hash never leaves the domain layer.
type Admin struct {
	AdminID      string
	Email        string
	PasswordHash string
	VoteWeight   int
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
