package models

import "time"

// User represents a back-office operator row.
type User struct {
	UserID       string     `json:"userID"` // Primary Key (UUID)
	Name         string     `json:"name"`
	Surname      string     `json:"surname"`
	Email        string     `json:"email"` // unique, stored lowercase
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"` // ADMIN or AGENT
	Active       bool       `json:"active"`
	LastLoginAt  *time.Time `json:"lastLoginAt"`
	AuditFields
}
