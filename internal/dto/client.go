package dto

import (
	"time"

	"github.com/transferpro/transferpro_backend/internal/core/domain"
)

// CreateClientRequest defines the data needed to register a new client.
type CreateClientRequest struct {
	Name      string `json:"name" binding:"required"`
	Surname   string `json:"surname" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email,omitempty" binding:"omitempty,email"`
	Address   string `json:"address,omitempty"`
	IDType    string `json:"idType" binding:"required"`
	IDNumber  string `json:"idNumber" binding:"required"`
	CountryID string `json:"countryID" binding:"required,uuid"`
}

// UpdateClientRequest defines the updatable fields of a client.
type UpdateClientRequest struct {
	Name      *string `json:"name,omitempty"`
	Surname   *string `json:"surname,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Address   *string `json:"address,omitempty"`
	IDType    *string `json:"idType,omitempty"`
	IDNumber  *string `json:"idNumber,omitempty"`
	CountryID *string `json:"countryID,omitempty" binding:"omitempty,uuid"`
	Active    *bool   `json:"active,omitempty"`
}

// ClientResponse defines the data returned for a client.
type ClientResponse struct {
	ClientID      string    `json:"clientID"`
	Name          string    `json:"name"`
	Surname       string    `json:"surname"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address,omitempty"`
	IDType        string    `json:"idType"`
	IDNumber      string    `json:"idNumber"`
	CountryID     string    `json:"countryID"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToClientResponse converts a domain.Client to ClientResponse DTO
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:      c.ClientID,
		Name:          c.Name,
		Surname:       c.Surname,
		Phone:         c.Phone,
		Email:         c.Email,
		Address:       c.Address,
		IDType:        c.IDType,
		IDNumber:      c.IDNumber,
		CountryID:     c.CountryID,
		Active:        c.Active,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ToListClientResponse converts a slice of domain.Client to response DTOs
func ToListClientResponse(clients []domain.Client) []ClientResponse {
	res := make([]ClientResponse, len(clients))
	for i, c := range clients {
		res[i] = ToClientResponse(&c)
	}
	return res
}
