package mapping

import (
	"github.com/transferpro/transferpro_backend/internal/core/domain"
	"github.com/transferpro/transferpro_backend/internal/models"
)

// ToModelClient converts a domain Client to a model Client
func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:    d.ClientID,
		Name:        d.Name,
		Surname:     d.Surname,
		Phone:       d.Phone,
		Email:       d.Email,
		Address:     d.Address,
		IDType:      d.IDType,
		IDNumber:    d.IDNumber,
		CountryID:   d.CountryID,
		Active:      d.Active,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClient converts a model Client to a domain Client
func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:    m.ClientID,
		Name:        m.Name,
		Surname:     m.Surname,
		Phone:       m.Phone,
		Email:       m.Email,
		Address:     m.Address,
		IDType:      m.IDType,
		IDNumber:    m.IDNumber,
		CountryID:   m.CountryID,
		Active:      m.Active,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainClientSlice converts a slice of model Clients to a slice of domain Clients
func ToDomainClientSlice(ms []models.Client) []domain.Client {
	ds := make([]domain.Client, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainClient(m)
	}
	return ds
}
