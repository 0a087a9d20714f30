package mapping

import (
	"github.com/transferpro/transferpro_backend/internal/core/domain"
	"github.com/transferpro/transferpro_backend/internal/models"
)

// ToModelCountry converts a domain Country to a model Country
func ToModelCountry(d domain.Country) models.Country {
	return models.Country{
		CountryID:   d.CountryID,
		Name:        d.Name,
		ISOCode:     d.ISOCode,
		CurrencyID:  d.CurrencyID,
		Active:      d.Active,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCountry converts a model Country to a domain Country
func ToDomainCountry(m models.Country) domain.Country {
	return domain.Country{
		CountryID:   m.CountryID,
		Name:        m.Name,
		ISOCode:     m.ISOCode,
		CurrencyID:  m.CurrencyID,
		Active:      m.Active,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCountrySlice converts a slice of model Countries to a slice of domain Countries
func ToDomainCountrySlice(ms []models.Country) []domain.Country {
	ds := make([]domain.Country, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCountry(m)
	}
	return ds
}
