package models

// Country represents a send/receive country row.
type Country struct {
	CountryID  string `json:"countryID"` // Primary Key (UUID)
	Name       string `json:"name"`
	ISOCode    string `json:"isoCode"`    // 2-letter ISO 3166-1 code
	CurrencyID string `json:"currencyID"` // FK -> currencies
	Active     bool   `json:"active"`
	AuditFields
}
