package domain

// Currency represents a settlement currency configured in the back office.
type Currency struct {
	CurrencyID string `json:"currencyID"` // Primary Key (UUID)
	Name       string `json:"name"`       // e.g., "Euro"
	ISOCode    string `json:"isoCode"`    // 3-letter ISO 4217 code, unique
	Symbol     string `json:"symbol"`     // e.g., "EUR" symbol
	AuditFields
}
