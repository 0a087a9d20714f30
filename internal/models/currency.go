package models

// Currency represents a settlement currency row.
type Currency struct {
	CurrencyID string `json:"currencyID"` // Primary Key (UUID)
	Name       string `json:"name"`
	ISOCode    string `json:"isoCode"` // 3-letter ISO 4217 code, unique
	Symbol     string `json:"symbol"`
	AuditFields
}
