package domain

// Country represents a send/receive country with its single settlement currency.
// Deactivating a country only excludes it from new-transaction pickers;
// historical transactions referencing it stay valid.
type Country struct {
	CountryID  string `json:"countryID"`  // Primary Key (UUID)
	Name       string `json:"name"`       // e.g., "Senegal"
	ISOCode    string `json:"isoCode"`    // 2-letter ISO 3166-1 code
	CurrencyID string `json:"currencyID"` // FK -> Currency.currencyID
	Active     bool   `json:"active"`
	AuditFields
}
