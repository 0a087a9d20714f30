package models

// Client represents a sender or beneficiary row.
type Client struct {
	ClientID  string `json:"clientID"` // Primary Key (UUID)
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	IDType    string `json:"idType"`
	IDNumber  string `json:"idNumber"`
	CountryID string `json:"countryID"` // FK -> countries
	Active    bool   `json:"active"`
	AuditFields
}
