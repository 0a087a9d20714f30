package domain

// Client is a sender or beneficiary of money transfers. Owned by the CRUD
// backend; pricing only needs its country link.
type Client struct {
	ClientID  string `json:"clientID"` // Primary Key (UUID)
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	Address   string `json:"address,omitempty"`
	IDType    string `json:"idType"`    // identity document type (passport, national ID, ...)
	IDNumber  string `json:"idNumber"`  // identity document number
	CountryID string `json:"countryID"` // FK -> Country.countryID
	Active    bool   `json:"active"`
	AuditFields
}

// FullName returns the display name used in notification messages.
func (c Client) FullName() string {
	if c.Surname == "" {
		return c.Name
	}
	return c.Surname + " " + c.Name
}
