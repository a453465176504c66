package domain

import "time"

// Company employs people and owns corporate documents.
type Company struct {
	ID                string
	LegalName         string
	TradeName         string
	CNPJ              string
	StateRegistration string
	Street            string
	Number            string
	Complement        string
	District          string
	City              string
	State             string
	PostalCode        string
	Active            bool
	AlertEmail        string
	AlertWhatsApp     string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasAlertContact reports whether the company configured any alert channel.
func (c *Company) HasAlertContact() bool {
	return c.AlertEmail != "" || c.AlertWhatsApp != ""
}

// DocumentType names a kind of corporate document (Alvará, Certidão...).
type DocumentType struct {
	ID   string
	Name string
}
