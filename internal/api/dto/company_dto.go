package dto

// CompanyResponse is the public view of a company.
type CompanyResponse struct {
	ID                string `json:"id"`
	LegalName         string `json:"legal_name"`
	TradeName         string `json:"trade_name"`
	CNPJ              string `json:"cnpj"`
	StateRegistration string `json:"state_registration"`
	Street            string `json:"street"`
	Number            string `json:"number"`
	Complement        string `json:"complement"`
	District          string `json:"district"`
	City              string `json:"city"`
	State             string `json:"state"`
	PostalCode        string `json:"postal_code"`
	Active            bool   `json:"active"`
	AlertEmail        string `json:"alert_email"`
	AlertWhatsApp     string `json:"alert_whatsapp"`
}
