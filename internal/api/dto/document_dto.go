package dto

// DocumentResponse is one corporate document with its derived status.
type DocumentResponse struct {
	ID            string  `json:"id"`
	CompanyID     string  `json:"company_id"`
	CompanyName   string  `json:"company_name"`
	TypeName      string  `json:"type_name"`
	Description   string  `json:"description"`
	Number        string  `json:"number"`
	IssuedOn      *string `json:"issued_on"`
	ExpiresOn     *string `json:"expires_on"`
	DaysRemaining *int    `json:"days_remaining"`
	Status        string  `json:"status"`
}

// DocumentCountResponse answers GET /documentos/count.
type DocumentCountResponse struct {
	Status     string `json:"status"`
	WindowDays int    `json:"window_days"`
	Count      int    `json:"count"`
}
