package dto

// EmployeeSummary is one row of the HR listing. Expiry fields are filled only
// when a document category was requested.
type EmployeeSummary struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	CompanyID           *string `json:"company_id"`
	CompanyName         string  `json:"company_name"`
	RoleName            string  `json:"role_name"`
	Active              bool    `json:"active"`
	BirthDate           *string `json:"birth_date"`
	ASOExpiresOn        *string `json:"aso_expires_on"`
	CredentialExpiresOn *string `json:"carteira_expires_on"`
	ToxicologyExpiresOn *string `json:"toxico_expires_on"`
	Category            string  `json:"category,omitempty"`
	ExpiresOn           *string `json:"expires_on,omitempty"`
	DaysRemaining       *int    `json:"days_remaining,omitempty"`
	Status              string  `json:"status,omitempty"`
}

// EmployeeDetail is the full employee profile.
type EmployeeDetail struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	CompanyID           *string `json:"company_id"`
	CompanyName         string  `json:"company_name"`
	RoleID              *string `json:"role_id"`
	RoleName            string  `json:"role_name"`
	Active              bool    `json:"active"`
	BirthDate           *string `json:"birth_date"`
	CPF                 string  `json:"cpf"`
	RG                  string  `json:"rg"`
	Email               string  `json:"email"`
	Phone               string  `json:"phone"`
	Mobile              string  `json:"mobile"`
	Street              string  `json:"street"`
	Number              string  `json:"number"`
	Complement          string  `json:"complement"`
	District            string  `json:"district"`
	City                string  `json:"city"`
	State               string  `json:"state"`
	PostalCode          string  `json:"postal_code"`
	AdmittedOn          *string `json:"admitted_on"`
	PhotoPath           string  `json:"photo_path"`
	ASOKind             string  `json:"aso_kind"`
	CNHNumber           string  `json:"cnh_number"`
	ASOExpiresOn        *string `json:"aso_expires_on"`
	CredentialExpiresOn *string `json:"carteira_expires_on"`
	ToxicologyExpiresOn *string `json:"toxico_expires_on"`
}
