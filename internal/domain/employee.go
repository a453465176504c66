package domain

import "time"

// Employee is a person tracked by HR, with the per-employee document expiries.
type Employee struct {
	ID          string
	Name        string
	CompanyID   *string
	CompanyName string
	RoleID      *string
	RoleName    string
	Active      bool
	BirthDate   *time.Time

	CPF        string
	RG         string
	Email      string
	Phone      string
	Mobile     string
	Street     string
	Number     string
	Complement string
	District   string
	City       string
	State      string
	PostalCode string
	AdmittedOn *time.Time
	PhotoPath  string
	ASOKind    string
	CNHNumber  string

	ASOExpiresOn        *time.Time
	CredentialExpiresOn *time.Time
	ToxicologyExpiresOn *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExpiryFor returns the expiry date backing the given category.
func (e *Employee) ExpiryFor(category Category) *time.Time {
	switch category {
	case CategoryHealth:
		return e.ASOExpiresOn
	case CategoryCredential:
		return e.CredentialExpiresOn
	case CategoryToxicology:
		return e.ToxicologyExpiresOn
	default:
		return nil
	}
}
