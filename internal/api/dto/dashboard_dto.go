package dto

// ExpiryEntry is one line of a dashboard card.
type ExpiryEntry struct {
	Name      string `json:"name"`
	ExpiresOn string `json:"expires_on"`
}

// CategoryCard is one dashboard card.
type CategoryCard struct {
	Category      string        `json:"category"`
	Title         string        `json:"title"`
	Expired       []ExpiryEntry `json:"expired"`
	Expiring      []ExpiryEntry `json:"expiring"`
	ExpiredCount  int           `json:"expired_count"`
	ExpiringCount int           `json:"expiring_count"`
}

// DashboardResponse is the body of GET /dashboard. Cards whose column is
// unavailable are omitted.
type DashboardResponse struct {
	Today             string         `json:"today"`
	WindowDays        int            `json:"window_days"`
	Cards             []CategoryCard `json:"cards"`
	TotalEmployees    int            `json:"total_employees"`
	ActiveEmployees   int            `json:"active_employees"`
	InactiveEmployees int            `json:"inactive_employees"`
	DocumentsExpired  int            `json:"documents_expired"`
	DocumentsExpiring int            `json:"documents_expiring"`
}
