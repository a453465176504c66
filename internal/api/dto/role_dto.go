package dto

// RoleResponse is the public view of a job function.
type RoleResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
