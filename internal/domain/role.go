package domain

// Role is a job function (Função) employees are assigned to.
type Role struct {
	ID   string
	Name string
}
