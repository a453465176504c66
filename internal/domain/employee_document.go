package domain

import (
	"strings"
	"time"
)

// EmployeeDocument is a file kept on an employee's record.
type EmployeeDocument struct {
	ID          string
	EmployeeID  string
	Kind        string
	Description string
	FilePath    string
	CreatedAt   time.Time
}

// NormalizeUploadPath turns a stored upload path into one relative to the
// upload root. Legacy rows carry backslashes, a leading slash or the
// "uploads/" prefix of the old storage layout.
func NormalizeUploadPath(p string) string {
	p = strings.TrimLeft(strings.ReplaceAll(strings.TrimSpace(p), `\`, "/"), "/")
	return strings.TrimPrefix(p, "uploads/")
}
