package dto

import "time"

// EmployeeDocumentResponse is a file kept on an employee's record.
type EmployeeDocumentResponse struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employee_id"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	FilePath    string    `json:"file_path"`
	CreatedAt   time.Time `json:"created_at"`
}

// EmployeeDocumentsResponse lists an employee's documents.
type EmployeeDocumentsResponse struct {
	EmployeeID   string                     `json:"employee_id"`
	EmployeeName string                     `json:"employee_name"`
	Documents    []EmployeeDocumentResponse `json:"documents"`
}
