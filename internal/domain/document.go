package domain

import (
	"strings"
	"time"
)

// Document is a corporate document (licence, certificate) held by a company.
type Document struct {
	ID          string
	CompanyID   string
	CompanyName string
	TypeID      *string
	TypeName    string
	Description string
	Number      string
	IssuedOn    *time.Time
	ExpiresOn   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Status derives the document status; it is never stored.
func (d *Document) Status(today time.Time, windowDays int) ExpiryStatus {
	return Classify(d.ExpiresOn, today, windowDays)
}

// DisplayName is the label used on dashboard cards.
func (d *Document) DisplayName() string {
	parts := make([]string, 0, 2)
	if d.TypeName != "" {
		parts = append(parts, d.TypeName)
	} else if d.Description != "" {
		parts = append(parts, d.Description)
	}
	if d.CompanyName != "" {
		parts = append(parts, d.CompanyName)
	}
	return strings.Join(parts, " - ")
}
