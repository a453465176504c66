package handlers

import (
	"time"

	"github.com/spec-kit/hr-docs/internal/api/dto"
	"github.com/spec-kit/hr-docs/internal/domain"
	"github.com/spec-kit/hr-docs/internal/service"
)

func employeeSummary(e *service.EnrichedEmployee) dto.EmployeeSummary {
	return dto.EmployeeSummary{
		ID:                  e.ID,
		Name:                e.Name,
		CompanyID:           e.CompanyID,
		CompanyName:         e.CompanyName,
		RoleName:            e.RoleName,
		Active:              e.Active,
		BirthDate:           formatDate(e.BirthDate),
		ASOExpiresOn:        formatDate(e.ASOExpiresOn),
		CredentialExpiresOn: formatDate(e.CredentialExpiresOn),
		ToxicologyExpiresOn: formatDate(e.ToxicologyExpiresOn),
		Category:            string(e.Category),
		ExpiresOn:           formatDate(e.ExpiresOn),
		DaysRemaining:       e.DaysRemaining,
		Status:              string(e.Status),
	}
}

func employeeDetail(e *domain.Employee) dto.EmployeeDetail {
	return dto.EmployeeDetail{
		ID:                  e.ID,
		Name:                e.Name,
		CompanyID:           e.CompanyID,
		CompanyName:         e.CompanyName,
		RoleID:              e.RoleID,
		RoleName:            e.RoleName,
		Active:              e.Active,
		BirthDate:           formatDate(e.BirthDate),
		CPF:                 e.CPF,
		RG:                  e.RG,
		Email:               e.Email,
		Phone:               e.Phone,
		Mobile:              e.Mobile,
		Street:              e.Street,
		Number:              e.Number,
		Complement:          e.Complement,
		District:            e.District,
		City:                e.City,
		State:               e.State,
		PostalCode:          e.PostalCode,
		AdmittedOn:          formatDate(e.AdmittedOn),
		PhotoPath:           e.PhotoPath,
		ASOKind:             e.ASOKind,
		CNHNumber:           e.CNHNumber,
		ASOExpiresOn:        formatDate(e.ASOExpiresOn),
		CredentialExpiresOn: formatDate(e.CredentialExpiresOn),
		ToxicologyExpiresOn: formatDate(e.ToxicologyExpiresOn),
	}
}

func companyResponse(c *domain.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:                c.ID,
		LegalName:         c.LegalName,
		TradeName:         c.TradeName,
		CNPJ:              c.CNPJ,
		StateRegistration: c.StateRegistration,
		Street:            c.Street,
		Number:            c.Number,
		Complement:        c.Complement,
		District:          c.District,
		City:              c.City,
		State:             c.State,
		PostalCode:        c.PostalCode,
		Active:            c.Active,
		AlertEmail:        c.AlertEmail,
		AlertWhatsApp:     c.AlertWhatsApp,
	}
}

func documentResponse(d *domain.Document, today time.Time, windowDays int) dto.DocumentResponse {
	resp := dto.DocumentResponse{
		ID:          d.ID,
		CompanyID:   d.CompanyID,
		CompanyName: d.CompanyName,
		TypeName:    d.TypeName,
		Description: d.Description,
		Number:      d.Number,
		IssuedOn:    formatDate(d.IssuedOn),
		ExpiresOn:   formatDate(d.ExpiresOn),
		Status:      string(d.Status(today, windowDays)),
	}
	if d.ExpiresOn != nil {
		days := domain.DaysUntil(*d.ExpiresOn, today)
		resp.DaysRemaining = &days
	}
	return resp
}

func dashboardResponse(s *service.Summary) dto.DashboardResponse {
	resp := dto.DashboardResponse{
		Today:             s.Today.Format(isoDate),
		WindowDays:        s.WindowDays,
		Cards:             []dto.CategoryCard{},
		TotalEmployees:    s.TotalEmployees,
		ActiveEmployees:   s.ActiveEmployees,
		InactiveEmployees: s.InactiveEmployees,
		DocumentsExpired:  s.DocumentsExpired,
		DocumentsExpiring: s.DocumentsExpiring,
	}
	for _, card := range s.Cards() {
		resp.Cards = append(resp.Cards, dto.CategoryCard{
			Category:      string(card.Category),
			Title:         card.Title,
			Expired:       expiryEntries(card.Expired),
			Expiring:      expiryEntries(card.Expiring),
			ExpiredCount:  len(card.Expired),
			ExpiringCount: len(card.Expiring),
		})
	}
	return resp
}

func expiryEntries(entries []domain.ExpiryEntry) []dto.ExpiryEntry {
	out := make([]dto.ExpiryEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ExpiryEntry{Name: e.Name, ExpiresOn: e.ExpiresOn.Format(isoDate)})
	}
	return out
}

func roleResponse(r *domain.Role) dto.RoleResponse {
	return dto.RoleResponse{ID: r.ID, Name: r.Name}
}

func employeeDocumentsResponse(e *domain.Employee, docs []domain.EmployeeDocument) dto.EmployeeDocumentsResponse {
	resp := dto.EmployeeDocumentsResponse{
		EmployeeID:   e.ID,
		EmployeeName: e.Name,
		Documents:    make([]dto.EmployeeDocumentResponse, 0, len(docs)),
	}
	for _, d := range docs {
		resp.Documents = append(resp.Documents, dto.EmployeeDocumentResponse{
			ID:          d.ID,
			EmployeeID:  d.EmployeeID,
			Kind:        d.Kind,
			Description: d.Description,
			FilePath:    domain.NormalizeUploadPath(d.FilePath),
			CreatedAt:   d.CreatedAt,
		})
	}
	return resp
}
