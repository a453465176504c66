package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/hr-docs/internal/domain"
)

// DateLayout is the dd/mm/yyyy layout used on every report.
const DateLayout = "02/01/2006"

// Suggested download names.
const (
	DocumentsFilename  = "documentos.pdf"
	ToxicologyFilename = "toxicos.pdf"
)

// EmployeeFilename is the download name of an employee profile sheet.
func EmployeeFilename(id string) string {
	return fmt.Sprintf("colaborador_%s.pdf", id)
}

// CompanyFilename is the download name of a company profile sheet.
func CompanyFilename(id string) string {
	return fmt.Sprintf("empresa_%s.pdf", id)
}

// ListingOptions are shared by the bulk listings. Row status and days
// remaining are computed against GeneratedOn, which is also stamped in the footer.
type ListingOptions struct {
	Title       string
	GeneratedOn time.Time
	WindowDays  int
}

// Table is the content of a listing, independent of layout.
type Table struct {
	Header []string
	Widths []float64
	Rows   [][]string
}

// ToxicologyTitle names the toxicology listing after the status filter.
func ToxicologyTitle(status domain.ExpiryStatus, windowDays int) string {
	return withStatusSuffix("Exame Toxicológico", status, windowDays)
}

// DocumentsTitle names the document listing after the status filter.
func DocumentsTitle(status domain.ExpiryStatus, windowDays int) string {
	return withStatusSuffix("Documentos", status, windowDays)
}

func withStatusSuffix(title string, status domain.ExpiryStatus, windowDays int) string {
	switch status {
	case domain.ExpiryExpired:
		return title + " - Vencidos"
	case domain.ExpiryExpiringSoon:
		return fmt.Sprintf("%s - A Vencer (%dd)", title, domain.NormalizeWindowDays(windowDays))
	case domain.ExpiryValid:
		return title + " - Vigentes"
	default:
		return title
	}
}

func documentTable(docs []domain.Document, generatedOn time.Time, windowDays int) Table {
	t := Table{
		Header: []string{"Empresa", "Tipo", "Descrição", "Número", "Expedição", "Vencimento", "Dias", "Status"},
		Widths: []float64{38, 24, 44, 18, 17, 17, 10, 18},
		Rows:   make([][]string, 0, len(docs)),
	}
	for i := range docs {
		d := &docs[i]
		t.Rows = append(t.Rows, []string{
			d.CompanyName,
			d.TypeName,
			d.Description,
			d.Number,
			formatDate(d.IssuedOn),
			formatDate(d.ExpiresOn),
			daysRemaining(d.ExpiresOn, generatedOn),
			statusLabel(d.ExpiresOn, generatedOn, windowDays),
		})
	}
	return t
}

func toxicologyTable(employees []domain.Employee, generatedOn time.Time, windowDays int) Table {
	t := Table{
		Header: []string{"Colaborador", "Empresa", "Validade", "Dias", "Status"},
		Widths: []float64{52, 58, 26, 16, 26},
		Rows:   make([][]string, 0, len(employees)),
	}
	for i := range employees {
		e := &employees[i]
		t.Rows = append(t.Rows, []string{
			e.Name,
			e.CompanyName,
			formatDate(e.ToxicologyExpiresOn),
			daysRemaining(e.ToxicologyExpiresOn, generatedOn),
			statusLabel(e.ToxicologyExpiresOn, generatedOn, windowDays),
		})
	}
	return t
}

// employeeFields lays out the profile sheet as label/value pairs, two per row.
func employeeFields(e *domain.Employee) [][4]string {
	active := "Não"
	if e.Active {
		active = "Sim"
	}
	address := strings.TrimSpace(strings.Join(nonEmpty(e.Street, e.Number, e.Complement), ", "))
	locality := strings.Join(nonEmpty(e.District, e.City, e.State), " / ")

	return [][4]string{
		{"Nome", e.Name, "Empresa", e.CompanyName},
		{"Função", e.RoleName, "Ativo", active},
		{"CPF", e.CPF, "RG", e.RG},
		{"Nascimento", formatDate(e.BirthDate), "Admissão", formatDate(e.AdmittedOn)},
		{"Telefone", e.Phone, "Celular", e.Mobile},
		{"E-mail", e.Email, "", ""},
		{"Endereço", address, "CEP", e.PostalCode},
		{"Bairro/Cidade/UF", locality, "", ""},
		{"ASO", e.ASOKind, "Validade", formatDate(e.ASOExpiresOn)},
		{"CNH", e.CNHNumber, "CNH Validade", formatDate(e.CredentialExpiresOn)},
		{"Toxicológico", "", "Validade", formatDate(e.ToxicologyExpiresOn)},
	}
}

func companyFields(c *domain.Company) [][2]string {
	status := "Inativa"
	if c.Active {
		status = "Ativa"
	}
	return [][2]string{
		{"Razão Social", c.LegalName},
		{"Nome Fantasia", c.TradeName},
		{"CNPJ", c.CNPJ},
		{"Inscrição Estadual", c.StateRegistration},
		{"Endereço", strings.Join(nonEmpty(c.Street, c.Number, c.Complement), ", ")},
		{"Bairro/Cidade/UF", strings.Join(nonEmpty(c.District, c.City, c.State), " / ")},
		{"CEP", c.PostalCode},
		{"Status", status},
		{"E-mails alerta", c.AlertEmail},
		{"WhatsApp alerta", c.AlertWhatsApp},
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

func daysRemaining(expiresOn *time.Time, generatedOn time.Time) string {
	if expiresOn == nil {
		return ""
	}
	return strconv.Itoa(domain.DaysUntil(*expiresOn, generatedOn))
}

func statusLabel(expiresOn *time.Time, generatedOn time.Time, windowDays int) string {
	if expiresOn == nil {
		return ""
	}
	return domain.Classify(expiresOn, generatedOn, windowDays).Label()
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
