package report

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hr-docs/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func TestDocumentTable_DaysRemainingRoundTrip(t *testing.T) {
	generatedOn := day(2024, 6, 10)
	docs := []domain.Document{
		{CompanyName: "Empresa A", TypeName: "Alvará", ExpiresOn: ptr(day(2024, 5, 1))},
		{CompanyName: "Empresa A", TypeName: "Certidão", ExpiresOn: ptr(day(2024, 6, 10))},
		{CompanyName: "Empresa B", TypeName: "Alvará", ExpiresOn: ptr(day(2024, 7, 10))},
		{CompanyName: "Empresa B", TypeName: "Licença", ExpiresOn: ptr(day(2025, 2, 28))},
	}

	table := documentTable(docs, generatedOn, 30)
	require.Len(t, table.Rows, len(docs))
	assert.Len(t, table.Widths, len(table.Header))

	for _, row := range table.Rows {
		expiresOn, err := time.Parse(DateLayout, row[5])
		require.NoError(t, err)
		days, err := strconv.Atoi(row[6])
		require.NoError(t, err)

		assert.Equal(t, domain.DaysUntil(expiresOn, generatedOn), days, row)
	}

	assert.Equal(t, []string{"-40", "0", "30", "263"}, []string{table.Rows[0][6], table.Rows[1][6], table.Rows[2][6], table.Rows[3][6]})
	assert.Equal(t, "Vencido", table.Rows[0][7])
	assert.Equal(t, "A vencer", table.Rows[1][7])
	assert.Equal(t, "A vencer", table.Rows[2][7])
	assert.Equal(t, "Vigente", table.Rows[3][7])
}

func TestDocumentTable_UndatedDocument(t *testing.T) {
	table := documentTable([]domain.Document{{CompanyName: "Empresa A", Description: "Contrato"}}, day(2024, 6, 10), 30)

	row := table.Rows[0]
	assert.Equal(t, "", row[5])
	assert.Equal(t, "", row[6])
	assert.Equal(t, "", row[7])
}

func TestToxicologyTable_UsesGenerationDateAndWindow(t *testing.T) {
	generatedOn := day(2024, 6, 10)
	employees := []domain.Employee{
		{Name: "Bia", CompanyName: "Empresa A", ToxicologyExpiresOn: ptr(day(2024, 6, 20))},
		{Name: "Caio", CompanyName: "Empresa A", ToxicologyExpiresOn: ptr(day(2024, 6, 30))},
	}

	table := toxicologyTable(employees, generatedOn, 15)

	assert.Equal(t, []string{"Bia", "Empresa A", "20/06/2024", "10", "A vencer"}, table.Rows[0])
	assert.Equal(t, []string{"Caio", "Empresa A", "30/06/2024", "20", "Vigente"}, table.Rows[1])
}

func TestTitles(t *testing.T) {
	assert.Equal(t, "Exame Toxicológico", ToxicologyTitle("", 30))
	assert.Equal(t, "Exame Toxicológico - Vencidos", ToxicologyTitle(domain.ExpiryExpired, 30))
	assert.Equal(t, "Exame Toxicológico - A Vencer (15d)", ToxicologyTitle(domain.ExpiryExpiringSoon, 15))
	assert.Equal(t, "Documentos - Vigentes", DocumentsTitle(domain.ExpiryValid, 0))
	assert.Equal(t, "Documentos - A Vencer (30d)", DocumentsTitle(domain.ExpiryExpiringSoon, 0))
}

func TestFilenames(t *testing.T) {
	assert.Equal(t, "colaborador_42.pdf", EmployeeFilename("42"))
	assert.Equal(t, "empresa_7.pdf", CompanyFilename("7"))
}

func TestEmployeeFields(t *testing.T) {
	e := &domain.Employee{
		Name:                "Ana",
		Active:              true,
		Street:              "Rua A",
		Number:              "10",
		City:                "Campinas",
		State:               "SP",
		CredentialExpiresOn: ptr(day(2025, 1, 31)),
	}

	fields := employeeFields(e)

	assert.Equal(t, [4]string{"Nome", "Ana", "Empresa", ""}, fields[0])
	assert.Equal(t, "Sim", fields[1][3])
	assert.Equal(t, "Rua A, 10", fields[6][1])
	assert.Equal(t, "Campinas / SP", fields[7][1])
	assert.Equal(t, "31/01/2025", fields[9][3])
}
