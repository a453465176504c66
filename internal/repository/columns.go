package repository

import (
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hr-docs/internal/config"
	"github.com/spec-kit/hr-docs/internal/domain"
	"github.com/spec-kit/hr-docs/internal/persistence"
)

// DefaultCardLimit caps the rows returned for a dashboard card.
const DefaultCardLimit = 100

// ColumnRef names a physical column. The zero value means the column is unavailable.
type ColumnRef string

// Available reports whether the column can be queried.
func (c ColumnRef) Available() bool {
	return c != ""
}

// isoDatePattern is the only text layout read as a date.
const isoDatePattern = `^[1-9][0-9]{3}-(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])$`

// dateExpr reads the column as a date whether it is stored as DATE or TEXT.
// Text that is not a real calendar date in ISO layout reads as NULL, so one
// malformed legacy value cannot fail the whole query. The inner CASE rejects
// days past the end of the month (2024-02-30) without attempting the cast.
func (c ColumnRef) dateExpr(alias string) string {
	if !c.Available() {
		return "NULL::date"
	}
	v := fmt.Sprintf("%s.%s::text", alias, pgx.Identifier{string(c)}.Sanitize())
	return fmt.Sprintf(
		"(CASE WHEN %[1]s ~ '%[2]s' THEN CASE WHEN to_char((left(%[1]s, 8) || '01')::date + (right(%[1]s, 2)::int - 1), 'YYYY-MM-DD') = %[1]s THEN %[1]s::date END END)",
		v, isoDatePattern,
	)
}

// CredentialSource tells which column ended up backing the driving credential.
type CredentialSource string

const (
	CredentialSourceCarteira CredentialSource = "carteira"
	CredentialSourceCNH      CredentialSource = "cnh"
	CredentialSourceNone     CredentialSource = "none"
)

// ExpiryColumns maps each employee category to its resolved column.
type ExpiryColumns struct {
	Health           ColumnRef
	Credential       ColumnRef
	CredentialSource CredentialSource
	Toxicology       ColumnRef
}

// DefaultExpiryColumns matches the schema created by the bundled migrations.
func DefaultExpiryColumns() ExpiryColumns {
	return ExpiryColumns{
		Health:           persistence.ColumnASOExpiry,
		Credential:       persistence.ColumnCarteiraExpiry,
		CredentialSource: CredentialSourceCarteira,
		Toxicology:       persistence.ColumnToxicoExpiry,
	}
}

// For returns the column backing category and whether it is available.
func (c ExpiryColumns) For(category domain.Category) (ColumnRef, bool) {
	var ref ColumnRef
	switch category {
	case domain.CategoryHealth:
		ref = c.Health
	case domain.CategoryCredential:
		ref = c.Credential
	case domain.CategoryToxicology:
		ref = c.Toxicology
	}
	return ref, ref.Available()
}

// ResolveExpiryColumns turns what the schema guard observed on table into the
// columns queries may use. In auto mode the credential falls back from
// carteira_expires_on to cnh_expires_on and is disabled when neither exists.
func ResolveExpiryColumns(report persistence.ColumnReport, table string, mode config.CredentialSource) ExpiryColumns {
	observed := report.Table(table)
	cols := ExpiryColumns{CredentialSource: CredentialSourceNone}

	if observed.Has(persistence.ColumnASOExpiry) {
		cols.Health = persistence.ColumnASOExpiry
	}
	if observed.Has(persistence.ColumnToxicoExpiry) {
		cols.Toxicology = persistence.ColumnToxicoExpiry
	}

	useCarteira := func() bool {
		if observed.Has(persistence.ColumnCarteiraExpiry) {
			cols.Credential = persistence.ColumnCarteiraExpiry
			cols.CredentialSource = CredentialSourceCarteira
			return true
		}
		return false
	}
	useCNH := func() bool {
		if observed.Has(persistence.ColumnCNHExpiry) {
			cols.Credential = persistence.ColumnCNHExpiry
			cols.CredentialSource = CredentialSourceCNH
			return true
		}
		return false
	}

	switch mode {
	case config.CredentialSourceCarteira:
		useCarteira()
	case config.CredentialSourceCNH:
		useCNH()
	case config.CredentialSourceNone:
	default:
		_ = useCarteira() || useCNH()
	}
	return cols
}
