package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// SeedAdmin describes the first operator account.
type SeedAdmin struct {
	Username     string
	Name         string
	PasswordHash string
}

var (
	seedRoles         = []string{"Motorista", "Auxiliar"}
	seedDocumentTypes = []string{"Alvará", "Certidão"}
)

const (
	seedCompanyLegalName = "Empresa Exemplo LTDA"
	seedCompanyTradeName = "Empresa Exemplo"
	seedCompanyCNPJ      = "00.000.000/0001-00"
)

// SeedInitialData inserts the admin user and the starter catalog. Existing rows
// are left untouched so it can be run repeatedly.
func SeedInitialData(ctx context.Context, q Queryer, admin SeedAdmin, logger *zap.Logger) error {
	if q == nil {
		return fmt.Errorf("seed: database not configured")
	}

	inserted := int64(0)
	exec := func(label, stmt string, args ...any) error {
		tag, err := q.Exec(ctx, stmt, args...)
		if err != nil {
			return fmt.Errorf("seed %s: %w", label, err)
		}
		inserted += tag.RowsAffected()
		return nil
	}

	if err := exec("admin user",
		`INSERT INTO users (username, name, password_hash, role) VALUES ($1, $2, $3, 'ADMIN') ON CONFLICT (username) DO NOTHING`,
		admin.Username, admin.Name, admin.PasswordHash,
	); err != nil {
		return err
	}

	for _, name := range seedRoles {
		if err := exec("role", `INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return err
		}
	}

	for _, name := range seedDocumentTypes {
		if err := exec("document type", `INSERT INTO document_types (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return err
		}
	}

	if err := exec("company",
		`INSERT INTO companies (legal_name, trade_name, cnpj)
        SELECT $1::text, $2::text, $3::text
        WHERE NOT EXISTS (SELECT 1 FROM companies WHERE legal_name = $1::text)`,
		seedCompanyLegalName, seedCompanyTradeName, seedCompanyCNPJ,
	); err != nil {
		return err
	}

	logger.Info("initial data seeded", zap.Int64("rows_inserted", inserted))
	return nil
}
