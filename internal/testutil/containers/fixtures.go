//go:build integration

package containers

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/hr-docs/internal/persistence"
)

// ExpiryFixture is the reference data inserted by SeedExpiryFixture.
//
// With Today 2024-06-10 and a 30 day window (ending 2024-07-10):
//   - documents: 3 expired, 2 expiring (both window bounds), 5 valid, 1 undated;
//   - aso_expires_on: Bia, Ana, Duda expired; Eva, Fabi expiring; Gil valid; Caio NULL;
//   - toxico_expires_on is TEXT, as the schema guard provisions it, and holds
//     malformed values for Bia, Caio and Duda. Eva and Ana are expired, Gil expiring.
type ExpiryFixture struct {
	Today      time.Time
	WindowDays int
	CompanyID  string
}

// SeedExpiryFixture migrates the database and inserts the fixture. Rows are
// inserted out of date order on purpose.
func SeedExpiryFixture(t *testing.T, pool *pgxpool.Pool, migrationsDir string) ExpiryFixture {
	t.Helper()
	ctx := context.Background()

	if err := persistence.RunMigrations(ctx, pool, migrationsDir, zap.NewNop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	exec := func(stmt string, args ...any) {
		t.Helper()
		if _, err := pool.Exec(ctx, stmt, args...); err != nil {
			t.Fatalf("fixture %q: %v", stmt, err)
		}
	}

	exec(`ALTER TABLE employees ALTER COLUMN toxico_expires_on TYPE TEXT`)

	var companyID string
	if err := pool.QueryRow(ctx,
		`INSERT INTO companies (legal_name, trade_name) VALUES ('Empresa Alfa LTDA', 'Alfa') RETURNING id::text`,
	).Scan(&companyID); err != nil {
		t.Fatalf("fixture company: %v", err)
	}

	day := func(y int, m time.Month, d int) *time.Time {
		v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &v
	}

	documents := []*time.Time{
		day(2024, 6, 9), day(2025, 3, 1), day(2024, 7, 10), day(2024, 1, 15), nil,
		day(2024, 7, 11), day(2024, 5, 20), day(2024, 8, 1), day(2024, 6, 10),
		day(2024, 12, 31), day(2026, 1, 1),
	}
	for i, expiresOn := range documents {
		exec(`INSERT INTO documents (company_id, description, number, expires_on) VALUES ($1, 'Alvará', $2, $3)`,
			companyID, string(rune('A'+i)), expiresOn)
	}

	employees := []struct {
		name   string
		active bool
		aso    *time.Time
		toxico *string
	}{
		{"Gil", false, day(2024, 7, 11), strPtr("2024-06-20")},
		{"Duda", true, day(2024, 6, 9), strPtr("")},
		{"Fabi", true, day(2024, 7, 10), nil},
		{"Ana", true, day(2024, 6, 5), strPtr("2024-06-01")},
		{"Caio", true, nil, strPtr("2024-02-30")},
		{"Eva", true, day(2024, 6, 10), strPtr("2024-02-29")},
		{"Bia", true, day(2024, 5, 1), strPtr("15/03/2025")},
	}
	for _, e := range employees {
		exec(`INSERT INTO employees (name, active, aso_expires_on, toxico_expires_on) VALUES ($1, $2, $3, $4)`,
			e.name, e.active, e.aso, e.toxico)
	}

	return ExpiryFixture{
		Today:      time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		WindowDays: 30,
		CompanyID:  companyID,
	}
}

func strPtr(s string) *string {
	return &s
}
