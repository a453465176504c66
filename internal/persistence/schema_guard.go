package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/hr-docs/internal/observability"
)

// Expiry columns of the employee table.
const (
	ColumnASOExpiry      = "aso_expires_on"
	ColumnCarteiraExpiry = "carteira_expires_on"
	ColumnCNHExpiry      = "cnh_expires_on"
	ColumnToxicoExpiry   = "toxico_expires_on"
)

// GuardedExpiryColumns are provisioned when missing. cnh_expires_on is only a
// legacy fallback and is never created.
var GuardedExpiryColumns = []string{ColumnASOExpiry, ColumnCarteiraExpiry, ColumnToxicoExpiry}

// TableColumns is what the guard observed for one table.
type TableColumns struct {
	Table   string
	Exists  bool
	Columns map[string]struct{}
	Added   []string
	Err     error
}

// Has reports whether the column is physically present.
func (t TableColumns) Has(column string) bool {
	if t.Columns == nil {
		return false
	}
	_, ok := t.Columns[column]
	return ok
}

// ColumnReport collects the per-table observations of a guard run.
type ColumnReport struct {
	Tables map[string]TableColumns
}

// Table returns the observation for name, empty when it was not inspected.
func (r ColumnReport) Table(name string) TableColumns {
	if tc, ok := r.Tables[name]; ok {
		return tc
	}
	return TableColumns{Table: name}
}

// SchemaGuard makes sure the optional expiry columns exist before they are queried.
type SchemaGuard struct {
	q         Queryer
	tables    []string
	provision bool
	logger    *zap.Logger
	metrics   *observability.Metrics
}

// NewSchemaGuard builds a guard over tables. With provision=false it only inspects.
func NewSchemaGuard(q Queryer, tables []string, provision bool, logger *zap.Logger, metrics *observability.Metrics) *SchemaGuard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchemaGuard{q: q, tables: tables, provision: provision, logger: logger, metrics: metrics}
}

// EnsureExpiryColumns adds the missing expiry columns as nullable TEXT on every
// guarded table that exists. It never returns an error: failures are logged and
// reflected in the report as absent columns. Calling it repeatedly is safe.
func (g *SchemaGuard) EnsureExpiryColumns(ctx context.Context) (report ColumnReport) {
	report = ColumnReport{Tables: make(map[string]TableColumns, len(g.tables))}
	if g.q == nil {
		g.logger.Warn("schema guard has no database; expiry columns unavailable")
		return report
	}

	for _, table := range g.tables {
		report.Tables[table] = g.ensureTable(ctx, table)
	}
	return report
}

func (g *SchemaGuard) ensureTable(ctx context.Context, table string) (tc TableColumns) {
	tc = TableColumns{Table: table, Columns: map[string]struct{}{}}

	defer func() {
		if r := recover(); r != nil {
			tc.Err = fmt.Errorf("schema guard panic: %v", r)
			g.logger.Warn("schema guard aborted", zap.String("table", table), zap.Any("panic", r))
		}
	}()

	var exists bool
	if err := g.q.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, table).Scan(&exists); err != nil {
		tc.Err = err
		g.logger.Warn("schema guard could not inspect table", zap.String("table", table), zap.Error(err))
		return tc
	}
	if !exists {
		return tc
	}
	tc.Exists = true

	columns, err := g.columns(ctx, table)
	if err != nil {
		tc.Err = err
		g.logger.Warn("schema guard could not list columns", zap.String("table", table), zap.Error(err))
		return tc
	}
	tc.Columns = columns

	if !g.provision {
		return tc
	}

	for _, column := range GuardedExpiryColumns {
		if tc.Has(column) {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s TEXT",
			pgx.Identifier{table}.Sanitize(), pgx.Identifier{column}.Sanitize())
		if _, err := g.q.Exec(ctx, stmt); err != nil {
			tc.Err = err
			g.logger.Warn("schema guard could not add column",
				zap.String("table", table), zap.String("column", column), zap.Error(err))
			continue
		}
		tc.Columns[column] = struct{}{}
		tc.Added = append(tc.Added, column)
	}

	if len(tc.Added) > 0 {
		g.metrics.AddSchemaColumns(len(tc.Added))
		g.logger.Info("expiry columns provisioned", zap.String("table", table), zap.Strings("columns", tc.Added))
	}
	return tc
}

func (g *SchemaGuard) columns(ctx context.Context, table string) (map[string]struct{}, error) {
	const query = `
        SELECT column_name
        FROM information_schema.columns
        WHERE table_schema = current_schema() AND table_name = $1`

	rows, err := g.q.Query(ctx, query, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns := map[string]struct{}{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		columns[name] = struct{}{}
	}
	return columns, rows.Err()
}
