package persistence

import (
	"context"
	"errors"
	"regexp"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/hr-docs/internal/observability"
)

var (
	regclassQuery = regexp.QuoteMeta(`SELECT to_regclass($1) IS NOT NULL`)
	columnsQuery  = regexp.QuoteMeta(`FROM information_schema.columns`)
)

func alterStmt(table, column string) string {
	return regexp.QuoteMeta(`ALTER TABLE "` + table + `" ADD COLUMN IF NOT EXISTS "` + column + `" TEXT`)
}

func TestSchemaGuard_AddsMissingColumns(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	metrics := observability.NewMetrics()
	guard := NewSchemaGuard(mock, []string{"employees"}, true, zap.NewNop(), metrics)

	mock.ExpectQuery(regclassQuery).WithArgs("employees").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(columnsQuery).WithArgs("employees").
		WillReturnRows(pgxmock.NewRows([]string{"column_name"}).AddRow("id").AddRow("name").AddRow(ColumnASOExpiry))
	mock.ExpectExec(alterStmt("employees", ColumnCarteiraExpiry)).WillReturnResult(pgxmock.NewResult("ALTER", 0))
	mock.ExpectExec(alterStmt("employees", ColumnToxicoExpiry)).WillReturnResult(pgxmock.NewResult("ALTER", 0))

	report := guard.EnsureExpiryColumns(context.Background())
	tc := report.Table("employees")

	assert.True(t, tc.Exists)
	assert.NoError(t, tc.Err)
	assert.Equal(t, []string{ColumnCarteiraExpiry, ColumnToxicoExpiry}, tc.Added)
	for _, column := range GuardedExpiryColumns {
		assert.True(t, tc.Has(column), column)
	}
	assert.False(t, tc.Has(ColumnCNHExpiry))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.SchemaColumnsAdded))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaGuard_SecondRunIsNoop(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	guard := NewSchemaGuard(mock, []string{"employees"}, true, zap.NewNop(), nil)

	mock.ExpectQuery(regclassQuery).WithArgs("employees").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(columnsQuery).WithArgs("employees").
		WillReturnRows(pgxmock.NewRows([]string{"column_name"}).
			AddRow(ColumnASOExpiry).AddRow(ColumnCarteiraExpiry).AddRow(ColumnToxicoExpiry))

	report := guard.EnsureExpiryColumns(context.Background())

	assert.Empty(t, report.Table("employees").Added)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaGuard_MissingTableIsSkipped(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	guard := NewSchemaGuard(mock, []string{"legacy_staff", "employees"}, true, zap.NewNop(), nil)

	mock.ExpectQuery(regclassQuery).WithArgs("legacy_staff").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regclassQuery).WithArgs("employees").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(columnsQuery).WithArgs("employees").
		WillReturnRows(pgxmock.NewRows([]string{"column_name"}).
			AddRow(ColumnASOExpiry).AddRow(ColumnCarteiraExpiry).AddRow(ColumnToxicoExpiry))

	report := guard.EnsureExpiryColumns(context.Background())

	legacy := report.Table("legacy_staff")
	assert.False(t, legacy.Exists)
	assert.NoError(t, legacy.Err)
	assert.False(t, legacy.Has(ColumnASOExpiry))
	assert.True(t, report.Table("employees").Exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaGuard_FailuresAreSwallowed(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	guard := NewSchemaGuard(mock, []string{"employees"}, true, zap.NewNop(), nil)

	mock.ExpectQuery(regclassQuery).WithArgs("employees").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(columnsQuery).WithArgs("employees").
		WillReturnRows(pgxmock.NewRows([]string{"column_name"}).AddRow("id"))
	mock.ExpectExec(alterStmt("employees", ColumnASOExpiry)).WillReturnResult(pgxmock.NewResult("ALTER", 0))
	mock.ExpectExec(alterStmt("employees", ColumnCarteiraExpiry)).WillReturnError(errors.New("permission denied"))
	mock.ExpectExec(alterStmt("employees", ColumnToxicoExpiry)).WillReturnResult(pgxmock.NewResult("ALTER", 0))

	var report ColumnReport
	assert.NotPanics(t, func() {
		report = guard.EnsureExpiryColumns(context.Background())
	})

	tc := report.Table("employees")
	assert.Error(t, tc.Err)
	assert.True(t, tc.Has(ColumnASOExpiry))
	assert.False(t, tc.Has(ColumnCarteiraExpiry))
	assert.True(t, tc.Has(ColumnToxicoExpiry))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaGuard_InspectionErrorLeavesColumnsAbsent(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	guard := NewSchemaGuard(mock, []string{"employees"}, true, zap.NewNop(), nil)

	mock.ExpectQuery(regclassQuery).WithArgs("employees").WillReturnError(errors.New("connection reset"))

	report := guard.EnsureExpiryColumns(context.Background())
	tc := report.Table("employees")

	assert.False(t, tc.Exists)
	assert.Error(t, tc.Err)
	assert.False(t, tc.Has(ColumnASOExpiry))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaGuard_InspectOnly(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	guard := NewSchemaGuard(mock, []string{"employees"}, false, zap.NewNop(), nil)

	mock.ExpectQuery(regclassQuery).WithArgs("employees").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(columnsQuery).WithArgs("employees").
		WillReturnRows(pgxmock.NewRows([]string{"column_name"}).AddRow(ColumnCNHExpiry))

	report := guard.EnsureExpiryColumns(context.Background())
	tc := report.Table("employees")

	assert.True(t, tc.Has(ColumnCNHExpiry))
	assert.False(t, tc.Has(ColumnASOExpiry))
	assert.Empty(t, tc.Added)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaGuard_NoDatabase(t *testing.T) {
	guard := NewSchemaGuard(nil, []string{"employees"}, true, nil, nil)

	report := guard.EnsureExpiryColumns(context.Background())

	assert.False(t, report.Table("employees").Exists)
}
