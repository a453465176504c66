package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/hr-docs/internal/domain"
)

const (
	undefinedColumnCode           = "42703"
	undefinedTableCode            = "42P01"
	invalidTextRepresentationCode = "22P02"
	invalidDatetimeFormatCode     = "22007"
	datetimeFieldOverflowCode     = "22008"
)

// translatePgError maps driver errors onto domain sentinels.
func translatePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case undefinedColumnCode, undefinedTableCode,
			invalidDatetimeFormatCode, datetimeFieldOverflowCode:
			return errors.Join(domain.ErrSchemaUnavailable, err)
		case invalidTextRepresentationCode:
			// malformed uuid in a lookup
			return domain.ErrNotFound
		}
	}
	return err
}
