package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/hr-docs/internal/domain"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func nullDate(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	d := domain.DateOf(v.Time)
	return &d
}

func nullString(v sql.NullString) *string {
	if !v.Valid || v.String == "" {
		return nil
	}
	s := v.String
	return &s
}

// likePattern builds a case-insensitive substring pattern with LIKE wildcards escaped.
func likePattern(search string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(strings.ToLower(strings.TrimSpace(search))) + "%"
}

// statusPredicate appends the arguments for status over a date expression and
// returns the matching SQL condition. Null dates never match.
func statusPredicate(expr string, status domain.ExpiryStatus, today time.Time, windowDays int, args []any) (string, []any) {
	today = domain.DateOf(today)
	switch status {
	case domain.ExpiryExpired:
		args = append(args, today)
		return fmt.Sprintf("%s < $%d", expr, len(args)), args
	case domain.ExpiryExpiringSoon:
		args = append(args, today, domain.WindowEnd(today, windowDays))
		return fmt.Sprintf("%s BETWEEN $%d AND $%d", expr, len(args)-1, len(args)), args
	case domain.ExpiryValid:
		args = append(args, domain.WindowEnd(today, windowDays))
		return fmt.Sprintf("%s > $%d", expr, len(args)), args
	default:
		return expr + " IS NOT NULL", args
	}
}

func where(clauses []string) string {
	if len(clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(clauses, " AND ")
}
