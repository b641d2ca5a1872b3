// Package dberr classifies store errors, in particular unique-constraint
// violations, so handlers can name the conflicting column in 409 responses.
package dberr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the postgres SQLSTATE for a unique-constraint violation.
const uniqueViolation = "23505"

// Column names matchable in constraint names and driver messages. Order
// matters: the primary key constraint (students_pkey) carries no column name,
// so it is resolved explicitly to roll_no.
var duplicateColumns = []string{"roll_no", "email", "mobile_no"}

// Substrings that mark a duplicate-key error across the drivers we run
// against (postgres in production, sqlite in tests).
var duplicateMarkers = []string{
	"duplicate key",
	"UNIQUE constraint failed",
	"Duplicate entry",
}

// DuplicateColumn reports which students column a unique-constraint violation
// refers to. ok is false when err is not a duplicate-key error at all; an
// empty column with ok true means the column could not be determined.
func DuplicateColumn(err error) (column string, ok bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != uniqueViolation {
			return "", false
		}
		if strings.Contains(pgErr.ConstraintName, "pkey") {
			return "roll_no", true
		}
		return matchColumn(pgErr.ConstraintName + " " + pgErr.Detail), true
	}

	msg := err.Error()
	for _, marker := range duplicateMarkers {
		if strings.Contains(msg, marker) {
			return matchColumn(msg), true
		}
	}
	return "", false
}

func matchColumn(s string) string {
	for _, col := range duplicateColumns {
		if strings.Contains(s, col) {
			return col
		}
	}
	return ""
}
