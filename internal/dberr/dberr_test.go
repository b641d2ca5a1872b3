package dberr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestDuplicateColumn(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCol  string
		wantDupe bool
	}{
		{
			name: "postgres unique violation on email index",
			err: &pgconn.PgError{
				Code:           "23505",
				ConstraintName: "idx_students_email",
				Detail:         "Key (email)=(a@b.c) already exists.",
			},
			wantCol:  "email",
			wantDupe: true,
		},
		{
			name: "postgres primary key violation resolves to roll_no",
			err: &pgconn.PgError{
				Code:           "23505",
				ConstraintName: "students_pkey",
			},
			wantCol:  "roll_no",
			wantDupe: true,
		},
		{
			name: "postgres unique violation with only detail",
			err: &pgconn.PgError{
				Code:   "23505",
				Detail: "Key (mobile_no)=(9876543210) already exists.",
			},
			wantCol:  "mobile_no",
			wantDupe: true,
		},
		{
			name:     "postgres non-unique error",
			err:      &pgconn.PgError{Code: "23503", ConstraintName: "fk_something"},
			wantCol:  "",
			wantDupe: false,
		},
		{
			name:     "wrapped postgres error",
			err:      fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505", ConstraintName: "idx_students_mobile_no"}),
			wantCol:  "mobile_no",
			wantDupe: true,
		},
		{
			name:     "sqlite unique constraint message",
			err:      errors.New("UNIQUE constraint failed: students.roll_no"),
			wantCol:  "roll_no",
			wantDupe: true,
		},
		{
			name:     "mysql duplicate entry message",
			err:      errors.New("Error 1062: Duplicate entry '9876543210' for key 'mobile_no'"),
			wantCol:  "mobile_no",
			wantDupe: true,
		},
		{
			name:     "duplicate with unrecognized column",
			err:      errors.New("duplicate key value violates unique constraint \"something_else\""),
			wantCol:  "",
			wantDupe: true,
		},
		{
			name:     "unrelated error",
			err:      errors.New("connection refused"),
			wantCol:  "",
			wantDupe: false,
		},
		{
			name:     "nil error",
			err:      nil,
			wantCol:  "",
			wantDupe: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, ok := DuplicateColumn(tt.err)
			assert.Equal(t, tt.wantDupe, ok)
			assert.Equal(t, tt.wantCol, col)
		})
	}
}
