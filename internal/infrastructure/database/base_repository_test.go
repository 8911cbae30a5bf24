package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/Radmir675/Divisions-sub000/pkg/apperror"
)

func TestBaseRepository_HandleError(t *testing.T) {
	r := &BaseRepository{}

	tests := []struct {
		name     string
		err      error
		wantCode apperror.ErrorCode
		wantIs   error
	}{
		{"no rows", pgx.ErrNoRows, apperror.CodeNotFound, ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "uq_departments_identifier"}, apperror.CodeConflict, ErrConflict},
		{"lock not available", &pgconn.PgError{Code: "55P03"}, apperror.CodeInternalError, ErrLockFailed},
		{"deadlock", fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "40P01"}), apperror.CodeInternalError, ErrLockFailed},
		{"other", errors.New("connection reset"), apperror.CodeInternalError, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.HandleError(tt.err)

			assert.Equal(t, tt.wantCode, apperror.CodeOf(got))
			if tt.wantIs != nil {
				assert.ErrorIs(t, got, tt.wantIs)
			}
		})
	}
}

func TestBaseRepository_HandleError_PassesThroughAppError(t *testing.T) {
	r := &BaseRepository{}
	original := apperror.NewNotFoundError("department")

	assert.Same(t, original, r.HandleError(original))
	assert.NoError(t, r.HandleError(nil))
}
