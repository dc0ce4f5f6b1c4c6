package dberr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yungbote/storygap-backend/internal/domain/exercise"
)

func TestMap(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want exercise.ErrorCode
	}{
		{"not found", fmt.Errorf("get: %w", gorm.ErrRecordNotFound), exercise.CodeNotFound},
		{"canceled", context.Canceled, exercise.CodeUnavailable},
		{"unique", &pgconn.PgError{Code: "23505"}, exercise.CodeConflict},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, exercise.CodeUnavailable},
		{"missing table", &pgconn.PgError{Code: "42P01"}, exercise.CodeUnavailable},
		{"sqlite missing table", errors.New("no such table: irregular_verb"), exercise.CodeUnavailable},
		{"sqlite unique", errors.New("UNIQUE constraint failed: irregular_verb.base"), exercise.CodeConflict},
		{"other", errors.New("boom"), exercise.CodeInternal},
	}
	for _, tc := range cases {
		got := Map("op", tc.err)
		if code := exercise.CodeOf(got); code != tc.want {
			t.Fatalf("%s: expected %s got %s", tc.name, tc.want, code)
		}
		if !errors.Is(got, tc.err) {
			t.Fatalf("%s: mapped error lost its cause", tc.name)
		}
	}
	if Map("op", nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
	domainErr := exercise.Errorf(exercise.CodeInvalidRequest, "x", "bad")
	if Map("op", domainErr) != domainErr {
		t.Fatalf("expected domain errors to pass through")
	}
}
