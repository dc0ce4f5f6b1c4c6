package dberr

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yungbote/storygap-backend/internal/domain/exercise"
)

// Map classifies store failures into exercise error codes.
func Map(op string, err error) error {
	if err == nil {
		return nil
	}
	var ee *exercise.Error
	if errors.As(err, &ee) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return exercise.Wrap(exercise.CodeNotFound, op, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return exercise.Wrap(exercise.CodeUnavailable, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return exercise.Wrap(exercise.CodeConflict, op, err) // unique_violation
		case "40001", "40P01", "55P03", "57P01", "57P03":
			return exercise.Wrap(exercise.CodeUnavailable, op, err) // serialization/deadlock/lock/shutdown
		case "42P01":
			return exercise.Wrap(exercise.CodeUnavailable, op, err) // undefined_table
		}
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return exercise.Wrap(exercise.CodeUnavailable, op, err)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "duplicate key"), strings.Contains(msg, "unique constraint"):
		return exercise.Wrap(exercise.CodeConflict, op, err)
	case strings.Contains(msg, "no such table"),
		strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "temporar"):
		return exercise.Wrap(exercise.CodeUnavailable, op, err)
	default:
		return exercise.Wrap(exercise.CodeInternal, op, err)
	}
}
