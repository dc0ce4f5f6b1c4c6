package exercise

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies why a pipeline attempt, a validation, or a request failed.
type ErrorCode string

const (
	CodeEmptyTenseCandidates         ErrorCode = "empty_tense_candidates"
	CodeCoverageSelectionFailed      ErrorCode = "coverage_selection_failed"
	CodeTooFewCandidates             ErrorCode = "too_few_candidates"
	CodePastMixDistributionFailed    ErrorCode = "past_mix_distribution_failed"
	CodeStructureMismatch            ErrorCode = "structure_mismatch"
	CodeVerbMismatch                 ErrorCode = "verb_mismatch"
	CodeIrregularMismatch            ErrorCode = "irregular_mismatch"
	CodePlaceholderInvariantViolated ErrorCode = "placeholder_invariant_violation"
	CodeGenerationFailed             ErrorCode = "generation_failed"

	CodeUnknownCategory ErrorCode = "unknown_category"
	CodeInvalidRequest  ErrorCode = "invalid_request"
	CodeNotFound        ErrorCode = "not_found"
	CodeConflict        ErrorCode = "conflict"
	CodeUnavailable     ErrorCode = "unavailable"
	CodeInternal        ErrorCode = "internal"
)

// Error is the canonical error for the exercise engine.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	var b strings.Builder
	switch {
	case op != "" && msg != "":
		fmt.Fprintf(&b, "%s: %s (%s)", op, msg, e.Code)
	case op != "":
		fmt.Fprintf(&b, "%s (%s)", op, e.Code)
	case msg != "":
		fmt.Fprintf(&b, "%s (%s)", msg, e.Code)
	default:
		b.WriteString(string(e.Code))
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches another *Error by code, so errors.Is(err, &Error{Code: c}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// NewError builds an error with explicit code and operation.
func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Errorf is NewError with a formatted message and no cause.
func Errorf(code ErrorCode, op, format string, args ...any) error {
	return NewError(code, op, fmt.Sprintf(format, args...), nil)
}

// Wrap annotates err with a code unless it already carries one.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return err
	}
	return &Error{Code: code, Op: strings.TrimSpace(op), Cause: err}
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e.Code
	}
	return ""
}

// HasCode reports whether err carries code.
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
