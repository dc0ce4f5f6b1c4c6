package exercise

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestCodeOfThroughWrapping(t *testing.T) {
	base := NewError(CodeTooFewCandidates, "select", "found 6, need 10", nil)
	wrapped := fmt.Errorf("attempt 2: %w", base)

	if got := CodeOf(wrapped); got != CodeTooFewCandidates {
		t.Fatalf("CodeOf=%q", got)
	}
	if !errors.Is(wrapped, &Error{Code: CodeTooFewCandidates}) {
		t.Fatalf("errors.Is by code failed")
	}
	if errors.Is(wrapped, &Error{Code: CodeVerbMismatch}) {
		t.Fatalf("errors.Is matched the wrong code")
	}
	if CodeOf(errors.New("plain")) != "" {
		t.Fatalf("plain error should have no code")
	}
}

func TestWrapKeepsExistingCode(t *testing.T) {
	inner := NewError(CodeIrregularMismatch, "validate", "goed", nil)
	if got := CodeOf(Wrap(CodeGenerationFailed, "x", inner)); got != CodeIrregularMismatch {
		t.Fatalf("Wrap replaced code: %q", got)
	}
	cause := errors.New("boom")
	w := Wrap(CodeGenerationFailed, "narrative.generate", cause)
	if CodeOf(w) != CodeGenerationFailed || !errors.Is(w, cause) {
		t.Fatalf("Wrap lost code or cause: %v", w)
	}
	if Wrap(CodeInternal, "x", nil) != nil {
		t.Fatalf("Wrap(nil) must be nil")
	}
}

func TestErrorString(t *testing.T) {
	err := NewError(CodeStructureMismatch, "validate", "expected 4 tokens, got 3", errors.New("cause"))
	s := err.Error()
	for _, want := range []string{"validate", "expected 4 tokens", "structure_mismatch", "cause"} {
		if !strings.Contains(s, want) {
			t.Fatalf("%q missing %q", s, want)
		}
	}
}
