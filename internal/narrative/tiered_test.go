package narrative

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yungbote/storygap-backend/internal/grammar"
)

type stubError struct{ transient bool }

func (e stubError) Error() string   { return "stub" }
func (e stubError) Transient() bool { return e.transient }

type stubSource struct {
	name  string
	err   error
	calls int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Generate(ctx context.Context, req Request) (Narrative, error) {
	s.calls++
	if s.err != nil {
		return Narrative{}, s.err
	}
	return Narrative{Text: "story from " + s.name, Model: s.name}, nil
}

func TestTiered_FallsBackOnTransientFailure(t *testing.T) {
	primary := &stubSource{name: "primary", err: stubError{transient: true}}
	fallback := &stubSource{name: "fallback"}
	src := NewTiered(nil, primary, fallback)

	n, err := src.Generate(context.Background(), Request{Category: "travel"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if n.Model != "fallback" || fallback.calls != 1 || primary.calls != 1 {
		t.Fatalf("expected one call each and fallback output, got %+v primary=%d fallback=%d", n, primary.calls, fallback.calls)
	}
}

func TestTiered_PropagatesPermanentFailure(t *testing.T) {
	perm := stubError{transient: false}
	primary := &stubSource{name: "primary", err: perm}
	fallback := &stubSource{name: "fallback"}
	src := NewTiered(nil, primary, fallback)

	_, err := src.Generate(context.Background(), Request{})
	if !errors.Is(err, perm) {
		t.Fatalf("expected the primary error, got %v", err)
	}
	if fallback.calls != 0 {
		t.Fatalf("expected no fallback call, got %d", fallback.calls)
	}
}

func TestTiered_FallbackFailureJoinsErrors(t *testing.T) {
	first := stubError{transient: true}
	second := errors.New("fallback down")
	src := NewTiered(nil, &stubSource{name: "a", err: first}, &stubSource{name: "b", err: second})

	_, err := src.Generate(context.Background(), Request{})
	if !errors.Is(err, second) || !IsTransient(err) {
		t.Fatalf("expected joined errors, got %v", err)
	}
}

func TestIsTransient(t *testing.T) {
	if IsTransient(nil) || IsTransient(errors.New("plain")) {
		t.Fatalf("plain errors must not be transient")
	}
	if !IsTransient(stubError{transient: true}) {
		t.Fatalf("expected transient")
	}
	for _, code := range []int{429, 500, 503} {
		if !TransientStatus(code) {
			t.Fatalf("expected %d to be transient", code)
		}
	}
	for _, code := range []int{400, 401, 404} {
		if TransientStatus(code) {
			t.Fatalf("expected %d to be permanent", code)
		}
	}
	if !ModelUnavailable(`{"error":{"code":"model_not_found"}}`) {
		t.Fatalf("expected model_not_found to signal unavailability")
	}
}

func TestPromptMentionsTensesAndBand(t *testing.T) {
	_, user := Prompt(Request{Category: "travel", MinWords: 120, MaxWords: 200, Tenses: grammar.MixedPastTrio})
	for _, want := range []string{"about travel", "between 120 and 200 words", "past perfect (e.g. had walked)", "at least 3 past continuous"} {
		if !strings.Contains(user, want) {
			t.Fatalf("expected %q in %q", want, user)
		}
	}
}

func TestWordCount(t *testing.T) {
	if n := WordCount("  one two\tthree\nfour "); n != 4 {
		t.Fatalf("expected 4 words, got %d", n)
	}
}
