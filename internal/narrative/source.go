package narrative

import (
	"context"
	"errors"
	"strings"

	"github.com/yungbote/storygap-backend/internal/grammar"
)

// Request describes the story a Source should write.
type Request struct {
	Category string
	Topic    string
	Tenses   []grammar.Tense
	MinWords int
	MaxWords int
}

// Narrative is raw prose plus the model that produced it.
type Narrative struct {
	Text  string
	Model string
}

// Source generates narrative text. Nothing is assumed about the grammar of what
// comes back; the gap pipeline verifies every tense instance itself.
type Source interface {
	Name() string
	Generate(ctx context.Context, req Request) (Narrative, error)
}

// transient is implemented by provider errors that can classify themselves.
type transient interface {
	Transient() bool
}

// IsTransient reports whether err is a server error, a rate limit or an
// explicit model-unavailable signal. Only these warrant a tier fallback.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var t transient
	if errors.As(err, &t) {
		return t.Transient()
	}
	return false
}

// TransientStatus classifies an upstream HTTP status code.
func TransientStatus(code int) bool {
	return code == 429 || (code >= 500 && code <= 599)
}

var modelUnavailableMarkers = []string{
	"model_not_found",
	"model_unavailable",
	"model is currently unavailable",
	"model is overloaded",
	"overloaded_error",
}

// ModelUnavailable reports whether a provider error body explicitly says the
// requested model cannot serve right now.
func ModelUnavailable(body string) bool {
	b := strings.ToLower(body)
	for _, m := range modelUnavailableMarkers {
		if strings.Contains(b, m) {
			return true
		}
	}
	return false
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int { return len(strings.Fields(text)) }
