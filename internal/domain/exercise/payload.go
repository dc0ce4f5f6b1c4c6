package exercise

import (
	"time"

	"github.com/google/uuid"
)

// Gap is one blank in a rendered exercise.
type Gap struct {
	PlaceholderID string `json:"placeholder_id"`
	Placeholder   string `json:"placeholder"`
	BaseVerb      string `json:"base_verb"`
	CorrectAnswer string `json:"correct_answer"`
	Tense         string `json:"tense"`
	// Hint is the filler adverb kept next to the placeholder, if any.
	Hint string `json:"hint,omitempty"`
}

// Payload is a validated fill-in-the-blank exercise. It is built once per
// successful pipeline attempt and must not be mutated afterwards; Clone before
// handing it to code that might.
type Payload struct {
	ID          uuid.UUID `json:"id"`
	Category    string    `json:"category"`
	Text        string    `json:"text"`
	Gaps        []Gap     `json:"gaps"`
	SourceModel string    `json:"source_model,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p *Payload) Clone() *Payload {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Gaps = append([]Gap(nil), p.Gaps...)
	return &cp
}
