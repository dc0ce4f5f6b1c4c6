package services

import (
	"strings"

	"github.com/yungbote/storygap-backend/internal/domain/exercise"
	"github.com/yungbote/storygap-backend/internal/gaps"
	"github.com/yungbote/storygap-backend/internal/grammar"
)

// FormSet lists what the validator accepts for one base verb.
type FormSet struct {
	Base              string   `json:"base"`
	Irregular         bool     `json:"irregular"`
	Present           []string `json:"present"`
	Past              []string `json:"past"`
	PastParticiple    []string `json:"past_participle"`
	PresentParticiple []string `json:"present_participle"`
}

// ExtractResult is a pipeline run over caller-supplied text. Candidates holds
// every validated candidate, including those not selected.
type ExtractResult struct {
	Text       string              `json:"text"`
	Gaps       []exercise.Gap      `json:"gaps"`
	Candidates []gaps.GapCandidate `json:"candidates"`
}

type GrammarService interface {
	Validate(tense grammar.Tense, base, answer string) error
	Forms(base string) FormSet
	Candidates(text string, tenses []grammar.Tense) []gaps.GapCandidate
	Extract(text string, tenses []grammar.Tense, b gaps.Bounds) (ExtractResult, error)
	Validator() *grammar.Validator
}

type grammarService struct {
	validator *grammar.Validator
	pipeline  *gaps.Pipeline
}

func NewGrammarService(pipeline *gaps.Pipeline) GrammarService {
	return &grammarService{validator: pipeline.Extractor().Validator(), pipeline: pipeline}
}

func (g *grammarService) Validator() *grammar.Validator { return g.validator }

func (g *grammarService) Validate(tense grammar.Tense, base, answer string) error {
	return g.validator.Validate(tense, normalizeAnswer(base), normalizeAnswer(answer))
}

func (g *grammarService) Forms(base string) FormSet {
	base = normalizeAnswer(base)
	past, irregular := g.validator.PastForms(base)
	participle, _ := g.validator.PastParticipleForms(base)
	return FormSet{
		Base:              base,
		Irregular:         irregular,
		Present:           g.validator.PresentForms(base),
		Past:              past,
		PastParticiple:    participle,
		PresentParticiple: g.validator.ParticipleForms(base),
	}
}

func (g *grammarService) Candidates(text string, tenses []grammar.Tense) []gaps.GapCandidate {
	return g.pipeline.Extractor().Extract(text, tenses)
}

func (g *grammarService) Extract(text string, tenses []grammar.Tense, b gaps.Bounds) (ExtractResult, error) {
	if strings.TrimSpace(text) == "" {
		return ExtractResult{}, exercise.Errorf(exercise.CodeInvalidRequest, "services.Extract", "text is empty")
	}
	res, err := g.pipeline.Run(text, tenses, b)
	if err != nil {
		return ExtractResult{}, err
	}
	return ExtractResult{
		Text:       res.Text,
		Gaps:       res.Gaps,
		Candidates: g.Candidates(text, tenses),
	}, nil
}

// normalizeAnswer lowercases s and collapses whitespace runs to one space.
func normalizeAnswer(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
