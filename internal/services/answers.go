package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/storygap-backend/internal/data/repos"
	"github.com/yungbote/storygap-backend/internal/domain/exercise"
	"github.com/yungbote/storygap-backend/internal/grammar"
	"github.com/yungbote/storygap-backend/internal/platform/dbctx"
	"github.com/yungbote/storygap-backend/internal/platform/logger"
)

type GapResult struct {
	PlaceholderID string `json:"placeholder_id"`
	Given         string `json:"given"`
	Correct       bool   `json:"correct"`
	// ValidForm is true when the answer is an acceptable form of the base verb
	// in the gap's tense, even if it differs from the story's wording.
	ValidForm bool   `json:"valid_form"`
	Expected  string `json:"expected"`
	Reason    string `json:"reason,omitempty"`
}

type CheckResult struct {
	ExerciseID uuid.UUID   `json:"exercise_id"`
	Score      int         `json:"score"`
	Total      int         `json:"total"`
	Gaps       []GapResult `json:"gaps"`
}

type AnswerService interface {
	// Check grades answers (keyed by placeholder id) against a stored exercise.
	Check(ctx context.Context, exerciseID uuid.UUID, answers map[string]string) (CheckResult, error)
}

type answerService struct {
	log       *logger.Logger
	store     repos.StoredExerciseRepo
	validator *grammar.Validator
}

func NewAnswerService(baseLog *logger.Logger, store repos.StoredExerciseRepo, validator *grammar.Validator) AnswerService {
	return &answerService{log: baseLog.With("service", "AnswerService"), store: store, validator: validator}
}

func (s *answerService) Check(ctx context.Context, exerciseID uuid.UUID, answers map[string]string) (CheckResult, error) {
	const op = "services.Check"
	if s.store == nil {
		return CheckResult{}, exercise.Errorf(exercise.CodeUnavailable, op, "exercise store not configured")
	}
	p, err := s.store.GetByID(dbctx.Context{Ctx: ctx}, exerciseID)
	if err != nil {
		return CheckResult{}, err
	}
	if p == nil {
		return CheckResult{}, exercise.Errorf(exercise.CodeNotFound, op, "exercise %s not found", exerciseID)
	}
	return Grade(p, answers, s.validator), nil
}

// Grade compares normalized answers to p's gaps. A nil validator skips the
// valid-form check.
func Grade(p *exercise.Payload, answers map[string]string, v *grammar.Validator) CheckResult {
	out := CheckResult{ExerciseID: p.ID, Total: len(p.Gaps), Gaps: make([]GapResult, 0, len(p.Gaps))}
	for _, g := range p.Gaps {
		given := normalizeAnswer(answers[g.PlaceholderID])
		r := GapResult{
			PlaceholderID: g.PlaceholderID,
			Given:         given,
			Expected:      g.CorrectAnswer,
			Correct:       given != "" && given == normalizeAnswer(g.CorrectAnswer),
		}
		switch {
		case r.Correct:
			r.ValidForm = true
			out.Score++
		case given == "":
			r.Reason = "missing"
		case v != nil:
			if err := v.Validate(grammar.Tense(g.Tense), g.BaseVerb, given); err != nil {
				r.Reason = string(exercise.CodeOf(err))
			} else {
				r.ValidForm = true
				r.Reason = "different_form"
			}
		}
		out.Gaps = append(out.Gaps, r)
	}
	return out
}
