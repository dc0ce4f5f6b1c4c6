package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/storygap-backend/internal/domain/exercise"
	"github.com/yungbote/storygap-backend/internal/gaps"
	"github.com/yungbote/storygap-backend/internal/grammar"
	"github.com/yungbote/storygap-backend/internal/http/response"
	"github.com/yungbote/storygap-backend/internal/services"
)

const defaultMaxGaps = 10

type GrammarHandler struct {
	grammar services.GrammarService
}

func NewGrammarHandler(g services.GrammarService) *GrammarHandler {
	return &GrammarHandler{grammar: g}
}

type extractRequest struct {
	Text    string   `json:"text"`
	Tenses  []string `json:"tenses"`
	MinGaps int      `json:"min_gaps"`
	MaxGaps int      `json:"max_gaps"`
}

// POST /api/gaps/extract
func (h *GrammarHandler) Extract(c *gin.Context) {
	const op = "handlers.Extract"
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAppError(c, bindError(op, err))
		return
	}
	tenses, err := grammar.ParseTenses(req.Tenses)
	if err != nil {
		response.RespondAppError(c, exercise.Wrap(exercise.CodeInvalidRequest, op, err))
		return
	}
	if len(tenses) == 0 {
		response.RespondAppError(c, exercise.Errorf(exercise.CodeInvalidRequest, op, "at least one tense is required"))
		return
	}
	b := gaps.Bounds{MinGaps: req.MinGaps, MaxGaps: req.MaxGaps}
	if b.MaxGaps == 0 {
		b.MaxGaps = defaultMaxGaps
	}
	if b.MinGaps == 0 {
		b.MinGaps = min(len(tenses), b.MaxGaps)
	}
	res, err := h.grammar.Extract(req.Text, tenses, b)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, res)
}

type validateRequest struct {
	Tense  string `json:"tense"`
	Base   string `json:"base"`
	Answer string `json:"answer"`
}

type validateResponse struct {
	Valid bool             `json:"valid"`
	Code  string           `json:"code,omitempty"`
	Error string           `json:"error,omitempty"`
	Forms services.FormSet `json:"forms"`
}

// POST /api/answers/validate
//
// An answer the validator rejects is reported with 422 and the validator's code.
func (h *GrammarHandler) Validate(c *gin.Context) {
	const op = "handlers.Validate"
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAppError(c, bindError(op, err))
		return
	}
	tense, err := grammar.ParseTense(req.Tense)
	if err != nil {
		response.RespondAppError(c, exercise.Wrap(exercise.CodeInvalidRequest, op, err))
		return
	}
	out := validateResponse{Valid: true, Forms: h.grammar.Forms(req.Base)}
	status := http.StatusOK
	if err := h.grammar.Validate(tense, req.Base, req.Answer); err != nil {
		code := exercise.CodeOf(err)
		if code == "" {
			response.RespondAppError(c, err)
			return
		}
		out = validateResponse{Code: string(code), Error: err.Error(), Forms: out.Forms}
		status = response.StatusFor(code)
	}
	c.JSON(status, out)
}

func bindError(op string, err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return err
	}
	return exercise.NewError(exercise.CodeInvalidRequest, op, "malformed request body", err)
}
