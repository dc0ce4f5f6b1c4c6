package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/storygap-backend/internal/domain/exercise"
	"github.com/yungbote/storygap-backend/internal/http/response"
	"github.com/yungbote/storygap-backend/internal/services"
)

type ExerciseHandler struct {
	exercises services.ExerciseService
	answers   services.AnswerService
}

func NewExerciseHandler(exercises services.ExerciseService, answers services.AnswerService) *ExerciseHandler {
	return &ExerciseHandler{exercises: exercises, answers: answers}
}

type categoryView struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Tenses  []string `json:"tenses"`
	MinGaps int      `json:"min_gaps"`
	MaxGaps int      `json:"max_gaps"`
}

// GET /api/categories
func (h *ExerciseHandler) ListCategories(c *gin.Context) {
	cats := h.exercises.Categories()
	out := make([]categoryView, 0, len(cats))
	for _, cat := range cats {
		out = append(out, categoryView{
			ID:      cat.ID,
			Title:   cat.Title,
			Tenses:  cat.Tenses,
			MinGaps: cat.MinGaps,
			MaxGaps: cat.MaxGaps,
		})
	}
	response.RespondOK(c, gin.H{"categories": out})
}

// GET /api/exercises/:category
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	p, cached, err := h.exercises.Next(c.Request.Context(), c.Param("category"))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"exercise": p, "cached": cached})
}

// POST /api/exercises/:category/build
func (h *ExerciseHandler) BuildExercise(c *gin.Context) {
	p, err := h.exercises.BuildExercise(c.Request.Context(), c.Param("category"))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"exercise": p})
}

type checkRequest struct {
	Answers map[string]string `json:"answers"`
}

// POST /api/exercises/:id/check
//
// gin needs one wildcard name per path segment, so the id arrives as the
// "category" param.
func (h *ExerciseHandler) CheckAnswers(c *gin.Context) {
	id, err := uuid.Parse(c.Param("category"))
	if err != nil {
		response.RespondAppError(c, exercise.NewError(exercise.CodeInvalidRequest, "handlers.CheckAnswers", "invalid exercise id", err))
		return
	}
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAppError(c, bindError("handlers.CheckAnswers", err))
		return
	}
	res, err := h.answers.Check(c.Request.Context(), id, req.Answers)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, res)
}
