package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/storygap-backend/internal/domain/exercise"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAppError derives status and code from the exercise code carried by err.
func RespondAppError(c *gin.Context, err error) {
	code := exercise.CodeOf(err)
	if code == "" {
		code = exercise.CodeInternal
	}
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		RespondError(c, http.StatusRequestEntityTooLarge, string(exercise.CodeInvalidRequest), err)
		return
	}
	status := StatusFor(code)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	RespondError(c, status, string(code), err)
}

// StatusFor maps an exercise code to its HTTP status.
func StatusFor(code exercise.ErrorCode) int {
	switch code {
	case exercise.CodeUnknownCategory, exercise.CodeNotFound:
		return http.StatusNotFound
	case exercise.CodeInvalidRequest,
		exercise.CodeStructureMismatch,
		exercise.CodeVerbMismatch,
		exercise.CodeIrregularMismatch:
		return http.StatusUnprocessableEntity
	case exercise.CodeEmptyTenseCandidates,
		exercise.CodeCoverageSelectionFailed,
		exercise.CodeTooFewCandidates,
		exercise.CodePastMixDistributionFailed,
		exercise.CodePlaceholderInvariantViolated,
		exercise.CodeGenerationFailed:
		return http.StatusBadGateway
	case exercise.CodeConflict:
		return http.StatusConflict
	case exercise.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
