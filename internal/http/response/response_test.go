package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/storygap-backend/internal/domain/exercise"
)

func TestStatusFor(t *testing.T) {
	cases := map[exercise.ErrorCode]int{
		exercise.CodeUnknownCategory:           http.StatusNotFound,
		exercise.CodeNotFound:                  http.StatusNotFound,
		exercise.CodeInvalidRequest:            http.StatusUnprocessableEntity,
		exercise.CodeIrregularMismatch:         http.StatusUnprocessableEntity,
		exercise.CodeStructureMismatch:         http.StatusUnprocessableEntity,
		exercise.CodeCoverageSelectionFailed:   http.StatusBadGateway,
		exercise.CodePastMixDistributionFailed: http.StatusBadGateway,
		exercise.CodeGenerationFailed:          http.StatusBadGateway,
		exercise.CodeConflict:                  http.StatusConflict,
		exercise.CodeUnavailable:               http.StatusServiceUnavailable,
		exercise.CodeInternal:                  http.StatusInternalServerError,
		"something_else":                       http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := StatusFor(code); got != want {
			t.Fatalf("StatusFor(%s) = %d, want %d", code, got, want)
		}
	}
}

func TestRespondAppError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			name:   "wrapped exercise error",
			err:    fmt.Errorf("build: %w", exercise.Errorf(exercise.CodeTooFewCandidates, "gaps.Select", "selected 2")),
			status: http.StatusBadGateway,
			code:   "too_few_candidates",
		},
		{name: "plain error", err: errors.New("boom"), status: http.StatusInternalServerError, code: "internal"},
		{name: "body too large", err: &http.MaxBytesError{Limit: 10}, status: http.StatusRequestEntityTooLarge, code: "invalid_request"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			RespondAppError(c, tc.err)

			if rec.Code != tc.status {
				t.Fatalf("status: got=%d want=%d", rec.Code, tc.status)
			}
			var env ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode envelope: %v", err)
			}
			if env.Error.Code != tc.code || env.Error.Message == "" {
				t.Fatalf("unexpected envelope %+v", env)
			}
		})
	}
}
