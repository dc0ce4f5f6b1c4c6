package oaihttp

import (
	"fmt"

	"github.com/yungbote/storygap-backend/internal/narrative"
)

type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "upstream http error"
	}
	if e.Body == "" {
		return fmt.Sprintf("upstream http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("upstream http error: status=%d body=%s", e.StatusCode, e.Body)
}

// Transient is true for 5xx, 429 and bodies that report the model as unavailable.
func (e *HTTPError) Transient() bool {
	if e == nil {
		return false
	}
	return narrative.TransientStatus(e.StatusCode) || narrative.ModelUnavailable(e.Body)
}
