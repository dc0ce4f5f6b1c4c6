package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/yungbote/storygap-backend/internal/config"
	"github.com/yungbote/storygap-backend/internal/narrative"
)

// Engine writes narratives with a Gemini model.
type Engine struct {
	id          string
	model       string
	apiKey      string
	timeout     time.Duration
	temperature float32
}

func New(m config.ModelConfig) (*Engine, error) {
	key := strings.TrimSpace(m.Engine.APIKey)
	if key == "" {
		return nil, errors.New("gemini: api key required (GEMINI_API_KEY)")
	}
	model := strings.TrimSpace(m.UpstreamModel)
	if model == "" {
		model = strings.TrimSpace(m.ID)
	}
	timeout := m.Engine.Timeout.Duration
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Engine{
		id:          m.ID,
		model:       model,
		apiKey:      key,
		timeout:     timeout,
		temperature: float32(m.Engine.Temperature),
	}, nil
}

func (e *Engine) Name() string { return e.id }

func (e *Engine) Generate(ctx context.Context, req narrative.Request) (narrative.Narrative, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.apiKey))
	if err != nil {
		return narrative.Narrative{}, err
	}
	defer cl.Close()

	system, user := narrative.Prompt(req)
	m := cl.GenerativeModel(e.model)
	if m == nil {
		return narrative.Narrative{}, fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature: ptrFloat32(e.temperature),
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	resp, err := m.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return narrative.Narrative{}, classify(err)
	}
	text := strings.TrimSpace(firstText(resp))
	if text == "" {
		return narrative.Narrative{}, errors.New("gemini: empty response")
	}
	return narrative.Narrative{Text: text, Model: e.model}, nil
}

// Error wraps a provider failure with its fallback classification.
type Error struct {
	Code      string
	transient bool
	err       error
}

func (e *Error) Error() string   { return fmt.Sprintf("gemini: %s: %v", e.Code, e.err) }
func (e *Error) Unwrap() error   { return e.err }
func (e *Error) Transient() bool { return e.transient }

func classify(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		transient := narrative.TransientStatus(gerr.Code) ||
			gerr.Code == http.StatusNotFound ||
			narrative.ModelUnavailable(gerr.Message+" "+gerr.Body)
		return &Error{Code: http.StatusText(gerr.Code), transient: transient, err: err}
	}
	if s, ok := status.FromError(err); ok && s.Code() != codes.Unknown {
		switch s.Code() {
		case codes.Unavailable, codes.ResourceExhausted, codes.Internal, codes.NotFound:
			return &Error{Code: s.Code().String(), transient: true, err: err}
		default:
			return &Error{Code: s.Code().String(), transient: narrative.ModelUnavailable(s.Message()), err: err}
		}
	}
	return err
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		var b strings.Builder
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		if b.Len() > 0 {
			return b.String()
		}
	}
	return ""
}

func ptrFloat32(f float32) *float32 { return &f }
