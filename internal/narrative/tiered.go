package narrative

import (
	"context"
	"errors"

	"github.com/yungbote/storygap-backend/internal/platform/logger"
)

// Tiered tries Primary and falls back to Fallback once, only when the primary
// failure is transient. Any other failure is returned as is.
type Tiered struct {
	Primary  Source
	Fallback Source
	log      *logger.Logger
}

func NewTiered(log *logger.Logger, primary, fallback Source) *Tiered {
	if log == nil {
		log = logger.NewNop()
	}
	return &Tiered{Primary: primary, Fallback: fallback, log: log.With("service", "TieredSource")}
}

func (t *Tiered) Name() string {
	if t.Fallback == nil {
		return t.Primary.Name()
	}
	return t.Primary.Name() + "+" + t.Fallback.Name()
}

func (t *Tiered) Generate(ctx context.Context, req Request) (Narrative, error) {
	if t.Primary == nil {
		return Narrative{}, errors.New("tiered source: no primary")
	}
	n, err := t.Primary.Generate(ctx, req)
	if err == nil {
		return n, nil
	}
	if t.Fallback == nil || !IsTransient(err) || ctx.Err() != nil {
		return Narrative{}, err
	}
	t.log.Warn("primary narrative source failed; falling back",
		"primary", t.Primary.Name(),
		"fallback", t.Fallback.Name(),
		"category", req.Category,
		"error", err,
	)
	n, ferr := t.Fallback.Generate(ctx, req)
	if ferr != nil {
		return Narrative{}, errors.Join(err, ferr)
	}
	return n, nil
}
