package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/storygap-backend/internal/config"
	"github.com/yungbote/storygap-backend/internal/data/repos"
	"github.com/yungbote/storygap-backend/internal/domain/exercise"
	"github.com/yungbote/storygap-backend/internal/events"
	"github.com/yungbote/storygap-backend/internal/gaps"
	"github.com/yungbote/storygap-backend/internal/narrative"
	"github.com/yungbote/storygap-backend/internal/platform/dbctx"
	"github.com/yungbote/storygap-backend/internal/platform/logger"
)

type ExerciseService interface {
	Categories() []config.CategoryConfig
	// BuildExercise runs generate → extract → select → inject with retries and
	// returns a fresh payload. It never touches the cache.
	BuildExercise(ctx context.Context, category string) (*exercise.Payload, error)
	// PopFromCache returns a cached payload or nil, and starts a background
	// refill of category either way.
	PopFromCache(category string) *exercise.Payload
	PushToCache(category string, p *exercise.Payload)
	// Next serves from the cache and falls back to a synchronous build.
	Next(ctx context.Context, category string) (p *exercise.Payload, cached bool, err error)
	// Warm fills every category up to the cache floor concurrently.
	Warm(ctx context.Context) error
	// Close stops refills and waits for running ones to return.
	Close()
}

type ExerciseServiceDeps struct {
	Source   narrative.Source
	Pipeline *gaps.Pipeline
	// Store and Bus are optional.
	Store repos.StoredExerciseRepo
	Bus   events.Bus
}

type exerciseService struct {
	log        *logger.Logger
	categories []config.CategoryConfig
	pipeCfg    config.PipelineConfig
	floor      int

	source   narrative.Source
	pipeline *gaps.Pipeline
	store    repos.StoredExerciseRepo
	bus      events.Bus
	cache    *ResultCache
	tracer   trace.Tracer

	mu     sync.Mutex
	closed bool
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewExerciseService(baseLog *logger.Logger, cfg *config.Config, deps ExerciseServiceDeps) (ExerciseService, error) {
	if cfg == nil {
		return nil, errors.New("exercise service: config required")
	}
	if deps.Source == nil || deps.Pipeline == nil {
		return nil, errors.New("exercise service: source and pipeline required")
	}
	bus := deps.Bus
	if bus == nil {
		bus = events.NoopBus{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &exerciseService{
		log:        baseLog.With("service", "ExerciseService"),
		categories: append([]config.CategoryConfig(nil), cfg.Categories...),
		pipeCfg:    cfg.Pipeline,
		floor:      cfg.Cache.Floor,
		source:     deps.Source,
		pipeline:   deps.Pipeline,
		store:      deps.Store,
		bus:        bus,
		cache:      NewResultCache(cfg.Cache.Capacity),
		tracer:     otel.Tracer("github.com/yungbote/storygap-backend/internal/services"),
		ctx:        ctx,
		cancel:     cancel,
	}, nil
}

func (s *exerciseService) Categories() []config.CategoryConfig {
	return append([]config.CategoryConfig(nil), s.categories...)
}

func (s *exerciseService) category(id string) (config.CategoryConfig, bool) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return config.CategoryConfig{}, false
}

func (s *exerciseService) BuildExercise(ctx context.Context, category string) (*exercise.Payload, error) {
	const op = "services.BuildExercise"
	cat, ok := s.category(category)
	if !ok {
		return nil, exercise.Errorf(exercise.CodeUnknownCategory, op, "unknown category %q", category)
	}

	ctx, span := s.tracer.Start(ctx, "exercise.build", trace.WithAttributes(attribute.String("category", cat.ID)))
	defer span.End()

	attempts := s.pipeCfg.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr == nil {
				lastErr = exercise.NewError(exercise.CodeGenerationFailed, op, "cancelled before attempt", err)
			}
			break
		}
		p, err := s.attempt(ctx, cat, attempt)
		if err == nil {
			span.SetAttributes(attribute.Int("attempts", attempt), attribute.Int("gaps", len(p.Gaps)))
			s.persist(ctx, p)
			return p, nil
		}
		lastErr = err
		s.log.Warn("exercise attempt failed",
			"category", cat.ID,
			"attempt", attempt,
			"of", attempts,
			"code", string(exercise.CodeOf(err)),
			"error", err,
		)
	}
	span.RecordError(lastErr)
	span.SetStatus(otelcodes.Error, string(exercise.CodeOf(lastErr)))
	return nil, lastErr
}

func (s *exerciseService) attempt(ctx context.Context, cat config.CategoryConfig, n int) (*exercise.Payload, error) {
	const op = "services.attempt"
	if d := s.pipeCfg.AttemptTimeout.Duration; d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	ctx, span := s.tracer.Start(ctx, "exercise.attempt", trace.WithAttributes(
		attribute.String("category", cat.ID),
		attribute.Int("attempt", n),
	))
	defer span.End()

	tenses := cat.TenseList()
	story, err := s.source.Generate(ctx, narrative.Request{
		Category: cat.ID,
		Topic:    cat.Topic,
		Tenses:   tenses,
		MinWords: s.pipeCfg.MinWords,
		MaxWords: s.pipeCfg.MaxWords,
	})
	if err != nil {
		err = exercise.NewError(exercise.CodeGenerationFailed, op, "narrative source failed", err)
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("model", story.Model))

	if wc := narrative.WordCount(story.Text); wc < s.pipeCfg.MinWords || wc > s.pipeCfg.MaxWords {
		err := exercise.Errorf(exercise.CodeGenerationFailed, op,
			"narrative has %d words, want [%d, %d]", wc, s.pipeCfg.MinWords, s.pipeCfg.MaxWords)
		span.RecordError(err)
		return nil, err
	}

	res, err := s.pipeline.Run(story.Text, tenses, gaps.Bounds{MinGaps: cat.MinGaps, MaxGaps: cat.MaxGaps})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &exercise.Payload{
		ID:          uuid.New(),
		Category:    cat.ID,
		Text:        res.Text,
		Gaps:        res.Gaps,
		SourceModel: story.Model,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// persist stores p for later answer checks. Failures are logged only.
func (s *exerciseService) persist(ctx context.Context, p *exercise.Payload) {
	if s.store == nil {
		return
	}
	if err := s.store.Create(dbctx.Context{Ctx: context.WithoutCancel(ctx)}, p); err != nil {
		s.log.Warn("failed to persist exercise", "exercise_id", p.ID.String(), "category", p.Category, "error", err)
	}
}

func (s *exerciseService) PopFromCache(category string) *exercise.Payload {
	p := s.cache.Pop(category)
	if _, ok := s.category(category); ok {
		s.triggerRefill(category)
	}
	return p.Clone()
}

func (s *exerciseService) PushToCache(category string, p *exercise.Payload) {
	s.cache.Push(category, p.Clone())
}

func (s *exerciseService) Next(ctx context.Context, category string) (*exercise.Payload, bool, error) {
	if _, ok := s.category(category); !ok {
		return nil, false, exercise.Errorf(exercise.CodeUnknownCategory, "services.Next", "unknown category %q", category)
	}
	if p := s.PopFromCache(category); p != nil {
		return p, true, nil
	}
	p, err := s.BuildExercise(ctx, category)
	if err != nil {
		return nil, false, err
	}
	return p.Clone(), false, nil
}

// triggerRefill starts a detached refill unless one is already running or the
// service is closed. It never blocks on generation.
func (s *exerciseService) triggerRefill(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.cache.TryMarkRefill(category) {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.cache.ClearRefill(category)
		if err := s.fillToFloor(s.ctx, category); err != nil && s.ctx.Err() == nil {
			s.log.Warn("cache refill stopped", "category", category, "error", err)
		}
	}()
}

// fillToFloor builds until category holds at least floor payloads. The first
// failed build ends the refill.
func (s *exerciseService) fillToFloor(ctx context.Context, category string) error {
	for s.cache.Len(category) < s.floor {
		if err := ctx.Err(); err != nil {
			return err
		}
		p, err := s.BuildExercise(ctx, category)
		if err != nil {
			s.publish(events.Event{
				Type:      events.TypeRefillFailed,
				Category:  category,
				CacheSize: s.cache.Len(category),
				Error:     err.Error(),
			})
			return err
		}
		size := s.cache.Push(category, p)
		s.publish(events.Event{
			Type:       events.TypeExerciseReady,
			Category:   category,
			ExerciseID: p.ID,
			CacheSize:  size,
		})
	}
	return nil
}

func (s *exerciseService) publish(ev events.Event) {
	ev.At = time.Now().UTC()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.bus.Publish(ctx, ev); err != nil {
		s.log.Warn("failed to publish exercise event", "type", ev.Type, "category", ev.Category, "error", err)
	}
}

func (s *exerciseService) Warm(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errors.New("exercise service: closed")
	}
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	// Close cancels the warm-up along with any detached refill.
	ctx, stop := context.WithCancel(ctx)
	defer stop()
	defer context.AfterFunc(s.ctx, stop)()

	// Categories fill independently; one failing does not cancel the others.
	var g errgroup.Group
	for _, c := range s.categories {
		category := c.ID
		if !s.cache.TryMarkRefill(category) {
			continue
		}
		g.Go(func() error {
			defer s.cache.ClearRefill(category)
			if err := s.fillToFloor(ctx, category); err != nil {
				return fmt.Errorf("warm %s: %w", category, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *exerciseService) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
	s.wg.Wait()
}
