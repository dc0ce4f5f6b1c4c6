package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yungbote/storygap-backend/internal/config"
	"github.com/yungbote/storygap-backend/internal/gaps"
	"github.com/yungbote/storygap-backend/internal/grammar"
	"github.com/yungbote/storygap-backend/internal/narrative"
	"github.com/yungbote/storygap-backend/internal/narrative/mock"
)

func testConfig() *config.Config {
	return &config.Config{
		Categories: config.DefaultCategories(),
		Pipeline:   config.PipelineConfig{MaxAttempts: 3, MinWords: 60, MaxWords: 450},
		Cache:      config.CacheConfig{Capacity: 5, Floor: 3},
	}
}

func testPipeline(t *testing.T) *gaps.Pipeline {
	t.Helper()
	irr, err := grammar.BundledIrregularTable()
	if err != nil {
		t.Fatalf("BundledIrregularTable: %v", err)
	}
	ov, err := grammar.BundledOverrides()
	if err != nil {
		t.Fatalf("BundledOverrides: %v", err)
	}
	return gaps.NewPipeline(grammar.NewValidator(irr, ov))
}

// scriptedSource answers with fn and counts calls.
type scriptedSource struct {
	calls atomic.Int32
	fn    func(ctx context.Context, call int, req narrative.Request) (narrative.Narrative, error)
}

func (s *scriptedSource) Name() string { return "scripted" }

func (s *scriptedSource) Generate(ctx context.Context, req narrative.Request) (narrative.Narrative, error) {
	n := int(s.calls.Add(1))
	return s.fn(ctx, n, req)
}

// gatedSource delegates to the mock engine once its gate is opened.
type gatedSource struct {
	inner *mock.Engine
	gate  chan struct{}
	once  sync.Once
	calls atomic.Int32
}

func newGatedSource() *gatedSource {
	return &gatedSource{inner: mock.New("gated"), gate: make(chan struct{})}
}

func (g *gatedSource) Name() string { return "gated" }
func (g *gatedSource) open()        { g.once.Do(func() { close(g.gate) }) }

func (g *gatedSource) Generate(ctx context.Context, req narrative.Request) (narrative.Narrative, error) {
	g.calls.Add(1)
	select {
	case <-g.gate:
		return g.inner.Generate(ctx, req)
	case <-ctx.Done():
		return narrative.Narrative{}, ctx.Err()
	}
}

var errPermanent = errors.New("prompt rejected")

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
