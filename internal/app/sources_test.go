package app

import (
	"testing"

	"github.com/yungbote/storygap-backend/internal/config"
	"github.com/yungbote/storygap-backend/internal/narrative"
	"github.com/yungbote/storygap-backend/internal/platform/logger"
)

func TestWireSource(t *testing.T) {
	primary := config.ModelConfig{ID: "story-a", Tier: config.TierPrimary, Engine: config.EngineConfig{Type: config.EngineMock}}
	fallback := config.ModelConfig{ID: "story-b", Tier: config.TierFallback, Engine: config.EngineConfig{Type: config.EngineMock}}

	src, err := wireSource(logger.NewNop(), &config.Config{Models: []config.ModelConfig{primary}})
	if err != nil {
		t.Fatalf("wireSource: %v", err)
	}
	if src.Name() != "story-a" {
		t.Fatalf("expected bare primary source, got %q", src.Name())
	}

	src, err = wireSource(logger.NewNop(), &config.Config{Models: []config.ModelConfig{primary, fallback}})
	if err != nil {
		t.Fatalf("wireSource: %v", err)
	}
	if _, ok := src.(*narrative.Tiered); !ok || src.Name() != "story-a+story-b" {
		t.Fatalf("expected tiered source, got %T %q", src, src.Name())
	}
}

func TestWireSourceErrors(t *testing.T) {
	if _, err := wireSource(logger.NewNop(), &config.Config{}); err == nil {
		t.Fatalf("expected error without a primary model")
	}
	bad := config.ModelConfig{ID: "x", Tier: config.TierPrimary, Engine: config.EngineConfig{Type: "carrier-pigeon"}}
	if _, err := wireSource(logger.NewNop(), &config.Config{Models: []config.ModelConfig{bad}}); err == nil {
		t.Fatalf("expected error for unsupported engine")
	}
	nokey := config.ModelConfig{ID: "g", Tier: config.TierPrimary, Engine: config.EngineConfig{Type: config.EngineGemini}}
	if _, err := wireSource(logger.NewNop(), &config.Config{Models: []config.ModelConfig{nokey}}); err == nil {
		t.Fatalf("expected error for gemini without api key")
	}
}
