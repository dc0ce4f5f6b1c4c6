package app

import (
	"fmt"

	"github.com/yungbote/storygap-backend/internal/config"
	"github.com/yungbote/storygap-backend/internal/narrative"
	"github.com/yungbote/storygap-backend/internal/narrative/gemini"
	"github.com/yungbote/storygap-backend/internal/narrative/mock"
	"github.com/yungbote/storygap-backend/internal/narrative/oaihttp"
	"github.com/yungbote/storygap-backend/internal/platform/logger"
)

func newEngine(m config.ModelConfig) (narrative.Source, error) {
	switch m.Engine.Type {
	case config.EngineOAIHTTP:
		return oaihttp.New(m)
	case config.EngineGemini:
		return gemini.New(m)
	case config.EngineMock:
		return mock.New(m.ID), nil
	default:
		return nil, fmt.Errorf("model %q: unsupported engine type %q", m.ID, m.Engine.Type)
	}
}

// wireSource builds the primary engine and, when configured, wraps it with the
// fallback tier.
func wireSource(log *logger.Logger, cfg *config.Config) (narrative.Source, error) {
	pm, ok := cfg.Model(config.TierPrimary)
	if !ok {
		return nil, fmt.Errorf("no primary model configured")
	}
	primary, err := newEngine(pm)
	if err != nil {
		return nil, err
	}
	fm, ok := cfg.Model(config.TierFallback)
	if !ok {
		log.Info("Narrative source ready", "primary", pm.ID, "engine", pm.Engine.Type)
		return primary, nil
	}
	fallback, err := newEngine(fm)
	if err != nil {
		return nil, err
	}
	log.Info("Narrative source ready",
		"primary", pm.ID,
		"primary_engine", pm.Engine.Type,
		"fallback", fm.ID,
		"fallback_engine", fm.Engine.Type,
	)
	return narrative.NewTiered(log, primary, fallback), nil
}
