package config

import "time"

type Duration struct {
	Duration time.Duration
}

type HTTPConfig struct {
	Addr              string   `json:"addr"`
	ReadHeaderTimeout Duration `json:"read_header_timeout"`
	IdleTimeout       Duration `json:"idle_timeout"`
	ShutdownTimeout   Duration `json:"shutdown_timeout"`
	MaxRequestBytes   int64    `json:"max_request_bytes"`

	// CORSOrigins lists allowed browser origins; "*" allows any. Empty allows
	// the local dev origins only.
	CORSOrigins []string `json:"cors_origins,omitempty"`
}

type EngineConfig struct {
	// Type is one of "oai_http", "gemini" or "mock".
	Type string `json:"type"`

	// BaseURL is the upstream base URL (for "oai_http" engines).
	BaseURL string `json:"base_url,omitempty"`

	// APIKey is sent as `Authorization: Bearer <api_key>` for oai_http and as the
	// client key for gemini. Empty values fall back to env (see Load).
	APIKey string `json:"api_key,omitempty"`

	ChatCompletionsPath string `json:"chat_completions_path,omitempty"`

	Timeout     Duration `json:"timeout,omitempty"`
	Temperature float64  `json:"temperature,omitempty"`
}

type ModelConfig struct {
	ID string `json:"id"`

	// UpstreamModel overrides the model name sent to the engine. Defaults to ID.
	UpstreamModel string `json:"upstream_model,omitempty"`

	// Tier is "primary" or "fallback". Exactly one primary is required.
	Tier string `json:"tier"`

	Engine EngineConfig `json:"engine"`
}

// CategoryConfig describes one exercise category: what the narrative is about,
// which tenses it must exercise and how many gaps to cut.
type CategoryConfig struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Topic   string   `json:"topic"`
	Tenses  []string `json:"tenses"`
	MinGaps int      `json:"min_gaps"`
	MaxGaps int      `json:"max_gaps"`
}

type PipelineConfig struct {
	MaxAttempts    int      `json:"max_attempts"`
	MinWords       int      `json:"min_words"`
	MaxWords       int      `json:"max_words"`
	AttemptTimeout Duration `json:"attempt_timeout"`
}

type CacheConfig struct {
	Capacity    int  `json:"capacity"`
	Floor       int  `json:"floor"`
	WarmOnStart bool `json:"warm_on_start"`
}

type Config struct {
	Env        string           `json:"env"`
	HTTP       HTTPConfig       `json:"http"`
	Models     []ModelConfig    `json:"models"`
	Categories []CategoryConfig `json:"categories"`
	Pipeline   PipelineConfig   `json:"pipeline"`
	Cache      CacheConfig      `json:"cache"`
}

const (
	TierPrimary  = "primary"
	TierFallback = "fallback"

	EngineOAIHTTP = "oai_http"
	EngineGemini  = "gemini"
	EngineMock    = "mock"
)

// Model returns the first model configured for tier.
func (c *Config) Model(tier string) (ModelConfig, bool) {
	for _, m := range c.Models {
		if m.Tier == tier {
			return m, true
		}
	}
	return ModelConfig{}, false
}

func (c *Config) Category(id string) (CategoryConfig, bool) {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return CategoryConfig{}, false
}
