package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/storygap-backend/internal/grammar"
	"github.com/yungbote/storygap-backend/internal/platform/envutil"
)

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		d.Duration = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		u, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		if strings.TrimSpace(u) == "" {
			d.Duration = 0
			return nil
		}
		dd, err := time.ParseDuration(u)
		if err != nil {
			return err
		}
		d.Duration = dd
		return nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("duration must be a JSON string like \"5s\" or an int nanoseconds: %w", err)
	}
	d.Duration = time.Duration(n)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration.String())
}

// DefaultCategories is used when the config file lists none.
func DefaultCategories() []CategoryConfig {
	return []CategoryConfig{
		{
			ID:      "past-mix",
			Title:   "Past tenses mixed",
			Topic:   "a rainy evening when something unexpected happened",
			Tenses:  []string{"past_continuous", "past_simple", "past_perfect"},
			MinGaps: 8,
			MaxGaps: 10,
		},
		{
			ID:      "present-basics",
			Title:   "Present simple and continuous",
			Topic:   "a normal day at a busy school",
			Tenses:  []string{"present_simple", "present_continuous"},
			MinGaps: 4,
			MaxGaps: 8,
		},
		{
			ID:      "perfect-aspects",
			Title:   "Perfect tenses",
			Topic:   "a family getting ready for a long trip",
			Tenses:  []string{"present_perfect", "past_perfect", "present_perfect_continuous"},
			MinGaps: 4,
			MaxGaps: 8,
		},
		{
			ID:      "future-plans",
			Title:   "Talking about the future",
			Topic:   "friends planning a summer festival",
			Tenses:  []string{"future_simple", "future_continuous", "future_perfect"},
			MinGaps: 4,
			MaxGaps: 8,
		},
	}
}

func defaultConfig() *Config {
	return &Config{
		Env: "development",
		HTTP: HTTPConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: Duration{Duration: 5 * time.Second},
			IdleTimeout:       Duration{Duration: 2 * time.Minute},
			ShutdownTimeout:   Duration{Duration: 15 * time.Second},
			MaxRequestBytes:   1 << 20,
		},
		Models: []ModelConfig{
			{ID: "mock-story", Tier: TierPrimary, Engine: EngineConfig{Type: EngineMock}},
		},
		Categories: DefaultCategories(),
		Pipeline: PipelineConfig{
			MaxAttempts:    3,
			MinWords:       60,
			MaxWords:       450,
			AttemptTimeout: Duration{Duration: 90 * time.Second},
		},
		Cache: CacheConfig{Capacity: 5, Floor: 3},
	}
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	cfgPath := strings.TrimSpace(os.Getenv("STORYGAP_CONFIG_PATH"))
	if cfgPath == "" {
		if wd, err := os.Getwd(); err == nil {
			p := filepath.Join(wd, "config", "config.json")
			if _, err := os.Stat(p); err == nil {
				cfgPath = p
			}
		}
	}

	if cfgPath != "" {
		b, err := os.ReadFile(cfgPath)
		if err != nil {
			return nil, err
		}
		var loaded Config
		if err := json.Unmarshal(b, &loaded); err != nil {
			return nil, fmt.Errorf("parse %s: %w", cfgPath, err)
		}
		*cfg = loaded
	}

	applyEnv(cfg)
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("LOG_MODE")); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(os.Getenv("STORYGAP_HTTP_ADDR")); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("STORYGAP_CORS_ORIGINS")); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}
	cfg.Pipeline.MaxAttempts = envutil.Int("STORYGAP_MAX_ATTEMPTS", cfg.Pipeline.MaxAttempts)
	cfg.Cache.Capacity = envutil.Int("STORYGAP_CACHE_CAPACITY", cfg.Cache.Capacity)
	cfg.Cache.Floor = envutil.Int("STORYGAP_CACHE_FLOOR", cfg.Cache.Floor)
	cfg.Cache.WarmOnStart = envutil.Bool("STORYGAP_CACHE_WARM", cfg.Cache.WarmOnStart)

	for i := range cfg.Models {
		e := &cfg.Models[i].Engine
		if strings.TrimSpace(e.APIKey) != "" {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(e.Type)) {
		case EngineOAIHTTP, "openai_http":
			e.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
		case EngineGemini:
			e.APIKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
		}
	}
}

func (cfg *Config) normalize() error {
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.HTTP.MaxRequestBytes <= 0 {
		cfg.HTTP.MaxRequestBytes = 1 << 20
	}
	if cfg.HTTP.ShutdownTimeout.Duration <= 0 {
		cfg.HTTP.ShutdownTimeout = Duration{Duration: 15 * time.Second}
	}
	if cfg.HTTP.ReadHeaderTimeout.Duration <= 0 {
		cfg.HTTP.ReadHeaderTimeout = Duration{Duration: 5 * time.Second}
	}

	if err := cfg.normalizeModels(); err != nil {
		return err
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = DefaultCategories()
	}
	if err := cfg.normalizeCategories(); err != nil {
		return err
	}

	p := &cfg.Pipeline
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 3
	}
	if p.MinWords <= 0 {
		p.MinWords = 60
	}
	if p.MaxWords <= 0 {
		p.MaxWords = 450
	}
	if p.MinWords > p.MaxWords {
		return fmt.Errorf("pipeline.min_words=%d exceeds pipeline.max_words=%d", p.MinWords, p.MaxWords)
	}
	if p.AttemptTimeout.Duration <= 0 {
		p.AttemptTimeout = Duration{Duration: 90 * time.Second}
	}

	c := &cfg.Cache
	if c.Capacity <= 0 {
		c.Capacity = 5
	}
	if c.Floor <= 0 {
		c.Floor = 3
	}
	if c.Floor > c.Capacity {
		c.Floor = c.Capacity
	}
	return nil
}

func (cfg *Config) normalizeModels() error {
	if len(cfg.Models) == 0 {
		return errors.New("config must define at least one model")
	}
	primaries := 0
	for i := range cfg.Models {
		m := &cfg.Models[i]
		m.ID = strings.TrimSpace(m.ID)
		if m.ID == "" {
			return errors.New("model id is required")
		}
		if strings.TrimSpace(m.Engine.Type) == "" {
			return fmt.Errorf("model %q missing engine.type", m.ID)
		}
		if strings.TrimSpace(m.UpstreamModel) == "" {
			m.UpstreamModel = m.ID
		}

		m.Tier = strings.ToLower(strings.TrimSpace(m.Tier))
		switch m.Tier {
		case "":
			m.Tier = TierPrimary
			primaries++
		case TierPrimary:
			primaries++
		case TierFallback:
		default:
			return fmt.Errorf("model %q invalid tier=%q", m.ID, m.Tier)
		}

		m.Engine.Type = strings.ToLower(strings.TrimSpace(m.Engine.Type))
		m.Engine.BaseURL = strings.TrimRight(strings.TrimSpace(m.Engine.BaseURL), "/")
		m.Engine.ChatCompletionsPath = strings.TrimSpace(m.Engine.ChatCompletionsPath)
		if m.Engine.Temperature < 0 || m.Engine.Temperature > 2 {
			return fmt.Errorf("model %q invalid engine.temperature=%v", m.ID, m.Engine.Temperature)
		}

		switch m.Engine.Type {
		case "openai_http", EngineOAIHTTP:
			// Normalize type (avoid implying OpenAI-as-provider).
			m.Engine.Type = EngineOAIHTTP
			if m.Engine.BaseURL == "" {
				return fmt.Errorf("model %q (oai_http) missing engine.base_url", m.ID)
			}
			if m.Engine.ChatCompletionsPath == "" {
				m.Engine.ChatCompletionsPath = "/v1/chat/completions"
			}
			if m.Engine.Timeout.Duration <= 0 {
				m.Engine.Timeout = Duration{Duration: 60 * time.Second}
			}
		case EngineGemini:
			if m.Engine.Timeout.Duration <= 0 {
				m.Engine.Timeout = Duration{Duration: 60 * time.Second}
			}
		case EngineMock:
		default:
			return fmt.Errorf("model %q unknown engine.type=%q", m.ID, m.Engine.Type)
		}
	}
	if primaries != 1 {
		return fmt.Errorf("config must define exactly one primary model, got %d", primaries)
	}
	return nil
}

func (cfg *Config) normalizeCategories() error {
	seen := make(map[string]bool, len(cfg.Categories))
	for i := range cfg.Categories {
		c := &cfg.Categories[i]
		c.ID = strings.TrimSpace(c.ID)
		if c.ID == "" {
			return errors.New("category id is required")
		}
		if seen[c.ID] {
			return fmt.Errorf("duplicate category %q", c.ID)
		}
		seen[c.ID] = true

		tenses, err := grammar.ParseTenses(c.Tenses)
		if err != nil {
			return fmt.Errorf("category %q: %w", c.ID, err)
		}
		if len(tenses) == 0 {
			return fmt.Errorf("category %q lists no tenses", c.ID)
		}
		c.Tenses = c.Tenses[:0]
		for _, t := range tenses {
			c.Tenses = append(c.Tenses, string(t))
		}
		if strings.TrimSpace(c.Title) == "" {
			c.Title = c.ID
		}
		if strings.TrimSpace(c.Topic) == "" {
			c.Topic = c.Title
		}
		if c.MaxGaps <= 0 {
			c.MaxGaps = 10
		}
		if c.MinGaps <= 0 {
			c.MinGaps = len(tenses)
		}
		if c.MinGaps > c.MaxGaps {
			return fmt.Errorf("category %q min_gaps=%d exceeds max_gaps=%d", c.ID, c.MinGaps, c.MaxGaps)
		}
		if c.MaxGaps < len(tenses) {
			return fmt.Errorf("category %q max_gaps=%d cannot cover %d tenses", c.ID, c.MaxGaps, len(tenses))
		}
	}
	return nil
}

// TenseList parses the category's tense ids. Load has already validated them.
func (c CategoryConfig) TenseList() []grammar.Tense {
	out, _ := grammar.ParseTenses(c.Tenses)
	return out
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
