package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`
	YouTubeAPIKey string `envconfig:"YOUTUBE_API_KEY"`
	BraveAPIKey   string `envconfig:"BRAVE_API_KEY"`

	CompletionModel string `envconfig:"COMPLETION_MODEL" default:"gpt-4o"`

	ChunkSize int `envconfig:"CHUNK_SIZE" default:"2000"`
	BatchSize int `envconfig:"BATCH_SIZE" default:"20"`

	// Index readiness: poll until all ingested chunks are visible to queries,
	// bounded by IndexReadyTimeout. IndexReadyPoll is the poll interval.
	IndexReadyTimeout time.Duration `envconfig:"INDEX_READY_TIMEOUT" default:"10s"`
	IndexReadyPoll    time.Duration `envconfig:"INDEX_READY_POLL" default:"250ms"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("CARTOGRAPH", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}

func (c *Config) HasYouTube() bool {
	return c.YouTubeAPIKey != ""
}

func (c *Config) HasBrave() bool {
	return c.BraveAPIKey != ""
}
