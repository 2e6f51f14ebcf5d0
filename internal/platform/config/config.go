// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every tunable the pipeline and its collaborators need.
// All fields are sourced from the environment (optionally via a local
// .env file); there is no other runtime input.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"local"`

	// LLM providers. No key is required or validated here; with no LLM
	// key set, llm.New falls back to the mock provider.
	OpenAIAPIKey     string        `env:"OPENAI_API_KEY"`
	OpenAIModel      string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	AnthropicAPIKey  string        `env:"ANTHROPIC_API_KEY"`
	AnthropicModel   string        `env:"ANTHROPIC_MODEL" envDefault:"claude-haiku-4.5"`
	GoogleAPIKey     string        `env:"GOOGLE_API_KEY"`
	GoogleModel      string        `env:"GOOGLE_MODEL" envDefault:"gemini-2.0-flash-lite"`
	LLMRateLimitRPS  int           `env:"LLM_RATE_LIMIT_RPS" envDefault:"1"`
	LLMCircuitThresh int           `env:"LLM_CIRCUIT_THRESHOLD" envDefault:"5"`
	LLMCircuitReset  time.Duration `env:"LLM_CIRCUIT_RESET" envDefault:"5m"`

	// Catalog providers.
	ListenNotesAPIKey  string        `env:"LISTENNOTES_API_KEY"`
	ListenNotesBaseURL string        `env:"LISTENNOTES_BASE_URL" envDefault:"https://listen-api.listennotes.com/api/v2"`
	ListenNotesTimeout time.Duration `env:"LISTENNOTES_TIMEOUT" envDefault:"10s"`

	PodscanAPIKey  string        `env:"PODSCAN_API_KEY"`
	PodscanBaseURL string        `env:"PODSCAN_BASE_URL" envDefault:"https://podscan.fm/api/v1"`
	PodscanTimeout time.Duration `env:"PODSCAN_TIMEOUT" envDefault:"10s"`

	CatalogMaxRetries  int           `env:"CATALOG_MAX_RETRIES" envDefault:"3"`
	CatalogBaseBackoff time.Duration `env:"CATALOG_BASE_BACKOFF" envDefault:"1s"`

	// Cross-provider enrichment courtesy delay.
	CrossProviderLookupDelay time.Duration `env:"CROSS_PROVIDER_LOOKUP_DELAY" envDefault:"500ms"`
	GroundedSearchDelay      time.Duration `env:"GROUNDED_SEARCH_DELAY" envDefault:"200ms"`

	// Social scraping providers.
	ApifyAPIKey          string        `env:"APIFY_API_KEY"`
	SocialScraperTimeout time.Duration `env:"SOCIAL_SCRAPER_TIMEOUT" envDefault:"60s"`
	TwitterMinBatchSize  int           `env:"TWITTER_MIN_BATCH_SIZE" envDefault:"5"`
	TikTokInterCallDelay time.Duration `env:"TIKTOK_INTER_CALL_DELAY" envDefault:"1s"`

	// RSS parsing side channel.
	RSSParsingEnabled bool          `env:"RSS_PARSING_ENABLED" envDefault:"false"`
	RSSFetchTimeout   time.Duration `env:"RSS_FETCH_TIMEOUT" envDefault:"10s"`

	// Vetting weights and thresholds (defaults match the spec exactly;
	// override only for experimentation).
	VettingRecencyMaxDays         int     `env:"VETTING_RECENCY_MAX_DAYS" envDefault:"120"`
	VettingFreqIdealMaxDays       float64 `env:"VETTING_FREQ_IDEAL_MAX_DAYS" envDefault:"30"`
	VettingFreqAcceptableMaxDays  float64 `env:"VETTING_FREQ_ACCEPTABLE_MAX_DAYS" envDefault:"60"`
	VettingMinEpisodesForFreq     int     `env:"VETTING_MIN_EPISODES_FOR_FREQ" envDefault:"5"`
	VettingProgrammaticWeight     float64 `env:"VETTING_PROGRAMMATIC_WEIGHT" envDefault:"0.4"`
	VettingLLMWeight              float64 `env:"VETTING_LLM_WEIGHT" envDefault:"0.6"`
	VettingProgrammaticFailCredit float64 `env:"VETTING_PROGRAMMATIC_FAIL_CREDIT" envDefault:"0.3"`
	VettingTierAThreshold         int     `env:"VETTING_TIER_A_THRESHOLD" envDefault:"85"`
	VettingTierBThreshold         int     `env:"VETTING_TIER_B_THRESHOLD" envDefault:"70"`
	VettingTierCThreshold         int     `env:"VETTING_TIER_C_THRESHOLD" envDefault:"50"`

	// Output artifacts.
	DataDir string `env:"DATA_DIR" envDefault:"data"`

	// Observability.
	HealthPort int `env:"HEALTH_PORT" envDefault:"8080"`
}

// Load reads configuration from the environment, loading a local .env
// file first when present, then applies a handful of legacy aliases
// left over from prior deployments.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	setStringFromEnv("OPENAI_KEY", &cfg.OpenAIAPIKey)
	setStringFromEnv("LISTEN_NOTES_API_KEY", &cfg.ListenNotesAPIKey)
	setDurationFromEnv("LISTENNOTES_HTTP_TIMEOUT", &cfg.ListenNotesTimeout)
	setDurationFromEnv("PODSCAN_HTTP_TIMEOUT", &cfg.PodscanTimeout)
	setIntFromEnv("CATALOG_RETRY_COUNT", &cfg.CatalogMaxRetries)
	setBoolFromEnv("ENABLE_RSS_PARSING", &cfg.RSSParsingEnabled)
	setFloat64FromEnv("VETTING_PROGRAMMATIC_SCORE_WEIGHT", &cfg.VettingProgrammaticWeight)
	setFloat64FromEnv("VETTING_LLM_SCORE_WEIGHT", &cfg.VettingLLMWeight)

	return cfg, nil
}

func hasEnv(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

func setStringFromEnv(key string, target *string) {
	if !hasEnv(key) {
		return
	}

	*target = os.Getenv(key)
}

func setBoolFromEnv(key string, target *bool) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}

	parsed, err := strconv.ParseBool(strings.TrimSpace(val))
	if err != nil {
		return
	}

	*target = parsed
}

func setIntFromEnv(key string, target *int) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}

	parsed, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return
	}

	*target = parsed
}

func setFloat64FromEnv(key string, target *float64) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}

	parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return
	}

	*target = parsed
}

func setDurationFromEnv(key string, target *time.Duration) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}

	parsed, err := time.ParseDuration(strings.TrimSpace(val))
	if err != nil {
		return
	}

	*target = parsed
}
