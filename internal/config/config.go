package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DefaultEnvPaths are tried in order; the first readable file wins
var DefaultEnvPaths = []string{".env", "../.env", "../../.env"}

type Config struct {
	Riot     Riot
	Output   Output
	Discord  Discord
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

type Riot struct {
	APIKey             string        `envconfig:"RIOT_API_KEY" required:"true"`
	Timeout            time.Duration `envconfig:"RIOT_TIMEOUT" default:"30s"`
	RequestsPerSecond  int           `envconfig:"RIOT_REQUESTS_PER_SECOND" default:"15"`
	RequestsPer2Min    int           `envconfig:"RIOT_REQUESTS_PER_2MIN" default:"90"`
	CacheTTL           time.Duration `envconfig:"RIOT_CACHE_TTL" default:"5m"`
	MatchCount         int           `envconfig:"RIOT_MATCH_COUNT" default:"20"`
	ResolveConcurrency int           `envconfig:"RESOLVE_CONCURRENCY" default:"1"`
}

type Output struct {
	JSONPath string `envconfig:"OUTPUT_JSON" default:"output.json"`
	XLSXPath string `envconfig:"OUTPUT_XLSX" default:"output.xlsx"`
}

type Discord struct {
	WebhookURL string `envconfig:"DISCORD_WEBHOOK_URL"`
}

// LoadDotEnv loads the first .env file found among paths and reports which one
func LoadDotEnv(paths ...string) (string, bool) {
	if len(paths) == 0 {
		paths = DefaultEnvPaths
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err == nil {
			return path, true
		}
	}
	return "", false
}

func New() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	switch {
	case c.Riot.RequestsPerSecond < 1 || c.Riot.RequestsPer2Min < 1:
		return fmt.Errorf("rate limits must be positive, got %d/s and %d/2min", c.Riot.RequestsPerSecond, c.Riot.RequestsPer2Min)
	case c.Riot.MatchCount < 1:
		return fmt.Errorf("RIOT_MATCH_COUNT must be at least 1, got %d", c.Riot.MatchCount)
	case c.Riot.ResolveConcurrency < 1:
		return fmt.Errorf("RESOLVE_CONCURRENCY must be at least 1, got %d", c.Riot.ResolveConcurrency)
	case c.Riot.CacheTTL < 0:
		return fmt.Errorf("RIOT_CACHE_TTL must not be negative, got %s", c.Riot.CacheTTL)
	}
	return nil
}
