package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTimezone         = "Asia/Bangkok"
	DefaultAutoplayInterval = 100 * time.Millisecond
	DefaultHalfTimeGap      = 55 * time.Minute
	DefaultLiveRefreshSpec  = "@every 1s"
)

var ErrMissingEnv = errors.New("required environment variable is not set")

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}
	cfg, err := FromLookup(os.LookupEnv)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	return cfg
}

// FromLookup builds a Config from lookup, which behaves like os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	var missing []string
	// A helper function to get a required env var. Missing ones are reported together.
	getEnv := func(key string) string {
		if value, ok := lookup(key); ok {
			return value
		}
		missing = append(missing, key)
		return ""
	}
	optional := func(key, fallback string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return fallback
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: optional("MIGRATIONS_DIR", "./migrations"),
		Port:          getEnv("PORT"),
		Storage: StorageConfig{
			Backend:  strings.ToLower(optional("STORAGE_BACKEND", "sql")),
			BoltPath: optional("BOLT_PATH", "fieldclock.bolt"),
		},
		Turso: TursoConfig{
			PrimaryURL: optional("TURSO_PRIMARY_URL", ""),
			AuthToken:  optional("TURSO_AUTH_TOKEN", ""),
		},
		Postgres: PostgresConfig{DSN: optional("POSTGRES_DSN", "")},
		Redis: RedisConfig{
			Addr:     optional("REDIS_ADDR", "localhost:6379"),
			Password: optional("REDIS_PASSWORD", ""),
		},
		Slack: SlackConfig{
			Token:         optional("SLACK_BOT_TOKEN", ""),
			ChannelID:     optional("SLACK_CHANNEL_ID", ""),
			SigningSecret: optional("SLACK_SIGNING_SECRET", ""),
		},
		ProjectID:   optional("GCP_PROJECT", ""),
		TopicPrefix: optional("PUBSUB_TOPIC_PREFIX", "fieldclock-"),
		Match: MatchConfig{
			Timezone:         optional("TIMEZONE", DefaultTimezone),
			ZoomProfile:      optional("ZOOM_PROFILE", "default"),
			AutoplayInterval: DefaultAutoplayInterval,
			HalfTimeGap:      DefaultHalfTimeGap,
			LiveRefreshSpec:  optional("LIVE_REFRESH_SPEC", DefaultLiveRefreshSpec),
			TeamA:            TeamDefaults{Name: optional("TEAM_A_NAME", ""), Color: optional("TEAM_A_COLOR", "")},
			TeamB:            TeamDefaults{Name: optional("TEAM_B_NAME", ""), Color: optional("TEAM_B_COLOR", "")},
		},
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%s: %w", strings.Join(missing, ", "), ErrMissingEnv)
	}

	var err error
	if cfg.Redis.DB, err = intEnv(optional("REDIS_DB", "0")); err != nil {
		return Config{}, fmt.Errorf("REDIS_DB: %w", err)
	}
	if ms := optional("AUTOPLAY_TICK_MS", ""); ms != "" {
		n, err := intEnv(ms)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("AUTOPLAY_TICK_MS must be a positive integer, got %q", ms)
		}
		cfg.Match.AutoplayInterval = time.Duration(n) * time.Millisecond
	}
	cfg.Slack.DryRun, _ = strconv.ParseBool(optional("SLACK_DRY_RUN", "false"))

	if path := optional("CONFIG_FILE", ""); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// Location resolves the match timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Match.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", c.Match.Timezone, err)
	}
	return loc, nil
}

// applyFile overlays the non-zero match settings of a YAML file.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	m := file.Match
	if m.Timezone != "" {
		c.Match.Timezone = m.Timezone
	}
	if m.ZoomProfile != "" {
		c.Match.ZoomProfile = m.ZoomProfile
	}
	if m.AutoplayInterval > 0 {
		c.Match.AutoplayInterval = m.AutoplayInterval
	}
	if m.HalfTimeGap > 0 {
		c.Match.HalfTimeGap = m.HalfTimeGap
	}
	if m.LiveRefreshSpec != "" {
		c.Match.LiveRefreshSpec = m.LiveRefreshSpec
	}
	if m.TeamA.Name != "" || m.TeamA.Color != "" {
		c.Match.TeamA = m.TeamA
	}
	if m.TeamB.Name != "" || m.TeamB.Color != "" {
		c.Match.TeamB = m.TeamB
	}
	log.Info("Loaded match defaults from file", "path", path)
	return nil
}

func intEnv(v string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(v))
}
