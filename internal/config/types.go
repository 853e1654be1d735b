package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Storage       StorageConfig
	Turso         TursoConfig
	Postgres      PostgresConfig
	Redis         RedisConfig
	Slack         SlackConfig
	ProjectID     string
	TopicPrefix   string
	Match         MatchConfig
}

// StorageConfig selects where match state is persisted.
type StorageConfig struct {
	Backend  string
	BoltPath string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type PostgresConfig struct {
	DSN string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SlackConfig is optional; an empty token disables the Slack sink and an empty signing
// secret disables the slash command.
type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
	DryRun        bool
}

// MatchConfig holds match defaults. They can come from the environment or a YAML file
// named by CONFIG_FILE, which wins.
type MatchConfig struct {
	Timezone         string        `yaml:"timezone"`
	ZoomProfile      string        `yaml:"zoom_profile"`
	AutoplayInterval time.Duration `yaml:"autoplay_interval"`
	HalfTimeGap      time.Duration `yaml:"half_time_gap"`
	LiveRefreshSpec  string        `yaml:"live_refresh_spec"`
	TeamA            TeamDefaults  `yaml:"team_a"`
	TeamB            TeamDefaults  `yaml:"team_b"`
}

type TeamDefaults struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// fileConfig is the layout of the optional YAML file.
type fileConfig struct {
	Match MatchConfig `yaml:"match"`
}
