package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "TASKTRACKER"

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Audit    AuditConfig    `mapstructure:"audit"`
	Export   ExportConfig   `mapstructure:"export"`
	Reminder ReminderConfig `mapstructure:"reminder"`
	Session  SessionConfig  `mapstructure:"session"`
	Server   ServerConfig   `mapstructure:"server"`
	Google   GoogleConfig   `mapstructure:"google"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
}

// DatabaseConfig selects the GORM dialect. Path is used by sqlite,
// DSN by mysql and postgres.
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Path     string `mapstructure:"path"`
	DSN      string `mapstructure:"dsn"`
	LogLevel string `mapstructure:"log_level"`
}

type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type AuditConfig struct {
	Path string `mapstructure:"path"`
}

type ExportConfig struct {
	Path      string `mapstructure:"path"`
	ProductID string `mapstructure:"product_id"`
	UIDDomain string `mapstructure:"uid_domain"`
}

type ReminderConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	Enabled  bool          `mapstructure:"enabled"`
}

// SessionConfig holds the identity every shell command acts as.
type SessionConfig struct {
	ActingUserID uint64 `mapstructure:"acting_user_id"`
}

type ServerConfig struct {
	Addr    string `mapstructure:"addr"`
	GinMode string `mapstructure:"gin_mode"`
}

type GoogleConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	TokenFile       string `mapstructure:"token_file"`
	CalendarID      string `mapstructure:"calendar_id"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Load reads configuration from defaults, an optional .env file, the
// environment and, if configFile is non-empty, a config file.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "tasks.db")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.log_level", "silent")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")

	v.SetDefault("audit.path", "task_manager.log")

	v.SetDefault("export.path", "tasks.ics")
	v.SetDefault("export.product_id", "-//TaskManagerCLI//EN")
	v.SetDefault("export.uid_domain", "taskmanagercli")

	v.SetDefault("reminder.interval", "60s")
	v.SetDefault("reminder.enabled", true)

	v.SetDefault("session.acting_user_id", 1)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.gin_mode", "release")

	v.SetDefault("google.credentials_file", "credentials.json")
	v.SetDefault("google.token_file", "token.json")
	v.SetDefault("google.calendar_id", "primary")

	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model", "gpt-4o")
}

func validate(cfg *Config) error {
	switch cfg.Database.Driver {
	case "sqlite":
		if cfg.Database.Path == "" {
			return fmt.Errorf("database.path is required for sqlite")
		}
	case "mysql", "postgres":
		if cfg.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for %s", cfg.Database.Driver)
		}
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	if cfg.Reminder.Interval <= 0 {
		return fmt.Errorf("reminder.interval must be positive")
	}
	if cfg.Export.Path == "" {
		return fmt.Errorf("export.path is required")
	}
	if cfg.Audit.Path == "" {
		return fmt.Errorf("audit.path is required")
	}
	return nil
}
