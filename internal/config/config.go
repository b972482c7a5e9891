package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	_ "github.com/joho/godotenv/autoload"
)

// Config carries everything the application needs from the environment.
// A .env file is honored via godotenv autoload; real env vars win.
type Config struct {
	HTTP HTTPConfig
	DB   DBConfig
	Auth AuthConfig
	Log  LogConfig
	Mail MailConfig
}

type HTTPConfig struct {
	Port int `env:"PORT" env-default:"8080"`
}

type DBConfig struct {
	Host     string `env:"DB_HOST" env-default:"localhost"`
	Port     int    `env:"DB_PORT" env-default:"5432"`
	Username string `env:"DB_USERNAME" env-default:"postgres"`
	Password string `env:"DB_PASSWORD" env-default:"postgres"`
	Database string `env:"DB_DATABASE" env-default:"homeboard"`
}

// DSN builds the postgres connection string the GORM driver expects.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.Host, c.Username, c.Password, c.Database, c.Port)
}

type AuthConfig struct {
	// JWTSecret signs access tokens. Refresh tokens are signed with each
	// user's own rotating secret instead.
	JWTSecret  string        `env:"JWT_SECRET" env-required:"true"`
	AccessTTL  time.Duration `env:"JWT_ACCESS_TTL" env-default:"5m"`
	RefreshTTL time.Duration `env:"JWT_REFRESH_TTL" env-default:"8760h"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"text"`
}

type MailConfig struct {
	// Empty Host disables real delivery; the mailer then only logs.
	Host string `env:"SMTP_HOST" env-default:""`
	Port int    `env:"SMTP_PORT" env-default:"587"`
	From string `env:"SMTP_FROM" env-default:"noreply@homeboard.local"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return &cfg, nil
}
