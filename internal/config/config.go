package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string `mapstructure:"PORT"`
	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"`
	DatabasePath   string `mapstructure:"DATABASE_PATH"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	FrontendURL    string `mapstructure:"FRONTEND_URL"`
	Timezone       string `mapstructure:"TIMEZONE"`

	XPPerCompletion  int `mapstructure:"XP_PER_COMPLETION"`
	StatsDefaultDays int `mapstructure:"STATS_DEFAULT_DAYS"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
	LogFile  string `mapstructure:"LOG_FILE"`

	OAuthClientID     string `mapstructure:"OAUTH_CLIENT_ID"`
	OAuthClientSecret string `mapstructure:"OAUTH_CLIENT_SECRET"`
	OAuthRedirectURL  string `mapstructure:"OAUTH_REDIRECT_URL"`

	DiscordBotToken               string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`

	SESRegion    string `mapstructure:"SES_REGION"`
	SESFromEmail string `mapstructure:"SES_FROM_EMAIL"`
	SESFromName  string `mapstructure:"SES_FROM_NAME"`
	AppBaseURL   string `mapstructure:"APP_BASE_URL"`
}

var envKeys = []string{
	"DATABASE_URL",
	"JWT_SECRET",
	"OAUTH_CLIENT_ID",
	"OAUTH_CLIENT_SECRET",
	"DISCORD_BOT_TOKEN",
	"DISCORD_NOTIFICATIONS_CHANNEL_ID",
	"SES_FROM_EMAIL",
}

// LoadConfig reads configuration from the environment, optionally layered
// over the file named by CONFIG_FILE.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_PATH", "habithub.db")
	v.SetDefault("FRONTEND_URL", "http://127.0.0.1:5173/")
	v.SetDefault("TIMEZONE", "UTC")
	v.SetDefault("XP_PER_COMPLETION", 10)
	v.SetDefault("STATS_DEFAULT_DAYS", 30)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("OAUTH_REDIRECT_URL", "http://127.0.0.1:8080/api/auth/oauth/callback")
	v.SetDefault("SES_REGION", "us-east-1")
	v.SetDefault("SES_FROM_NAME", "HabitHub")
	v.SetDefault("APP_BASE_URL", "http://127.0.0.1:5173")

	for _, key := range envKeys {
		v.BindEnv(key)
	}
	v.BindEnv("CONFIG_FILE")

	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if _, err := config.Location(); err != nil {
		return nil, err
	}
	if config.XPPerCompletion < 0 {
		return nil, fmt.Errorf("XP_PER_COMPLETION must not be negative")
	}
	if config.StatsDefaultDays <= 0 {
		config.StatsDefaultDays = 30
	}

	return &config, nil
}

// Location resolves TIMEZONE. Calendar days for streaks are cut in this zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}
