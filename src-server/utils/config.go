package utils

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"guildkeeper/src-server/locale"
	"guildkeeper/src-server/model"

	"golang.org/x/text/language"
	"golang.org/x/time/rate"
)

type Config struct {
	discordAppToken string

	defaultPrefix string
	databasePath  string
	port          string

	location      *time.Location
	defaultLocale language.Tag

	metricCollectionInterval time.Duration
	birthdayCheckInterval    time.Duration
	purgeRateLimit           rate.Limit
	moderationRateLimit      rate.Limit

	logLevel slog.Level
}

// NewConfigFromLookup builds the config from getenv, collecting every
// invalid value into the returned error.
func NewConfigFromLookup(getenv func(string) string) (*Config, error) {
	errs := make([]error, 0)
	duration := func(key, fallback string) time.Duration {
		value := getenv(key)
		if value == "" {
			value = fallback
		}
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("invalid %s %q", key, value))
			d, _ = time.ParseDuration(fallback)
		}
		slog.Debug("env", key, d)
		return d
	}
	perSecond := func(key string, fallback float64) rate.Limit {
		value := getenv(key)
		if value == "" {
			value = strconv.FormatFloat(fallback, 'f', -1, 64)
		}
		n, err := strconv.ParseFloat(value, 64)
		if err != nil || n <= 0 {
			errs = append(errs, fmt.Errorf("invalid %s %q", key, value))
			n = fallback
		}
		slog.Debug("env", key, n)
		return rate.Limit(n)
	}

	config := &Config{
		discordAppToken: func() string {
			discordAppToken := getenv("DISCORD_APP_TOKEN")
			if len(discordAppToken) < 3 {
				errs = append(errs, errors.New("DISCORD_APP_TOKEN is not set"))
				return ""
			}
			slog.Debug("env", "DISCORD_APP_TOKEN", discordAppToken[0:3]+"...")
			return discordAppToken
		}(),

		defaultPrefix: func() string {
			prefix := getenv("DEFAULT_PREFIX")
			if prefix == "" {
				prefix = "./"
			}
			if err := model.ValidatePrefix(prefix); err != nil {
				errs = append(errs, fmt.Errorf("invalid DEFAULT_PREFIX: %w", err))
				prefix = "./"
			}
			slog.Debug("env", "DEFAULT_PREFIX", prefix)
			return prefix
		}(),
		databasePath: func() string {
			databasePath := getenv("DATABASE_PATH")
			if databasePath == "" {
				databasePath = "./sqlite.db"
			}
			slog.Debug("env", "DATABASE_PATH", databasePath)
			return databasePath
		}(),
		port: func() string {
			port := getenv("PORT")
			if port == "" {
				port = "8080"
			}
			if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
				errs = append(errs, fmt.Errorf("invalid PORT %q", port))
			}
			slog.Debug("env", "PORT", port)
			return port
		}(),

		location: func() *time.Location {
			timezoneStr := getenv("TIMEZONE")
			if timezoneStr == "" {
				timezoneStr = "UTC"
			}
			loc, err := time.LoadLocation(timezoneStr)
			if err != nil {
				errs = append(errs, fmt.Errorf("invalid TIMEZONE %q: %w", timezoneStr, err))
				return time.UTC
			}
			slog.Debug("env", "TIMEZONE", timezoneStr)
			return loc
		}(),
		defaultLocale: func() language.Tag {
			localeStr := getenv("DEFAULT_LOCALE")
			if localeStr == "" {
				localeStr = "en"
			}
			tag, err := locale.Match(localeStr)
			if err != nil {
				errs = append(errs, fmt.Errorf("invalid DEFAULT_LOCALE: %w", err))
				return language.English
			}
			slog.Debug("env", "DEFAULT_LOCALE", tag.String())
			return tag
		}(),

		metricCollectionInterval: duration("METRIC_COLLECTION_INTERVAL", "10s"),
		birthdayCheckInterval:    duration("BIRTHDAY_CHECK_INTERVAL", "1m"),
		purgeRateLimit:           perSecond("PURGE_RATE_LIMIT", 4),
		moderationRateLimit:      perSecond("MODERATION_RATE_LIMIT", 1),

		logLevel: func() slog.Level {
			var level slog.Level
			value := getenv("LOG_LEVEL")
			if value == "" {
				return slog.LevelDebug
			}
			if err := level.UnmarshalText([]byte(strings.ToUpper(value))); err != nil {
				errs = append(errs, fmt.Errorf("invalid LOG_LEVEL %q", value))
				return slog.LevelDebug
			}
			return level
		}(),
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return config, nil
}

// Get DISCORD_APP_TOKEN env
func (c *Config) GetDiscordAppToken() string {
	return c.discordAppToken
}

// Get DEFAULT_PREFIX env, default to ./
func (c *Config) GetDefaultPrefix() string {
	return c.defaultPrefix
}

// Get DATABASE_PATH env, default to ./sqlite.db
func (c *Config) GetDatabasePath() string {
	return c.databasePath
}

// Get PORT env, default to 8080
func (c *Config) GetPort() string {
	return c.port
}

// Get TIMEZONE env, default to UTC
func (c *Config) GetLocation() *time.Location {
	return c.location
}

// Get DEFAULT_LOCALE env, default to en
func (c *Config) GetDefaultLocale() language.Tag {
	return c.defaultLocale
}

// Get METRIC_COLLECTION_INTERVAL env, default to 10s
func (c *Config) GetMetricCollectionInterval() time.Duration {
	return c.metricCollectionInterval
}

// Get BIRTHDAY_CHECK_INTERVAL env, default to 1m
func (c *Config) GetBirthdayCheckInterval() time.Duration {
	return c.birthdayCheckInterval
}

// Get PURGE_RATE_LIMIT env, default to 4 per second
func (c *Config) GetPurgeRateLimit() rate.Limit {
	return c.purgeRateLimit
}

// Get MODERATION_RATE_LIMIT env, default to 1 per second
func (c *Config) GetModerationRateLimit() rate.Limit {
	return c.moderationRateLimit
}

// Get LOG_LEVEL env, default to debug
func (c *Config) GetLogLevel() slog.Level {
	return c.logLevel
}

// DefaultGuildSettings are used for guilds that never changed a setting.
func (c *Config) DefaultGuildSettings() model.GuildSettings {
	return model.GuildSettings{
		Prefix:   c.defaultPrefix,
		Locale:   c.defaultLocale.String(),
		Timezone: c.location.String(),
	}
}
