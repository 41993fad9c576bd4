package utils_test

import (
	"log/slog"
	"testing"
	"time"

	"guildkeeper/src-server/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"
)

func lookup(env map[string]string) func(string) string {
	return func(key string) string {
		return env[key]
	}
}

func TestConfigDefaults(t *testing.T) {
	config, err := utils.NewConfigFromLookup(lookup(map[string]string{
		"DISCORD_APP_TOKEN": "token",
	}))
	require.NoError(t, err)

	assert.Equal(t, "token", config.GetDiscordAppToken())
	assert.Equal(t, "./", config.GetDefaultPrefix())
	assert.Equal(t, "./sqlite.db", config.GetDatabasePath())
	assert.Equal(t, "8080", config.GetPort())
	assert.Equal(t, time.UTC, config.GetLocation())
	assert.Equal(t, language.English, config.GetDefaultLocale())
	assert.Equal(t, 10*time.Second, config.GetMetricCollectionInterval())
	assert.Equal(t, time.Minute, config.GetBirthdayCheckInterval())
	assert.Equal(t, rate.Limit(4), config.GetPurgeRateLimit())
	assert.Equal(t, rate.Limit(1), config.GetModerationRateLimit())
	assert.Equal(t, slog.LevelDebug, config.GetLogLevel())

	defaults := config.DefaultGuildSettings()
	assert.Equal(t, "./", defaults.Prefix)
	assert.Equal(t, "en", defaults.Locale)
	assert.Equal(t, "UTC", defaults.Timezone)
}

func TestConfigValues(t *testing.T) {
	config, err := utils.NewConfigFromLookup(lookup(map[string]string{
		"DISCORD_APP_TOKEN":       "token",
		"DEFAULT_PREFIX":          "!",
		"TIMEZONE":                "America/Sao_Paulo",
		"DEFAULT_LOCALE":          "pt-BR",
		"BIRTHDAY_CHECK_INTERVAL": "30s",
		"PURGE_RATE_LIMIT":        "2.5",
		"MODERATION_RATE_LIMIT":   "0.5",
		"LOG_LEVEL":               "warn",
	}))
	require.NoError(t, err)

	assert.Equal(t, "!", config.GetDefaultPrefix())
	assert.Equal(t, "America/Sao_Paulo", config.GetLocation().String())
	assert.Equal(t, "pt-BR", config.GetDefaultLocale().String())
	assert.Equal(t, 30*time.Second, config.GetBirthdayCheckInterval())
	assert.Equal(t, rate.Limit(2.5), config.GetPurgeRateLimit())
	assert.Equal(t, rate.Limit(0.5), config.GetModerationRateLimit())
	assert.Equal(t, slog.LevelWarn, config.GetLogLevel())
}

func TestConfigInvalid(t *testing.T) {
	_, err := utils.NewConfigFromLookup(lookup(map[string]string{}))
	assert.ErrorContains(t, err, "DISCORD_APP_TOKEN")

	_, err = utils.NewConfigFromLookup(lookup(map[string]string{
		"DISCORD_APP_TOKEN": "token",
		"DEFAULT_PREFIX":    "has space",
		"TIMEZONE":          "Mars/Olympus",
		"PORT":              "http",
		"PURGE_RATE_LIMIT":  "-1",
	}))
	require.Error(t, err)
	for _, key := range []string{"DEFAULT_PREFIX", "TIMEZONE", "PORT", "PURGE_RATE_LIMIT"} {
		assert.ErrorContains(t, err, key)
	}
}
