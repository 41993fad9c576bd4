package utils_test

import (
	"bytes"
	"log/slog"
	"testing"

	"guildkeeper/src-server/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestDiscordgoLogger(t *testing.T) {
	var buf bytes.Buffer
	log := utils.DiscordgoLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	log(discordgo.LogWarning, 0, "heartbeat %s\n", "late")
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), `msg="heartbeat late"`)
	assert.Contains(t, buf.String(), "logger=discordgo")

	assert.Equal(t, discordgo.LogDebug, utils.DiscordgoLogLevel(slog.LevelDebug))
	assert.Equal(t, discordgo.LogWarning, utils.DiscordgoLogLevel(slog.LevelWarn))
	assert.Equal(t, discordgo.LogError, utils.DiscordgoLogLevel(slog.LevelError))
}
