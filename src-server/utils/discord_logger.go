package utils

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

var discordgoLogLevels = map[int]slog.Level{
	discordgo.LogError:         slog.LevelError,
	discordgo.LogWarning:       slog.LevelWarn,
	discordgo.LogInformational: slog.LevelInfo,
	discordgo.LogDebug:         slog.LevelDebug,
}

// DiscordgoLogger adapts a slog handler to the discordgo.Logger func var,
// so the library's own messages end up in the same log stream.
func DiscordgoLogger(handler slog.Handler) func(msgL, caller int, format string, a ...interface{}) {
	log := slog.New(handler).With("logger", "discordgo")
	return func(msgL, _ int, format string, a ...interface{}) {
		level, ok := discordgoLogLevels[msgL]
		if !ok {
			level = slog.LevelInfo
		}
		log.LogAttrs(
			context.Background(),
			level,
			strings.ReplaceAll(fmt.Sprintf(format, a...), "\n", ""),
		)
	}
}

// discordgo logs at the session's LogLevel and above; keep it in step with slog's.
func DiscordgoLogLevel(level slog.Level) int {
	switch {
	case level <= slog.LevelDebug:
		return discordgo.LogDebug
	case level <= slog.LevelInfo:
		return discordgo.LogInformational
	case level <= slog.LevelWarn:
		return discordgo.LogWarning
	}
	return discordgo.LogError
}
