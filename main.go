package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"guildkeeper/src-server/cmd"
	"guildkeeper/src-server/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
)

var logLevel = new(slog.LevelVar)

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Info(err.Error())
	}
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      logLevel,
		TimeFormat: time.RFC1123Z,
	})
	slog.SetDefault(slog.New(handler))
	discordgo.Logger = utils.DiscordgoLogger(handler)
}

func main() {
	if err := cmd.NewCommand(logLevel).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
