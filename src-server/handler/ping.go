package handler

import (
	"fmt"
	"runtime"

	"guildkeeper/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

func Ping(as *utils.AppState) {
	as.AddCmd(&utils.Cmd{
		Name:        "ping",
		Usage:       "ping",
		Description: "Shows the latency and uptime of the bot.",
		Handler:     pingHandler(as),
	})
}

func pingHandler(as *utils.AppState) utils.CmdHandler {
	return func(c *utils.CmdContext) error {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		memUsage := float64(m.Sys) / 1024 / 1024

		return c.ReplyEmbed(&discordgo.MessageEmbed{
			Title: fmt.Sprintf("Pong! `%dms`", c.Session.HeartbeatLatency().Milliseconds()),
			Footer: &discordgo.MessageEmbedFooter{
				Text: c.GuildID(),
			},
			Fields: []*discordgo.MessageEmbedField{
				{
					Name:  "Uptime",
					Value: as.GetUptime().String(),
				},
				{
					Name:   "Go version",
					Value:  runtime.Version(),
					Inline: true,
				},
				{
					Name:   "Memory",
					Value:  fmt.Sprintf("%.2fMB", memUsage),
					Inline: true,
				},
			},
		})
	}
}
