package handler

import (
	"fmt"
	"strings"

	"guildkeeper/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

func Help(as *utils.AppState) {
	as.AddCmd(&utils.Cmd{
		Name:        "help",
		Aliases:     []string{"h"},
		Usage:       "help [command]",
		Description: "Lists the commands, or shows how to use one of them.",
		Handler:     helpHandler(as),
	})
}

func helpHandler(as *utils.AppState) utils.CmdHandler {
	return func(c *utils.CmdContext) error {
		prefix := c.Settings.Prefix
		name := strings.TrimPrefix(strings.TrimSpace(c.Args), prefix)
		if name == "" {
			var sb strings.Builder
			for _, cmd := range as.Cmds() {
				fmt.Fprintf(&sb, "`%s%s`\n%s\n", prefix, cmd.Usage, cmd.Description)
			}
			return c.ReplyEmbed(&discordgo.MessageEmbed{
				Title:       "Commands",
				Description: sb.String(),
			})
		}

		cmd, ok := as.GetCmd(name)
		if !ok {
			return c.Replyf("Unknown command `%s`. Use `%shelp` to list the commands.", name, prefix)
		}
		embed := &discordgo.MessageEmbed{
			Title:       prefix + cmd.Usage,
			Description: cmd.Description,
		}
		if len(cmd.Aliases) > 0 {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "Aliases",
				Value: strings.Join(cmd.Aliases, ", "),
			})
		}
		return c.ReplyEmbed(embed)
	}
}
