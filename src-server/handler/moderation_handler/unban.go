package moderation_handler

import (
	"fmt"
	"strings"

	"guildkeeper/src-server/args"
	"guildkeeper/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// max page size of the bans endpoint
const bansPageSize = 1000

// findBan pages through the guild's bans until one matches token.
func findBan(c *utils.CmdContext, token string) (*discordgo.GuildBan, error) {
	after := ""
	for {
		bans, err := c.Session.GuildBans(c.GuildID(), bansPageSize, "", after, discordgo.WithContext(c.Ctx))
		if err != nil {
			return nil, fmt.Errorf("findBan: %w", err)
		}
		for _, b := range bans {
			if args.MatchesUser(b.User, token) {
				return b, nil
			}
		}
		if len(bans) < bansPageSize {
			return nil, nil
		}
		after = bans[len(bans)-1].User.ID
	}
}

func unbanHandler(c *utils.CmdContext) error {
	token := args.Unquote(strings.TrimSpace(c.Args))
	if token == "" {
		return c.Replyf("Invalid argument.")
	}

	b, err := findBan(c, token)
	if err != nil {
		return err
	}
	if b == nil {
		return c.Replyf("No banned user matching `%s` was found.", token)
	}
	if err := c.Session.GuildBanDelete(c.GuildID(), b.User.ID, discordgo.WithContext(c.Ctx)); err != nil {
		return err
	}
	return c.Replyf("Unbanned %s.", args.Tag(b.User))
}
