package birthday_handler

import (
	"guildkeeper/src-server/args"
	"guildkeeper/src-server/model"
	"guildkeeper/src-server/router"
	"guildkeeper/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

func setChannel(c *utils.CmdContext, value string) error {
	if ok, err := router.RequirePermissions(c, discordgo.PermissionManageServer); !ok {
		return err
	}
	channelID, err := args.ChannelID(value)
	if err != nil {
		return c.Replyf("Invalid argument.")
	}
	channel, err := c.Session.Channel(channelID, discordgo.WithContext(c.Ctx))
	if err != nil {
		if args.IsNotFound(err) {
			return c.Replyf("Invalid argument.")
		}
		return err
	}
	if channel.GuildID != c.GuildID() {
		return c.Replyf("Invalid argument.")
	}

	if err := c.SaveSettings(func(s *model.GuildSettings) { s.BirthdayChannelID = channel.ID }); err != nil {
		return err
	}
	return c.Replyf("Birthdays will be announced in %s.", channel.Mention())
}

func none(c *utils.CmdContext, value string) error {
	if value != "" {
		return c.Replyf("Invalid argument.")
	}
	if ok, err := router.RequirePermissions(c, discordgo.PermissionManageServer); !ok {
		return err
	}
	if err := c.SaveSettings(func(s *model.GuildSettings) { s.BirthdayChannelID = "" }); err != nil {
		return err
	}
	return c.Replyf("Birthdays won't be announced anymore.")
}
