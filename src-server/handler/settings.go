package handler

import (
	"fmt"
	"strings"
	"time"

	"guildkeeper/src-server/locale"
	"guildkeeper/src-server/model"
	"guildkeeper/src-server/router"
	"guildkeeper/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// Showing a setting is open to everyone, changing it needs Manage Server.

func Prefix(as *utils.AppState) {
	as.AddCmd(&utils.Cmd{
		Name:        "prefix",
		Usage:       "prefix [new prefix]",
		Description: fmt.Sprintf("Shows or changes the command prefix, up to %d characters without spaces.", model.PrefixMaxLength),
		Handler:     prefixHandler,
	})
}

func Timezone(as *utils.AppState) {
	as.AddCmd(&utils.Cmd{
		Name:        "timezone",
		Aliases:     []string{"tz"},
		Usage:       "timezone [IANA name]",
		Description: "Shows or changes the timezone of the server, e.g. `America/Sao_Paulo`.",
		Handler:     timezoneHandler,
	})
}

func Locale(as *utils.AppState) {
	as.AddCmd(&utils.Cmd{
		Name:        "locale",
		Aliases:     []string{"language"},
		Usage:       "locale [tag]",
		Description: "Shows or changes the language of the replies: " + locale.SupportedString() + ".",
		Handler:     localeHandler,
	})
}

func prefixHandler(c *utils.CmdContext) error {
	prefix := strings.TrimSpace(c.Args)
	if prefix == "" {
		return c.Replyf("The prefix of this server is `%s`.", c.Settings.Prefix)
	}
	if ok, err := router.RequirePermissions(c, discordgo.PermissionManageServer); !ok {
		return err
	}
	if err := model.ValidatePrefix(prefix); err != nil {
		return c.Replyf("Invalid prefix, it must have between 1 and %d characters and no spaces.", model.PrefixMaxLength)
	}
	if err := c.SaveSettings(func(s *model.GuildSettings) { s.Prefix = prefix }); err != nil {
		return err
	}
	return c.Replyf("Prefix changed to `%s`.", prefix)
}

func timezoneHandler(c *utils.CmdContext) error {
	name := strings.TrimSpace(c.Args)
	if name == "" {
		return c.Replyf("The timezone of this server is `%s`.", c.Settings.Timezone)
	}
	if ok, err := router.RequirePermissions(c, discordgo.PermissionManageServer); !ok {
		return err
	}
	loc, err := time.LoadLocation(name)
	if err != nil || name == "Local" {
		return c.Replyf("Unknown timezone `%s`, use a name like `America/Sao_Paulo`.", name)
	}
	if err := c.SaveSettings(func(s *model.GuildSettings) { s.Timezone = loc.String() }); err != nil {
		return err
	}
	return c.Replyf("Timezone changed to `%s`.", loc.String())
}

func localeHandler(c *utils.CmdContext) error {
	arg := strings.TrimSpace(c.Args)
	if arg == "" {
		return c.Replyf("The locale of this server is `%s`.", c.Settings.Locale)
	}
	if ok, err := router.RequirePermissions(c, discordgo.PermissionManageServer); !ok {
		return err
	}
	tag, err := locale.Match(arg)
	if err != nil {
		return c.Replyf("Unsupported locale `%s`. Supported locales: %s.", arg, locale.SupportedString())
	}
	if err := c.SaveSettings(func(s *model.GuildSettings) { s.Locale = tag.String() }); err != nil {
		return err
	}
	// answer in the new locale
	c.Printer = locale.Printer(tag)
	return c.Replyf("Locale changed to `%s`.", tag.String())
}
