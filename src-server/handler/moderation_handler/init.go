package moderation_handler

import (
	"errors"
	"net/http"

	"guildkeeper/src-server/args"
	"guildkeeper/src-server/utils"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

var flagReason = args.Flag{Short: "-r", Long: "--reason", Greedy: true}

// action is what kick and ban share.
type action struct {
	name       string
	permission int64
	// reason of every target of a mass action
	massReason string

	// localized replies
	done     string // mention, reason
	dm       string // guild name, reason
	massDone string // count

	apply func(c *utils.CmdContext, userID, reason string) error
}

var kick = action{
	name:       "kick",
	permission: discordgo.PermissionKickMembers,
	massReason: "Kicked in a mass kick. No specific reason provided.",
	done:       "Kicked %s. Reason: `%s`.",
	dm:         "You have been kicked from `%s`. Reason: `%s`.",
	massDone:   "Kicked %d members.",
	apply: func(c *utils.CmdContext, userID, reason string) error {
		return c.Session.GuildMemberDeleteWithReason(c.GuildID(), userID, reason, discordgo.WithContext(c.Ctx))
	},
}

var ban = action{
	name:       "ban",
	permission: discordgo.PermissionBanMembers,
	massReason: "Banned in a mass ban. No specific reason provided.",
	done:       "Banned %s. Reason: `%s`.",
	dm:         "You have been banned from `%s`. Reason: `%s`.",
	massDone:   "Banned %d members.",
	apply: func(c *utils.CmdContext, userID, reason string) error {
		return c.Session.GuildBanCreateWithReason(c.GuildID(), userID, reason, 0, discordgo.WithContext(c.Ctx))
	},
}

// Init registers kick, ban, unban, masskick and massban.
func Init(as *utils.AppState) {
	limiter := rate.NewLimiter(as.Config.GetModerationRateLimit(), 1)

	as.AddCmd(&utils.Cmd{
		Name:        "kick",
		Usage:       "kick <member> [-r \"reason\"]",
		Description: "Kicks a member and tells them why in a DM.",
		Permissions: kick.permission,
		Handler:     single(kick),
	})
	as.AddCmd(&utils.Cmd{
		Name:        "ban",
		Usage:       "ban <member> [-r \"reason\"]",
		Description: "Bans a member and tells them why in a DM.",
		Permissions: ban.permission,
		Handler:     single(ban),
	})
	as.AddCmd(&utils.Cmd{
		Name:        "unban",
		Usage:       "unban <name#1234 | name | id>",
		Description: "Lifts the ban of a user.",
		Permissions: discordgo.PermissionBanMembers,
		Handler:     unbanHandler,
	})
	as.AddCmd(&utils.Cmd{
		Name:        "masskick",
		Usage:       "masskick <member> [member...]",
		Description: "Kicks several members at once.",
		Permissions: kick.permission,
		Handler:     mass(kick, limiter),
	})
	as.AddCmd(&utils.Cmd{
		Name:        "massban",
		Usage:       "massban <member> [member...]",
		Description: "Bans several members at once.",
		Permissions: ban.permission,
		Handler:     mass(ban, limiter),
	})
}

func isForbidden(err error) bool {
	var restErr *discordgo.RESTError
	return errors.As(err, &restErr) &&
		restErr.Response != nil &&
		restErr.Response.StatusCode == http.StatusForbidden
}

// canActOn refuses the author, the bot and the guild owner.
func canActOn(c *utils.CmdContext, u *discordgo.User) bool {
	switch {
	case u.ID == c.Author().ID:
		return false
	case c.BotUser != nil && u.ID == c.BotUser.ID:
		return false
	case c.Guild != nil && u.ID == c.Guild.OwnerID:
		return false
	}
	return true
}
