package moderation_handler

import (
	"log/slog"

	"guildkeeper/src-server/args"
	"guildkeeper/src-server/router"
	"guildkeeper/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// splitTarget reads "<member> [-r reason]". Without -r, whatever follows
// the member is the reason.
func splitTarget(input string) (target string, reason string) {
	p := args.Parse(input, flagReason)
	tokens := args.Scan(p.Positional())
	if len(tokens) == 0 {
		return "", ""
	}
	target = tokens[0].Text
	if value, ok := p.Value(flagReason); ok {
		reason = value
	} else {
		reason = p.Positional()[tokens[0].End:]
	}
	return target, args.ParseReason(reason)
}

// notify DMs the target; failures are only logged since many users don't
// accept DMs.
func notify(c *utils.CmdContext, u *discordgo.User, content string) {
	channel, err := c.Session.UserChannelCreate(u.ID, discordgo.WithContext(c.Ctx))
	if err != nil {
		slog.Info("can't DM user", "user", u.ID, "error", err)
		return
	}
	if _, err := c.Session.ChannelMessageSend(channel.ID, content, discordgo.WithContext(c.Ctx)); err != nil {
		slog.Info("can't DM user", "user", u.ID, "error", err)
	}
}

func single(a action) utils.CmdHandler {
	return func(c *utils.CmdContext) error {
		target, reason := splitTarget(c.Args)
		if target == "" {
			return c.Replyf("Invalid argument.")
		}
		if reason == "" {
			reason = c.Sprintf("No reason provided")
		}

		member, err := args.ResolveMember(c.Ctx, c.Session, c.GuildID(), target)
		if err != nil {
			if handled, replyErr := router.ReplyResolveError(c, target, err); handled {
				return replyErr
			}
			return err
		}
		if !canActOn(c, member.User) {
			return c.Replyf("I can't do that to %s.", member.User.Mention())
		}

		if err := a.apply(c, member.User.ID, reason); err != nil {
			if isForbidden(err) {
				return c.Replyf("I can't do that to %s.", member.User.Mention())
			}
			return err
		}
		slog.Info("member "+a.name, "guild", c.GuildID(), "user", member.User.ID, "by", c.Author().ID, "reason", reason)

		if err := c.Replyf(a.done, member.User.Mention(), reason); err != nil {
			return err
		}
		notify(c, member.User, c.Sprintf(a.dm, c.GuildName(), reason))
		return nil
	}
}
