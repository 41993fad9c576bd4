package moderation_handler

import (
	"log/slog"
	"strings"

	"guildkeeper/src-server/args"
	"guildkeeper/src-server/utils"

	"golang.org/x/time/rate"
)

// mass applies a to every member named in the arguments with the action's
// fixed reason, reporting the tokens it couldn't resolve or act on.
func mass(a action, limiter *rate.Limiter) utils.CmdHandler {
	return func(c *utils.CmdContext) error {
		tokens := args.Tokenize(c.Args)
		if len(tokens) == 0 {
			return c.Replyf("Invalid argument.")
		}
		members, unresolved, err := args.ResolveMembers(c.Ctx, c.Session, c.GuildID(), tokens)
		if err != nil {
			return err
		}

		reason := c.Sprintf(a.massReason)
		done := 0
		failed := make([]string, 0)
		for _, member := range members {
			if !canActOn(c, member.User) {
				failed = append(failed, member.User.Mention())
				continue
			}
			if err := limiter.Wait(c.Ctx); err != nil {
				return err
			}
			if err := a.apply(c, member.User.ID, reason); err != nil {
				if !isForbidden(err) {
					slog.Warn("mass "+a.name+" failed", "guild", c.GuildID(), "user", member.User.ID, "error", err)
				}
				failed = append(failed, member.User.Mention())
				continue
			}
			done++
			notify(c, member.User, c.Sprintf(a.dm, c.GuildName(), reason))
		}
		slog.Info("mass "+a.name, "guild", c.GuildID(), "by", c.Author().ID, "done", done, "failed", len(failed), "unresolved", len(unresolved))

		lines := []string{c.Sprintf(a.massDone, done)}
		if len(unresolved) > 0 {
			lines = append(lines, c.Sprintf("Couldn't resolve: %s", "`"+strings.Join(unresolved, "`, `")+"`"))
		}
		if len(failed) > 0 {
			lines = append(lines, c.Sprintf("Couldn't act on: %s", strings.Join(failed, ", ")))
		}
		return c.Reply(strings.Join(lines, "\n"))
	}
}
