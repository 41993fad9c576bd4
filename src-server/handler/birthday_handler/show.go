package birthday_handler

import (
	"database/sql"
	"errors"
	"strconv"
	"time"

	"guildkeeper/src-server/args"
	"guildkeeper/src-server/model"
	"guildkeeper/src-server/router"
	"guildkeeper/src-server/utils"
)

// formatDate writes a birthday in the guild's locale, without the year when
// it's 0.
func formatDate(c *utils.CmdContext, month, day, year int) string {
	monthName := c.Sprintf(time.Month(month).String())
	if year == 0 {
		return c.Sprintf("%[1]s %[2]d", monthName, day)
	}
	// as a string, %d would group the digits
	return c.Sprintf("%[1]s %[2]d, %[3]s", monthName, day, strconv.Itoa(year))
}

func show(c *utils.CmdContext, target string) error {
	user := c.Author()
	if target != "" {
		member, err := args.ResolveMember(c.Ctx, c.Session, c.GuildID(), target)
		if err != nil {
			if handled, replyErr := router.ReplyResolveError(c, target, err); handled {
				return replyErr
			}
			return err
		}
		user = member.User
	}

	b, err := model.GetBirthday(c.Ctx, c.AS.BunDB, c.GuildID(), user.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Replyf("No birthday saved for %s.", user.Mention())
		}
		return err
	}
	return c.Replyf("%s's birthday is on %s.", user.Mention(), formatDate(c, b.Month, b.Day, b.Year))
}
