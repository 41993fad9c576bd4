package copypasta_handler

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"guildkeeper/src-server/args"
	"guildkeeper/src-server/model"
	"guildkeeper/src-server/utils"
)

func format(cp *model.Copypasta) string {
	return fmt.Sprintf("**\"%s\"** | ID: %d\n\n%s", cp.Title, cp.ID, cp.Content)
}

// send replies with the copypasta with the ID in value, a random one when
// value is empty.
func send(c *utils.CmdContext, value string) error {
	var id int64
	if value != "" {
		var err error
		if id, err = args.ParseID(value); err != nil {
			return c.Replyf("Invalid argument.")
		}
	}

	cp, err := model.GetCopypasta(c.Ctx, c.AS.BunDB, c.GuildID(), id)
	switch {
	case errors.Is(err, sql.ErrNoRows) && id == 0:
		return c.Replyf("No copypasta was found in \"%s\".", c.GuildName())
	case errors.Is(err, sql.ErrNoRows):
		return c.Replyf("No copypasta with ID %s was found in \"%s\".", strconv.FormatInt(id, 10), c.GuildName())
	case err != nil:
		return fmt.Errorf("copypasta send: %w", err)
	}

	if err := c.Reply(format(cp)); err != nil {
		return err
	}
	c.AS.MetricChans.CountCopypastaSent()
	return nil
}
