package copypasta_handler

import (
	"strconv"

	"guildkeeper/src-server/args"
	"guildkeeper/src-server/model"
	"guildkeeper/src-server/router"
	"guildkeeper/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

func remove(c *utils.CmdContext, value string) error {
	if ok, err := router.RequirePermissions(c, discordgo.PermissionManageMessages); !ok {
		return err
	}
	ids, err := args.ParseIDList(value)
	if err != nil {
		return c.Replyf("Invalid argument.")
	}

	n, err := model.DeleteCopypastas(c.Ctx, c.AS.BunDB, c.GuildID(), ids...)
	if err != nil {
		return err
	}
	switch {
	case len(ids) == 1 && n == 0:
		return c.Replyf("No copypasta with ID %s was found in \"%s\".", strconv.FormatInt(ids[0], 10), c.GuildName())
	case len(ids) == 1:
		return c.Replyf("Copypasta with ID %s deleted!", strconv.FormatInt(ids[0], 10))
	default:
		return c.Replyf("%d of %d copypastas deleted!", n, len(ids))
	}
}
