package copypasta_handler

import (
	"bytes"
	"encoding/json"
	"fmt"

	"guildkeeper/src-server/model"
	"guildkeeper/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// export attaches every copypasta of the guild as a JSON array, the same
// format --import reads.
func export(c *utils.CmdContext, _ string) error {
	copypastas, err := model.SearchCopypastas(c.Ctx, c.AS.BunDB, c.GuildID(), model.CopypastaSearch{
		OrderField: model.CopypastaOrderID,
		Ascending:  true,
	})
	if err != nil {
		return err
	}
	if len(copypastas) == 0 {
		return c.Replyf("No copypasta was found in \"%s\".", c.GuildName())
	}

	data, err := json.MarshalIndent(copypastas, "", "  ")
	if err != nil {
		return fmt.Errorf("copypasta export: %w", err)
	}
	return c.ReplyFile(c.Sprintf("Exported %d copypastas.", len(copypastas)), &discordgo.File{
		Name:        fmt.Sprintf("copypastas-%s.json", c.GuildID()),
		ContentType: "application/json",
		Reader:      bytes.NewReader(data),
	})
}
