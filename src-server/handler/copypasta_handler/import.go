package copypasta_handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"guildkeeper/src-server/model"
	"guildkeeper/src-server/router"
	"guildkeeper/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// Discord's upload limit without boosts
const importMaxBytes = 25 << 20

var httpClient = &http.Client{Timeout: 30 * time.Second}

// importHandler reads the JSON file attached to the command message and
// appends its copypastas to the guild.
func importHandler(client *http.Client) opHandler {
	return func(c *utils.CmdContext, _ string) error {
		if ok, err := router.RequirePermissions(c, discordgo.PermissionManageMessages); !ok {
			return err
		}
		if len(c.Message.Attachments) == 0 {
			return c.Replyf("Attach a JSON file made with `%scopypasta --export`.", c.Settings.Prefix)
		}
		attachment := c.Message.Attachments[0]

		data, digest, err := utils.FetchAttachment(c.Ctx, client, attachment.URL, importMaxBytes)
		if err != nil {
			slog.Warn("can't fetch attachment", "guild", c.GuildID(), "file", attachment.Filename, "error", err)
			return c.Replyf("Couldn't read the attached file.")
		}
		slog.Info("importing copypastas", "guild", c.GuildID(), "file", attachment.Filename, "sha256", digest)

		rows := make([]model.Copypasta, 0)
		if err := json.Unmarshal(data, &rows); err != nil {
			return c.Replyf("Couldn't read the attached file.")
		}
		added, skipped, err := model.ImportCopypastas(c.Ctx, c.AS.BunDB, c.GuildID(), rows)
		if err != nil {
			return err
		}
		return c.Replyf("Imported %d copypastas, skipped %d.", added, skipped)
	}
}
