package copypasta_handler

import (
	"strconv"

	"guildkeeper/src-server/args"
	"guildkeeper/src-server/model"
	"guildkeeper/src-server/utils"
)

// add stores `"title" "content"`, or just content titled after its first
// few words.
func add(c *utils.CmdContext, value string) error {
	title, content := args.ParseQuotedPair(value)
	if content == "" {
		return c.Replyf("Invalid argument.")
	}
	if title == "" {
		title = args.FirstFewWords(content)
	}

	cp := &model.Copypasta{
		GuildID:  c.GuildID(),
		Title:    title,
		Content:  content,
		AuthorID: c.Author().ID,
	}
	if err := cp.Add(c.Ctx, c.AS.BunDB); err != nil {
		return err
	}
	return c.Replyf("\"%s\" added with ID %s!", cp.Title, strconv.FormatInt(cp.ID, 10))
}
