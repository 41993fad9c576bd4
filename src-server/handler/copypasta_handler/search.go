package copypasta_handler

import (
	"guildkeeper/src-server/args"
	"guildkeeper/src-server/model"
	"guildkeeper/src-server/utils"
)

var (
	flagOrderID      = args.Flag{Long: "--id"}
	flagOrderTitle   = args.Flag{Long: "--title"}
	flagOrderContent = args.Flag{Long: "--content"}
	flagOrderCount   = args.Flag{Long: "--count"}
	flagAscending    = args.Flag{Short: "-a", Long: "--asc"}
	flagDescending   = args.Flag{Short: "-d", Long: "--desc"}

	orderFields = map[string]model.CopypastaOrderField{
		flagOrderID.Long:      model.CopypastaOrderID,
		flagOrderTitle.Long:   model.CopypastaOrderTitle,
		flagOrderContent.Long: model.CopypastaOrderContent,
		flagOrderCount.Long:   model.CopypastaOrderCount,
	}
)

func replyTable(c *utils.CmdContext, copypastas []model.Copypasta, query string) error {
	for _, msg := range Table(copypastas, query) {
		if err := c.Reply(msg); err != nil {
			return err
		}
	}
	return nil
}

func search(c *utils.CmdContext, value string) error {
	query := args.Unquote(value)
	if query == "" {
		return c.Replyf("Invalid argument.")
	}
	copypastas, err := model.SearchCopypastas(c.Ctx, c.AS.BunDB, c.GuildID(), model.CopypastaSearch{Query: query})
	if err != nil {
		return err
	}
	if len(copypastas) == 0 {
		return c.Replyf("No copypasta matching the query \"%s\" was found in \"%s\".", query, c.GuildName())
	}
	return replyTable(c, copypastas, query)
}

// list sorts by ID unless a field flag is given. Count sorts descending by
// default, the others ascending.
func list(c *utils.CmdContext, value string) error {
	p := args.Parse(value, flagOrderID, flagOrderTitle, flagOrderContent, flagOrderCount, flagAscending, flagDescending)
	if p.Positional() != "" {
		return c.Replyf("Invalid argument.")
	}

	s := model.CopypastaSearch{OrderField: model.CopypastaOrderID, Ascending: true}
	fieldSet, directionSet := false, false
	for _, flag := range p.Flags() {
		if v, _ := p.Value(args.Flag{Long: flag}); v != "" {
			return c.Replyf("Invalid argument.")
		}
		switch flag {
		case flagAscending.Long, flagDescending.Long:
			if directionSet {
				return c.Replyf("Invalid argument.")
			}
			directionSet = true
			s.Ascending = flag == flagAscending.Long
		default:
			if fieldSet {
				return c.Replyf("Invalid argument.")
			}
			fieldSet = true
			s.OrderField = orderFields[flag]
			if !directionSet {
				s.Ascending = s.OrderField != model.CopypastaOrderCount
			}
		}
	}

	copypastas, err := model.SearchCopypastas(c.Ctx, c.AS.BunDB, c.GuildID(), s)
	if err != nil {
		return err
	}
	if len(copypastas) == 0 {
		return c.Replyf("No copypasta was found in \"%s\".", c.GuildName())
	}
	return replyTable(c, copypastas, "")
}
