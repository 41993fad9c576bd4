package copypasta_handler

import (
	"guildkeeper/src-server/args"
	"guildkeeper/src-server/utils"
)

var (
	flagID     = args.Flag{Short: "-i", Long: "--id"}
	flagAdd    = args.Flag{Short: "-a", Long: "--add", Greedy: true}
	flagDelete = args.Flag{Short: "-d", Long: "--delete"}
	flagSearch = args.Flag{Short: "-s", Long: "--search", Greedy: true}
	flagList   = args.Flag{Short: "-l", Long: "--list", Greedy: true}
	flagExport = args.Flag{Short: "-e", Long: "--export"}
	flagImport = args.Flag{Long: "--import"}
)

// the operation handlers get the value of their flag
type opHandler func(c *utils.CmdContext, value string) error

// Init registers the "copypasta" command. The first flag picks the
// operation; without flags it sends a random copypasta, or the one whose ID
// is given.
func Init(as *utils.AppState) {
	ops := map[string]opHandler{
		flagAdd.Long:    add,
		flagDelete.Long: remove,
		flagSearch.Long: search,
		flagList.Long:   list,
		flagExport.Long: export,
		flagImport.Long: importHandler(httpClient),
	}

	as.AddCmd(&utils.Cmd{
		Name:    "copypasta",
		Aliases: []string{"cp"},
		Usage:   "copypasta [[-i] <id> | -a [\"title\"] \"content\" | -d <id, ...> | -s <query> | -l [--id|--title|--content|--count] [-a|-d] | -e | --import]",
		Description: "Sends a random copypasta, or the one with the given ID. " +
			"Copypastas can be added, deleted (Manage Messages), searched, listed, exported to JSON and imported back.",
		Handler: func(c *utils.CmdContext) error {
			p := args.Parse(c.Args, flagID, flagAdd, flagDelete, flagSearch, flagList, flagExport, flagImport)
			flags := p.Flags()
			switch {
			case p.Empty():
				return send(c, "")
			case len(flags) > 1 || len(flags) == 1 && p.Positional() != "":
				return c.Replyf("Invalid argument.")
			case len(flags) == 0 || flags[0] == flagID.Long:
				return send(c, p.ValueOrPositional(flagID))
			}
			value, _ := p.Value(args.Flag{Long: flags[0]})
			return ops[flags[0]](c, value)
		},
	})
}
