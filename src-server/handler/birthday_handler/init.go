package birthday_handler

import (
	"guildkeeper/src-server/args"
	"guildkeeper/src-server/utils"
)

var (
	flagAdd        = args.Flag{Short: "-a", Long: "--add", Greedy: true}
	flagDelete     = args.Flag{Short: "-d", Long: "--delete"}
	flagList       = args.Flag{Short: "-l", Long: "--list"}
	flagSetChannel = args.Flag{Short: "-sc", Long: "--set-channel"}
	flagNone       = args.Flag{Short: "-n", Long: "--none"}
)

type opHandler func(c *utils.CmdContext, value string) error

// Init registers the "birthday" command.
func Init(as *utils.AppState) {
	ops := map[string]opHandler{
		flagAdd.Long:        add,
		flagDelete.Long:     remove,
		flagList.Long:       list,
		flagSetChannel.Long: setChannel,
		flagNone.Long:       none,
	}

	as.AddCmd(&utils.Cmd{
		Name:    "birthday",
		Aliases: []string{"bday"},
		Usage:   "birthday [member | -a <date> | -d | -l | -sc [#channel] | -n]",
		Description: "Shows your birthday or a member's. Save yours with `-a`, e.g. `-a 1990-03-05`, `-a 05/03` or `-a march 5th`. " +
			"`-l` lists the upcoming ones. `-sc` and `-n` (Manage Server) turn announcements on or off.",
		Handler: func(c *utils.CmdContext) error {
			p := args.Parse(c.Args, flagAdd, flagDelete, flagList, flagSetChannel, flagNone)
			flags := p.Flags()
			switch {
			case len(flags) == 0:
				return show(c, args.Unquote(p.Positional()))
			case len(flags) > 1 || p.Positional() != "":
				return c.Replyf("Invalid argument.")
			}
			value, _ := p.Value(args.Flag{Long: flags[0]})
			if flags[0] == flagSetChannel.Long {
				value, _ = p.ValueOrDefault(flagSetChannel, "<#"+c.ChannelID()+">")
			}
			return ops[flags[0]](c, value)
		},
	})
}
