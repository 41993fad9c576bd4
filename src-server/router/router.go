package router

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode"

	"guildkeeper/src-server/args"
	"guildkeeper/src-server/locale"
	"guildkeeper/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// MessageCreate is the discordgo handler for new messages.
func MessageCreate(as *utils.AppState) func(s *discordgo.Session, m *discordgo.MessageCreate) {
	return func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m == nil || m.Message == nil || s.State == nil || s.State.User == nil {
			return
		}
		Dispatch(context.Background(), as, s.State.User, m.Message)
	}
}

// SplitCommand reads "<prefix>name args" or "<@bot> name args".
func SplitCommand(content, prefix, botID string) (name string, args string, ok bool) {
	content = strings.TrimLeftFunc(content, unicode.IsSpace)
	var rest string
	switch {
	case prefix != "" && strings.HasPrefix(content, prefix):
		rest = content[len(prefix):]
	case botID != "" && strings.HasPrefix(content, "<@"+botID+">"):
		rest = strings.TrimLeftFunc(content[len("<@"+botID+">"):], unicode.IsSpace)
	case botID != "" && strings.HasPrefix(content, "<@!"+botID+">"):
		rest = strings.TrimLeftFunc(content[len("<@!"+botID+">"):], unicode.IsSpace)
	default:
		return "", "", false
	}

	end := strings.IndexFunc(rest, unicode.IsSpace)
	if end < 0 {
		end = len(rest)
	}
	name = rest[:end]
	if name == "" {
		return "", "", false
	}
	return name, strings.TrimSpace(rest[end:]), true
}

// HasPermissions reports whether the user has every bit of required in the
// channel. Administrators always do.
func HasPermissions(s utils.DiscordSession, userID, channelID string, required int64) (bool, error) {
	if required == 0 {
		return true, nil
	}
	perms, err := s.UserChannelPermissions(userID, channelID)
	if err != nil {
		return false, err
	}
	if perms&discordgo.PermissionAdministrator != 0 {
		return true, nil
	}
	return perms&required == required, nil
}

func guild(ctx context.Context, as *utils.AppState, guildID string) *discordgo.Guild {
	if as.DgSession != nil && as.DgSession.State != nil {
		if g, err := as.DgSession.State.Guild(guildID); err == nil {
			return g
		}
	}
	g, err := as.Discord.Guild(guildID, discordgo.WithContext(ctx))
	if err != nil {
		slog.Warn("can't get guild", "guild", guildID, "error", err)
		return &discordgo.Guild{ID: guildID}
	}
	return g
}

// Dispatch runs the command in msg, if any, then the responders. Bots and
// DMs are ignored.
func Dispatch(ctx context.Context, as *utils.AppState, botUser *discordgo.User, msg *discordgo.Message) {
	if msg.Author == nil || msg.Author.Bot || msg.GuildID == "" {
		return
	}

	settings := as.GuildSettings(ctx, msg.GuildID)
	c := &utils.CmdContext{
		Ctx:      ctx,
		AS:       as,
		Session:  as.Discord,
		Message:  msg,
		BotUser:  botUser,
		Settings: settings,
		Printer:  locale.PrinterFor(settings.Locale),
	}

	if name, args, ok := SplitCommand(msg.Content, settings.Prefix, botUser.ID); ok {
		runCommand(c, name, args)
	}
	runResponders(as, c)
}

func runCommand(c *utils.CmdContext, name, args string) {
	as, msg := c.AS, c.Message
	cmd, ok := as.GetCmd(name)
	if !ok {
		slog.Debug("unknown command", "command", name, "guild", msg.GuildID)
		return
	}
	c.Name = name
	c.Args = args
	c.Guild = guild(c.Ctx, as, msg.GuildID)

	allowed, err := HasPermissions(c.Session, msg.Author.ID, msg.ChannelID, cmd.Permissions)
	if err != nil {
		slog.Warn("can't check permissions", "command", cmd.Name, "user", msg.Author.ID, "error", err)
	}
	if !allowed {
		if err := c.Replyf("Sorry %s, you don't have the permissions required to use this command.", msg.Author.Mention()); err != nil {
			slog.Warn("can't respond", "handler", cmd.Name, "error", err)
		}
		return
	}

	as.MetricChans.CountCommand(cmd.Name)
	if err := cmd.Handler(c); err != nil {
		slog.Error("handler error", "command", cmd.Name, "guild", msg.GuildID, "error", err)
		if err := c.Replyf("Something went wrong while running this command."); err != nil {
			slog.Warn("can't respond", "handler", cmd.Name, "error", err)
		}
	}
}

func runResponders(as *utils.AppState, c *utils.CmdContext) {
	for _, responder := range as.Responders() {
		handled, err := responder(c)
		if err != nil {
			slog.Warn("responder error", "guild", c.GuildID(), "error", err)
		}
		if handled {
			return
		}
	}
}

// RequirePermissions is HasPermissions for the author of a command that only
// needs the permissions for some of its options. It replies with the
// permission error when they're missing.
func RequirePermissions(c *utils.CmdContext, required int64) (bool, error) {
	allowed, err := HasPermissions(c.Session, c.Author().ID, c.ChannelID(), required)
	if err != nil {
		slog.Warn("can't check permissions", "command", c.Name, "user", c.Author().ID, "error", err)
	}
	if allowed {
		return true, nil
	}
	return false, c.Replyf("Sorry %s, you don't have the permissions required to use this command.", c.Author().Mention())
}

// ReplyResolveError answers the user's side of a failed member lookup;
// handled is false for backend errors.
func ReplyResolveError(c *utils.CmdContext, token string, err error) (handled bool, replyErr error) {
	switch {
	case errors.Is(err, args.ErrAmbiguous):
		return true, c.Replyf("More than one member matches `%s`, use a mention or their ID.", token)
	case errors.Is(err, args.ErrNotFound), errors.Is(err, args.ErrNoMatch):
		return true, c.Replyf("Couldn't find a member matching `%s`.", token)
	}
	return false, nil
}
