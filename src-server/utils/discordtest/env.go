package discordtest

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"guildkeeper/src-server/locale"
	"guildkeeper/src-server/model"
	"guildkeeper/src-server/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun/driver/sqliteshim"
)

const (
	GuildID   = "900000000000000001"
	ChannelID = "900000000000000002"
)

var (
	Bot    = &discordgo.User{ID: "800000000000000001", Username: "guildkeeper", Discriminator: "0", Bot: true}
	Owner  = &discordgo.User{ID: "800000000000000002", Username: "owner", Discriminator: "0"}
	Mod    = &discordgo.User{ID: "800000000000000003", Username: "mod", Discriminator: "0"}
	Member = &discordgo.User{ID: "800000000000000004", Username: "member", Discriminator: "1234", GlobalName: "Some Member"}
	Other  = &discordgo.User{ID: "800000000000000005", Username: "other", Discriminator: "0"}
)

// Env is a guild with an owner, a moderator with every moderation
// permission and two regular members, backed by an in-memory database.
type Env struct {
	T       *testing.T
	AS      *utils.AppState
	Session *Session
	Guild   *discordgo.Guild
}

func NewAppState(t *testing.T, env map[string]string) *utils.AppState {
	t.Helper()
	if env == nil {
		env = map[string]string{}
	}
	if env["DISCORD_APP_TOKEN"] == "" {
		env["DISCORD_APP_TOKEN"] = "token"
	}
	config, err := utils.NewConfigFromLookup(func(key string) string { return env[key] })
	require.NoError(t, err)

	rawDB, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	rawDB.SetMaxOpenConns(1)
	t.Cleanup(func() { rawDB.Close() })

	as := utils.NewAppStateWithDB(config, rawDB)
	require.NoError(t, model.CreateSchema(context.Background(), as.BunDB))
	return as
}

func NewEnv(t *testing.T) *Env {
	t.Helper()
	s := New()
	as := NewAppState(t, nil)
	as.Discord = s

	g := s.AddGuild(GuildID, "Test Guild", Owner.ID, ChannelID)
	for _, u := range []*discordgo.User{Bot, Owner, Mod, Member, Other} {
		s.AddMember(GuildID, u, "")
	}
	s.Permissions[Mod.ID] = discordgo.PermissionManageMessages |
		discordgo.PermissionKickMembers |
		discordgo.PermissionBanMembers |
		discordgo.PermissionManageServer
	s.Permissions[Owner.ID] = discordgo.PermissionAdministrator
	s.Permissions[Bot.ID] = discordgo.PermissionAdministrator

	return &Env{T: t, AS: as, Session: s, Guild: g}
}

// Context builds what the router would hand a command sent by author in
// the test channel.
func (e *Env) Context(author *discordgo.User, name, args string) *utils.CmdContext {
	e.T.Helper()
	ctx := context.Background()
	msg := e.Session.AddMessage(ChannelID, author, "./"+name+" "+args, time.Now())
	msg.GuildID = GuildID
	settings := e.AS.GuildSettings(ctx, GuildID)
	return &utils.CmdContext{
		Ctx:      ctx,
		AS:       e.AS,
		Session:  e.Session,
		Message:  msg,
		BotUser:  Bot,
		Guild:    e.Guild,
		Settings: settings,
		Printer:  locale.PrinterFor(settings.Locale),
		Name:     name,
		Args:     args,
	}
}

// SetSettings stores guild settings, filling blanks with the defaults.
func (e *Env) SetSettings(settings model.GuildSettings) {
	e.T.Helper()
	defaults := e.AS.Config.DefaultGuildSettings()
	settings.GuildID = GuildID
	if settings.Prefix == "" {
		settings.Prefix = defaults.Prefix
	}
	if settings.Locale == "" {
		settings.Locale = defaults.Locale
	}
	if settings.Timezone == "" {
		settings.Timezone = defaults.Timezone
	}
	require.NoError(e.T, settings.Upsert(context.Background(), e.AS.BunDB))
}
