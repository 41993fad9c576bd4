package utils

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"guildkeeper/src-server/model"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

type AppState struct {
	Config    *Config
	RawDB     *sql.DB
	BunDB     *bun.DB
	DgSession *discordgo.Session
	// same session behind the interface; a fake in tests
	Discord DiscordSession
	When    *when.Parser

	MetricChans        *Metric
	AppCloseSignalChan chan os.Signal

	startTime time.Time

	mu sync.RWMutex
	// message commands by name and alias
	cmds map[string]*Cmd
	// handlers for every message that isn't a command
	responders []Responder
	// buttons, dropdowns, etc
	componentHandler map[string]ComponentHandler
	// temporary component handlers and when they were added, so they can expire
	componentQueue map[uuid.UUID]MsgComponentInfo

	gracefulShutdownChans []chan struct{}
}

// NewAppState opens the database at the configured path and creates the
// Discord session.
func NewAppState(config *Config) (*AppState, error) {
	rawDB, err := sql.Open(sqliteshim.ShimName, config.GetDatabasePath()+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("NewAppState: can't open sqlite database: %w", err)
	}
	rawDB.SetMaxIdleConns(8)

	as := NewAppStateWithDB(config, rawDB)
	as.BunDB.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithVerbose(true),
		bundebug.FromEnv("BUNDEBUG"),
	))

	dg, err := discordgo.New("Bot " + config.GetDiscordAppToken())
	if err != nil {
		return nil, fmt.Errorf("NewAppState: can't create discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsMessageContent
	dg.LogLevel = DiscordgoLogLevel(config.GetLogLevel())
	as.DgSession = dg
	as.Discord = dg

	return as, nil
}

// NewAppStateWithDB wires the state around an already opened database,
// without a Discord session.
func NewAppStateWithDB(config *Config, rawDB *sql.DB) *AppState {
	as := &AppState{
		Config:             config,
		RawDB:              rawDB,
		MetricChans:        NewMetric(),
		AppCloseSignalChan: make(chan os.Signal, 1),
		startTime:          time.Now(),
		cmds:               make(map[string]*Cmd),
		responders:         make([]Responder, 0),
		componentHandler:   make(map[string]ComponentHandler),
		componentQueue:     make(map[uuid.UUID]MsgComponentInfo),
	}

	as.BunDB = bun.NewDB(rawDB, sqlitedialect.New())
	as.BunDB.AddQueryHook(NewMetricQueryHook(as.MetricChans))

	// date parser
	as.When = when.New(nil)
	as.When.Add(en.All...)
	as.When.Add(common.All...)

	return as
}

func (as *AppState) GetUptime() time.Duration {
	return time.Since(as.startTime).Round(time.Second)
}

// GuildSettings loads the guild's settings, falling back to the configured
// defaults when the guild has none or the database fails.
func (as *AppState) GuildSettings(ctx context.Context, guildID string) *model.GuildSettings {
	defaults := as.Config.DefaultGuildSettings()
	settings, _, err := model.GetGuildSettings(ctx, as.BunDB, guildID, defaults)
	if err != nil {
		slog.Warn("can't get guild settings, using defaults", "guild", guildID, "error", err)
		defaults.GuildID = guildID
		return &defaults
	}
	return settings
}

// AddCmd registers a message command under its name and aliases.
func (as *AppState) AddCmd(cmd *Cmd) {
	as.mu.Lock()
	defer as.mu.Unlock()
	for _, name := range append([]string{cmd.Name}, cmd.Aliases...) {
		name = strings.ToLower(name)
		if _, ok := as.cmds[name]; ok {
			slog.Warn("command registered twice", "command", name)
		}
		as.cmds[name] = cmd
	}
}

func (as *AppState) GetCmd(name string) (*Cmd, bool) {
	as.mu.RLock()
	defer as.mu.RUnlock()
	cmd, ok := as.cmds[strings.ToLower(name)]
	return cmd, ok
}

// Cmds lists every registered command once, sorted by name.
func (as *AppState) Cmds() []*Cmd {
	as.mu.RLock()
	defer as.mu.RUnlock()
	seen := make(map[*Cmd]bool, len(as.cmds))
	cmds := make([]*Cmd, 0, len(as.cmds))
	for _, cmd := range as.cmds {
		if !seen[cmd] {
			seen[cmd] = true
			cmds = append(cmds, cmd)
		}
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

func (as *AppState) AddResponder(r Responder) {
	as.mu.Lock()
	defer as.mu.Unlock()
	as.responders = append(as.responders, r)
}

func (as *AppState) Responders() []Responder {
	as.mu.RLock()
	defer as.mu.RUnlock()
	return append([]Responder(nil), as.responders...)
}

// AddComponentHandler registers a temporary handler for a component custom
// ID; it's dropped after componentExpiry if nobody removes it first.
func (as *AppState) AddComponentHandler(id uuid.UUID, h ComponentHandler, data interface{}) {
	as.mu.Lock()
	defer as.mu.Unlock()
	as.componentHandler[id.String()] = h
	as.componentQueue[id] = MsgComponentInfo{DateAdded: time.Now(), Data: data}
}

func (as *AppState) GetComponentHandler(customID string) (ComponentHandler, bool) {
	as.mu.RLock()
	defer as.mu.RUnlock()
	h, ok := as.componentHandler[customID]
	return h, ok
}

func (as *AppState) RemoveComponentHandler(id uuid.UUID) {
	as.mu.Lock()
	defer as.mu.Unlock()
	delete(as.componentHandler, id.String())
	delete(as.componentQueue, id)
}

const componentExpiry = 5 * time.Minute

// ExpireComponentHandlers drops the handlers older than componentExpiry and
// returns how many were dropped.
func (as *AppState) ExpireComponentHandlers(now time.Time) int {
	as.mu.Lock()
	defer as.mu.Unlock()
	expired := 0
	for id, info := range as.componentQueue {
		if now.Sub(info.DateAdded) > componentExpiry {
			delete(as.componentQueue, id)
			delete(as.componentHandler, id.String())
			slog.Debug("component handler removed from queue", "id", id, "data", info.Data)
			expired++
		}
	}
	return expired
}

// RunComponentJanitor expires component handlers until shutdown.
func (as *AppState) RunComponentJanitor(interval time.Duration) {
	gracefulShutdownCh := as.CreateGracefulShutdownChan()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-*gracefulShutdownCh:
			return
		case now := <-ticker.C:
			as.ExpireComponentHandlers(now)
		}
	}
}

// CreateGracefulShutdownChan returns a channel closed by GracefulShutdown.
func (as *AppState) CreateGracefulShutdownChan() *chan struct{} {
	as.mu.Lock()
	defer as.mu.Unlock()
	ch := make(chan struct{})
	as.gracefulShutdownChans = append(as.gracefulShutdownChans, ch)
	return &ch
}

func (as *AppState) GracefulShutdown() {
	as.mu.Lock()
	defer as.mu.Unlock()
	for _, ch := range as.gracefulShutdownChans {
		close(ch)
	}
	as.gracefulShutdownChans = nil
}
