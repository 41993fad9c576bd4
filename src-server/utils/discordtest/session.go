// Package discordtest fakes the Discord REST API for handler tests.
package discordtest

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"guildkeeper/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// Sent is one message the bot sent.
type Sent struct {
	ChannelID string
	Content   string
	Embeds    []*discordgo.MessageEmbed
	Files     []*discordgo.File
	Buttons   []discordgo.Button
}

// Action is a kick, ban or unban.
type Action struct {
	GuildID string
	UserID  string
	Reason  string
}

// Session is an in-memory utils.DiscordSession. Messages the bot sends are
// recorded in Sent but never stored in the channel.
type Session struct {
	mu sync.Mutex

	Guilds      map[string]*discordgo.Guild
	Channels    map[string]*discordgo.Channel
	Members     map[string][]*discordgo.Member   // by guild
	Messages    map[string][]*discordgo.Message  // by channel, oldest first
	Bans        map[string][]*discordgo.GuildBan // by guild
	Permissions map[string]int64                 // by user
	DMClosed    map[string]bool                  // users that don't accept DMs
	Latency     time.Duration

	Sent         []Sent
	Edits        []*discordgo.MessageEdit
	Deleted      []string
	BulkDeleted  [][]string
	Kicked       []Action
	Banned       []Action
	Unbanned     []Action
	Responses    []*discordgo.InteractionResponse
	PageRequests int

	// every call fails with Err when set
	Err error

	lastID int64
}

var _ utils.DiscordSession = (*Session)(nil)

func New() *Session {
	return &Session{
		Guilds:      make(map[string]*discordgo.Guild),
		Channels:    make(map[string]*discordgo.Channel),
		Members:     make(map[string][]*discordgo.Member),
		Messages:    make(map[string][]*discordgo.Message),
		Bans:        make(map[string][]*discordgo.GuildBan),
		Permissions: make(map[string]int64),
		DMClosed:    make(map[string]bool),
		Latency:     42 * time.Millisecond,
	}
}

func notFound(what string) error {
	return &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusNotFound, Status: "404 Not Found"},
		Message:  &discordgo.APIErrorMessage{Code: 10000, Message: "Unknown " + what},
	}
}

// nextID hands out increasing snowflakes for the given time.
func (s *Session) nextID(at time.Time) string {
	id := snowflakeAt(at)
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

// AddGuild registers a guild and its text channels.
func (s *Session) AddGuild(guildID, name, ownerID string, channelIDs ...string) *discordgo.Guild {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := &discordgo.Guild{ID: guildID, Name: name, OwnerID: ownerID}
	s.Guilds[guildID] = g
	for _, channelID := range channelIDs {
		s.Channels[channelID] = &discordgo.Channel{ID: channelID, GuildID: guildID, Name: "channel-" + channelID, Type: discordgo.ChannelTypeGuildText}
	}
	return g
}

func (s *Session) AddMember(guildID string, user *discordgo.User, nick string) *discordgo.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := &discordgo.Member{GuildID: guildID, User: user, Nick: nick}
	s.Members[guildID] = append(s.Members[guildID], m)
	return m
}

// AddMessage stores a message sent at the given time in a channel.
func (s *Session) AddMessage(channelID string, author *discordgo.User, content string, at time.Time) *discordgo.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := &discordgo.Message{
		ID:        s.nextID(at),
		ChannelID: channelID,
		Content:   content,
		Author:    author,
		Timestamp: at,
	}
	if ch, ok := s.Channels[channelID]; ok {
		m.GuildID = ch.GuildID
	}
	s.Messages[channelID] = append(s.Messages[channelID], m)
	return m
}

func (s *Session) AddBan(guildID string, user *discordgo.User, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Bans[guildID] = append(s.Bans[guildID], &discordgo.GuildBan{User: user, Reason: reason})
}

// SentTo lists the contents sent to a channel.
func (s *Session) SentTo(channelID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0)
	for _, sent := range s.Sent {
		if sent.ChannelID == channelID {
			out = append(out, sent.Content)
		}
	}
	return out
}

// LastSent is the last message sent anywhere.
func (s *Session) LastSent() Sent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Sent) == 0 {
		return Sent{}
	}
	return s.Sent[len(s.Sent)-1]
}

func (s *Session) send(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	sent := Sent{ChannelID: channelID, Content: data.Content, Embeds: data.Embeds, Files: data.Files}
	if data.Embed != nil {
		sent.Embeds = append(sent.Embeds, data.Embed)
	}
	for _, row := range data.Components {
		if r, ok := row.(discordgo.ActionsRow); ok {
			for _, c := range r.Components {
				if b, ok := c.(discordgo.Button); ok {
					sent.Buttons = append(sent.Buttons, b)
				}
			}
		}
	}
	s.Sent = append(s.Sent, sent)
	return &discordgo.Message{ID: s.nextID(time.Now()), ChannelID: channelID, Content: data.Content}, nil
}

func (s *Session) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	return s.send(channelID, &discordgo.MessageSend{Content: content})
}

func (s *Session) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	return s.send(channelID, &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{embed}})
}

func (s *Session) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	return s.send(channelID, data)
}

func (s *Session) ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.Edits = append(s.Edits, m)
	return &discordgo.Message{ID: m.ID, ChannelID: m.Channel}, nil
}

// ChannelMessages pages like Discord does: newest first, `before` returns
// the newest messages older than it, `after` the oldest newer than it.
func (s *Session) ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.PageRequests++
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	all := s.Messages[channelID]
	page := make([]*discordgo.Message, 0, limit)
	if afterID != "" {
		for _, m := range all {
			if utils.SnowflakeLess(afterID, m.ID) {
				page = append(page, m)
				if len(page) == limit {
					break
				}
			}
		}
	} else {
		for i := len(all) - 1; i >= 0; i-- {
			if beforeID == "" || utils.SnowflakeLess(all[i].ID, beforeID) {
				page = append(page, all[i])
				if len(page) == limit {
					break
				}
			}
		}
	}
	sort.Slice(page, func(i, j int) bool { return utils.SnowflakeLess(page[j].ID, page[i].ID) })
	return page, nil
}

func (s *Session) deleteLocked(channelID, messageID string) bool {
	msgs := s.Messages[channelID]
	for i, m := range msgs {
		if m.ID == messageID {
			s.Messages[channelID] = append(msgs[:i:i], msgs[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Session) ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if !s.deleteLocked(channelID, messageID) {
		return notFound("Message")
	}
	s.Deleted = append(s.Deleted, messageID)
	return nil
}

// ChannelMessagesBulkDelete follows discordgo: one ID is a single delete,
// more than 100 are truncated. Like Discord it refuses messages older than
// two weeks.
func (s *Session) ChannelMessagesBulkDelete(channelID string, messages []string, options ...discordgo.RequestOption) error {
	switch {
	case len(messages) == 0:
		return nil
	case len(messages) == 1:
		return s.ChannelMessageDelete(channelID, messages[0])
	case len(messages) > 100:
		messages = messages[:100]
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, id := range messages {
		ts, err := discordgo.SnowflakeTimestamp(id)
		if err != nil {
			return err
		}
		if time.Since(ts) > 14*24*time.Hour {
			return fmt.Errorf("bulk delete: message %s is older than 2 weeks", id)
		}
	}
	for _, id := range messages {
		s.deleteLocked(channelID, id)
	}
	s.BulkDeleted = append(s.BulkDeleted, append([]string(nil), messages...))
	return nil
}

func (s *Session) Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if ch, ok := s.Channels[channelID]; ok {
		return ch, nil
	}
	return nil, notFound("Channel")
}

func (s *Session) Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if g, ok := s.Guilds[guildID]; ok {
		return g, nil
	}
	return nil, notFound("Guild")
}

func (s *Session) GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, m := range s.Members[guildID] {
		if m.User.ID == userID {
			return m, nil
		}
	}
	return nil, notFound("Member")
}

// GuildMembersSearch matches the start of usernames and nicknames.
func (s *Session) GuildMembersSearch(guildID, query string, limit int, options ...discordgo.RequestOption) ([]*discordgo.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	query = strings.ToLower(query)
	out := make([]*discordgo.Member, 0)
	for _, m := range s.Members[guildID] {
		if strings.HasPrefix(strings.ToLower(m.User.Username), query) ||
			(m.Nick != "" && strings.HasPrefix(strings.ToLower(m.Nick), query)) {
			out = append(out, m)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *Session) removeMemberLocked(guildID, userID string) {
	members := s.Members[guildID]
	for i, m := range members {
		if m.User.ID == userID {
			s.Members[guildID] = append(members[:i:i], members[i+1:]...)
			return
		}
	}
}

func (s *Session) GuildMemberDeleteWithReason(guildID, userID, reason string, options ...discordgo.RequestOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.removeMemberLocked(guildID, userID)
	s.Kicked = append(s.Kicked, Action{guildID, userID, reason})
	return nil
}

func (s *Session) GuildBanCreateWithReason(guildID, userID, reason string, days int, options ...discordgo.RequestOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	user := &discordgo.User{ID: userID}
	for _, m := range s.Members[guildID] {
		if m.User.ID == userID {
			user = m.User
		}
	}
	s.removeMemberLocked(guildID, userID)
	s.Bans[guildID] = append(s.Bans[guildID], &discordgo.GuildBan{User: user, Reason: reason})
	s.Banned = append(s.Banned, Action{guildID, userID, reason})
	return nil
}

// GuildBans pages through bans sorted by user ID.
func (s *Session) GuildBans(guildID string, limit int, beforeID, afterID string, options ...discordgo.RequestOption) ([]*discordgo.GuildBan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.PageRequests++
	bans := append([]*discordgo.GuildBan(nil), s.Bans[guildID]...)
	sort.Slice(bans, func(i, j int) bool { return utils.SnowflakeLess(bans[i].User.ID, bans[j].User.ID) })
	out := make([]*discordgo.GuildBan, 0)
	for _, b := range bans {
		if afterID != "" && !utils.SnowflakeLess(afterID, b.User.ID) {
			continue
		}
		if beforeID != "" && !utils.SnowflakeLess(b.User.ID, beforeID) {
			continue
		}
		out = append(out, b)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *Session) GuildBanDelete(guildID, userID string, options ...discordgo.RequestOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	bans := s.Bans[guildID]
	for i, b := range bans {
		if b.User.ID == userID {
			s.Bans[guildID] = append(bans[:i:i], bans[i+1:]...)
			s.Unbanned = append(s.Unbanned, Action{GuildID: guildID, UserID: userID})
			return nil
		}
	}
	return notFound("Ban")
}

// UserChannelCreate opens a DM channel with ID "dm-<user id>".
func (s *Session) UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.DMClosed[recipientID] {
		return nil, &discordgo.RESTError{
			Response: &http.Response{StatusCode: http.StatusForbidden, Status: "403 Forbidden"},
			Message:  &discordgo.APIErrorMessage{Code: 50007, Message: "Cannot send messages to this user"},
		}
	}
	return &discordgo.Channel{ID: "dm-" + recipientID, Type: discordgo.ChannelTypeDM}, nil
}

func (s *Session) UserChannelPermissions(userID, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return s.Permissions[userID], nil
}

func (s *Session) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Responses = append(s.Responses, resp)
	return nil
}

func (s *Session) HeartbeatLatency() time.Duration {
	return s.Latency
}
