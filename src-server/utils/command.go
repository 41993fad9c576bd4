package utils

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"guildkeeper/src-server/model"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/message"
)

// MessageLimit is the max length of a Discord message.
const MessageLimit = 2000

type CmdHandler func(c *CmdContext) error

// Responder looks at messages that aren't commands; handled stops the
// remaining responders.
type Responder func(c *CmdContext) (handled bool, err error)

type Cmd struct {
	Name    string
	Aliases []string
	// shown by help, without the prefix: "purge <amount|all>"
	Usage       string
	Description string
	// discordgo.Permission* bits the author needs in the channel, 0 for none
	Permissions int64
	Handler     CmdHandler
}

// CmdContext is what a command handler gets for one message.
type CmdContext struct {
	Ctx      context.Context
	AS       *AppState
	Session  DiscordSession
	Message  *discordgo.Message
	BotUser  *discordgo.User
	Guild    *discordgo.Guild
	Settings *model.GuildSettings
	Printer  *message.Printer

	// the command as typed, without the prefix, and the text after it
	Name string
	Args string
}

func (c *CmdContext) GuildID() string {
	return c.Message.GuildID
}

func (c *CmdContext) ChannelID() string {
	return c.Message.ChannelID
}

func (c *CmdContext) Author() *discordgo.User {
	return c.Message.Author
}

// Location is the guild's timezone.
func (c *CmdContext) Location() *time.Location {
	return c.Settings.Location()
}

// GuildName is the guild's name, or its ID when unknown.
func (c *CmdContext) GuildName() string {
	if c.Guild != nil && c.Guild.Name != "" {
		return c.Guild.Name
	}
	return c.Message.GuildID
}

// SaveSettings applies update to a copy of the guild's settings, stores it
// and makes it the context's settings.
func (c *CmdContext) SaveSettings(update func(s *model.GuildSettings)) error {
	settings := *c.Settings
	settings.GuildID = c.GuildID()
	update(&settings)
	if err := settings.Upsert(c.Ctx, c.AS.BunDB); err != nil {
		return err
	}
	c.Settings = &settings
	return nil
}

// Sprintf formats a reply in the guild's locale.
func (c *CmdContext) Sprintf(key string, a ...interface{}) string {
	return c.Printer.Sprintf(key, a...)
}

func (c *CmdContext) observeSend(start time.Time) {
	if c.AS != nil {
		c.AS.MetricChans.ObserveDiscordSend(time.Since(start))
	}
}

// Reply sends content to the command's channel, split in as many messages
// as needed.
func (c *CmdContext) Reply(content string) error {
	for _, chunk := range SplitMessage(content, MessageLimit) {
		start := time.Now()
		if _, err := c.Session.ChannelMessageSendComplex(c.ChannelID(), &discordgo.MessageSend{
			Content:         chunk,
			AllowedMentions: &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeUsers}},
		}, discordgo.WithContext(c.Ctx)); err != nil {
			return fmt.Errorf("(*CmdContext).Reply: %w", err)
		}
		c.observeSend(start)
	}
	return nil
}

// Replyf is Reply with a localized format string.
func (c *CmdContext) Replyf(key string, a ...interface{}) error {
	return c.Reply(c.Sprintf(key, a...))
}

func (c *CmdContext) ReplyEmbed(embed *discordgo.MessageEmbed) error {
	start := time.Now()
	if _, err := c.Session.ChannelMessageSendEmbed(c.ChannelID(), embed, discordgo.WithContext(c.Ctx)); err != nil {
		return fmt.Errorf("(*CmdContext).ReplyEmbed: %w", err)
	}
	c.observeSend(start)
	return nil
}

func (c *CmdContext) ReplyFile(content string, file *discordgo.File) error {
	start := time.Now()
	if _, err := c.Session.ChannelMessageSendComplex(c.ChannelID(), &discordgo.MessageSend{
		Content: content,
		Files:   []*discordgo.File{file},
	}, discordgo.WithContext(c.Ctx)); err != nil {
		return fmt.Errorf("(*CmdContext).ReplyFile: %w", err)
	}
	c.observeSend(start)
	return nil
}

// SplitMessage cuts s into chunks of at most limit bytes, preferring line
// breaks and never splitting a rune.
func SplitMessage(s string, limit int) []string {
	if len(s) <= limit {
		return []string{s}
	}
	chunks := make([]string, 0, len(s)/limit+1)
	for len(s) > limit {
		cut := strings.LastIndexByte(s[:limit], '\n')
		if cut <= 0 {
			cut = limit
			for cut > 0 && !utf8.RuneStart(s[cut]) {
				cut--
			}
			chunks = append(chunks, s[:cut])
			s = s[cut:]
			continue
		}
		chunks = append(chunks, s[:cut])
		s = s[cut+1:]
	}
	if s != "" {
		chunks = append(chunks, s)
	}
	return chunks
}
