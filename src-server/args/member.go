package args

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
)

var (
	ErrNoMatch   = errors.New("token doesn't match the expected syntax")
	ErrNotFound  = errors.New("no member found")
	ErrAmbiguous = errors.New("more than one member matches")
)

var (
	userMentionRegex    = regexp.MustCompile(`^<@!?(\d{15,21})>$`)
	channelMentionRegex = regexp.MustCompile(`^<#(\d{15,21})>$`)
	snowflakeRegex      = regexp.MustCompile(`^\d{15,21}$`)
	userTagRegex        = regexp.MustCompile(`^([^#@:]{2,32})#(\d{4})$`)
)

// max page size of the member search endpoint
const memberSearchLimit = 1000

// The part of the Discord session member resolution needs.
type MemberFetcher interface {
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	GuildMembersSearch(guildID, query string, limit int, options ...discordgo.RequestOption) ([]*discordgo.Member, error)
}

// UserID extracts the ID of a user mention or a raw snowflake.
func UserID(token string) (string, error) {
	if m := userMentionRegex.FindStringSubmatch(token); m != nil {
		return m[1], nil
	}
	if snowflakeRegex.MatchString(token) {
		return token, nil
	}
	return "", ErrNoMatch
}

// ChannelID extracts the ID of a channel mention or a raw snowflake.
func ChannelID(token string) (string, error) {
	if m := channelMentionRegex.FindStringSubmatch(token); m != nil {
		return m[1], nil
	}
	if snowflakeRegex.MatchString(token) {
		return token, nil
	}
	return "", ErrNoMatch
}

// UserTag splits "name#1234".
func UserTag(token string) (name string, discriminator string, err error) {
	m := userTagRegex.FindStringSubmatch(token)
	if m == nil {
		return "", "", ErrNoMatch
	}
	return m[1], m[2], nil
}

// Tag formats a user the way UserTag reads it; users on the new username
// system have no discriminator.
func Tag(u *discordgo.User) string {
	if u.Discriminator == "" || u.Discriminator == "0" {
		return u.Username
	}
	return u.Username + "#" + u.Discriminator
}

// MatchesUser reports whether token names u by mention, ID, tag, username
// or global name.
func MatchesUser(u *discordgo.User, token string) bool {
	if u == nil {
		return false
	}
	if id, err := UserID(token); err == nil {
		return id == u.ID
	}
	if name, discriminator, err := UserTag(token); err == nil {
		return strings.EqualFold(name, u.Username) && discriminator == u.Discriminator
	}
	return strings.EqualFold(token, u.Username) ||
		(u.GlobalName != "" && strings.EqualFold(token, u.GlobalName))
}

// IsNotFound reports whether err is a 404 from the Discord API.
func IsNotFound(err error) bool {
	var restErr *discordgo.RESTError
	return errors.As(err, &restErr) &&
		restErr.Response != nil &&
		restErr.Response.StatusCode == http.StatusNotFound
}

// ResolveMember finds the guild member a token refers to: a mention or ID,
// a name#discriminator tag, or a username, global name or nickname.
func ResolveMember(ctx context.Context, f MemberFetcher, guildID, token string) (*discordgo.Member, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrNoMatch
	}

	if userID, err := UserID(token); err == nil {
		member, err := f.GuildMember(guildID, userID, discordgo.WithContext(ctx))
		if err != nil {
			if IsNotFound(err) {
				return nil, fmt.Errorf("ResolveMember: %s: %w", token, ErrNotFound)
			}
			return nil, fmt.Errorf("ResolveMember: %w", err)
		}
		return member, nil
	}

	if name, discriminator, err := UserTag(token); err == nil {
		members, err := f.GuildMembersSearch(guildID, name, memberSearchLimit, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("ResolveMember: %w", err)
		}
		for _, member := range members {
			if member.User != nil &&
				strings.EqualFold(member.User.Username, name) &&
				member.User.Discriminator == discriminator {
				return member, nil
			}
		}
		return nil, fmt.Errorf("ResolveMember: %s: %w", token, ErrNotFound)
	}

	members, err := f.GuildMembersSearch(guildID, token, memberSearchLimit, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("ResolveMember: %w", err)
	}
	exact := make([]*discordgo.Member, 0)
	for _, member := range members {
		if member.User == nil {
			continue
		}
		if strings.EqualFold(member.User.Username, token) ||
			strings.EqualFold(member.User.GlobalName, token) ||
			strings.EqualFold(member.Nick, token) {
			exact = append(exact, member)
		}
	}
	switch {
	case len(exact) == 1:
		return exact[0], nil
	case len(exact) > 1:
		return nil, fmt.Errorf("ResolveMember: %s: %w", token, ErrAmbiguous)
	case len(members) == 1 && members[0].User != nil:
		return members[0], nil
	case len(members) > 1:
		return nil, fmt.Errorf("ResolveMember: %s: %w", token, ErrAmbiguous)
	}
	return nil, fmt.Errorf("ResolveMember: %s: %w", token, ErrNotFound)
}

// ResolveMembers resolves every token, skipping duplicates. Tokens that
// match no member, or more than one, are returned as unresolved; any other
// error aborts.
func ResolveMembers(ctx context.Context, f MemberFetcher, guildID string, tokens []string) (members []*discordgo.Member, unresolved []string, err error) {
	members = make([]*discordgo.Member, 0, len(tokens))
	unresolved = make([]string, 0)
	seen := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		member, err := ResolveMember(ctx, f, guildID, token)
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrAmbiguous), errors.Is(err, ErrNoMatch):
			unresolved = append(unresolved, token)
			continue
		case err != nil:
			return nil, nil, err
		}
		if member.User == nil || seen[member.User.ID] {
			continue
		}
		seen[member.User.ID] = true
		members = append(members, member)
	}
	return members, unresolved, nil
}
