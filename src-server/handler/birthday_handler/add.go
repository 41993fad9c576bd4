package birthday_handler

import (
	"regexp"
	"strconv"
	"time"

	"guildkeeper/src-server/args"
	"guildkeeper/src-server/model"
	"guildkeeper/src-server/utils"

	"github.com/olebedev/when"
)

var (
	// "2" and "1" also read two digits, so 05/03 and 5/3 both match
	dateLayouts = []struct {
		layout  string
		hasYear bool
	}{
		{"2006-01-02", true},
		{"2/1/2006", true},
		{"2/1", false},
	}
	// digits only, never handed to the natural language parser
	numericDateRegex = regexp.MustCompile(`^[\d/\-.]+$`)
	yearRegex        = regexp.MustCompile(`\b\d{4}\b`)
)

// parseDate reads a birthday. Natural language dates only keep their year
// when it was written out, "march 5th" alone has no year.
func parseDate(w *when.Parser, s string, now time.Time) (month, day, year int, ok bool) {
	for _, l := range dateLayouts {
		t, err := time.Parse(l.layout, s)
		if err != nil {
			continue
		}
		if l.hasYear {
			year = t.Year()
		}
		return int(t.Month()), t.Day(), year, true
	}
	if w == nil || numericDateRegex.MatchString(s) {
		return 0, 0, 0, false
	}

	r, err := w.Parse(s, now)
	if err != nil || r == nil {
		return 0, 0, 0, false
	}
	if m := yearRegex.FindString(s); m != "" {
		if y, _ := strconv.Atoi(m); y == r.Time.Year() {
			year = y
		}
	}
	return int(r.Time.Month()), r.Time.Day(), year, true
}

func add(c *utils.CmdContext, value string) error {
	value = args.Unquote(value)
	if value == "" {
		return c.Replyf("Invalid argument.")
	}

	month, day, year, ok := parseDate(c.AS.When, value, time.Now().In(c.Location()))
	b := &model.Birthday{
		GuildID: c.GuildID(),
		UserID:  c.Author().ID,
		Month:   month,
		Day:     day,
		Year:    year,
	}
	if !ok || b.Validate() != nil {
		return c.Replyf("Couldn't read the date `%s`, try `YYYY-MM-DD`, `DD/MM` or `march 5th`.", value)
	}
	if err := b.Upsert(c.Ctx, c.AS.BunDB); err != nil {
		return err
	}
	return c.Replyf("Birthday saved: %s.", formatDate(c, b.Month, b.Day, b.Year))
}

func remove(c *utils.CmdContext, value string) error {
	if value != "" {
		return c.Replyf("Invalid argument.")
	}
	deleted, err := model.DeleteBirthday(c.Ctx, c.AS.BunDB, c.GuildID(), c.Author().ID)
	if err != nil {
		return err
	}
	if !deleted {
		return c.Replyf("No birthday saved for %s.", c.Author().Mention())
	}
	return c.Replyf("Birthday removed.")
}
