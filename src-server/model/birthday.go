package model

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/uptrace/bun"
	"github.com/xyedo/rrule"
)

type Birthday struct {
	bun.BaseModel `bun:"table:birthdays"`

	GuildID string `bun:"guild_id,pk"` // required
	UserID  string `bun:"user_id,pk"`  // required
	Month   int    `bun:"month,notnull"`
	Day     int    `bun:"day,notnull"`
	Year    int    `bun:"year"` // 0 when unknown

	LastAnnouncedYear int `bun:"last_announced_year,notnull,default:0"`
}

func (b *Birthday) Validate() error {
	if b.Month < 1 || b.Month > 12 {
		return fmt.Errorf("month %d is out of range", b.Month)
	}
	year := b.Year
	if year == 0 {
		year = 2000 // leap year, so February 29th is accepted
	}
	date := time.Date(year, time.Month(b.Month), b.Day, 0, 0, 0, 0, time.UTC)
	if b.Day < 1 || date.Month() != time.Month(b.Month) {
		return fmt.Errorf("day %d doesn't exist in month %d", b.Day, b.Month)
	}
	if b.Year != 0 && date.After(time.Now()) {
		return fmt.Errorf("birthday is in the future")
	}
	return nil
}

func (b *Birthday) Upsert(ctx context.Context, db bun.IDB) error {
	switch {
	case b.GuildID == "":
		return fmt.Errorf("(*Birthday).Upsert: guild id is blank")
	case b.UserID == "":
		return fmt.Errorf("(*Birthday).Upsert: user id is blank")
	}
	if err := b.Validate(); err != nil {
		return fmt.Errorf("(*Birthday).Upsert: %w", err)
	}

	if _, err := db.NewInsert().
		Model(b).
		On("CONFLICT (guild_id, user_id) DO UPDATE").
		Set("month = EXCLUDED.month").
		Set("day = EXCLUDED.day").
		Set("year = EXCLUDED.year").
		Exec(ctx); err != nil {
		return fmt.Errorf("(*Birthday).Upsert: %w", err)
	}
	return nil
}

// NextOccurrence returns the start of the next birthday on or after the
// day of `after`, in after's location. February 29th falls back to the
// last day of February in common years.
func (b *Birthday) NextOccurrence(after time.Time) (time.Time, error) {
	loc := after.Location()
	today := time.Date(after.Year(), after.Month(), after.Day(), 0, 0, 0, 0, loc)

	monthDay := b.Day
	if b.Month == 2 && b.Day == 29 {
		monthDay = -1
	}
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:       rrule.YEARLY,
		Dtstart:    time.Date(today.Year()-1, 1, 1, 0, 0, 0, 0, loc),
		Bymonth:    []int{b.Month},
		Bymonthday: []int{monthDay},
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("(*Birthday).NextOccurrence: %w", err)
	}
	next := rule.After(today, true)
	if next.IsZero() {
		return time.Time{}, fmt.Errorf("(*Birthday).NextOccurrence: no occurrence after %s", today)
	}
	return next, nil
}

// Age the user turns at the given occurrence; 0 when the year is unknown.
func (b *Birthday) Age(occurrence time.Time) int {
	if b.Year == 0 {
		return 0
	}
	return occurrence.Year() - b.Year
}

func GetBirthday(ctx context.Context, db bun.IDB, guildID, userID string) (*Birthday, error) {
	b := new(Birthday)
	if err := db.NewSelect().
		Model(b).
		Where("guild_id = ?", guildID).
		Where("user_id = ?", userID).
		Scan(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

func DeleteBirthday(ctx context.Context, db bun.IDB, guildID, userID string) (bool, error) {
	res, err := db.NewDelete().
		Model((*Birthday)(nil)).
		Where("guild_id = ?", guildID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("DeleteBirthday: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("DeleteBirthday: %w", err)
	}
	return n > 0, nil
}

type UpcomingBirthday struct {
	Birthday
	Next time.Time
}

// UpcomingBirthdays lists the guild's birthdays sorted by their next
// occurrence relative to now (now's location is the guild timezone).
func UpcomingBirthdays(ctx context.Context, db bun.IDB, guildID string, now time.Time) ([]UpcomingBirthday, error) {
	birthdays := make([]Birthday, 0)
	if err := db.NewSelect().
		Model(&birthdays).
		Where("guild_id = ?", guildID).
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("UpcomingBirthdays: %w", err)
	}

	upcoming := make([]UpcomingBirthday, 0, len(birthdays))
	for _, b := range birthdays {
		next, err := b.NextOccurrence(now)
		if err != nil {
			return nil, fmt.Errorf("UpcomingBirthdays: %w", err)
		}
		upcoming = append(upcoming, UpcomingBirthday{Birthday: b, Next: next})
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		if upcoming[i].Next.Equal(upcoming[j].Next) {
			return upcoming[i].UserID < upcoming[j].UserID
		}
		return upcoming[i].Next.Before(upcoming[j].Next)
	})
	return upcoming, nil
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DueBirthdays returns the birthdays of the guild falling on today (in
// now's location) that weren't announced this year yet.
func DueBirthdays(ctx context.Context, db bun.IDB, guildID string, now time.Time) ([]Birthday, error) {
	birthdays := make([]Birthday, 0)
	if err := db.NewSelect().
		Model(&birthdays).
		Where("guild_id = ?", guildID).
		Where("last_announced_year < ?", now.Year()).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			q = q.Where("month = ? AND day = ?", int(now.Month()), now.Day())
			if now.Month() == time.February && now.Day() == 28 && !isLeapYear(now.Year()) {
				q = q.WhereOr("month = 2 AND day = 29")
			}
			return q
		}).
		OrderExpr("user_id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("DueBirthdays: %w", err)
	}
	return birthdays, nil
}

func MarkBirthdaysAnnounced(ctx context.Context, db bun.IDB, guildID string, userIDs []string, year int) error {
	if len(userIDs) == 0 {
		return nil
	}
	if _, err := db.NewUpdate().
		Model((*Birthday)(nil)).
		Set("last_announced_year = ?", year).
		Where("guild_id = ?", guildID).
		Where("user_id IN (?)", bun.In(userIDs)).
		Exec(ctx); err != nil {
		return fmt.Errorf("MarkBirthdaysAnnounced: %w", err)
	}
	return nil
}
