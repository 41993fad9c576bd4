package model_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"guildkeeper/src-server/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBirthdayValidate(t *testing.T) {
	for name, tc := range map[string]struct {
		birthday model.Birthday
		valid    bool
	}{
		"regular":            {model.Birthday{Month: 3, Day: 5}, true},
		"with year":          {model.Birthday{Month: 3, Day: 5, Year: 1990}, true},
		"feb 29 no year":     {model.Birthday{Month: 2, Day: 29}, true},
		"feb 29 leap year":   {model.Birthday{Month: 2, Day: 29, Year: 2000}, true},
		"feb 29 common":      {model.Birthday{Month: 2, Day: 29, Year: 2001}, false},
		"april 31":           {model.Birthday{Month: 4, Day: 31}, false},
		"month 13":           {model.Birthday{Month: 13, Day: 1}, false},
		"day 0":              {model.Birthday{Month: 1, Day: 0}, false},
		"born in the future": {model.Birthday{Month: 1, Day: 1, Year: time.Now().Year() + 1}, false},
	} {
		t.Run(name, func(t *testing.T) {
			err := tc.birthday.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestBirthdayNextOccurrence(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	for name, tc := range map[string]struct {
		birthday model.Birthday
		now      time.Time
		want     time.Time
	}{
		"later this year": {
			model.Birthday{Month: 12, Day: 25},
			time.Date(2023, 6, 1, 15, 0, 0, 0, loc),
			time.Date(2023, 12, 25, 0, 0, 0, 0, loc),
		},
		"today counts": {
			model.Birthday{Month: 6, Day: 1},
			time.Date(2023, 6, 1, 23, 59, 0, 0, loc),
			time.Date(2023, 6, 1, 0, 0, 0, 0, loc),
		},
		"already passed": {
			model.Birthday{Month: 1, Day: 10},
			time.Date(2023, 6, 1, 0, 0, 0, 0, loc),
			time.Date(2024, 1, 10, 0, 0, 0, 0, loc),
		},
		"feb 29 in common year": {
			model.Birthday{Month: 2, Day: 29},
			time.Date(2023, 2, 1, 0, 0, 0, 0, loc),
			time.Date(2023, 2, 28, 0, 0, 0, 0, loc),
		},
		"feb 29 in leap year": {
			model.Birthday{Month: 2, Day: 29},
			time.Date(2024, 2, 1, 0, 0, 0, 0, loc),
			time.Date(2024, 2, 29, 0, 0, 0, 0, loc),
		},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := tc.birthday.NextOccurrence(tc.now)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "want %s, got %s", tc.want, got)
		})
	}
}

func TestBirthdayAge(t *testing.T) {
	b := model.Birthday{Month: 3, Day: 5, Year: 1990}
	assert.Equal(t, 33, b.Age(time.Date(2023, 3, 5, 0, 0, 0, 0, time.UTC)))
	b.Year = 0
	assert.Equal(t, 0, b.Age(time.Date(2023, 3, 5, 0, 0, 0, 0, time.UTC)))
}

func TestBirthdayCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	b := &model.Birthday{GuildID: "g1", UserID: "u1", Month: 3, Day: 5}
	require.NoError(t, b.Upsert(ctx, db))

	// case: upsert overwrites the date
	b.Day = 6
	b.Year = 1995
	require.NoError(t, b.Upsert(ctx, db))

	got, err := model.GetBirthday(ctx, db, "g1", "u1")
	require.NoError(t, err)
	assert.Equal(t, 6, got.Day)
	assert.Equal(t, 1995, got.Year)

	// case: guild scoped
	_, err = model.GetBirthday(ctx, db, "g2", "u1")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	deleted, err := model.DeleteBirthday(ctx, db, "g1", "u1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = model.DeleteBirthday(ctx, db, "g1", "u1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestUpcomingBirthdays(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	for _, b := range []model.Birthday{
		{GuildID: "g1", UserID: "jan", Month: 1, Day: 15},
		{GuildID: "g1", UserID: "jul", Month: 7, Day: 1},
		{GuildID: "g1", UserID: "dec", Month: 12, Day: 31},
		{GuildID: "g2", UserID: "other", Month: 6, Day: 2},
	} {
		require.NoError(t, b.Upsert(ctx, db))
	}

	upcoming, err := model.UpcomingBirthdays(ctx, db, "g1", time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, upcoming, 3)
	assert.Equal(t, "jul", upcoming[0].UserID)
	assert.Equal(t, "dec", upcoming[1].UserID)
	assert.Equal(t, "jan", upcoming[2].UserID)
	assert.Equal(t, 2024, upcoming[2].Next.Year())
}

func TestDueBirthdays(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	for _, b := range []model.Birthday{
		{GuildID: "g1", UserID: "a", Month: 2, Day: 28},
		{GuildID: "g1", UserID: "b", Month: 2, Day: 29},
		{GuildID: "g1", UserID: "c", Month: 3, Day: 1},
		{GuildID: "g2", UserID: "d", Month: 2, Day: 28},
	} {
		require.NoError(t, b.Upsert(ctx, db))
	}

	// case: common year, feb 29 birthdays are celebrated on the 28th
	now := time.Date(2023, 2, 28, 9, 0, 0, 0, time.UTC)
	due, err := model.DueBirthdays(ctx, db, "g1", now)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "a", due[0].UserID)
	assert.Equal(t, "b", due[1].UserID)

	// case: announced birthdays aren't due again the same year
	require.NoError(t, model.MarkBirthdaysAnnounced(ctx, db, "g1", []string{"a", "b"}, 2023))
	due, err = model.DueBirthdays(ctx, db, "g1", now)
	require.NoError(t, err)
	assert.Empty(t, due)

	// case: leap year, only the 28th
	due, err = model.DueBirthdays(ctx, db, "g1", time.Date(2024, 2, 28, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "a", due[0].UserID)
}
