package model_test

import (
	"context"
	"database/sql"
	"testing"

	"guildkeeper/src-server/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func addCopypasta(t *testing.T, db bun.IDB, guildID, title, content string) *model.Copypasta {
	t.Helper()
	c := &model.Copypasta{GuildID: guildID, Title: title, Content: content}
	require.NoError(t, c.Add(context.Background(), db))
	return c
}

func TestCopypastaIDsArePerGuild(t *testing.T) {
	db := newTestDB(t)

	assert.EqualValues(t, 1, addCopypasta(t, db, "g1", "a", "first").ID)
	assert.EqualValues(t, 2, addCopypasta(t, db, "g1", "b", "second").ID)
	assert.EqualValues(t, 1, addCopypasta(t, db, "g2", "c", "other guild").ID)

	// deleting the highest ID frees it, deleting a lower one doesn't shift IDs
	n, err := model.DeleteCopypastas(context.Background(), db, "g1", 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.EqualValues(t, 3, addCopypasta(t, db, "g1", "d", "third").ID)
}

func TestCopypastaAddValidation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	assert.Error(t, (&model.Copypasta{Title: "t", Content: "c"}).Add(ctx, db))
	assert.Error(t, (&model.Copypasta{GuildID: "g", Title: " ", Content: "c"}).Add(ctx, db))
	assert.Error(t, (&model.Copypasta{GuildID: "g", Title: "t", Content: ""}).Add(ctx, db))
}

func TestGetCopypasta(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// case: empty guild
	_, err := model.GetCopypasta(ctx, db, "g1", 0)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	addCopypasta(t, db, "g1", "navy seal", "What the heck did you just say")
	addCopypasta(t, db, "g2", "other", "not visible from g1")

	// case: by id, count is bumped on every read
	c, err := model.GetCopypasta(ctx, db, "g1", 1)
	require.NoError(t, err)
	assert.Equal(t, "navy seal", c.Title)
	assert.EqualValues(t, 1, c.Count)

	c, err = model.GetCopypasta(ctx, db, "g1", 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, c.Count)

	// case: random only picks from the guild
	for range 5 {
		c, err = model.GetCopypasta(ctx, db, "g1", 0)
		require.NoError(t, err)
		assert.Equal(t, "g1", c.GuildID)
	}

	// case: unknown id
	_, err = model.GetCopypasta(ctx, db, "g1", 42)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDeleteCopypastas(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	for _, title := range []string{"a", "b", "c"} {
		addCopypasta(t, db, "g1", title, "content "+title)
	}
	addCopypasta(t, db, "g2", "a", "content a")

	n, err := model.DeleteCopypastas(ctx, db, "g1", 1, 3, 99)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	rest, err := model.SearchCopypastas(ctx, db, "g1", model.CopypastaSearch{OrderField: model.CopypastaOrderID})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.EqualValues(t, 2, rest[0].ID)

	// other guild untouched
	_, err = model.GetCopypasta(ctx, db, "g2", 1)
	assert.NoError(t, err)

	n, err = model.DeleteCopypastas(ctx, db, "g1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSearchCopypastas(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	addCopypasta(t, db, "g1", "Cheese", "I like cheddar")
	addCopypasta(t, db, "g1", "Bread", "Baguette with cheese")
	addCopypasta(t, db, "g1", "100%", "percent sign")

	// bump counts: Bread twice, Cheese once
	for _, id := range []int64{2, 2, 1} {
		_, err := model.GetCopypasta(ctx, db, "g1", id)
		require.NoError(t, err)
	}

	// case: default ordering is count desc
	all, err := model.SearchCopypastas(ctx, db, "g1", model.CopypastaSearch{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Bread", "Cheese", "100%"}, titles(all))

	// case: title and content match
	found, err := model.SearchCopypastas(ctx, db, "g1", model.CopypastaSearch{Query: "cheese"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bread", "Cheese"}, titles(found))

	// case: title only
	found, err = model.SearchCopypastas(ctx, db, "g1", model.CopypastaSearch{Query: "cheese", TitleOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cheese"}, titles(found))

	// case: LIKE wildcards are literal
	found, err = model.SearchCopypastas(ctx, db, "g1", model.CopypastaSearch{Query: "%"})
	require.NoError(t, err)
	assert.Equal(t, []string{"100%"}, titles(found))

	// case: ordering by title ascending
	found, err = model.SearchCopypastas(ctx, db, "g1", model.CopypastaSearch{OrderField: model.CopypastaOrderTitle, Ascending: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"100%", "Bread", "Cheese"}, titles(found))

	// case: unknown order field
	_, err = model.SearchCopypastas(ctx, db, "g1", model.CopypastaSearch{OrderField: "guild_id; DROP TABLE copypastas"})
	assert.Error(t, err)
}

func TestImportCopypastas(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	addCopypasta(t, db, "g1", "exists", "already here")

	added, skipped, err := model.ImportCopypastas(ctx, db, "g1", []model.Copypasta{
		{ID: 7, Title: "exists", Content: "already here"},
		{ID: 8, Title: "new", Content: "fresh", Count: 4},
		{ID: 9, Title: "", Content: "no title"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, 2, skipped)

	c, err := model.GetCopypasta(ctx, db, "g1", 2)
	require.NoError(t, err)
	assert.Equal(t, "new", c.Title)
	assert.EqualValues(t, 5, c.Count)
}

func titles(copypastas []model.Copypasta) []string {
	out := make([]string, len(copypastas))
	for i, c := range copypastas {
		out[i] = c.Title
	}
	return out
}
