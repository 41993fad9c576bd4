package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Copypasta IDs are sequential per guild, starting at 1.
type Copypasta struct {
	bun.BaseModel `bun:"table:copypastas"`

	GuildID   string `bun:"guild_id,pk" json:"-"`               // required
	ID        int64  `bun:"id,pk" json:"id"`                    // assigned by Add
	Title     string `bun:"title,notnull" json:"title"`         // required
	Content   string `bun:"content,notnull" json:"content"`     // required
	Count     int64  `bun:"count,notnull,default:0" json:"count"`
	AuthorID  string `bun:"author_id" json:"author_id,omitempty"`
	CreatedAt int64  `bun:"created_at,notnull" json:"created_at"`
}

type CopypastaOrderField string

const (
	CopypastaOrderID      CopypastaOrderField = "id"
	CopypastaOrderTitle   CopypastaOrderField = "title"
	CopypastaOrderContent CopypastaOrderField = "content"
	CopypastaOrderCount   CopypastaOrderField = "count"
)

func (f CopypastaOrderField) valid() bool {
	switch f {
	case CopypastaOrderID, CopypastaOrderTitle, CopypastaOrderContent, CopypastaOrderCount:
		return true
	}
	return false
}

// Add inserts the copypasta with the next free ID of its guild.
func (c *Copypasta) Add(ctx context.Context, db bun.IDB) error {
	switch {
	case c.GuildID == "":
		return fmt.Errorf("(*Copypasta).Add: guild id is blank")
	case strings.TrimSpace(c.Title) == "":
		return fmt.Errorf("(*Copypasta).Add: title is blank")
	case strings.TrimSpace(c.Content) == "":
		return fmt.Errorf("(*Copypasta).Add: content is blank")
	}
	if c.CreatedAt == 0 {
		c.CreatedAt = time.Now().UTC().Unix()
	}

	if err := db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return c.insertNext(ctx, tx)
	}); err != nil {
		return fmt.Errorf("(*Copypasta).Add: %w", err)
	}
	return nil
}

// must run inside a transaction
func (c *Copypasta) insertNext(ctx context.Context, tx bun.Tx) error {
	var maxID int64
	if err := tx.NewSelect().
		Model((*Copypasta)(nil)).
		ColumnExpr("COALESCE(MAX(id), 0)").
		Where("guild_id = ?", c.GuildID).
		Scan(ctx, &maxID); err != nil {
		return err
	}
	c.ID = maxID + 1
	_, err := tx.NewInsert().Model(c).Exec(ctx)
	return err
}

// GetCopypasta returns one copypasta of the guild and bumps its send count.
// A zero id picks a random one. Returns sql.ErrNoRows when nothing matches.
func GetCopypasta(ctx context.Context, db bun.IDB, guildID string, id int64) (*Copypasta, error) {
	c := new(Copypasta)
	q := db.NewSelect().
		Model(c).
		Where("guild_id = ?", guildID)
	if id == 0 {
		q = q.OrderExpr("RANDOM()")
	} else {
		q = q.Where("id = ?", id)
	}
	if err := q.Limit(1).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("GetCopypasta: %w", err)
	}

	if _, err := db.NewUpdate().
		Model((*Copypasta)(nil)).
		Set("count = count + 1").
		Where("guild_id = ?", guildID).
		Where("id = ?", c.ID).
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("GetCopypasta: can't bump count: %w", err)
	}
	c.Count++
	return c, nil
}

// DeleteCopypastas removes the given IDs from the guild and returns how many existed.
func DeleteCopypastas(ctx context.Context, db bun.IDB, guildID string, ids ...int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := db.NewDelete().
		Model((*Copypasta)(nil)).
		Where("guild_id = ?", guildID).
		Where("id IN (?)", bun.In(ids)).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("DeleteCopypastas: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteCopypastas: %w", err)
	}
	return n, nil
}

type CopypastaSearch struct {
	Query      string // empty matches everything
	TitleOnly  bool
	OrderField CopypastaOrderField // default: count
	Ascending  bool
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func SearchCopypastas(ctx context.Context, db bun.IDB, guildID string, search CopypastaSearch) ([]Copypasta, error) {
	if search.OrderField == "" {
		search.OrderField = CopypastaOrderCount
	}
	if !search.OrderField.valid() {
		return nil, fmt.Errorf("SearchCopypastas: unknown order field %q", search.OrderField)
	}

	copypastas := make([]Copypasta, 0)
	q := db.NewSelect().
		Model(&copypastas).
		Where("guild_id = ?", guildID)
	if search.Query != "" {
		like := "%" + escapeLike(search.Query) + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			q = q.Where(`title LIKE ? ESCAPE '\'`, like)
			if !search.TitleOnly {
				q = q.WhereOr(`content LIKE ? ESCAPE '\'`, like)
			}
			return q
		})
	}
	direction := "DESC"
	if search.Ascending {
		direction = "ASC"
	}
	q = q.OrderExpr("? "+direction, bun.Ident(string(search.OrderField)))
	if search.OrderField != CopypastaOrderID {
		q = q.OrderExpr("id ASC")
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("SearchCopypastas: %w", err)
	}
	return copypastas, nil
}

// ImportCopypastas appends rows to the guild with fresh IDs. Rows whose
// title and content already exist in the guild are skipped.
func ImportCopypastas(ctx context.Context, db bun.IDB, guildID string, rows []Copypasta) (added int, skipped int, err error) {
	err = db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, row := range rows {
			exists, err := tx.NewSelect().
				Model((*Copypasta)(nil)).
				Where("guild_id = ?", guildID).
				Where("title = ?", row.Title).
				Where("content = ?", row.Content).
				Exists(ctx)
			if err != nil {
				return err
			}
			if exists {
				skipped++
				continue
			}
			if strings.TrimSpace(row.Title) == "" || strings.TrimSpace(row.Content) == "" {
				skipped++
				continue
			}
			c := Copypasta{
				GuildID:   guildID,
				Title:     row.Title,
				Content:   row.Content,
				Count:     row.Count,
				AuthorID:  row.AuthorID,
				CreatedAt: row.CreatedAt,
			}
			if c.CreatedAt == 0 {
				c.CreatedAt = time.Now().UTC().Unix()
			}
			if err := c.insertNext(ctx, tx); err != nil {
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("ImportCopypastas: %w", err)
	}
	return added, skipped, nil
}
