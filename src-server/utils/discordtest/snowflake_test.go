package discordtest

import (
	"strconv"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnowflakeAt(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	got, err := discordgo.SnowflakeTimestamp(strconv.FormatInt(snowflakeAt(at), 10))
	require.NoError(t, err)
	assert.True(t, at.Equal(got), "want %s, got %s", at, got)

	assert.Zero(t, snowflakeAt(time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)))
}
