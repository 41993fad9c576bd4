package discordtest

import "time"

// discordEpoch is the first second of 2015 in milliseconds
const discordEpoch = 1420070400000

// snowflakeAt is the smallest snowflake created at t.
func snowflakeAt(t time.Time) int64 {
	ms := t.UnixMilli() - discordEpoch
	if ms < 0 {
		ms = 0
	}
	return ms << 22
}
