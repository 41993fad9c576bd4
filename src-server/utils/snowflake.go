package utils

// SnowflakeLess compares two snowflake IDs without parsing them.
func SnowflakeLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
