package args

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	idListRegex        = regexp.MustCompile(`^\d+(?:\s*,\s*\d+)*$`)
	firstFewWordsRegex = regexp.MustCompile(`(\S.{4,64}?\.|\S.{4,64}\S\b|\S+)`)
)

// ParseIDList reads "1, 2,3" style lists of positive IDs.
func ParseIDList(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if !idListRegex.MatchString(s) {
		return nil, fmt.Errorf("ParseIDList: %q isn't a comma separated list of numbers", s)
	}
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	seen := make(map[int64]bool, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ParseIDList: %w", err)
		}
		if id == 0 {
			return nil, fmt.Errorf("ParseIDList: IDs start at 1")
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// ParseID reads a single positive ID.
func ParseID(s string) (int64, error) {
	ids, err := ParseIDList(s)
	if err != nil {
		return 0, err
	}
	if len(ids) != 1 {
		return 0, fmt.Errorf("ParseID: expected one ID, got %d", len(ids))
	}
	return ids[0], nil
}

// ParseQuotedPair splits `"title" "content"` into its parts. When s doesn't
// start with a quoted token followed by more text, all of it is content and
// title is empty.
func ParseQuotedPair(s string) (title string, content string) {
	s = strings.TrimSpace(s)
	tokens := Scan(s)
	if len(tokens) >= 2 && tokens[0].Quoted {
		return tokens[0].Text, Unquote(s[tokens[0].End:])
	}
	return "", Unquote(s)
}

// ParseReason reads the value of a -r/--reason option.
func ParseReason(s string) string {
	return strings.TrimSpace(Unquote(s))
}

// FirstFewWords derives a short title from text: its first sentence when
// that's short, else a cut on a word boundary, else the first word.
func FirstFewWords(s string) string {
	return strings.TrimSpace(firstFewWordsRegex.FindString(s))
}
