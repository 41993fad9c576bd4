package args

import (
	"strings"
	"unicode"
)

// A whitespace-delimited or quoted piece of a command's argument string.
// Start and End index the raw input, quotes included.
type Token struct {
	Text   string
	Start  int
	End    int
	Quoted bool
}

func isQuote(r rune) bool {
	return r == '"' || r == '\''
}

// Scan splits s into tokens. A token starting with ' or " runs until the
// same quote followed by whitespace or the end of s; without such a closing
// quote it's an ordinary token and keeps its quote.
func Scan(s string) []Token {
	tokens := make([]Token, 0)
	runes := []rune(s)
	// byte offsets of every rune, plus len(s) at the end
	offsets := make([]int, 0, len(runes)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(s))

	i := 0
	for i < len(runes) {
		if unicode.IsSpace(runes[i]) {
			i++
			continue
		}

		if isQuote(runes[i]) {
			quote := runes[i]
			closing := -1
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == quote && (j+1 == len(runes) || unicode.IsSpace(runes[j+1])) {
					closing = j
					break
				}
			}
			if closing > i+1 {
				tokens = append(tokens, Token{
					Text:   string(runes[i+1 : closing]),
					Start:  offsets[i],
					End:    offsets[closing+1],
					Quoted: true,
				})
				i = closing + 1
				continue
			}
		}

		j := i
		for j < len(runes) && !unicode.IsSpace(runes[j]) {
			j++
		}
		tokens = append(tokens, Token{
			Text:  string(runes[i:j]),
			Start: offsets[i],
			End:   offsets[j],
		})
		i = j
	}
	return tokens
}

// Tokenize is Scan without the positions.
func Tokenize(s string) []string {
	tokens := Scan(s)
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}

// Unquote strips one pair of matching outer quotes, after trimming spaces.
func Unquote(s string) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) >= 2 && isQuote(runes[0]) && runes[len(runes)-1] == runes[0] {
		return string(runes[1 : len(runes)-1])
	}
	return s
}
