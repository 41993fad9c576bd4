package handler

import (
	"math/rand/v2"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"guildkeeper/src-server/utils"
)

var marcoRegex = regexp.MustCompile(`(?i)^\s*(m+)(a+)(r+)(c+)(o+)([.…?!\s]*)$`)

// lengths around the input's, mostly the same
var (
	amountOffsets = [...]int{-2, -1, 0, 1, 2}
	amountWeights = [...]float64{.15, .35, 9, .35, .15}
)

func Marco(as *utils.AppState) {
	as.AddResponder(marcoResponder)
}

func marcoResponder(c *utils.CmdContext) (bool, error) {
	r := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	polo, ok := MarcoPolo(r, c.Message.Content)
	if !ok {
		return false, nil
	}
	return true, c.Reply(polo)
}

// MarcoPolo answers some form of "Marco" with a "Polo" shaped like it:
// similar letter counts, the same share of uppercase letters and the
// punctuation resampled.
func MarcoPolo(r *rand.Rand, s string) (string, bool) {
	m := marcoRegex.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}

	var sb strings.Builder
	for _, part := range []struct {
		groups []string
		sub    rune
	}{
		{[]string{m[1]}, 'p'},
		{[]string{m[2]}, 'o'},
		{[]string{m[3], m[4]}, 'l'},
		{[]string{m[5]}, 'o'},
	} {
		sb.WriteString(charString(r, part.groups, part.sub))
	}
	sb.WriteString(punctuationString(r, m[6]))
	return sb.String(), true
}

func charAmount(r *rand.Rand, n int) int {
	pick := r.Float64() * 10
	for i, w := range amountWeights {
		if pick < w {
			return max(1, n+amountOffsets[i])
		}
		pick -= w
	}
	return max(1, n)
}

func charString(r *rand.Rand, groups []string, sub rune) string {
	joined := []rune(strings.Join(groups, ""))
	upper := 0
	for _, ch := range joined {
		if unicode.IsUpper(ch) {
			upper++
		}
	}
	upperChance := float64(upper) / float64(len(joined))

	total := 0
	for _, g := range groups {
		total += charAmount(r, len([]rune(g)))
	}
	n := total / len(groups)

	out := make([]rune, n)
	for i := range out {
		if r.Float64() < upperChance {
			out[i] = unicode.ToUpper(sub)
		} else {
			out[i] = sub
		}
	}
	return string(out)
}

// whitespace is dropped, Discord trims it anyway
func punctuationString(r *rand.Rand, p string) string {
	counts := make(map[rune]int)
	total := 0
	for _, ch := range p {
		if unicode.IsSpace(ch) {
			continue
		}
		counts[ch]++
		total++
	}
	if total == 0 {
		return ""
	}
	chars := make([]rune, 0, len(counts))
	for ch := range counts {
		chars = append(chars, ch)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })

	out := make([]rune, charAmount(r, total))
	for i := range out {
		pick := r.IntN(total)
		for _, ch := range chars {
			if pick < counts[ch] {
				out[i] = ch
				break
			}
			pick -= counts[ch]
		}
	}
	return string(out)
}
