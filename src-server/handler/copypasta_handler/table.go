package copypasta_handler

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"guildkeeper/src-server/model"
	"guildkeeper/src-server/utils"
)

const (
	// 80 columns minus the separators
	tableLineLimit  = 80 - 5
	tableTitleLimit = 16
	tableSeparator  = "|"
	tablePadding    = '…'
	codeBlock       = "```"
)

var cellReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ", "`", "'")

// center pads s on both sides to width, the extra space going right.
func center(s string, width int) string {
	pad := width - utf8.RuneCountInString(s)
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad/2) + s + strings.Repeat(" ", pad-pad/2)
}

func ljust(s []rune, width int) string {
	if len(s) >= width {
		return string(s)
	}
	return string(s) + strings.Repeat(" ", width-len(s))
}

func rjust(s string, width int) string {
	pad := width - utf8.RuneCountInString(s)
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

// truncate cuts s to width, ending it with the padding character.
func truncate(s []rune, width int) []rune {
	if len(s) <= width {
		return s
	}
	out := make([]rune, 0, width)
	out = append(out, s[:width-1]...)
	return append(out, tablePadding)
}

// indexFold finds query in s ignoring case, -1 when absent.
func indexFold(s, query []rune) int {
	if len(query) == 0 {
		return -1
	}
	q := string(query)
	for i := 0; i+len(query) <= len(s); i++ {
		if strings.EqualFold(string(s[i:i+len(query)]), q) {
			return i
		}
	}
	return -1
}

// contentsCell fits content in width. When query occurs in it, the cell is
// a window centered on the first occurrence, with padding on the cut sides.
func contentsCell(content, query []rune, width int) string {
	start := indexFold(content, query)
	if start < 0 {
		return ljust(truncate(content, width), width)
	}

	if len(query) > width {
		query = query[:width]
	}
	match := content[start : start+len(query)]
	remaining := width - len(match)
	left, right := remaining/2, remaining-remaining/2
	before, after := content[:start], content[start+len(match):]

	// give the unused side's room to the other one
	if len(before) < left {
		right += left - len(before)
		left = len(before)
	}
	if len(after) < right {
		left = min(left+right-len(after), len(before))
		right = len(after)
	}
	padLeft, padRight := len(before) > left, len(after) > right

	cell := make([]rune, 0, width)
	cell = append(cell, before[len(before)-left:]...)
	cell = append(cell, match...)
	cell = append(cell, after[:right]...)
	if padLeft && len(cell) > 0 {
		cell[0] = tablePadding
	}
	if padRight && len(cell) > 0 {
		cell[len(cell)-1] = tablePadding
	}
	return ljust(cell, width)
}

// Table renders copypastas as code block tables split in as many messages
// as needed, each repeating the heading. query is highlighted in the
// contents column when not empty.
func Table(copypastas []model.Copypasta, query string) []string {
	type row struct {
		id, count      string
		title, content []rune
	}
	rows := make([]row, len(copypastas))
	lenID, lenTitle, lenCount, lenContent := len("ID"), 0, len("COUNT"), 0
	for i, cp := range copypastas {
		r := row{
			id:      strconv.FormatInt(cp.ID, 10),
			count:   strconv.FormatInt(cp.Count, 10),
			title:   []rune(cellReplacer.Replace(cp.Title)),
			content: []rune(cellReplacer.Replace(cp.Content)),
		}
		lenID = max(lenID, len(r.id))
		lenCount = max(lenCount, len(r.count))
		lenTitle = max(lenTitle, len(r.title))
		lenContent = max(lenContent, len(r.content))
		rows[i] = r
	}
	lenTitle = max(len("TITLE"), min(tableTitleLimit, lenTitle))
	lenContent = max(len("CONTENTS"), min(tableLineLimit-lenID-lenTitle-lenCount, lenContent))

	line := func(cells ...string) string {
		return tableSeparator + strings.Join(cells, tableSeparator) + tableSeparator + "\n"
	}
	heading := line(center("ID", lenID), center("TITLE", lenTitle), center("CONTENTS", lenContent), center("COUNT", lenCount))

	q := []rune(cellReplacer.Replace(query))
	messages := make([]string, 0, 1)
	var sb strings.Builder
	flush := func() {
		sb.WriteString(codeBlock)
		messages = append(messages, sb.String())
		sb.Reset()
	}
	for _, r := range rows {
		l := line(
			rjust(r.id, lenID),
			ljust(truncate(r.title, lenTitle), lenTitle),
			contentsCell(r.content, q, lenContent),
			ljust([]rune(r.count), lenCount),
		)
		if sb.Len() > 0 && sb.Len()+len(l)+len(codeBlock) > utils.MessageLimit {
			flush()
		}
		if sb.Len() == 0 {
			sb.WriteString(codeBlock + "\n" + heading)
		}
		sb.WriteString(l)
	}
	if sb.Len() > 0 {
		flush()
	}
	return messages
}
