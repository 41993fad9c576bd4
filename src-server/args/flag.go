package args

import (
	"strings"
)

// Flag is a command option such as -a/--add. Short may be empty for options
// that only exist in their long form (--import). A Greedy flag takes the
// rest of the input as its value, flags included.
type Flag struct {
	Short  string
	Long   string
	Greedy bool
}

func (f Flag) key() string {
	if f.Long != "" {
		return f.Long
	}
	return f.Short
}

func (f Flag) matches(token string) bool {
	return (f.Short != "" && strings.EqualFold(token, f.Short)) ||
		(f.Long != "" && strings.EqualFold(token, f.Long))
}

func (f Flag) String() string {
	if f.Short == "" {
		return f.Long
	}
	return f.Short + "|" + f.Long
}

// Parsed holds the outcome of Parse. Values are the raw text between a flag
// and the next known flag, trimmed; the first occurrence of a flag wins.
type Parsed struct {
	input      string
	positional string
	present    map[string]bool
	values     map[string]string
	order      []string
}

// Parse finds the given flags in input. Only unquoted tokens are flags, so
// `"-a"` is plain text.
func Parse(input string, flags ...Flag) *Parsed {
	p := &Parsed{
		input:   input,
		present: make(map[string]bool),
		values:  make(map[string]string),
	}

	type hit struct {
		flag  Flag
		token Token
	}
	hits := make([]hit, 0)
	for _, token := range Scan(input) {
		if token.Quoted {
			continue
		}
		for _, flag := range flags {
			if flag.matches(token.Text) {
				hits = append(hits, hit{flag, token})
				break
			}
		}
		if len(hits) > 0 && hits[len(hits)-1].flag.Greedy {
			break
		}
	}

	if len(hits) == 0 {
		p.positional = strings.TrimSpace(input)
		return p
	}
	p.positional = strings.TrimSpace(input[:hits[0].token.Start])
	for i, h := range hits {
		end := len(input)
		if i+1 < len(hits) {
			end = hits[i+1].token.Start
		}
		key := h.flag.key()
		if p.present[key] {
			continue
		}
		p.present[key] = true
		p.values[key] = strings.TrimSpace(input[h.token.End:end])
		p.order = append(p.order, key)
	}
	return p
}

func (p *Parsed) Has(f Flag) bool {
	return p.present[f.key()]
}

// Value returns the text following f and whether f was present at all.
func (p *Parsed) Value(f Flag) (string, bool) {
	v, ok := p.values[f.key()]
	return v, ok
}

// Positional is the text before the first flag.
func (p *Parsed) Positional() string {
	return p.positional
}

// Empty reports whether the input had nothing but whitespace.
func (p *Parsed) Empty() bool {
	return strings.TrimSpace(p.input) == ""
}

// Flags lists the present flags, long form preferred, in input order.
func (p *Parsed) Flags() []string {
	return p.order
}

// ValueOrPositional serves options whose flag may be omitted, so that
// "cmd 10", "cmd -i 10" and "cmd --id 10" read the same.
func (p *Parsed) ValueOrPositional(f Flag) string {
	if v, ok := p.Value(f); ok {
		return v
	}
	return p.positional
}

// ValueOrDefault serves options whose flag is required but whose value
// isn't, like "-sc" alone meaning the current channel.
func (p *Parsed) ValueOrDefault(f Flag, def string) (string, bool) {
	v, ok := p.Value(f)
	if !ok {
		return "", false
	}
	if v == "" {
		return def, true
	}
	return v, true
}
