package args_test

import (
	"testing"

	"guildkeeper/src-server/args"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	for name, tc := range map[string]struct {
		input string
		want  []string
	}{
		"empty":              {"   ", []string{}},
		"spaces":             {"a b  \tc", []string{"a", "b", "c"}},
		"double quotes":      {`"hello world" x`, []string{"hello world", "x"}},
		"apostrophe inside":  {`'it's fine' ok`, []string{"it's fine", "ok"}},
		"contraction":        {`don't "stop"`, []string{"don't", "stop"}},
		"unterminated":       {`"unterminated here`, []string{`"unterminated`, "here"}},
		"empty quotes":       {`"" x`, []string{`""`, "x"}},
		"quote inside token": {`say "hi"there" now`, []string{"say", `hi"there`, "now"}},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, args.Tokenize(tc.input))
		})
	}
}

func TestScanOffsets(t *testing.T) {
	input := `é "a b" c`
	tokens := args.Scan(input)
	if assert.Len(t, tokens, 3) {
		assert.Equal(t, "é", input[tokens[0].Start:tokens[0].End])
		assert.Equal(t, `"a b"`, input[tokens[1].Start:tokens[1].End])
		assert.True(t, tokens[1].Quoted)
		assert.Equal(t, "c", input[tokens[2].Start:tokens[2].End])
	}
}

func TestUnquote(t *testing.T) {
	assert.Equal(t, "a b", args.Unquote(` "a b" `))
	assert.Equal(t, "a b", args.Unquote(`'a b'`))
	assert.Equal(t, `"a b'`, args.Unquote(`"a b'`))
	assert.Equal(t, `"`, args.Unquote(`"`))
}
