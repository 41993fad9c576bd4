package locale_test

import (
	"testing"

	"guildkeeper/src-server/locale"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	for input, want := range map[string]language.Tag{
		"en":    language.English,
		"en-US": language.English,
		"pt-BR": language.BrazilianPortuguese,
		"pt":    language.BrazilianPortuguese,
		"es-MX": language.Spanish,
		" es ":  language.Spanish,
	} {
		got, err := locale.Match(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	for _, input := range []string{"", "not a tag!", "ja"} {
		_, err := locale.Match(input)
		assert.Error(t, err, input)
	}
}

func TestPrinter(t *testing.T) {
	en := locale.Printer(language.English)
	assert.Equal(t, "Deleted 1,234 messages.", en.Sprintf("Deleted %d messages.", 1234))

	pt := locale.PrinterFor("pt-BR")
	assert.Equal(t, "1.234 mensagens apagadas.", pt.Sprintf("Deleted %d messages.", 1234))

	es := locale.PrinterFor("es")
	assert.Equal(t, "Prefijo cambiado a `!`.", es.Sprintf("Prefix changed to `%s`.", "!"))

	// dates reorder their arguments
	assert.Equal(t, "5 de março de 1990", pt.Sprintf("%[1]s %[2]d, %[3]s", pt.Sprintf("March"), 5, "1990"))
	assert.Equal(t, "March 5", en.Sprintf("%[1]s %[2]d", en.Sprintf("March"), 5))

	// unknown locales and keys fall back to English text
	assert.Equal(t, "Prefix changed to `!`.", locale.PrinterFor("xx").Sprintf("Prefix changed to `%s`.", "!"))
	assert.Equal(t, "untranslated 1", pt.Sprintf("untranslated %d", 1))
}

func TestSupportedString(t *testing.T) {
	assert.Equal(t, "`en`, `pt-BR`, `es`", locale.SupportedString())
}
