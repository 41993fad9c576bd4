package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported lists the locales with translated replies, default first.
var Supported = []language.Tag{
	language.English,
	language.BrazilianPortuguese,
	language.Spanish,
}

var (
	matcher = language.NewMatcher(Supported)
	cat     = newCatalog()
)

// Match parses a BCP 47 tag and picks the closest supported locale.
func Match(s string) (language.Tag, error) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return language.Und, fmt.Errorf("locale.Match: %w", err)
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return language.Und, fmt.Errorf("locale.Match: %q isn't supported", s)
	}
	return Supported[index], nil
}

// SupportedString is the human readable list of supported locales.
func SupportedString() string {
	names := make([]string, len(Supported))
	for i, tag := range Supported {
		names[i] = "`" + tag.String() + "`"
	}
	return strings.Join(names, ", ")
}

// Printer formats replies for tag; numbers follow the locale too.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(cat))
}

// PrinterFor is Printer for a stored locale string, falling back to English.
func PrinterFor(s string) *message.Printer {
	tag, err := Match(s)
	if err != nil {
		tag = language.English
	}
	return Printer(tag)
}

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, t := range translations {
		if err := b.SetString(language.English, key, key); err != nil {
			panic(err)
		}
		if err := b.SetString(language.BrazilianPortuguese, key, t.ptBR); err != nil {
			panic(err)
		}
		if err := b.SetString(language.Spanish, key, t.es); err != nil {
			panic(err)
		}
	}
	return b
}
