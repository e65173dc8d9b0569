// Package translate formats user-visible LS-8 messages for the host locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("ls8: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// Use replaces the printer with one for a specific language tag.
// Unparseable tags fall back to en-US.
func Use(tag string) {
	lang, err := language.Parse(tag)
	if err != nil {
		lang = language.AmericanEnglish
	}

	printer = message.NewPrinter(lang)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
