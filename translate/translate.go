// Package translate formats user-facing messages for the RISC16 simulator
// in the language of the host locale.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

var (
	printer     *message.Printer
	printerOnce sync.Once
)

// Locales returns the host locales used to pick the message printer,
// falling back to en-US.
func Locales() (locales []string) {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("risc16: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	return
}

func get() *message.Printer {
	printerOnce.Do(func() {
		printer = message.NewPrinter(message.MatchLanguage(Locales()...))
	})
	return printer
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return get().Sprintf(key, args...)
}
