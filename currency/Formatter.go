package currency

import (
	"log"

	xcurrency "golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders monetary amounts for one locale and currency. The cart
// core only computes numbers; every user-facing price string goes through
// here.
type Formatter struct {
	printer *message.Printer
	unit    xcurrency.Unit
}

func NewFormatter(locale string, code string) (Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return Formatter{}, err
	}
	unit, err := xcurrency.ParseISO(code)
	if err != nil {
		return Formatter{}, err
	}
	return Formatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
	}, nil
}

// MustFormatter is for wiring code where the locale and code are constants.
func MustFormatter(locale string, code string) Formatter {
	f, err := NewFormatter(locale, code)
	if err != nil {
		log.Panicf("currency formatter: %v", err)
	}
	return f
}

func (f Formatter) Format(amount float64) string {
	return f.printer.Sprint(xcurrency.NarrowSymbol(f.unit.Amount(amount)))
}
