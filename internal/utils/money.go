package utils

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatMoney renders amount in US dollars with grouping, e.g. "$1,500.00".
// Negative amounts keep their sign in front of the symbol.
func FormatMoney(amount float64) string {
	if amount < 0 {
		return "-" + FormatMoney(-amount)
	}
	scale, _ := currency.Standard.Rounding(currency.USD)
	return "$" + printer.Sprintf("%.*f", scale, amount)
}
