// Package currency formats monetary amounts for display and export. Amounts
// are Pakistani rupees shown with grouping separators and no fraction digits.
package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// FormatPKR renders an amount as "Rs. 1,500,000".
func FormatPKR(amount float64) string {
	return printer.Sprintf("Rs. %v", number.Decimal(amount, number.MaxFractionDigits(0)))
}
