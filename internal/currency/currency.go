// Package currency maps the house country selector to a currency and
// renders monetary amounts for display.
package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Info is the currency configuration for one country.
type Info struct {
	Code   string
	Symbol string
	Locale language.Tag
}

var (
	unitedStates = Info{Code: "USD", Symbol: "$", Locale: language.AmericanEnglish}

	byCountry = map[string]Info{
		"United States":  unitedStates,
		"Canada":         {Code: "CAD", Symbol: "C$", Locale: language.MustParse("en-CA")},
		"Mexico":         {Code: "MXN", Symbol: "MX$", Locale: language.MustParse("es-MX")},
		"United Kingdom": {Code: "GBP", Symbol: "£", Locale: language.BritishEnglish},
	}
)

// Lookup returns the currency info for a country. Unrecognized, "Other"
// and empty selections fall back to United States dollars.
func Lookup(country string) Info {
	if info, ok := byCountry[country]; ok {
		return info
	}
	return unitedStates
}

// Symbol returns just the currency symbol for a country.
func Symbol(country string) string {
	return Lookup(country).Symbol
}

// Format renders an amount with the country's currency symbol and
// locale-correct grouping, using the default two fraction digits.
func Format(amount decimal.Decimal, country string) string {
	return FormatDigits(amount, country, -1, -1)
}

// FormatDigits is Format with fraction-digit overrides. Pass -1 to keep
// a default: max defaults to 2 and min defaults to min(2, max).
func FormatDigits(amount decimal.Decimal, country string, minDigits, maxDigits int) string {
	info := Lookup(country)

	if maxDigits < 0 {
		maxDigits = 2
	}
	if minDigits < 0 {
		minDigits = 2
		if maxDigits < minDigits {
			minDigits = maxDigits
		}
	}

	negative := amount.IsNegative()
	value, _ := amount.Abs().Float64()

	p := message.NewPrinter(info.Locale)
	formatted := p.Sprintf("%v", number.Decimal(value,
		number.MinFractionDigits(minDigits),
		number.MaxFractionDigits(maxDigits)))

	if negative {
		return "-" + info.Symbol + formatted
	}
	return info.Symbol + formatted
}
