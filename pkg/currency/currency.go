// Package currency maps airport codes to billing currencies and display
// symbols. Lookups are pure table reads with safe fallbacks, so callers never
// see an error for an unknown code.
package currency

import "strings"

var airportCurrencies = map[string]string{
	"ATL": "USD", "LAX": "USD", "JFK": "USD",
	"LHR": "GBP",
	"CDG": "EUR", "FRA": "EUR", "AMS": "EUR",
	"NRT": "JPY", "HND": "JPY",
	"DEL": "INR", "BOM": "INR",
	"SYD": "AUD", "MEL": "AUD",
	"DXB": "AED",
	"DOH": "QAR",
	"SIN": "SGD",
	"BKK": "THB",
	"HKG": "HKD",
	"ICN": "KRW",
	"YYZ": "CAD",
}

var symbols = map[string]string{
	"USD": "$",
	"INR": "₹",
	"EUR": "€",
	"GBP": "£",
	"AUD": "A$",
	"JPY": "¥",
	"CAD": "C$",
	"CNY": "¥",
	"AED": "د.إ",
	"QAR": "ر.ق",
	"SGD": "S$",
	"THB": "฿",
	"HKD": "HK$",
	"KRW": "₩",
}

// Resolve returns the ISO currency code billed for flights departing the
// given airport. Unknown or misspelled codes fall back to USD.
func Resolve(airportCode string) string {
	if code, ok := airportCurrencies[strings.ToUpper(airportCode)]; ok {
		return code
	}
	return "USD"
}

// SymbolFor returns the display symbol for a currency code, or the code
// itself when no symbol is mapped.
func SymbolFor(currencyCode string) string {
	if sym, ok := symbols[currencyCode]; ok {
		return sym
	}
	return currencyCode
}
