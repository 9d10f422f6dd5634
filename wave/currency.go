package wave

// LedgerCurrency is the currency the whole report is denominated in.
// Wave calls this the business currency; its exports always report it
// in US dollars.
const LedgerCurrency = "USD"

// currencySymbols is the closed set of amount-cell prefixes the export
// uses, mapped to their currency codes. Adding a currency is a one-line
// change here.
var currencySymbols = map[string]string{
	"$":   "USD",
	"€":   "EUR",
	"£":   "GBP",
	"CHF": "CHF",
}

// matchSymbol matches the longest known currency symbol at the start of
// text. Returns the symbol, its currency code, and whether one matched.
func matchSymbol(text string) (symbol, code string, ok bool) {
	for sym, c := range currencySymbols {
		if len(sym) <= len(text) && text[:len(sym)] == sym {
			if len(sym) > len(symbol) {
				symbol, code = sym, c
			}
		}
	}
	return symbol, code, symbol != ""
}

// knownCurrency reports whether code appears in the symbol table.
func knownCurrency(code string) bool {
	for _, c := range currencySymbols {
		if c == code {
			return true
		}
	}
	return false
}
