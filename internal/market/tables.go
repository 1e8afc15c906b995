package market

// Static reference tables. Initialized once, read-only afterwards, so they
// are safe under unlimited concurrent lookups.

// CurrencySuffix maps an ISO currency code to the exchange suffix Yahoo-style
// symbols use for that currency's home market.
var CurrencySuffix = map[string]string{
	"USD": "",
	"GBP": ".L",
	"EUR": ".PA",
	"INR": ".NS",
	"JPY": ".T",
	"AUD": ".AX",
	"CAD": ".TO",
	"HKD": ".HK",
	"SGD": ".SI",
	"CNY": ".SS",
	"KRW": ".KS",
	"BRL": ".SA",
	"CHF": ".SW",
	"SEK": ".ST",
	"NZD": ".NZ",
}

// CountryCurrency maps a normalized country name or short code to its primary
// currency. Every value must be a key of CurrencySuffix; unknown countries
// fall back to USD at lookup time.
var CountryCurrency = map[string]string{
	"us":             "USD",
	"usa":            "USD",
	"united states":  "USD",
	"uk":             "GBP",
	"united kingdom": "GBP",
	"britain":        "GBP",
	"england":        "GBP",
	"france":         "EUR",
	"germany":        "EUR",
	"spain":          "EUR",
	"italy":          "EUR",
	"netherlands":    "EUR",
	"india":          "INR",
	"japan":          "JPY",
	"australia":      "AUD",
	"canada":         "CAD",
	"hong kong":      "HKD",
	"singapore":      "SGD",
	"china":          "CNY",
	"south korea":    "KRW",
	"korea":          "KRW",
	"brazil":         "BRL",
	"switzerland":    "CHF",
	"sweden":         "SEK",
	"new zealand":    "NZD",
}

// Overrides resolves known-ambiguous names that generic search cannot
// disambiguate reliably. Keys are Normalize(identifier)+"|"+Normalize(country).
var Overrides = map[string]string{
	"bp|uk":                  "BP.L",
	"bp|united kingdom":      "BP.L",
	"shell|uk":               "SHEL.L",
	"shell|united kingdom":   "SHEL.L",
	"hsbc|uk":                "HSBA.L",
	"hsbc|united kingdom":    "HSBA.L",
	"tata motors|india":      "TATAMOTORS.NS",
	"reliance|india":         "RELIANCE.NS",
	"infosys|india":          "INFY.NS",
	"sap|germany":            "SAP.DE",
	"toyota|japan":           "7203.T",
	"samsung|south korea":    "005930.KS",
	"samsung|korea":          "005930.KS",
	"bhp|australia":          "BHP.AX",
	"commonwealth bank|australia": "CBA.AX",
}

// CurrencyFor returns the primary currency for a country, defaulting to USD.
func CurrencyFor(country string) string {
	if cur, ok := CountryCurrency[Normalize(country)]; ok {
		return cur
	}
	return "USD"
}

// SuffixFor returns the exchange suffix for a currency, defaulting to "".
func SuffixFor(currency string) string {
	return CurrencySuffix[currency]
}
