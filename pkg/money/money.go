package money

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol is stamped on formatted amounts. Orders are single-currency.
const CurrencySymbol = "₹"

func init() {
	// Wire format carries plain JSON numbers, matching the legacy records.
	decimal.MarshalJSONWithoutQuotes = true
}

var (
	parenRe   = regexp.MustCompile(`\(.*?\)`)
	nonNumRe  = regexp.MustCompile(`[^0-9.]`)
	multiDots = regexp.MustCompile(`\.`)
)

// ParsePrice extracts a decimal amount from human-formatted price text such
// as "₹236.00 (Incl. GST)". Parenthetical annotations and any non-numeric
// characters are stripped first. Unparsable input yields zero, never an error.
func ParsePrice(text string) decimal.Decimal {
	cleaned := parenRe.ReplaceAllString(text, "")
	cleaned = nonNumRe.ReplaceAllString(cleaned, "")
	if cleaned == "" || cleaned == "." {
		return decimal.Zero
	}
	if len(multiDots.FindAllString(cleaned, -1)) > 1 {
		// Keep everything up to the second dot; "1.234.56" parses as 1.234.
		first := strings.Index(cleaned, ".")
		second := strings.Index(cleaned[first+1:], ".")
		cleaned = cleaned[:first+1+second]
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Round2 rounds half away from zero to two decimal places. Applied at every
// monetary boundary so the export formats cannot drift apart.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Format renders a fixed two-decimal amount with the currency symbol.
func Format(d decimal.Decimal) string {
	return CurrencySymbol + d.StringFixed(2)
}

// FromFloat converts a float input (query params, stored columns) into a
// decimal without re-rounding.
func FromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}
