package pricing

import (
	"regexp"
	"strconv"
	"strings"
)

// numberPattern matches the leftmost decimal-or-integer numeric substring.
var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// currencyStripper removes thousands separators and currency markers so
// formatted prices like "₹1,234.50" or "Rs 450" parse as plain numbers.
var currencyStripper = strings.NewReplacer(",", "", "₹", "", "$", "", "€", "", "£", "", "Rs", "")

// Extract recovers the first numeric token from free text, truncating any
// fractional part. It returns 0 when the text contains no number; callers
// must treat 0 as "no usable signal" and route it through their clamp
// bounds rather than propose a zero price.
func Extract(text string) int {
	cleaned := currencyStripper.Replace(text)
	match := numberPattern.FindString(cleaned)
	if match == "" {
		return 0
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return int(f)
}
