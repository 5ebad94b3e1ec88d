package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders a monetary or quantity value with exactly two
// decimal places, the convention for summary and deviation documents.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatWhole renders a value rounded to the nearest whole rupee, the
// convention for certificates and the note sheet.
func FormatWhole(d decimal.Decimal) string {
	return d.Round(0).StringFixed(0)
}

// FormatINR formats an amount into Indian Rupee notation. It uses the
// Indian numbering system where, after the rightmost 3 digits, digits are
// grouped in pairs (e.g., ₹1,23,45,678.90), always with 2 decimal places.
func FormatINR(d decimal.Decimal) string {
	negative := d.IsNegative()
	raw := d.Abs().StringFixed(2)

	parts := strings.SplitN(raw, ".", 2)
	result := "₹" + applyIndianGrouping(parts[0]) + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// applyIndianGrouping inserts commas into an integer string using the
// Indian numbering system: the rightmost 3 digits form the first group,
// then every 2 digits form subsequent groups.
func applyIndianGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]

	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}

	return result
}

// AmountInWords converts a rupee amount to Indian English words.
// Example: 913183 → "Nine Lakhs Thirteen Thousand One Hundred and Eighty Three Rupees Only/-"
func AmountInWords(d decimal.Decimal) string {
	if d.IsNegative() {
		return "Negative " + AmountInWords(d.Neg())
	}

	rupees := d.Round(0).IntPart()
	if rupees == 0 {
		return "Zero Rupees Only/-"
	}

	return convertToIndianWords(rupees) + " Rupees Only/-"
}

func convertToIndianWords(n int64) string {
	if n == 0 {
		return ""
	}

	var parts []string

	if n >= 10000000 {
		parts = append(parts, convertUnder100(n/10000000)+" Crores")
		n %= 10000000
	}

	if n >= 100000 {
		parts = append(parts, convertUnder100(n/100000)+" Lakhs")
		n %= 100000
	}

	if n >= 1000 {
		parts = append(parts, convertUnder100(n/1000)+" Thousand")
		n %= 1000
	}

	if n >= 100 {
		parts = append(parts, ones[n/100]+" Hundred")
		n %= 100
	}

	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and "+convertUnder100(n))
		} else {
			parts = append(parts, convertUnder100(n))
		}
	}

	return strings.Join(parts, " ")
}

func convertUnder100(n int64) string {
	if n < 20 {
		return ones[n]
	}
	result := tens[n/10]
	if n%10 != 0 {
		result += " " + ones[n%10]
	}
	return result
}

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// formatPercent renders a percentage with two decimal places and a % sign.
func formatPercent(d decimal.Decimal) string {
	return fmt.Sprintf("%s%%", d.StringFixed(2))
}
