package utils

import (
	"fmt"
	"strings"
)

// FormatRupees formats an amount for confirmation messages and bills,
// e.g. 125000.5 -> "₹1,25,000.50". Indian grouping: the last three
// digits, then groups of two.
func FormatRupees(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	formatted := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	if len(integerPart) <= 3 {
		return sign + "₹" + integerPart + "." + decimalPart
	}

	head := integerPart[:len(integerPart)-3]
	tail := integerPart[len(integerPart)-3:]

	var groups []string
	for i := len(head); i > 0; i -= 2 {
		start := i - 2
		if start < 0 {
			start = 0
		}
		groups = append([]string{head[start:i]}, groups...)
	}

	return sign + "₹" + strings.Join(groups, ",") + "," + tail + "." + decimalPart
}
