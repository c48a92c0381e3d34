package utils

import (
	"fmt"
	"strings"
)

// FormatCurrencyBRL formats a value in the Brazilian currency convention.
// Example: 15000.5 -> "R$ 15.000,50"
func FormatCurrencyBRL(amount float64) string {
	formatted := fmt.Sprintf("%.2f", amount)

	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	negative := strings.HasPrefix(integerPart, "-")
	integerPart = strings.TrimPrefix(integerPart, "-")

	// separador de milhar
	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	result := strings.Join(groups, ".") + "," + decimalPart
	if negative {
		result = "-" + result
	}
	return "R$ " + result
}
