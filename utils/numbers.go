package utils

import (
	"strconv"
	"strings"
)

// ParseDecimal coerces user input to a float64, accepting both "1.234,56"
// and "1234.56" forms. Anything unparseable becomes zero — the follow-up
// save must never block on a bad numeric field.
func ParseDecimal(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	// Formato brasileiro: vírgula decimal, ponto de milhar
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
