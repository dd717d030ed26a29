// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatCurrency formats an amount for the given language.
// "en" renders US style ($1,234.56), "no" Norwegian style (1 234,56 kr).
func FormatCurrency(amount float64, lang string) string {
	neg := amount < 0
	cents := int64(math.Round(math.Abs(amount) * 100))
	whole := cents / 100
	frac := cents % 100

	if lang == "no" {
		s := fmt.Sprintf("%s,%02d kr", groupThousands(whole, " "), frac)
		if neg {
			return "-" + s
		}
		return s
	}

	s := fmt.Sprintf("$%s.%02d", groupThousands(whole, ","), frac)
	if neg {
		return "-" + s
	}
	return s
}

// FormatDate renders a date like "Jun 5, 2024".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatShortDate renders a date like "Jun 5".
func FormatShortDate(t time.Time) string {
	return t.Format("Jan 2")
}

// FormatDays renders a day count like "12 days" or "1 day".
func FormatDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// groupThousands adds a separator between digit groups of three.
// e.g., 1234567 with "," -> "1,234,567"
func groupThousands(n int64, sep string) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteString(sep)
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}
