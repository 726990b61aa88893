// Package utils provides shared formatting helpers.
package utils

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const expiryLayout = "2006-01-02"

// FormatUSD formats a dollar amount with thousands separators.
func FormatUSD(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	str := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(str, ".")
	intPart := groupThousands(parts[0])

	result := "$" + intPart + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	s = s[:n-3]
	for len(s) > 3 {
		result = s[len(s)-3:] + "," + result
		s = s[:len(s)-3]
	}
	return s + "," + result
}

// FormatPercent formats a percentage with an explicit sign.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value)
}

// FormatPnL formats a signed dollar amount.
func FormatPnL(pnl float64) string {
	formatted := FormatUSD(pnl)
	if pnl > 0 {
		return "+" + formatted
	}
	return formatted
}

// FormatCompact formats a number in compact form (K/M/B).
func FormatCompact(amount float64) string {
	abs := math.Abs(amount)

	switch {
	case abs >= 1e9:
		return fmt.Sprintf("%.2fB", amount/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.2fM", amount/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.2fK", amount/1e3)
	}
	return fmt.Sprintf("%.2f", amount)
}

// FormatVolume formats a contract count in compact form.
func FormatVolume(volume int64) string {
	if volume >= 1000000 {
		return fmt.Sprintf("%.2fM", float64(volume)/1000000)
	} else if volume >= 1000 {
		return fmt.Sprintf("%.2fK", float64(volume)/1000)
	}
	return fmt.Sprintf("%d", volume)
}

// FormatPrice formats a price with extra precision for sub-dollar values.
func FormatPrice(price float64) string {
	if price >= 10 {
		return fmt.Sprintf("%.2f", price)
	}
	return fmt.Sprintf("%.4f", price)
}

// FormatExpiryLabel renders an ISO expiry date as a human-readable label,
// e.g. "2026-09-18" becomes "Sep 18, 2026".
func FormatExpiryLabel(iso string) string {
	d, err := time.Parse(expiryLayout, iso)
	if err != nil {
		return iso
	}
	return d.Format("Jan 2, 2006")
}

// FormatExpiryShort renders the days-to-expiry label for an ISO expiry date.
// Expiry is treated as noon UTC and partial days round up.
func FormatExpiryShort(iso string, now time.Time) string {
	d, err := time.Parse(expiryLayout, iso)
	if err != nil {
		return iso
	}
	expiry := d.Add(12 * time.Hour)
	days := int(math.Ceil(expiry.Sub(now).Hours() / 24))
	if days <= 0 {
		return "Expired"
	}
	if days == 1 {
		return "1 DTE"
	}
	return fmt.Sprintf("%d DTE", days)
}
