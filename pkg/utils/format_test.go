package utils

import (
	"testing"
	"time"
)

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "$0.00"},
		{0.02162, "$0.02"},
		{1.15, "$1.15"},
		{1234.5, "$1,234.50"},
		{1234567.891, "$1,234,567.89"},
		{-42.5, "-$42.50"},
	}

	for _, tt := range tests {
		if got := FormatUSD(tt.amount); got != tt.want {
			t.Errorf("FormatUSD(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(7.9); got != "+7.90%" {
		t.Errorf("FormatPercent(7.9) = %q", got)
	}
	if got := FormatPercent(-3.25); got != "-3.25%" {
		t.Errorf("FormatPercent(-3.25) = %q", got)
	}
	if got := FormatPercent(0); got != "0.00%" {
		t.Errorf("FormatPercent(0) = %q", got)
	}
}

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{950, "950.00"},
		{1500, "1.50K"},
		{2500000, "2.50M"},
		{3100000000, "3.10B"},
		{-1500, "-1.50K"},
	}

	for _, tt := range tests {
		if got := FormatCompact(tt.amount); got != tt.want {
			t.Errorf("FormatCompact(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatVolume(t *testing.T) {
	if got := FormatVolume(850); got != "850" {
		t.Errorf("FormatVolume(850) = %q", got)
	}
	if got := FormatVolume(1250); got != "1.25K" {
		t.Errorf("FormatVolume(1250) = %q", got)
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(0.02162); got != "0.0216" {
		t.Errorf("FormatPrice(0.02162) = %q", got)
	}
	if got := FormatPrice(123.456); got != "123.46" {
		t.Errorf("FormatPrice(123.456) = %q", got)
	}
}

func TestFormatExpiryLabel(t *testing.T) {
	if got := FormatExpiryLabel("2026-09-18"); got != "Sep 18, 2026" {
		t.Errorf("FormatExpiryLabel = %q", got)
	}
	if got := FormatExpiryLabel("not-a-date"); got != "not-a-date" {
		t.Errorf("FormatExpiryLabel passthrough = %q", got)
	}
}

func TestFormatExpiryShort(t *testing.T) {
	now := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)

	if got := FormatExpiryShort("2026-09-18", now); got != "21 DTE" {
		t.Errorf("FormatExpiryShort 21 days = %q", got)
	}
	if got := FormatExpiryShort("2026-08-30", now); got != "2 DTE" {
		t.Errorf("FormatExpiryShort 2 days = %q", got)
	}
	if got := FormatExpiryShort("2026-08-28", now); got != "Expired" {
		t.Errorf("FormatExpiryShort past = %q", got)
	}
}
