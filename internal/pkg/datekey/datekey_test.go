package datekey_test

import (
	"testing"
	"time"

	"barberbook/internal/pkg/datekey"
)

func TestAddDaysAcrossMonth(t *testing.T) {
	got, err := datekey.AddDays("2024-03-25", 7)
	if err != nil {
		t.Fatalf("AddDays: %v", err)
	}
	if got != "2024-04-01" {
		t.Errorf("AddDays(2024-03-25, 7) = %q, want 2024-04-01", got)
	}
}

func TestAddDaysRejectsBadKey(t *testing.T) {
	if _, err := datekey.AddDays("25/03/2024", 7); err == nil {
		t.Error("AddDays accepted a malformed key")
	}
}

func TestFromTimeUsesLocalDate(t *testing.T) {
	loc := time.FixedZone("UTC+14", 14*3600)
	// 23:30 local on Jan 1st is already Jan 1st even though UTC says Dec 31st.
	local := time.Date(2024, 1, 1, 23, 30, 0, 0, loc)
	if got := datekey.FromTime(local); got != "2024-01-01" {
		t.Errorf("FromTime = %q, want 2024-01-01", got)
	}
}

func TestValid(t *testing.T) {
	for key, want := range map[string]bool{
		"2024-03-25": true,
		"2024-3-25":  false,
		"today":      false,
		"":           false,
	} {
		if got := datekey.Valid(key); got != want {
			t.Errorf("Valid(%q) = %t, want %t", key, got, want)
		}
	}
}

func TestValidTime(t *testing.T) {
	for s, want := range map[string]bool{
		"09:00": true,
		"14:30": true,
		"9:00":  false,
		"24:00": false,
		"0900":  false,
		"":      false,
	} {
		if got := datekey.ValidTime(s); got != want {
			t.Errorf("ValidTime(%q) = %t, want %t", s, got, want)
		}
	}
}
