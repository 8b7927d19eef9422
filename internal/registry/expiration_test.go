package registry

import (
	"testing"
	"time"
)

func TestQuarterExpiration(t *testing.T) {
	testCases := []struct {
		desc     string
		ref      time.Time
		expected time.Time
	}{
		{
			"start of year",
			time.Date(2025, 1, 1, 1, 1, 1, 0, time.UTC),
			time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			"early december",
			time.Date(2024, 12, 1, 1, 1, 1, 0, time.UTC),
			time.Date(2024, 12, 27, 0, 0, 0, 0, time.UTC),
		},
		{
			"day after expiration",
			time.Date(2024, 12, 28, 1, 1, 1, 0, time.UTC),
			time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			"expiration friday",
			time.Date(2024, 12, 27, 1, 1, 1, 0, time.UTC),
			time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			"eve of expiration",
			time.Date(2024, 12, 26, 1, 1, 1, 0, time.UTC),
			time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got := QuarterExpiration(tc.ref)
			if !got.Equal(tc.expected) {
				t.Fatalf("expiration mismatch! should be %s but got %s", tc.expected, got)
			}
		})
	}
}

func TestDateSuffix(t *testing.T) {
	expiration := time.Date(2024, 12, 27, 0, 0, 0, 0, time.UTC)
	if got := DateSuffix(expiration); got != "241227" {
		t.Fatalf("date suffix: got %s want 241227", got)
	}
}

func TestBybitCode(t *testing.T) {
	testCases := []struct {
		expiration time.Time
		expected   string
	}{
		{time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC), "H25"},
		{time.Date(2025, 6, 27, 0, 0, 0, 0, time.UTC), "M25"},
		{time.Date(2024, 9, 27, 0, 0, 0, 0, time.UTC), "U24"},
		{time.Date(2024, 12, 27, 0, 0, 0, 0, time.UTC), "Z24"},
	}

	for _, tc := range testCases {
		if got := BybitCode(tc.expiration); got != tc.expected {
			t.Fatalf("bybit code for %s: got %s want %s", tc.expiration, got, tc.expected)
		}
	}

	if got := BybitCode(time.Date(2025, 4, 25, 0, 0, 0, 0, time.UTC)); got != "" {
		t.Fatalf("non-quarterly month must yield no code, got %s", got)
	}
}

func TestDaysToExpiration(t *testing.T) {
	ref := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	if got := DaysToExpiration(ref); got != 26 {
		t.Fatalf("days to expiration: got %d want 26", got)
	}
}
