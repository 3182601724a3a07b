package database

import (
	"testing"
	"time"
)

func TestCivilDay(t *testing.T) {
	pkt := time.FixedZone("PKT", 5*60*60)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			// 01:00 local is still the same calendar day even though
			// UTC is five hours behind.
			"early morning east of UTC",
			time.Date(2026, time.September, 1, 1, 0, 0, 0, pkt),
			time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"midday east of UTC",
			time.Date(2026, time.September, 1, 13, 30, 0, 0, pkt),
			time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"local midnight",
			time.Date(2026, time.September, 1, 0, 0, 0, 0, pkt),
			time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"utc time passes through",
			time.Date(2026, time.September, 1, 23, 59, 0, 0, time.UTC),
			time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CivilDay(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("CivilDay(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCivilDayDisagreesWithUTCTruncation(t *testing.T) {
	pkt := time.FixedZone("PKT", 5*60*60)
	early := time.Date(2026, time.September, 1, 1, 0, 0, 0, pkt)

	truncated := early.Truncate(24 * time.Hour)
	civil := CivilDay(early)

	if truncated.Equal(civil) {
		t.Fatal("expected UTC truncation to land on a different day for early-morning local times")
	}
	if civil.Day() != 1 || truncated.Day() != 31 {
		t.Errorf("civil day = %v, truncated = %v; want Sep 1 vs Aug 31", civil, truncated)
	}
}
