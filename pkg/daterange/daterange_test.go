package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNights(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{name: "three nights", start: "2025-07-15", end: "2025-07-18", want: 3},
		{name: "same day", start: "2025-07-15", end: "2025-07-15", want: 0},
		{name: "reversed", start: "2025-07-18", end: "2025-07-15", want: -3},
		{name: "across new year", start: "2025-12-30", end: "2026-01-02", want: 3},
		{name: "leap february", start: "2024-02-28", end: "2024-03-01", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Nights(MustParse(tt.start), MustParse(tt.end)))
		})
	}
}

func TestNights_IgnoresTimeOfDayAndZone(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	start := time.Date(2025, 3, 29, 23, 30, 0, 0, loc)
	end := time.Date(2025, 3, 31, 0, 15, 0, 0, loc)

	assert.Equal(t, 2, Nights(start, end))
}

// sharesDay считает пересечение перебором дней
func sharesDay(a, b Range) bool {
	for _, d := range a.Days() {
		if b.Contains(d) {
			return true
		}
	}
	return false
}

func TestOverlaps_MatchesDayByDayCheck(t *testing.T) {
	base := MustParse("2025-08-01")
	day := func(i int) time.Time { return base.AddDate(0, 0, i) }

	for a1 := 0; a1 < 7; a1++ {
		for a2 := a1 + 1; a2 <= 7; a2++ {
			for b1 := 0; b1 < 7; b1++ {
				for b2 := b1 + 1; b2 <= 7; b2++ {
					a := New(day(a1), day(a2))
					b := New(day(b1), day(b2))

					want := sharesDay(a, b)
					require.Equal(t, want, a.Overlaps(b), "a=%s b=%s", a, b)
					require.Equal(t, a.Overlaps(b), b.Overlaps(a), "symmetry a=%s b=%s", a, b)
				}
			}
		}
	}
}

func TestOverlaps_BoundaryTouch(t *testing.T) {
	a := New(MustParse("2025-07-15"), MustParse("2025-07-18"))

	assert.False(t, a.Overlaps(New(MustParse("2025-07-18"), MustParse("2025-07-20"))), "b starts on a's checkout")
	assert.False(t, a.Overlaps(New(MustParse("2025-07-10"), MustParse("2025-07-15"))), "b ends on a's check-in")
	assert.True(t, a.Overlaps(New(MustParse("2025-07-17"), MustParse("2025-07-18"))))
	assert.True(t, a.Overlaps(New(MustParse("2025-07-01"), MustParse("2025-08-01"))))
}

func TestFromInclusive(t *testing.T) {
	r := FromInclusive(MustParse("2025-08-01"), MustParse("2025-08-05"))

	assert.Equal(t, 5, r.Nights())
	assert.True(t, r.Contains(MustParse("2025-08-05")))
	assert.False(t, r.Contains(MustParse("2025-08-06")))

	// Выезд в первый день блокировки не пересекается
	assert.False(t, r.Overlaps(New(MustParse("2025-07-28"), MustParse("2025-08-01"))))
	// Заезд в последний день блокировки пересекается
	assert.True(t, r.Overlaps(New(MustParse("2025-08-05"), MustParse("2025-08-07"))))
}

func TestRange_Days(t *testing.T) {
	r := New(MustParse("2025-07-30"), MustParse("2025-08-02"))

	days := r.Days()
	require.Len(t, days, 3)
	assert.Equal(t, MustParse("2025-07-30"), days[0])
	assert.Equal(t, MustParse("2025-08-01"), days[2])

	assert.Empty(t, New(MustParse("2025-08-02"), MustParse("2025-08-02")).Days())
	assert.False(t, New(MustParse("2025-08-02"), MustParse("2025-08-01")).IsValid())
}

func TestParse(t *testing.T) {
	d, err := Parse("2025-07-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), d)

	_, err = Parse("15.07.2025")
	assert.Error(t, err)
}
