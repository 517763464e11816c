package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonths(t *testing.T) {
	testCases := []struct {
		name     string
		start    time.Time
		months   int
		expected time.Time
	}{
		{name: "plain", start: date(2024, 1, 15), months: 12, expected: date(2025, 1, 15)},
		{name: "clamp to february", start: date(2024, 1, 31), months: 1, expected: date(2024, 2, 29)},
		{name: "clamp non leap", start: date(2023, 1, 31), months: 1, expected: date(2023, 2, 28)},
		{name: "leap day plus a year", start: date(2024, 2, 29), months: 12, expected: date(2025, 2, 28)},
		{name: "backwards", start: date(2024, 3, 31), months: -1, expected: date(2024, 2, 29)},
		{name: "year boundary", start: date(2024, 11, 30), months: 3, expected: date(2025, 2, 28)},
		{name: "sixty months", start: date(2024, 1, 15), months: 60, expected: date(2029, 1, 15)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, AddMonths(tc.start, tc.months))
		})
	}
}

func TestMonthEndAfter(t *testing.T) {
	assert.Equal(t, date(2025, 1, 31), MonthEndAfter(date(2024, 1, 15), 12))
	assert.Equal(t, date(2029, 1, 31), MonthEndAfter(date(2024, 1, 15), 60))
	assert.Equal(t, date(2025, 2, 28), MonthEndAfter(date(2024, 2, 29), 12))
	assert.Equal(t, date(2024, 2, 29), MonthEnd(date(2024, 2, 3)))
}

func TestDayTruncatesTimeAndZone(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	in := time.Date(2024, 6, 1, 23, 30, 0, 0, loc)
	assert.Equal(t, date(2024, 6, 1), Day(in))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 90, DaysBetween(date(2024, 1, 1), date(2024, 3, 31)))
	assert.Equal(t, -1, DaysBetween(date(2024, 1, 2), date(2024, 1, 1)))
	assert.Equal(t, 0, DaysBetween(date(2024, 1, 2), time.Date(2024, 1, 2, 18, 0, 0, 0, time.UTC)))
	assert.Equal(t, 366, DaysBetween(date(2024, 1, 1), date(2025, 1, 1)))
}

func TestTrailingMonths(t *testing.T) {
	months := TrailingMonths(date(2024, 3, 17), 4)
	require.Len(t, months, 4)
	assert.Equal(t, date(2023, 12, 1), months[0])
	assert.Equal(t, date(2024, 1, 1), months[1])
	assert.Equal(t, date(2024, 3, 1), months[3])

	assert.Empty(t, TrailingMonths(date(2024, 3, 17), 0))
}

func TestFormatting(t *testing.T) {
	d := date(2024, 9, 5)
	assert.Equal(t, "2024-09-05", ISO(d))
	assert.Equal(t, "Sep 2024", MonthLabel(d))

	parsed, err := ParseISO("2024-09-05")
	require.NoError(t, err)
	assert.Equal(t, d, parsed)

	_, err = ParseISO("05/09/2024")
	assert.Error(t, err)
}
