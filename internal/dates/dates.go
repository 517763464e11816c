// Package dates provides the calendar arithmetic used by the currency and
// statistics code. All values are civil dates represented as UTC midnight.
package dates

import (
	"time"

	"github.com/jinzhu/now"
)

// ISOLayout is the date layout used at presentation boundaries
const ISOLayout = "2006-01-02"

// MonthLabelLayout is the layout of monthly bucket labels, e.g. "Jan 2024"
const MonthLabelLayout = "Jan 2006"

// Day truncates t to its civil date at UTC midnight
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthStart returns the first day of t's month
func MonthStart(t time.Time) time.Time {
	return now.With(Day(t)).BeginningOfMonth()
}

// MonthEnd returns the last day of t's month
func MonthEnd(t time.Time) time.Time {
	return Day(now.With(Day(t)).EndOfMonth())
}

// AddMonths adds n calendar months to t. When the target month is shorter
// than t's day of month, the result is clamped to the target month's last
// day (Jan 31 + 1 month = Feb 28/29), unlike time.AddDate which overflows
// into the following month.
func AddMonths(t time.Time, n int) time.Time {
	target := MonthStart(t).AddDate(0, n, 0)
	last := MonthEnd(target)
	if t.Day() > last.Day() {
		return last
	}
	return target.AddDate(0, 0, t.Day()-1)
}

// MonthEndAfter returns the last day of the month that is n calendar months
// after t
func MonthEndAfter(t time.Time, n int) time.Time {
	return MonthEnd(AddMonths(t, n))
}

// AddDays adds n days to the civil date of t
func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// DaysBetween returns the number of calendar days from "from" to "to";
// negative when to is before from
func DaysBetween(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)).Hours() / 24)
}

// TrailingMonths returns the first days of the n calendar months ending with
// asOf's month, in ascending order
func TrailingMonths(asOf time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	start := MonthStart(asOf).AddDate(0, -(n - 1), 0)
	months := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		months = append(months, start.AddDate(0, i, 0))
	}
	return months
}

// ISO formats t as YYYY-MM-DD
func ISO(t time.Time) string {
	return t.Format(ISOLayout)
}

// MonthLabel formats t as a monthly bucket label
func MonthLabel(t time.Time) string {
	return t.Format(MonthLabelLayout)
}

// ParseISO parses a YYYY-MM-DD date
func ParseISO(s string) (time.Time, error) {
	return time.ParseInLocation(ISOLayout, s, time.UTC)
}
