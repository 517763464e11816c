package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"logbook/internal/dates"
	"logbook/internal/stats"
)

// dateChoices are the quick picks offered when logging a session
var dateChoices = []struct {
	key     string
	label   string
	daysAgo int
}{
	{"today", "📆 Today", 0},
	{"yesterday", "⏮ Yesterday", 1},
	{"2daysago", "⏮⏮ 2 days ago", 2},
	{"3daysago", "⏮⏮⏮ 3 days ago", 3},
}

// monthlyPeriods are the trailing windows offered by /monthly
var monthlyPeriods = []int{3, 6, 12, 24}

// maxSessionHours bounds a single ground session
var maxSessionHours = decimal.NewFromInt(24)

var (
	errFutureDate   = errors.New("date is in the future")
	errInvalidHours = errors.New("hours must be a positive number up to 24")
)

// resolveDateChoice maps a quick-pick key to a calendar date
func resolveDateChoice(key string, today time.Time) (time.Time, bool) {
	for _, c := range dateChoices {
		if c.key == key {
			return dates.AddDays(today, -c.daysAgo), true
		}
	}
	return time.Time{}, false
}

// parseCustomDate accepts "today" or YYYY-MM-DD, rejecting future dates
func parseCustomDate(text string, today time.Time) (time.Time, error) {
	text = strings.TrimSpace(text)
	if strings.EqualFold(text, "today") {
		return dates.Day(today), nil
	}
	d, err := dates.ParseISO(text)
	if err != nil {
		return time.Time{}, err
	}
	if d.After(dates.Day(today)) {
		return time.Time{}, errFutureDate
	}
	return d, nil
}

// parseMonthlyPeriod reads the month count from a monthly:N callback
func parseMonthlyPeriod(data string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(data, "monthly:"))
	if err != nil || n <= 0 || n > stats.MaxMonths {
		return 0, fmt.Errorf("invalid period %q", data)
	}
	return n, nil
}

// parseHours reads a duration in decimal hours; a comma decimal separator
// is accepted
func parseHours(text string) (decimal.Decimal, error) {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	h, err := decimal.NewFromString(text)
	if err != nil || !h.IsPositive() || h.GreaterThan(maxSessionHours) {
		return decimal.Zero, errInvalidHours
	}
	return h, nil
}
