// Package currency derives regulatory status from a pilot's records:
// passenger-carrying currency, medical certificate privileges and license
// validity. Every function is a pure computation over the records passed in
// and an explicit reference date.
package currency

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"logbook/internal/dates"
	"logbook/internal/models"
)

const (
	// WindowDays is the look-back period for passenger currency
	WindowDays = 90
	// RequiredLandings is the number of landings needed within the window
	RequiredLandings = 3
)

// Status is the colour-coded state of a certificate or currency
type Status string

// Known statuses
const (
	StatusNone     Status = "none"
	StatusExpired  Status = "expired"
	StatusCritical Status = "critical"
	StatusWarning  Status = "warning"
	StatusCurrent  Status = "current"
)

// statusForDaysRemaining buckets the remaining validity of something that is
// still valid
func statusForDaysRemaining(days int) Status {
	switch {
	case days < 0:
		return StatusExpired
	case days < 30:
		return StatusCritical
	case days < 60:
		return StatusWarning
	default:
		return StatusCurrent
	}
}

// Kind selects day or night passenger currency
type Kind int

// Currency kinds
const (
	Day Kind = iota
	Night
)

// String returns the lower-case name of the kind
func (k Kind) String() string {
	if k == Night {
		return "night"
	}
	return "day"
}

// ParseKind parses "day" or "night"
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "":
		return Day, nil
	case "night":
		return Night, nil
	default:
		return Day, fmt.Errorf("unknown currency kind %q", s)
	}
}

// landings returns the landing counter that counts toward the given kind:
// day landings for day currency, night full-stop landings for night currency
func (k Kind) landings(f models.Flight) int {
	if k == Night {
		return f.NightFullStopLandings
	}
	return f.DayLandings
}

// PassengerStatus reports day and night passenger-carrying currency
type PassengerStatus struct {
	DayCurrent    bool       `json:"day_current"`
	DayLandings   int        `json:"day_landings"`
	DayExpiry     *time.Time `json:"day_expiry"`
	NightCurrent  bool       `json:"night_current"`
	NightLandings int        `json:"night_landings"`
	NightExpiry   *time.Time `json:"night_expiry"`
}

// PassengerCurrency checks the three-takeoffs-and-landings rule for
// carrying passengers. Landings are counted over flights dated within
// [asOf-90d, asOf]. The expiry date is computed independently: walking back
// from the most recent flight, the flight at which the running landing total
// first reaches three fixes expiry at that flight's date plus 90 days.
func PassengerCurrency(flights []models.Flight, asOf time.Time) PassengerStatus {
	asOf = dates.Day(asOf)
	windowStart := dates.AddDays(asOf, -WindowDays)

	var status PassengerStatus
	for _, f := range flights {
		d := dates.Day(f.Date)
		if d.Before(windowStart) || d.After(asOf) {
			continue
		}
		status.DayLandings += Day.landings(f)
		status.NightLandings += Night.landings(f)
	}

	status.DayCurrent = status.DayLandings >= RequiredLandings
	status.NightCurrent = status.NightLandings >= RequiredLandings
	status.DayExpiry = rollingExpiry(flights, asOf, Day)
	status.NightExpiry = rollingExpiry(flights, asOf, Night)
	return status
}

// rollingExpiry finds the date at which the most recent three landings of
// the given kind stop counting. Flights after asOf are ignored. Returns nil
// when fewer than three landings were ever logged.
func rollingExpiry(flights []models.Flight, asOf time.Time, kind Kind) *time.Time {
	var withLandings []models.Flight
	for _, f := range flights {
		if kind.landings(f) > 0 && !dates.Day(f.Date).After(asOf) {
			withLandings = append(withLandings, f)
		}
	}

	sort.SliceStable(withLandings, func(i, j int) bool {
		return withLandings[i].Date.After(withLandings[j].Date)
	})

	count := 0
	for _, f := range withLandings {
		count += kind.landings(f)
		if count >= RequiredLandings {
			expiry := dates.AddDays(f.Date, WindowDays)
			return &expiry
		}
	}
	return nil
}

// DaysUntilCurrencyExpires returns the number of days left before the given
// kind of passenger currency lapses, or nil when the pilot is not current
func DaysUntilCurrencyExpires(flights []models.Flight, kind Kind, asOf time.Time) *int {
	status := PassengerCurrency(flights, asOf)

	current, expiry := status.DayCurrent, status.DayExpiry
	if kind == Night {
		current, expiry = status.NightCurrent, status.NightExpiry
	}
	if !current || expiry == nil {
		return nil
	}

	days := dates.DaysBetween(asOf, *expiry)
	return &days
}
