// Package stats aggregates a pilot's flight, ground and simulator records
// into the reports shown on the dashboard: totals, monthly and cumulative
// series, leaderboards, aircraft and people breakdowns and progress toward
// license requirements.
//
// Every function is a pure reduction over the slices it receives. Hours are
// accumulated as exact decimals and rounded to one decimal place only when
// the result struct is built.
package stats

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"logbook/internal/models"
)

const (
	// DefaultMonths is the number of trailing months in monthly reports
	DefaultMonths = 12
	// MaxMonths bounds the trailing window of monthly reports
	MaxMonths = 120
	// DefaultLimit is the default length of leaderboards and recent lists
	DefaultLimit = 10
)

var hundred = decimal.NewFromInt(100)

// hours converts an accumulated decimal to its presentation value
func hours(d decimal.Decimal) float64 {
	return d.Round(1).InexactFloat64()
}

// percentage returns part/whole*100 rounded to one decimal, or 0 when whole
// is zero
func percentage(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Mul(hundred).Div(whole).Round(1).InexactFloat64()
}

// countPercentage is percentage for counters
func countPercentage(part, whole int) float64 {
	return percentage(decimal.NewFromInt(int64(part)), decimal.NewFromInt(int64(whole)))
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// monthWindow resolves a requested month count to a bounded window
func monthWindow(months int) int {
	return min(orDefault(months, DefaultMonths), MaxMonths)
}

// Person identifies a counterpart in people statistics
type Person struct {
	ID   uuid.UUID   `json:"id"`
	Name string      `json:"name"`
	Role models.Role `json:"role"`
}

func personOf(p models.Pilot) Person {
	return Person{ID: p.ID, Name: p.Name(), Role: p.Role}
}

// sumFlights adds up one decimal field over all flights
func sumFlights(flights []models.Flight, field func(models.Flight) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, f := range flights {
		total = total.Add(field(f))
	}
	return total
}

func flightTime(f models.Flight) decimal.Decimal { return f.FlightTime }
