package stats

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"logbook/internal/dates"
	"logbook/internal/models"
)

// monthKey identifies the calendar month of t
func monthKey(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// MonthlyHours is the flight time logged in one calendar month
type MonthlyHours struct {
	Month string  `json:"month"`
	Hours float64 `json:"hours"`
}

// MonthlyBreakdown buckets flight time into the trailing months ending with
// asOf's month. Months without flights are present with zero hours. The
// window is capped at MaxMonths.
func MonthlyBreakdown(flights []models.Flight, months int, asOf time.Time) []MonthlyHours {
	buckets := dates.TrailingMonths(asOf, monthWindow(months))

	sums := make(map[int]decimal.Decimal, len(buckets))
	for _, f := range flights {
		key := monthKey(f.Date)
		sums[key] = sums[key].Add(f.FlightTime)
	}

	result := make([]MonthlyHours, 0, len(buckets))
	for _, m := range buckets {
		result = append(result, MonthlyHours{
			Month: dates.MonthLabel(m),
			Hours: hours(sums[monthKey(m)]),
		})
	}
	return result
}

// MonthlyPeople is the people activity logged in one calendar month
type MonthlyPeople struct {
	Month                  string `json:"month"`
	TotalFlights           int    `json:"total_flights"`
	FlightsWithPassengers  int    `json:"flights_with_passengers"`
	FlightsWithInstruction int    `json:"flights_with_instruction"`
	UniquePeople           int    `json:"unique_people"`
}

// MonthlyPeopleFrequency counts, per trailing month, flights with company and
// the number of distinct qualifying people flown with
func MonthlyPeopleFrequency(flights []models.Flight, months int, asOf time.Time) []MonthlyPeople {
	buckets := dates.TrailingMonths(asOf, monthWindow(months))

	type bucket struct {
		MonthlyPeople
		people map[uuid.UUID]struct{}
	}
	byMonth := make(map[int]*bucket, len(buckets))
	for _, m := range buckets {
		byMonth[monthKey(m)] = &bucket{
			MonthlyPeople: MonthlyPeople{Month: dates.MonthLabel(m)},
			people:        make(map[uuid.UUID]struct{}),
		}
	}

	for _, f := range flights {
		b, ok := byMonth[monthKey(f.Date)]
		if !ok {
			continue
		}
		b.TotalFlights++
		if f.HasPassengers() {
			b.FlightsWithPassengers++
		}
		if f.HasInstruction() {
			b.FlightsWithInstruction++
			b.people[f.Instructor.ID] = struct{}{}
		}
		for _, p := range f.Passengers {
			if p.Role.IsPassenger() {
				b.people[p.ID] = struct{}{}
			}
		}
	}

	result := make([]MonthlyPeople, 0, len(buckets))
	for _, m := range buckets {
		b := byMonth[monthKey(m)]
		b.UniquePeople = len(b.people)
		result = append(result, b.MonthlyPeople)
	}
	return result
}
