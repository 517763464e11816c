package stats

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"logbook/internal/dates"
	"logbook/internal/models"
)

// PassengerEntry is one row of the passenger leaderboard
type PassengerEntry struct {
	Person      Person  `json:"person"`
	FlightCount int     `json:"flight_count"`
	TotalTime   float64 `json:"total_time"`
}

type passengerAcc struct {
	person Person
	count  int
	time   decimal.Decimal
}

// PassengerLeaderboard ranks passengers by flights flown together, then by
// the time spent in the air together
func PassengerLeaderboard(flights []models.Flight, limit int) []PassengerEntry {
	limit = orDefault(limit, DefaultLimit)
	byID := make(map[uuid.UUID]*passengerAcc)
	var ranked []*passengerAcc
	for _, f := range flights {
		seen := make(map[uuid.UUID]struct{}, len(f.Passengers))
		for _, p := range f.Passengers {
			if !p.Role.IsPassenger() {
				continue
			}
			if _, dup := seen[p.ID]; dup {
				continue
			}
			seen[p.ID] = struct{}{}

			acc, ok := byID[p.ID]
			if !ok {
				acc = &passengerAcc{person: personOf(p)}
				byID[p.ID] = acc
				ranked = append(ranked, acc)
			}
			acc.count++
			acc.time = acc.time.Add(f.FlightTime)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.count != b.count {
			return a.count > b.count
		}
		if c := a.time.Cmp(b.time); c != 0 {
			return c > 0
		}
		return lessPerson(a.person, b.person)
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	result := make([]PassengerEntry, 0, len(ranked))
	for _, acc := range ranked {
		result = append(result, PassengerEntry{
			Person:      acc.person,
			FlightCount: acc.count,
			TotalTime:   hours(acc.time),
		})
	}
	return result
}

// InstructorEntry is one row of the instructor leaderboard
type InstructorEntry struct {
	Person      Person  `json:"person"`
	FlightCount int     `json:"flight_count"`
	FlightTime  float64 `json:"flight_time"`
	GroundCount int     `json:"ground_count"`
	GroundTime  float64 `json:"ground_time"`
	TotalTime   float64 `json:"total_time"`
}

type instructorAcc struct {
	person      Person
	flightCount int
	flightTime  decimal.Decimal
	groundCount int
	groundTime  decimal.Decimal
}

func (a *instructorAcc) total() decimal.Decimal {
	return a.flightTime.Add(a.groundTime)
}

// InstructorLeaderboard ranks instructors and examiners by the combined
// flight and ground instruction time they gave
func InstructorLeaderboard(flights []models.Flight, grounds []models.GroundSession, limit int) []InstructorEntry {
	limit = orDefault(limit, DefaultLimit)
	byID := make(map[uuid.UUID]*instructorAcc)
	var ranked []*instructorAcc
	get := func(p models.Pilot) *instructorAcc {
		acc, ok := byID[p.ID]
		if !ok {
			acc = &instructorAcc{person: personOf(p)}
			byID[p.ID] = acc
			ranked = append(ranked, acc)
		}
		return acc
	}

	for _, f := range flights {
		if !f.HasInstruction() {
			continue
		}
		acc := get(*f.Instructor)
		acc.flightCount++
		acc.flightTime = acc.flightTime.Add(f.FlightTime)
	}
	for _, g := range grounds {
		if g.Instructor == nil || !g.Instructor.Role.IsInstructor() {
			continue
		}
		acc := get(*g.Instructor)
		acc.groundCount++
		acc.groundTime = acc.groundTime.Add(g.GroundTime)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if c := a.total().Cmp(b.total()); c != 0 {
			return c > 0
		}
		if a.flightCount != b.flightCount {
			return a.flightCount > b.flightCount
		}
		return lessPerson(a.person, b.person)
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	result := make([]InstructorEntry, 0, len(ranked))
	for _, acc := range ranked {
		result = append(result, InstructorEntry{
			Person:      acc.person,
			FlightCount: acc.flightCount,
			FlightTime:  hours(acc.flightTime),
			GroundCount: acc.groundCount,
			GroundTime:  hours(acc.groundTime),
			TotalTime:   hours(acc.total()),
		})
	}
	return result
}

func lessPerson(a, b Person) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ID.String() < b.ID.String()
}

// PeopleCounts summarizes who the pilot has flown with
type PeopleCounts struct {
	UniquePassengers  int `json:"unique_passengers"`
	UniqueInstructors int `json:"unique_instructors"`
	TotalUniquePeople int `json:"total_unique_people"`
	FlightsWithPeople int `json:"flights_with_people"`
}

// UniquePeopleCounts counts distinct passengers and instructors across all
// flights
func UniquePeopleCounts(flights []models.Flight) PeopleCounts {
	passengers := make(map[uuid.UUID]struct{})
	instructors := make(map[uuid.UUID]struct{})
	everyone := make(map[uuid.UUID]struct{})
	var counts PeopleCounts

	for _, f := range flights {
		withPeople := false
		for _, p := range f.Passengers {
			if p.Role.IsPassenger() {
				passengers[p.ID] = struct{}{}
				everyone[p.ID] = struct{}{}
				withPeople = true
			}
		}
		if f.HasInstruction() {
			instructors[f.Instructor.ID] = struct{}{}
			everyone[f.Instructor.ID] = struct{}{}
			withPeople = true
		}
		if withPeople {
			counts.FlightsWithPeople++
		}
	}

	counts.UniquePassengers = len(passengers)
	counts.UniqueInstructors = len(instructors)
	counts.TotalUniquePeople = len(everyone)
	return counts
}

// RoleDistribution classifies flights by company on board. Solo flights had
// nobody qualifying; a flight with both a passenger and an instructor counts
// in both of those buckets.
type RoleDistribution struct {
	TotalFlights       int `json:"total_flights"`
	SoloFlights        int `json:"solo_flights"`
	PassengerFlights   int `json:"passenger_flights"`
	InstructionFlights int `json:"instruction_flights"`
}

// PeopleRoleDistribution counts solo, passenger and instruction flights
func PeopleRoleDistribution(flights []models.Flight) RoleDistribution {
	d := RoleDistribution{TotalFlights: len(flights)}
	for _, f := range flights {
		withPassengers := f.HasPassengers()
		withInstruction := f.HasInstruction()
		if withPassengers {
			d.PassengerFlights++
		}
		if withInstruction {
			d.InstructionFlights++
		}
		if !withPassengers && !withInstruction {
			d.SoloFlights++
		}
	}
	return d
}

// TopPassenger is the leading passenger with their share of passenger flights
type TopPassenger struct {
	PassengerEntry
	Percentage float64 `json:"percentage"`
}

// TopInstructor is the leading instructor with their share of instruction
// flights
type TopInstructor struct {
	InstructorEntry
	Percentage float64 `json:"percentage"`
}

// Insights highlights the pilot's most frequent company
type Insights struct {
	TopPassenger                *TopPassenger  `json:"top_passenger"`
	TopInstructor               *TopInstructor `json:"top_instructor"`
	PassengerFlightPercentage   float64        `json:"passenger_flight_percentage"`
	InstructionFlightPercentage float64        `json:"instruction_flight_percentage"`
}

// PeopleInsights reports the top passenger and instructor and how often the
// pilot flies with company
func PeopleInsights(flights []models.Flight, grounds []models.GroundSession) Insights {
	d := PeopleRoleDistribution(flights)
	insights := Insights{
		PassengerFlightPercentage:   countPercentage(d.PassengerFlights, d.TotalFlights),
		InstructionFlightPercentage: countPercentage(d.InstructionFlights, d.TotalFlights),
	}

	if top := PassengerLeaderboard(flights, 1); len(top) > 0 {
		insights.TopPassenger = &TopPassenger{
			PassengerEntry: top[0],
			Percentage:     countPercentage(top[0].FlightCount, d.PassengerFlights),
		}
	}
	if top := InstructorLeaderboard(flights, grounds, 1); len(top) > 0 {
		insights.TopInstructor = &TopInstructor{
			InstructorEntry: top[0],
			Percentage:      countPercentage(top[0].FlightCount, d.InstructionFlights),
		}
	}
	return insights
}

// ProgressionPoint is an instructor's cumulative flight time at a date
type ProgressionPoint struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

// ProgressionSeries is the cumulative time flown with one instructor
type ProgressionSeries struct {
	Instructor Person             `json:"instructor"`
	Points     []ProgressionPoint `json:"points"`
}

// Progression is a multi-series chart sampled on a shared date axis
type Progression struct {
	Dates  []string            `json:"dates"`
	Series []ProgressionSeries `json:"series"`
}

// InstructorTimeProgression builds, for every instructor, the cumulative
// flight time flown together. Each series is sampled on the union of all
// instruction dates, carrying its last value forward; a series starts at
// that instructor's first flight.
func InstructorTimeProgression(flights []models.Flight) Progression {
	type series struct {
		person Person
		daily  map[time.Time]decimal.Decimal
		total  decimal.Decimal
	}

	byID := make(map[uuid.UUID]*series)
	var all []*series
	axis := make(map[time.Time]struct{})
	for _, f := range flights {
		if !f.HasInstruction() {
			continue
		}
		s, ok := byID[f.Instructor.ID]
		if !ok {
			s = &series{person: personOf(*f.Instructor), daily: make(map[time.Time]decimal.Decimal)}
			byID[f.Instructor.ID] = s
			all = append(all, s)
		}
		d := dates.Day(f.Date)
		s.daily[d] = s.daily[d].Add(f.FlightTime)
		s.total = s.total.Add(f.FlightTime)
		axis[d] = struct{}{}
	}

	days := make([]time.Time, 0, len(axis))
	for d := range axis {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	sort.SliceStable(all, func(i, j int) bool {
		if c := all[i].total.Cmp(all[j].total); c != 0 {
			return c > 0
		}
		return lessPerson(all[i].person, all[j].person)
	})

	p := Progression{
		Dates:  make([]string, 0, len(days)),
		Series: make([]ProgressionSeries, 0, len(all)),
	}
	for _, d := range days {
		p.Dates = append(p.Dates, dates.ISO(d))
	}
	for _, s := range all {
		cumulative := decimal.Zero
		started := false
		var points []ProgressionPoint
		for _, d := range days {
			if v, ok := s.daily[d]; ok {
				cumulative = cumulative.Add(v)
				started = true
			}
			if !started {
				continue
			}
			points = append(points, ProgressionPoint{Date: dates.ISO(d), Hours: hours(cumulative)})
		}
		p.Series = append(p.Series, ProgressionSeries{Instructor: s.person, Points: points})
	}
	return p
}
