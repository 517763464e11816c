package stats

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"logbook/internal/models"
)

// AircraftHours is the time logged on one aircraft
type AircraftHours struct {
	TailNumber  string            `json:"tail_number"`
	Type        string            `json:"type"`
	Class       models.PlaneClass `json:"plane_class"`
	Hours       float64           `json:"hours"`
	FlightCount int               `json:"flight_count"`
	Location    string            `json:"location,omitempty"`
}

type aircraftAcc struct {
	plane    models.Plane
	hours    decimal.Decimal
	count    int
	lastSeen time.Time
	location string
	order    int
}

// planeKey identifies a plane even when the record was never persisted
func planeKey(p models.Plane) string {
	if p.ID != uuid.Nil {
		return p.ID.String()
	}
	return p.TailNumber
}

// accumulateAircraft groups flights by plane. The location of a plane is the
// origin of its most recently flown flight; for same-day flights the first
// one in input order wins.
func accumulateAircraft(flights []models.Flight) []*aircraftAcc {
	byPlane := make(map[string]*aircraftAcc)
	var ordered []*aircraftAcc
	for _, f := range flights {
		key := planeKey(f.Plane)
		acc, ok := byPlane[key]
		if !ok {
			acc = &aircraftAcc{
				plane:    f.Plane,
				lastSeen: f.Date,
				location: f.Route.Origin(),
				order:    len(ordered),
			}
			byPlane[key] = acc
			ordered = append(ordered, acc)
		} else if f.Date.After(acc.lastSeen) {
			acc.lastSeen = f.Date
			acc.location = f.Route.Origin()
		}
		acc.hours = acc.hours.Add(f.FlightTime)
		acc.count++
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if c := ordered[i].hours.Cmp(ordered[j].hours); c != 0 {
			return c > 0
		}
		return ordered[i].plane.TailNumber < ordered[j].plane.TailNumber
	})
	return ordered
}

func (a *aircraftAcc) result() AircraftHours {
	return AircraftHours{
		TailNumber:  a.plane.TailNumber,
		Type:        a.plane.Type,
		Class:       a.plane.Class,
		Hours:       hours(a.hours),
		FlightCount: a.count,
		Location:    a.location,
	}
}

// AircraftBreakdown reports flight time per distinct aircraft, most flown
// first
func AircraftBreakdown(flights []models.Flight) []AircraftHours {
	accs := accumulateAircraft(flights)
	result := make([]AircraftHours, 0, len(accs))
	for _, acc := range accs {
		result = append(result, acc.result())
	}
	return result
}

// ClassHours is the time logged in one plane class
type ClassHours struct {
	Hours       float64 `json:"hours"`
	FlightCount int     `json:"flight_count"`
	Percentage  float64 `json:"percentage"`
}

// AircraftClassBreakdown groups flight time by plane class. Percentages are
// shares of the total flight time and are all zero when nothing was logged.
func AircraftClassBreakdown(flights []models.Flight) map[models.PlaneClass]ClassHours {
	type acc struct {
		hours decimal.Decimal
		count int
	}
	byClass := make(map[models.PlaneClass]*acc)
	total := decimal.Zero
	for _, f := range flights {
		a, ok := byClass[f.Plane.Class]
		if !ok {
			a = &acc{}
			byClass[f.Plane.Class] = a
		}
		a.hours = a.hours.Add(f.FlightTime)
		a.count++
		total = total.Add(f.FlightTime)
	}

	result := make(map[models.PlaneClass]ClassHours, len(byClass))
	for class, a := range byClass {
		result[class] = ClassHours{
			Hours:       hours(a.hours),
			FlightCount: a.count,
			Percentage:  percentage(a.hours, total),
		}
	}
	return result
}

// TypeHours is the time logged on one aircraft type
type TypeHours struct {
	Type        string            `json:"type"`
	Class       models.PlaneClass `json:"plane_class"`
	Hours       float64           `json:"hours"`
	FlightCount int               `json:"flight_count"`
}

// AircraftTypeStatistics groups flight time by aircraft type and class, most
// flown first
func AircraftTypeStatistics(flights []models.Flight) []TypeHours {
	type key struct {
		typ   string
		class models.PlaneClass
	}
	type acc struct {
		key
		hours decimal.Decimal
		count int
	}

	byType := make(map[key]*acc)
	var ordered []*acc
	for _, f := range flights {
		k := key{typ: f.Plane.Type, class: f.Plane.Class}
		a, ok := byType[k]
		if !ok {
			a = &acc{key: k}
			byType[k] = a
			ordered = append(ordered, a)
		}
		a.hours = a.hours.Add(f.FlightTime)
		a.count++
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if c := ordered[i].hours.Cmp(ordered[j].hours); c != 0 {
			return c > 0
		}
		if ordered[i].typ != ordered[j].typ {
			return ordered[i].typ < ordered[j].typ
		}
		return ordered[i].class < ordered[j].class
	})

	result := make([]TypeHours, 0, len(ordered))
	for _, a := range ordered {
		result = append(result, TypeHours{
			Type:        a.typ,
			Class:       a.class,
			Hours:       hours(a.hours),
			FlightCount: a.count,
		})
	}
	return result
}

// Highlights names the most and least flown aircraft
type Highlights struct {
	MostFlown     *AircraftHours `json:"most_flown"`
	LeastFlown    *AircraftHours `json:"least_flown"`
	TotalAircraft int            `json:"total_aircraft"`
}

// AircraftHighlights picks the extremes of the aircraft breakdown. Both are
// nil when no flights were logged.
func AircraftHighlights(flights []models.Flight) Highlights {
	breakdown := AircraftBreakdown(flights)
	if len(breakdown) == 0 {
		return Highlights{}
	}
	most := breakdown[0]
	least := breakdown[len(breakdown)-1]
	return Highlights{
		MostFlown:     &most,
		LeastFlown:    &least,
		TotalAircraft: len(breakdown),
	}
}
