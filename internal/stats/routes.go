package stats

import (
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"logbook/internal/models"
)

const metersPerNauticalMile = 1852.0

// Waypoint is an airport on a flown route
type Waypoint struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	VisitCount int     `json:"visit_count"`
}

// RouteSummary describes one route and how often it was flown
type RouteSummary struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Waypoints   []Waypoint `json:"waypoints"`
	FlightCount int        `json:"flight_count"`
	DistanceNM  float64    `json:"distance_nm"`
}

// RouteSummaries lists the flown routes with the great-circle length of each
// and per-airport visit counts. An airport counts once per flight no matter
// how many times the route passes it. Waypoints without coordinates are left
// out of the result and of the distance, and a route with no located
// waypoint is dropped.
func RouteSummaries(flights []models.Flight) []RouteSummary {
	visits := make(map[string]int)
	type acc struct {
		route *models.Route
		count int
	}
	byRoute := make(map[string]*acc)
	var ordered []*acc

	for _, f := range flights {
		if f.Route == nil || len(f.Route.Waypoints) == 0 {
			continue
		}
		key := f.Route.ID.String()
		if f.Route.ID == uuid.Nil {
			key = f.Route.Name
		}
		a, ok := byRoute[key]
		if !ok {
			a = &acc{route: f.Route}
			byRoute[key] = a
			ordered = append(ordered, a)
		}
		a.count++

		seen := make(map[string]struct{}, len(f.Route.Waypoints))
		for _, w := range f.Route.Waypoints {
			if _, dup := seen[w.Code]; dup {
				continue
			}
			seen[w.Code] = struct{}{}
			visits[w.Code]++
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].count != ordered[j].count {
			return ordered[i].count > ordered[j].count
		}
		return ordered[i].route.Name < ordered[j].route.Name
	})

	result := make([]RouteSummary, 0, len(ordered))
	for _, a := range ordered {
		summary := RouteSummary{
			ID:          a.route.ID,
			Name:        a.route.Name,
			FlightCount: a.count,
		}
		var path orb.LineString
		for _, w := range a.route.Waypoints {
			if !w.HasLocation() {
				continue
			}
			summary.Waypoints = append(summary.Waypoints, Waypoint{
				Code:       w.Code,
				Name:       w.Name,
				Latitude:   w.Latitude,
				Longitude:  w.Longitude,
				VisitCount: visits[w.Code],
			})
			path = append(path, orb.Point{w.Longitude, w.Latitude})
		}
		if len(summary.Waypoints) == 0 {
			continue
		}
		summary.DistanceNM = math.Round(geo.LengthHaversine(path)/metersPerNauticalMile*10) / 10
		result = append(result, summary)
	}
	return result
}

