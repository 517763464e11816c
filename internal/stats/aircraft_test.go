package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logbook/internal/models"
)

func withRoute(f models.Flight, codes ...string) models.Flight {
	route := &models.Route{Name: codes[0]}
	for _, c := range codes {
		route.Waypoints = append(route.Waypoints, models.Airport{Code: c})
	}
	f.Route = route
	return f
}

func fleetFlights() []models.Flight {
	return []models.Flight{
		withRoute(flight(day(2024, 1, 1), cessna, "1.0"), "KAAA", "KCCC"),
		withRoute(flight(day(2024, 3, 1), cessna, "1.5"), "KBBB"),
		flight(day(2024, 2, 1), piper, "3.0"),
		flight(day(2024, 2, 15), seneca, "0.5"),
	}
}

func TestAircraftBreakdown(t *testing.T) {
	breakdown := AircraftBreakdown(fleetFlights())

	require.Len(t, breakdown, 3)
	assert.Equal(t, AircraftHours{
		TailNumber: "N456CD", Type: "PA28", Class: models.SingleEngineLand,
		Hours: 3.0, FlightCount: 1,
	}, breakdown[0])
	assert.Equal(t, AircraftHours{
		TailNumber: "N123AB", Type: "C172", Class: models.SingleEngineLand,
		Hours: 2.5, FlightCount: 2, Location: "KBBB",
	}, breakdown[1])
	assert.Equal(t, "N789EF", breakdown[2].TailNumber)
}

func TestAircraftBreakdown_LocationFollowsLatestFlight(t *testing.T) {
	flights := []models.Flight{
		withRoute(flight(day(2024, 5, 1), cessna, "1.0"), "KNEW"),
		withRoute(flight(day(2024, 1, 1), cessna, "1.0"), "KOLD"),
	}

	breakdown := AircraftBreakdown(flights)

	require.Len(t, breakdown, 1)
	assert.Equal(t, "KNEW", breakdown[0].Location)
}

func TestAircraftClassBreakdown(t *testing.T) {
	classes := AircraftClassBreakdown(fleetFlights())

	require.Len(t, classes, 2)
	sel := classes[models.SingleEngineLand]
	mel := classes[models.MultiEngineLand]
	assert.Equal(t, 5.5, sel.Hours)
	assert.Equal(t, 3, sel.FlightCount)
	assert.Equal(t, 91.7, sel.Percentage)
	assert.Equal(t, 8.3, mel.Percentage)

	var sum float64
	for _, c := range classes {
		sum += c.Percentage
	}
	assert.InDelta(t, 100, sum, 0.1)
}

func TestAircraftClassBreakdown_ZeroHours(t *testing.T) {
	flights := []models.Flight{
		flight(day(2024, 1, 1), cessna, "0"),
		flight(day(2024, 1, 2), seneca, "0"),
	}

	for class, c := range AircraftClassBreakdown(flights) {
		assert.Equal(t, 0.0, c.Percentage, class)
		assert.Equal(t, 1, c.FlightCount)
	}
	assert.Empty(t, AircraftClassBreakdown(nil))
}

func TestAircraftTypeStatistics(t *testing.T) {
	types := AircraftTypeStatistics(fleetFlights())

	assert.Equal(t, []TypeHours{
		{Type: "PA28", Class: models.SingleEngineLand, Hours: 3.0, FlightCount: 1},
		{Type: "C172", Class: models.SingleEngineLand, Hours: 2.5, FlightCount: 2},
		{Type: "PA34", Class: models.MultiEngineLand, Hours: 0.5, FlightCount: 1},
	}, types)
}

func TestAircraftHighlights(t *testing.T) {
	h := AircraftHighlights(fleetFlights())

	require.NotNil(t, h.MostFlown)
	require.NotNil(t, h.LeastFlown)
	assert.Equal(t, "N456CD", h.MostFlown.TailNumber)
	assert.Equal(t, "N789EF", h.LeastFlown.TailNumber)
	assert.Equal(t, 3, h.TotalAircraft)

	empty := AircraftHighlights(nil)
	assert.Nil(t, empty.MostFlown)
	assert.Nil(t, empty.LeastFlown)
	assert.Zero(t, empty.TotalAircraft)
}
