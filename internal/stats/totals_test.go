package stats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logbook/internal/models"
)

func TestTotals(t *testing.T) {
	a := flight(day(2024, 5, 1), cessna, "1.2")
	a.PICTime = hrs("1.2")
	a.XCTime = hrs("1.2")
	a.DayTime = hrs("1.2")
	a.DayLandings = 2
	a.DayFullStopLandings = 1

	b := flight(day(2024, 5, 3), cessna, "1.3")
	b.DualReceived = hrs("1.3")
	b.NightTime = hrs("1.3")
	b.ActualInstrument = hrs("0.4")
	b.SimulatedInstrument = hrs("0.5")
	b.SoloTime = hrs("0.1")
	b.NightLandings = 1
	b.NightFullStopLandings = 3

	totals := Totals([]models.Flight{a, b})

	assert.Equal(t, 2.5, totals.TotalTime)
	assert.Equal(t, 1.2, totals.PICTime)
	assert.Equal(t, 1.3, totals.DualTime)
	assert.Equal(t, 1.2, totals.XCTime)
	assert.Equal(t, 1.2, totals.DayTime)
	assert.Equal(t, 1.3, totals.NightTime)
	assert.Equal(t, 0.4, totals.ActualInstrument)
	assert.Equal(t, 0.5, totals.SimulatedInstrument)
	assert.Equal(t, 0.1, totals.SoloTime)
	assert.Equal(t, 0.0, totals.SICTime)
	assert.Equal(t, 2, totals.DayLandings)
	assert.Equal(t, 1, totals.NightLandings)
	assert.Equal(t, 7, totals.TotalLandings)
}

func TestTotals_AccumulatesExactly(t *testing.T) {
	var flights []models.Flight
	for i := 0; i < 10; i++ {
		flights = append(flights, flight(day(2024, 1, i+1), cessna, "0.1"))
	}

	assert.Equal(t, 1.0, Totals(flights).TotalTime)
	assert.Equal(t, TotalTimes{}, Totals(nil))
}

func TestInstrumentBreakdown(t *testing.T) {
	f := flight(day(2024, 2, 1), cessna, "2.0")
	f.ActualInstrument = hrs("0.7")
	f.SimulatedInstrument = hrs("1.1")
	sims := []models.SimulatorSession{
		{SimulatedInstrument: hrs("1.5")},
		{SimulatedInstrument: hrs("2.0")},
	}

	breakdown := InstrumentBreakdown([]models.Flight{f}, sims)

	assert.Equal(t, InstrumentTimes{
		Actual:             0.7,
		FlightSimulated:    1.1,
		SimulatorSimulated: 3.5,
		Simulated:          4.6,
		Total:              5.3,
	}, breakdown)
}

func TestXCPICTime_RequiresBoth(t *testing.T) {
	both := flight(day(2024, 1, 1), cessna, "3.0")
	both.XCTime = hrs("2.5")
	both.PICTime = hrs("3.0")

	xcOnly := flight(day(2024, 1, 2), cessna, "2.0")
	xcOnly.XCTime = hrs("2.0")

	picOnly := flight(day(2024, 1, 3), cessna, "1.0")
	picOnly.PICTime = hrs("1.0")

	assert.Equal(t, 2.5, XCPICTime([]models.Flight{both, xcOnly, picOnly}))
}

func TestSELTotalHours(t *testing.T) {
	flights := []models.Flight{
		flight(day(2024, 1, 1), cessna, "1.5"),
		flight(day(2024, 1, 2), seneca, "2.0"),
		flight(day(2024, 1, 3), piper, "0.8"),
	}

	assert.Equal(t, 2.3, SELTotalHours(flights))
}

func TestDaysSinceLastFlight(t *testing.T) {
	assert.Nil(t, DaysSinceLastFlight(nil, asOf))

	flights := []models.Flight{
		flight(day(2024, 6, 1), cessna, "1.0"),
		flight(day(2024, 6, 20), cessna, "1.0"),
		flight(day(2024, 3, 1), cessna, "1.0"),
	}

	days := DaysSinceLastFlight(flights, asOf)
	require.NotNil(t, days)
	assert.Equal(t, 10, *days)
}

func TestDaysSinceLastFlight_IgnoresLaterFlights(t *testing.T) {
	flights := []models.Flight{
		flight(day(2025, 1, 5), cessna, "1.0"),
		flight(day(2025, 3, 1), cessna, "1.0"),
	}

	days := DaysSinceLastFlight(flights, day(2025, 1, 10))
	require.NotNil(t, days)
	assert.Equal(t, 5, *days)

	days = DaysSinceLastFlight(flights, day(2025, 1, 5))
	require.NotNil(t, days)
	assert.Equal(t, 0, *days)

	assert.Nil(t, DaysSinceLastFlight(flights, day(2024, 12, 31)))
}

func TestRecentFlight_JSONHours(t *testing.T) {
	f := flight(day(2024, 3, 1), cessna, "1.45")
	f.PICTime = hrs("1.45")
	f.DayLandings = 2

	data, err := json.Marshal(RecentFlights([]models.Flight{f}, 1)[0])
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 1.5, got["flight_time"])
	assert.Equal(t, 1.5, got["pic_time"])
	assert.Equal(t, 0.0, got["night_time"])
	assert.Equal(t, 2.0, got["day_landings"])
	assert.Equal(t, 2.0, got["total_day_landings"])
	assert.Equal(t, f.ID.String(), got["id"])
	assert.Contains(t, got, "plane")
}

func TestRecentFlights(t *testing.T) {
	flights := []models.Flight{
		flight(day(2024, 1, 1), cessna, "1.0"),
		flight(day(2024, 3, 1), cessna, "1.0"),
		flight(day(2024, 2, 1), cessna, "1.0"),
	}
	flights[1].DayLandings = 2
	flights[1].DayFullStopLandings = 1
	flights[1].NightLandings = 1
	flights[1].NightFullStopLandings = 4

	recent := RecentFlights(flights, 2)

	require.Len(t, recent, 2)
	assert.Equal(t, day(2024, 3, 1), recent[0].Date)
	assert.Equal(t, day(2024, 2, 1), recent[1].Date)
	assert.Equal(t, 3, recent[0].TotalDayLandings)
	assert.Equal(t, 5, recent[0].TotalNightLandings)

	assert.Len(t, RecentFlights(flights, 0), 3, "non-positive limit falls back to the default")
}

func TestRecentFlights_DoesNotMutateInput(t *testing.T) {
	passenger := person("Ann", "Lee", models.RolePassenger)
	flights := []models.Flight{
		withPassengers(flight(day(2024, 1, 1), cessna, "1.0"), passenger),
		flight(day(2024, 3, 1), cessna, "1.0"),
	}
	before := append([]models.Flight(nil), flights...)

	first := RecentFlights(flights, 10)
	first[1].Passengers[0].FirstName = "changed"
	first[0].Notes = "changed"
	second := RecentFlights(flights, 10)

	assert.Equal(t, before, flights)
	assert.Equal(t, "Ann", flights[0].Passengers[0].FirstName)
	assert.Equal(t, "", second[0].Notes)
}

func TestCumulativeTimeData(t *testing.T) {
	a := flight(day(2024, 2, 1), cessna, "1.5")
	a.PICTime = hrs("1.5")
	a.ActualInstrument = hrs("0.2")

	b := flight(day(2024, 1, 1), cessna, "2.0")
	b.DualReceived = hrs("2.0")
	b.SimulatedInstrument = hrs("0.3")

	points := CumulativeTimeData([]models.Flight{a, b})

	assert.Equal(t, []CumulativePoint{
		{Date: "2024-01-01", Total: 2.0, PIC: 0, Dual: 2.0, Instrument: 0.3},
		{Date: "2024-02-01", Total: 3.5, PIC: 1.5, Dual: 2.0, Instrument: 0.5},
	}, points)
	assert.Empty(t, CumulativeTimeData(nil))
}
