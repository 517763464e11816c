package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logbook/internal/models"
)

func TestInstructorLeaderboard_RanksByTotalTime(t *testing.T) {
	a := person("Alice", "Adams", models.RoleInstructor)
	b := person("Bert", "Brown", models.RoleExaminer)

	flights := []models.Flight{
		withInstructor(flight(day(2024, 1, 1), cessna, "3.0"), a),
		withInstructor(flight(day(2024, 1, 8), cessna, "2.0"), a),
		withInstructor(flight(day(2024, 2, 1), cessna, "10.0"), b),
	}
	grounds := []models.GroundSession{
		{Instructor: &a, Date: day(2024, 1, 2), GroundTime: hrs("1.0")},
	}

	board := InstructorLeaderboard(flights, grounds, 10)

	require.Len(t, board, 2)
	assert.Equal(t, "Bert Brown", board[0].Person.Name)
	assert.Equal(t, 10.0, board[0].TotalTime)
	assert.Equal(t, InstructorEntry{
		Person:      Person{ID: a.ID, Name: "Alice Adams", Role: models.RoleInstructor},
		FlightCount: 2,
		FlightTime:  5.0,
		GroundCount: 1,
		GroundTime:  1.0,
		TotalTime:   6.0,
	}, board[1])
}

func TestInstructorLeaderboard_IgnoresNonInstructors(t *testing.T) {
	buddy := person("Dan", "Poe", models.RolePilot)
	flights := []models.Flight{withInstructor(flight(day(2024, 1, 1), cessna, "1.0"), buddy)}
	grounds := []models.GroundSession{{Instructor: &buddy, GroundTime: hrs("2.0")}, {GroundTime: hrs("1.0")}}

	assert.Empty(t, InstructorLeaderboard(flights, grounds, 10))
}

func TestInstructorLeaderboard_Limit(t *testing.T) {
	var flights []models.Flight
	for i := 0; i < 15; i++ {
		cfi := person("CFI", string(rune('A'+i)), models.RoleInstructor)
		flights = append(flights, withInstructor(flight(day(2024, 1, 1), cessna, "1.0"), cfi))
	}

	assert.Len(t, InstructorLeaderboard(flights, nil, 0), DefaultLimit)
	assert.Len(t, InstructorLeaderboard(flights, nil, 3), 3)
}

func TestPassengerLeaderboard(t *testing.T) {
	ann := person("Ann", "Lee", models.RolePassenger)
	bob := person("Bob", "Ray", models.RolePassenger)
	buddy := person("Dan", "Poe", models.RolePilot)

	flights := []models.Flight{
		withPassengers(flight(day(2024, 1, 1), cessna, "1.0"), ann, bob),
		withPassengers(flight(day(2024, 1, 2), cessna, "3.0"), bob, buddy),
		withPassengers(flight(day(2024, 1, 3), cessna, "0.5"), ann, ann),
	}

	board := PassengerLeaderboard(flights, 10)

	require.Len(t, board, 2)
	assert.Equal(t, "Bob Ray", board[0].Person.Name, "equal counts fall back to time")
	assert.Equal(t, 2, board[0].FlightCount)
	assert.Equal(t, 4.0, board[0].TotalTime)
	assert.Equal(t, "Ann Lee", board[1].Person.Name)
	assert.Equal(t, 2, board[1].FlightCount, "a passenger listed twice counts once per flight")
	assert.Equal(t, 1.5, board[1].TotalTime)

	assert.Len(t, PassengerLeaderboard(flights, 1), 1)
}

func TestUniquePeopleCounts(t *testing.T) {
	ann := person("Ann", "Lee", models.RolePassenger)
	cfi := person("Cal", "Fox", models.RoleInstructor)
	buddy := person("Dan", "Poe", models.RolePilot)

	both := withInstructor(withPassengers(flight(day(2024, 1, 1), cessna, "1.0"), ann), cfi)
	flights := []models.Flight{
		both,
		withPassengers(flight(day(2024, 1, 2), cessna, "1.0"), ann),
		withPassengers(flight(day(2024, 1, 3), cessna, "1.0"), buddy),
		flight(day(2024, 1, 4), cessna, "1.0"),
	}

	assert.Equal(t, PeopleCounts{
		UniquePassengers:  1,
		UniqueInstructors: 1,
		TotalUniquePeople: 2,
		FlightsWithPeople: 2,
	}, UniquePeopleCounts(flights))
}

func TestPeopleRoleDistribution(t *testing.T) {
	ann := person("Ann", "Lee", models.RolePassenger)
	cfi := person("Cal", "Fox", models.RoleInstructor)

	flights := []models.Flight{
		withInstructor(withPassengers(flight(day(2024, 1, 1), cessna, "1.0"), ann), cfi),
		withPassengers(flight(day(2024, 1, 2), cessna, "1.0"), ann),
		withInstructor(flight(day(2024, 1, 3), cessna, "1.0"), cfi),
		flight(day(2024, 1, 4), cessna, "1.0"),
		flight(day(2024, 1, 5), cessna, "1.0"),
	}

	d := PeopleRoleDistribution(flights)

	assert.Equal(t, RoleDistribution{
		TotalFlights:       5,
		SoloFlights:        2,
		PassengerFlights:   2,
		InstructionFlights: 2,
	}, d)
	assert.Equal(t, RoleDistribution{}, PeopleRoleDistribution(nil))
}

func TestPeopleInsights(t *testing.T) {
	ann := person("Ann", "Lee", models.RolePassenger)
	bob := person("Bob", "Ray", models.RolePassenger)
	cfi := person("Cal", "Fox", models.RoleInstructor)

	flights := []models.Flight{
		withPassengers(flight(day(2024, 1, 1), cessna, "1.0"), ann),
		withPassengers(flight(day(2024, 1, 2), cessna, "1.0"), ann),
		withPassengers(flight(day(2024, 1, 3), cessna, "1.0"), bob),
		withInstructor(flight(day(2024, 1, 4), cessna, "1.0"), cfi),
	}

	insights := PeopleInsights(flights, nil)

	require.NotNil(t, insights.TopPassenger)
	assert.Equal(t, "Ann Lee", insights.TopPassenger.Person.Name)
	assert.Equal(t, 66.7, insights.TopPassenger.Percentage)
	require.NotNil(t, insights.TopInstructor)
	assert.Equal(t, 100.0, insights.TopInstructor.Percentage)
	assert.Equal(t, 75.0, insights.PassengerFlightPercentage)
	assert.Equal(t, 25.0, insights.InstructionFlightPercentage)

	empty := PeopleInsights(nil, nil)
	assert.Nil(t, empty.TopPassenger)
	assert.Nil(t, empty.TopInstructor)
	assert.Zero(t, empty.PassengerFlightPercentage)
}

func TestInstructorTimeProgression(t *testing.T) {
	a := person("Alice", "Adams", models.RoleInstructor)
	b := person("Bert", "Brown", models.RoleInstructor)

	flights := []models.Flight{
		withInstructor(flight(day(2024, 1, 1), cessna, "1.0"), a),
		withInstructor(flight(day(2024, 1, 1), cessna, "0.5"), a),
		withInstructor(flight(day(2024, 1, 5), cessna, "2.0"), b),
		withInstructor(flight(day(2024, 1, 9), cessna, "1.0"), a),
		withInstructor(flight(day(2024, 1, 12), cessna, "0.2"), b),
		flight(day(2024, 1, 15), cessna, "4.0"),
	}

	p := InstructorTimeProgression(flights)

	assert.Equal(t, []string{"2024-01-01", "2024-01-05", "2024-01-09", "2024-01-12"}, p.Dates)
	require.Len(t, p.Series, 2)

	assert.Equal(t, "Alice Adams", p.Series[0].Instructor.Name)
	assert.Equal(t, []ProgressionPoint{
		{Date: "2024-01-01", Hours: 1.5},
		{Date: "2024-01-05", Hours: 1.5},
		{Date: "2024-01-09", Hours: 2.5},
		{Date: "2024-01-12", Hours: 2.5},
	}, p.Series[0].Points)

	assert.Equal(t, "Bert Brown", p.Series[1].Instructor.Name)
	assert.Equal(t, []ProgressionPoint{
		{Date: "2024-01-05", Hours: 2.0},
		{Date: "2024-01-09", Hours: 2.0},
		{Date: "2024-01-12", Hours: 2.2},
	}, p.Series[1].Points)

	empty := InstructorTimeProgression(nil)
	assert.Empty(t, empty.Dates)
	assert.Empty(t, empty.Series)
}

func TestStatisticsAreIdempotent(t *testing.T) {
	ann := person("Ann", "Lee", models.RolePassenger)
	cfi := person("Cal", "Fox", models.RoleInstructor)
	flights := append(fleetFlights(),
		withPassengers(flight(day(2024, 4, 1), piper, "1.1"), ann),
		withInstructor(flight(day(2024, 4, 2), seneca, "1.4"), cfi),
	)
	before := append([]models.Flight(nil), flights...)

	assert.Equal(t, PassengerLeaderboard(flights, 5), PassengerLeaderboard(flights, 5))
	assert.Equal(t, InstructorTimeProgression(flights), InstructorTimeProgression(flights))
	assert.Equal(t, AircraftBreakdown(flights), AircraftBreakdown(flights))
	assert.Equal(t, MonthlyBreakdown(flights, 12, asOf), MonthlyBreakdown(flights, 12, asOf))
	assert.Equal(t, CumulativeTimeData(flights), CumulativeTimeData(flights))
	assert.Equal(t, RouteSummaries(flights), RouteSummaries(flights))
	assert.Equal(t, before, flights)
}
