package stats

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"logbook/internal/models"
)

var asOf = time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

var (
	cessna = models.Plane{ID: uuid.New(), TailNumber: "N123AB", Type: "C172", Class: models.SingleEngineLand}
	piper  = models.Plane{ID: uuid.New(), TailNumber: "N456CD", Type: "PA28", Class: models.SingleEngineLand}
	seneca = models.Plane{ID: uuid.New(), TailNumber: "N789EF", Type: "PA34", Class: models.MultiEngineLand}
)

func hrs(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func person(first, last string, role models.Role) models.Pilot {
	return models.Pilot{ID: uuid.New(), FirstName: first, LastName: last, Role: role}
}

func flight(date time.Time, plane models.Plane, total string) models.Flight {
	return models.Flight{
		ID:         uuid.New(),
		Date:       date,
		Plane:      plane,
		FlightTime: hrs(total),
	}
}

func withInstructor(f models.Flight, instructor models.Pilot) models.Flight {
	f.Instructor = &instructor
	return f
}

func withPassengers(f models.Flight, passengers ...models.Pilot) models.Flight {
	f.Passengers = passengers
	return f
}
