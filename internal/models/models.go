package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pilot represents a person known to the logbook: the owner, an instructor,
// an examiner or a passenger
type Pilot struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	FirstName string    `json:"first_name" yaml:"first_name" validate:"required,max=50"`
	LastName  string    `json:"last_name" yaml:"last_name" validate:"max=50"`
	Role      Role      `json:"role" yaml:"role" validate:"oneof=PI I E PA"`
}

// Name returns the display name of the pilot
func (p Pilot) Name() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Plane represents an aircraft flown by the pilot
type Plane struct {
	ID         uuid.UUID  `json:"id" yaml:"id"`
	TailNumber string     `json:"tail_number" yaml:"tail_number" validate:"required,max=6"`
	Type       string     `json:"type" yaml:"type" validate:"required,max=4"`
	Class      PlaneClass `json:"plane_class" yaml:"plane_class" validate:"oneof='Single Engine Land' 'Multi Engine Land'"`
}

// SimulatorDevice represents a flight training device
type SimulatorDevice struct {
	ID         uuid.UUID `json:"id" yaml:"id"`
	TailNumber string    `json:"tail_number" yaml:"tail_number" validate:"required,max=6"`
	Type       string    `json:"type" yaml:"type" validate:"required,max=20"`
	SimClass   string    `json:"sim_class" yaml:"sim_class" validate:"oneof=FTD FFS BATD AATD"`
}

// Airport is a route waypoint
type Airport struct {
	ID           uuid.UUID `json:"id" yaml:"id"`
	Code         string    `json:"code" yaml:"code" validate:"required,max=4"`
	Name         string    `json:"name" yaml:"name"`
	Latitude     float64   `json:"latitude" yaml:"latitude" validate:"latitude"`
	Longitude    float64   `json:"longitude" yaml:"longitude" validate:"longitude"`
	Country      string    `json:"country" yaml:"country" validate:"max=2"`
	Municipality string    `json:"municipality" yaml:"municipality"`
}

// HasLocation reports whether the airport carries usable coordinates
func (a Airport) HasLocation() bool {
	return a.Latitude != 0 && a.Longitude != 0
}

// Route is an ordered sequence of airports
type Route struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Waypoints []Airport `json:"waypoints" yaml:"waypoints" validate:"-"`
}

// Origin returns the first waypoint code, or an empty string for a route
// without waypoints
func (r *Route) Origin() string {
	if r == nil || len(r.Waypoints) == 0 {
		return ""
	}
	return r.Waypoints[0].Code
}

// Flight represents a single logbook entry
type Flight struct {
	ID         uuid.UUID `json:"id"`
	PilotID    uuid.UUID `json:"pilot_id" validate:"required"`
	Instructor *Pilot    `json:"instructor,omitempty" validate:"-"`
	Passengers []Pilot   `json:"passengers" validate:"-"`
	Date       time.Time `json:"date" validate:"required"`
	Plane      Plane     `json:"plane" validate:"-"`
	Route      *Route    `json:"route,omitempty" validate:"-"`

	FlightTime          decimal.Decimal `json:"flight_time" validate:"gte=0"`
	PICTime             decimal.Decimal `json:"pic_time" validate:"gte=0"`
	SICTime             decimal.Decimal `json:"sic_time" validate:"gte=0"`
	DualReceived        decimal.Decimal `json:"dual_time" validate:"gte=0"`
	XCTime              decimal.Decimal `json:"xc_time" validate:"gte=0"`
	SoloTime            decimal.Decimal `json:"solo_time" validate:"gte=0"`
	DayTime             decimal.Decimal `json:"day_time" validate:"gte=0"`
	NightTime           decimal.Decimal `json:"night_time" validate:"gte=0"`
	ActualInstrument    decimal.Decimal `json:"actual_instrument_time" validate:"gte=0"`
	SimulatedInstrument decimal.Decimal `json:"simulated_instrument_time" validate:"gte=0"`

	DayLandings           int `json:"day_landings" validate:"gte=0"`
	DayFullStopLandings   int `json:"day_fullstop_landings" validate:"gte=0"`
	NightLandings         int `json:"night_landings" validate:"gte=0"`
	NightFullStopLandings int `json:"night_fullstop_landings" validate:"gte=0"`

	Notes string `json:"notes"`
}

// TotalLandings sums all four landing counters
func (f Flight) TotalLandings() int {
	return f.DayLandings + f.DayFullStopLandings + f.NightLandings + f.NightFullStopLandings
}

// HasPassengers reports whether any passenger on board has the passenger role
func (f Flight) HasPassengers() bool {
	for _, p := range f.Passengers {
		if p.Role.IsPassenger() {
			return true
		}
	}
	return false
}

// HasInstruction reports whether the flight was flown with an instructor or
// examiner on board
func (f Flight) HasInstruction() bool {
	return f.Instructor != nil && f.Instructor.Role.IsInstructor()
}

// GroundSession represents a ground instruction entry
type GroundSession struct {
	ID          uuid.UUID       `json:"id"`
	PilotID     uuid.UUID       `json:"pilot_id" validate:"required"`
	Instructor  *Pilot          `json:"instructor,omitempty" validate:"-"`
	Date        time.Time       `json:"date" validate:"required"`
	GroundTime  decimal.Decimal `json:"ground_time" validate:"gte=0"`
	Subject     string          `json:"subject"`
	Endorsement string          `json:"endorsement"`
}

// SimulatorSession represents a session in a flight training device
type SimulatorSession struct {
	ID                  uuid.UUID       `json:"id"`
	PilotID             uuid.UUID       `json:"pilot_id" validate:"required"`
	Instructor          *Pilot          `json:"instructor,omitempty" validate:"-"`
	Date                time.Time       `json:"date" validate:"required"`
	Device              SimulatorDevice `json:"device" validate:"-"`
	SimulatedInstrument decimal.Decimal `json:"simulated_instrument_time" validate:"gte=0"`
	Notes               string          `json:"notes"`
}

// Medical represents an aviation medical certificate. Expiry dates are
// derived from the examination date and class, see currency.MedicalStatus.
type Medical struct {
	ID                        uuid.UUID `json:"id"`
	PilotID                   uuid.UUID `json:"pilot_id" validate:"required"`
	Class                     int       `json:"class" validate:"min=1,max=3"`
	ExaminationDate           time.Time `json:"examination_date" validate:"required"`
	ExaminerName              string    `json:"examiner_name" validate:"max=50"`
	ExaminerDesignationNumber string    `json:"examiner_designation_number" validate:"max=9"`
}

// License represents a pilot certificate or rating
type License struct {
	ID         uuid.UUID  `json:"id"`
	PilotID    uuid.UUID  `json:"pilot_id" validate:"required"`
	Name       string     `json:"name" validate:"required,max=50"`
	Number     int64      `json:"number" validate:"gte=0"`
	Expiration *time.Time `json:"expiration,omitempty"`
}

// Ledger is a read-only snapshot of everything recorded for one pilot
type Ledger struct {
	Pilot      Pilot
	Flights    []Flight
	Grounds    []GroundSession
	Simulators []SimulatorSession
	Medicals   []Medical
	Licenses   []License
}
