// Package seed loads a logbook fixture from YAML into a store
package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"logbook/internal/dates"
	"logbook/internal/models"
	"logbook/internal/storage"
)

// File is a complete logbook fixture. Records reference each other by
// pilot ref, tail number, airport code and route name.
type File struct {
	Owner             string                   `yaml:"owner"`
	Pilots            []Pilot                  `yaml:"pilots"`
	Planes            []models.Plane           `yaml:"planes"`
	Simulators        []models.SimulatorDevice `yaml:"simulators"`
	Airports          []models.Airport         `yaml:"airports"`
	Routes            []Route                  `yaml:"routes"`
	Flights           []Flight                 `yaml:"flights"`
	Grounds           []Ground                 `yaml:"grounds"`
	SimulatorSessions []SimulatorSession       `yaml:"simulator_sessions"`
	Medicals          []Medical                `yaml:"medicals"`
	Licenses          []License                `yaml:"licenses"`
}

// Pilot is a person with the key other records use to refer to it.
// The key defaults to the pilot's full name.
type Pilot struct {
	Ref          string `yaml:"ref"`
	models.Pilot `yaml:",inline"`
}

// Route lists its waypoints by airport code
type Route struct {
	Name      string   `yaml:"name"`
	Waypoints []string `yaml:"waypoints"`
}

type Flight struct {
	Date       string   `yaml:"date"`
	Plane      string   `yaml:"plane"`
	Route      string   `yaml:"route"`
	Instructor string   `yaml:"instructor"`
	Passengers []string `yaml:"passengers"`

	FlightTime          decimal.Decimal `yaml:"flight_time"`
	PICTime             decimal.Decimal `yaml:"pic_time"`
	SICTime             decimal.Decimal `yaml:"sic_time"`
	DualReceived        decimal.Decimal `yaml:"dual_time"`
	XCTime              decimal.Decimal `yaml:"xc_time"`
	SoloTime            decimal.Decimal `yaml:"solo_time"`
	DayTime             decimal.Decimal `yaml:"day_time"`
	NightTime           decimal.Decimal `yaml:"night_time"`
	ActualInstrument    decimal.Decimal `yaml:"actual_instrument_time"`
	SimulatedInstrument decimal.Decimal `yaml:"simulated_instrument_time"`

	DayLandings           int `yaml:"day_landings"`
	DayFullStopLandings   int `yaml:"day_fullstop_landings"`
	NightLandings         int `yaml:"night_landings"`
	NightFullStopLandings int `yaml:"night_fullstop_landings"`

	Notes string `yaml:"notes"`
}

type Ground struct {
	Date        string          `yaml:"date"`
	Instructor  string          `yaml:"instructor"`
	GroundTime  decimal.Decimal `yaml:"ground_time"`
	Subject     string          `yaml:"subject"`
	Endorsement string          `yaml:"endorsement"`
}

type SimulatorSession struct {
	Date                string          `yaml:"date"`
	Device              string          `yaml:"device"`
	Instructor          string          `yaml:"instructor"`
	SimulatedInstrument decimal.Decimal `yaml:"simulated_instrument_time"`
	Notes               string          `yaml:"notes"`
}

type Medical struct {
	Class                     int    `yaml:"class"`
	ExaminationDate           string `yaml:"examination_date"`
	ExaminerName              string `yaml:"examiner_name"`
	ExaminerDesignationNumber string `yaml:"examiner_designation_number"`
}

type License struct {
	Name       string `yaml:"name"`
	Number     int64  `yaml:"number"`
	Expiration string `yaml:"expiration"`
}

// Load reads and parses a fixture file
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a fixture document
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &f, nil
}

// ApplyIfEmpty applies the fixture only to a store without pilots. It
// reports whether anything was written.
func ApplyIfEmpty(ctx context.Context, s storage.Storage, f *File) (bool, error) {
	pilots, err := s.ListPilots(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list pilots: %w", err)
	}
	if len(pilots) > 0 {
		return false, nil
	}
	if _, err := Apply(ctx, s, f); err != nil {
		return false, err
	}
	return true, nil
}

type resolver struct {
	pilots   map[string]models.Pilot
	planes   map[string]models.Plane
	devices  map[string]models.SimulatorDevice
	airports map[string]models.Airport
	routes   map[string]models.Route
}

// Apply writes every record of the fixture and returns the owner's ID
func Apply(ctx context.Context, s storage.Storage, f *File) (uuid.UUID, error) {
	r := resolver{
		pilots:   make(map[string]models.Pilot),
		planes:   make(map[string]models.Plane),
		devices:  make(map[string]models.SimulatorDevice),
		airports: make(map[string]models.Airport),
		routes:   make(map[string]models.Route),
	}

	for _, entry := range f.Pilots {
		p := entry.Pilot
		if err := s.CreatePilot(ctx, &p); err != nil {
			return uuid.Nil, err
		}
		ref := entry.Ref
		if ref == "" {
			ref = p.Name()
		}
		r.pilots[ref] = p
	}
	owner, ok := r.pilots[f.Owner]
	if !ok {
		return uuid.Nil, fmt.Errorf("owner %q is not a listed pilot", f.Owner)
	}

	for _, p := range f.Planes {
		if err := s.CreatePlane(ctx, &p); err != nil {
			return uuid.Nil, err
		}
		r.planes[p.TailNumber] = p
	}
	for _, d := range f.Simulators {
		if err := s.CreateSimulatorDevice(ctx, &d); err != nil {
			return uuid.Nil, err
		}
		r.devices[d.TailNumber] = d
	}
	for _, a := range f.Airports {
		if err := s.CreateAirport(ctx, &a); err != nil {
			return uuid.Nil, err
		}
		r.airports[a.Code] = a
	}
	for _, entry := range f.Routes {
		route := models.Route{Name: entry.Name}
		for _, code := range entry.Waypoints {
			a, ok := r.airports[code]
			if !ok {
				return uuid.Nil, fmt.Errorf("route %q: unknown airport %q", entry.Name, code)
			}
			route.Waypoints = append(route.Waypoints, a)
		}
		if err := s.CreateRoute(ctx, &route); err != nil {
			return uuid.Nil, err
		}
		r.routes[route.Name] = route
	}

	for i, entry := range f.Flights {
		flight, err := r.flight(owner.ID, entry)
		if err != nil {
			return uuid.Nil, fmt.Errorf("flight %d: %w", i+1, err)
		}
		if err := s.CreateFlight(ctx, &flight); err != nil {
			return uuid.Nil, fmt.Errorf("flight %d: %w", i+1, err)
		}
	}
	for i, entry := range f.Grounds {
		date, err := dates.ParseISO(entry.Date)
		if err != nil {
			return uuid.Nil, fmt.Errorf("ground session %d: %w", i+1, err)
		}
		instructor, err := r.person(entry.Instructor)
		if err != nil {
			return uuid.Nil, fmt.Errorf("ground session %d: %w", i+1, err)
		}
		g := models.GroundSession{
			PilotID:     owner.ID,
			Instructor:  instructor,
			Date:        date,
			GroundTime:  entry.GroundTime,
			Subject:     entry.Subject,
			Endorsement: entry.Endorsement,
		}
		if err := s.CreateGroundSession(ctx, &g); err != nil {
			return uuid.Nil, fmt.Errorf("ground session %d: %w", i+1, err)
		}
	}
	for i, entry := range f.SimulatorSessions {
		date, err := dates.ParseISO(entry.Date)
		if err != nil {
			return uuid.Nil, fmt.Errorf("simulator session %d: %w", i+1, err)
		}
		device, ok := r.devices[entry.Device]
		if !ok {
			return uuid.Nil, fmt.Errorf("simulator session %d: unknown device %q", i+1, entry.Device)
		}
		instructor, err := r.person(entry.Instructor)
		if err != nil {
			return uuid.Nil, fmt.Errorf("simulator session %d: %w", i+1, err)
		}
		sim := models.SimulatorSession{
			PilotID:             owner.ID,
			Instructor:          instructor,
			Date:                date,
			Device:              device,
			SimulatedInstrument: entry.SimulatedInstrument,
			Notes:               entry.Notes,
		}
		if err := s.CreateSimulatorSession(ctx, &sim); err != nil {
			return uuid.Nil, fmt.Errorf("simulator session %d: %w", i+1, err)
		}
	}
	for i, entry := range f.Medicals {
		examined, err := dates.ParseISO(entry.ExaminationDate)
		if err != nil {
			return uuid.Nil, fmt.Errorf("medical %d: %w", i+1, err)
		}
		m := models.Medical{
			PilotID:                   owner.ID,
			Class:                     entry.Class,
			ExaminationDate:           examined,
			ExaminerName:              entry.ExaminerName,
			ExaminerDesignationNumber: entry.ExaminerDesignationNumber,
		}
		if err := s.CreateMedical(ctx, &m); err != nil {
			return uuid.Nil, fmt.Errorf("medical %d: %w", i+1, err)
		}
	}
	for i, entry := range f.Licenses {
		l := models.License{PilotID: owner.ID, Name: entry.Name, Number: entry.Number}
		if entry.Expiration != "" {
			expiration, err := dates.ParseISO(entry.Expiration)
			if err != nil {
				return uuid.Nil, fmt.Errorf("license %d: %w", i+1, err)
			}
			l.Expiration = &expiration
		}
		if err := s.CreateLicense(ctx, &l); err != nil {
			return uuid.Nil, fmt.Errorf("license %d: %w", i+1, err)
		}
	}
	return owner.ID, nil
}

func (r *resolver) person(ref string) (*models.Pilot, error) {
	if ref == "" {
		return nil, nil
	}
	p, ok := r.pilots[ref]
	if !ok {
		return nil, fmt.Errorf("unknown pilot %q", ref)
	}
	return &p, nil
}

func (r *resolver) flight(owner uuid.UUID, entry Flight) (models.Flight, error) {
	date, err := dates.ParseISO(entry.Date)
	if err != nil {
		return models.Flight{}, err
	}
	plane, ok := r.planes[entry.Plane]
	if !ok {
		return models.Flight{}, fmt.Errorf("unknown plane %q", entry.Plane)
	}
	instructor, err := r.person(entry.Instructor)
	if err != nil {
		return models.Flight{}, err
	}

	f := models.Flight{
		PilotID:               owner,
		Date:                  date,
		Plane:                 plane,
		Instructor:            instructor,
		FlightTime:            entry.FlightTime,
		PICTime:               entry.PICTime,
		SICTime:               entry.SICTime,
		DualReceived:          entry.DualReceived,
		XCTime:                entry.XCTime,
		SoloTime:              entry.SoloTime,
		DayTime:               entry.DayTime,
		NightTime:             entry.NightTime,
		ActualInstrument:      entry.ActualInstrument,
		SimulatedInstrument:   entry.SimulatedInstrument,
		DayLandings:           entry.DayLandings,
		DayFullStopLandings:   entry.DayFullStopLandings,
		NightLandings:         entry.NightLandings,
		NightFullStopLandings: entry.NightFullStopLandings,
		Notes:                 entry.Notes,
	}
	if entry.Route != "" {
		route, ok := r.routes[entry.Route]
		if !ok {
			return models.Flight{}, fmt.Errorf("unknown route %q", entry.Route)
		}
		f.Route = &route
	}
	for _, ref := range entry.Passengers {
		p, err := r.person(ref)
		if err != nil {
			return models.Flight{}, err
		}
		f.Passengers = append(f.Passengers, *p)
	}
	return f, nil
}
