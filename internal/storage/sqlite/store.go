package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"logbook/internal/dates"
	"logbook/internal/models"
	"logbook/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS pilots (
	id TEXT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	role TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS planes (
	id TEXT PRIMARY KEY,
	tail_number TEXT NOT NULL,
	type TEXT NOT NULL,
	plane_class TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS simulator_devices (
	id TEXT PRIMARY KEY,
	tail_number TEXT NOT NULL,
	type TEXT NOT NULL,
	sim_class TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS airports (
	id TEXT PRIMARY KEY,
	code TEXT NOT NULL,
	name TEXT NOT NULL,
	latitude REAL NOT NULL,
	longitude REAL NOT NULL,
	country TEXT NOT NULL,
	municipality TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS routes (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	waypoint_ids TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS flights (
	id TEXT PRIMARY KEY,
	pilot_id TEXT NOT NULL,
	date TEXT NOT NULL,
	plane_id TEXT NOT NULL,
	route_id TEXT,
	instructor_id TEXT,
	passenger_ids TEXT NOT NULL,
	flight_time TEXT NOT NULL,
	pic_time TEXT NOT NULL,
	sic_time TEXT NOT NULL,
	dual_time TEXT NOT NULL,
	xc_time TEXT NOT NULL,
	solo_time TEXT NOT NULL,
	day_time TEXT NOT NULL,
	night_time TEXT NOT NULL,
	actual_instrument_time TEXT NOT NULL,
	simulated_instrument_time TEXT NOT NULL,
	day_landings INTEGER NOT NULL,
	day_fullstop_landings INTEGER NOT NULL,
	night_landings INTEGER NOT NULL,
	night_fullstop_landings INTEGER NOT NULL,
	notes TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS flights_pilot_date ON flights (pilot_id, date);
CREATE TABLE IF NOT EXISTS ground_sessions (
	id TEXT PRIMARY KEY,
	pilot_id TEXT NOT NULL,
	instructor_id TEXT,
	date TEXT NOT NULL,
	ground_time TEXT NOT NULL,
	subject TEXT NOT NULL,
	endorsement TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS simulator_sessions (
	id TEXT PRIMARY KEY,
	pilot_id TEXT NOT NULL,
	instructor_id TEXT,
	date TEXT NOT NULL,
	device_id TEXT NOT NULL,
	simulated_instrument_time TEXT NOT NULL,
	notes TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS medicals (
	id TEXT PRIMARY KEY,
	pilot_id TEXT NOT NULL,
	class INTEGER NOT NULL,
	examination_date TEXT NOT NULL,
	examiner_name TEXT NOT NULL,
	examiner_designation_number TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS licenses (
	id TEXT PRIMARY KEY,
	pilot_id TEXT NOT NULL,
	name TEXT NOT NULL,
	number INTEGER NOT NULL,
	expiration TEXT
);
`

// Store keeps the logbook in a single SQLite file. Dates are stored as
// YYYY-MM-DD text and hours as decimal text so nothing is lost to floats.
type Store struct {
	db   *sql.DB
	path string
}

var _ storage.Storage = (*Store)(nil)

// NewStore opens (or creates) the database file and its schema
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "logbook.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection serializes writers
	db.SetMaxOpenConns(1)
	return &Store{db: db, path: path}, nil
}

// Initialize creates the schema
func (s *Store) Initialize(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Path returns the configured database path
func (s *Store) Path() string { return s.path }

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

func nullableID(id *uuid.UUID) sql.NullString {
	if id == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: id.String(), Valid: true}
}

func parseNullableID(v sql.NullString) (*uuid.UUID, error) {
	if !v.Valid {
		return nil, nil
	}
	id, err := uuid.Parse(v.String)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func encodeIDs(ids []uuid.UUID) (string, error) {
	data, err := json.Marshal(ids)
	return string(data), err
}

func decodeIDs(data string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// CreatePilot inserts a pilot
func (s *Store) CreatePilot(ctx context.Context, p *models.Pilot) error {
	if err := storage.Prepare(&p.ID, p); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO pilots (id, first_name, last_name, role) VALUES (?, ?, ?, ?)`,
		p.ID, p.FirstName, p.LastName, p.Role.Code())
	if err != nil {
		return fmt.Errorf("failed to create pilot: %w", err)
	}
	return nil
}

// GetPilot returns a pilot by ID
func (s *Store) GetPilot(ctx context.Context, id uuid.UUID) (models.Pilot, error) {
	pilots, err := s.queryPilots(ctx, `SELECT id, first_name, last_name, role FROM pilots WHERE id = ?`, id)
	if err != nil {
		return models.Pilot{}, err
	}
	if len(pilots) == 0 {
		return models.Pilot{}, fmt.Errorf("pilot %s: %w", id, storage.ErrNotFound)
	}
	return pilots[0], nil
}

// ListPilots returns all pilots sorted by name
func (s *Store) ListPilots(ctx context.Context) ([]models.Pilot, error) {
	return s.queryPilots(ctx, `SELECT id, first_name, last_name, role FROM pilots ORDER BY first_name, last_name, id`)
}

func (s *Store) queryPilots(ctx context.Context, query string, args ...any) ([]models.Pilot, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pilots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var pilots []models.Pilot
	for rows.Next() {
		var p models.Pilot
		var role string
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &role); err != nil {
			return nil, fmt.Errorf("failed to scan pilot: %w", err)
		}
		if p.Role, err = models.ParseRole(role); err != nil {
			return nil, fmt.Errorf("pilot %s: %w", p.ID, err)
		}
		pilots = append(pilots, p)
	}
	return pilots, rows.Err()
}

// CreatePlane inserts a plane
func (s *Store) CreatePlane(ctx context.Context, p *models.Plane) error {
	if err := storage.Prepare(&p.ID, p); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO planes (id, tail_number, type, plane_class) VALUES (?, ?, ?, ?)`,
		p.ID, p.TailNumber, p.Type, string(p.Class))
	if err != nil {
		return fmt.Errorf("failed to create plane: %w", err)
	}
	return nil
}

// ListPlanes returns all planes sorted by tail number
func (s *Store) ListPlanes(ctx context.Context) ([]models.Plane, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, tail_number, type, plane_class FROM planes ORDER BY tail_number`)
	if err != nil {
		return nil, fmt.Errorf("failed to list planes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var planes []models.Plane
	for rows.Next() {
		var p models.Plane
		var class string
		if err := rows.Scan(&p.ID, &p.TailNumber, &p.Type, &class); err != nil {
			return nil, fmt.Errorf("failed to scan plane: %w", err)
		}
		p.Class = models.PlaneClass(class)
		planes = append(planes, p)
	}
	return planes, rows.Err()
}

// CreateSimulatorDevice inserts a simulator device
func (s *Store) CreateSimulatorDevice(ctx context.Context, d *models.SimulatorDevice) error {
	if err := storage.Prepare(&d.ID, d); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO simulator_devices (id, tail_number, type, sim_class) VALUES (?, ?, ?, ?)`,
		d.ID, d.TailNumber, d.Type, d.SimClass)
	if err != nil {
		return fmt.Errorf("failed to create simulator device: %w", err)
	}
	return nil
}

// ListSimulatorDevices returns all simulator devices sorted by tail number
func (s *Store) ListSimulatorDevices(ctx context.Context) ([]models.SimulatorDevice, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, tail_number, type, sim_class FROM simulator_devices ORDER BY tail_number`)
	if err != nil {
		return nil, fmt.Errorf("failed to list simulator devices: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var devices []models.SimulatorDevice
	for rows.Next() {
		var d models.SimulatorDevice
		if err := rows.Scan(&d.ID, &d.TailNumber, &d.Type, &d.SimClass); err != nil {
			return nil, fmt.Errorf("failed to scan simulator device: %w", err)
		}
		devices = append(devices, d)
	}
	return devices, rows.Err()
}

// CreateAirport inserts an airport
func (s *Store) CreateAirport(ctx context.Context, a *models.Airport) error {
	if err := storage.Prepare(&a.ID, a); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO airports (id, code, name, latitude, longitude, country, municipality) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Code, a.Name, a.Latitude, a.Longitude, a.Country, a.Municipality)
	if err != nil {
		return fmt.Errorf("failed to create airport: %w", err)
	}
	return nil
}

// ListAirports returns all airports sorted by code
func (s *Store) ListAirports(ctx context.Context) ([]models.Airport, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, code, name, latitude, longitude, country, municipality FROM airports ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list airports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var airports []models.Airport
	for rows.Next() {
		var a models.Airport
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.Latitude, &a.Longitude, &a.Country, &a.Municipality); err != nil {
			return nil, fmt.Errorf("failed to scan airport: %w", err)
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

// CreateRoute inserts a route. Waypoints are stored as a JSON list of
// airport references.
func (s *Store) CreateRoute(ctx context.Context, r *models.Route) error {
	if err := storage.Prepare(&r.ID, r); err != nil {
		return err
	}
	waypoints, err := encodeIDs(storage.WaypointIDs(r))
	if err != nil {
		return fmt.Errorf("encode waypoints: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO routes (id, name, waypoint_ids) VALUES (?, ?, ?)`,
		r.ID, r.Name, waypoints); err != nil {
		return fmt.Errorf("failed to create route: %w", err)
	}
	return nil
}

// ListRoutes returns all routes with their waypoints resolved
func (s *Store) ListRoutes(ctx context.Context) ([]models.Route, error) {
	airports, err := s.ListAirports(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Airport, len(airports))
	for _, a := range airports {
		byID[a.ID] = a
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, waypoint_ids FROM routes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var routes []models.Route
	for rows.Next() {
		var r models.Route
		var waypoints string
		if err := rows.Scan(&r.ID, &r.Name, &waypoints); err != nil {
			return nil, fmt.Errorf("failed to scan route: %w", err)
		}
		ids, err := decodeIDs(waypoints)
		if err != nil {
			return nil, fmt.Errorf("route %s waypoints: %w", r.ID, err)
		}
		r.Waypoints = storage.Waypoints(byID, ids)
		routes = append(routes, r)
	}
	return routes, rows.Err()
}

// CreateFlight inserts a flight
func (s *Store) CreateFlight(ctx context.Context, f *models.Flight) error {
	if err := storage.Prepare(&f.ID, f); err != nil {
		return err
	}
	passengers, err := encodeIDs(storage.PassengerIDs(f))
	if err != nil {
		return fmt.Errorf("encode passengers: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO flights (
			id, pilot_id, date, plane_id, route_id, instructor_id, passenger_ids,
			flight_time, pic_time, sic_time, dual_time, xc_time, solo_time, day_time, night_time,
			actual_instrument_time, simulated_instrument_time,
			day_landings, day_fullstop_landings, night_landings, night_fullstop_landings, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.PilotID, dates.ISO(f.Date), f.Plane.ID, nullableID(storage.RouteRef(f.Route)), nullableID(storage.PilotRef(f.Instructor)), passengers,
		f.FlightTime, f.PICTime, f.SICTime, f.DualReceived, f.XCTime, f.SoloTime, f.DayTime, f.NightTime,
		f.ActualInstrument, f.SimulatedInstrument,
		f.DayLandings, f.DayFullStopLandings, f.NightLandings, f.NightFullStopLandings, f.Notes)
	if err != nil {
		return fmt.Errorf("failed to create flight: %w", err)
	}
	return nil
}

// ListFlights returns the pilot's flights ordered by date
func (s *Store) ListFlights(ctx context.Context, pilotID uuid.UUID) ([]models.Flight, error) {
	refs, err := storage.LoadRefs(ctx, s)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT
			id, pilot_id, date, plane_id, route_id, instructor_id, passenger_ids,
			flight_time, pic_time, sic_time, dual_time, xc_time, solo_time, day_time, night_time,
			actual_instrument_time, simulated_instrument_time,
			day_landings, day_fullstop_landings, night_landings, night_fullstop_landings, notes
		FROM flights WHERE pilot_id = ? ORDER BY date, id`, pilotID)
	if err != nil {
		return nil, fmt.Errorf("failed to list flights: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var flights []models.Flight
	for rows.Next() {
		var (
			f                     models.Flight
			date, passengers      string
			planeID               uuid.UUID
			routeID, instructorID sql.NullString
		)
		if err := rows.Scan(
			&f.ID, &f.PilotID, &date, &planeID, &routeID, &instructorID, &passengers,
			&f.FlightTime, &f.PICTime, &f.SICTime, &f.DualReceived, &f.XCTime, &f.SoloTime, &f.DayTime, &f.NightTime,
			&f.ActualInstrument, &f.SimulatedInstrument,
			&f.DayLandings, &f.DayFullStopLandings, &f.NightLandings, &f.NightFullStopLandings, &f.Notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan flight: %w", err)
		}
		if f.Date, err = dates.ParseISO(date); err != nil {
			return nil, fmt.Errorf("flight %s date: %w", f.ID, err)
		}
		route, err := parseNullableID(routeID)
		if err != nil {
			return nil, fmt.Errorf("flight %s route: %w", f.ID, err)
		}
		instructor, err := parseNullableID(instructorID)
		if err != nil {
			return nil, fmt.Errorf("flight %s instructor: %w", f.ID, err)
		}
		passengerIDs, err := decodeIDs(passengers)
		if err != nil {
			return nil, fmt.Errorf("flight %s passengers: %w", f.ID, err)
		}
		f.Plane = refs.Planes[planeID]
		f.Route = refs.Route(route)
		f.Instructor = refs.Pilot(instructor)
		f.Passengers = refs.People(passengerIDs)
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

// CreateGroundSession inserts a ground session
func (s *Store) CreateGroundSession(ctx context.Context, g *models.GroundSession) error {
	if err := storage.Prepare(&g.ID, g); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO ground_sessions (id, pilot_id, instructor_id, date, ground_time, subject, endorsement) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.PilotID, nullableID(storage.PilotRef(g.Instructor)), dates.ISO(g.Date), g.GroundTime, g.Subject, g.Endorsement)
	if err != nil {
		return fmt.Errorf("failed to create ground session: %w", err)
	}
	return nil
}

// ListGroundSessions returns the pilot's ground sessions ordered by date
func (s *Store) ListGroundSessions(ctx context.Context, pilotID uuid.UUID) ([]models.GroundSession, error) {
	refs, err := storage.LoadRefs(ctx, s)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, pilot_id, instructor_id, date, ground_time, subject, endorsement
		FROM ground_sessions WHERE pilot_id = ? ORDER BY date, id`, pilotID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ground sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []models.GroundSession
	for rows.Next() {
		var g models.GroundSession
		var instructorID sql.NullString
		var date string
		if err := rows.Scan(&g.ID, &g.PilotID, &instructorID, &date, &g.GroundTime, &g.Subject, &g.Endorsement); err != nil {
			return nil, fmt.Errorf("failed to scan ground session: %w", err)
		}
		if g.Date, err = dates.ParseISO(date); err != nil {
			return nil, fmt.Errorf("ground session %s date: %w", g.ID, err)
		}
		instructor, err := parseNullableID(instructorID)
		if err != nil {
			return nil, fmt.Errorf("ground session %s instructor: %w", g.ID, err)
		}
		g.Instructor = refs.Pilot(instructor)
		sessions = append(sessions, g)
	}
	return sessions, rows.Err()
}

// CreateSimulatorSession inserts a simulator session
func (s *Store) CreateSimulatorSession(ctx context.Context, sim *models.SimulatorSession) error {
	if err := storage.Prepare(&sim.ID, sim); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO simulator_sessions (id, pilot_id, instructor_id, date, device_id, simulated_instrument_time, notes) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sim.ID, sim.PilotID, nullableID(storage.PilotRef(sim.Instructor)), dates.ISO(sim.Date), sim.Device.ID, sim.SimulatedInstrument, sim.Notes)
	if err != nil {
		return fmt.Errorf("failed to create simulator session: %w", err)
	}
	return nil
}

// ListSimulatorSessions returns the pilot's simulator sessions ordered by date
func (s *Store) ListSimulatorSessions(ctx context.Context, pilotID uuid.UUID) ([]models.SimulatorSession, error) {
	refs, err := storage.LoadRefs(ctx, s)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, pilot_id, instructor_id, date, device_id, simulated_instrument_time, notes
		FROM simulator_sessions WHERE pilot_id = ? ORDER BY date, id`, pilotID)
	if err != nil {
		return nil, fmt.Errorf("failed to list simulator sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []models.SimulatorSession
	for rows.Next() {
		var sim models.SimulatorSession
		var instructorID sql.NullString
		var date string
		var deviceID uuid.UUID
		if err := rows.Scan(&sim.ID, &sim.PilotID, &instructorID, &date, &deviceID, &sim.SimulatedInstrument, &sim.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan simulator session: %w", err)
		}
		if sim.Date, err = dates.ParseISO(date); err != nil {
			return nil, fmt.Errorf("simulator session %s date: %w", sim.ID, err)
		}
		instructor, err := parseNullableID(instructorID)
		if err != nil {
			return nil, fmt.Errorf("simulator session %s instructor: %w", sim.ID, err)
		}
		sim.Instructor = refs.Pilot(instructor)
		sim.Device = refs.Devices[deviceID]
		sessions = append(sessions, sim)
	}
	return sessions, rows.Err()
}

// CreateMedical inserts a medical certificate
func (s *Store) CreateMedical(ctx context.Context, m *models.Medical) error {
	if err := storage.Prepare(&m.ID, m); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO medicals (id, pilot_id, class, examination_date, examiner_name, examiner_designation_number) VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.PilotID, m.Class, dates.ISO(m.ExaminationDate), m.ExaminerName, m.ExaminerDesignationNumber)
	if err != nil {
		return fmt.Errorf("failed to create medical: %w", err)
	}
	return nil
}

// ListMedicals returns the pilot's medicals ordered by examination date
func (s *Store) ListMedicals(ctx context.Context, pilotID uuid.UUID) ([]models.Medical, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, pilot_id, class, examination_date, examiner_name, examiner_designation_number
		FROM medicals WHERE pilot_id = ? ORDER BY examination_date, id`, pilotID)
	if err != nil {
		return nil, fmt.Errorf("failed to list medicals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var medicals []models.Medical
	for rows.Next() {
		var m models.Medical
		var examined string
		if err := rows.Scan(&m.ID, &m.PilotID, &m.Class, &examined, &m.ExaminerName, &m.ExaminerDesignationNumber); err != nil {
			return nil, fmt.Errorf("failed to scan medical: %w", err)
		}
		if m.ExaminationDate, err = dates.ParseISO(examined); err != nil {
			return nil, fmt.Errorf("medical %s examination date: %w", m.ID, err)
		}
		medicals = append(medicals, m)
	}
	return medicals, rows.Err()
}

// CreateLicense inserts a license
func (s *Store) CreateLicense(ctx context.Context, l *models.License) error {
	if err := storage.Prepare(&l.ID, l); err != nil {
		return err
	}
	var expiration sql.NullString
	if l.Expiration != nil {
		expiration = sql.NullString{String: dates.ISO(*l.Expiration), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO licenses (id, pilot_id, name, number, expiration) VALUES (?, ?, ?, ?, ?)`,
		l.ID, l.PilotID, l.Name, l.Number, expiration)
	if err != nil {
		return fmt.Errorf("failed to create license: %w", err)
	}
	return nil
}

// ListLicenses returns the pilot's licenses
func (s *Store) ListLicenses(ctx context.Context, pilotID uuid.UUID) ([]models.License, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, pilot_id, name, number, expiration FROM licenses WHERE pilot_id = ? ORDER BY name, id`, pilotID)
	if err != nil {
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var licenses []models.License
	for rows.Next() {
		var l models.License
		var expiration sql.NullString
		if err := rows.Scan(&l.ID, &l.PilotID, &l.Name, &l.Number, &expiration); err != nil {
			return nil, fmt.Errorf("failed to scan license: %w", err)
		}
		if expiration.Valid {
			t, err := dates.ParseISO(expiration.String)
			if err != nil {
				return nil, fmt.Errorf("license %s expiration: %w", l.ID, err)
			}
			l.Expiration = &t
		}
		licenses = append(licenses, l)
	}
	return licenses, rows.Err()
}
