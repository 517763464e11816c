package ch

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/google/uuid"

	"logbook/internal/models"
	"logbook/internal/storage"
)

type ClickHouseDB struct {
	conn clickhouse.Conn
}

var _ storage.Storage = (*ClickHouseDB)(nil)

// NewClickHouseDB creates a new ClickHouse database connection
func NewClickHouseDB(host string, port int, database, user, password string, useTLS bool) (*ClickHouseDB, error) {
	addr := fmt.Sprintf("%s:%d", host, port)

	options := &clickhouse.Options{
		Addr:     []string{addr},
		Protocol: clickhouse.Native,
		Auth: clickhouse.Auth{
			Database: database,
			Username: user,
			Password: password,
		},
	}

	if useTLS {
		options.TLS = &tls.Config{
			InsecureSkipVerify: false,
		}
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &ClickHouseDB{conn: conn}, nil
}

// Initialize is a no-op - tables are managed via migrations
func (db *ClickHouseDB) Initialize(ctx context.Context) error {
	return nil
}

// CreatePilot inserts a pilot
func (db *ClickHouseDB) CreatePilot(ctx context.Context, pilot *models.Pilot) error {
	if err := storage.Prepare(&pilot.ID, pilot); err != nil {
		return err
	}
	err := db.conn.Exec(ctx, `INSERT INTO pilots (id, first_name, last_name, role) VALUES (?, ?, ?, ?)`,
		pilot.ID, pilot.FirstName, pilot.LastName, pilot.Role.Code())
	if err != nil {
		return fmt.Errorf("failed to create pilot: %w", err)
	}
	return nil
}

// GetPilot returns a pilot by ID
func (db *ClickHouseDB) GetPilot(ctx context.Context, id uuid.UUID) (models.Pilot, error) {
	pilots, err := db.queryPilots(ctx, `SELECT id, first_name, last_name, role FROM pilots WHERE id = ?`, id)
	if err != nil {
		return models.Pilot{}, err
	}
	if len(pilots) == 0 {
		return models.Pilot{}, fmt.Errorf("pilot %s: %w", id, storage.ErrNotFound)
	}
	return pilots[0], nil
}

// ListPilots returns all pilots sorted by name
func (db *ClickHouseDB) ListPilots(ctx context.Context) ([]models.Pilot, error) {
	return db.queryPilots(ctx, `SELECT id, first_name, last_name, role FROM pilots ORDER BY first_name, last_name, id`)
}

func (db *ClickHouseDB) queryPilots(ctx context.Context, query string, args ...any) ([]models.Pilot, error) {
	rows, err := db.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pilots: %w", err)
	}
	defer rows.Close()

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
func (db *ClickHouseDB) CreatePlane(ctx context.Context, plane *models.Plane) error {
	if err := storage.Prepare(&plane.ID, plane); err != nil {
		return err
	}
	err := db.conn.Exec(ctx, `INSERT INTO planes (id, tail_number, type, plane_class) VALUES (?, ?, ?, ?)`,
		plane.ID, plane.TailNumber, plane.Type, string(plane.Class))
	if err != nil {
		return fmt.Errorf("failed to create plane: %w", err)
	}
	return nil
}

// ListPlanes returns all planes sorted by tail number
func (db *ClickHouseDB) ListPlanes(ctx context.Context) ([]models.Plane, error) {
	rows, err := db.conn.Query(ctx, `SELECT id, tail_number, type, plane_class FROM planes ORDER BY tail_number`)
	if err != nil {
		return nil, fmt.Errorf("failed to list planes: %w", err)
	}
	defer rows.Close()

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
func (db *ClickHouseDB) CreateSimulatorDevice(ctx context.Context, device *models.SimulatorDevice) error {
	if err := storage.Prepare(&device.ID, device); err != nil {
		return err
	}
	err := db.conn.Exec(ctx, `INSERT INTO simulator_devices (id, tail_number, type, sim_class) VALUES (?, ?, ?, ?)`,
		device.ID, device.TailNumber, device.Type, device.SimClass)
	if err != nil {
		return fmt.Errorf("failed to create simulator device: %w", err)
	}
	return nil
}

// ListSimulatorDevices returns all simulator devices sorted by tail number
func (db *ClickHouseDB) ListSimulatorDevices(ctx context.Context) ([]models.SimulatorDevice, error) {
	rows, err := db.conn.Query(ctx, `SELECT id, tail_number, type, sim_class FROM simulator_devices ORDER BY tail_number`)
	if err != nil {
		return nil, fmt.Errorf("failed to list simulator devices: %w", err)
	}
	defer rows.Close()

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
func (db *ClickHouseDB) CreateAirport(ctx context.Context, airport *models.Airport) error {
	if err := storage.Prepare(&airport.ID, airport); err != nil {
		return err
	}
	err := db.conn.Exec(ctx, `INSERT INTO airports (id, code, name, latitude, longitude, country, municipality) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		airport.ID, airport.Code, airport.Name, airport.Latitude, airport.Longitude, airport.Country, airport.Municipality)
	if err != nil {
		return fmt.Errorf("failed to create airport: %w", err)
	}
	return nil
}

// ListAirports returns all airports sorted by code
func (db *ClickHouseDB) ListAirports(ctx context.Context) ([]models.Airport, error) {
	rows, err := db.conn.Query(ctx, `SELECT id, code, name, latitude, longitude, country, municipality FROM airports ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list airports: %w", err)
	}
	defer rows.Close()

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

// CreateRoute inserts a route. Waypoints are stored as airport references.
func (db *ClickHouseDB) CreateRoute(ctx context.Context, route *models.Route) error {
	if err := storage.Prepare(&route.ID, route); err != nil {
		return err
	}
	err := db.conn.Exec(ctx, `INSERT INTO routes (id, name, waypoint_ids) VALUES (?, ?, ?)`,
		route.ID, route.Name, storage.WaypointIDs(route))
	if err != nil {
		return fmt.Errorf("failed to create route: %w", err)
	}
	return nil
}

// ListRoutes returns all routes with their waypoints resolved
func (db *ClickHouseDB) ListRoutes(ctx context.Context) ([]models.Route, error) {
	airports, err := db.ListAirports(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Airport, len(airports))
	for _, a := range airports {
		byID[a.ID] = a
	}

	rows, err := db.conn.Query(ctx, `SELECT id, name, waypoint_ids FROM routes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	defer rows.Close()

	var routes []models.Route
	for rows.Next() {
		var r models.Route
		var waypointIDs []uuid.UUID
		if err := rows.Scan(&r.ID, &r.Name, &waypointIDs); err != nil {
			return nil, fmt.Errorf("failed to scan route: %w", err)
		}
		r.Waypoints = storage.Waypoints(byID, waypointIDs)
		routes = append(routes, r)
	}
	return routes, rows.Err()
}

// CreateFlight inserts a flight. People, plane and route are stored as
// references.
func (db *ClickHouseDB) CreateFlight(ctx context.Context, f *models.Flight) error {
	if err := storage.Prepare(&f.ID, f); err != nil {
		return err
	}
	err := db.conn.Exec(ctx, `INSERT INTO flights (
			id, pilot_id, date, plane_id, route_id, instructor_id, passenger_ids,
			flight_time, pic_time, sic_time, dual_time, xc_time, solo_time, day_time, night_time,
			actual_instrument_time, simulated_instrument_time,
			day_landings, day_fullstop_landings, night_landings, night_fullstop_landings, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.PilotID, f.Date, f.Plane.ID, storage.RouteRef(f.Route), storage.PilotRef(f.Instructor), storage.PassengerIDs(f),
		f.FlightTime, f.PICTime, f.SICTime, f.DualReceived, f.XCTime, f.SoloTime, f.DayTime, f.NightTime,
		f.ActualInstrument, f.SimulatedInstrument,
		int32(f.DayLandings), int32(f.DayFullStopLandings), int32(f.NightLandings), int32(f.NightFullStopLandings), f.Notes)
	if err != nil {
		return fmt.Errorf("failed to create flight: %w", err)
	}
	return nil
}

// ListFlights returns the pilot's flights ordered by date
func (db *ClickHouseDB) ListFlights(ctx context.Context, pilotID uuid.UUID) ([]models.Flight, error) {
	refs, err := storage.LoadRefs(ctx, db)
	if err != nil {
		return nil, err
	}

	rows, err := db.conn.Query(ctx, `SELECT
			id, pilot_id, date, plane_id, route_id, instructor_id, passenger_ids,
			flight_time, pic_time, sic_time, dual_time, xc_time, solo_time, day_time, night_time,
			actual_instrument_time, simulated_instrument_time,
			day_landings, day_fullstop_landings, night_landings, night_fullstop_landings, notes
		FROM flights WHERE pilot_id = ? ORDER BY date, id`, pilotID)
	if err != nil {
		return nil, fmt.Errorf("failed to list flights: %w", err)
	}
	defer rows.Close()

	var flights []models.Flight
	for rows.Next() {
		var (
			f                              models.Flight
			planeID                        uuid.UUID
			routeID, instructorID          *uuid.UUID
			passengerIDs                   []uuid.UUID
			day, dayFull, night, nightFull int32
		)
		if err := rows.Scan(
			&f.ID, &f.PilotID, &f.Date, &planeID, &routeID, &instructorID, &passengerIDs,
			&f.FlightTime, &f.PICTime, &f.SICTime, &f.DualReceived, &f.XCTime, &f.SoloTime, &f.DayTime, &f.NightTime,
			&f.ActualInstrument, &f.SimulatedInstrument,
			&day, &dayFull, &night, &nightFull, &f.Notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan flight: %w", err)
		}
		f.Plane = refs.Planes[planeID]
		f.Route = refs.Route(routeID)
		f.Instructor = refs.Pilot(instructorID)
		f.Passengers = refs.People(passengerIDs)
		f.DayLandings, f.DayFullStopLandings = int(day), int(dayFull)
		f.NightLandings, f.NightFullStopLandings = int(night), int(nightFull)
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

// CreateGroundSession inserts a ground session
func (db *ClickHouseDB) CreateGroundSession(ctx context.Context, g *models.GroundSession) error {
	if err := storage.Prepare(&g.ID, g); err != nil {
		return err
	}
	err := db.conn.Exec(ctx, `INSERT INTO ground_sessions (id, pilot_id, instructor_id, date, ground_time, subject, endorsement) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.PilotID, storage.PilotRef(g.Instructor), g.Date, g.GroundTime, g.Subject, g.Endorsement)
	if err != nil {
		return fmt.Errorf("failed to create ground session: %w", err)
	}
	return nil
}

// ListGroundSessions returns the pilot's ground sessions ordered by date
func (db *ClickHouseDB) ListGroundSessions(ctx context.Context, pilotID uuid.UUID) ([]models.GroundSession, error) {
	refs, err := storage.LoadRefs(ctx, db)
	if err != nil {
		return nil, err
	}

	rows, err := db.conn.Query(ctx, `SELECT id, pilot_id, instructor_id, date, ground_time, subject, endorsement
		FROM ground_sessions WHERE pilot_id = ? ORDER BY date, id`, pilotID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ground sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.GroundSession
	for rows.Next() {
		var g models.GroundSession
		var instructorID *uuid.UUID
		if err := rows.Scan(&g.ID, &g.PilotID, &instructorID, &g.Date, &g.GroundTime, &g.Subject, &g.Endorsement); err != nil {
			return nil, fmt.Errorf("failed to scan ground session: %w", err)
		}
		g.Instructor = refs.Pilot(instructorID)
		sessions = append(sessions, g)
	}
	return sessions, rows.Err()
}

// CreateSimulatorSession inserts a simulator session
func (db *ClickHouseDB) CreateSimulatorSession(ctx context.Context, s *models.SimulatorSession) error {
	if err := storage.Prepare(&s.ID, s); err != nil {
		return err
	}
	err := db.conn.Exec(ctx, `INSERT INTO simulator_sessions (id, pilot_id, instructor_id, date, device_id, simulated_instrument_time, notes) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.PilotID, storage.PilotRef(s.Instructor), s.Date, s.Device.ID, s.SimulatedInstrument, s.Notes)
	if err != nil {
		return fmt.Errorf("failed to create simulator session: %w", err)
	}
	return nil
}

// ListSimulatorSessions returns the pilot's simulator sessions ordered by date
func (db *ClickHouseDB) ListSimulatorSessions(ctx context.Context, pilotID uuid.UUID) ([]models.SimulatorSession, error) {
	refs, err := storage.LoadRefs(ctx, db)
	if err != nil {
		return nil, err
	}

	rows, err := db.conn.Query(ctx, `SELECT id, pilot_id, instructor_id, date, device_id, simulated_instrument_time, notes
		FROM simulator_sessions WHERE pilot_id = ? ORDER BY date, id`, pilotID)
	if err != nil {
		return nil, fmt.Errorf("failed to list simulator sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.SimulatorSession
	for rows.Next() {
		var s models.SimulatorSession
		var instructorID *uuid.UUID
		var deviceID uuid.UUID
		if err := rows.Scan(&s.ID, &s.PilotID, &instructorID, &s.Date, &deviceID, &s.SimulatedInstrument, &s.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan simulator session: %w", err)
		}
		s.Instructor = refs.Pilot(instructorID)
		s.Device = refs.Devices[deviceID]
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// CreateMedical inserts a medical certificate
func (db *ClickHouseDB) CreateMedical(ctx context.Context, m *models.Medical) error {
	if err := storage.Prepare(&m.ID, m); err != nil {
		return err
	}
	err := db.conn.Exec(ctx, `INSERT INTO medicals (id, pilot_id, class, examination_date, examiner_name, examiner_designation_number) VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.PilotID, uint8(m.Class), m.ExaminationDate, m.ExaminerName, m.ExaminerDesignationNumber)
	if err != nil {
		return fmt.Errorf("failed to create medical: %w", err)
	}
	return nil
}

// ListMedicals returns the pilot's medicals ordered by examination date
func (db *ClickHouseDB) ListMedicals(ctx context.Context, pilotID uuid.UUID) ([]models.Medical, error) {
	rows, err := db.conn.Query(ctx, `SELECT id, pilot_id, class, examination_date, examiner_name, examiner_designation_number
		FROM medicals WHERE pilot_id = ? ORDER BY examination_date, id`, pilotID)
	if err != nil {
		return nil, fmt.Errorf("failed to list medicals: %w", err)
	}
	defer rows.Close()

	var medicals []models.Medical
	for rows.Next() {
		var m models.Medical
		var class uint8
		if err := rows.Scan(&m.ID, &m.PilotID, &class, &m.ExaminationDate, &m.ExaminerName, &m.ExaminerDesignationNumber); err != nil {
			return nil, fmt.Errorf("failed to scan medical: %w", err)
		}
		m.Class = int(class)
		medicals = append(medicals, m)
	}
	return medicals, rows.Err()
}

// CreateLicense inserts a license
func (db *ClickHouseDB) CreateLicense(ctx context.Context, l *models.License) error {
	if err := storage.Prepare(&l.ID, l); err != nil {
		return err
	}
	err := db.conn.Exec(ctx, `INSERT INTO licenses (id, pilot_id, name, number, expiration) VALUES (?, ?, ?, ?, ?)`,
		l.ID, l.PilotID, l.Name, l.Number, l.Expiration)
	if err != nil {
		return fmt.Errorf("failed to create license: %w", err)
	}
	return nil
}

// ListLicenses returns the pilot's licenses
func (db *ClickHouseDB) ListLicenses(ctx context.Context, pilotID uuid.UUID) ([]models.License, error) {
	rows, err := db.conn.Query(ctx, `SELECT id, pilot_id, name, number, expiration FROM licenses WHERE pilot_id = ? ORDER BY name, id`, pilotID)
	if err != nil {
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}
	defer rows.Close()

	var licenses []models.License
	for rows.Next() {
		var l models.License
		var expiration *time.Time
		if err := rows.Scan(&l.ID, &l.PilotID, &l.Name, &l.Number, &expiration); err != nil {
			return nil, fmt.Errorf("failed to scan license: %w", err)
		}
		l.Expiration = expiration
		licenses = append(licenses, l)
	}
	return licenses, rows.Err()
}

// Close closes the database connection
func (db *ClickHouseDB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}
