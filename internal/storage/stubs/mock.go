package stubs

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"logbook/internal/models"
	"logbook/internal/storage"
)

// MockDB is an in-memory implementation of the Storage interface. It backs
// the "memory" storage driver and the tests of packages above storage.
type MockDB struct {
	mu         sync.RWMutex
	pilots     map[uuid.UUID]models.Pilot
	planes     []models.Plane
	devices    []models.SimulatorDevice
	airports   []models.Airport
	routes     []models.Route
	flights    []models.Flight
	grounds    []models.GroundSession
	simulators []models.SimulatorSession
	medicals   []models.Medical
	licenses   []models.License

	// FailMedicals makes ListMedicals return an error
	FailMedicals bool
}

var _ storage.Storage = (*MockDB)(nil)

// NewMockDB creates a new mock database
func NewMockDB() *MockDB {
	return &MockDB{
		pilots: make(map[uuid.UUID]models.Pilot),
	}
}

// Initialize does nothing, the mock starts empty
func (m *MockDB) Initialize(ctx context.Context) error {
	return nil
}

// CreatePilot stores a pilot
func (m *MockDB) CreatePilot(ctx context.Context, pilot *models.Pilot) error {
	if err := storage.Prepare(&pilot.ID, pilot); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pilots[pilot.ID] = *pilot
	return nil
}

// GetPilot returns a pilot by ID
func (m *MockDB) GetPilot(ctx context.Context, id uuid.UUID) (models.Pilot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.pilots[id]
	if !ok {
		return models.Pilot{}, fmt.Errorf("pilot %s: %w", id, storage.ErrNotFound)
	}
	return p, nil
}

// ListPilots returns all pilots sorted by name
func (m *MockDB) ListPilots(ctx context.Context) ([]models.Pilot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pilots := make([]models.Pilot, 0, len(m.pilots))
	for _, p := range m.pilots {
		pilots = append(pilots, p)
	}
	sort.Slice(pilots, func(i, j int) bool {
		if pilots[i].Name() != pilots[j].Name() {
			return pilots[i].Name() < pilots[j].Name()
		}
		return pilots[i].ID.String() < pilots[j].ID.String()
	})
	return pilots, nil
}

// CreatePlane stores a plane
func (m *MockDB) CreatePlane(ctx context.Context, plane *models.Plane) error {
	if err := storage.Prepare(&plane.ID, plane); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.planes = append(m.planes, *plane)
	return nil
}

// ListPlanes returns all planes in creation order
func (m *MockDB) ListPlanes(ctx context.Context) ([]models.Plane, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Plane(nil), m.planes...), nil
}

// CreateSimulatorDevice stores a simulator device
func (m *MockDB) CreateSimulatorDevice(ctx context.Context, device *models.SimulatorDevice) error {
	if err := storage.Prepare(&device.ID, device); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.devices = append(m.devices, *device)
	return nil
}

// ListSimulatorDevices returns all simulator devices in creation order
func (m *MockDB) ListSimulatorDevices(ctx context.Context) ([]models.SimulatorDevice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.SimulatorDevice(nil), m.devices...), nil
}

// CreateAirport stores an airport
func (m *MockDB) CreateAirport(ctx context.Context, airport *models.Airport) error {
	if err := storage.Prepare(&airport.ID, airport); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.airports = append(m.airports, *airport)
	return nil
}

// ListAirports returns all airports in creation order
func (m *MockDB) ListAirports(ctx context.Context) ([]models.Airport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Airport(nil), m.airports...), nil
}

// CreateRoute stores a route with its waypoints
func (m *MockDB) CreateRoute(ctx context.Context, route *models.Route) error {
	if err := storage.Prepare(&route.ID, route); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	r := *route
	r.Waypoints = append([]models.Airport(nil), route.Waypoints...)
	m.routes = append(m.routes, r)
	return nil
}

// ListRoutes returns all routes in creation order
func (m *MockDB) ListRoutes(ctx context.Context) ([]models.Route, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Route(nil), m.routes...), nil
}

// CreateFlight stores a flight
func (m *MockDB) CreateFlight(ctx context.Context, flight *models.Flight) error {
	if err := storage.Prepare(&flight.ID, flight); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	f := *flight
	f.Passengers = append([]models.Pilot(nil), flight.Passengers...)
	m.flights = append(m.flights, f)
	return nil
}

// ListFlights returns the pilot's flights ordered by date
func (m *MockDB) ListFlights(ctx context.Context, pilotID uuid.UUID) ([]models.Flight, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var flights []models.Flight
	for _, f := range m.flights {
		if f.PilotID == pilotID {
			f.Passengers = append([]models.Pilot(nil), f.Passengers...)
			flights = append(flights, f)
		}
	}
	sort.SliceStable(flights, func(i, j int) bool {
		return flights[i].Date.Before(flights[j].Date)
	})
	return flights, nil
}

// CreateGroundSession stores a ground session
func (m *MockDB) CreateGroundSession(ctx context.Context, session *models.GroundSession) error {
	if err := storage.Prepare(&session.ID, session); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.grounds = append(m.grounds, *session)
	return nil
}

// ListGroundSessions returns the pilot's ground sessions ordered by date
func (m *MockDB) ListGroundSessions(ctx context.Context, pilotID uuid.UUID) ([]models.GroundSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var sessions []models.GroundSession
	for _, g := range m.grounds {
		if g.PilotID == pilotID {
			sessions = append(sessions, g)
		}
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date.Before(sessions[j].Date)
	})
	return sessions, nil
}

// CreateSimulatorSession stores a simulator session
func (m *MockDB) CreateSimulatorSession(ctx context.Context, session *models.SimulatorSession) error {
	if err := storage.Prepare(&session.ID, session); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.simulators = append(m.simulators, *session)
	return nil
}

// ListSimulatorSessions returns the pilot's simulator sessions ordered by date
func (m *MockDB) ListSimulatorSessions(ctx context.Context, pilotID uuid.UUID) ([]models.SimulatorSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var sessions []models.SimulatorSession
	for _, s := range m.simulators {
		if s.PilotID == pilotID {
			sessions = append(sessions, s)
		}
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date.Before(sessions[j].Date)
	})
	return sessions, nil
}

// CreateMedical stores a medical certificate
func (m *MockDB) CreateMedical(ctx context.Context, medical *models.Medical) error {
	if err := storage.Prepare(&medical.ID, medical); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.medicals = append(m.medicals, *medical)
	return nil
}

// ListMedicals returns the pilot's medicals ordered by examination date
func (m *MockDB) ListMedicals(ctx context.Context, pilotID uuid.UUID) ([]models.Medical, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FailMedicals {
		return nil, fmt.Errorf("medicals unavailable")
	}

	var medicals []models.Medical
	for _, md := range m.medicals {
		if md.PilotID == pilotID {
			medicals = append(medicals, md)
		}
	}
	sort.SliceStable(medicals, func(i, j int) bool {
		return medicals[i].ExaminationDate.Before(medicals[j].ExaminationDate)
	})
	return medicals, nil
}

// CreateLicense stores a license
func (m *MockDB) CreateLicense(ctx context.Context, license *models.License) error {
	if err := storage.Prepare(&license.ID, license); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.licenses = append(m.licenses, *license)
	return nil
}

// ListLicenses returns the pilot's licenses in creation order
func (m *MockDB) ListLicenses(ctx context.Context, pilotID uuid.UUID) ([]models.License, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var licenses []models.License
	for _, l := range m.licenses {
		if l.PilotID == pilotID {
			licenses = append(licenses, l)
		}
	}
	return licenses, nil
}

// Close does nothing for mock DB
func (m *MockDB) Close() error {
	return nil
}
