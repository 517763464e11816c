package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"logbook/internal/models"
)

// ErrNotFound is returned when a record looked up by ID does not exist
var ErrNotFound = errors.New("not found")

// ErrMedicals marks a ledger that was loaded without its medical records
var ErrMedicals = errors.New("failed to list medicals")

// Storage defines the interface for data storage operations
type Storage interface {
	// Pilot operations
	CreatePilot(ctx context.Context, pilot *models.Pilot) error
	GetPilot(ctx context.Context, id uuid.UUID) (models.Pilot, error)
	ListPilots(ctx context.Context) ([]models.Pilot, error)

	// Aircraft and route operations
	CreatePlane(ctx context.Context, plane *models.Plane) error
	ListPlanes(ctx context.Context) ([]models.Plane, error)
	CreateSimulatorDevice(ctx context.Context, device *models.SimulatorDevice) error
	ListSimulatorDevices(ctx context.Context) ([]models.SimulatorDevice, error)
	CreateAirport(ctx context.Context, airport *models.Airport) error
	ListAirports(ctx context.Context) ([]models.Airport, error)
	CreateRoute(ctx context.Context, route *models.Route) error
	ListRoutes(ctx context.Context) ([]models.Route, error)

	// Logbook entries. List methods return one pilot's records ordered by
	// date with people, plane and route references resolved.
	CreateFlight(ctx context.Context, flight *models.Flight) error
	ListFlights(ctx context.Context, pilotID uuid.UUID) ([]models.Flight, error)
	CreateGroundSession(ctx context.Context, session *models.GroundSession) error
	ListGroundSessions(ctx context.Context, pilotID uuid.UUID) ([]models.GroundSession, error)
	CreateSimulatorSession(ctx context.Context, session *models.SimulatorSession) error
	ListSimulatorSessions(ctx context.Context, pilotID uuid.UUID) ([]models.SimulatorSession, error)

	// Certificates
	CreateMedical(ctx context.Context, medical *models.Medical) error
	ListMedicals(ctx context.Context, pilotID uuid.UUID) ([]models.Medical, error)
	CreateLicense(ctx context.Context, license *models.License) error
	ListLicenses(ctx context.Context, pilotID uuid.UUID) ([]models.License, error)

	// Lifecycle
	Initialize(ctx context.Context) error
	Close() error
}

// Prepare assigns a fresh ID to a new record and validates it. Every Create
// method calls it before writing.
func Prepare(id *uuid.UUID, record any) error {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	return models.Validate(record)
}

// ResolvePilot returns the pilot with the given ID. A nil ID selects the
// logbook owner: the first pilot with the Pilot role.
func ResolvePilot(ctx context.Context, s Storage, id uuid.UUID) (models.Pilot, error) {
	if id != uuid.Nil {
		return s.GetPilot(ctx, id)
	}
	pilots, err := s.ListPilots(ctx)
	if err != nil {
		return models.Pilot{}, err
	}
	for _, p := range pilots {
		if p.Role == models.RolePilot {
			return p, nil
		}
	}
	return models.Pilot{}, fmt.Errorf("logbook owner: %w", ErrNotFound)
}

// LoadLedger reads everything recorded for one pilot. When only the medical
// records cannot be read, the error wraps ErrMedicals and the returned ledger
// is complete apart from Medicals.
func LoadLedger(ctx context.Context, s Storage, pilotID uuid.UUID) (models.Ledger, error) {
	pilot, err := s.GetPilot(ctx, pilotID)
	if err != nil {
		return models.Ledger{}, fmt.Errorf("failed to get pilot: %w", err)
	}
	ledger := models.Ledger{Pilot: pilot}

	if ledger.Flights, err = s.ListFlights(ctx, pilotID); err != nil {
		return models.Ledger{}, fmt.Errorf("failed to list flights: %w", err)
	}
	if ledger.Grounds, err = s.ListGroundSessions(ctx, pilotID); err != nil {
		return models.Ledger{}, fmt.Errorf("failed to list ground sessions: %w", err)
	}
	if ledger.Simulators, err = s.ListSimulatorSessions(ctx, pilotID); err != nil {
		return models.Ledger{}, fmt.Errorf("failed to list simulator sessions: %w", err)
	}
	if ledger.Licenses, err = s.ListLicenses(ctx, pilotID); err != nil {
		return models.Ledger{}, fmt.Errorf("failed to list licenses: %w", err)
	}
	if ledger.Medicals, err = s.ListMedicals(ctx, pilotID); err != nil {
		return ledger, fmt.Errorf("%w: %w", ErrMedicals, err)
	}
	return ledger, nil
}
