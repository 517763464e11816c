package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"logbook/internal/models"
)

// Catalog is implemented by stores that keep pilots, aircraft and routes
// as separate rows
type Catalog interface {
	ListPilots(ctx context.Context) ([]models.Pilot, error)
	ListPlanes(ctx context.Context) ([]models.Plane, error)
	ListSimulatorDevices(ctx context.Context) ([]models.SimulatorDevice, error)
	ListRoutes(ctx context.Context) ([]models.Route, error)
}

// Refs resolves the references stored on logbook rows
type Refs struct {
	Pilots  map[uuid.UUID]models.Pilot
	Planes  map[uuid.UUID]models.Plane
	Devices map[uuid.UUID]models.SimulatorDevice
	Routes  map[uuid.UUID]models.Route
}

// LoadRefs reads the whole catalog once so rows can be resolved in memory
func LoadRefs(ctx context.Context, c Catalog) (*Refs, error) {
	pilots, err := c.ListPilots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pilots: %w", err)
	}
	planes, err := c.ListPlanes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load planes: %w", err)
	}
	devices, err := c.ListSimulatorDevices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load simulator devices: %w", err)
	}
	routes, err := c.ListRoutes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load routes: %w", err)
	}

	refs := &Refs{
		Pilots:  make(map[uuid.UUID]models.Pilot, len(pilots)),
		Planes:  make(map[uuid.UUID]models.Plane, len(planes)),
		Devices: make(map[uuid.UUID]models.SimulatorDevice, len(devices)),
		Routes:  make(map[uuid.UUID]models.Route, len(routes)),
	}
	for _, p := range pilots {
		refs.Pilots[p.ID] = p
	}
	for _, p := range planes {
		refs.Planes[p.ID] = p
	}
	for _, d := range devices {
		refs.Devices[d.ID] = d
	}
	for _, r := range routes {
		refs.Routes[r.ID] = r
	}
	return refs, nil
}

// Pilot returns a copy of the referenced pilot, or nil for an empty or
// dangling reference
func (r *Refs) Pilot(id *uuid.UUID) *models.Pilot {
	if id == nil {
		return nil
	}
	p, ok := r.Pilots[*id]
	if !ok {
		return nil
	}
	return &p
}

// People resolves a list of pilot references, skipping dangling ones
func (r *Refs) People(ids []uuid.UUID) []models.Pilot {
	people := make([]models.Pilot, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.Pilots[id]; ok {
			people = append(people, p)
		}
	}
	return people
}

// Route returns a copy of the referenced route, or nil
func (r *Refs) Route(id *uuid.UUID) *models.Route {
	if id == nil {
		return nil
	}
	route, ok := r.Routes[*id]
	if !ok {
		return nil
	}
	route.Waypoints = append([]models.Airport(nil), route.Waypoints...)
	return &route
}

// PassengerIDs extracts the references kept for a flight's passengers
func PassengerIDs(f *models.Flight) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(f.Passengers))
	for _, p := range f.Passengers {
		ids = append(ids, p.ID)
	}
	return ids
}

// PilotRef returns the reference kept for an optional person
func PilotRef(p *models.Pilot) *uuid.UUID {
	if p == nil {
		return nil
	}
	id := p.ID
	return &id
}

// RouteRef returns the reference kept for an optional route
func RouteRef(r *models.Route) *uuid.UUID {
	if r == nil {
		return nil
	}
	id := r.ID
	return &id
}

// WaypointIDs extracts the airport references of a route
func WaypointIDs(r *models.Route) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.Waypoints))
	for _, w := range r.Waypoints {
		ids = append(ids, w.ID)
	}
	return ids
}

// Waypoints resolves airport references in order, skipping dangling ones
func Waypoints(airports map[uuid.UUID]models.Airport, ids []uuid.UUID) []models.Airport {
	waypoints := make([]models.Airport, 0, len(ids))
	for _, id := range ids {
		if a, ok := airports[id]; ok {
			waypoints = append(waypoints, a)
		}
	}
	return waypoints
}
