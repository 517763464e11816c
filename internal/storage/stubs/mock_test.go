package stubs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"logbook/internal/models"
	"logbook/internal/storage"
)

func seedPilot(t *testing.T, db *MockDB, first string, role models.Role) models.Pilot {
	t.Helper()
	p := models.Pilot{FirstName: first, Role: role}
	if err := db.CreatePilot(context.Background(), &p); err != nil {
		t.Fatalf("Failed to create pilot: %v", err)
	}
	return p
}

func TestMockDB_CreatePilot(t *testing.T) {
	db := NewMockDB()
	ctx := context.Background()

	if err := db.Initialize(ctx); err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}

	p := seedPilot(t, db, "Jane", models.RolePilot)
	if p.ID == uuid.Nil {
		t.Fatal("Expected an ID to be assigned")
	}

	got, err := db.GetPilot(ctx, p.ID)
	if err != nil {
		t.Fatalf("Failed to get pilot: %v", err)
	}
	if got != p {
		t.Errorf("Expected %+v, got %+v", p, got)
	}

	_, err = db.GetPilot(ctx, uuid.New())
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestMockDB_RejectsInvalidRecords(t *testing.T) {
	db := NewMockDB()
	ctx := context.Background()

	if err := db.CreatePilot(ctx, &models.Pilot{Role: models.RolePilot}); err == nil {
		t.Error("Expected a pilot without a name to be rejected")
	}

	flight := models.Flight{
		PilotID:    uuid.New(),
		Date:       time.Now(),
		FlightTime: decimal.NewFromInt(-1),
	}
	if err := db.CreateFlight(ctx, &flight); err == nil {
		t.Error("Expected negative flight time to be rejected")
	}

	flights, _ := db.ListFlights(ctx, flight.PilotID)
	if len(flights) != 0 {
		t.Errorf("Expected no flights to be stored, got %d", len(flights))
	}
}

func TestMockDB_ListPilots(t *testing.T) {
	db := NewMockDB()
	ctx := context.Background()

	seedPilot(t, db, "Charlie", models.RolePassenger)
	seedPilot(t, db, "Alice", models.RoleInstructor)
	seedPilot(t, db, "Bob", models.RolePilot)

	pilots, err := db.ListPilots(ctx)
	if err != nil {
		t.Fatalf("Failed to list pilots: %v", err)
	}

	expected := []string{"Alice", "Bob", "Charlie"}
	if len(pilots) != len(expected) {
		t.Fatalf("Expected %d pilots, got %d", len(expected), len(pilots))
	}
	for i, name := range expected {
		if pilots[i].Name() != name {
			t.Errorf("Expected pilot %d to be %s, got %s", i, name, pilots[i].Name())
		}
	}

	owner, err := storage.ResolvePilot(ctx, db, uuid.Nil)
	if err != nil {
		t.Fatalf("Failed to resolve owner: %v", err)
	}
	if owner.FirstName != "Bob" {
		t.Errorf("Expected Bob to own the logbook, got %s", owner.FirstName)
	}
}

func TestMockDB_ListFlights(t *testing.T) {
	db := NewMockDB()
	ctx := context.Background()

	me := seedPilot(t, db, "Jane", models.RolePilot)
	other := seedPilot(t, db, "John", models.RolePilot)
	guest := seedPilot(t, db, "Gus", models.RolePassenger)

	dates := []time.Time{
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		f := models.Flight{PilotID: me.ID, Date: d, FlightTime: decimal.NewFromInt(1), Passengers: []models.Pilot{guest}}
		if err := db.CreateFlight(ctx, &f); err != nil {
			t.Fatalf("Failed to create flight: %v", err)
		}
	}
	f := models.Flight{PilotID: other.ID, Date: dates[0]}
	if err := db.CreateFlight(ctx, &f); err != nil {
		t.Fatalf("Failed to create flight: %v", err)
	}

	flights, err := db.ListFlights(ctx, me.ID)
	if err != nil {
		t.Fatalf("Failed to list flights: %v", err)
	}
	if len(flights) != 3 {
		t.Fatalf("Expected 3 flights, got %d", len(flights))
	}
	for i := 1; i < len(flights); i++ {
		if flights[i].Date.Before(flights[i-1].Date) {
			t.Errorf("Expected flights ordered by date, got %v before %v", flights[i-1].Date, flights[i].Date)
		}
	}

	// mutating a returned flight must not leak into the store
	flights[0].Passengers[0].FirstName = "changed"
	again, _ := db.ListFlights(ctx, me.ID)
	if again[0].Passengers[0].FirstName != "Gus" {
		t.Errorf("Expected stored passenger to be unchanged, got %s", again[0].Passengers[0].FirstName)
	}
}

func TestMockDB_LoadLedger(t *testing.T) {
	db := NewMockDB()
	ctx := context.Background()

	me := seedPilot(t, db, "Jane", models.RolePilot)
	cfi := seedPilot(t, db, "Carl", models.RoleInstructor)
	exam := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	records := []error{
		db.CreateFlight(ctx, &models.Flight{PilotID: me.ID, Date: exam, Instructor: &cfi}),
		db.CreateGroundSession(ctx, &models.GroundSession{PilotID: me.ID, Date: exam, Instructor: &cfi, GroundTime: decimal.NewFromInt(2)}),
		db.CreateSimulatorSession(ctx, &models.SimulatorSession{PilotID: me.ID, Date: exam}),
		db.CreateMedical(ctx, &models.Medical{PilotID: me.ID, Class: 1, ExaminationDate: exam}),
		db.CreateLicense(ctx, &models.License{PilotID: me.ID, Name: "Private Pilot", Number: 1}),
	}
	for _, err := range records {
		if err != nil {
			t.Fatalf("Failed to create record: %v", err)
		}
	}

	ledger, err := storage.LoadLedger(ctx, db, me.ID)
	if err != nil {
		t.Fatalf("Failed to load ledger: %v", err)
	}
	if len(ledger.Flights) != 1 || len(ledger.Grounds) != 1 || len(ledger.Simulators) != 1 ||
		len(ledger.Medicals) != 1 || len(ledger.Licenses) != 1 {
		t.Errorf("Expected one record of each kind, got %+v", ledger)
	}
	if ledger.Pilot != me {
		t.Errorf("Expected ledger pilot %+v, got %+v", me, ledger.Pilot)
	}

	db.FailMedicals = true
	ledger, err = storage.LoadLedger(ctx, db, me.ID)
	if !errors.Is(err, storage.ErrMedicals) {
		t.Fatalf("Expected ErrMedicals, got %v", err)
	}
	if len(ledger.Flights) != 1 || len(ledger.Licenses) != 1 {
		t.Errorf("Expected the rest of the ledger to be loaded, got %+v", ledger)
	}
}
