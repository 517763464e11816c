package seed

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logbook/internal/models"
	"logbook/internal/storage"
	"logbook/internal/storage/stubs"
)

func TestLoad(t *testing.T) {
	f, err := Load("testdata/logbook.yaml")
	require.NoError(t, err)

	assert.Equal(t, "me", f.Owner)
	require.Len(t, f.Pilots, 4)
	assert.Equal(t, models.RoleExaminer, f.Pilots[2].Role)
	assert.Equal(t, models.MultiEngineLand, f.Planes[1].Class)
	assert.Equal(t, []string{"KPAO", "KSFO", "KPAO"}, f.Routes[0].Waypoints)
	require.Len(t, f.Flights, 3)
	assert.True(t, decimal.RequireFromString("3.2").Equal(f.Flights[1].FlightTime))
	assert.Equal(t, 1, f.Flights[1].NightFullStopLandings)
}

func TestParse_UnknownRole(t *testing.T) {
	_, err := Parse([]byte("pilots:\n  - first_name: X\n    role: pilot-in-command\n"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	f, err := Load("testdata/logbook.yaml")
	require.NoError(t, err)

	db := stubs.NewMockDB()
	owner, err := Apply(ctx, db, f)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, owner)

	ledger, err := storage.LoadLedger(ctx, db, owner)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", ledger.Pilot.Name())
	require.Len(t, ledger.Flights, 3)
	assert.Len(t, ledger.Grounds, 1)
	assert.Len(t, ledger.Simulators, 1)
	assert.Len(t, ledger.Medicals, 1)
	require.Len(t, ledger.Licenses, 1)
	assert.Nil(t, ledger.Licenses[0].Expiration)

	first := ledger.Flights[0]
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), first.Date)
	require.NotNil(t, first.Instructor)
	assert.Equal(t, "Carl Fox", first.Instructor.Name())
	require.NotNil(t, first.Route)
	assert.Len(t, first.Route.Waypoints, 3)

	second := ledger.Flights[1]
	require.Len(t, second.Passengers, 1)
	assert.Equal(t, models.RolePassenger, second.Passengers[0].Role)
	assert.Equal(t, "KSFO", second.Route.Origin())

	assert.Equal(t, "SIM1", ledger.Simulators[0].Device.TailNumber)
	assert.Equal(t, 3, ledger.Medicals[0].Class)
}

func TestApplyIfEmpty(t *testing.T) {
	ctx := context.Background()
	f, err := Load("testdata/logbook.yaml")
	require.NoError(t, err)

	db := stubs.NewMockDB()
	applied, err := ApplyIfEmpty(ctx, db, f)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = ApplyIfEmpty(ctx, db, f)
	require.NoError(t, err)
	assert.False(t, applied, "a populated store is left alone")

	pilots, err := db.ListPilots(ctx)
	require.NoError(t, err)
	assert.Len(t, pilots, 4)
}

func TestApply_UnresolvedReferences(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "missing owner",
			doc:  "owner: nobody\npilots:\n  - ref: me\n    first_name: Jane\n    role: PI\n",
		},
		{
			name: "unknown plane",
			doc:  "owner: me\npilots:\n  - ref: me\n    first_name: Jane\n    role: PI\nflights:\n  - date: 2024-01-01\n    plane: N0000\n",
		},
		{
			name: "unknown airport",
			doc:  "owner: me\npilots:\n  - ref: me\n    first_name: Jane\n    role: PI\nroutes:\n  - name: x\n    waypoints: [ZZZZ]\n",
		},
		{
			name: "bad date",
			doc:  "owner: me\npilots:\n  - ref: me\n    first_name: Jane\n    role: PI\nmedicals:\n  - class: 1\n    examination_date: yesterday\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.doc))
			require.NoError(t, err)
			_, err = Apply(context.Background(), stubs.NewMockDB(), f)
			assert.Error(t, err)
		})
	}
}
