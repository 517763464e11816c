package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	testCases := []struct {
		input    string
		expected Role
		wantErr  bool
	}{
		{input: "PI", expected: RolePilot},
		{input: "i", expected: RoleInstructor},
		{input: "Examiner", expected: RoleExaminer},
		{input: " PA ", expected: RolePassenger},
		{input: "captain", expected: RoleInvalid, wantErr: true},
		{input: "", expected: RoleInvalid, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			role, err := ParseRole(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrUnknownRole)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expected, role)
		})
	}
}

func TestRoleSets(t *testing.T) {
	assert.True(t, RoleInstructor.IsInstructor())
	assert.True(t, RoleExaminer.IsInstructor())
	assert.False(t, RolePilot.IsInstructor())
	assert.False(t, RolePassenger.IsInstructor())

	assert.True(t, RolePassenger.IsPassenger())
	assert.False(t, RolePilot.IsPassenger())
	assert.False(t, RoleInvalid.In(RolePilot, RoleInstructor, RoleExaminer, RolePassenger))
}

func TestRoleText(t *testing.T) {
	text, err := RoleExaminer.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "E", string(text))

	var r Role
	require.NoError(t, r.UnmarshalText([]byte("PA")))
	assert.Equal(t, RolePassenger, r)

	_, err = RoleInvalid.MarshalText()
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestParsePlaneClass(t *testing.T) {
	c, err := ParsePlaneClass("sel")
	require.NoError(t, err)
	assert.Equal(t, SingleEngineLand, c)

	c, err = ParsePlaneClass("Multi Engine Land")
	require.NoError(t, err)
	assert.Equal(t, MultiEngineLand, c)

	_, err = ParsePlaneClass("seaplane")
	assert.ErrorIs(t, err, ErrUnknownPlaneClass)
}

func TestFlightPeopleFlags(t *testing.T) {
	instructor := &Pilot{FirstName: "Ann", Role: RoleInstructor}
	friend := Pilot{FirstName: "Bob", Role: RolePilot}
	passenger := Pilot{FirstName: "Cid", Role: RolePassenger}

	f := Flight{}
	assert.False(t, f.HasPassengers())
	assert.False(t, f.HasInstruction())

	f.Passengers = []Pilot{friend}
	assert.False(t, f.HasPassengers(), "only the passenger role counts")

	f.Passengers = append(f.Passengers, passenger)
	f.Instructor = instructor
	assert.True(t, f.HasPassengers())
	assert.True(t, f.HasInstruction())

	f.Instructor = &Pilot{FirstName: "Dee", Role: RolePilot}
	assert.False(t, f.HasInstruction())
}

func TestRouteOrigin(t *testing.T) {
	var nilRoute *Route
	assert.Equal(t, "", nilRoute.Origin())
	assert.Equal(t, "", (&Route{}).Origin())

	r := &Route{Waypoints: []Airport{{Code: "KBFI"}, {Code: "KRNT"}}}
	assert.Equal(t, "KBFI", r.Origin())
}

func TestValidate(t *testing.T) {
	pilotID := uuid.New()

	valid := Flight{
		PilotID:     pilotID,
		Date:        time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		FlightTime:  decimal.RequireFromString("1.5"),
		DayLandings: 2,
	}
	assert.NoError(t, Validate(valid))

	negativeHours := valid
	negativeHours.PICTime = decimal.RequireFromString("-0.1")
	assert.Error(t, Validate(negativeHours))

	negativeLandings := valid
	negativeLandings.NightFullStopLandings = -1
	assert.Error(t, Validate(negativeLandings))

	noDate := valid
	noDate.Date = time.Time{}
	assert.Error(t, Validate(noDate))

	assert.NoError(t, Validate(Pilot{FirstName: "Ann", Role: RoleExaminer}))
	assert.Error(t, Validate(Pilot{FirstName: "Ann"}), "zero role is invalid")

	assert.NoError(t, Validate(Plane{TailNumber: "N12345", Type: "C172", Class: SingleEngineLand}))
	assert.Error(t, Validate(Plane{TailNumber: "N12345", Type: "C172", Class: "Seaplane"}))

	assert.Error(t, Validate(Medical{PilotID: pilotID, Class: 4, ExaminationDate: time.Now()}))
}
