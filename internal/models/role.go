package models

import (
	"errors"
	"fmt"
	"strings"
)

// Role classifies a person in the logbook. It is stored and serialized by
// its short code (PI, I, E, PA).
type Role int

// Valid values for the Role enum
const (
	RoleInvalid Role = iota // zero value is invalid

	RolePilot
	RoleInstructor
	RoleExaminer
	RolePassenger
)

// ErrUnknownRole indicates that a string may not be parsed as a role
var ErrUnknownRole = errors.New("unknown role")

// Code returns the short storage code of the role, or an empty string for
// an invalid role
func (r Role) Code() string {
	switch r {
	case RolePilot:
		return "PI"
	case RoleInstructor:
		return "I"
	case RoleExaminer:
		return "E"
	case RolePassenger:
		return "PA"
	default:
		return ""
	}
}

// String returns a human readable role name
func (r Role) String() string {
	switch r {
	case RolePilot:
		return "Pilot"
	case RoleInstructor:
		return "Instructor"
	case RoleExaminer:
		return "Examiner"
	case RolePassenger:
		return "Passenger"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// In reports whether r is a member of set
func (r Role) In(set ...Role) bool {
	for _, s := range set {
		if r == s {
			return true
		}
	}
	return false
}

// IsInstructor reports whether the role may give instruction
func (r Role) IsInstructor() bool {
	return r.In(RoleInstructor, RoleExaminer)
}

// IsPassenger reports whether the role is a passenger
func (r Role) IsPassenger() bool {
	return r == RolePassenger
}

// ParseRole accepts either a short code or a role name (case-insensitive)
func ParseRole(s string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PI", "PILOT":
		return RolePilot, nil
	case "I", "INSTRUCTOR":
		return RoleInstructor, nil
	case "E", "EXAMINER":
		return RoleExaminer, nil
	case "PA", "PASSENGER":
		return RolePassenger, nil
	default:
		return RoleInvalid, ErrUnknownRole
	}
}

// MarshalText implements encoding.TextMarshaler
func (r Role) MarshalText() ([]byte, error) {
	code := r.Code()
	if code == "" {
		return nil, fmt.Errorf("marshal role %d: %w", int(r), ErrUnknownRole)
	}
	return []byte(code), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *Role) UnmarshalText(text []byte) error {
	role, err := ParseRole(string(text))
	if err != nil {
		return fmt.Errorf("unmarshal role %q: %w", text, err)
	}
	*r = role
	return nil
}

// PlaneClass is the category/class of an aircraft
type PlaneClass string

// Known aircraft classes
const (
	SingleEngineLand PlaneClass = "Single Engine Land"
	MultiEngineLand  PlaneClass = "Multi Engine Land"
)

// ErrUnknownPlaneClass indicates an unsupported aircraft class
var ErrUnknownPlaneClass = errors.New("unknown plane class")

// ParsePlaneClass accepts the full class name or its abbreviation
func ParsePlaneClass(s string) (PlaneClass, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SEL", "SINGLE ENGINE LAND":
		return SingleEngineLand, nil
	case "MEL", "MULTI ENGINE LAND":
		return MultiEngineLand, nil
	default:
		return "", ErrUnknownPlaneClass
	}
}
