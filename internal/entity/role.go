package entity

import (
	"errors"
	"fmt"
)

// Role is the mark a connection plays with.
type Role string

const (
	RoleNone Role = ""
	RoleX    Role = "X"
	RoleO    Role = "O"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole - converts a wire label into a Role.
func ParseRole(label string) (Role, error) {
	switch Role(label) {
	case RoleX, RoleO:
		return Role(label), nil
	default:
		return RoleNone, fmt.Errorf("%w: %q", ErrUnknownRole, label)
	}
}

// Opponent - returns the other role. RoleNone has no opponent.
func (that Role) Opponent() Role {
	switch that {
	case RoleX:
		return RoleO
	case RoleO:
		return RoleX
	default:
		return RoleNone
	}
}

// TurnForRound - the side to move after the given number of accepted moves.
func TurnForRound(round int) Role {
	if round%2 == 0 {
		return RoleX
	}
	return RoleO
}

func (that Role) String() string {
	return string(that)
}
