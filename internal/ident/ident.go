// Package ident allocates the positional identifiers used in compiled
// scenario output.
//
// Every identifier is a pure function of an entity's 1-based position (and,
// for derived interfaces, its partner's position). A leading digit partitions
// the identifier space by entity kind so that no two kinds ever collide even
// though each kind's own numbering restarts at 1.
package ident

import (
	"fmt"
	"strconv"
)

// Kind enumerates the entity kinds that receive identifiers.
type Kind int

// Entity kinds. The numeric value of each kind is its identifier prefix digit.
const (
	KindFloor             Kind = 1
	KindFloorInterface    Kind = 2
	KindElevator          Kind = 3
	KindElevatorInterface Kind = 4
	KindPerson            Kind = 5
)

// String returns the lowercase entity kind name.
func (k Kind) String() string {
	switch k {
	case KindFloor:
		return "floor"
	case KindFloorInterface:
		return "floor interface"
	case KindElevator:
		return "elevator"
	case KindElevatorInterface:
		return "elevator interface"
	case KindPerson:
		return "person"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Prefix returns the leading digit of identifiers of this kind.
func (k Kind) Prefix() string {
	return strconv.Itoa(int(k))
}

// ID is a rendered entity identifier.
type ID string

// None is the sentinel written where a floor has no neighbour.
const None ID = "0"

// String implements fmt.Stringer.
func (id ID) String() string { return string(id) }

// Floor returns the identifier of the floor at 1-based position f.
//
// Precondition: f >= 1.
func Floor(f int) ID {
	return ID(KindFloor.Prefix() + strconv.Itoa(f))
}

// FloorInterface returns the identifier of the call interface on floor f
// that requests elevator e.
//
// Precondition: f >= 1 and e >= 1.
// Postcondition: both positions are recoverable from the result.
func FloorInterface(f, e int) ID {
	return ID(KindFloorInterface.Prefix() + strconv.Itoa(f) + "03" + strconv.Itoa(e))
}

// Elevator returns the identifier of the elevator at 1-based position e.
//
// Precondition: e >= 1.
func Elevator(e int) ID {
	return ID(KindElevator.Prefix() + strconv.Itoa(e))
}

// ElevatorInterface returns the identifier of the stop interface elevator e
// uses to request a stop at floor f.
//
// Precondition: e >= 1 and f >= 1.
func ElevatorInterface(e, f int) ID {
	return ID(KindElevatorInterface.Prefix() + strconv.Itoa(e) + "0" + strconv.Itoa(f))
}

// Person returns the identifier of the person at 1-based position p.
//
// Precondition: p >= 1.
func Person(p int) ID {
	return ID(KindPerson.Prefix() + strconv.Itoa(p))
}

// Neighbour returns the identifier of the floor at position f within a
// building of n floors, or None when f falls outside [1, n].
func Neighbour(f, n int) ID {
	if f < 1 || f > n {
		return None
	}
	return Floor(f)
}
