// Package compiler turns a validated scenario into the record stream read by
// the lift simulator: the wirer derives interfaces and adjacency, the renderer
// serializes the result.
package compiler

import (
	"fmt"

	"github.com/cory-johannsen/liftgen/internal/ident"
	"github.com/cory-johannsen/liftgen/internal/scenario"
)

// InterfaceCapacity is the fixed capacity field written on every interface record.
const InterfaceCapacity = 1

// InternalConsistencyError reports an association the wirer cannot resolve.
// It only occurs when validation was skipped and is not recoverable.
type InternalConsistencyError struct {
	Floor    int
	Elevator int
	Reason   string
}

// Error implements error.
func (e *InternalConsistencyError) Error() string {
	return fmt.Sprintf("internal consistency: floor %d elevator %d: %s", e.Floor, e.Elevator, e.Reason)
}

// CallInterface is a floor-side interface letting a person call one elevator.
type CallInterface struct {
	ID       ident.ID
	Kind     CallKind
	Elevator ident.ID
}

// StopInterface is an elevator-side interface requesting a stop at one floor.
type StopInterface struct {
	ID    ident.ID
	Floor ident.ID
}

// WiredFloor is a floor with its adjacency and call interfaces resolved.
type WiredFloor struct {
	ID         ident.ID
	Below      ident.ID
	Above      ident.ID
	Height     int
	Interfaces []CallInterface
}

// WiredElevator is an elevator with its accessible floors and stop
// interfaces resolved.
type WiredElevator struct {
	ID         ident.ID
	Speed      int
	MaxLoad    float64
	StartFloor ident.ID
	// Accessible lists the 1-based positions of the floors this elevator
	// serves, in building order.
	Accessible []int
	Stops      []StopInterface
}

// WiredPerson is a person with floor references resolved to identifiers.
type WiredPerson struct {
	ID          ident.ID
	StartFloor  ident.ID
	Destination ident.ID
	MaxWait     int
	Weight      int
	StartTime   int
}

// Plan is the fully wired entity graph of one scenario.
type Plan struct {
	Floors    []WiredFloor
	Elevators []WiredElevator
	Persons   []WiredPerson
}

// AccessibleFloors returns, for every elevator, the 1-based positions of the
// floors that list it, in building order. Index 0 holds elevator 1.
func AccessibleFloors(s *scenario.Scenario) [][]int {
	out := make([][]int, s.ElevatorCount())
	for e := range out {
		for i, f := range s.Floors {
			if f.Serves(e + 1) {
				out[e] = append(out[e], i+1)
			}
		}
	}
	return out
}

// Wire derives adjacency and both interface families from s without
// modifying it.
//
// Precondition: s must have passed scenario.Validate; c must be non-nil.
// Postcondition: Returns a Plan with exactly one call interface and one stop
// interface per listed (floor, elevator) pair, or an
// *InternalConsistencyError.
func Wire(s *scenario.Scenario, c Classifier) (*Plan, error) {
	accessible := AccessibleFloors(s)
	n := s.FloorCount()

	plan := &Plan{
		Floors:    make([]WiredFloor, 0, n),
		Elevators: make([]WiredElevator, 0, s.ElevatorCount()),
		Persons:   make([]WiredPerson, 0, len(s.Persons)),
	}

	for i, f := range s.Floors {
		pos := i + 1
		wf := WiredFloor{
			ID:         ident.Floor(pos),
			Below:      ident.Neighbour(pos-1, n),
			Above:      ident.Neighbour(pos+1, n),
			Height:     f.Height,
			Interfaces: make([]CallInterface, 0, len(f.Elevators)),
		}
		seen := make(map[int]bool, len(f.Elevators))
		for _, e := range f.Elevators {
			if !s.ValidElevator(e) {
				return nil, &InternalConsistencyError{Floor: pos, Elevator: e, Reason: "no such elevator"}
			}
			if seen[e] {
				return nil, &InternalConsistencyError{Floor: pos, Elevator: e, Reason: "listed twice"}
			}
			seen[e] = true
			wf.Interfaces = append(wf.Interfaces, CallInterface{
				ID:       ident.FloorInterface(pos, e),
				Kind:     c.Classify(s, pos, accessible[e-1]),
				Elevator: ident.Elevator(e),
			})
		}
		plan.Floors = append(plan.Floors, wf)
	}

	for i, e := range s.Elevators {
		pos := i + 1
		we := WiredElevator{
			ID:         ident.Elevator(pos),
			Speed:      e.Speed,
			MaxLoad:    e.MaxLoad,
			StartFloor: ident.Floor(e.StartFloor),
			Accessible: accessible[i],
			Stops:      make([]StopInterface, 0, len(accessible[i])),
		}
		for _, f := range accessible[i] {
			we.Stops = append(we.Stops, StopInterface{
				ID:    ident.ElevatorInterface(pos, f),
				Floor: ident.Floor(f),
			})
		}
		plan.Elevators = append(plan.Elevators, we)
	}

	for i, p := range s.Persons {
		plan.Persons = append(plan.Persons, WiredPerson{
			ID:          ident.Person(i + 1),
			StartFloor:  ident.Floor(p.StartFloor),
			Destination: ident.Floor(p.DestinationFloor),
			MaxWait:     p.MaxWait,
			Weight:      p.Weight,
			StartTime:   p.StartTime,
		})
	}

	return plan, nil
}
