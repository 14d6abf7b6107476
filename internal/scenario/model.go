// Package scenario provides the input model of the lift scenario compiler:
// floors, elevators, and persons, together with the readers that build a
// Scenario from YAML or HCL documents and the validator that checks it.
package scenario

// Defaults applied by the readers when an optional field is omitted.
const (
	DefaultHeight  = 1
	DefaultSpeed   = 1
	DefaultMaxLoad = 10.0
	DefaultMaxWait = 100
	DefaultWeight  = 1
)

// Floor is one storey of the building. Its identity is its 1-based position
// in Scenario.Floors.
type Floor struct {
	// Height is the vertical distance from the floor below.
	Height int
	// Elevators lists the 1-based indices of the elevators that stop here, in
	// declaration order.
	Elevators []int
	// Directional is an optional per-floor override consulted only by the
	// floor-flag classification strategy. Nil means "not set".
	Directional *bool
}

// Serves reports whether elevator e stops at this floor.
func (f Floor) Serves(e int) bool {
	for _, idx := range f.Elevators {
		if idx == e {
			return true
		}
	}
	return false
}

// Elevator is one car. Its identity is its 1-based position in
// Scenario.Elevators.
type Elevator struct {
	Speed      int
	MaxLoad    float64
	StartFloor int
}

// Person is one passenger. Its identity is its 1-based position in
// Scenario.Persons.
type Person struct {
	StartTime        int
	StartFloor       int
	DestinationFloor int
	MaxWait          int
	Weight           int
}

// Scenario is the complete description of one simulation run.
//
// A Scenario is built once by a reader and is never mutated afterwards.
type Scenario struct {
	Floors    []Floor
	Elevators []Elevator
	Persons   []Person
}

// FloorCount returns the number of floors.
func (s *Scenario) FloorCount() int { return len(s.Floors) }

// ElevatorCount returns the number of elevators.
func (s *Scenario) ElevatorCount() int { return len(s.Elevators) }

// ValidFloor reports whether f is a 1-based floor index within the scenario.
func (s *Scenario) ValidFloor(f int) bool {
	return f >= 1 && f <= len(s.Floors)
}

// ValidElevator reports whether e is a 1-based elevator index within the scenario.
func (s *Scenario) ValidElevator(e int) bool {
	return e >= 1 && e <= len(s.Elevators)
}
