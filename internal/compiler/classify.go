package compiler

import (
	"fmt"

	"github.com/cory-johannsen/liftgen/internal/scenario"
)

// CallKind is the kind of call interface a floor exposes for one elevator.
type CallKind int

const (
	// CallPlain is a single call button, rendered as "Interface".
	CallPlain CallKind = iota
	// CallDirectional is an up/down button pair, rendered as "UpDownButton".
	CallDirectional
)

// Record returns the record keyword used for this call kind.
func (k CallKind) Record() string {
	if k == CallDirectional {
		return recordUpDownButton
	}
	return recordInterface
}

// Strategy names accepted by ClassifierFor.
const (
	StrategyPerElevator = "per_elevator"
	StrategyFloorFlag   = "floor_flag"
)

// Classifier decides the call interface kind for one (floor, elevator) pair.
type Classifier interface {
	// Classify returns the call kind for the floor at 1-based position floor,
	// given the serving elevator's accessible floors in building order.
	//
	// Precondition: floor is an element of accessible.
	Classify(s *scenario.Scenario, floor int, accessible []int) CallKind
}

// PerElevator classifies relative to the serving elevator: the first and last
// floors of the elevator's run get a plain call interface and every stop in
// between gets a directional one.
type PerElevator struct{}

// Classify implements Classifier.
func (PerElevator) Classify(_ *scenario.Scenario, floor int, accessible []int) CallKind {
	if len(accessible) == 0 || floor == accessible[0] || floor == accessible[len(accessible)-1] {
		return CallPlain
	}
	return CallDirectional
}

// FloorFlag attaches one flag to each floor regardless of which elevator is
// asked. A floor's explicit directional setting wins; otherwise every floor
// except the building's lowest and highest is directional.
type FloorFlag struct{}

// Classify implements Classifier.
func (FloorFlag) Classify(s *scenario.Scenario, floor int, _ []int) CallKind {
	if d := s.Floors[floor-1].Directional; d != nil {
		if *d {
			return CallDirectional
		}
		return CallPlain
	}
	if floor == 1 || floor == s.FloorCount() {
		return CallPlain
	}
	return CallDirectional
}

// ClassifierFor returns the classification strategy registered under name.
//
// Postcondition: Returns a non-nil Classifier, or an error naming the
// accepted strategies.
func ClassifierFor(name string) (Classifier, error) {
	switch name {
	case StrategyPerElevator:
		return PerElevator{}, nil
	case StrategyFloorFlag:
		return FloorFlag{}, nil
	default:
		return nil, fmt.Errorf("unknown classification strategy %q (supported: %s, %s)",
			name, StrategyPerElevator, StrategyFloorFlag)
	}
}
