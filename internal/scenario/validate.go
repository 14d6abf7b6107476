package scenario

import (
	"fmt"
	"math"
	"strings"

	"github.com/cory-johannsen/liftgen/internal/ident"
)

// ValidationError describes one violated scenario invariant.
type ValidationError struct {
	// Kind is the kind of the offending entity.
	Kind ident.Kind
	// Index is the 1-based position of the offending entity.
	Index int
	// Field is the input field name, e.g. "maxLoad".
	Field string
	// Value is the offending value.
	Value any
	// Reason states the violated constraint.
	Reason string
}

// Error implements error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %d: %s %s, got %v", e.Kind, e.Index, e.Field, e.Reason, e.Value)
}

// ValidationErrors collects every violation found in one scenario.
type ValidationErrors []*ValidationError

// Error implements error.
func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return "scenario validation failed: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the individual violations to errors.As and errors.Is.
func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, len(v))
	for i, e := range v {
		errs[i] = e
	}
	return errs
}

// Validate checks all structural and numeric invariants of s.
//
// Precondition: s must be non-nil.
// Postcondition: Returns nil if s is valid, or a ValidationErrors value
// listing every violation in floor, elevator, person order.
func Validate(s *Scenario) error {
	var errs ValidationErrors
	errs = append(errs, validateFloors(s)...)
	errs = append(errs, validateElevators(s)...)
	errs = append(errs, validatePersons(s)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func violation(kind ident.Kind, index int, field string, value any, reason string) *ValidationError {
	return &ValidationError{Kind: kind, Index: index, Field: field, Value: value, Reason: reason}
}

func validateFloors(s *Scenario) []*ValidationError {
	var errs []*ValidationError
	for i, f := range s.Floors {
		pos := i + 1
		if f.Height < 1 {
			errs = append(errs, violation(ident.KindFloor, pos, "height", f.Height, "must be at least 1"))
		}
		seen := make(map[int]bool, len(f.Elevators))
		for _, e := range f.Elevators {
			if !s.ValidElevator(e) {
				errs = append(errs, violation(ident.KindFloor, pos, "elevators", e,
					fmt.Sprintf("must reference an elevator in [1, %d]", s.ElevatorCount())))
				continue
			}
			if seen[e] {
				errs = append(errs, violation(ident.KindFloor, pos, "elevators", e, "must not list an elevator twice"))
			}
			seen[e] = true
		}
	}
	return errs
}

func validateElevators(s *Scenario) []*ValidationError {
	var errs []*ValidationError
	for i, e := range s.Elevators {
		pos := i + 1
		if e.Speed < 1 {
			errs = append(errs, violation(ident.KindElevator, pos, "speed", e.Speed, "must be at least 1"))
		}
		if !(e.MaxLoad > 0) || math.IsInf(e.MaxLoad, 0) {
			errs = append(errs, violation(ident.KindElevator, pos, "maxLoad", e.MaxLoad, "must be a finite number greater than 0"))
		}
		if err := checkFloorIndex(s, ident.KindElevator, pos, "startFloor", e.StartFloor); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func validatePersons(s *Scenario) []*ValidationError {
	var errs []*ValidationError
	for i, p := range s.Persons {
		pos := i + 1
		if p.StartTime < 0 {
			errs = append(errs, violation(ident.KindPerson, pos, "startTime", p.StartTime, "must be at least 0"))
		}
		if err := checkFloorIndex(s, ident.KindPerson, pos, "startFloor", p.StartFloor); err != nil {
			errs = append(errs, err)
		}
		if err := checkFloorIndex(s, ident.KindPerson, pos, "destinationFloor", p.DestinationFloor); err != nil {
			errs = append(errs, err)
		}
		if p.MaxWait < 1 {
			errs = append(errs, violation(ident.KindPerson, pos, "maxWait", p.MaxWait, "must be at least 1"))
		}
		if p.Weight < 0 {
			errs = append(errs, violation(ident.KindPerson, pos, "weight", p.Weight, "must be at least 0"))
		}
	}
	return errs
}

func checkFloorIndex(s *Scenario, kind ident.Kind, pos int, field string, f int) *ValidationError {
	if s.ValidFloor(f) {
		return nil
	}
	return violation(kind, pos, field, f, fmt.Sprintf("must be a floor index in [1, %d]", s.FloorCount()))
}
