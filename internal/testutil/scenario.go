// Package testutil provides scenario fixtures and property-test generators
// shared by the package tests.
package testutil

import (
	"pgregory.net/rapid"

	"github.com/cory-johannsen/liftgen/internal/scenario"
)

// SingleShaft returns the three-floor, one-elevator, one-person scenario in
// which the elevator serves every floor.
//
// Postcondition: the result passes scenario.Validate.
func SingleShaft() *scenario.Scenario {
	return &scenario.Scenario{
		Floors: []scenario.Floor{
			{Height: 1, Elevators: []int{1}},
			{Height: 1, Elevators: []int{1}},
			{Height: 1, Elevators: []int{1}},
		},
		Elevators: []scenario.Elevator{
			{Speed: 1, MaxLoad: 10, StartFloor: 1},
		},
		Persons: []scenario.Person{
			{StartTime: 0, StartFloor: 1, DestinationFloor: 3, MaxWait: 100, Weight: 1},
		},
	}
}

// SingleShaftYAML is the YAML document equivalent to SingleShaft, relying on
// the reader's defaults for every optional field.
const SingleShaftYAML = `
floors:
  - elevators: [1]
  - elevators: [1]
  - elevators: [1]
elevators:
  - startFloor: 1
persons:
  - startTime: 0
    startFloor: 1
    destinationFloor: 3
`

// SingleShaftHCL is the HCL document equivalent to SingleShaft.
const SingleShaftHCL = `
floor {
  elevators = [1]
}
floor {
  elevators = [1]
}
floor {
  elevators = [1]
}

elevator {
  start_floor = 1
}

person {
  start_time        = 0
  start_floor       = 1
  destination_floor = 3
}
`

// SingleShaftOutput is the compiled form of SingleShaft with "\n" line endings.
const SingleShaftOutput = "Floor { 11 0 12 1 1 21031 }\n" +
	"Interface { 21031 1 31 }\n" +
	"Floor { 12 11 13 1 1 22031 }\n" +
	"UpDownButton { 22031 1 31 }\n" +
	"Floor { 13 12 0 1 1 23031 }\n" +
	"Interface { 23031 1 31 }\n" +
	"Elevator { 31 1 10 11 3 4101 4102 4103 }\n" +
	"Interface { 4101 1 11 }\n" +
	"Interface { 4102 1 12 }\n" +
	"Interface { 4103 1 13 }\n" +
	"Person { 51 11 13 100 1 0 }\n"

// ScenarioGen generates scenarios that satisfy every validator invariant.
// Each floor lists a random subset of the elevators in a random order.
func ScenarioGen() *rapid.Generator[*scenario.Scenario] {
	return rapid.Custom(func(t *rapid.T) *scenario.Scenario {
		nFloors := rapid.IntRange(1, 8).Draw(t, "floors")
		nElevators := rapid.IntRange(0, 4).Draw(t, "elevators")
		nPersons := rapid.IntRange(0, 5).Draw(t, "persons")

		all := make([]int, nElevators)
		for i := range all {
			all[i] = i + 1
		}

		s := &scenario.Scenario{}
		for i := 0; i < nFloors; i++ {
			order := rapid.Permutation(all).Draw(t, "order")
			var served []int
			for _, e := range order {
				if rapid.Bool().Draw(t, "serves") {
					served = append(served, e)
				}
			}
			s.Floors = append(s.Floors, scenario.Floor{
				Height:    rapid.IntRange(1, 10).Draw(t, "height"),
				Elevators: served,
			})
		}
		for i := 0; i < nElevators; i++ {
			s.Elevators = append(s.Elevators, scenario.Elevator{
				Speed:      rapid.IntRange(1, 5).Draw(t, "speed"),
				MaxLoad:    float64(rapid.IntRange(1, 2000).Draw(t, "maxLoad")),
				StartFloor: rapid.IntRange(1, nFloors).Draw(t, "startFloor"),
			})
		}
		for i := 0; i < nPersons; i++ {
			s.Persons = append(s.Persons, scenario.Person{
				StartTime:        rapid.IntRange(0, 1000).Draw(t, "startTime"),
				StartFloor:       rapid.IntRange(1, nFloors).Draw(t, "personStart"),
				DestinationFloor: rapid.IntRange(1, nFloors).Draw(t, "destination"),
				MaxWait:          rapid.IntRange(1, 500).Draw(t, "maxWait"),
				Weight:           rapid.IntRange(0, 200).Draw(t, "weight"),
			})
		}
		return s
	})
}
