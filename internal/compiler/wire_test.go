package compiler_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/liftgen/internal/compiler"
	"github.com/cory-johannsen/liftgen/internal/ident"
	"github.com/cory-johannsen/liftgen/internal/scenario"
	"github.com/cory-johannsen/liftgen/internal/testutil"
)

// expressTower has a local elevator serving every floor and an express
// elevator serving floors 2 and 4 only. Floor 2 lists the express first.
func expressTower() *scenario.Scenario {
	return &scenario.Scenario{
		Floors: []scenario.Floor{
			{Height: 1, Elevators: []int{1}},
			{Height: 1, Elevators: []int{2, 1}},
			{Height: 2, Elevators: []int{1}},
			{Height: 1, Elevators: []int{1, 2}},
		},
		Elevators: []scenario.Elevator{
			{Speed: 1, MaxLoad: 10, StartFloor: 1},
			{Speed: 2, MaxLoad: 12.5, StartFloor: 4},
		},
	}
}

func TestAccessibleFloors(t *testing.T) {
	got := compiler.AccessibleFloors(expressTower())
	assert.Equal(t, [][]int{{1, 2, 3, 4}, {2, 4}}, got)
}

func TestWire_SingleShaft(t *testing.T) {
	plan, err := compiler.Wire(testutil.SingleShaft(), compiler.PerElevator{})
	require.NoError(t, err)

	require.Len(t, plan.Floors, 3)
	assert.Equal(t, compiler.CallPlain, plan.Floors[0].Interfaces[0].Kind)
	assert.Equal(t, compiler.CallDirectional, plan.Floors[1].Interfaces[0].Kind)
	assert.Equal(t, compiler.CallPlain, plan.Floors[2].Interfaces[0].Kind)

	require.Len(t, plan.Elevators, 1)
	assert.Equal(t, []compiler.StopInterface{
		{ID: "4101", Floor: "11"},
		{ID: "4102", Floor: "12"},
		{ID: "4103", Floor: "13"},
	}, plan.Elevators[0].Stops)

	require.Len(t, plan.Persons, 1)
	assert.Equal(t, compiler.WiredPerson{
		ID: "51", StartFloor: "11", Destination: "13", MaxWait: 100, Weight: 1, StartTime: 0,
	}, plan.Persons[0])
}

func TestWire_ClassificationIsElevatorRelative(t *testing.T) {
	plan, err := compiler.Wire(expressTower(), compiler.PerElevator{})
	require.NoError(t, err)

	floor2 := plan.Floors[1].Interfaces
	require.Len(t, floor2, 2)
	assert.Equal(t, compiler.CallInterface{ID: "22032", Kind: compiler.CallPlain, Elevator: "32"}, floor2[0],
		"floor 2 is the lowest stop of the express")
	assert.Equal(t, compiler.CallInterface{ID: "22031", Kind: compiler.CallDirectional, Elevator: "31"}, floor2[1],
		"floor 2 is an intermediate stop of the local")
}

func TestWire_FloorFlag(t *testing.T) {
	s := expressTower()
	plan, err := compiler.Wire(s, compiler.FloorFlag{})
	require.NoError(t, err)

	for _, ci := range plan.Floors[1].Interfaces {
		assert.Equal(t, compiler.CallDirectional, ci.Kind, "floor flag ignores the serving elevator")
	}
	for _, ci := range plan.Floors[3].Interfaces {
		assert.Equal(t, compiler.CallPlain, ci.Kind)
	}

	off := false
	s.Floors[2].Directional = &off
	plan, err = compiler.Wire(s, compiler.FloorFlag{})
	require.NoError(t, err)
	assert.Equal(t, compiler.CallPlain, plan.Floors[2].Interfaces[0].Kind)
}

func TestWire_DoesNotMutateScenario(t *testing.T) {
	s := expressTower()
	before := expressTower()
	_, err := compiler.Wire(s, compiler.PerElevator{})
	require.NoError(t, err)
	assert.Equal(t, before, s)
}

func TestWire_InternalConsistency(t *testing.T) {
	s := testutil.SingleShaft()
	s.Floors[1].Elevators = []int{1, 7}

	_, err := compiler.Wire(s, compiler.PerElevator{})
	require.Error(t, err)
	var ice *compiler.InternalConsistencyError
	require.True(t, errors.As(err, &ice))
	assert.Equal(t, 2, ice.Floor)
	assert.Equal(t, 7, ice.Elevator)

	s.Floors[1].Elevators = []int{1, 1}
	_, err = compiler.Wire(s, compiler.PerElevator{})
	require.True(t, errors.As(err, &ice))
	assert.Equal(t, "listed twice", ice.Reason)
}

func TestClassifierFor(t *testing.T) {
	c, err := compiler.ClassifierFor(compiler.StrategyPerElevator)
	require.NoError(t, err)
	assert.IsType(t, compiler.PerElevator{}, c)

	c, err = compiler.ClassifierFor(compiler.StrategyFloorFlag)
	require.NoError(t, err)
	assert.IsType(t, compiler.FloorFlag{}, c)

	_, err = compiler.ClassifierFor("per_floor")
	assert.Error(t, err)
}

// TestWire_Positions_Property verifies positional IDs and adjacency sentinels.
func TestWire_Positions_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := testutil.ScenarioGen().Draw(rt, "scenario")
		plan, err := compiler.Wire(s, compiler.PerElevator{})
		require.NoError(rt, err)

		n := len(plan.Floors)
		for i, f := range plan.Floors {
			assert.Equal(rt, ident.Floor(i+1), f.ID)
			if i == 0 {
				assert.Equal(rt, ident.None, f.Below)
			} else {
				assert.Equal(rt, plan.Floors[i-1].ID, f.Below)
			}
			if i == n-1 {
				assert.Equal(rt, ident.None, f.Above)
			} else {
				assert.Equal(rt, plan.Floors[i+1].ID, f.Above)
			}
		}
		for i, e := range plan.Elevators {
			assert.Equal(rt, ident.Elevator(i+1), e.ID)
		}
		for i, p := range plan.Persons {
			assert.Equal(rt, ident.Person(i+1), p.ID)
		}
	})
}

// TestWire_OneInterfacePairPerAssociation_Property verifies that every listed
// (floor, elevator) pair yields exactly one call and one stop interface, and
// that no other interfaces exist.
func TestWire_OneInterfacePairPerAssociation_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := testutil.ScenarioGen().Draw(rt, "scenario")
		plan, err := compiler.Wire(s, compiler.PerElevator{})
		require.NoError(rt, err)

		pairs := 0
		for _, f := range s.Floors {
			pairs += len(f.Elevators)
		}

		calls := map[ident.ID]int{}
		for fi, f := range plan.Floors {
			for _, ci := range f.Interfaces {
				calls[ci.ID]++
				assert.True(rt, s.Floors[fi].Serves(elevatorIndex(plan, ci.Elevator)))
			}
		}
		stops := map[ident.ID]int{}
		for _, e := range plan.Elevators {
			for _, si := range e.Stops {
				stops[si.ID]++
			}
		}
		assert.Len(rt, calls, pairs)
		assert.Len(rt, stops, pairs)

		for ei, accessible := range compiler.AccessibleFloors(s) {
			for _, f := range accessible {
				assert.Equal(rt, 1, calls[ident.FloorInterface(f, ei+1)])
				assert.Equal(rt, 1, stops[ident.ElevatorInterface(ei+1, f)])
			}
		}
	})
}

// TestWire_EndpointsArePlain_Property verifies the per-elevator rule: the
// first and last accessible floors get plain interfaces, all others
// directional ones.
func TestWire_EndpointsArePlain_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := testutil.ScenarioGen().Draw(rt, "scenario")
		plan, err := compiler.Wire(s, compiler.PerElevator{})
		require.NoError(rt, err)

		accessible := compiler.AccessibleFloors(s)
		for fi, f := range plan.Floors {
			for _, ci := range f.Interfaces {
				run := accessible[elevatorIndex(plan, ci.Elevator)-1]
				endpoint := fi+1 == run[0] || fi+1 == run[len(run)-1]
				if endpoint {
					assert.Equal(rt, compiler.CallPlain, ci.Kind)
				} else {
					assert.Equal(rt, compiler.CallDirectional, ci.Kind)
				}
			}
		}
	})
}

func elevatorIndex(plan *compiler.Plan, id ident.ID) int {
	for i, e := range plan.Elevators {
		if e.ID == id {
			return i + 1
		}
	}
	return 0
}
