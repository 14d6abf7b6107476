package scenario_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/liftgen/internal/scenario"
)

func TestFloor_Serves(t *testing.T) {
	f := scenario.Floor{Height: 1, Elevators: []int{3, 1}}
	assert.True(t, f.Serves(1))
	assert.True(t, f.Serves(3))
	assert.False(t, f.Serves(2))
	assert.False(t, scenario.Floor{Height: 1}.Serves(1))
}

func TestScenario_IndexBounds(t *testing.T) {
	s := &scenario.Scenario{
		Floors:    make([]scenario.Floor, 3),
		Elevators: make([]scenario.Elevator, 2),
	}
	assert.False(t, s.ValidFloor(0))
	assert.True(t, s.ValidFloor(3))
	assert.False(t, s.ValidFloor(4))
	assert.True(t, s.ValidElevator(2))
	assert.False(t, s.ValidElevator(3))
}
