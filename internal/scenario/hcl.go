package scenario

import (
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// hclScenario decodes the repeated top-level blocks of an HCL scenario file:
//
//	floor {
//	  height    = 1
//	  elevators = [1, 2]
//	}
//	elevator {
//	  start_floor = 1
//	}
//	person {
//	  start_time        = 0
//	  start_floor       = 1
//	  destination_floor = 3
//	}
type hclScenario struct {
	Floors    []hclFloor    `hcl:"floor,block"`
	Elevators []hclElevator `hcl:"elevator,block"`
	Persons   []hclPerson   `hcl:"person,block"`
}

type hclFloor struct {
	Height      *int  `hcl:"height,optional"`
	Elevators   []int `hcl:"elevators"`
	Directional *bool `hcl:"directional,optional"`
}

type hclElevator struct {
	Speed      *int     `hcl:"speed,optional"`
	MaxLoad    *float64 `hcl:"max_load,optional"`
	StartFloor int      `hcl:"start_floor"`
}

type hclPerson struct {
	StartTime        int  `hcl:"start_time"`
	StartFloor       int  `hcl:"start_floor"`
	DestinationFloor int  `hcl:"destination_floor"`
	MaxWait          *int `hcl:"max_wait,optional"`
	Weight           *int `hcl:"weight,optional"`
}

// ParseHCL parses a scenario from HCL native-syntax bytes. filename is used
// only in diagnostics. Block order within each kind defines entity positions.
//
// Postcondition: Returns an unvalidated Scenario or a *ParseError wrapping
// the hcl.Diagnostics.
func ParseHCL(filename string, data []byte) (*Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, &ParseError{Err: diags}
	}

	var doc hclScenario
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, &ParseError{Err: diags}
	}
	return convertHCLScenario(doc), nil
}

func convertHCLScenario(doc hclScenario) *Scenario {
	s := &Scenario{
		Floors:    make([]Floor, 0, len(doc.Floors)),
		Elevators: make([]Elevator, 0, len(doc.Elevators)),
		Persons:   make([]Person, 0, len(doc.Persons)),
	}
	for _, hf := range doc.Floors {
		s.Floors = append(s.Floors, Floor{
			Height:      orDefault(hf.Height, DefaultHeight),
			Elevators:   append([]int(nil), hf.Elevators...),
			Directional: hf.Directional,
		})
	}
	for _, he := range doc.Elevators {
		s.Elevators = append(s.Elevators, Elevator{
			Speed:      orDefault(he.Speed, DefaultSpeed),
			MaxLoad:    orDefault(he.MaxLoad, DefaultMaxLoad),
			StartFloor: he.StartFloor,
		})
	}
	for _, hp := range doc.Persons {
		s.Persons = append(s.Persons, Person{
			StartTime:        hp.StartTime,
			StartFloor:       hp.StartFloor,
			DestinationFloor: hp.DestinationFloor,
			MaxWait:          orDefault(hp.MaxWait, DefaultMaxWait),
			Weight:           orDefault(hp.Weight, DefaultWeight),
		})
	}
	return s
}
