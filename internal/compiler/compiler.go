package compiler

import (
	"bytes"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/liftgen/internal/scenario"
)

// Compiler runs the validate, wire, and render stages for one scenario at a
// time. A Compiler holds no per-scenario state and is safe for concurrent use.
type Compiler struct {
	classifier Classifier
	newline    string
	logger     *zap.Logger
}

// New constructs a Compiler.
//
// Precondition: classifier and logger must be non-nil; newline must be
// non-empty.
// Postcondition: returns a non-nil Compiler.
func New(classifier Classifier, newline string, logger *zap.Logger) *Compiler {
	return &Compiler{classifier: classifier, newline: newline, logger: logger}
}

// Compile validates s, wires it, and renders the record stream.
//
// Precondition: s must be non-nil.
// Postcondition: Returns the complete output document, or an error wrapping
// scenario.ValidationErrors or *InternalConsistencyError. No output is
// returned on error.
func (c *Compiler) Compile(s *scenario.Scenario) ([]byte, error) {
	if err := scenario.Validate(s); err != nil {
		return nil, err
	}

	plan, err := Wire(s, c.classifier)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := Render(&buf, plan, c.newline); err != nil {
		return nil, fmt.Errorf("rendering scenario: %w", err)
	}

	c.logger.Debug("scenario compiled",
		zap.Int("floors", len(plan.Floors)),
		zap.Int("elevators", len(plan.Elevators)),
		zap.Int("persons", len(plan.Persons)),
		zap.Int("call_interfaces", countCalls(plan)),
		zap.Int("bytes", buf.Len()),
	)
	return buf.Bytes(), nil
}

func countCalls(p *Plan) int {
	n := 0
	for _, f := range p.Floors {
		n += len(f.Interfaces)
	}
	return n
}
