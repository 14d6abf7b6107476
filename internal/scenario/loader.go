package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrIsDirectory is returned by LoadFile when the input path names a directory.
var ErrIsDirectory = errors.New("input paths must be files not directories")

// ErrNotFound is returned by LoadFile when the input path does not exist.
var ErrNotFound = errors.New("input file not found")

// ParseError reports a malformed input document.
type ParseError struct {
	// Path is the input file, empty when parsing raw bytes.
	Path string
	Err  error
}

// Error implements error.
func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parsing scenario: %v", e.Err)
	}
	return fmt.Sprintf("parsing scenario %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error { return e.Err }

// Format identifies an input document syntax.
type Format string

// Supported input formats.
const (
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// extensions maps recognised file extensions to their format.
var extensions = map[string]Format{
	".yml":  FormatYAML,
	".yaml": FormatYAML,
	".hcl":  FormatHCL,
}

// FormatForPath returns the format implied by path's extension and the
// extension itself. Unrecognised extensions are read as YAML and report an
// empty extension.
func FormatForPath(path string) (Format, string) {
	ext := filepath.Ext(path)
	if f, ok := extensions[strings.ToLower(ext)]; ok {
		return f, ext
	}
	return FormatYAML, ""
}

// yamlScenario is the top-level YAML structure for scenario files.
type yamlScenario struct {
	Floors    *[]yamlFloor    `yaml:"floors"`
	Elevators *[]yamlElevator `yaml:"elevators"`
	Persons   *[]yamlPerson   `yaml:"persons"`
}

type yamlFloor struct {
	Height      *int  `yaml:"height"`
	Elevators   []int `yaml:"elevators"`
	Directional *bool `yaml:"directional"`
}

type yamlElevator struct {
	Speed      *int     `yaml:"speed"`
	MaxLoad    *float64 `yaml:"maxLoad"`
	StartFloor *int     `yaml:"startFloor"`
}

type yamlPerson struct {
	StartTime        *int `yaml:"startTime"`
	StartFloor       *int `yaml:"startFloor"`
	DestinationFloor *int `yaml:"destinationFloor"`
	MaxWait          *int `yaml:"maxWait"`
	Weight           *int `yaml:"weight"`
}

// LoadFile reads and parses a scenario file, choosing the reader from the
// file extension. The result is not validated.
//
// Precondition: path must name a regular file.
// Postcondition: Returns a Scenario, or an error wrapping ErrIsDirectory,
// ErrNotFound, a read failure, or a *ParseError.
func LoadFile(path string) (*Scenario, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("inspecting %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file %s: %w", path, err)
	}

	var s *Scenario
	switch format, _ := FormatForPath(path); format {
	case FormatHCL:
		s, err = ParseHCL(filepath.Base(path), data)
	default:
		s, err = ParseYAML(data)
	}
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) && pe.Path == "" {
			pe.Path = path
		}
		return nil, err
	}
	return s, nil
}

// ParseYAML parses a scenario from YAML bytes, applying defaults for omitted
// optional fields. Unknown keys are rejected.
//
// Postcondition: Returns an unvalidated Scenario or a *ParseError.
func ParseYAML(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc yamlScenario
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Err: errors.New("empty document")}
		}
		return nil, &ParseError{Err: err}
	}

	s, err := convertYAMLScenario(doc)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return s, nil
}

// convertYAMLScenario converts the parsed YAML structures into model types.
func convertYAMLScenario(doc yamlScenario) (*Scenario, error) {
	switch {
	case doc.Floors == nil:
		return nil, errors.New("floors is required")
	case doc.Elevators == nil:
		return nil, errors.New("elevators is required")
	case doc.Persons == nil:
		return nil, errors.New("persons is required")
	}

	s := &Scenario{
		Floors:    make([]Floor, 0, len(*doc.Floors)),
		Elevators: make([]Elevator, 0, len(*doc.Elevators)),
		Persons:   make([]Person, 0, len(*doc.Persons)),
	}

	for i, yf := range *doc.Floors {
		if yf.Elevators == nil {
			return nil, fmt.Errorf("floor %d: elevators is required", i+1)
		}
		s.Floors = append(s.Floors, Floor{
			Height:      orDefault(yf.Height, DefaultHeight),
			Elevators:   append([]int(nil), yf.Elevators...),
			Directional: yf.Directional,
		})
	}

	for i, ye := range *doc.Elevators {
		if ye.StartFloor == nil {
			return nil, fmt.Errorf("elevator %d: startFloor is required", i+1)
		}
		s.Elevators = append(s.Elevators, Elevator{
			Speed:      orDefault(ye.Speed, DefaultSpeed),
			MaxLoad:    orDefault(ye.MaxLoad, DefaultMaxLoad),
			StartFloor: *ye.StartFloor,
		})
	}

	for i, yp := range *doc.Persons {
		var missing []string
		if yp.StartTime == nil {
			missing = append(missing, "startTime")
		}
		if yp.StartFloor == nil {
			missing = append(missing, "startFloor")
		}
		if yp.DestinationFloor == nil {
			missing = append(missing, "destinationFloor")
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("person %d: %s required", i+1, strings.Join(missing, ", "))
		}
		s.Persons = append(s.Persons, Person{
			StartTime:        *yp.StartTime,
			StartFloor:       *yp.StartFloor,
			DestinationFloor: *yp.DestinationFloor,
			MaxWait:          orDefault(yp.MaxWait, DefaultMaxWait),
			Weight:           orDefault(yp.Weight, DefaultWeight),
		})
	}

	return s, nil
}

func orDefault[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}
