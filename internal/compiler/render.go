package compiler

import (
	"bufio"
	"fmt"
	"io"
	"runtime"
	"strconv"
)

// Record keywords.
const (
	recordFloor        = "Floor"
	recordInterface    = "Interface"
	recordUpDownButton = "UpDownButton"
	recordElevator     = "Elevator"
	recordPerson       = "Person"
)

// Line ending names accepted by LineEnding.
const (
	LineEndingPlatform = "platform"
	LineEndingLF       = "lf"
	LineEndingCRLF     = "crlf"
)

// PlatformNewline returns the host platform's line terminator.
func PlatformNewline() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// LineEnding resolves a line ending name to its terminator.
func LineEnding(name string) (string, error) {
	switch name {
	case LineEndingPlatform:
		return PlatformNewline(), nil
	case LineEndingLF:
		return "\n", nil
	case LineEndingCRLF:
		return "\r\n", nil
	default:
		return "", fmt.Errorf("unknown line ending %q (supported: %s, %s, %s)",
			name, LineEndingPlatform, LineEndingLF, LineEndingCRLF)
	}
}

// recordWriter emits "<Kind> { <fields> }" lines.
type recordWriter struct {
	w       *bufio.Writer
	newline string
}

func (rw *recordWriter) record(kind string, fields ...string) {
	rw.w.WriteString(kind)
	rw.w.WriteString(" {")
	for _, f := range fields {
		rw.w.WriteByte(' ')
		rw.w.WriteString(f)
	}
	rw.w.WriteString(" }")
	rw.w.WriteString(rw.newline)
}

// Render writes the record stream for p to w: every floor followed by its
// call interfaces, then every elevator followed by its stop interfaces, then
// every person.
//
// Precondition: p must come from Wire.
// Postcondition: the output is a pure function of p and newline.
func Render(w io.Writer, p *Plan, newline string) error {
	rw := &recordWriter{w: bufio.NewWriter(w), newline: newline}
	capacity := strconv.Itoa(InterfaceCapacity)

	for _, f := range p.Floors {
		fields := []string{
			f.ID.String(),
			f.Below.String(),
			f.Above.String(),
			strconv.Itoa(f.Height),
			strconv.Itoa(len(f.Interfaces)),
		}
		for _, ci := range f.Interfaces {
			fields = append(fields, ci.ID.String())
		}
		rw.record(recordFloor, fields...)
		for _, ci := range f.Interfaces {
			rw.record(ci.Kind.Record(), ci.ID.String(), capacity, ci.Elevator.String())
		}
	}

	for _, e := range p.Elevators {
		fields := []string{
			e.ID.String(),
			strconv.Itoa(e.Speed),
			formatLoad(e.MaxLoad),
			e.StartFloor.String(),
			strconv.Itoa(len(e.Stops)),
		}
		for _, si := range e.Stops {
			fields = append(fields, si.ID.String())
		}
		rw.record(recordElevator, fields...)
		for _, si := range e.Stops {
			rw.record(recordInterface, si.ID.String(), capacity, si.Floor.String())
		}
	}

	for _, wp := range p.Persons {
		rw.record(recordPerson,
			wp.ID.String(),
			wp.StartFloor.String(),
			wp.Destination.String(),
			strconv.Itoa(wp.MaxWait),
			strconv.Itoa(wp.Weight),
			strconv.Itoa(wp.StartTime),
		)
	}

	if err := rw.w.Flush(); err != nil {
		return fmt.Errorf("writing records: %w", err)
	}
	return nil
}

// formatLoad renders a load in its shortest decimal form, so whole numbers
// carry no fraction.
func formatLoad(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
