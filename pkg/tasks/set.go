package tasks

import (
	"github.com/arthur-debert/dotman/pkg/logging"
)

// Set is an ordered list of units. Units run in insertion order.
type Set struct {
	name  string
	units []Unit
}

// NewSet creates a set holding units in the given order.
func NewSet(name string, units ...Unit) *Set {
	s := &Set{name: name}
	s.units = append(s.units, units...)
	return s
}

// Name returns the set name.
func (s *Set) Name() string { return s.name }

// Add appends u and returns the set.
func (s *Set) Add(u Unit) *Set {
	s.units = append(s.units, u)
	return s
}

// Units returns a copy of the units in order.
func (s *Set) Units() []Unit {
	out := make([]Unit, len(s.units))
	copy(out, s.units)
	return out
}

// Len returns the number of units.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.units)
}

// Concat returns a new set with the units of s followed by those of other.
// Neither operand is modified.
func (s *Set) Concat(other *Set) *Set {
	out := &Set{units: make([]Unit, 0, s.Len()+other.Len())}
	if s != nil {
		out.name = s.name
		out.units = append(out.units, s.units...)
	} else if other != nil {
		out.name = other.name
	}
	if other != nil {
		out.units = append(out.units, other.units...)
	}
	return out
}

// Execute runs every unit in order. It stops at the first fatal error and
// returns the outcomes gathered so far together with that error.
func (s *Set) Execute(ctx *Context) (*Report, error) {
	logger := logging.GetLogger("tasks.set")
	done := logging.LogOperationStart(logger, "execute "+s.name)
	defer done()

	report := &Report{OS: ctx.OS.String(), DryRun: ctx.DryRun}
	for _, u := range s.units {
		outcome, err := Execute(ctx, u)
		if err != nil {
			return report, err
		}
		report.Add(outcome)
	}

	logger.Info().
		Str("set", s.name).
		Int("performed", report.Count(StatusPerformed)).
		Int("pending", report.Count(StatusPending)).
		Int("skipped", report.Count(StatusSkipped)).
		Int("failed", report.Count(StatusFailed)).
		Msg("task set finished")
	return report, nil
}
