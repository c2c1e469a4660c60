package domain

import "strings"

// Status is a named node of a transition graph.
//
// The zero value is the status with the empty name, which is a legal name.
// Status values are comparable and may be used as map keys. Comparison with a
// raw string is intentionally impossible: convert at the boundary with
// NewStatus.
type Status struct {
	name string
}

// NewStatus wraps a status name.
func NewStatus(name string) Status {
	return Status{name: name}
}

// Statuses wraps a list of names, preserving order.
func Statuses(names ...string) []Status {
	out := make([]Status, len(names))
	for i, n := range names {
		out[i] = NewStatus(n)
	}
	return out
}

// Name returns the raw status name.
func (s Status) Name() string {
	return s.name
}

func (s Status) String() string {
	return s.name
}

// Compare orders statuses by name. It only exists for deterministic output.
func (s Status) Compare(other Status) int {
	return strings.Compare(s.name, other.name)
}

// Less reports whether s sorts before other.
func (s Status) Less(other Status) bool {
	return s.name < other.name
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	s.name = string(text)
	return nil
}

// Names unwraps a list of statuses.
func Names(statuses []Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = s.name
	}
	return out
}
