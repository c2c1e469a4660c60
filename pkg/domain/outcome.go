package domain

import "fmt"

// Outcome is the classification of a proposed transition.
type Outcome int

const (
	// Valid is either a same-status move or a declared direct edge.
	Valid Outcome = iota
	// NotFoundFrom means the source status is not part of the graph.
	NotFoundFrom
	// NotFoundTo means the target status is not part of the graph.
	NotFoundTo
	// Ambiguous means the target is both reachable from and able to reach the
	// source, which only happens on cyclic graphs.
	Ambiguous
	// Future means the target is reachable, but only through intermediate steps.
	Future
	// Past means the target precedes the source: the move already happened.
	Past
	// NotRelated means there is no path between the two statuses at all.
	NotRelated
)

var outcomeNames = [...]string{
	Valid:        "valid",
	NotFoundFrom: "not_found_from",
	NotFoundTo:   "not_found_to",
	Ambiguous:    "ambiguous",
	Future:       "future",
	Past:         "past",
	NotRelated:   "not_related",
}

// Outcomes lists every outcome in declaration order.
func Outcomes() []Outcome {
	return []Outcome{Valid, NotFoundFrom, NotFoundTo, Ambiguous, Future, Past, NotRelated}
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return fmt.Sprintf("outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) (Outcome, error) {
	for i, name := range outcomeNames {
		if name == s {
			return Outcome(i), nil
		}
	}
	return 0, fmt.Errorf("unknown outcome %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	parsed, err := ParseOutcome(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// Verdict is the answer to a single classification query.
type Verdict struct {
	Outcome Outcome `json:"outcome"`
	From    Status  `json:"from"`
	To      Status  `json:"to"`
}

// Valid reports whether the move is legal.
func (v Verdict) Valid() bool {
	return v.Outcome == Valid
}

// Err converts the verdict into an error the caller can match on.
// It returns nil for a valid verdict.
func (v Verdict) Err() error {
	switch v.Outcome {
	case Valid:
		return nil
	case NotFoundFrom:
		return &StatusNotFoundError{Role: RoleFrom, Status: v.From}
	case NotFoundTo:
		return &StatusNotFoundError{Role: RoleTo, Status: v.To}
	default:
		return &TransitionError{Outcome: v.Outcome, From: v.From, To: v.To}
	}
}

func (v Verdict) String() string {
	return fmt.Sprintf("%s -> %s: %s", v.From, v.To, v.Outcome)
}
