package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyTransitions is returned when a graph is built from an empty mapping.
var ErrEmptyTransitions = errors.New("must pass a non-empty transition mapping")

// ErrStatusNotFound matches every StatusNotFoundError.
var ErrStatusNotFound = errors.New("status not found")

// ErrDefinitionNotFound is returned when a named definition cannot be found in a store.
var ErrDefinitionNotFound = errors.New("definition not found")

// ErrUnnamedDefinition is returned when a definition without a name is stored.
var ErrUnnamedDefinition = errors.New("definition name is required")

// ErrInvalidTransition matches every TransitionError.
var ErrInvalidTransition = errors.New("invalid transition")

var (
	ErrPastTransition       = errors.New("past transition")
	ErrFutureTransition     = errors.New("future transition")
	ErrAmbiguousTransition  = errors.New("ambiguous transition")
	ErrTransitionNotRelated = errors.New("transition not related")
)

// Role names which side of a transition a status was given as.
type Role string

const (
	RoleFrom Role = "from"
	RoleTo   Role = "to"
)

// StatusNotFoundError reports a status that is not part of the graph.
type StatusNotFoundError struct {
	Role   Role
	Status Status
}

func (e *StatusNotFoundError) Error() string {
	return fmt.Sprintf("%s_status %s not found", e.Role, e.Status)
}

func (e *StatusNotFoundError) Is(target error) bool {
	return target == ErrStatusNotFound
}

// TransitionError reports an illegal transition and why it is illegal.
type TransitionError struct {
	Outcome Outcome
	From    Status
	To      Status
}

func (e *TransitionError) Error() string {
	switch e.Outcome {
	case Past:
		return fmt.Sprintf("transition from %s to %s should have happened in the past", e.From, e.To)
	case Future:
		return fmt.Sprintf("transition from %s to %s should happen in the future", e.From, e.To)
	case Ambiguous:
		return fmt.Sprintf("transition from %s to %s is ambiguous: both statuses lie on a cycle", e.From, e.To)
	default:
		return fmt.Sprintf("transition from %s to %s not found", e.From, e.To)
	}
}

func (e *TransitionError) Is(target error) bool {
	switch target {
	case ErrInvalidTransition:
		return true
	case ErrPastTransition:
		return e.Outcome == Past
	case ErrFutureTransition:
		return e.Outcome == Future
	case ErrAmbiguousTransition:
		return e.Outcome == Ambiguous
	case ErrTransitionNotRelated:
		return e.Outcome == NotRelated
	}
	return false
}
