package http

import (
	"errors"
	"slices"

	"github.com/aretw0/statusmap"
	"github.com/aretw0/statusmap/pkg/domain"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DefinitionRequest is the body of PUT /maps/{name}.
type DefinitionRequest struct {
	Description string             `json:"description,omitempty"`
	Transitions domain.Transitions `json:"transitions"`
}

// TransitionRequest is the body of POST /maps/{name}/validate.
type TransitionRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SequenceRequest is the body of POST /maps/{name}/sequence.
type SequenceRequest struct {
	Statuses []string `json:"statuses"`
}

type RuleResponse struct {
	From string   `json:"from"`
	To   []string `json:"to"`
}

type MapResponse struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Statuses    []string       `json:"statuses"`
	Transitions []RuleResponse `json:"transitions"`
	Initials    []string       `json:"initials"`
	Terminals   []string       `json:"terminals"`
	Cyclic      bool           `json:"cyclic"`
}

type VerdictResponse struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Outcome string `json:"outcome"`
	Valid   bool   `json:"valid"`
	Error   string `json:"error,omitempty"`
}

type SequenceResponse struct {
	Valid bool   `json:"valid"`
	Index *int   `json:"index,omitempty"`
	Error string `json:"error,omitempty"`
}

type StatusResponse struct {
	Status   string   `json:"status"`
	Next     []string `json:"next"`
	Previous []string `json:"previous"`
	Upcoming []string `json:"upcoming"`
	Initial  bool     `json:"initial"`
	Terminal bool     `json:"terminal"`
}

func newMapResponse(m *statusmap.Map) MapResponse {
	def := m.Definition()
	rules := make([]RuleResponse, len(def.Transitions))
	for i, r := range def.Transitions {
		rules[i] = RuleResponse{From: r.From, To: orEmpty(r.To)}
	}
	return MapResponse{
		Name:        m.Name(),
		Description: m.Description(),
		Statuses:    orEmpty(m.Statuses()),
		Transitions: rules,
		Initials:    orEmpty(m.Initials()),
		Terminals:   orEmpty(m.Terminals()),
		Cyclic:      m.HasCycle(),
	}
}

func newVerdictResponse(v domain.Verdict) VerdictResponse {
	resp := VerdictResponse{
		From:    v.From.Name(),
		To:      v.To.Name(),
		Outcome: v.Outcome.String(),
		Valid:   v.Valid(),
	}
	if err := v.Err(); err != nil {
		resp.Error = err.Error()
	}
	return resp
}

func newSequenceResponse(err error) SequenceResponse {
	if err == nil {
		return SequenceResponse{Valid: true}
	}
	resp := SequenceResponse{Error: err.Error()}
	var seqErr *statusmap.SequenceError
	if errors.As(err, &seqErr) {
		resp.Index = &seqErr.Index
	}
	return resp
}

func newStatusResponse(m *statusmap.Map, status string) StatusResponse {
	return StatusResponse{
		Status:   status,
		Next:     orEmpty(m.Next(status)),
		Previous: orEmpty(m.Previous(status)),
		Upcoming: orEmpty(m.Upcoming(status)),
		Initial:  slices.Contains(m.Initials(), status),
		Terminal: slices.Contains(m.Terminals(), status),
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
