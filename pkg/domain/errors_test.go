package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerdictErr(t *testing.T) {
	from, to := NewStatus("approved"), NewStatus("pending")

	tests := []struct {
		name    string
		outcome Outcome
		match   []error
		miss    []error
		message string
	}{
		{
			name:    "Past",
			outcome: Past,
			match:   []error{ErrInvalidTransition, ErrPastTransition},
			miss:    []error{ErrFutureTransition, ErrStatusNotFound},
			message: "transition from approved to pending should have happened in the past",
		},
		{
			name:    "Future",
			outcome: Future,
			match:   []error{ErrInvalidTransition, ErrFutureTransition},
			miss:    []error{ErrPastTransition},
			message: "should happen in the future",
		},
		{
			name:    "Ambiguous",
			outcome: Ambiguous,
			match:   []error{ErrInvalidTransition, ErrAmbiguousTransition},
			miss:    []error{ErrPastTransition, ErrFutureTransition},
			message: "ambiguous",
		},
		{
			name:    "Not Related",
			outcome: NotRelated,
			match:   []error{ErrInvalidTransition, ErrTransitionNotRelated},
			miss:    []error{ErrAmbiguousTransition},
			message: "transition from approved to pending not found",
		},
		{
			name:    "Missing From",
			outcome: NotFoundFrom,
			match:   []error{ErrStatusNotFound},
			miss:    []error{ErrInvalidTransition},
			message: "from_status approved not found",
		},
		{
			name:    "Missing To",
			outcome: NotFoundTo,
			match:   []error{ErrStatusNotFound},
			miss:    []error{ErrInvalidTransition},
			message: "to_status pending not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verdict{Outcome: tt.outcome, From: from, To: to}.Err()
			require.Error(t, err)
			for _, target := range tt.match {
				assert.ErrorIs(t, err, target)
			}
			for _, target := range tt.miss {
				assert.NotErrorIs(t, err, target)
			}
			assert.Contains(t, err.Error(), tt.message)
		})
	}

	t.Run("Valid", func(t *testing.T) {
		v := Verdict{Outcome: Valid, From: from, To: from}
		assert.True(t, v.Valid())
		assert.NoError(t, v.Err())
	})
}

func TestTransitionErrorAs(t *testing.T) {
	err := Verdict{Outcome: Past, From: NewStatus("b"), To: NewStatus("a")}.Err()
	wrapped := errors.Join(errors.New("context"), err)

	var te *TransitionError
	require.ErrorAs(t, wrapped, &te)
	assert.Equal(t, Past, te.Outcome)
	assert.Equal(t, "b", te.From.Name())
}

func TestStatusOrdering(t *testing.T) {
	a, b := NewStatus("approved"), NewStatus("pending")
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.Equal(t, 0, a.Compare(NewStatus("approved")))
	assert.Equal(t, a, NewStatus("approved"))
	assert.Equal(t, []string{"x", "y"}, Names(Statuses("x", "y")))
}

func TestVerdictJSON(t *testing.T) {
	v := Verdict{Outcome: Ambiguous, From: NewStatus("rejected"), To: NewStatus("processing")}
	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"outcome":"ambiguous","from":"rejected","to":"processing"}`, string(data))

	var back Verdict
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, v, back)
}

func TestParseOutcome(t *testing.T) {
	for _, o := range Outcomes() {
		parsed, err := ParseOutcome(o.String())
		require.NoError(t, err)
		assert.Equal(t, o, parsed)
	}
	_, err := ParseOutcome("maybe")
	assert.Error(t, err)
	assert.Equal(t, "outcome(42)", Outcome(42).String())
}

func TestTransitionsFromMap(t *testing.T) {
	rules := TransitionsFromMap(map[string][]string{
		"processing": {"approved", "rejected"},
		"approved":   {"processed"},
		"pending":    {"processing"},
	})

	require.Len(t, rules, 3)
	assert.Equal(t, "approved", rules[0].From)
	assert.Equal(t, "pending", rules[1].From)
	assert.Equal(t, "processing", rules[2].From)

	merged := Transitions{{From: "a", To: []string{"b"}}, {From: "a", To: []string{"c"}}}.Map()
	assert.Equal(t, []string{"b", "c"}, merged["a"])
}

func TestHooksMerge(t *testing.T) {
	var calls []string
	first := Hooks{OnClassify: func(Verdict) { calls = append(calls, "first") }}
	second := Hooks{
		OnClassify:    func(Verdict) { calls = append(calls, "second") },
		OnCacheLookup: func(QueryKind, bool) { calls = append(calls, "lookup") },
	}

	merged := first.Merge(second)
	merged.Classified(Verdict{})
	merged.CacheLookup(QueryAncestors, true)

	assert.Equal(t, []string{"first", "second", "lookup"}, calls)

	// Zero hooks never panic.
	Hooks{}.Classified(Verdict{})
	Hooks{}.CacheLookup(QueryDescendants, false)
}

func TestDefinition_Validate(t *testing.T) {
	assert.ErrorIs(t, Definition{}.Validate(), ErrUnnamedDefinition)
	assert.ErrorIs(t, Definition{Name: "x"}.Validate(), ErrEmptyTransitions)
	assert.NoError(t, Definition{
		Name:        "x",
		Transitions: Transitions{{From: "a"}},
	}.Validate())
}
