package graph

import (
	"slices"

	"github.com/aretw0/statusmap/pkg/domain"
)

// Set is a read-only set of statuses. The zero value is empty.
type Set struct {
	members map[domain.Status]struct{}
}

// NewSet builds a set from the given statuses.
func NewSet(statuses ...domain.Status) Set {
	members := make(map[domain.Status]struct{}, len(statuses))
	for _, s := range statuses {
		members[s] = struct{}{}
	}
	return Set{members: members}
}

// Has reports membership.
func (s Set) Has(status domain.Status) bool {
	_, ok := s.members[status]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s.members)
}

// Slice returns the members sorted by name.
func (s Set) Slice() []domain.Status {
	out := make([]domain.Status, 0, len(s.members))
	for m := range s.members {
		out = append(out, m)
	}
	slices.SortFunc(out, domain.Status.Compare)
	return out
}

// Names returns the member names sorted.
func (s Set) Names() []string {
	return domain.Names(s.Slice())
}
