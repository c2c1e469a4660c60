package dsl

// StatusBuilder provides a fluent API for configuring one status.
type StatusBuilder struct {
	name    string
	next    []string
	builder *Builder
}

// To allows direct transitions to the given statuses.
func (s *StatusBuilder) To(names ...string) *StatusBuilder {
	s.next = append(s.next, names...)
	return s
}

// Loop allows the status to transition to itself.
func (s *StatusBuilder) Loop() *StatusBuilder {
	return s.To(s.name)
}

// Status switches to declaring another status.
func (s *StatusBuilder) Status(name string) *StatusBuilder {
	return s.builder.Status(name)
}

// Done returns the parent builder.
func (s *StatusBuilder) Done() *Builder {
	return s.builder
}
