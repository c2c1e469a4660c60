/*
Package statusmap guards workflow status changes.

A status map is built once from a mapping of status name to the statuses that
may directly follow it. It then answers, for any proposed move, whether the
move is legal and, when it is not, why: the target already happened (Past),
only comes later through intermediate steps (Future), is unrelated (NotRelated)
or sits on a cycle with the source so that order cannot be told (Ambiguous).

The map never executes or persists anything. Callers ask before committing a
status change elsewhere.

# Usage

	orders, err := statusmap.New(map[string][]string{
		"pending":    {"processing"},
		"processing": {"approved", "rejected"},
		"approved":   {"processed"},
	}, statusmap.WithName("orders"))
	if err != nil {
		log.Fatal(err)
	}

	if err := orders.Validate("approved", "pending"); err != nil {
		switch {
		case errors.Is(err, domain.ErrPastTransition):
			// "you already did this"
		case errors.Is(err, domain.ErrFutureTransition):
			// "that has not happened yet"
		}
	}

Statuses that only appear as a target, such as "processed" and "rejected"
above, are terminal statuses.

# Packages

  - pkg/graph: the immutable transition graph and its reachability queries.
  - pkg/classifier: the decision procedure and its LRU reachability cache.
  - pkg/dsl: a fluent builder that keeps declaration order.
  - pkg/adapters: loaders (YAML/JSON, HCL, Loam directories), definition
    stores (memory, Redis, SQLite) and servers (HTTP, MCP).
  - pkg/registry: named maps resolved from a definition store.
*/
package statusmap
