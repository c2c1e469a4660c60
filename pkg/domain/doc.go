/*
Package domain contains the core domain models of the status map.

It defines the vocabulary shared by every other package: the Status identifier,
the ordered transition rules a graph is built from, the classification Outcome
and Verdict, and the typed errors callers match on. This package is kept pure
and free of external dependencies like I/O or persistence.

# Key Entities

  - Status: An opaque workflow status name. Built explicitly with NewStatus.
  - Rule: The permitted next statuses of one status, as declared by a source.
  - Definition: A named set of rules, the unit stores and registries deal in.
  - Verdict: The classification of a proposed (from, to) move.
*/
package domain
