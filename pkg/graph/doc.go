/*
Package graph implements the immutable transition graph a status map is built on.

A Graph is constructed once from an ordered transition mapping and never
changes afterwards. It answers existence, direct-edge and reachability
questions. Reachability is computed on demand with a breadth-first traversal
that tracks visited nodes, so every query terminates on cyclic input and runs
in O(V+E).

Statuses referenced only as successors become dead-end nodes: a terminal
status such as "delivered" does not have to be declared with an empty list.
Self-loops are kept as edges but never change the ancestor or descendant set
of any status.
*/
package graph
