/*
Package observability exports classifier activity as Prometheus metrics.

Metrics bridges the classifier lifecycle hooks to two counter vectors: one
counting verdicts per map and outcome, one counting reachability cache lookups
per map, query kind and result. Collectors are registered on a caller supplied
registerer so tests and embedding applications keep their own registries.
*/
package observability
