/*
Package classifier decides whether a proposed status transition is legal and,
when it is not, why.

Classify evaluates a fixed decision order: existence of both statuses,
same-status moves, declared direct edges, then reachability. A target that is
both an ancestor and a descendant of the source is Ambiguous; otherwise a
descendant is Future, an ancestor is Past and anything else is NotRelated.

Reachability lookups go through a ReachCache, a bounded LRU per query kind
scoped to one classifier. The cache only changes latency: results are the same
whether it is cold, warm, cleared or disabled.
*/
package classifier
