package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/statusmap/pkg/domain"
)

// Edge is a declared direct transition.
type Edge struct {
	From domain.Status `json:"from"`
	To   domain.Status `json:"to"`
}

// Graph is an immutable directed graph of statuses.
// It is safe for concurrent use.
type Graph struct {
	order []domain.Status
	index map[domain.Status]int
	succ  [][]int
	pred  [][]int
	edges map[[2]int]struct{}
	count int
}

// Build creates a graph from an unordered mapping. Statuses are registered in
// name order so that repeated builds of the same mapping are identical.
func Build(transitions map[string][]string) (*Graph, error) {
	return BuildRules(domain.TransitionsFromMap(transitions))
}

// BuildRules creates a graph from ordered rules.
// It fails only with domain.ErrEmptyTransitions.
func BuildRules(rules domain.Transitions) (*Graph, error) {
	if len(rules) == 0 {
		return nil, domain.ErrEmptyTransitions
	}

	g := &Graph{
		index: make(map[domain.Status]int),
		edges: make(map[[2]int]struct{}),
	}

	// Declared sources first, then successors that are never declared (dead ends).
	for _, r := range rules {
		g.register(domain.NewStatus(r.From))
	}
	for _, r := range rules {
		for _, to := range r.To {
			g.register(domain.NewStatus(to))
		}
	}

	g.succ = make([][]int, len(g.order))
	g.pred = make([][]int, len(g.order))

	for _, r := range rules {
		from := g.index[domain.NewStatus(r.From)]
		for _, name := range r.To {
			to := g.index[domain.NewStatus(name)]
			key := [2]int{from, to}
			if _, dup := g.edges[key]; dup {
				continue
			}
			g.edges[key] = struct{}{}
			g.succ[from] = append(g.succ[from], to)
			g.pred[to] = append(g.pred[to], from)
			g.count++
		}
	}

	return g, nil
}

func (g *Graph) register(s domain.Status) {
	if _, ok := g.index[s]; ok {
		return
	}
	g.index[s] = len(g.order)
	g.order = append(g.order, s)
}

// HasNode reports whether s is a status of the graph.
func (g *Graph) HasNode(s domain.Status) bool {
	_, ok := g.index[s]
	return ok
}

// HasEdge reports whether to is a declared direct successor of from.
func (g *Graph) HasEdge(from, to domain.Status) bool {
	f, ok := g.index[from]
	if !ok {
		return false
	}
	t, ok := g.index[to]
	if !ok {
		return false
	}
	_, ok = g.edges[[2]int{f, t}]
	return ok
}

// Ancestors returns every status with a directed path reaching s, excluding s.
// Unknown statuses have no ancestors.
func (g *Graph) Ancestors(s domain.Status) Set {
	return g.reach(s, g.pred)
}

// Descendants returns every status reachable from s through one or more
// edges, excluding s. Unknown statuses have no descendants.
func (g *Graph) Descendants(s domain.Status) Set {
	return g.reach(s, g.succ)
}

func (g *Graph) reach(s domain.Status, adj [][]int) Set {
	start, ok := g.index[s]
	if !ok {
		return Set{}
	}

	visited := make([]bool, len(g.order))
	visited[start] = true
	queue := []int{start}
	members := make(map[domain.Status]struct{})

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range adj[current] {
			if visited[next] {
				continue
			}
			visited[next] = true
			members[g.order[next]] = struct{}{}
			queue = append(queue, next)
		}
	}

	return Set{members: members}
}

// Statuses returns every status in construction order.
func (g *Graph) Statuses() []domain.Status {
	return append([]domain.Status(nil), g.order...)
}

// Len returns the number of statuses.
func (g *Graph) Len() int {
	return len(g.order)
}

// EdgeCount returns the number of distinct declared edges, self-loops included.
func (g *Graph) EdgeCount() int {
	return g.count
}

// Successors returns the declared direct successors of s in declaration order.
func (g *Graph) Successors(s domain.Status) []domain.Status {
	return g.neighbours(s, g.succ)
}

// Predecessors returns the statuses that declare s as a direct successor.
func (g *Graph) Predecessors(s domain.Status) []domain.Status {
	return g.neighbours(s, g.pred)
}

func (g *Graph) neighbours(s domain.Status, adj [][]int) []domain.Status {
	i, ok := g.index[s]
	if !ok {
		return nil
	}
	out := make([]domain.Status, len(adj[i]))
	for j, n := range adj[i] {
		out[j] = g.order[n]
	}
	return out
}

// Edges returns every declared edge grouped by source in construction order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.count)
	for from, targets := range g.succ {
		for _, to := range targets {
			out = append(out, Edge{From: g.order[from], To: g.order[to]})
		}
	}
	return out
}

// Rules converts the graph back into ordered transition rules.
// Dead-end statuses are listed with an empty successor list.
func (g *Graph) Rules() domain.Transitions {
	out := make(domain.Transitions, len(g.order))
	for i, s := range g.order {
		out[i] = domain.Rule{From: s.Name(), To: domain.Names(g.neighbours(s, g.succ))}
	}
	return out
}

// Terminals returns statuses without outgoing edges other than self-loops.
func (g *Graph) Terminals() []domain.Status {
	return g.filter(g.succ)
}

// Initials returns statuses without incoming edges other than self-loops.
func (g *Graph) Initials() []domain.Status {
	return g.filter(g.pred)
}

func (g *Graph) filter(adj [][]int) []domain.Status {
	var out []domain.Status
	for i, s := range g.order {
		if degreeWithoutLoops(i, adj[i]) == 0 {
			out = append(out, s)
		}
	}
	return out
}

func degreeWithoutLoops(i int, targets []int) int {
	n := 0
	for _, t := range targets {
		if t != i {
			n++
		}
	}
	return n
}

// HasCycle reports whether the graph contains a cycle of two or more
// statuses. Self-loops do not count.
func (g *Graph) HasCycle() bool {
	indegree := make([]int, len(g.order))
	for i := range g.order {
		indegree[i] = degreeWithoutLoops(i, g.pred[i])
	}

	queue := make([]int, 0, len(g.order))
	for i, d := range indegree {
		if d == 0 {
			queue = append(queue, i)
		}
	}

	removed := 0
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		removed++
		for _, next := range g.succ[current] {
			if next == current {
				continue
			}
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	return removed < len(g.order)
}

func (g *Graph) String() string {
	return fmt.Sprintf("Graph(statuses=[%s], edges=%d)", strings.Join(domain.Names(g.order), ", "), g.count)
}
