// Package cluster builds the undirected graph of barcode alignments,
// partitions it into connected components and derives the correction table
// mapping each noisy barcode to the canonical barcode of its component.
package cluster

import (
	"sort"
)

// Graph is an undirected, unweighted graph over barcode sequences. Edges are
// deduplicated and self-loops are never stored. Once built it is read-only.
type Graph struct {
	adj map[string]map[string]struct{}
}

func NewGraph() *Graph {
	return &Graph{adj: make(map[string]map[string]struct{})}
}

func (g *Graph) AddNode(barcode string) {
	if _, ok := g.adj[barcode]; !ok {
		g.adj[barcode] = make(map[string]struct{})
	}
}

// AddEdge adds barcode nodes a and b and an undirected edge between them.
// Idempotent; edge(a,b) and edge(b,a) are the same edge. Self-pairs are
// dropped, they carry no clustering information.
func (g *Graph) AddEdge(a, b string) {
	if a == b {
		return
	}
	g.AddNode(a)
	g.AddNode(b)
	g.adj[a][b] = struct{}{}
	g.adj[b][a] = struct{}{}
}

func (g *Graph) HasNode(barcode string) bool {
	_, ok := g.adj[barcode]
	return ok
}

func (g *Graph) HasEdge(a, b string) bool {
	_, ok := g.adj[a][b]
	return ok
}

func (g *Graph) Degree(barcode string) int {
	return len(g.adj[barcode])
}

func (g *Graph) NumNodes() int {
	return len(g.adj)
}

func (g *Graph) NumEdges() int {
	n := 0
	for _, nbrs := range g.adj {
		n += len(nbrs)
	}
	return n / 2
}

// Nodes returns all barcodes in lexicographic order.
func (g *Graph) Nodes() []string {
	nodes := make([]string, 0, len(g.adj))
	for barcode := range g.adj {
		nodes = append(nodes, barcode)
	}
	sort.Strings(nodes)
	return nodes
}

// ConnectedComponents partitions the graph into maximal connected subgraphs
// by iterative BFS. The member set of each component is deterministic; the
// order of the returned list follows the lexicographically smallest member.
func (g *Graph) ConnectedComponents() []*Component {
	var comps []*Component
	visited := make(map[string]struct{}, len(g.adj))
	for _, start := range g.Nodes() {
		if _, ok := visited[start]; ok {
			continue
		}
		var members []string
		queue := []string{start}
		visited[start] = struct{}{}
		for len(queue) > 0 {
			barcode := queue[0]
			queue = queue[1:]
			members = append(members, barcode)
			for nbr := range g.adj[barcode] {
				if _, ok := visited[nbr]; !ok {
					visited[nbr] = struct{}{}
					queue = append(queue, nbr)
				}
			}
		}
		sort.Strings(members)
		// the component is maximal, so the induced adjacency is just the
		// graph's own adjacency sets for its members
		comps = append(comps, &Component{nodes: members, adj: g.adj})
	}
	return comps
}

// Component is one maximal connected subgraph: a read-only view of its member
// barcodes and induced edges.
type Component struct {
	nodes []string // sorted lexicographically
	adj   map[string]map[string]struct{}
}

// NewComponent builds a free-standing component from explicit edges; used by
// tests and renderers. Nodes may include isolated barcodes.
func NewComponent(nodes []string, edges [][2]string) *Component {
	g := NewGraph()
	for _, n := range nodes {
		g.AddNode(n)
	}
	for _, e := range edges {
		g.AddEdge(e[0], e[1])
	}
	return &Component{nodes: g.Nodes(), adj: g.adj}
}

func (c *Component) Size() int {
	return len(c.nodes)
}

// Nodes returns the member barcodes in lexicographic order. The returned
// slice is shared; callers must not modify it.
func (c *Component) Nodes() []string {
	return c.nodes
}

func (c *Component) Degree(barcode string) int {
	return len(c.adj[barcode])
}

func (c *Component) HasEdge(a, b string) bool {
	_, ok := c.adj[a][b]
	return ok
}

func (c *Component) NumEdges() int {
	n := 0
	for _, barcode := range c.nodes {
		n += len(c.adj[barcode])
	}
	return n / 2
}

// Edges lists each undirected edge once, as ordered pairs, sorted.
func (c *Component) Edges() [][2]string {
	var edges [][2]string
	for _, a := range c.nodes {
		for b := range c.adj[a] {
			if a < b {
				edges = append(edges, [2]string{a, b})
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i][0] != edges[j][0] {
			return edges[i][0] < edges[j][0]
		}
		return edges[i][1] < edges[j][1]
	})
	return edges
}

// DegreeSequence returns the member degrees in descending order.
func (c *Component) DegreeSequence() []int {
	degrees := make([]int, 0, len(c.nodes))
	for _, barcode := range c.nodes {
		degrees = append(degrees, len(c.adj[barcode]))
	}
	sort.Sort(sort.Reverse(sort.IntSlice(degrees)))
	return degrees
}

// MembersByDegree returns the member barcodes ordered by in-component degree
// descending, ties broken by lexicographic order.
func (c *Component) MembersByDegree() []string {
	members := append([]string(nil), c.nodes...)
	sort.SliceStable(members, func(i, j int) bool {
		return len(c.adj[members[i]]) > len(c.adj[members[j]])
	})
	return members
}
