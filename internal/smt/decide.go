package smt

import (
	"github.com/rhartert/yagh"

	"github.com/rhartert/yasmt/internal/sat"
)

// edge links a variable to another one through the pair of the given index
// in the kernel.
type edge struct {
	to   int
	pair int
}

// Decide checks an assignment of the kernel's pairs against the theory of
// equality, vals[i] being the value of the equality of pair i.
//
// If the assignment is consistent, Decide returns a valuation of the formula's
// variables that realizes it: variables are valued by the index of their
// equivalence class. Otherwise, it returns nil and a conflict, i.e. the indices
// of pairs whose values cannot hold together. The conflict is a shortest
// chain of equalities closed by one violated disequality.
func Decide(k *Kernel, vals []bool) (Valuation, []int) {
	graph := make([][]edge, k.Variables+1)
	var disequalities []int
	for i, p := range k.Pairs {
		if !vals[i] {
			disequalities = append(disequalities, i)
			continue
		}
		if p.X != p.Y {
			graph[p.X] = append(graph[p.X], edge{to: p.Y, pair: i})
			graph[p.Y] = append(graph[p.Y], edge{to: p.X, pair: i})
		}
	}

	classes := components(graph)

	var violated []int
	for _, i := range disequalities {
		if p := k.Pairs[i]; classes[p.X] == classes[p.Y] {
			violated = append(violated, i)
		}
	}

	if len(violated) == 0 {
		val := make(Valuation, k.Variables)
		for v := 1; v <= k.Variables; v++ {
			val[v-1] = classes[v]
		}
		return val, nil
	}

	return nil, explain(k, graph, violated)
}

// components returns the connected component of each node of the graph.
// Node 0 is not a variable and is left in component -1.
func components(graph [][]edge) []int {
	comps := make([]int, len(graph))
	for i := range comps {
		comps[i] = -1
	}

	queue := sat.NewQueue[int](len(graph))
	c := 0
	for v := 1; v < len(graph); v++ {
		if comps[v] != -1 {
			continue
		}
		comps[v] = c
		queue.Push(v)
		for !queue.IsEmpty() {
			u := queue.Pop()
			for _, e := range graph[u] {
				if comps[e.to] == -1 {
					comps[e.to] = c
					queue.Push(e.to)
				}
			}
		}
		c++
	}

	return comps
}

// explain returns the smallest conflict among the violated disequalities.
// Variables are processed by decreasing number of unprocessed violated
// disequalities so that one breadth-first search serves as many of them as
// possible.
func explain(k *Kernel, graph [][]edge, violated []int) []int {
	n := len(graph)
	adj := make([][]edge, n)
	count := make([]int, n)
	for _, i := range violated {
		p := k.Pairs[i]
		adj[p.X] = append(adj[p.X], edge{to: p.Y, pair: i})
		count[p.X]++
		if p.X != p.Y {
			adj[p.Y] = append(adj[p.Y], edge{to: p.X, pair: i})
			count[p.Y]++
		}
	}

	heap := yagh.New[int](n)
	for v, c := range count {
		if c > 0 {
			heap.Put(v, -c)
		}
	}

	handled := sat.NewResetSet(len(k.Pairs))
	search := newBFS(n)
	var best []int

	for {
		next, ok := heap.Pop()
		if !ok || count[next.Elem] == 0 {
			break
		}
		v := next.Elem
		search.run(graph, v)

		for _, e := range adj[v] {
			if handled.Contains(e.pair) {
				continue
			}
			handled.Add(e.pair)
			count[v]--
			if e.to != v {
				count[e.to]--
				if heap.Contains(e.to) {
					heap.Put(e.to, -count[e.to])
				}
			}
			if best == nil || search.dist[e.to]+1 < len(best) {
				best = append(search.path(e.to), e.pair)
			}
		}
	}

	return best
}

// bfs computes shortest paths (in number of equalities) from a source.
type bfs struct {
	src    int
	dist   []int
	parent []edge
	queue  *sat.Queue[int]
}

func newBFS(n int) *bfs {
	return &bfs{
		dist:   make([]int, n),
		parent: make([]edge, n),
		queue:  sat.NewQueue[int](n),
	}
}

func (b *bfs) run(graph [][]edge, src int) {
	for i := range b.dist {
		b.dist[i] = -1
	}
	b.src = src
	b.dist[src] = 0
	b.queue.Clear()
	b.queue.Push(src)
	for !b.queue.IsEmpty() {
		u := b.queue.Pop()
		for _, e := range graph[u] {
			if b.dist[e.to] == -1 {
				b.dist[e.to] = b.dist[u] + 1
				b.parent[e.to] = edge{to: u, pair: e.pair}
				b.queue.Push(e.to)
			}
		}
	}
}

// path returns the pairs on the shortest path from the source to node to.
// The node must be reachable from the source.
func (b *bfs) path(to int) []int {
	p := make([]int, 0, b.dist[to]+1)
	for v := to; v != b.src; v = b.parent[v].to {
		p = append(p, b.parent[v].pair)
	}
	return p
}
