package sat

import "fmt"

func ExampleNewQueue() {
	q := NewQueue[Literal](2)
	fmt.Println(q, q.IsEmpty())

	q.Push(PositiveLiteral(0))
	q.Push(NegativeLiteral(3))
	fmt.Println(q, q.Size())

	// Output:
	// Queue[] true
	// Queue[0 !3] 2
}

func ExampleQueue_Pop() {
	q := NewQueue[int](1)
	for i := 1; i <= 4; i++ {
		q.Push(i)
	}

	fmt.Println(q.Pop(), q.Pop())
	fmt.Println(q)

	// Output:
	// 1 2
	// Queue[3 4]
}

// The queue is reused across breadth-first searches: Clear keeps the grown
// ring so later searches do not allocate.
func ExampleQueue_Clear() {
	graph := [][]int{
		0: {1, 2},
		1: {0, 3},
		2: {0},
		3: {1, 4},
		4: {3},
	}
	dist := make([]int, len(graph))
	q := NewQueue[int](1)

	for _, src := range []int{0, 4} {
		for i := range dist {
			dist[i] = -1
		}
		q.Clear()
		dist[src] = 0
		q.Push(src)
		for !q.IsEmpty() {
			u := q.Pop()
			for _, v := range graph[u] {
				if dist[v] == -1 {
					dist[v] = dist[u] + 1
					q.Push(v)
				}
			}
		}
		fmt.Println(src, dist)
	}

	// Output:
	// 0 [0 1 1 2 3]
	// 4 [3 2 4 1 0]
}
