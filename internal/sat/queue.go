package sat

import (
	"fmt"
	"strings"
)

// Queue is a FIFO queue backed by a ring buffer that grows as needed.
type Queue[T any] struct {
	ring  []T
	mask  int
	start int
	end   int
	size  int
}

// NewQueue returns a new Queue with the given capacity. Note that the capacity
// is used as an indication and the queue might be instiated with a larger
// capacity than the given one.
func NewQueue[T any](capa int) *Queue[T] {
	capa = nextPower2(capa)
	return &Queue[T]{
		ring: make([]T, capa),
		mask: capa - 1,
	}
}

// nextPower2 returns the smallest power of two strictly greater than i.
func nextPower2(i int) int {
	i |= i >> 1
	i |= i >> 2
	i |= i >> 4
	i |= i >> 8
	i |= i >> 16
	i |= i >> 32
	return i + 1
}

func (q *Queue[T]) IsEmpty() bool {
	return q.size == 0
}

func (q *Queue[T]) Size() int {
	return q.size
}

func (q *Queue[T]) Clear() {
	q.start = 0
	q.end = 0
	q.size = 0
}

func (q *Queue[T]) Push(elem T) {
	if q.size == len(q.ring) {
		q.resize()
	}
	q.ring[q.end] = elem
	q.end = (q.end + 1) & q.mask
	q.size++
}

// resize doubles the capacity of the ring and moves the queue's elements at
// the beginning of the new ring.
func (q *Queue[T]) resize() {
	newRing := make([]T, len(q.ring)*2)
	if q.start == 0 {
		copy(newRing, q.ring)
	} else {
		l := len(q.ring) - q.start
		copy(newRing[:l], q.ring[q.start:])
		copy(newRing[l:], q.ring[:q.end])
	}
	q.start = 0
	q.end = q.size
	q.ring = newRing
	q.mask = len(newRing) - 1
}

// Pop removes and returns the oldest element of the queue. It panics if the
// queue is empty.
func (q *Queue[T]) Pop() T {
	if q.size == 0 {
		panic("pop on an empty queue")
	}
	elem := q.ring[q.start]
	q.start = (q.start + 1) & q.mask
	q.size--
	return elem
}

func (q *Queue[T]) String() string {
	if q.IsEmpty() {
		return "Queue[]"
	}
	sb := strings.Builder{}
	sb.WriteString("Queue[")
	sb.WriteString(fmt.Sprintf("%v", q.ring[q.start]))
	for i := 1; i < q.Size(); i++ {
		p := (q.start + i) & q.mask
		sb.WriteString(fmt.Sprintf(" %v", q.ring[p]))
	}
	sb.WriteByte(']')
	return sb.String()
}
