// Package container provides the comparator driven priority queue used by
// the schedulers.
package container

import "container/heap"

// Less reports whether a must be removed before b.
type Less[T any] func(a, b T) bool

type entry[T any] struct {
	item T
	seq  uint64
}

// PriorityQueue removes items in the order defined by its Less function.
// Items that compare equal leave in the order they were added.
type PriorityQueue[T any] struct {
	h   entries[T]
	seq uint64
}

// NewPriorityQueue returns an empty queue ordered by less.
func NewPriorityQueue[T any](less func(a, b T) bool) *PriorityQueue[T] {
	return &PriorityQueue[T]{h: entries[T]{less: less}}
}

// Add inserts item.
func (q *PriorityQueue[T]) Add(item T) {
	heap.Push(&q.h, entry[T]{item: item, seq: q.seq})
	q.seq++
}

// Remove pops the highest priority item. ok is false when the queue is
// empty.
func (q *PriorityQueue[T]) Remove() (item T, ok bool) {
	if len(q.h.items) == 0 {
		return item, false
	}
	e := heap.Pop(&q.h).(entry[T])
	return e.item, true
}

// Peek returns the highest priority item without removing it.
func (q *PriorityQueue[T]) Peek() (item T, ok bool) {
	if len(q.h.items) == 0 {
		return item, false
	}
	return q.h.items[0].item, true
}

func (q *PriorityQueue[T]) IsEmpty() bool { return len(q.h.items) == 0 }

func (q *PriorityQueue[T]) Len() int { return len(q.h.items) }

// entries adapts the queue to container/heap.
type entries[T any] struct {
	items []entry[T]
	less  Less[T]
}

func (e entries[T]) Len() int { return len(e.items) }

func (e entries[T]) Less(i, j int) bool {
	a, b := e.items[i], e.items[j]
	if e.less(a.item, b.item) {
		return true
	}
	if e.less(b.item, a.item) {
		return false
	}
	return a.seq < b.seq
}

func (e entries[T]) Swap(i, j int) { e.items[i], e.items[j] = e.items[j], e.items[i] }

func (e *entries[T]) Push(x any) { e.items = append(e.items, x.(entry[T])) }

func (e *entries[T]) Pop() any {
	old := e.items
	n := len(old)
	it := old[n-1]
	var zero entry[T]
	old[n-1] = zero
	e.items = old[:n-1]
	return it
}
