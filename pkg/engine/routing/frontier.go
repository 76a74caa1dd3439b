package routing

import (
	da "github.com/lintang-b-s/osmroute/pkg/datastructure"
)

// frontier of partial paths. pop returns the entry with the smallest priority,
// the earliest pushed one among equal priorities.
type frontier[T comparable] interface {
	push(p *partialPath[T], priority float64)
	pop() *partialPath[T]
	size() int
}

type heapFrontier[T comparable] struct {
	pq *da.MinHeap[*partialPath[T]]
}

func newHeapFrontier[T comparable](capacity int) *heapFrontier[T] {
	pq := da.NewBinaryHeap[*partialPath[T]]()
	if capacity > 0 {
		pq.Preallocate(capacity)
	}
	return &heapFrontier[T]{pq: pq}
}

func (f *heapFrontier[T]) push(p *partialPath[T], priority float64) {
	f.pq.Insert(da.NewPriorityQueueNode(priority, p))
}

func (f *heapFrontier[T]) pop() *partialPath[T] {
	node, err := f.pq.ExtractMin()
	if err != nil {
		return nil
	}
	return node.GetItem()
}

func (f *heapFrontier[T]) size() int {
	return f.pq.Size()
}

type agendaEntry[T comparable] struct {
	path     *partialPath[T]
	priority float64
}

// linearFrontier keeps entries in push order and scans all of them on every pop.
type linearFrontier[T comparable] struct {
	agenda []agendaEntry[T]
}

func newLinearFrontier[T comparable]() *linearFrontier[T] {
	return &linearFrontier[T]{agenda: make([]agendaEntry[T], 0)}
}

func (f *linearFrontier[T]) push(p *partialPath[T], priority float64) {
	f.agenda = append(f.agenda, agendaEntry[T]{path: p, priority: priority})
}

func (f *linearFrontier[T]) pop() *partialPath[T] {
	if len(f.agenda) == 0 {
		return nil
	}
	minIdx := 0
	for i := 1; i < len(f.agenda); i++ {
		if f.agenda[i].priority < f.agenda[minIdx].priority {
			minIdx = i
		}
	}
	p := f.agenda[minIdx].path
	copy(f.agenda[minIdx:], f.agenda[minIdx+1:])
	f.agenda[len(f.agenda)-1] = agendaEntry[T]{}
	f.agenda = f.agenda[:len(f.agenda)-1]
	return p
}

func (f *linearFrontier[T]) size() int {
	return len(f.agenda)
}
