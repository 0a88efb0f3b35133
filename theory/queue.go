package theory

// A mutable min-priority map from vertex id to a float64 priority,
// supporting insert-or-decrease-key and extract-min. Strongly inspired by
// gophersat's solver.queue (itself inspired by Minisat's mtl/Heap.h), but
// keyed on a float64 distance/gamma array rather than variable activity,
// and ordered ascending rather than descending. extractMin removes a vertex
// from the heap; cutoff is only the priority peekPriority reports for a
// vertex not in the heap, and a vertex whose priority equals cutoff is not
// treated as absent.
type pqueue struct {
	priority []float64 // shared with the caller; this type never mutates it
	cutoff   float64   // priority value meaning "not really in the queue"
	content  []Vertex
	indices  []int // indices[v] = position of v in content, or -1 if absent
}

func newPQueue(priority []float64, cutoff float64) *pqueue {
	q := &pqueue{
		priority: priority,
		cutoff:   cutoff,
		indices:  make([]int, len(priority)),
	}
	for i := range q.indices {
		q.indices[i] = -1
	}
	return q
}

func (q *pqueue) less(a, b Vertex) bool { return q.priority[a] < q.priority[b] }

func pqLeft(i int) int   { return i*2 + 1 }
func pqRight(i int) int  { return (i + 1) * 2 }
func pqParent(i int) int { return (i - 1) >> 1 }

func (q *pqueue) percolateUp(i int) {
	x := q.content[i]
	p := pqParent(i)
	for i != 0 && q.less(x, q.content[p]) {
		q.content[i] = q.content[p]
		q.indices[q.content[p]] = i
		i = p
		p = pqParent(p)
	}
	q.content[i] = x
	q.indices[x] = i
}

func (q *pqueue) percolateDown(i int) {
	x := q.content[i]
	for pqLeft(i) < len(q.content) {
		child := pqLeft(i)
		if r := pqRight(i); r < len(q.content) && q.less(q.content[r], q.content[child]) {
			child = r
		}
		if !q.less(q.content[child], x) {
			break
		}
		q.content[i] = q.content[child]
		q.indices[q.content[i]] = i
		i = child
	}
	q.content[i] = x
	q.indices[x] = i
}

func (q *pqueue) empty() bool { return len(q.content) == 0 }

func (q *pqueue) contains(v Vertex) bool {
	return int(v) < len(q.indices) && q.indices[v] >= 0
}

func (q *pqueue) insert(v Vertex) {
	q.indices[v] = len(q.content)
	q.content = append(q.content, v)
	q.percolateUp(q.indices[v])
}

// insertOrDecrease inserts v if it is absent, or re-heapifies it after
// priority[v] has already been lowered by the caller.
func (q *pqueue) insertOrDecrease(v Vertex) {
	if q.contains(v) {
		q.percolateUp(q.indices[v])
	} else {
		q.insert(v)
	}
}

// extractMin removes and returns the vertex with the lowest priority.
func (q *pqueue) extractMin() Vertex {
	x := q.content[0]
	last := len(q.content) - 1
	q.content[0] = q.content[last]
	q.indices[q.content[0]] = 0
	q.indices[x] = -1
	q.content = q.content[:last]
	if len(q.content) > 1 {
		q.percolateDown(0)
	}
	return x
}

// peekPriority returns priority[v] if v is currently in the queue, or the
// cutoff value otherwise -- the queue's notion of "not in the queue".
func (q *pqueue) peekPriority(v Vertex) float64 {
	if !q.contains(v) {
		return q.cutoff
	}
	return q.priority[v]
}
