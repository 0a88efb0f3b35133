package theory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPQueueExtractsAscending(t *testing.T) {
	priority := []float64{5, 1, 4, 2, 3}
	q := newPQueue(priority, math.Inf(1))
	for v := range priority {
		q.insert(Vertex(v))
	}

	var order []Vertex
	for !q.empty() {
		order = append(order, q.extractMin())
	}

	assert.Equal(t, []Vertex{1, 3, 4, 2, 0}, order)
}

func TestPQueueInsertOrDecrease(t *testing.T) {
	priority := []float64{10, 10}
	q := newPQueue(priority, math.Inf(1))
	q.insert(0)
	q.insert(1)

	priority[1] = 1
	q.insertOrDecrease(1)

	assert.Equal(t, Vertex(1), q.extractMin())
	assert.Equal(t, Vertex(0), q.extractMin())
}

func TestPQueuePeekPriorityCutoffWhenAbsent(t *testing.T) {
	priority := []float64{3, 4}
	q := newPQueue(priority, math.Inf(1))
	assert.Equal(t, math.Inf(1), q.peekPriority(0))

	q.insert(0)
	assert.Equal(t, float64(3), q.peekPriority(0))
	assert.False(t, q.contains(1))
}
