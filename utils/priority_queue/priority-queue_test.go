package priority_queue_test

import (
	"testing"

	"github.com/named-data/inrpp/utils/priority_queue"
	"github.com/stretchr/testify/assert"
)

func TestBasics(t *testing.T) {
	q := priority_queue.New[int, int]()
	assert.Equal(t, 0, q.Len())
	q.Push(1, 1)
	q.Push(2, 3)
	q.Push(3, 2)
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, 1, q.Peek())
	assert.Equal(t, 1, q.PeekPriority())
	assert.Equal(t, 1, q.Pop())
	assert.Equal(t, 3, q.Pop())
	assert.Equal(t, 2, q.Pop())
	assert.Equal(t, 0, q.Len())
}

func TestEqualPriorityFifo(t *testing.T) {
	q := priority_queue.New[string, int64]()
	q.Push("a", 5)
	q.Push("b", 5)
	q.Push("early", 1)
	q.Push("c", 5)
	assert.Equal(t, "early", q.Pop())
	assert.Equal(t, "a", q.Pop())
	assert.Equal(t, "b", q.Pop())
	assert.Equal(t, "c", q.Pop())
}
