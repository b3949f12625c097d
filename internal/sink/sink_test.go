package sink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourtionguo/codegraf/internal/model"
)

func TestBatchNodes(t *testing.T) {
	nodes := make([]model.GraphNode, 1201)
	batches := BatchNodes(nodes, 500)

	assert.Len(t, batches, 3)
	assert.Len(t, batches[0], 500)
	assert.Len(t, batches[1], 500)
	assert.Len(t, batches[2], 201)
}

func TestBatchNodes_DefaultSize(t *testing.T) {
	nodes := make([]model.GraphNode, 10)
	batches := BatchNodes(nodes, 0)
	assert.Len(t, batches, 1)
	assert.Len(t, batches[0], 10)
}

func TestBatchEdges_Empty(t *testing.T) {
	assert.Nil(t, BatchEdges(nil, 500))
}
