// Package sink defines the write-only graph sink boundary (spec §4.7):
// a batched, idempotent-upsert contract the orchestrator writes through
// after extraction, resolution, and domain inference. Storage semantics
// are opaque to the rest of the pipeline; internal/sink/postgres is the
// reference implementation.
package sink

import (
	"context"

	"github.com/yourtionguo/codegraf/internal/model"
)

// DefaultBatchSize is the sink's default upsert batch size (spec §4.7).
const DefaultBatchSize = 500

// GraphSink is the orchestrator's only way to persist a batch's results.
// Implementations must tolerate duplicate upserts — the orchestrator
// retries a failed batch exactly once and will re-send nodes/edges that
// already landed.
type GraphSink interface {
	UpsertNodes(ctx context.Context, batch []model.GraphNode) error
	UpsertEdges(ctx context.Context, batch []model.GraphEdge) error
	Close() error
}

// BatchNodes splits nodes into chunks of at most size, the shape both
// UpsertNodes and UpsertEdges callers use to respect a sink's configured
// batch size.
func BatchNodes(nodes []model.GraphNode, size int) [][]model.GraphNode {
	if size <= 0 {
		size = DefaultBatchSize
	}
	var out [][]model.GraphNode
	for i := 0; i < len(nodes); i += size {
		end := i + size
		if end > len(nodes) {
			end = len(nodes)
		}
		out = append(out, nodes[i:end])
	}
	return out
}

func BatchEdges(edges []model.GraphEdge, size int) [][]model.GraphEdge {
	if size <= 0 {
		size = DefaultBatchSize
	}
	var out [][]model.GraphEdge
	for i := 0; i < len(edges); i += size {
		end := i + size
		if end > len(edges) {
			end = len(edges)
		}
		out = append(out, edges[i:end])
	}
	return out
}
