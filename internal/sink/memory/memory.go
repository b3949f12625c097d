// Package memory is an in-process GraphSink used by pipeline tests and
// the `codegraf index --dry-run` path, standing in for a real store
// without requiring postgres.
package memory

import (
	"context"
	"sync"

	"github.com/yourtionguo/codegraf/internal/model"
)

type Sink struct {
	mu    sync.Mutex
	nodes map[string]model.GraphNode
	edges map[string]model.GraphEdge
}

func New() *Sink {
	return &Sink{
		nodes: make(map[string]model.GraphNode),
		edges: make(map[string]model.GraphEdge),
	}
}

func (s *Sink) UpsertNodes(ctx context.Context, batch []model.GraphNode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range batch {
		s.nodes[n.Fqn] = n
	}
	return nil
}

func (s *Sink) UpsertEdges(ctx context.Context, batch []model.GraphEdge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range batch {
		s.edges[edgeKey(e)] = e
	}
	return nil
}

func edgeKey(e model.GraphEdge) string {
	return e.SourceFqn + "\x00" + e.TargetFqn + "\x00" + string(e.Kind)
}

func (s *Sink) Close() error { return nil }

func (s *Sink) Nodes() []model.GraphNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.GraphNode, 0, len(s.nodes))
	for _, n := range s.nodes {
		out = append(out, n)
	}
	return out
}

func (s *Sink) Edges() []model.GraphEdge {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.GraphEdge, 0, len(s.edges))
	for _, e := range s.edges {
		out = append(out, e)
	}
	return out
}

func (s *Sink) NodeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.nodes)
}

func (s *Sink) EdgeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.edges)
}
