// Package memory provides the in-process Graph Store that owns the canvas
// snapshot.
package memory

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/canvas"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/shared"
)

// Transform maps a snapshot to its successor. Returning false means nothing
// changed and no new version is published.
type Transform func(canvas.Snapshot) (canvas.Snapshot, bool)

// Listener receives every published snapshot.
type Listener func(canvas.Snapshot)

// GraphStore holds the canonical canvas snapshot. Mutations are serialized;
// each one reads the latest snapshot, publishes its successor and then
// notifies listeners in commit order. Listeners must not mutate the store.
type GraphStore struct {
	writeMu sync.Mutex

	mu   sync.RWMutex
	snap canvas.Snapshot

	listenersMu sync.RWMutex
	listeners   map[int]Listener
	nextID      int

	ids    shared.IDGenerator
	logger *zap.Logger
}

// NewGraphStore creates an empty store using ids for every new identifier.
func NewGraphStore(ids shared.IDGenerator, logger *zap.Logger) *GraphStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GraphStore{
		snap:      canvas.EmptySnapshot(),
		listeners: make(map[int]Listener),
		ids:       ids,
		logger:    logger,
	}
}

// Snapshot returns the current immutable snapshot.
func (s *GraphStore) Snapshot() canvas.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// NextID returns a fresh identifier with the given prefix.
func (s *GraphStore) NextID(prefix string) string {
	return s.ids.NewID(prefix)
}

// IDs exposes the injected generator to pure transforms.
func (s *GraphStore) IDs() shared.IDGenerator {
	return s.ids
}

// Update runs fn against the latest snapshot and publishes the result when
// fn reports a change. It returns the snapshot current after the call.
func (s *GraphStore) Update(fn Transform) (canvas.Snapshot, bool) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cur := s.Snapshot()
	next, changed := fn(cur)
	if !changed {
		return cur, false
	}
	next.Version = cur.Version + 1
	if next.Nodes == nil {
		next.Nodes = []canvas.Node{}
	}
	if next.Edges == nil {
		next.Edges = []canvas.Edge{}
	}

	s.mu.Lock()
	s.snap = next
	s.mu.Unlock()

	s.notify(next)
	return next, true
}

// Apply runs an atomic node and edge transform that always commits.
func (s *GraphStore) Apply(fn func(canvas.Snapshot) canvas.Snapshot) canvas.Snapshot {
	next, _ := s.Update(func(cur canvas.Snapshot) (canvas.Snapshot, bool) {
		return fn(cur), true
	})
	return next
}

// AddNode appends a node.
func (s *GraphStore) AddNode(n canvas.Node) {
	s.Apply(func(cur canvas.Snapshot) canvas.Snapshot {
		return cur.WithNodes(append(append([]canvas.Node(nil), cur.Nodes...), n))
	})
}

// UpdateNodeData merges patch into the strategic payload of id. Missing or
// non-strategic nodes are ignored.
func (s *GraphStore) UpdateNodeData(id string, patch canvas.NodePatch) bool {
	_, changed := s.Update(func(cur canvas.Snapshot) (canvas.Snapshot, bool) {
		n, ok := cur.Node(id)
		if !ok || !n.IsStrategic() {
			s.logger.Debug("update of unknown node ignored", zap.String("node_id", id))
			return cur, false
		}
		return cur.MapNode(id, func(n *canvas.Node) { patch.ApplyTo(n.Strategic) })
	})
	return changed
}

// UpdateLaneData merges patch into the lane id.
func (s *GraphStore) UpdateLaneData(id string, patch canvas.LanePatch) bool {
	_, changed := s.Update(func(cur canvas.Snapshot) (canvas.Snapshot, bool) {
		n, ok := cur.Node(id)
		if !ok || !n.IsLane() {
			s.logger.Debug("update of unknown lane ignored", zap.String("lane_id", id))
			return cur, false
		}
		return cur.MapNode(id, func(n *canvas.Node) { patch.ApplyTo(n) })
	})
	return changed
}

// SetNodes replaces the node list with fn applied to a copy of it. Edges and
// ghosts left without their nodes are dropped in the same commit.
func (s *GraphStore) SetNodes(fn func([]canvas.Node) []canvas.Node) {
	s.Apply(func(cur canvas.Snapshot) canvas.Snapshot {
		return cur.WithNodes(fn(append([]canvas.Node(nil), cur.Nodes...))).Reconcile(cur)
	})
}

// SetEdges replaces the edge list with fn applied to a copy of it. Edges
// whose endpoints are not present are discarded.
func (s *GraphStore) SetEdges(fn func([]canvas.Edge) []canvas.Edge) {
	s.Apply(func(cur canvas.Snapshot) canvas.Snapshot {
		return cur.WithEdges(fn(append([]canvas.Edge(nil), cur.Edges...))).Reconcile(cur)
	})
}

// RemoveNode deletes a node with its incident edges and ghosts. Lane members
// move to the top level.
func (s *GraphStore) RemoveNode(id string) bool {
	_, changed := s.Update(func(cur canvas.Snapshot) (canvas.Snapshot, bool) {
		return cur.WithoutNode(id)
	})
	return changed
}

// Replace swaps in a whole new graph.
func (s *GraphStore) Replace(nodes []canvas.Node, edges []canvas.Edge) canvas.Snapshot {
	return s.Apply(func(cur canvas.Snapshot) canvas.Snapshot {
		return canvas.Snapshot{
			Nodes:   append([]canvas.Node(nil), nodes...),
			Edges:   append([]canvas.Edge(nil), edges...),
			Version: cur.Version,
		}
	})
}

// Subscribe registers l and returns a function that removes it.
func (s *GraphStore) Subscribe(l Listener) func() {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.listenersMu.Unlock()

	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

func (s *GraphStore) notify(snap canvas.Snapshot) {
	s.listenersMu.RLock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	s.listenersMu.RUnlock()

	sort.Ints(ids)
	for _, id := range ids {
		s.listenersMu.RLock()
		l, ok := s.listeners[id]
		s.listenersMu.RUnlock()
		if ok {
			l(snap)
		}
	}
}
