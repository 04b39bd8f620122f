// Package services orchestrates canvas gestures: each gesture resolves the
// domain transforms it needs and commits them to the Graph Store as one
// snapshot-to-snapshot update, then applies the resulting selection.
package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/notifications"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/application/seed"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/canvas"
	domainconfig "github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/config"
	domain "github.com/NewJerseyStyle/TheBlueprint-Project/internal/domain/services"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/infrastructure/memory"
	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/infrastructure/observability"
)

// Outcome reports what a gesture did.
type Outcome struct {
	Changed  bool
	NodeID   string
	GhostIDs []string
	Snapshot canvas.Snapshot
}

// engine bundles the domain services built from one DomainConfig.
type engine struct {
	cfg         domainconfig.DomainConfig
	geometry    *domain.GeometryResolver
	transitions *domain.StateTransitionManager
	editor      *domain.Editor
	ghosts      *domain.GhostLifecycleManager
	suggestions *domain.SuggestionEngine
	lookahead   *domain.LookaheadEvaluator
}

func newEngine(cfg domainconfig.DomainConfig, catalog domain.SuggestionCatalog) *engine {
	geometry := domain.NewGeometryResolver(cfg.Geometry)
	transitions := domain.NewStateTransitionManager()
	return &engine{
		cfg:         cfg,
		geometry:    geometry,
		transitions: transitions,
		editor:      domain.NewEditor(geometry, transitions, cfg),
		ghosts:      domain.NewGhostLifecycleManager(geometry),
		suggestions: domain.NewSuggestionEngine(catalog, geometry),
		lookahead:   domain.NewLookaheadEvaluator(cfg.Lookahead.MaxDepth),
	}
}

// CanvasService is the single entry point for canvas gestures.
type CanvasService struct {
	store    *memory.GraphStore
	catalog  domain.SuggestionCatalog
	engine   atomic.Pointer[engine]
	users    *notifications.StaticDirectory
	inbox    *notifications.Inbox
	comments *notifications.CommentNotifier
	recorder observability.MutationRecorder
	logger   *zap.Logger
	now      func() time.Time

	// gestureMu keeps a commit and its selection change together.
	gestureMu sync.Mutex
	selected  string
}

// NewCanvasService wires the domain services around store.
func NewCanvasService(
	store *memory.GraphStore,
	cfg domainconfig.DomainConfig,
	catalog domain.SuggestionCatalog,
	inbox *notifications.Inbox,
	recorder observability.MutationRecorder,
	logger *zap.Logger,
) *CanvasService {
	if catalog == nil {
		catalog = domain.DefaultCatalog{}
	}
	if recorder == nil {
		recorder = observability.NopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &CanvasService{
		store:    store,
		catalog:  catalog,
		users:    notifications.NewStaticDirectory(nil),
		inbox:    inbox,
		recorder: recorder,
		logger:   logger.Named("canvas"),
		now:      time.Now,
	}
	s.engine.Store(newEngine(cfg, catalog))
	s.comments = notifications.NewCommentNotifier(s.users, inbox, store.IDs(), s.logger)
	store.Subscribe(recorder.ObserveSnapshot)
	return s
}

// WithClock replaces the time source used for comments and notifications.
func (s *CanvasService) WithClock(now func() time.Time) *CanvasService {
	s.now = now
	s.comments.WithClock(now)
	return s
}

// Reconfigure swaps the geometry and lookahead settings for later gestures.
func (s *CanvasService) Reconfigure(cfg domainconfig.DomainConfig) {
	s.engine.Store(newEngine(cfg, s.catalog))
	s.logger.Info("Domain configuration applied",
		zap.Int("lookahead_max_depth", cfg.Lookahead.MaxDepth),
	)
}

func (s *CanvasService) eng() *engine { return s.engine.Load() }

// Snapshot returns the current canvas.
func (s *CanvasService) Snapshot() canvas.Snapshot { return s.store.Snapshot() }

// Selected returns the selected node id, or "" when nothing is selected.
func (s *CanvasService) Selected() string {
	s.gestureMu.Lock()
	defer s.gestureMu.Unlock()
	return s.selected
}

// Users returns the known participants.
func (s *CanvasService) Users() []notifications.User { return s.users.All() }

// Inbox returns the notification inbox.
func (s *CanvasService) Inbox() *notifications.Inbox { return s.inbox }

// Subscribe registers a listener for committed snapshots.
func (s *CanvasService) Subscribe(l memory.Listener) func() { return s.store.Subscribe(l) }

// commit runs fn in the store and logs no-ops. Callers hold gestureMu.
func (s *CanvasService) commit(ctx context.Context, op string, fn memory.Transform) (canvas.Snapshot, bool) {
	snap, changed := s.store.Update(fn)
	if !changed {
		s.logger.Debug("gesture had no effect", zap.String("operation", op))
	} else if s.selected != "" {
		if _, ok := snap.Node(s.selected); !ok {
			s.selected = ""
		}
	}
	return snap, changed
}

// ============================================================================
// GHOST EXPLORATION
// ============================================================================

// ExploreSuggestions replaces any ghosts with the suggestions for sourceID.
func (s *CanvasService) ExploreSuggestions(ctx context.Context, sourceID string) Outcome {
	return s.materialize(ctx, "ExploreSuggestions", sourceID, nil)
}

// DropConnection handles a connection dropped on empty canvas: ghosts appear
// at the drop point, given in absolute canvas coordinates.
func (s *CanvasService) DropConnection(ctx context.Context, sourceID string, at canvas.Point) Outcome {
	return s.materialize(ctx, "DropConnection", sourceID, &at)
}

func (s *CanvasService) materialize(ctx context.Context, op, sourceID string, drop *canvas.Point) Outcome {
	s.gestureMu.Lock()
	defer s.gestureMu.Unlock()

	e := s.eng()
	var ghostIDs []string
	snap, changed := s.commit(ctx, op, func(cur canvas.Snapshot) (canvas.Snapshot, bool) {
		source, ok := cur.Node(sourceID)
		var suggestions []domain.Suggestion
		if ok {
			suggestions = e.suggestions.Generate(source, cur.Nodes)
		}
		var next canvas.Snapshot
		next, ghostIDs = e.ghosts.Materialize(cur, sourceID, suggestions, drop, s.store.IDs())
		return next, len(ghostIDs) > 0 || len(next.Nodes) != len(cur.Nodes)
	})
	if len(ghostIDs) > 0 {
		s.recorder.GhostsMaterialized(len(ghostIDs))
	}
	return Outcome{Changed: changed, GhostIDs: ghostIDs, Snapshot: snap}
}

// ClearGhosts removes every ghost and provisional edge.
func (s *CanvasService) ClearGhosts(ctx context.Context) Outcome {
	s.gestureMu.Lock()
	defer s.gestureMu.Unlock()
	snap, changed := s.commit(ctx, "ClearGhosts", s.eng().ghosts.Clear)
	return Outcome{Changed: changed, Snapshot: snap}
}

// RealizeGhost commits a ghost and selects it.
func (s *CanvasService) RealizeGhost(ctx context.Context, ghostID string) Outcome {
	s.gestureMu.Lock()
	defer s.gestureMu.Unlock()
	return s.realize(ctx, ghostID)
}

func (s *CanvasService) realize(ctx context.Context, ghostID string) Outcome {
	e := s.eng()
	snap, changed := s.commit(ctx, "RealizeGhost", func(cur canvas.Snapshot) (canvas.Snapshot, bool) {
		return e.ghosts.Realize(cur, ghostID, s.store.IDs())
	})
	if !changed {
		return Outcome{Snapshot: snap}
	}
	s.selected = ghostID
	s.recorder.GhostRealized()
	return Outcome{Changed: true, NodeID: ghostID, Snapshot: snap}
}

// ============================================================================
// SELECTION
// ============================================================================

// SelectNode selects a node. Selecting a ghost realizes it; selecting
// anything else clears the ghosts.
func (s *CanvasService) SelectNode(ctx context.Context, nodeID string) Outcome {
	s.gestureMu.Lock()
	defer s.gestureMu.Unlock()

	if n, ok := s.store.Snapshot().Node(nodeID); ok && n.IsGhost() {
		return s.realize(ctx, nodeID)
	}
	return s.selectAndClear(ctx, "SelectNode", nodeID)
}

// ClickPane deselects and clears the ghosts.
func (s *CanvasService) ClickPane(ctx context.Context) Outcome {
	s.gestureMu.Lock()
	defer s.gestureMu.Unlock()
	return s.selectAndClear(ctx, "ClickPane", "")
}

// OpenContextMenu selects the node the menu was opened on and clears ghosts.
func (s *CanvasService) OpenContextMenu(ctx context.Context, nodeID string) Outcome {
	s.gestureMu.Lock()
	defer s.gestureMu.Unlock()
	return s.selectAndClear(ctx, "OpenContextMenu", nodeID)
}

// Focus changes the selection without touching the graph, for callers that
// may look but not edit. Ghosts and unknown ids select nothing.
func (s *CanvasService) Focus(nodeID string) Outcome {
	s.gestureMu.Lock()
	defer s.gestureMu.Unlock()

	snap := s.store.Snapshot()
	if nodeID != "" {
		if n, ok := snap.Node(nodeID); !ok || n.IsGhost() {
			nodeID = ""
		}
	}
	s.selected = nodeID
	return Outcome{NodeID: nodeID, Snapshot: snap}
}

func (s *CanvasService) selectAndClear(ctx context.Context, op, nodeID string) Outcome {
	snap, changed := s.commit(ctx, op, s.eng().ghosts.Clear)
	if nodeID != "" {
		if _, ok := snap.Node(nodeID); !ok {
			nodeID = ""
		}
	}
	s.selected = nodeID
	return Outcome{Changed: changed, NodeID: nodeID, Snapshot: snap}
}

// ============================================================================
// GRAPH EDITING
// ============================================================================

// ChangeState moves a node to state and rewrites its incident edges.
func (s *CanvasService) ChangeState(ctx context.Context, nodeID string, state canvas.NodeState) Outcome {
	s.gestureMu.Lock()
	defer s.gestureMu.Unlock()

	e := s.eng()
	snap, changed := s.commit(ctx, "ChangeState", func(cur canvas.Snapshot) (canvas.Snapshot, bool) {
		return e.transitions.Apply(cur, nodeID, state)
	})
	if changed {
		s.recorder.StateTransition(state)
	}
	return Outcome{Changed: changed, NodeID: nodeID, Snapshot: snap}
}

// ArchiveNode moves a node to history.
func (s *CanvasService) ArchiveNode(ctx context.Context, nodeID string) Outcome {
	return s.ChangeState(ctx, nodeID, canvas.StateHistory)
}

// AddChild creates a committed child and selects it.
func (s *CanvasService) AddChild(ctx context.Context, parentID string, state canvas.NodeState, title string) Outcome {
	s.gestureMu.Lock()
	defer s.gestureMu.Unlock()

	e := s.eng()
	var childID string
	snap, changed := s.commit(ctx, "AddChild", func(cur canvas.Snapshot) (canvas.Snapshot, bool) {
		var next canvas.Snapshot
		var ok bool
		next, childID, ok = e.editor.AddChild(cur, parentID, state, title, s.store.IDs())
		return next, ok
	})
	if changed {
		s.selected = childID
	}
	return Outcome{Changed: changed, NodeID: childID, Snapshot: snap}
}

// Connect adds a user-drawn edge.
func (s *CanvasService) Connect(ctx context.Context, sourceID, targetID, sourceHandle, targetHandle string) Outcome {
	s.gestureMu.Lock()
	defer s.gestureMu.Unlock()

	e := s.eng()
	snap, changed := s.commit(ctx, "Connect", func(cur canvas.Snapshot) (canvas.Snapshot, bool) {
		return e.editor.Connect(cur, sourceID, targetID, sourceHandle, targetHandle, s.store.IDs())
	})
	return Outcome{Changed: changed, Snapshot: snap}
}

// DuplicateNode copies a node next to itself.
func (s *CanvasService) DuplicateNode(ctx context.Context, nodeID string) Outcome {
	s.gestureMu.Lock()
	defer s.gestureMu.Unlock()

	e := s.eng()
	var dupID string
	snap, changed := s.commit(ctx, "DuplicateNode", func(cur canvas.Snapshot) (canvas.Snapshot, bool) {
		var next canvas.Snapshot
		var ok bool
		next, dupID, ok = e.editor.Duplicate(cur, nodeID, s.store.IDs())
		return next, ok
	})
	return Outcome{Changed: changed, NodeID: dupID, Snapshot: snap}
}

// DragNode applies a drag-end position in the node's current frame.
func (s *CanvasService) DragNode(ctx context.Context, nodeID string, position canvas.Point) Outcome {
	s.gestureMu.Lock()
	defer s.gestureMu.Unlock()

	e := s.eng()
	snap, changed := s.commit(ctx, "DragNode", func(cur canvas.Snapshot) (canvas.Snapshot, bool) {
		return e.editor.Drag(cur, nodeID, position)
	})
	return Outcome{Changed: changed, NodeID: nodeID, Snapshot: snap}
}

// AddRootNode creates a toolbar begin or goal node.
func (s *CanvasService) AddRootNode(ctx context.Context, state canvas.NodeState, at canvas.Point) Outcome {
	s.gestureMu.Lock()
	defer s.gestureMu.Unlock()

	e := s.eng()
	var id string
	snap, changed := s.commit(ctx, "AddRootNode", func(cur canvas.Snapshot) (canvas.Snapshot, bool) {
		var next canvas.Snapshot
		var ok bool
		next, id, ok = e.editor.AddRoot(cur, state, at, s.store.IDs())
		return next, ok
	})
	return Outcome{Changed: changed, NodeID: id, Snapshot: snap}
}

// AddLane creates a toolbar swim lane.
func (s *CanvasService) AddLane(ctx context.Context, at canvas.Point) Outcome {
	s.gestureMu.Lock()
	defer s.gestureMu.Unlock()

	e := s.eng()
	var id string
	snap, changed := s.commit(ctx, "AddLane", func(cur canvas.Snapshot) (canvas.Snapshot, bool) {
		var next canvas.Snapshot
		next, id = e.editor.AddLane(cur, at, s.store.IDs())
		return next, true
	})
	return Outcome{Changed: changed, NodeID: id, Snapshot: snap}
}

// UpdateNode merges a detail-panel edit into a node.
func (s *CanvasService) UpdateNode(ctx context.Context, nodeID string, patch canvas.NodePatch) Outcome {
	s.gestureMu.Lock()
	defer s.gestureMu.Unlock()

	e := s.eng()
	snap, changed := s.commit(ctx, "UpdateNode", func(cur canvas.Snapshot) (canvas.Snapshot, bool) {
		return e.editor.Update(cur, nodeID, patch)
	})
	if changed && patch.State != nil {
		s.recorder.StateTransition(*patch.State)
	}
	return Outcome{Changed: changed, NodeID: nodeID, Snapshot: snap}
}

// UpdateLane merges an edit into a lane.
func (s *CanvasService) UpdateLane(ctx context.Context, laneID string, patch canvas.LanePatch) Outcome {
	s.gestureMu.Lock()
	defer s.gestureMu.Unlock()

	changed := s.store.UpdateLaneData(laneID, patch)
	if !changed {
		s.logger.Debug("gesture had no effect", zap.String("operation", "UpdateLane"))
	}
	return Outcome{Changed: changed, NodeID: laneID, Snapshot: s.store.Snapshot()}
}

// ToggleNextSmallGoal flips the next-small-goal emphasis.
func (s *CanvasService) ToggleNextSmallGoal(ctx context.Context, nodeID string) Outcome {
	return s.toggle(ctx, "ToggleNextSmallGoal", nodeID, (*domain.Editor).ToggleNextSmallGoal)
}

// ToggleSuggestions flips the forced suggestion hint.
func (s *CanvasService) ToggleSuggestions(ctx context.Context, nodeID string) Outcome {
	return s.toggle(ctx, "ToggleSuggestions", nodeID, (*domain.Editor).ToggleSuggestions)
}

// ToggleLaneComments flips a lane's comment view.
func (s *CanvasService) ToggleLaneComments(ctx context.Context, laneID string) Outcome {
	return s.toggle(ctx, "ToggleLaneComments", laneID, (*domain.Editor).ToggleLaneComments)
}

func (s *CanvasService) toggle(ctx context.Context, op, id string, fn func(*domain.Editor, canvas.Snapshot, string) (canvas.Snapshot, bool)) Outcome {
	s.gestureMu.Lock()
	defer s.gestureMu.Unlock()

	e := s.eng()
	snap, changed := s.commit(ctx, op, func(cur canvas.Snapshot) (canvas.Snapshot, bool) {
		return fn(e.editor, cur, id)
	})
	return Outcome{Changed: changed, NodeID: id, Snapshot: snap}
}

// RemoveNode deletes a node with its incident edges and ghost children. A
// removed lane releases its members to the top level.
func (s *CanvasService) RemoveNode(ctx context.Context, nodeID string) Outcome {
	s.gestureMu.Lock()
	defer s.gestureMu.Unlock()

	changed := s.store.RemoveNode(nodeID)
	if !changed {
		s.logger.Debug("gesture had no effect", zap.String("operation", "RemoveNode"))
	}
	if s.selected == nodeID {
		s.selected = ""
	}
	return Outcome{Changed: changed, NodeID: nodeID, Snapshot: s.store.Snapshot()}
}

// ============================================================================
// COMMENTS
// ============================================================================

// AddComment appends a comment by authorID and raises mention and thread
// notifications. currentUserID is the user operating the canvas.
func (s *CanvasService) AddComment(ctx context.Context, nodeID, authorID, currentUserID, text string) (Outcome, []notifications.Notification, error) {
	s.gestureMu.Lock()
	defer s.gestureMu.Unlock()

	e := s.eng()
	author := authorID
	if u, ok := s.users.Get(authorID); ok {
		author = u.Name
	}
	c := canvas.Comment{
		ID:         s.store.NextID("comment"),
		AuthorID:   authorID,
		AuthorName: author,
		Text:       text,
		Timestamp:  s.now(),
	}

	var prior []canvas.Comment
	snap, changed := s.commit(ctx, "AddComment", func(cur canvas.Snapshot) (canvas.Snapshot, bool) {
		var next canvas.Snapshot
		var ok bool
		next, prior, ok = e.editor.AddComment(cur, nodeID, c)
		return next, ok
	})
	out := Outcome{Changed: changed, NodeID: nodeID, Snapshot: snap}
	if !changed {
		return out, nil, nil
	}

	sent, err := s.comments.OnComment(ctx, notifications.CommentEvent{
		NodeID:        nodeID,
		Comment:       c,
		Prior:         prior,
		CurrentUserID: currentUserID,
	})
	return out, sent, err
}

// ============================================================================
// CANVAS LOADING
// ============================================================================

// LoadTutorial replaces the canvas with the tutorial and seeds its users and
// startup notifications.
func (s *CanvasService) LoadTutorial(ctx context.Context) (Outcome, error) {
	tutorial, err := seed.Tutorial()
	if err != nil {
		return Outcome{}, err
	}
	return s.load(ctx, tutorial, true), nil
}

// LoadBlank replaces the canvas with an empty one.
func (s *CanvasService) LoadBlank(ctx context.Context) (Outcome, error) {
	blank, err := seed.Blank()
	if err != nil {
		return Outcome{}, err
	}
	return s.load(ctx, blank, false), nil
}

func (s *CanvasService) load(ctx context.Context, c seed.Canvas, seedInbox bool) Outcome {
	s.gestureMu.Lock()
	defer s.gestureMu.Unlock()

	s.users.Replace(c.Users)
	if seedInbox && len(s.inbox.List("")) == 0 {
		s.inbox.Seed(c.Notifications)
	}
	snap := s.store.Replace(c.Nodes, c.Edges)
	s.selected = ""
	s.logger.Info("Canvas loaded",
		zap.Int("nodes", len(snap.Nodes)),
		zap.Int("edges", len(snap.Edges)),
	)
	return Outcome{Changed: true, Snapshot: snap}
}

// ============================================================================
// READS
// ============================================================================

// Suggestions returns the next-step suggestions for a node without
// materializing them.
func (s *CanvasService) Suggestions(nodeID string) []domain.Suggestion {
	snap := s.store.Snapshot()
	n, ok := snap.Node(nodeID)
	if !ok {
		return nil
	}
	return s.eng().suggestions.Generate(n, snap.Nodes)
}

// ShowSuggestionHint reports whether the "suggest next step" affordance
// should be shown on a node.
func (s *CanvasService) ShowSuggestionHint(nodeID string) bool {
	return s.eng().lookahead.ShouldShowHint(s.store.Snapshot(), nodeID)
}
