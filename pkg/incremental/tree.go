package incremental

import (
	"github.com/rs/zerolog"

	"boxflow/pkg/geom"
	"boxflow/pkg/layout"
	"boxflow/pkg/style"
)

// cacheEntry is one cached result: the exact key it was computed under,
// the layout, and the dependency class used for viewport invalidation.
type cacheEntry struct {
	key    ConstraintKey
	hash   uint64
	result *layout.Layout
	deps   DependencyKind
}

// maxCacheSlots bounds the per-node entry list. A node is consulted
// under a handful of contexts per pass (intrinsic probes, a measure
// under the flexed main size, the final placement), so a short FIFO
// covers them all without unbounded retention.
const maxCacheSlots = 4

// LayoutNode wraps a Node for incremental use: the style is replaceable,
// children are mutable through the tree API, and a per-node cache holds
// up to maxCacheSlots recent layouts, oldest evicted first. Parent edges live in the tree's uid map, so
// node graphs cannot form cycles.
type LayoutNode struct {
	Uid      int
	ID       string
	Style    *style.Style
	Children []*LayoutNode
	Measure  layout.MeasureFunc
	Text     string

	dirty         bool
	childrenDirty bool
	cache         []cacheEntry
}

// Dirty reports whether the node itself needs recomputation.
func (n *LayoutNode) Dirty() bool { return n.dirty }

// ChildrenDirty reports whether any descendant needs recomputation.
func (n *LayoutNode) ChildrenDirty() bool { return n.childrenDirty }

// markDirty sets the dirty bit and upholds dirty ⇒ no cache entry.
func (n *LayoutNode) markDirty() {
	n.dirty = true
	n.cache = nil
}

// Stats reports cache effectiveness for one tree.
type Stats struct {
	Hits   int64
	Misses int64
}

// HitRate is Hits / (Hits + Misses), zero when nothing was looked up.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// LayoutTree owns a persistent LayoutNode tree and recomputes it
// incrementally. Not internally synchronized: one owner mutates and
// computes in sequence.
type LayoutTree struct {
	root     *LayoutNode
	engine   *layout.Engine
	viewport geom.Size

	nodes  map[int]*LayoutNode
	parent map[int]int // child uid -> parent uid

	stats Stats
	log   zerolog.Logger
}

// TreeOption configures a LayoutTree.
type TreeOption func(*LayoutTree)

// WithEngine substitutes a configured engine (root sizing, tracing).
func WithEngine(e *layout.Engine) TreeOption {
	return func(t *LayoutTree) { t.engine = e }
}

// WithLogger installs a logger for cache statistics tracing.
func WithLogger(log zerolog.Logger) TreeOption {
	return func(t *LayoutTree) { t.log = log }
}

// New builds a tree over root with the given viewport.
func New(root *LayoutNode, viewport geom.Size, opts ...TreeOption) *LayoutTree {
	t := &LayoutTree{
		root:     root,
		engine:   layout.New(),
		viewport: viewport,
		nodes:    map[int]*LayoutNode{},
		parent:   map[int]int{},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.register(root, -1)
	root.markDirty()
	t.propagateChildrenDirty(root.Uid)
	return t
}

// register indexes a subtree into the uid and parent maps.
func (t *LayoutTree) register(n *LayoutNode, parentUid int) {
	t.nodes[n.Uid] = n
	if parentUid >= 0 {
		t.parent[n.Uid] = parentUid
	} else {
		delete(t.parent, n.Uid)
	}
	for _, c := range n.Children {
		t.register(c, n.Uid)
	}
}

// unregister drops a subtree from the maps.
func (t *LayoutTree) unregister(n *LayoutNode) {
	delete(t.nodes, n.Uid)
	delete(t.parent, n.Uid)
	for _, c := range n.Children {
		t.unregister(c)
	}
}

// Node returns the node with the given uid, or nil.
func (t *LayoutTree) Node(uid int) *LayoutNode { return t.nodes[uid] }

// Root returns the tree's root node.
func (t *LayoutTree) Root() *LayoutNode { return t.root }

// propagateChildrenDirty walks the parent chain setting childrenDirty.
func (t *LayoutTree) propagateChildrenDirty(uid int) {
	for {
		p, ok := t.parent[uid]
		if !ok {
			return
		}
		pn := t.nodes[p]
		if pn == nil {
			return
		}
		if pn.childrenDirty {
			// Ancestors above are already flagged.
			return
		}
		pn.childrenDirty = true
		uid = p
	}
}

// SetStyle replaces a node's style. Layout-equal replacements (paint
// only changes) swap in place without invalidating anything.
func (t *LayoutTree) SetStyle(uid int, st *style.Style) {
	n := t.nodes[uid]
	if n == nil {
		return
	}
	if style.LayoutEqual(n.Style, st) {
		n.Style = st
		return
	}
	n.Style = st
	n.markDirty()
	t.propagateChildrenDirty(uid)
}

// MarkDirty force-invalidates one node (e.g. a measure source changed).
func (t *LayoutTree) MarkDirty(uid int) {
	n := t.nodes[uid]
	if n == nil {
		return
	}
	n.markDirty()
	t.propagateChildrenDirty(uid)
}

// AddChild appends child under parentUid and dirties the parent.
func (t *LayoutTree) AddChild(parentUid int, child *LayoutNode) {
	p := t.nodes[parentUid]
	if p == nil {
		return
	}
	p.Children = append(p.Children, child)
	t.register(child, parentUid)
	child.markDirty()
	p.markDirty()
	t.propagateChildrenDirty(parentUid)
}

// RemoveChild removes the child at index from parentUid.
func (t *LayoutTree) RemoveChild(parentUid, index int) {
	p := t.nodes[parentUid]
	if p == nil || index < 0 || index >= len(p.Children) {
		return
	}
	removed := p.Children[index]
	p.Children = append(p.Children[:index], p.Children[index+1:]...)
	t.unregister(removed)
	p.markDirty()
	t.propagateChildrenDirty(parentUid)
}

// ResizeViewport updates the viewport and selectively invalidates:
// viewport-dependent nodes always, parent-size-dependent nodes on the
// changed axis. Static nodes keep their cache entries.
func (t *LayoutTree) ResizeViewport(w, h float64) {
	wChanged := w != t.viewport.Width
	hChanged := h != t.viewport.Height
	t.viewport = geom.Size{Width: w, Height: h}
	if !wChanged && !hChanged {
		return
	}
	var walk func(n *LayoutNode)
	walk = func(n *LayoutNode) {
		deps := DeriveDependencies(n.Style)
		invalidate := deps.Has(DepViewport) ||
			(wChanged && deps.Has(DepParentWidth)) ||
			(hChanged && deps.Has(DepParentHeight))
		if invalidate {
			n.markDirty()
			t.propagateChildrenDirty(n.Uid)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(t.root)
}

// ClearCache drops every cache entry and marks the whole tree dirty.
func (t *LayoutTree) ClearCache() {
	var walk func(n *LayoutNode)
	walk = func(n *LayoutNode) {
		n.markDirty()
		n.childrenDirty = len(n.Children) > 0
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(t.root)
}

// CacheStats returns the running hit/miss counters.
func (t *LayoutTree) CacheStats() Stats { return t.stats }

// ResetStats zeroes the counters (the per-call counters the scenarios
// inspect are deltas; tests reset between calls).
func (t *LayoutTree) ResetStats() { t.stats = Stats{} }

// buildNodes materializes the immutable Node view for one compute call
// and records the reverse mapping the caching dispatcher needs.
func (t *LayoutTree) buildNodes(n *LayoutNode, back map[*layout.Node]*LayoutNode) *layout.Node {
	node := &layout.Node{
		Uid:     n.Uid,
		ID:      n.ID,
		Style:   n.Style,
		Measure: n.Measure,
		Text:    n.Text,
	}
	if len(n.Children) > 0 {
		node.Children = make([]*layout.Node, len(n.Children))
		for i, c := range n.Children {
			node.Children[i] = t.buildNodes(c, back)
		}
	}
	back[node] = n
	return node
}

// cachingDispatcher wraps the engine's recursion with the constraint
// cache for the duration of one compute call.
type cachingDispatcher struct {
	tree *LayoutTree
	back map[*layout.Node]*LayoutNode
}

func (cd *cachingDispatcher) Dispatch(node *layout.Node, ctx layout.Context) *layout.Layout {
	ln := cd.back[node]
	if ln == nil {
		return cd.tree.engine.Format(cd, node, ctx)
	}
	key := keyFromContext(ctx)
	hash := key.Hash()

	if !ln.dirty && !ln.childrenDirty {
		for i := range ln.cache {
			entry := &ln.cache[i]
			// The bucketed hash narrows candidates cheaply; ε-equivalent
			// keys can straddle a bucket edge, so a differing hash still
			// falls through to the exact comparison.
			if entry.hash == hash && entry.key == key {
				cd.tree.stats.Hits++
				return entry.result
			}
			if entry.key.EquivalentFor(key, ln.Style) {
				cd.tree.stats.Hits++
				return entry.result
			}
		}
	}

	recomputeOnly := !ln.dirty && ln.childrenDirty
	result := cd.tree.engine.Format(cd, node, ctx)

	if !recomputeOnly {
		// A pass-through recomputation forced by dirty descendants is
		// not a cache miss; only unusable own entries count.
		cd.tree.stats.Misses++
	}
	if ln.dirty || ln.childrenDirty {
		// The old entries were produced from stale descendants.
		ln.cache = ln.cache[:0]
	}
	ln.dirty = false
	ln.childrenDirty = false
	if len(ln.cache) >= maxCacheSlots {
		ln.cache = ln.cache[1:]
	}
	ln.cache = append(ln.cache, cacheEntry{
		key:    key,
		hash:   hash,
		result: result,
		deps:   DeriveDependencies(ln.Style),
	})
	return result
}

// ComputeIncremental lays the tree out, reusing every clean cached
// subtree. Calling it twice with no mutations in between returns
// identical results with a 100% hit rate on the second call.
func (t *LayoutTree) ComputeIncremental() *layout.Layout {
	back := make(map[*layout.Node]*LayoutNode, len(t.nodes))
	root := t.buildNodes(t.root, back)
	cd := &cachingDispatcher{tree: t, back: back}
	ctx := layout.Context{
		AvailableWidth:  geom.Some(t.viewport.Width),
		AvailableHeight: geom.Some(t.viewport.Height),
		ViewportWidth:   t.viewport.Width,
		ViewportHeight:  t.viewport.Height,
	}
	result := t.engine.ComputeWith(cd, root, ctx)
	if t.log.GetLevel() <= zerolog.DebugLevel {
		t.log.Debug().
			Int64("hits", t.stats.Hits).
			Int64("misses", t.stats.Misses).
			Float64("hit_rate", t.stats.HitRate()).
			Msg("compute incremental")
	}
	return result
}

// ComputeFull bypasses and repopulates nothing: a plain full layout.
func (t *LayoutTree) ComputeFull() *layout.Layout {
	back := make(map[*layout.Node]*LayoutNode, len(t.nodes))
	root := t.buildNodes(t.root, back)
	ctx := layout.Context{
		AvailableWidth:  geom.Some(t.viewport.Width),
		AvailableHeight: geom.Some(t.viewport.Height),
		ViewportWidth:   t.viewport.Width,
		ViewportHeight:  t.viewport.Height,
	}
	return t.engine.Compute(root, ctx)
}
