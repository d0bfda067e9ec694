package layout

import (
	"github.com/rs/zerolog"

	"boxflow/pkg/style"
)

// RootSizing controls how a flex or grid container with width:auto sizes
// against a definite containing block. CSS block-level behavior is to
// fill; RootShrink preserves the legacy shrink-to-fit behavior some
// embedders expect.
type RootSizing int

const (
	RootFill RootSizing = iota
	RootShrink
)

// Engine computes layouts. It is stateless across calls: one Compute
// invocation owns its entire recursion, and the same inputs always
// produce the same output.
type Engine struct {
	rootSizing RootSizing
	log        zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRootSizing selects fill or shrink-to-fit for auto-width flex/grid
// containers in a definite containing block.
func WithRootSizing(rs RootSizing) Option {
	return func(e *Engine) { e.rootSizing = rs }
}

// WithLogger installs a trace logger. The engine only emits at Debug
// level; the default logger is disabled so the hot path stays silent.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New returns an Engine with CSS-conformant defaults.
func New(opts ...Option) *Engine {
	e := &Engine{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// engineDispatcher is the plain, uncached recursion handle.
type engineDispatcher struct{ e *Engine }

func (d engineDispatcher) Dispatch(node *Node, ctx Context) *Layout {
	return d.e.Format(d, node, ctx)
}

// Compute lays out a node tree. ctx supplies the available space and the
// viewport; the result tree parallels the node tree.
func (e *Engine) Compute(node *Node, ctx Context) *Layout {
	return e.ComputeWith(nil, node, ctx)
}

// ComputeWith lays out a node tree recursing through d. Passing a custom
// dispatcher lets callers interpose caching; nil means plain recursion.
func (e *Engine) ComputeWith(d Dispatcher, node *Node, ctx Context) *Layout {
	if d == nil {
		d = engineDispatcher{e}
	}
	return d.Dispatch(node, ctx)
}

// Format runs the formatting algorithm for one node, recursing into
// children through d and never consulting any cache itself. Caching
// dispatchers call this on a miss.
func (e *Engine) Format(d Dispatcher, node *Node, ctx Context) *Layout {
	if node == nil {
		return &Layout{}
	}
	st := styleOf(node)
	if e.log.GetLevel() <= zerolog.DebugLevel {
		e.log.Debug().
			Str("id", node.ID).
			Int("uid", node.Uid).
			Int("display", int(st.Display)).
			Msg("format")
	}
	switch st.Display {
	case style.DisplayNone:
		return zeroLayout(node)
	case style.DisplayContents:
		// A Contents box reached directly (not flattened by a flex/grid
		// parent) behaves like its children laid out in block flow.
		return e.layoutBlock(d, node, ctx)
	case style.DisplayFlex, style.DisplayInlineFlex:
		return e.layoutFlex(d, node, ctx)
	case style.DisplayGrid, style.DisplayInlineGrid:
		return e.layoutGrid(d, node, ctx)
	default:
		return e.layoutBlock(d, node, ctx)
	}
}

// childRef pairs an in-flow (or absolute) node with the output slot its
// Layout lands in. Contents children are flattened: their placeholder
// keeps the tree shape while the grandchildren join the parent's flow.
type childRef struct {
	node *Node
	set  func(*Layout)
}

// collectChildren builds the output children skeleton for a container
// and splits participants into flow and absolutely-positioned sets.
// display:none slots are pre-filled with zero layouts; display:contents
// slots get a zero-sized holder whose children receive the promoted
// boxes (coordinates stay container-relative because the holder sits at
// the content-box origin with zero size).
func collectChildren(node *Node) (skeleton []*Layout, flow, abs []childRef) {
	seen := map[*Node]bool{node: true}
	skeleton = make([]*Layout, len(node.Children))
	var walk func(children []*Node, out []*Layout)
	walk = func(children []*Node, out []*Layout) {
		for i, child := range children {
			i, child := i, child
			if seen[child] {
				out[i] = zeroLayout(child)
				continue
			}
			seen[child] = true
			cst := styleOf(child)
			switch {
			case cst.Display == style.DisplayNone:
				out[i] = zeroLayout(child)
			case cst.Display == style.DisplayContents:
				holder := &Layout{
					ID:       child.ID,
					Text:     child.Text,
					Children: make([]*Layout, len(child.Children)),
				}
				out[i] = holder
				walk(child.Children, holder.Children)
			case cst.Position.IsAbsolutelyPositioned():
				abs = append(abs, childRef{node: child, set: func(l *Layout) { out[i] = l }})
			default:
				flow = append(flow, childRef{node: child, set: func(l *Layout) { out[i] = l }})
			}
		}
	}
	walk(node.Children, skeleton)
	return skeleton, flow, abs
}

// finishSkeleton replaces any slot a caller never filled (e.g. an
// absolute child skipped in an intrinsic pass) with a zero layout.
func finishSkeleton(node *Node, skeleton []*Layout) {
	for i, l := range skeleton {
		if l == nil {
			skeleton[i] = zeroLayout(node.Children[i])
		}
	}
}
