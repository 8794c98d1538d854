package routes

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

// Route is one node of the manifest tree. The concrete types are
// RouteNode, RoutePage, RouteIndex, RouteFallback, RouteIntercept and
// RoutePublic; the unexported method seals the set.
type Route interface {
	// Segment is the URL segment the route is keyed by in its parent.
	Segment() string

	routeVariant()
}

// RouteNode is an internal manifest node keyed by URL segment.
type RouteNode struct {
	Seg       string
	Index     *RouteIndex
	Fallbacks map[string]*RouteFallback
	Slots     map[string]Route
	Children  map[string]Route
}

// RoutePage is a leaf route with its inherited layout chain and its
// partial artifact path.
type RoutePage struct {
	Seg     string
	Param   ParamKind
	Layouts []string
	Partial string
}

// RouteIndex is a directory index; its partial basename is the reserved
// "%" marker.
type RouteIndex struct {
	Layouts []string
	Partial string
}

// RouteFallback is a catch-all leaf rendered when no sibling segment
// matches; keyed by its "^name" segment.
type RouteFallback struct {
	Seg     string
	Layouts []string
	Partial string
}

// RouteIntercept rebinds a subtree to an ancestor path: Base is the
// logical ancestor segment list the intercepted content renders under.
type RouteIntercept struct {
	Seg      string
	Base     []string
	Children map[string]Route
}

// RoutePublic is a reserved variant for public assets. Nothing constructs
// it yet; the manifest merge and the matcher reject it explicitly rather
// than carrying it as dead weight.
type RoutePublic struct {
	Seg string
	Ext string
}

func (n *RouteNode) Segment() string      { return n.Seg }
func (p *RoutePage) Segment() string      { return p.Seg }
func (i *RouteIndex) Segment() string     { return "/" }
func (f *RouteFallback) Segment() string  { return f.Seg }
func (i *RouteIntercept) Segment() string { return i.Seg }
func (p *RoutePublic) Segment() string    { return p.Seg }

func (*RouteNode) routeVariant()      {}
func (*RoutePage) routeVariant()      {}
func (*RouteIndex) routeVariant()     {}
func (*RouteFallback) routeVariant()  {}
func (*RouteIntercept) routeVariant() {}
func (*RoutePublic) routeVariant()    {}

// indexPartial is the reserved basename marker for index partials.
const indexPartial = "%.html"

// routeState is the builder context threaded top-down through manifest
// construction. States are immutable: push and addLayout return fresh
// copies, so sibling subtrees never see each other's accumulation.
type routeState struct {
	segments []string
	layouts  []string
}

func (s routeState) push(segment string) routeState {
	segments := make([]string, 0, len(s.segments)+1)
	segments = append(segments, s.segments...)
	segments = append(segments, segment)
	return routeState{segments: segments, layouts: s.layouts}
}

// addLayout appends a layout path unless it is already present. A layout
// reachable through more than one path is included once.
func (s routeState) addLayout(layout string) routeState {
	for _, l := range s.layouts {
		if l == layout {
			return s
		}
	}
	layouts := make([]string, 0, len(s.layouts)+1)
	layouts = append(layouts, s.layouts...)
	layouts = append(layouts, layout)
	return routeState{segments: s.segments, layouts: layouts}
}

// snapshot returns the layout chain as it stands at this point of the
// descent. Pages own their copy.
func (s routeState) snapshot() []string {
	return append([]string(nil), s.layouts...)
}

// BuildManifest turns a route configuration tree into a manifest tree.
func BuildManifest(cfg *RouteConfig) (Route, error) {
	return buildRoute(cfg, routeState{})
}

func buildRoute(cfg *RouteConfig, st routeState) (Route, error) {
	if cfg.Intercept != InterceptNone {
		// Intercept short-circuit: the route renders as an intercept node
		// claiming an ancestor base, with its ordinary form nested one
		// level below.
		seg := segmentOf(cfg)

		inner := *cfg
		inner.Intercept = InterceptNone
		child, err := buildRoute(&inner, st)
		if err != nil {
			return nil, err
		}

		return &RouteIntercept{
			Seg:      seg,
			Base:     interceptBase(st.segments, cfg.Intercept),
			Children: map[string]Route{seg: child},
		}, nil
	}

	switch cfg.Kind {
	case ConfigPage:
		return buildPage(cfg, st), nil
	case ConfigNode:
		return buildNode(cfg, st)
	default:
		panic(fmt.Sprintf("routes: unhandled config kind %d", int(cfg.Kind)))
	}
}

func buildPage(cfg *RouteConfig, st routeState) *RoutePage {
	seg := segmentOf(cfg)
	return &RoutePage{
		Seg:     seg,
		Param:   cfg.Param,
		Layouts: st.snapshot(),
		Partial: partialPath(st.segments, seg+".html"),
	}
}

func buildNode(cfg *RouteConfig, st routeState) (Route, error) {
	seg := segmentOf(cfg)

	next := st
	if seg != "/" {
		next = next.push(seg)
	}
	if cfg.Layout != "" {
		base := path.Base(cfg.Layout)
		name := strings.TrimSuffix(base, path.Ext(base))
		next = next.addLayout(partialPath(next.segments, name+".html"))
	}

	node := &RouteNode{
		Seg:       seg,
		Fallbacks: make(map[string]*RouteFallback),
		Slots:     make(map[string]Route),
		Children:  make(map[string]Route),
	}

	for _, child := range cfg.Children {
		if child.Path == "/" {
			if child.Kind != ConfigPage {
				panic("routes: index route must be a page")
			}
			if node.Index != nil {
				return nil, fmt.Errorf("%s: %w", cfg.Path, ErrMultipleIndexRoutes)
			}
			node.Index = &RouteIndex{
				Layouts: next.snapshot(),
				Partial: partialPath(next.segments, indexPartial),
			}
			continue
		}

		cseg := segmentOf(child)

		switch {
		case strings.HasPrefix(cseg, "^"):
			if child.Kind != ConfigPage {
				panic("routes: fallback route must be a page")
			}
			if _, ok := node.Fallbacks[cseg]; ok {
				return nil, fmt.Errorf("%s: %w", cseg, ErrCannotMergeFallback)
			}
			node.Fallbacks[cseg] = &RouteFallback{
				Seg:     cseg,
				Layouts: next.snapshot(),
				Partial: partialPath(next.segments, cseg+".html"),
			}

		case strings.HasPrefix(cseg, "@"):
			built, err := buildRoute(child, next)
			if err != nil {
				return nil, err
			}
			if err := insertRoute(node.Slots, cseg, built); err != nil {
				return nil, err
			}

		default:
			built, err := buildRoute(child, next)
			if err != nil {
				return nil, err
			}
			if err := insertRoute(node.Children, cseg, built); err != nil {
				return nil, err
			}
		}
	}

	return node, nil
}

// insertRoute inserts a built route into a sibling map, merging with any
// route already claiming the segment.
func insertRoute(m map[string]Route, seg string, r Route) error {
	existing, ok := m[seg]
	if !ok {
		m[seg] = r
		return nil
	}
	merged, err := mergeRoutes(existing, r)
	if err != nil {
		return err
	}
	m[seg] = merged
	return nil
}

// segmentOf derives the manifest segment from a configuration path. The
// root path "/" maps to the literal segment "/"; parameter paths map to
// the reserved markers "?", "*" and "**".
func segmentOf(cfg *RouteConfig) string {
	if cfg.Path == "/" {
		return "/"
	}
	switch cfg.Param {
	case ParamOptional:
		return "?"
	case ParamRequired:
		return "*"
	case ParamCatchAll:
		return "**"
	case ParamNone:
		return strings.TrimPrefix(cfg.Path, "/")
	default:
		panic(fmt.Sprintf("routes: unhandled param kind %d", int(cfg.Param)))
	}
}

// partialPath joins accumulated segments with a partial basename.
func partialPath(segments []string, base string) string {
	if len(segments) == 0 {
		return base
	}
	return strings.Join(segments, "/") + "/" + base
}

// interceptBase computes the ancestor segment list an intercepted route
// rebinds to: the accumulated segments minus slot segments, trimmed by the
// intercept depth.
func interceptBase(segments []string, kind InterceptKind) []string {
	base := make([]string, 0, len(segments))
	for _, s := range segments {
		if !strings.HasPrefix(s, "@") {
			base = append(base, s)
		}
	}

	trim := 0
	switch kind {
	case InterceptSameLevel:
		trim = 0
	case InterceptOneUp:
		trim = 1
	case InterceptTwoUp:
		trim = 2
	case InterceptRoot:
		return []string{}
	default:
		panic(fmt.Sprintf("routes: unhandled intercept kind %d", int(kind)))
	}

	if trim > len(base) {
		trim = len(base)
	}
	return base[:len(base)-trim]
}

// mergeRoutes merges two manifest routes claiming the same segment.
// Pages, intercepts and public routes never merge; at most one side may
// carry an index; fallback and slot keys must be disjoint. Colliding
// children are merge-checked while walking the left map, but the right
// side wins in the final union pass.
func mergeRoutes(left, right Route) (Route, error) {
	for _, r := range []Route{left, right} {
		switch r.(type) {
		case *RoutePage:
			return nil, fmt.Errorf("%s: %w", r.Segment(), ErrCannotMergePage)
		case *RouteIntercept:
			return nil, fmt.Errorf("%s: %w", r.Segment(), ErrCannotMergeIntercept)
		case *RoutePublic:
			return nil, fmt.Errorf("%s: %w", r.Segment(), ErrCannotMergePublic)
		}
	}

	l, lok := left.(*RouteNode)
	r, rok := right.(*RouteNode)
	if !lok || !rok {
		panic(fmt.Sprintf("routes: merge of %T and %T", left, right))
	}

	if l.Seg != r.Seg {
		return nil, fmt.Errorf("%q vs %q: %w", l.Seg, r.Seg, ErrRouteSegmentMismatch)
	}
	if l.Index != nil && r.Index != nil {
		return nil, fmt.Errorf("%s: %w", l.Seg, ErrMultipleIndexRoutes)
	}

	out := &RouteNode{
		Seg:       l.Seg,
		Index:     l.Index,
		Fallbacks: make(map[string]*RouteFallback),
		Slots:     make(map[string]Route),
		Children:  make(map[string]Route),
	}
	if out.Index == nil {
		out.Index = r.Index
	}

	for _, k := range sortedKeys(l.Fallbacks) {
		out.Fallbacks[k] = l.Fallbacks[k]
	}
	for _, k := range sortedKeys(r.Fallbacks) {
		if _, ok := out.Fallbacks[k]; ok {
			return nil, fmt.Errorf("%s: %w", k, ErrCannotMergeFallback)
		}
		out.Fallbacks[k] = r.Fallbacks[k]
	}

	for _, k := range sortedKeys(l.Slots) {
		out.Slots[k] = l.Slots[k]
	}
	for _, k := range sortedKeys(r.Slots) {
		if _, ok := out.Slots[k]; ok {
			return nil, fmt.Errorf("%s: %w", k, ErrCannotMergeSlot)
		}
		out.Slots[k] = r.Slots[k]
	}

	for _, k := range sortedKeys(l.Children) {
		lv := l.Children[k]
		if rv, ok := r.Children[k]; ok {
			merged, err := mergeRoutes(lv, rv)
			if err != nil {
				return nil, err
			}
			out.Children[k] = merged
		} else {
			out.Children[k] = lv
		}
	}
	for _, k := range sortedKeys(r.Children) {
		out.Children[k] = r.Children[k]
	}

	return out, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
