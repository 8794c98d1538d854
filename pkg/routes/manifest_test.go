package routes

import (
	"errors"
	"reflect"
	"testing"
)

// compile is the full pipeline: filesystem tree to manifest.
func compile(t *testing.T, tree *FSNode) Route {
	t.Helper()
	cfg, err := BuildRouteConfig(tree)
	if err != nil {
		t.Fatalf("BuildRouteConfig returned error: %v", err)
	}
	m, err := BuildManifest(cfg)
	if err != nil {
		t.Fatalf("BuildManifest returned error: %v", err)
	}
	return m
}

func compileErr(t *testing.T, tree *FSNode) error {
	t.Helper()
	cfg, err := BuildRouteConfig(tree)
	if err != nil {
		t.Fatalf("BuildRouteConfig returned error: %v", err)
	}
	_, err = BuildManifest(cfg)
	return err
}

func rootNode(t *testing.T, r Route) *RouteNode {
	t.Helper()
	n, ok := r.(*RouteNode)
	if !ok {
		t.Fatalf("manifest root is %T, want *RouteNode", r)
	}
	return n
}

func TestBuildManifestEndToEnd(t *testing.T) {
	tree := dir(".", ".",
		dir("(group)", "(group)",
			file("contact.tsx", "(group)/contact.tsx"),
		),
		file("_layout.tsx", "_layout.tsx"),
		file("about.tsx", "about.tsx"),
		file("index.tsx", "index.tsx"),
	)

	root := rootNode(t, compile(t, tree))

	if root.Seg != "/" {
		t.Errorf("root segment = %q, want /", root.Seg)
	}

	if root.Index == nil {
		t.Fatal("root index missing")
	}
	if root.Index.Partial != "%.html" {
		t.Errorf("index partial = %q, want %%.html", root.Index.Partial)
	}

	wantLayouts := []string{"_layout.html"}
	if !reflect.DeepEqual(root.Index.Layouts, wantLayouts) {
		t.Errorf("index layouts = %v, want %v", root.Index.Layouts, wantLayouts)
	}

	about, ok := root.Children["about"].(*RoutePage)
	if !ok {
		t.Fatalf("children[about] is %T, want *RoutePage", root.Children["about"])
	}
	if about.Partial != "about.html" {
		t.Errorf("about partial = %q, want about.html", about.Partial)
	}
	if !reflect.DeepEqual(about.Layouts, wantLayouts) {
		t.Errorf("about layouts = %v, want %v", about.Layouts, wantLayouts)
	}

	// The group directory leaves no trace in the manifest.
	contact, ok := root.Children["contact"].(*RoutePage)
	if !ok {
		t.Fatalf("children[contact] is %T, want *RoutePage", root.Children["contact"])
	}
	if contact.Partial != "contact.html" {
		t.Errorf("contact partial = %q, want contact.html", contact.Partial)
	}
	if !reflect.DeepEqual(contact.Layouts, wantLayouts) {
		t.Errorf("contact layouts = %v, want %v", contact.Layouts, wantLayouts)
	}
}

func TestBuildManifestNestedSegments(t *testing.T) {
	tree := dir(".", ".",
		dir("blog", "blog",
			file("_layout.tsx", "blog/_layout.tsx"),
			file("archive.tsx", "blog/archive.tsx"),
			file("index.tsx", "blog/index.tsx"),
		),
		file("_layout.tsx", "_layout.tsx"),
	)

	root := rootNode(t, compile(t, tree))

	blog, ok := root.Children["blog"].(*RouteNode)
	if !ok {
		t.Fatalf("children[blog] is %T, want *RouteNode", root.Children["blog"])
	}

	if blog.Index == nil || blog.Index.Partial != "blog/%.html" {
		t.Fatalf("blog index = %+v, want partial blog/%%.html", blog.Index)
	}

	wantLayouts := []string{"_layout.html", "blog/_layout.html"}
	if !reflect.DeepEqual(blog.Index.Layouts, wantLayouts) {
		t.Errorf("blog index layouts = %v, want %v", blog.Index.Layouts, wantLayouts)
	}

	archive, ok := blog.Children["archive"].(*RoutePage)
	if !ok {
		t.Fatalf("children[archive] is %T, want *RoutePage", blog.Children["archive"])
	}
	if archive.Partial != "blog/archive.html" {
		t.Errorf("archive partial = %q, want blog/archive.html", archive.Partial)
	}
	if !reflect.DeepEqual(archive.Layouts, wantLayouts) {
		t.Errorf("archive layouts = %v, want %v", archive.Layouts, wantLayouts)
	}
}

func TestBuildManifestParamSegments(t *testing.T) {
	tree := dir(".", ".",
		file("[...rest].tsx", "[...rest].tsx"),
		file("[[page]].tsx", "[[page]].tsx"),
		file("[id].tsx", "[id].tsx"),
	)

	root := rootNode(t, compile(t, tree))

	for seg, param := range map[string]ParamKind{
		"*":  ParamRequired,
		"?":  ParamOptional,
		"**": ParamCatchAll,
	} {
		page, ok := root.Children[seg].(*RoutePage)
		if !ok {
			t.Errorf("children[%q] is %T, want *RoutePage", seg, root.Children[seg])
			continue
		}
		if page.Param != param {
			t.Errorf("children[%q].Param = %v, want %v", seg, page.Param, param)
		}
	}
}

func TestBuildManifestSlots(t *testing.T) {
	tree := dir(".", ".",
		dir("@sidebar", "@sidebar",
			file("index.tsx", "@sidebar/index.tsx"),
		),
		file("index.tsx", "index.tsx"),
	)

	root := rootNode(t, compile(t, tree))

	sidebar, ok := root.Slots["@sidebar"].(*RouteNode)
	if !ok {
		t.Fatalf("slots[@sidebar] is %T, want *RouteNode", root.Slots["@sidebar"])
	}
	if sidebar.Index == nil || sidebar.Index.Partial != "@sidebar/%.html" {
		t.Errorf("sidebar index = %+v, want partial @sidebar/%%.html", sidebar.Index)
	}
	if _, ok := root.Children["@sidebar"]; ok {
		t.Error("slot leaked into children")
	}
}

func TestBuildManifestFallbacks(t *testing.T) {
	t.Run("fallback entry", func(t *testing.T) {
		tree := dir(".", ".",
			file("*error.tsx", "*error.tsx"),
			file("index.tsx", "index.tsx"),
		)

		root := rootNode(t, compile(t, tree))
		fb := root.Fallbacks["^error"]
		if fb == nil {
			t.Fatalf("fallbacks = %v, want ^error entry", root.Fallbacks)
		}
		if fb.Partial != "^error.html" {
			t.Errorf("fallback partial = %q, want ^error.html", fb.Partial)
		}
	})

	t.Run("duplicate fallback segment", func(t *testing.T) {
		tree := dir(".", ".",
			file("*error.jsx", "*error.jsx"),
			file("*error.tsx", "*error.tsx"),
		)
		if err := compileErr(t, tree); !errors.Is(err, ErrCannotMergeFallback) {
			t.Errorf("error = %v, want ErrCannotMergeFallback", err)
		}
	})
}

func TestBuildManifestIntercepts(t *testing.T) {
	t.Run("one-up rebinds to parent", func(t *testing.T) {
		tree := dir(".", ".",
			dir("feed", "feed",
				dir("post", "feed/post",
					file("(..)photo.tsx", "feed/post/(..)photo.tsx"),
				),
			),
		)

		root := rootNode(t, compile(t, tree))
		post := root.Children["feed"].(*RouteNode).Children["post"].(*RouteNode)

		icept, ok := post.Children["photo"].(*RouteIntercept)
		if !ok {
			t.Fatalf("children[photo] is %T, want *RouteIntercept", post.Children["photo"])
		}
		if want := []string{"feed"}; !reflect.DeepEqual(icept.Base, want) {
			t.Errorf("base = %v, want %v", icept.Base, want)
		}

		inner, ok := icept.Children["photo"].(*RoutePage)
		if !ok {
			t.Fatalf("intercept children[photo] is %T, want *RoutePage", icept.Children["photo"])
		}
		if inner.Partial != "feed/post/photo.html" {
			t.Errorf("inner partial = %q, want feed/post/photo.html", inner.Partial)
		}
	})

	t.Run("root intercept clears the base", func(t *testing.T) {
		tree := dir(".", ".",
			dir("feed", "feed",
				dir("post", "feed/post",
					file("(...)photo.tsx", "feed/post/(...)photo.tsx"),
				),
			),
		)

		root := rootNode(t, compile(t, tree))
		post := root.Children["feed"].(*RouteNode).Children["post"].(*RouteNode)
		icept := post.Children["photo"].(*RouteIntercept)
		if len(icept.Base) != 0 {
			t.Errorf("base = %v, want empty", icept.Base)
		}
	})

	t.Run("slot segments are not part of the base", func(t *testing.T) {
		tree := dir(".", ".",
			dir("@modal", "@modal",
				file("(.)photo.tsx", "@modal/(.)photo.tsx"),
			),
		)

		root := rootNode(t, compile(t, tree))
		modal := root.Slots["@modal"].(*RouteNode)
		icept := modal.Children["photo"].(*RouteIntercept)
		if len(icept.Base) != 0 {
			t.Errorf("base = %v, want empty", icept.Base)
		}
	})
}

func TestBuildManifestMergeSiblings(t *testing.T) {
	t.Run("escaped directories merge", func(t *testing.T) {
		tree := dir(".", ".",
			dir("photo(grid)", "photo(grid)",
				file("index.tsx", "photo(grid)/index.tsx"),
			),
			dir("photo(list)", "photo(list)",
				file("zoom.tsx", "photo(list)/zoom.tsx"),
			),
		)

		root := rootNode(t, compile(t, tree))

		photo, ok := root.Children["photo"].(*RouteNode)
		if !ok {
			t.Fatalf("children[photo] is %T, want *RouteNode", root.Children["photo"])
		}
		if photo.Index == nil {
			t.Error("merged node lost its index")
		}
		if _, ok := photo.Children["zoom"]; !ok {
			t.Errorf("merged node children = %v, want zoom", photo.Children)
		}
	})

	t.Run("two pages cannot merge", func(t *testing.T) {
		tree := dir(".", ".",
			file("photo(grid).tsx", "photo(grid).tsx"),
			file("photo(list).tsx", "photo(list).tsx"),
		)
		if err := compileErr(t, tree); !errors.Is(err, ErrCannotMergePage) {
			t.Errorf("error = %v, want ErrCannotMergePage", err)
		}
	})

	t.Run("two indexes cannot merge", func(t *testing.T) {
		tree := dir(".", ".",
			dir("photo(grid)", "photo(grid)",
				file("index.tsx", "photo(grid)/index.tsx"),
			),
			dir("photo(list)", "photo(list)",
				file("index.tsx", "photo(list)/index.tsx"),
			),
		)
		if err := compileErr(t, tree); !errors.Is(err, ErrMultipleIndexRoutes) {
			t.Errorf("error = %v, want ErrMultipleIndexRoutes", err)
		}
	})

	t.Run("two slots cannot merge", func(t *testing.T) {
		tree := dir(".", ".",
			dir("photo(grid)", "photo(grid)",
				dir("@side", "photo(grid)/@side",
					file("index.tsx", "photo(grid)/@side/index.tsx"),
				),
			),
			dir("photo(list)", "photo(list)",
				dir("@side", "photo(list)/@side",
					file("index.tsx", "photo(list)/@side/index.tsx"),
				),
			),
		)
		if err := compileErr(t, tree); !errors.Is(err, ErrCannotMergeSlot) {
			t.Errorf("error = %v, want ErrCannotMergeSlot", err)
		}
	})
}

func TestMergeRoutesDirectly(t *testing.T) {
	node := func(seg string, children map[string]Route) *RouteNode {
		if children == nil {
			children = make(map[string]Route)
		}
		return &RouteNode{
			Seg:       seg,
			Fallbacks: make(map[string]*RouteFallback),
			Slots:     make(map[string]Route),
			Children:  children,
		}
	}

	t.Run("segment mismatch", func(t *testing.T) {
		if _, err := mergeRoutes(node("a", nil), node("b", nil)); !errors.Is(err, ErrRouteSegmentMismatch) {
			t.Errorf("error = %v, want ErrRouteSegmentMismatch", err)
		}
	})

	t.Run("intercept refuses to merge", func(t *testing.T) {
		icept := &RouteIntercept{Seg: "a", Children: make(map[string]Route)}
		if _, err := mergeRoutes(node("a", nil), icept); !errors.Is(err, ErrCannotMergeIntercept) {
			t.Errorf("error = %v, want ErrCannotMergeIntercept", err)
		}
	})

	t.Run("public refuses to merge", func(t *testing.T) {
		pub := &RoutePublic{Seg: "a", Ext: "css"}
		if _, err := mergeRoutes(pub, node("a", nil)); !errors.Is(err, ErrCannotMergePublic) {
			t.Errorf("error = %v, want ErrCannotMergePublic", err)
		}
	})
}

// Children that collide during a merge are merge-checked and then the
// right side overwrites in the final union pass. That asymmetry matches
// the behavior existing manifests were built against; this test pins it.
func TestMergeChildrenRightSideWinsOnCollision(t *testing.T) {
	node := func(seg string, children map[string]Route) *RouteNode {
		if children == nil {
			children = make(map[string]Route)
		}
		return &RouteNode{
			Seg:       seg,
			Fallbacks: make(map[string]*RouteFallback),
			Slots:     make(map[string]Route),
			Children:  children,
		}
	}

	left := node("photo", map[string]Route{
		"x": node("x", map[string]Route{
			"fromLeft": node("fromLeft", nil),
		}),
	})
	rightX := node("x", map[string]Route{
		"fromRight": node("fromRight", nil),
	})
	right := node("photo", map[string]Route{"x": rightX})

	merged, err := mergeRoutes(left, right)
	if err != nil {
		t.Fatalf("mergeRoutes returned error: %v", err)
	}

	got := merged.(*RouteNode).Children["x"].(*RouteNode)
	if got != rightX {
		t.Errorf("children[x] = %+v, want the right-side subtree untouched", got)
	}
	if _, ok := got.Children["fromLeft"]; ok {
		t.Error("left-side child survived the union pass")
	}

	// The collision is still merge-checked: incompatible subtrees fail
	// even though the merged value would be discarded.
	badRight := node("photo", map[string]Route{
		"x": &RoutePage{Seg: "x", Partial: "x.html"},
	})
	if _, err := mergeRoutes(left, badRight); !errors.Is(err, ErrCannotMergePage) {
		t.Errorf("error = %v, want ErrCannotMergePage", err)
	}
}

func TestRouteStateIsolated(t *testing.T) {
	base := routeState{}
	a := base.push("a")
	b := base.push("b")

	if len(base.segments) != 0 {
		t.Errorf("base segments = %v, want empty", base.segments)
	}
	if a.segments[0] != "a" || b.segments[0] != "b" {
		t.Errorf("sibling states share segments: %v / %v", a.segments, b.segments)
	}

	withLayout := a.addLayout("x/_layout.html")
	if len(a.layouts) != 0 {
		t.Errorf("addLayout mutated its receiver: %v", a.layouts)
	}
	again := withLayout.addLayout("x/_layout.html")
	if len(again.layouts) != 1 {
		t.Errorf("layout inclusion is not idempotent: %v", again.layouts)
	}
}

func TestBuildManifestDeterministic(t *testing.T) {
	tree := dir(".", ".",
		dir("@modal", "@modal",
			file("(.)photo.tsx", "@modal/(.)photo.tsx"),
		),
		dir("blog", "blog",
			file("*missing.tsx", "blog/*missing.tsx"),
			file("[id].tsx", "blog/[id].tsx"),
			file("_layout.tsx", "blog/_layout.tsx"),
			file("index.tsx", "blog/index.tsx"),
		),
		file("_layout.tsx", "_layout.tsx"),
		file("index.tsx", "index.tsx"),
	)

	first := compile(t, tree)
	second := compile(t, tree)
	if !reflect.DeepEqual(first, second) {
		t.Error("two compiles of the same tree differ")
	}
}
