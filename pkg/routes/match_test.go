package routes

import (
	"errors"
	"reflect"
	"testing"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"/", []string{"/"}},
		{"", []string{"/"}},
		{"/about", []string{"/", "about"}},
		{"/blog/2024//post/", []string{"/", "blog", "2024", "post"}},
	}

	for _, tt := range tests {
		if got := SplitPath(tt.path); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestMatch(t *testing.T) {
	tree := dir(".", ".",
		dir("blog", "blog",
			file("archive.tsx", "blog/archive.tsx"),
			file("index.tsx", "blog/index.tsx"),
		),
		file("about.tsx", "about.tsx"),
		file("index.tsx", "index.tsx"),
	)
	manifest := compile(t, tree)

	t.Run("root index", func(t *testing.T) {
		m, err := Match(SplitPath("/"), manifest)
		if err != nil {
			t.Fatalf("Match returned error: %v", err)
		}
		idx, ok := m.(*RouteIndex)
		if !ok {
			t.Fatalf("match = %T, want *RouteIndex", m)
		}
		if idx.Partial != "%.html" {
			t.Errorf("partial = %q, want %%.html", idx.Partial)
		}
	})

	t.Run("top level page", func(t *testing.T) {
		m, err := Match(SplitPath("/about"), manifest)
		if err != nil {
			t.Fatalf("Match returned error: %v", err)
		}
		page, ok := m.(*RoutePage)
		if !ok {
			t.Fatalf("match = %T, want *RoutePage", m)
		}
		if page.Partial != "about.html" {
			t.Errorf("partial = %q, want about.html", page.Partial)
		}
	})

	t.Run("nested index", func(t *testing.T) {
		m, err := Match(SplitPath("/blog"), manifest)
		if err != nil {
			t.Fatalf("Match returned error: %v", err)
		}
		idx, ok := m.(*RouteIndex)
		if !ok {
			t.Fatalf("match = %T, want *RouteIndex", m)
		}
		if idx.Partial != "blog/%.html" {
			t.Errorf("partial = %q, want blog/%%.html", idx.Partial)
		}
	})

	t.Run("nested page", func(t *testing.T) {
		m, err := Match(SplitPath("/blog/archive"), manifest)
		if err != nil {
			t.Fatalf("Match returned error: %v", err)
		}
		if page, ok := m.(*RoutePage); !ok || page.Partial != "blog/archive.html" {
			t.Errorf("match = %+v, want page blog/archive.html", m)
		}
	})

	t.Run("no match", func(t *testing.T) {
		for _, path := range []string{"/missing", "/blog/archive/deeper", "/about/nested"} {
			m, err := Match(SplitPath(path), manifest)
			if err != nil {
				t.Fatalf("Match(%q) returned error: %v", path, err)
			}
			if m != nil {
				t.Errorf("Match(%q) = %+v, want no match", path, m)
			}
		}
	})

	t.Run("index absent", func(t *testing.T) {
		m, err := Match(SplitPath("/"), &RouteNode{
			Seg:       "/",
			Fallbacks: make(map[string]*RouteFallback),
			Slots:     make(map[string]Route),
			Children:  make(map[string]Route),
		})
		if err != nil {
			t.Fatalf("Match returned error: %v", err)
		}
		if m != nil {
			t.Errorf("match = %+v, want no match", m)
		}
	})
}

func TestMatchNotImplemented(t *testing.T) {
	t.Run("intercept", func(t *testing.T) {
		root := &RouteNode{
			Seg:       "/",
			Fallbacks: make(map[string]*RouteFallback),
			Slots:     make(map[string]Route),
			Children: map[string]Route{
				"photo": &RouteIntercept{Seg: "photo", Children: make(map[string]Route)},
			},
		}
		if _, err := Match(SplitPath("/photo"), root); !errors.Is(err, ErrNotImplemented) {
			t.Errorf("error = %v, want ErrNotImplemented", err)
		}
	})

	t.Run("public", func(t *testing.T) {
		root := &RouteNode{
			Seg:       "/",
			Fallbacks: make(map[string]*RouteFallback),
			Slots:     make(map[string]Route),
			Children: map[string]Route{
				"logo": &RoutePublic{Seg: "logo", Ext: "svg"},
			},
		}
		if _, err := Match(SplitPath("/logo"), root); !errors.Is(err, ErrNotImplemented) {
			t.Errorf("error = %v, want ErrNotImplemented", err)
		}
	})
}
