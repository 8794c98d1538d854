package routes

import (
	"errors"
	"testing"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		filename string
		want     Name
	}{
		{"about.tsx", Name{Kind: NameSegment, Name: "about", Ext: "tsx"}},
		{"about", Name{Kind: NameSegment, Name: "about"}},
		{"index.tsx", Name{Kind: NameSegment, Name: "index", Ext: "tsx"}},
		{"archive.2024.tsx", Name{Kind: NameSegment, Name: "archive", Ext: "2024.tsx"}},

		{"[id].tsx", Name{Kind: NameSegment, Name: "id", Param: ParamRequired, Ext: "tsx"}},
		{"[[id]].tsx", Name{Kind: NameSegment, Name: "id", Param: ParamOptional, Ext: "tsx"}},
		{"[...rest].tsx", Name{Kind: NameSegment, Name: "rest", Param: ParamCatchAll, Ext: "tsx"}},
		{"[id]", Name{Kind: NameSegment, Name: "id", Param: ParamRequired}},

		{"(marketing)", Name{Kind: NameGroup, Name: "marketing"}},
		{"(marketing).tsx", Name{Kind: NameGroup, Name: "marketing", Ext: "tsx"}},

		{"@sidebar", Name{Kind: NameSlot, Name: "sidebar"}},
		{"@sidebar.tsx", Name{Kind: NameSlot, Name: "sidebar", Ext: "tsx"}},

		{"*error.tsx", Name{Kind: NameFallback, Name: "error", Ext: "tsx"}},
		{"*error", Name{Kind: NameFallback, Name: "error"}},

		{"(.)photo.tsx", Name{Kind: NameSegment, Name: "photo", Intercept: InterceptSameLevel, Ext: "tsx"}},
		{"(..)photo.tsx", Name{Kind: NameSegment, Name: "photo", Intercept: InterceptOneUp, Ext: "tsx"}},
		{"(..)(..)photo.tsx", Name{Kind: NameSegment, Name: "photo", Intercept: InterceptTwoUp, Ext: "tsx"}},
		{"(...)photo.tsx", Name{Kind: NameSegment, Name: "photo", Intercept: InterceptRoot, Ext: "tsx"}},
		{"(..)[id].tsx", Name{Kind: NameSegment, Name: "id", Param: ParamRequired, Intercept: InterceptOneUp, Ext: "tsx"}},

		{"photo(modal).tsx", Name{Kind: NameSegment, Name: "photo", Ext: "tsx"}},
		{"photo(full)", Name{Kind: NameSegment, Name: "photo"}},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, err := ParseName(tt.filename)
			if err != nil {
				t.Fatalf("ParseName(%q) returned error: %v", tt.filename, err)
			}
			if got != tt.want {
				t.Errorf("ParseName(%q) = %+v, want %+v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestParseNameInvalid(t *testing.T) {
	tests := []string{
		"",
		".env",
		".hidden.tsx",
		"[].tsx",
		"[id.tsx",
		"id].tsx",
		"na me.tsx",
		"!bang.tsx",
	}

	for _, filename := range tests {
		t.Run(filename, func(t *testing.T) {
			if _, err := ParseName(filename); !errors.Is(err, ErrInvalidSegment) {
				t.Errorf("ParseName(%q) error = %v, want ErrInvalidSegment", filename, err)
			}
		})
	}
}

func TestPathSegment(t *testing.T) {
	tests := []struct {
		name Name
		want string
		ok   bool
	}{
		{Name{Kind: NameSegment, Name: "about"}, "/about", true},
		{Name{Kind: NameSegment, Name: "id", Param: ParamRequired}, "/:id", true},
		{Name{Kind: NameSegment, Name: "id", Param: ParamOptional}, "/:id?", true},
		{Name{Kind: NameSegment, Name: "rest", Param: ParamCatchAll}, "/*rest", true},
		{Name{Kind: NameSlot, Name: "sidebar"}, "/@sidebar", true},
		{Name{Kind: NameFallback, Name: "error"}, "/^error", true},
		{Name{Kind: NameGroup, Name: "marketing"}, "", false},
	}

	for _, tt := range tests {
		got, ok := tt.name.PathSegment()
		if got != tt.want || ok != tt.ok {
			t.Errorf("PathSegment(%+v) = (%q, %v), want (%q, %v)", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsLayout(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"_layout.tsx", true},
		{"_app.tsx", true},
		{"__layout.tsx", false},
		{"layout.tsx", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsLayout(tt.filename); got != tt.want {
			t.Errorf("IsLayout(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}
