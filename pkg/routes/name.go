package routes

import (
	"fmt"
	"regexp"
	"strings"
)

// NameKind classifies a parsed filename.
type NameKind int

const (
	// NameSegment is an ordinary URL segment, possibly parameterized or
	// intercepting.
	NameSegment NameKind = iota

	// NameGroup is a route group "(name)"; groups organize files without
	// contributing a URL segment.
	NameGroup

	// NameSlot is a parallel slot "@name".
	NameSlot

	// NameFallback is a fallback leaf "*name".
	NameFallback
)

// ParamKind classifies the parameter form of a segment.
type ParamKind int

const (
	ParamNone ParamKind = iota

	// ParamRequired is "[name]".
	ParamRequired

	// ParamOptional is "[[name]]".
	ParamOptional

	// ParamCatchAll is "[...name]".
	ParamCatchAll
)

// String returns the parameter kind for diagnostics and JSON output.
func (p ParamKind) String() string {
	switch p {
	case ParamNone:
		return "none"
	case ParamRequired:
		return "required"
	case ParamOptional:
		return "optional"
	case ParamCatchAll:
		return "catch-all"
	default:
		panic(fmt.Sprintf("routes: unhandled param kind %d", int(p)))
	}
}

// InterceptKind classifies an interception prefix. An intercepting route
// rebinds itself to an ancestor of its physical directory position.
type InterceptKind int

const (
	InterceptNone InterceptKind = iota

	// InterceptSameLevel is "(.)name".
	InterceptSameLevel

	// InterceptOneUp is "(..)name".
	InterceptOneUp

	// InterceptTwoUp is "(..)(..)name".
	InterceptTwoUp

	// InterceptRoot is "(...)name".
	InterceptRoot
)

// String returns the intercept kind for diagnostics and JSON output.
func (k InterceptKind) String() string {
	switch k {
	case InterceptNone:
		return "none"
	case InterceptSameLevel:
		return "same-level"
	case InterceptOneUp:
		return "one-up"
	case InterceptTwoUp:
		return "two-up"
	case InterceptRoot:
		return "root"
	default:
		panic(fmt.Sprintf("routes: unhandled intercept kind %d", int(k)))
	}
}

// Name is a filename resolved against the routing grammar. It is computed
// per filesystem node and never persisted.
type Name struct {
	Kind      NameKind
	Name      string
	Param     ParamKind
	Intercept InterceptKind
	Ext       string
}

// Filename grammar. First match wins, in the order group, slot, fallback,
// segment; layout files never reach the parser (see IsLayout).
var (
	groupRe    = regexp.MustCompile(`^\(([^)]+)\)(?:\.(.+))?$`)
	slotRe     = regexp.MustCompile(`^@(\w[\w-]*)(?:\.(.+))?$`)
	fallbackRe = regexp.MustCompile(`^\*(\w[\w-]*)(?:\.(.+))?$`)
	optionalRe = regexp.MustCompile(`^\[\[(\w[\w-]*)\]\](?:\.(.+))?$`)
	catchAllRe = regexp.MustCompile(`^\[\.\.\.(\w[\w-]*)\](?:\.(.+))?$`)
	requiredRe = regexp.MustCompile(`^\[(\w[\w-]*)\](?:\.(.+))?$`)
	escapedRe  = regexp.MustCompile(`^(\w[\w-]*)\(([^)]+)\)(?:\.(.+))?$`)
	plainRe    = regexp.MustCompile(`^(\w[\w-]*)(?:\.(.+))?$`)
)

// Interception prefixes, longest first so "(..)(..)" is not read as "(..)"
// and "(...)" is not read as a shorter form.
var interceptPrefixes = []struct {
	prefix string
	kind   InterceptKind
}{
	{"(..)(..)", InterceptTwoUp},
	{"(...)", InterceptRoot},
	{"(..)", InterceptOneUp},
	{"(.)", InterceptSameLevel},
}

// IsLayout reports whether a filename names a directory layout: exactly one
// leading underscore ("_layout.tsx" is a layout, "__layout.tsx" is not).
func IsLayout(filename string) bool {
	return strings.HasPrefix(filename, "_") && !strings.HasPrefix(filename, "__")
}

// ParseName classifies a single filename against the routing grammar.
// The caller has already excluded layout files. An unrecognized filename
// is a fatal ErrInvalidSegment.
func ParseName(filename string) (Name, error) {
	if m := groupRe.FindStringSubmatch(filename); m != nil {
		return Name{Kind: NameGroup, Name: m[1], Ext: m[2]}, nil
	}

	if m := slotRe.FindStringSubmatch(filename); m != nil {
		return Name{Kind: NameSlot, Name: m[1], Ext: m[2]}, nil
	}

	if m := fallbackRe.FindStringSubmatch(filename); m != nil {
		return Name{Kind: NameFallback, Name: m[1], Ext: m[2]}, nil
	}

	rest := filename
	intercept := InterceptNone
	for _, p := range interceptPrefixes {
		if strings.HasPrefix(rest, p.prefix) {
			rest = strings.TrimPrefix(rest, p.prefix)
			intercept = p.kind
			break
		}
	}

	if m := optionalRe.FindStringSubmatch(rest); m != nil {
		return Name{Kind: NameSegment, Name: m[1], Param: ParamOptional, Intercept: intercept, Ext: m[2]}, nil
	}
	if m := catchAllRe.FindStringSubmatch(rest); m != nil {
		return Name{Kind: NameSegment, Name: m[1], Param: ParamCatchAll, Intercept: intercept, Ext: m[2]}, nil
	}
	if m := requiredRe.FindStringSubmatch(rest); m != nil {
		return Name{Kind: NameSegment, Name: m[1], Param: ParamRequired, Intercept: intercept, Ext: m[2]}, nil
	}

	// Escaped form: "name(group).tsx" keeps the literal name as the
	// segment so two filenames can map to the same visual route.
	if m := escapedRe.FindStringSubmatch(rest); m != nil {
		return Name{Kind: NameSegment, Name: m[1], Intercept: intercept, Ext: m[3]}, nil
	}

	if m := plainRe.FindStringSubmatch(rest); m != nil {
		return Name{Kind: NameSegment, Name: m[1], Intercept: intercept, Ext: m[2]}, nil
	}

	return Name{}, fmt.Errorf("%w: %q", ErrInvalidSegment, filename)
}

// PathSegment derives the URL segment contributed by the name. Groups
// contribute no segment, signaled by ok = false.
func (n Name) PathSegment() (path string, ok bool) {
	switch n.Kind {
	case NameGroup:
		return "", false
	case NameSlot:
		return "/@" + n.Name, true
	case NameFallback:
		return "/^" + n.Name, true
	case NameSegment:
		switch n.Param {
		case ParamRequired:
			return "/:" + n.Name, true
		case ParamOptional:
			return "/:" + n.Name + "?", true
		case ParamCatchAll:
			return "/*" + n.Name, true
		case ParamNone:
			return "/" + n.Name, true
		default:
			panic(fmt.Sprintf("routes: unhandled param kind %d", int(n.Param)))
		}
	default:
		panic(fmt.Sprintf("routes: unhandled name kind %d", int(n.Kind)))
	}
}
