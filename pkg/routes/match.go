package routes

import (
	"fmt"
	"strings"
)

// SplitPath splits a URL path into matcher segments: a synthetic leading
// "/" followed by the non-empty path components.
func SplitPath(urlPath string) []string {
	segments := []string{"/"}
	for _, s := range strings.Split(urlPath, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// Match walks a manifest against URL segments (as produced by SplitPath)
// and returns the first matching page or index, or nil when nothing
// matches. Match is a debugging aid; the production matcher lives in the
// rendering layer.
func Match(segments []string, route Route) (Route, error) {
	if len(segments) == 0 {
		return nil, nil
	}

	switch r := route.(type) {
	case *RoutePage:
		if len(segments) == 1 && segments[0] == r.Seg {
			return r, nil
		}
		return nil, nil

	case *RouteNode:
		if segments[0] != r.Seg {
			return nil, nil
		}
		rest := segments[1:]
		if len(rest) == 0 {
			if r.Index == nil {
				return nil, nil
			}
			return r.Index, nil
		}
		for _, k := range sortedKeys(r.Children) {
			m, err := Match(rest, r.Children[k])
			if err != nil {
				return nil, err
			}
			if m != nil {
				return m, nil
			}
		}
		return nil, nil

	case *RouteIndex, *RouteFallback:
		// Indexes and fallbacks are reached through their parent node,
		// never matched directly.
		return nil, nil

	case *RoutePublic:
		return nil, fmt.Errorf("public route %s: %w", r.Seg, ErrNotImplemented)

	case *RouteIntercept:
		return nil, fmt.Errorf("intercepted route %s: %w", r.Seg, ErrNotImplemented)

	default:
		panic(fmt.Sprintf("routes: unhandled route %T", route))
	}
}
