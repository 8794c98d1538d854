package routes

import (
	"fmt"
	"strings"
)

// ConfigKind discriminates the route configuration variants.
type ConfigKind int

const (
	// ConfigPage is a leaf route backed by a single file.
	ConfigPage ConfigKind = iota

	// ConfigNode is an internal route backed by a directory.
	ConfigNode
)

// scriptSuffix marks client script files. Scripts are collected per
// directory in addition to, not instead of, their ordinary route role.
const scriptSuffix = ".js"

// RouteConfig is one node of the route configuration tree: the filesystem
// mirrored with convention syntax resolved into typed fields.
type RouteConfig struct {
	Kind      ConfigKind
	Intercept InterceptKind

	// Path is the URL segment already resolved from the parsed name,
	// e.g. "/about", "/:id", "/@sidebar". The configuration root is "/".
	Path  string
	Param ParamKind

	// File is the source file backing a page, relative to the scanned root.
	File string

	// Layout is the directory's layout file, if any. At most one.
	Layout string

	// Scripts are the directory's client script files in filesystem order.
	Scripts []string

	// Children holds child routes in filesystem order. A directory index
	// is a synthetic page with Path "/" at the front.
	Children []*RouteConfig
}

// BuildRouteConfig turns a filesystem tree into a route configuration
// tree. Any violation of the naming convention aborts the pass; there is
// no partial result.
func BuildRouteConfig(tree *FSNode) (*RouteConfig, error) {
	if !tree.IsDir {
		return nil, fmt.Errorf("%s: %w", tree.RelPath, ErrInvalidRoutePath)
	}
	return buildDir(tree, Name{}, true)
}

// buildDir builds the configuration node for one directory. name is the
// directory's own parsed name; it is ignored for the configuration root.
func buildDir(dir *FSNode, name Name, root bool) (*RouteConfig, error) {
	node := &RouteConfig{
		Kind:      ConfigNode,
		Intercept: name.Intercept,
		Param:     name.Param,
	}

	if root {
		node.Path = "/"
	} else {
		p, ok := name.PathSegment()
		if !ok || p == "" {
			return nil, fmt.Errorf("%s: %w", dir.RelPath, ErrInvalidRoutePath)
		}
		node.Path = p
	}

	indexFile, err := findIndex(dir)
	if err != nil {
		return nil, err
	}
	if indexFile != nil {
		node.Children = append(node.Children, &RouteConfig{
			Kind: ConfigPage,
			Path: "/",
			File: indexFile.RelPath,
		})
	}

	layout, err := findLayout(dir, indexFile)
	if err != nil {
		return nil, err
	}
	node.Layout = layout

	for _, child := range dir.Children {
		if child == indexFile {
			continue
		}
		if !child.IsDir && IsLayout(child.Filename) {
			continue
		}
		if err := convertChild(node, child); err != nil {
			return nil, err
		}
	}

	return node, nil
}

// findIndex scans a directory's direct children for its index file: a
// plain segment named exactly "index", or a group-classified file (a
// group file at index position is treated as an index placeholder).
func findIndex(dir *FSNode) (*FSNode, error) {
	var index *FSNode

	for _, child := range dir.Children {
		if child.IsDir || IsLayout(child.Filename) {
			continue
		}

		n, err := ParseName(child.Filename)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", child.RelPath, err)
		}

		candidate := n.Kind == NameGroup ||
			(n.Kind == NameSegment && n.Name == "index" &&
				n.Param == ParamNone && n.Intercept == InterceptNone)
		if !candidate {
			continue
		}

		if index != nil {
			return nil, fmt.Errorf("%s: %w", dir.RelPath, ErrMultipleIndexRoutes)
		}
		index = child
	}

	return index, nil
}

// findLayout scans a directory's direct children, minus its index, for
// its layout file. At most one is allowed.
func findLayout(dir *FSNode, indexFile *FSNode) (string, error) {
	var layout string

	for _, child := range dir.Children {
		if child.IsDir || child == indexFile || !IsLayout(child.Filename) {
			continue
		}
		if layout != "" {
			return "", fmt.Errorf("%s: %w", dir.RelPath, ErrMultipleLayouts)
		}
		layout = child.RelPath
	}

	return layout, nil
}

// convertChild resolves one child entry into a route and appends it to
// parent. Group directories are flattened in place: their children are
// converted recursively, depth-first and order-preserving, as if they were
// direct children of parent.
func convertChild(parent *RouteConfig, child *FSNode) error {
	n, err := ParseName(child.Filename)
	if err != nil {
		return fmt.Errorf("%s: %w", child.RelPath, err)
	}

	if !child.IsDir && strings.HasSuffix(child.Filename, scriptSuffix) {
		parent.Scripts = append(parent.Scripts, child.RelPath)
	}

	switch n.Kind {
	case NameGroup:
		if !child.IsDir {
			// Group files only ever stand in for an index; reaching one
			// here means it showed up where a segment was expected.
			return fmt.Errorf("%s: %w", child.RelPath, ErrUnexpectedGroup)
		}
		for _, gc := range child.Children {
			if err := convertChild(parent, gc); err != nil {
				return err
			}
		}
		return nil

	case NameFallback:
		if child.IsDir {
			return fmt.Errorf("%s: %w", child.RelPath, ErrInvalidFallbackDirectory)
		}

	case NameSegment, NameSlot:
		// Converted below.

	default:
		panic(fmt.Sprintf("routes: unhandled name kind %d", int(n.Kind)))
	}

	p, ok := n.PathSegment()
	if !ok || p == "" {
		return fmt.Errorf("%s: %w", child.RelPath, ErrInvalidRoutePath)
	}

	if child.IsDir {
		sub, err := buildDir(child, n, false)
		if err != nil {
			return err
		}
		parent.Children = append(parent.Children, sub)
		return nil
	}

	parent.Children = append(parent.Children, &RouteConfig{
		Kind:      ConfigPage,
		Intercept: n.Intercept,
		Path:      p,
		Param:     n.Param,
		File:      child.RelPath,
	})
	return nil
}
