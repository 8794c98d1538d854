package routes

import (
	"os"
	"path/filepath"
)

// FSNode is one node of the filesystem tree handed to the compiler.
// Children carry the enumeration order of the directory read; every later
// transform preserves that order, which is what makes index, layout and
// duplicate detection deterministic.
type FSNode struct {
	// Filename is the base name of the entry (e.g. "about.tsx").
	Filename string

	// RelPath is the path relative to the scanned root (e.g. "blog/about.tsx").
	// The root node's RelPath is ".".
	RelPath string

	// IsDir indicates a directory node.
	IsDir bool

	// Children are the directory entries in enumeration order. Only set
	// for directories.
	Children []*FSNode
}

// ReadTree reads the directory at root into an FSNode tree.
//
// Entries are enumerated with os.ReadDir, which sorts by filename, so two
// reads of an unchanged directory produce identical trees. Reading is the
// compiler's only I/O; both compile passes are pure functions of the
// returned tree.
func ReadTree(root string) (*FSNode, error) {
	node := &FSNode{
		Filename: filepath.Base(root),
		RelPath:  ".",
		IsDir:    true,
	}
	if err := readChildren(root, node); err != nil {
		return nil, err
	}
	return node, nil
}

func readChildren(dir string, parent *FSNode) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		rel := entry.Name()
		if parent.RelPath != "." {
			rel = parent.RelPath + "/" + entry.Name()
		}

		child := &FSNode{
			Filename: entry.Name(),
			RelPath:  rel,
			IsDir:    entry.IsDir(),
		}

		if entry.IsDir() {
			if err := readChildren(filepath.Join(dir, entry.Name()), child); err != nil {
				return err
			}
		}

		parent.Children = append(parent.Children, child)
	}

	return nil
}
