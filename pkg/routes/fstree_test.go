package routes

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("export {}\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestReadTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "index.tsx"))
	writeFile(t, filepath.Join(root, "about.tsx"))
	writeFile(t, filepath.Join(root, "blog", "index.tsx"))
	writeFile(t, filepath.Join(root, "blog", "[id].tsx"))

	tree, err := ReadTree(root)
	if err != nil {
		t.Fatalf("ReadTree returned error: %v", err)
	}

	if !tree.IsDir || tree.RelPath != "." {
		t.Fatalf("root = %+v, want directory at .", tree)
	}

	var names []string
	for _, c := range tree.Children {
		names = append(names, c.Filename)
	}
	// os.ReadDir sorts entries, so enumeration order is lexicographic.
	want := []string{"about.tsx", "blog", "index.tsx"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("children = %v, want %v", names, want)
	}

	blog := tree.Children[1]
	if !blog.IsDir || blog.RelPath != "blog" {
		t.Fatalf("blog = %+v, want directory at blog", blog)
	}
	if got := blog.Children[0].RelPath; got != "blog/[id].tsx" {
		t.Errorf("blog child RelPath = %q, want blog/[id].tsx", got)
	}
}

func TestReadTreeDeterministic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "index.tsx"))
	writeFile(t, filepath.Join(root, "docs", "setup.tsx"))

	first, err := ReadTree(root)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ReadTree(root)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two reads of an unchanged directory differ")
	}
}

func TestReadTreeMissing(t *testing.T) {
	if _, err := ReadTree(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("ReadTree on a missing directory did not fail")
	}
}
