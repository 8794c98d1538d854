package routes

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestManifestJSON(t *testing.T) {
	tree := dir(".", ".",
		dir("blog", "blog",
			file("*missing.tsx", "blog/*missing.tsx"),
			file("[id].tsx", "blog/[id].tsx"),
			file("index.tsx", "blog/index.tsx"),
		),
		file("_layout.tsx", "_layout.tsx"),
		file("index.tsx", "index.tsx"),
	)
	manifest := compile(t, tree)

	data, err := json.Marshal(manifest)
	if err != nil {
		t.Fatalf("marshal returned error: %v", err)
	}

	for _, want := range []string{
		`"kind":"node"`,
		`"kind":"index"`,
		`"kind":"page"`,
		`"kind":"fallback"`,
		`"partial":"%.html"`,
		`"partial":"blog/%.html"`,
		`"param":"required"`,
		`"^missing"`,
		`"_layout.html"`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("encoded manifest missing %s:\n%s", want, data)
		}
	}

	again, err := json.Marshal(manifest)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, again) {
		t.Error("two encodings of one manifest differ")
	}
}

func TestConfigJSON(t *testing.T) {
	tree := dir(".", ".",
		dir("feed", "feed",
			file("(..)photo.tsx", "feed/(..)photo.tsx"),
		),
		file("chart.js", "chart.js"),
		file("index.tsx", "index.tsx"),
	)

	cfg, err := BuildRouteConfig(tree)
	if err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal returned error: %v", err)
	}

	for _, want := range []string{
		`"kind":"node"`,
		`"kind":"page"`,
		`"path":"/"`,
		`"intercept":"one-up"`,
		`"scripts":["chart.js"]`,
		`"file":"index.tsx"`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("encoded config missing %s:\n%s", want, data)
		}
	}
}
