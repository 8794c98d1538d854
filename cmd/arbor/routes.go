package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arbor-dev/arbor/internal/config"
	"github.com/arbor-dev/arbor/internal/errors"
	"github.com/arbor-dev/arbor/pkg/routes"
)

func routesCmd() *cobra.Command {
	var (
		asJSON     bool
		showConfig bool
	)

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Compile and print the route manifest",
		Long: `Compile the routes directory and print the resulting manifest.

Examples:
  arbor routes
  arbor routes --json
  arbor routes --config
  arbor routes match /blog/hello`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoutes(asJSON, showConfig)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the manifest as JSON")
	cmd.Flags().BoolVar(&showConfig, "config", false, "Print the intermediate route configuration")

	cmd.AddCommand(matchCmd())

	return cmd
}

func matchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <path>",
		Short: "Resolve a URL path against the manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(args[0])
		},
	}
}

// compileRoutes loads the project config and runs the compile pipeline.
func compileRoutes() (*routes.RouteConfig, routes.Route, error) {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return nil, nil, err
	}

	tree, err := routes.ReadTree(cfg.RoutesPath())
	if err != nil {
		return nil, nil, errors.FromCompile(err)
	}
	routeCfg, err := routes.BuildRouteConfig(tree)
	if err != nil {
		return nil, nil, errors.FromCompile(err)
	}
	manifest, err := routes.BuildManifest(routeCfg)
	if err != nil {
		return nil, nil, errors.FromCompile(err)
	}

	return routeCfg, manifest, nil
}

func runRoutes(asJSON, showConfig bool) error {
	routeCfg, manifest, err := compileRoutes()
	if err != nil {
		return err
	}

	if asJSON || showConfig {
		var v any = manifest
		if showConfig {
			v = routeCfg
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	printBanner()
	fmt.Println()
	printRoute(manifest, "", "")
	fmt.Println()
	return nil
}

func runMatch(urlPath string) error {
	_, manifest, err := compileRoutes()
	if err != nil {
		return err
	}

	segments := routes.SplitPath(urlPath)
	matched, err := routes.Match(segments, manifest)
	if err != nil {
		return err
	}
	if matched == nil {
		errorMsg("no route matches %s", urlPath)
		return nil
	}

	success("%s matches", urlPath)
	switch r := matched.(type) {
	case *routes.RoutePage:
		info("partial: %s", r.Partial)
		printLayouts(r.Layouts)
	case *routes.RouteIndex:
		info("partial: %s", r.Partial)
		printLayouts(r.Layouts)
	default:
		info("route: %s", r.Segment())
	}
	return nil
}

func printLayouts(layouts []string) {
	for _, layout := range layouts {
		info("layout:  %s", layout)
	}
}

// printRoute renders the manifest as an indented tree.
func printRoute(route routes.Route, prefix, urlPath string) {
	switch r := route.(type) {
	case *routes.RouteNode:
		full := urlPath
		if r.Seg != "/" {
			full = urlPath + "/" + r.Seg
		}
		if full == "" {
			full = "/"
		}
		if r.Index != nil {
			fmt.Printf("%s%s  →  %s\n", prefix, full, r.Index.Partial)
		} else {
			fmt.Printf("%s%s\n", prefix, full)
		}
		base := strings.TrimSuffix(full, "/")
		for _, name := range sortedSlotNames(r.Slots) {
			printRoute(r.Slots[name], prefix+"  ", base)
		}
		for _, name := range sortedFallbackNames(r.Fallbacks) {
			f := r.Fallbacks[name]
			fmt.Printf("%s  %s/%s  →  %s\n", prefix, base, f.Seg, f.Partial)
		}
		for _, name := range sortedChildNames(r.Children) {
			printRoute(r.Children[name], prefix+"  ", base)
		}

	case *routes.RoutePage:
		fmt.Printf("%s%s/%s  →  %s\n", prefix, urlPath, r.Seg, r.Partial)

	case *routes.RouteIndex:
		fmt.Printf("%s%s/  →  %s\n", prefix, urlPath, r.Partial)

	case *routes.RouteFallback:
		fmt.Printf("%s%s/%s  →  %s\n", prefix, urlPath, r.Seg, r.Partial)

	case *routes.RouteIntercept:
		fmt.Printf("%s%s/%s  (intercepts /%s)\n", prefix, urlPath, r.Seg, strings.Join(r.Base, "/"))
		for _, name := range sortedChildNames(r.Children) {
			printRoute(r.Children[name], prefix+"  ", urlPath)
		}

	case *routes.RoutePublic:
		fmt.Printf("%s%s/%s  (reserved)\n", prefix, urlPath, r.Seg)
	}
}

func sortedChildNames(m map[string]routes.Route) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedSlotNames(m map[string]routes.Route) []string {
	return sortedChildNames(m)
}

func sortedFallbackNames(m map[string]*routes.RouteFallback) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
