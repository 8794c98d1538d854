// Package errors provides structured, actionable error messages for the
// Arbor CLI and dev server.
//
// Each error carries a unique code (e.g. "R002") that maps to a short
// message, a longer explanation and a documentation URL, plus optional
// per-occurrence detail: the offending route path, a fix suggestion, a
// wrapped cause.
//
// # Error Categories
//
//   - routing: violations of the route naming convention (the compile pass)
//   - config:  arbor.json problems
//   - dev:     dev server and watcher failures
//   - publish: deployment failures
//   - cli:     everything else surfaced by the CLI
//
// # Usage
//
//	err := errors.New("R002").
//	    WithPath("app/routes/blog").
//	    WithSuggestion("Keep a single index file per directory")
//
//	fmt.Println(err.Format())
package errors
