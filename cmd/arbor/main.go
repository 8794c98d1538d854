package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arbor-dev/arbor/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔═╗┬─┐┌┐ ┌─┐┬─┐
  ╠═╣├┬┘├┴┐│ │├┬┘
  ╩ ╩┴└─└─┘└─┘┴└─
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "arbor",
		Short: "Filesystem route compiler for partial rendering",
		Long: `Arbor compiles a conventions-based routes directory into a
route manifest for partial rendering.

Route structure lives in filenames:

  • [id] required and [[id]] optional parameters
  • [...rest] catch-all segments
  • (group) directories that organize without routing
  • @slot parallel routes and *name fallbacks
  • (.) (..) (...) route interception
  • _layout files that wrap their subtree`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		routesCmd(),
		devCmd(),
		publishCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		var arborErr *errors.ArborError
		if errors.As(err, &arborErr) {
			fmt.Fprintln(os.Stderr, arborErr.Format())
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

// printBanner prints the Arbor ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
