package errors

import (
	stderrors "errors"

	"github.com/arbor-dev/arbor/pkg/routes"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Routing Errors (R001-R099)
	// ============================================

	"R001": {
		Category: CategoryRouting,
		Message:  "Invalid route segment",
		Detail:   "The filename does not match any rule of the routing grammar. Segments are plain names, [param], [[param]], [...param], (group), @slot or *fallback forms.",
		DocURL:   "https://arbor.dev/docs/errors/R001",
	},
	"R002": {
		Category: CategoryRouting,
		Message:  "Multiple index routes",
		Detail:   "A directory may carry at most one index file. Group files at index position count as index placeholders.",
		DocURL:   "https://arbor.dev/docs/errors/R002",
	},
	"R003": {
		Category: CategoryRouting,
		Message:  "Multiple layouts",
		Detail:   "A directory may carry at most one layout file (a name with exactly one leading underscore).",
		DocURL:   "https://arbor.dev/docs/errors/R003",
	},
	"R004": {
		Category: CategoryRouting,
		Message:  "Unexpected group",
		Detail:   "A group file showed up where a segment was expected. Groups organize directories; group files only stand in for an index.",
		DocURL:   "https://arbor.dev/docs/errors/R004",
	},
	"R005": {
		Category: CategoryRouting,
		Message:  "Fallback routes must be files",
		Detail:   "A *fallback name was used for a directory. Fallbacks are leaf routes.",
		DocURL:   "https://arbor.dev/docs/errors/R005",
	},
	"R006": {
		Category: CategoryRouting,
		Message:  "Empty route path",
		Detail:   "The directory resolved to an empty URL segment.",
		DocURL:   "https://arbor.dev/docs/errors/R006",
	},
	"R010": {
		Category: CategoryRouting,
		Message:  "Conflicting page routes",
		Detail:   "Two routes claim the same URL segment and at least one of them is a page. Pages never merge with siblings.",
		DocURL:   "https://arbor.dev/docs/errors/R010",
	},
	"R011": {
		Category: CategoryRouting,
		Message:  "Conflicting intercepted routes",
		Detail:   "An intercepted route claims a URL segment another route also claims.",
		DocURL:   "https://arbor.dev/docs/errors/R011",
	},
	"R012": {
		Category: CategoryRouting,
		Message:  "Conflicting public routes",
		Detail:   "A public route claims a URL segment another route also claims.",
		DocURL:   "https://arbor.dev/docs/errors/R012",
	},
	"R013": {
		Category: CategoryRouting,
		Message:  "Conflicting fallback routes",
		Detail:   "Two fallback routes resolve to the same segment under one directory.",
		DocURL:   "https://arbor.dev/docs/errors/R013",
	},
	"R014": {
		Category: CategoryRouting,
		Message:  "Conflicting slot routes",
		Detail:   "Two parallel slots resolve to the same segment under one directory.",
		DocURL:   "https://arbor.dev/docs/errors/R014",
	},
	"R015": {
		Category: CategoryRouting,
		Message:  "Route segment mismatch",
		Detail:   "Two routes with different segments were merged. This indicates a compiler bug rather than a convention violation.",
		DocURL:   "https://arbor.dev/docs/errors/R015",
	},
	"R016": {
		Category: CategoryRouting,
		Message:  "Route kind not supported by the matcher",
		Detail:   "The debug matcher does not resolve public or intercepted routes.",
		DocURL:   "https://arbor.dev/docs/errors/R016",
	},

	// ============================================
	// Config Errors (C101-C139)
	// ============================================

	"C101": {
		Category: CategoryConfig,
		Message:  "No arbor.json found",
		Detail:   "The current directory and its parents carry no arbor.json.",
		DocURL:   "https://arbor.dev/docs/errors/C101",
	},
	"C102": {
		Category: CategoryConfig,
		Message:  "Invalid arbor.json",
		Detail:   "arbor.json exists but could not be parsed.",
		DocURL:   "https://arbor.dev/docs/errors/C102",
	},
	"C103": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		DocURL:   "https://arbor.dev/docs/errors/C103",
	},

	// ============================================
	// Dev Server Errors (D140-D159)
	// ============================================

	"D140": {
		Category: CategoryDev,
		Message:  "Routes directory not readable",
		DocURL:   "https://arbor.dev/docs/errors/D140",
	},
	"D141": {
		Category: CategoryDev,
		Message:  "Route compile failed",
		Detail:   "The routes directory violates the naming convention; no manifest was produced.",
		DocURL:   "https://arbor.dev/docs/errors/D141",
	},

	// ============================================
	// Publish Errors (P160-P179)
	// ============================================

	"P160": {
		Category: CategoryPublish,
		Message:  "Partial upload failed",
		DocURL:   "https://arbor.dev/docs/errors/P160",
	},
	"P161": {
		Category: CategoryPublish,
		Message:  "Output directory not readable",
		Detail:   "The build output directory does not exist or cannot be walked. Run a build before deploying.",
		DocURL:   "https://arbor.dev/docs/errors/P161",
	},
}

// compileCodes maps routing compile sentinels to registered codes.
var compileCodes = []struct {
	sentinel error
	code     string
}{
	{routes.ErrInvalidSegment, "R001"},
	{routes.ErrMultipleIndexRoutes, "R002"},
	{routes.ErrMultipleLayouts, "R003"},
	{routes.ErrUnexpectedGroup, "R004"},
	{routes.ErrInvalidFallbackDirectory, "R005"},
	{routes.ErrInvalidRoutePath, "R006"},
	{routes.ErrCannotMergePage, "R010"},
	{routes.ErrCannotMergeIntercept, "R011"},
	{routes.ErrCannotMergePublic, "R012"},
	{routes.ErrCannotMergeFallback, "R013"},
	{routes.ErrCannotMergeSlot, "R014"},
	{routes.ErrRouteSegmentMismatch, "R015"},
	{routes.ErrNotImplemented, "R016"},
}

// FromCompile wraps a routing compile error in its registered code so the
// CLI can format it. Non-routing errors come back as a generic D141.
func FromCompile(err error) *ArborError {
	for _, m := range compileCodes {
		if stderrors.Is(err, m.sentinel) {
			return New(m.code).Wrap(err)
		}
	}
	return New("D141").Wrap(err)
}
