package routes

import "errors"

// Compile errors. Every violation of the naming convention aborts the
// whole compile pass; callers match with errors.Is.
var (
	// ErrInvalidSegment reports a filename no grammar rule accepts.
	ErrInvalidSegment = errors.New("invalid route segment")

	// ErrMultipleIndexRoutes reports more than one index candidate in a
	// directory, or more than one index arriving at a manifest node.
	ErrMultipleIndexRoutes = errors.New("multiple index routes")

	// ErrMultipleLayouts reports more than one layout file in a directory.
	ErrMultipleLayouts = errors.New("multiple layouts")

	// ErrUnexpectedGroup reports a group file where a segment was expected.
	ErrUnexpectedGroup = errors.New("unexpected group")

	// ErrInvalidFallbackDirectory reports a directory classified as a
	// fallback; fallbacks must be leaf files.
	ErrInvalidFallbackDirectory = errors.New("invalid fallback directory")

	// ErrInvalidRoutePath reports a directory whose resolved path is empty.
	ErrInvalidRoutePath = errors.New("invalid route path")

	// ErrCannotMergePage reports a page route on either side of a merge.
	ErrCannotMergePage = errors.New("cannot merge page route")

	// ErrCannotMergeIntercept reports an intercept route on either side of
	// a merge.
	ErrCannotMergeIntercept = errors.New("cannot merge intercepted route")

	// ErrCannotMergePublic reports a public route on either side of a merge.
	ErrCannotMergePublic = errors.New("cannot merge public route")

	// ErrCannotMergeFallback reports two fallbacks claiming one segment.
	ErrCannotMergeFallback = errors.New("cannot merge fallback routes")

	// ErrCannotMergeSlot reports two slots claiming one segment.
	ErrCannotMergeSlot = errors.New("cannot merge slot routes")

	// ErrRouteSegmentMismatch reports a merge of routes with different
	// segments.
	ErrRouteSegmentMismatch = errors.New("route segment mismatch")

	// ErrNotImplemented reports a matcher walk reaching a public or
	// intercepted route, which the debug matcher does not support.
	ErrNotImplemented = errors.New("route kind not implemented")
)
