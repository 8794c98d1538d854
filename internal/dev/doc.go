// Package dev implements the Arbor development server.
//
// The server watches the routes directory, recompiles the route
// manifest on change, and pushes the fresh manifest to connected
// browsers over a WebSocket reload channel. It also exposes the
// compiled manifest, a route matching endpoint for debugging, and
// Prometheus metrics:
//
//	GET /__arbor/manifest.json   current manifest
//	GET /__arbor/routes.json     current route config tree
//	GET /__arbor/match?path=/x   resolve a URL against the manifest
//	GET /__arbor/reload          WebSocket reload channel
//	GET /__arbor/reload.js       reload client script
//	GET /metrics                 Prometheus metrics
//
// Everything else is served from the project's public directory.
package dev
