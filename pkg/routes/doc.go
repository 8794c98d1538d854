// Package routes compiles a file-based routing convention into a route
// manifest.
//
// The compiler runs in two passes over a directory tree:
//
//  1. BuildRouteConfig resolves the filename convention (parameter
//     segments, route groups, parallel slots, intercepted routes, fallback
//     routes, layouts, client scripts) into a typed route configuration
//     tree that mirrors the filesystem.
//
//  2. BuildManifest collapses path segments, accumulates layout chains,
//     assigns a stable partial artifact path to every route, and merges
//     sibling subtrees that share a URL segment.
//
// # Naming convention
//
//   - about.tsx          static segment        /about
//   - [id].tsx           required parameter    /:id
//   - [[id]].tsx         optional parameter    /:id?
//   - [...rest].tsx      catch-all parameter   /*rest
//   - (marketing)/       route group, contributes no URL segment
//   - @sidebar/          parallel slot         /@sidebar
//   - *error.tsx         fallback leaf         /^error
//   - (.)photo.tsx       same-level intercept
//   - (..)photo.tsx      one-level-up intercept
//   - (..)(..)photo.tsx  two-levels-up intercept
//   - (...)photo.tsx     root intercept
//   - _layout.tsx        directory layout (exactly one leading underscore)
//   - index.tsx          directory index, partial basename "%"
//
// Within manifest segments the markers "*", "?", "**", "@", "^" and "%"
// are reserved for required, optional and catch-all parameters, slots,
// fallbacks and index partials respectively.
//
// Every convention violation is a fatal compile error; there is no partial
// manifest. Both passes are pure functions of their input tree, so
// compiling the same tree twice yields structurally identical output.
package routes
