// Package cli provides the interactive GoMate command-line client.
//
// It wires configuration, local storage, the catalog and the application
// services into an interactive REPL. Typical flow: restore the previous
// session, then browse destinations and routes, star favourites and look at
// recently viewed routes.
//
// Key features:
//   - Register / Login / Logout, profile and password changes
//   - Destinations, search, routes with their schedules
//   - Favourites (destinations, routes, schedules) and recent routes
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See Bootstrap, App and runREPL for details.
package cli
