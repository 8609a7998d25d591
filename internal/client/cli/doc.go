// Package cli provides the interactive wardrobe command-line client.
//
// It wires configuration, the local session database, the HTTP client and
// the dashboard stores, then runs a REPL. Typical flow: resolve the stored
// session cookie, prompt for login if there is none, and execute commands
// against the active dashboard section.
//
// Key features:
//   - Signup / Login / Logout with a persisted cookie session
//   - Wardrobe: list, group, show, upload, delete (confirmed), re-tag
//   - Today's suggestion with an optional free-text query
//   - Multi-day planning with progress output
//   - Outfit assistant chat
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
