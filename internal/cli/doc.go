// Package cli provides the interactive notekeeper command-line client.
//
// It wires configuration, the key vault, the sealed per-user stores, and an
// interactive REPL. Typical flow: resume the previous session from the saved
// token if possible, otherwise prompt for credentials, then execute user
// commands against the open store.
//
// Key features:
//   - Register / Login / Logout against the local system store
//   - Add and edit notes in the per-user store
//   - List notes, newest first
//   - Watch the live note feed
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
