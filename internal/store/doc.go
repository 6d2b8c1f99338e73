// Package store implements the sealed per-user store subsystem: the file
// janitor, the store factory, open handles, and the session that caches the
// currently open store.
//
// # Sealed-at-rest model
//
// A store is durably persisted as a single AES-GCM envelope
// (nonce||ciphertext) of a SQLite database image, named
// "notes_user_<id>.db" for per-user stores and "users.db" for the
// credentials store. While open, the store lives as a plaintext working file
// next to the sealed one (suffix ".open"); Flush reseals the image
// atomically after every write and Close removes the working files. The
// sealed file never begins with the plaintext SQLite magic, which is what
// lets the janitor treat that magic as proof of a stale artifact.
//
// # Lifecycle
//
//	janitor → vault key → unseal → open → migrate → flush ... → close
//
// Opening a store for a different user closes the previous one first; at
// most one per-user store is open process-wide. Schema-migration failures
// destructively recreate the store when the DestructiveMigrations config
// option is set (the default), an explicit accepted data-loss trade-off.
//
// Key Types
//
//   - type Factory — builds sealed stores (per-user and system)
//   - type Handle  — one open store: DB, Flush, Close
//   - type Session — owns the currently open per-user handle
//
// The package assumes single-goroutine use, matching the app's dispatch
// model; nothing here takes locks.
package store
