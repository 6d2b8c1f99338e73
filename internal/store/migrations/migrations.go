// Package migrations embeds the goose SQL migrations for both stores: the
// per-user notes store and the single system store holding user credentials.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed notes/*.sql system/*.sql
var files embed.FS

// Notes returns the migration set for a per-user notes store.
func Notes() fs.FS {
	sub, err := fs.Sub(files, "notes")
	if err != nil {
		panic(err)
	}
	return sub
}

// System returns the migration set for the credentials store.
func System() fs.FS {
	sub, err := fs.Sub(files, "system")
	if err != nil {
		panic(err)
	}
	return sub
}
