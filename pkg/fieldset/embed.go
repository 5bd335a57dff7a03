package fieldset

import (
	"embed"
	"io/fs"
)

//go:embed catalog/*.yaml
var embeddedCatalog embed.FS

// EmbeddedFS returns the bundled back-office fieldsets. Pass it to LoadFS, or
// use Default.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedCatalog, "catalog")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}
