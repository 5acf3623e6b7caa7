// Package configs embeds the JSON schemas used to validate config files.
package configs

import (
	"embed"
	"io/fs"
)

//go:embed schemas/*.json
var embedded embed.FS

// Schemas holds every schema under schemas/, addressed by file name
var Schemas fs.FS

// Schema file names
const (
	CratesSchema = "crates.schema.json"
)

func init() {
	sub, err := fs.Sub(embedded, "schemas")
	if err != nil {
		panic(err)
	}
	Schemas = sub
}
