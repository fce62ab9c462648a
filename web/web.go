// Package web embeds the host page, admin templates, static assets and the
// default language files.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates static lang
var FS embed.FS

// HostPage returns the homepage document that content is written into.
func HostPage() ([]byte, error) {
	return FS.ReadFile("templates/index.html")
}

// Templates parses the gin-rendered pages.
func Templates() (*template.Template, error) {
	return template.ParseFS(FS, "templates/*.tmpl")
}

// Static is the asset tree served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(FS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Lang is the directory of embedded language files.
func Lang() fs.FS {
	sub, err := fs.Sub(FS, "lang")
	if err != nil {
		panic(err)
	}
	return sub
}
