// Package web serves the lexicon JSON API and a single-page search form.
// Binds to localhost by default; there is no auth.
package web

import "embed"

//go:embed static/index.html
var staticFS embed.FS
