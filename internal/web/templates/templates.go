// Package templates embeds the server-rendered page templates.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
