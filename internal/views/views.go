// Package views holds the page templates, embedded into the binary.
package views

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html
var templates embed.FS

// Layout wraps every page.
const Layout = "layout"

// Engine returns a fiber view engine over the embedded templates.
func Engine() *html.Engine {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}
