package views

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"time"
	"unicode"
	"unicode/utf8"

	"resqall/internal/core/services"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var files embed.FS

// Layout wraps every screen
const Layout = "layouts/main"

// NewEngine returns the html engine over the embedded screen templates
func NewEngine() (*html.Engine, error) {
	root, err := fs.Sub(files, "templates")
	if err != nil {
		return nil, fmt.Errorf("views: %w", err)
	}

	engine := html.NewFileSystem(http.FS(root), ".html")
	engine.AddFunc("excerpt", func(s string) string {
		return services.Excerpt(s, services.ExcerptLength)
	})
	engine.AddFunc("date", func(t time.Time) string {
		return t.Format("Jan 2, 2006")
	})
	engine.AddFunc("title", Capitalize)
	engine.AddFunc("prev", func(page int) int { return page - 1 })
	engine.AddFunc("next", func(page int) int { return page + 1 })
	return engine, nil
}

// Capitalize upper-cases the first rune of s
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
