package web

import (
	"embed"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"
)

//go:embed views
var viewsFS embed.FS

// NewEngine builds the html engine over the embedded templates.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("money", Money)
	engine.AddFunc("itoa", strconv.Itoa)
	return engine
}

// Money formats an amount with two fractional digits.
func Money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
