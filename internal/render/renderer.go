package render

import (
	"bytes"
	"embed"
	"io"

	"github.com/David-Antunes/upf-flow/api"
	"github.com/pkg/errors"
	"github.com/unrolled/render"
)

//go:embed templates/*.tmpl
var templates embed.FS

const (
	pageTemplate  = "widget"
	sceneTemplate = "scene"
	frameTemplate = "frame"
)

// Renderer turns snapshots into the widget page, a standalone SVG document
// or the SVG body pushed to live clients.
type Renderer struct {
	page *render.Render
	svg  *render.Render
}

func newRender(contentType string) *render.Render {
	return render.New(render.Options{
		Directory:       "templates",
		FileSystem:      &render.EmbedFileSystem{FS: templates},
		Extensions:      []string{".tmpl"},
		HTMLContentType: contentType,
		IndentJSON:      true,
	})
}

func NewRenderer() *Renderer {
	return &Renderer{
		page: newRender("text/html"),
		svg:  newRender("image/svg+xml"),
	}
}

func (r *Renderer) Page(w io.Writer, status int, snap api.Snapshot) error {
	return errors.Wrap(r.page.HTML(w, status, pageTemplate, BuildScene(snap)), "render page")
}

func (r *Renderer) SVG(w io.Writer, status int, snap api.Snapshot) error {
	return errors.Wrap(r.svg.HTML(w, status, sceneTemplate, BuildScene(snap)), "render svg")
}

// Frame returns the inner markup of the canvas for one snapshot.
func (r *Renderer) Frame(snap api.Snapshot) (string, error) {
	var buf bytes.Buffer
	if err := r.svg.HTML(&buf, 200, frameTemplate, BuildScene(snap)); err != nil {
		return "", errors.Wrap(err, "render frame")
	}
	return buf.String(), nil
}

func (r *Renderer) JSON(w io.Writer, status int, v interface{}) error {
	return r.page.JSON(w, status, v)
}
