package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/san-kum/partviz/internal/scene"
)

// Formats.
const (
	FormatHTML = "html"
	FormatPage = "page"
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// Artifact is one rendered output.
type Artifact struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Kind    string            `json:"kind"`
	Created time.Time         `json:"created"`
	Colors  map[string]string `json:"colors,omitempty"`
	Body    []byte            `json:"-"`
}

// Ext returns the file extension for the artifact kind.
func (a Artifact) Ext() string {
	if a.Kind == FormatPage {
		return "." + FormatHTML
	}
	return "." + a.Kind
}

// ContentType returns the MIME type for the artifact kind.
func (a Artifact) ContentType() string {
	switch a.Kind {
	case FormatHTML, FormatPage:
		return "text/html; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

// Sink displays artifacts.
type Sink interface {
	Display(ctx context.Context, a Artifact) error
}

// Options controls Render.
type Options struct {
	Format string
	Name   string
	Assets Assets
	// Width and Height size SVG snapshots; zero uses the model canvas.
	Width, Height int
}

// Render produces an artifact of wd in opts.Format.
func Render(wd *scene.Widget, opts Options) (Artifact, error) {
	a := Artifact{ID: wd.ID, Name: opts.Name, Kind: opts.Format, Created: time.Now(), Colors: wd.Colors}
	if a.Name == "" {
		a.Name = wd.ID
	}
	if opts.Assets == (Assets{}) {
		opts.Assets = DefaultAssets
	}

	var buf bytes.Buffer
	var err error
	switch opts.Format {
	case FormatHTML:
		err = HTML(&buf, wd, opts.Assets)
	case FormatPage:
		err = Page(&buf, wd, a.Name, opts.Assets)
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		err = enc.Encode(wd.Model)
	case FormatSVG:
		err = Snapshot(&buf, wd, opts.Width, opts.Height)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
	if err != nil {
		return Artifact{}, err
	}
	a.Body = buf.Bytes()
	return a, nil
}

// FileSink writes each artifact to Dir/<name><ext>.
type FileSink struct {
	Dir string
}

func (s FileSink) Display(_ context.Context, a Artifact) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(s.Path(a), a.Body, 0644)
}

// Path returns where a is written.
func (s FileSink) Path(a Artifact) string {
	return filepath.Join(s.Dir, a.Name+a.Ext())
}

// WriterSink copies artifact bodies to W.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Display(_ context.Context, a Artifact) error {
	_, err := s.W.Write(a.Body)
	return err
}

// Multi displays to every sink in order and stops at the first error.
type Multi []Sink

func (m Multi) Display(ctx context.Context, a Artifact) error {
	for _, s := range m {
		if err := s.Display(ctx, a); err != nil {
			return err
		}
	}
	return nil
}
