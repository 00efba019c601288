package render

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Renderer turns a signature record into downloadable documents. Fonts are
// the embedded Go faces, so text layout is identical on every host; the only
// external asset is the certificate template image.
type Renderer struct {
	certTemplate string
	regular      *opentype.Font
	bold         *opentype.Font
}

// New parses the embedded fonts and remembers the certificate template path.
// The template file itself is read lazily per render, so a missing file shows
// up as a render error, not a startup failure.
func New(certTemplate string) (*Renderer, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}

	return &Renderer{certTemplate: certTemplate, regular: regular, bold: bold}, nil
}

func (r *Renderer) face(src *opentype.Font, size float64) (font.Face, error) {
	return opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
