package render

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/fogleman/gg"

	"github.com/saafhawa/petition/internal/petition"
)

// Certificate overlays the signer's name on the campaign certificate
// template. The name is centered at a fixed fraction of the template height,
// so the same name always lands at the same position and size.
func (r *Renderer) Certificate(name string) ([]byte, error) {
	tpl, err := gg.LoadImage(r.certTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: certificate template: %v", petition.ErrRender, err)
	}

	bounds := tpl.Bounds()
	width := float64(bounds.Dx())
	height := float64(bounds.Dy())

	nameFace, err := r.face(r.bold, width/18)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", petition.ErrRender, err)
	}
	statementFace, err := r.face(r.regular, width/42)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", petition.ErrRender, err)
	}

	dc := gg.NewContext(bounds.Dx(), bounds.Dy())
	dc.DrawImage(tpl, 0, 0)

	dc.SetRGB(0.1, 0.1, 0.1)
	dc.SetFontFace(nameFace)
	dc.DrawStringAnchored(name, width/2, height*0.48, 0.5, 0.5)

	dc.SetRGB(0.25, 0.25, 0.25)
	dc.SetFontFace(statementFace)
	dc.DrawStringAnchored(certStatement, width/2, height*0.58, 0.5, 0.5)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("%w: %v", petition.ErrRender, err)
	}

	return buf.Bytes(), nil
}
