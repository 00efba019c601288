package render

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/saafhawa/petition/internal/petition"
)

const (
	imgWidth   = 1200
	imgHeight  = 1800
	imgPadding = 60.0
)

// PetitionImage draws the full petition as a flattened PNG, mirroring the
// PDF layout on a 1200x1800 canvas.
func (r *Renderer) PetitionImage(sig *petition.Signature) ([]byte, error) {
	titleFace, err := r.face(r.bold, 56)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", petition.ErrRender, err)
	}
	headingFace, err := r.face(r.bold, 26)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", petition.ErrRender, err)
	}
	bodyFace, err := r.face(r.regular, 20)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", petition.ErrRender, err)
	}
	emphasisFace, err := r.face(r.bold, 21)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", petition.ErrRender, err)
	}
	smallFace, err := r.face(r.regular, 16)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", petition.ErrRender, err)
	}

	dc := gg.NewContext(imgWidth, imgHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Header band
	dc.SetRGB(0, 0, 0)
	dc.DrawRectangle(0, 0, imgWidth, 160)
	dc.Fill()
	dc.SetRGB(1, 1, 1)
	dc.SetFontFace(titleFace)
	dc.DrawStringAnchored(letterTitle, imgWidth/2, 80, 0.5, 0.5)

	y := 200.0

	// Info box
	dc.SetHexColor("#f5f5f5")
	dc.DrawRectangle(imgPadding, y, imgWidth-2*imgPadding, 60)
	dc.Fill()
	dc.SetHexColor("#cccccc")
	dc.SetLineWidth(2)
	dc.DrawRectangle(imgPadding, y, imgWidth-2*imgPadding, 60)
	dc.Stroke()

	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(headingFace)
	dc.DrawString(fmt.Sprintf("Signature #%d", sig.SignatureNumber), imgPadding+20, y+40)
	dateStr := sig.CreatedAt.Format("January 2, 2006")
	dc.SetFontFace(smallFace)
	dc.DrawStringAnchored(dateStr, imgWidth-imgPadding-20, y+35, 1, 0.5)

	y += 120

	// Addressee
	dc.SetHexColor("#808080")
	dc.SetFontFace(smallFace)
	dc.DrawString(letterTo, imgPadding, y)
	y += 34
	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(headingFace)
	y = drawWrapped(dc, letterAddressee, imgPadding, y, imgWidth-2*imgPadding, 1.4, headingFace)
	y += 30

	// Letter body
	for _, para := range letterParagraphs {
		if para.emphasis {
			dc.SetRGB(0, 0, 0)
			dc.SetFontFace(emphasisFace)
			y = drawWrapped(dc, para.text, imgPadding, y, imgWidth-2*imgPadding, 1.5, emphasisFace)
		} else {
			dc.SetHexColor("#333333")
			dc.SetFontFace(bodyFace)
			y = drawWrapped(dc, para.text, imgPadding, y, imgWidth-2*imgPadding, 1.5, bodyFace)
		}
		y += 24
	}

	y += 30
	dc.SetHexColor("#808080")
	dc.SetLineWidth(1)
	dc.DrawLine(imgPadding, y, imgWidth-imgPadding, y)
	dc.Stroke()
	y += 50

	// Signature block
	dc.SetHexColor("#333333")
	dc.SetFontFace(bodyFace)
	dc.DrawString("Sincerely,", imgPadding, y)
	y += 50

	dc.SetHexColor("#808080")
	dc.SetFontFace(smallFace)
	dc.DrawString("SIGNED BY:", imgPadding, y)
	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(headingFace)
	dc.DrawString(sig.Name, imgPadding+180, y)
	y += 44

	dc.SetHexColor("#808080")
	dc.SetFontFace(smallFace)
	dc.DrawString("Phone:", imgPadding, y)
	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(bodyFace)
	dc.DrawString(sig.Phone, imgPadding+180, y)
	y += 44

	if sig.State != nil {
		dc.SetHexColor("#808080")
		dc.SetFontFace(smallFace)
		dc.DrawString("State:", imgPadding, y)
		dc.SetRGB(0, 0, 0)
		dc.SetFontFace(bodyFace)
		dc.DrawString(*sig.State, imgPadding+180, y)
	}

	// Footer
	footY := float64(imgHeight) - 120
	dc.SetHexColor("#808080")
	dc.SetLineWidth(1)
	dc.DrawLine(imgPadding, footY, imgWidth-imgPadding, footY)
	dc.Stroke()
	dc.SetFontFace(smallFace)
	dc.DrawStringAnchored(footerLine1, imgWidth/2, footY+40, 0.5, 0.5)
	dc.DrawStringAnchored(footerLine2, imgWidth/2, footY+70, 0.5, 0.5)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("%w: %v", petition.ErrRender, err)
	}

	return buf.Bytes(), nil
}

// drawWrapped renders word-wrapped text and returns the y position below it.
func drawWrapped(dc *gg.Context, text string, x, y, width, spacing float64, face font.Face) float64 {
	lines := dc.WordWrap(text, width)
	lineHeight := float64(face.Metrics().Height.Ceil()) * spacing
	for _, line := range lines {
		dc.DrawString(line, x, y)
		y += lineHeight
	}
	return y
}
