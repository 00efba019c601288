package render

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/saafhawa/petition/internal/petition"
)

// PetitionPDF renders the campaign letter with the signer's details filled
// into the signature block. Layout is fixed: the same record always produces
// the same positions and sizes.
func (r *Renderer) PetitionPDF(sig *petition.Signature) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(19, 19, 19)
	pdf.SetAutoPageBreak(true, 19)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	contentWidth := pageWidth - left - right

	// Header
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 12, letterTitle, "", 1, "C", false, 0, "")
	pdf.SetDrawColor(128, 128, 128)
	pdf.Line(left, pdf.GetY()+2, pageWidth-right, pdf.GetY()+2)
	pdf.Ln(10)

	// Signature info box
	pdf.SetFillColor(245, 245, 245)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentWidth/2, 12, fmt.Sprintf("Signature Number: #%d", sig.SignatureNumber), "1", 0, "L", true, 0, "")
	pdf.CellFormat(contentWidth/2, 12, "Date: "+sig.CreatedAt.Format("January 2, 2006"), "1", 1, "L", true, 0, "")
	pdf.Ln(10)

	// Addressee
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 6, letterTo, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, 7, letterAddressee, "", "L", false)
	pdf.Ln(8)

	// Letter body
	for _, para := range letterParagraphs {
		if para.emphasis {
			pdf.SetFont("Helvetica", "B", 12)
			pdf.SetTextColor(0, 0, 0)
		} else {
			pdf.SetFont("Helvetica", "", 11)
			pdf.SetTextColor(51, 51, 51)
		}
		pdf.MultiCell(0, 6.5, para.text, "", "J", false)
		pdf.Ln(4)
	}

	pdf.Ln(6)
	pdf.SetDrawColor(128, 128, 128)
	pdf.Line(left, pdf.GetY(), pageWidth-right, pdf.GetY())
	pdf.Ln(8)

	// Signature block
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(0, 6, "Sincerely,", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(38, 8, "SIGNED BY:", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, sig.Name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(38, 8, "Phone:", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, sig.Phone, "", 1, "L", false, 0, "")

	if sig.State != nil {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(38, 8, "State:", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 8, *sig.State, "", 1, "L", false, 0, "")
	}

	// Footer
	pdf.Ln(14)
	pdf.Line(left, pdf.GetY(), pageWidth-right, pdf.GetY())
	pdf.Ln(5)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(128, 128, 128)
	pdf.MultiCell(0, 5, footerLine1, "", "C", false)
	pdf.MultiCell(0, 5, footerLine2, "", "C", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", petition.ErrRender, err)
	}

	return buf.Bytes(), nil
}
