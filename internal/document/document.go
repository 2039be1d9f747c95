// Package document renders the printable confirmation for a confirmed event.
package document

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"eventoria/internal/domain"
	"eventoria/internal/pkg/i18n"
	"eventoria/internal/pkg/textutil"
)

const (
	dateLayout = "02.01.2006 15:04"
	qrSize     = 256
)

// Renderer builds confirmation PDFs with times shown in loc.
type Renderer struct {
	loc *time.Location
}

func NewRenderer(loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{loc: loc}
}

// QRPayload is what the QR code on the document encodes.
func QRPayload(e *domain.ConfirmedEvent) string {
	return "eventoria:confirmed-event:" + e.ID.String()
}

// FileName is the attachment name used for the PDF download.
func FileName(e *domain.ConfirmedEvent) string {
	return "confirmare-" + e.ID.String()[:8] + ".pdf"
}

func (r *Renderer) Confirmation(e *domain.ConfirmedEvent) ([]byte, error) {
	qrPNG, err := qrcode.Encode(QRPayload(e), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("generate qr code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(pdfText(i18n.T("document.title")), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, pdfText(i18n.T("document.title")))
	pdf.Ln(16)

	rows := [][2]string{
		{i18n.T("document.event"), e.EventName},
		{i18n.T("document.participant"), e.ParticipantName},
		{i18n.T("document.vendor"), e.VendorName},
		{i18n.T("document.service_type"), e.ServiceType},
		{i18n.T("document.location"), e.Location},
		{i18n.T("document.start"), e.StartAt.In(r.loc).Format(dateLayout)},
		{i18n.T("document.end"), e.EndAt.In(r.loc).Format(dateLayout)},
		{i18n.T("document.price"), FormatPrice(e.Price)},
		{i18n.T("document.reference"), e.ID.String()},
	}
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(45, 8, pdfText(row[0]+":"), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 8, pdfText(row[1]), "", 1, "L", false, 0, "")
	}

	if e.Notes != nil && strings.TrimSpace(*e.Notes) != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 8, pdfText(i18n.T("document.notes")+":"))
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(120, 5, pdfText(*e.Notes), "", "L", false)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 30, 45, 45, false, opts, 0, "")

	pdf.SetY(-30)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 8, pdfText(i18n.T("document.footer")), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatPrice renders a price as "1500 RON per eveniment".
func FormatPrice(p domain.Price) string {
	amount := fmt.Sprintf("%.2f", p.Amount)
	amount = strings.TrimSuffix(amount, ".00")
	unit, ok := i18n.Lookup(i18n.DefaultLocale, "price_unit."+string(p.Unit))
	if !ok {
		return amount + " RON"
	}
	return amount + " RON " + unit
}

// The core PDF fonts only cover cp1252, which lacks ă, ș and ț.
func pdfText(s string) string {
	return textutil.StripDiacritics(s)
}
