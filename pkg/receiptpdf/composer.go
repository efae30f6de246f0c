// Package receiptpdf lays out and serializes donation receipt PDFs.
//
// A receipt is a single fixed-section A4 page: brand header band, organization
// detail line, acknowledgement statement, donor card, donation card, thank-you
// note, issuer/signature block and footer. Missing optional fields degrade to
// placeholder text; a missing or undecodable logo degrades to a placeholder
// box. Only serialization failure is fatal.
package receiptpdf

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/zragie/ngo-receipts-api/pkg/money"
)

// Page geometry in points. A4 with a 48pt margin.
const (
	pageWidth  = 595
	pageHeight = 842
	margin     = 48

	headerHeight = 110
	logoSize     = 58
	cornerRadius = 12
)

const statement = "This receipt acknowledges that the organization listed above has received the donation described below."

// DefaultThankYouNote is printed when the organization has none configured.
const DefaultThankYouNote = "Thank you for your support."

// Organization is the issuing organization as shown on the receipt.
type Organization struct {
	Name         string
	Address      string
	RegNo        string
	TaxNo        string
	ThankYouNote string
}

// Donation is the donation being acknowledged.
type Donation struct {
	DonorName     string
	DonorEmail    string
	DonorPhone    string
	Amount        decimal.Decimal
	PaymentMethod string
	Reference     string
	Notes         string
	DateIssued    time.Time
}

// ReceiptData is everything the composer needs to render one receipt.
type ReceiptData struct {
	Organization  Organization
	Donation      Donation
	ReceiptNumber string
	IssuedBy      string
	// Logo holds raw PNG or JPEG bytes; nil or undecodable bytes fall back
	// to the placeholder box.
	Logo []byte
}

// RGB is a 24-bit color.
type RGB struct {
	R, G, B int
}

// Options configures a Composer. Zero values select the defaults below.
type Options struct {
	BrandColor     *RGB   // header band and amount banner color
	CurrencyPrefix string // money.DefaultPrefix when empty
	GeneratedBy    string // left footer attribution
	BuiltBy        string // right footer attribution
}

// Composer renders receipts. It holds no per-document state and is safe for
// concurrent use.
type Composer struct {
	brand       RGB
	money       money.Formatter
	generatedBy string
	builtBy     string
}

// NewComposer creates a composer from the given options.
func NewComposer(opts Options) *Composer {
	c := &Composer{
		brand:       RGB{R: 79, G: 140, B: 255}, // #4f8cff
		money:       money.NewFormatter(opts.CurrencyPrefix),
		generatedBy: "Generated by NGO Receipt Generator",
		builtBy:     "Built by Zaid Ragie",
	}
	if opts.BrandColor != nil {
		c.brand = *opts.BrandColor
	}
	if opts.GeneratedBy != "" {
		c.generatedBy = opts.GeneratedBy
	}
	if opts.BuiltBy != "" {
		c.builtBy = opts.BuiltBy
	}
	return c
}

// Compose renders the receipt and returns the finished PDF bytes. It fails
// only when the underlying PDF engine cannot serialize the document.
func (c *Composer) Compose(data ReceiptData) ([]byte, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	// Receipts are small; uncompressed text streams keep them inspectable.
	pdf.SetCompression(false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// The core Helvetica font is cp1252. Every string that can carry caller
	// text must go through the translator or runes beyond the 256-entry
	// width table crash the engine.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	innerWidth := float64(pageWidth - 2*margin)
	dateIssued := data.Donation.DateIssued.Format("2006-01-02")

	c.drawHeader(pdf, tr, data, dateIssued)

	y := c.drawOrganizationLine(pdf, tr, data.Organization, 130, innerWidth)
	y = c.drawStatement(pdf, y, innerWidth)
	y = c.drawDonorCard(pdf, tr, data.Donation, y, innerWidth)
	y = c.drawDonationCard(pdf, tr, data.Donation, y, innerWidth)
	y = c.drawThankYouNote(pdf, tr, data.Organization, y, innerWidth)
	c.drawSignatureBlock(pdf, tr, data.IssuedBy, dateIssued, y, innerWidth)
	c.drawFooter(pdf, tr)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize receipt PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *Composer) drawHeader(pdf *fpdf.Fpdf, tr func(string) string, data ReceiptData, dateIssued string) {
	pdf.SetFillColor(c.brand.R, c.brand.G, c.brand.B)
	pdf.Rect(0, 0, pageWidth, headerHeight, "F")

	drawLogo(pdf, data.Logo)

	orgName := data.Organization.Name
	if orgName == "" {
		orgName = "NGO"
	}

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(margin+74, 54, tr(orgName))

	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(margin+74, 76, "OFFICIAL DONATION RECEIPT")

	// Receipt meta, right side of the band. The number inherits the
	// organization's prefix, so it is caller text too.
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(pageWidth-margin-170, 48, "Receipt No:")
	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(pageWidth-margin-98, 48, tr(data.ReceiptNumber))

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(pageWidth-margin-170, 68, "Date:")
	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(pageWidth-margin-98, 68, dateIssued)

	pdf.SetTextColor(0, 0, 0)
}

// logoFormat pairs an embeddable image type with its decoder. Decoding the
// whole image up front guarantees registration cannot poison the document's
// error state.
type logoFormat struct {
	imageType string
	decode    func(io.Reader) (image.Image, error)
}

// Ordered fallback chain: lossless first, then lossy, then the placeholder.
var logoFormats = []logoFormat{
	{imageType: "PNG", decode: png.Decode},
	{imageType: "JPEG", decode: func(r io.Reader) (image.Image, error) { return jpeg.Decode(r) }},
}

func drawLogo(pdf *fpdf.Fpdf, logo []byte) {
	if len(logo) > 0 {
		for _, format := range logoFormats {
			if _, err := format.decode(bytes.NewReader(logo)); err != nil {
				continue
			}
			opts := fpdf.ImageOptions{ImageType: format.imageType}
			pdf.RegisterImageOptionsReader("org-logo", opts, bytes.NewReader(logo))
			pdf.ImageOptions("org-logo", margin, 26, logoSize, logoSize, false, opts, 0, "")
			return
		}
	}

	// Placeholder outline box on the brand band.
	pdf.SetDrawColor(255, 255, 255)
	pdf.SetFillColor(255, 255, 255)
	pdf.RoundedRect(margin, 26, logoSize, logoSize, 10, "1234", "D")
}

func (c *Composer) drawOrganizationLine(pdf *fpdf.Fpdf, tr func(string) string, org Organization, y, innerWidth float64) float64 {
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(60, 60, 60)

	var parts []string
	if org.Address != "" {
		parts = append(parts, org.Address)
	}
	var regs string
	if org.RegNo != "" {
		regs = "Reg: " + org.RegNo
	}
	if org.TaxNo != "" {
		if regs != "" {
			regs += " • "
		}
		regs += "Tax/PBO: " + org.TaxNo
	}
	if regs != "" {
		parts = append(parts, regs)
	}

	if len(parts) > 0 {
		text := parts[0]
		for _, p := range parts[1:] {
			text += "   |   " + p
		}
		lines := pdf.SplitText(tr(text), innerWidth)
		for i, line := range lines {
			pdf.Text(margin, y+float64(i)*14, line)
		}
		y += float64(len(lines))*14 + 6
	} else {
		y += 6
	}

	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(margin, y, pageWidth-margin, y)
	return y + 18
}

func (c *Composer) drawStatement(pdf *fpdf.Fpdf, y, innerWidth float64) float64 {
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(40, 40, 40)
	for i, line := range pdf.SplitText(statement, innerWidth) {
		pdf.Text(margin, y+float64(i)*14, line)
	}
	pdf.SetTextColor(0, 0, 0)
	return y + 30
}

func (c *Composer) drawDonorCard(pdf *fpdf.Fpdf, tr func(string) string, donation Donation, y, innerWidth float64) float64 {
	pdf.SetDrawColor(220, 220, 220)
	pdf.SetFillColor(247, 249, 255)
	pdf.RoundedRect(margin, y, innerWidth, 105, cornerRadius, "1234", "FD")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(margin+14, y+22, "Donor details")

	pdf.SetFont("Helvetica", "", 11)
	labelX := float64(margin + 14)
	valueX := labelX + 58

	rows := []struct {
		label, value string
		offset       float64
	}{
		{"Name", donation.DonorName, 44},
		{"Email", donation.DonorEmail, 68},
		{"Phone", donation.DonorPhone, 92},
	}
	for _, row := range rows {
		pdf.SetTextColor(80, 80, 80)
		pdf.Text(labelX, y+row.offset, row.label)
		pdf.SetTextColor(0, 0, 0)
		pdf.Text(valueX, y+row.offset, tr(orDash(row.value)))
	}

	return y + 125
}

func (c *Composer) drawDonationCard(pdf *fpdf.Fpdf, tr func(string) string, donation Donation, y, innerWidth float64) float64 {
	pdf.SetDrawColor(220, 220, 220)
	pdf.RoundedRect(margin, y, innerWidth, 140, cornerRadius, "1234", "D")

	// Amount banner across the top of the card.
	pdf.SetFillColor(c.brand.R, c.brand.G, c.brand.B)
	pdf.RoundedRect(margin, y, innerWidth, 44, cornerRadius, "1234", "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(margin+14, y+28, tr("Amount: "+c.money.Format(donation.Amount)))

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(margin+14, y+68, "Donation details")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(70, 70, 70)
	pdf.Text(margin+14, y+92, "Payment method")
	pdf.Text(margin+14, y+112, "Reference")

	pdf.SetTextColor(0, 0, 0)
	pdf.Text(margin+130, y+92, tr(orDash(donation.PaymentMethod)))
	pdf.Text(margin+130, y+112, tr(orDash(donation.Reference)))

	if donation.Notes != "" {
		pdf.SetTextColor(70, 70, 70)
		pdf.Text(margin+14, y+132, "Notes")
		pdf.SetTextColor(0, 0, 0)
		for i, line := range pdf.SplitText(tr(donation.Notes), innerWidth-160) {
			pdf.Text(margin+130, y+132+float64(i)*14, line)
		}
	}

	return y + 170
}

func (c *Composer) drawThankYouNote(pdf *fpdf.Fpdf, tr func(string) string, org Organization, y, innerWidth float64) float64 {
	note := org.ThankYouNote
	if note == "" {
		note = DefaultThankYouNote
	}

	pdf.SetFont("Helvetica", "I", 11)
	pdf.SetTextColor(70, 70, 70)
	for i, line := range pdf.SplitText(tr(note), innerWidth) {
		pdf.Text(margin, y+float64(i)*14, line)
	}
	pdf.SetTextColor(0, 0, 0)
	return y + 28
}

func (c *Composer) drawSignatureBlock(pdf *fpdf.Fpdf, tr func(string) string, issuedBy, dateIssued string, y, innerWidth float64) {
	pdf.SetDrawColor(220, 220, 220)
	pdf.RoundedRect(margin, y, innerWidth, 90, cornerRadius, "1234", "D")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(margin+14, y+24, "Issued by")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.Text(margin+14, y+40, tr(orDash(issuedBy)))

	rightX := margin + innerWidth/2 + 10
	pdf.SetTextColor(90, 90, 90)
	pdf.Text(rightX, y+24, "Signature:")
	pdf.Text(rightX, y+44, "_____________________________")
	pdf.Text(rightX, y+64, "Date:")
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(rightX+35, y+64, dateIssued)
}

func (c *Composer) drawFooter(pdf *fpdf.Fpdf, tr func(string) string) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(120, 120, 120)

	builtBy := tr(c.builtBy)
	pdf.Text(margin, pageHeight-28, tr(c.generatedBy))
	pdf.Text(pageWidth-margin-pdf.GetStringWidth(builtBy), pageHeight-28, builtBy)

	pdf.SetTextColor(0, 0, 0)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
