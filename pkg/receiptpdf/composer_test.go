package receiptpdf

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullReceiptData() ReceiptData {
	return ReceiptData{
		Organization: Organization{
			Name:         "Helping Hands",
			Address:      "12 Long Street, Cape Town",
			RegNo:        "NPO-123-456",
			TaxNo:        "PBO-930001234",
			ThankYouNote: "Your generosity keeps our doors open.",
		},
		Donation: Donation{
			DonorName:     "John Smith",
			DonorEmail:    "john@example.com",
			DonorPhone:    "+27 82 000 0000",
			Amount:        decimal.NewFromInt(250),
			PaymentMethod: "EFT",
			Reference:     "INV-889",
			Notes:         "Monthly pledge for the soup kitchen program.",
			DateIssued:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		ReceiptNumber: "HH-20240301-04821",
		IssuedBy:      "admin@helpinghands.org",
	}
}

func encodePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 79, G: 140, B: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestComposeFullReceipt(t *testing.T) {
	composer := NewComposer(Options{})
	data := fullReceiptData()
	data.Logo = encodePNG(t)

	out, err := composer.Compose(data)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Contains(t, string(out), "595.00 842.00")
	assert.Contains(t, string(out), "HH-20240301-04821")
	assert.Contains(t, string(out), "Amount: R 250.00")
	assert.Contains(t, string(out), "OFFICIAL DONATION RECEIPT")
	assert.Contains(t, string(out), "Helping Hands")
	assert.Contains(t, string(out), "admin@helpinghands.org")
}

func TestComposeWithoutLogo(t *testing.T) {
	composer := NewComposer(Options{})
	data := fullReceiptData()
	data.Logo = nil

	out, err := composer.Compose(data)
	require.NoError(t, err)

	assert.Contains(t, string(out), "HH-20240301-04821")
	assert.Contains(t, string(out), "John Smith")
}

func TestComposeWithJPEGLogo(t *testing.T) {
	composer := NewComposer(Options{})
	data := fullReceiptData()
	data.Logo = encodeJPEG(t)

	out, err := composer.Compose(data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestComposeWithUndecodableLogoFallsBack(t *testing.T) {
	composer := NewComposer(Options{})
	data := fullReceiptData()
	data.Logo = []byte("definitely not an image")

	out, err := composer.Compose(data)
	require.NoError(t, err)
	assert.Contains(t, string(out), "HH-20240301-04821")
}

func TestComposeMinimalReceiptUsesPlaceholders(t *testing.T) {
	composer := NewComposer(Options{})

	out, err := composer.Compose(ReceiptData{
		Organization: Organization{Name: "Helping Hands"},
		Donation: Donation{
			DonorName:  "John Smith",
			Amount:     decimal.NewFromInt(250),
			DateIssued: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		ReceiptNumber: "REC-20240301-00001",
	})
	require.NoError(t, err)

	// Email, phone, method, reference and issuer all render as dashes.
	assert.Contains(t, string(out), "(-)")
	assert.Contains(t, string(out), DefaultThankYouNote)
}

func TestComposeNonASCIIText(t *testing.T) {
	composer := NewComposer(Options{CurrencyPrefix: "€"})
	data := fullReceiptData()
	data.Donation.DonorName = "José Álvarez"
	data.Donation.Notes = "Pledge for the “Warm Winters” drive • phase two"
	data.Organization.ThankYouNote = "Merci beaucoup — à bientôt"

	out, err := composer.Compose(data)
	require.NoError(t, err)

	// Core fonts are cp1252, so the uncompressed stream carries the
	// single-byte mappings rather than the UTF-8 input.
	assert.Contains(t, string(out), "Jos\xe9 \xc1lvarez")
	assert.Contains(t, string(out), "\x93Warm Winters\x94")
	assert.Contains(t, string(out), "Amount: \x80 250.00")
}

func TestComposeRegAndTaxNumbersShareLine(t *testing.T) {
	composer := NewComposer(Options{})
	data := fullReceiptData()
	data.Organization.RegNo = "NPO-123-456"
	data.Organization.TaxNo = "PBO-930001234"

	out, err := composer.Compose(data)
	require.NoError(t, err)

	// The two registration numbers are joined with a cp1252 bullet.
	assert.Contains(t, string(out), "Reg: NPO-123-456 \x95 Tax/PBO: PBO-930001234")
}

func TestComposeLongNotesWrap(t *testing.T) {
	composer := NewComposer(Options{})
	data := fullReceiptData()
	data.Donation.Notes = "This donation was collected over the course of the annual winter fundraising drive and includes contributions from the donor's entire extended family as well as several colleagues."

	out, err := composer.Compose(data)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestComposeCustomBranding(t *testing.T) {
	composer := NewComposer(Options{
		BrandColor:     &RGB{R: 10, G: 120, B: 60},
		CurrencyPrefix: "ZAR",
		GeneratedBy:    "Generated by Helping Hands Console",
	})
	data := fullReceiptData()

	out, err := composer.Compose(data)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Amount: ZAR 250.00")
	assert.Contains(t, string(out), "Generated by Helping Hands Console")
}
