// Package document renders the printable arrival-card PDF.  The renderer
// is a pure function of its input: given the same normalized submission,
// card number, document identifier and transaction time, it produces
// byte-identical output.  It performs no network or disk I/O; the PDF is
// assembled fully in memory and only returned once every drawing
// operation has finished.
package document

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/kritsada/arrival-card-service/internal/model"
)

// PayloadKind selects what the page-1 QR code encodes.
type PayloadKind int

const (
	// PayloadUpdateURL encodes the external update-instructions URL.
	// This is the canonical choice for issued cards.
	PayloadUpdateURL PayloadKind = iota
	// PayloadDocumentID encodes the internal document identifier instead.
	PayloadDocumentID
)

// Options parameterizes the single renderer.  Earlier iterations of this
// document existed as several near-identical layouts; the differences
// between them are captured here instead of in parallel copies.
type Options struct {
	Letterhead      bool        // draw the agency letterhead band on page 1
	UppercaseFields bool        // upper-case field values on the detail pages
	QRPayload       PayloadKind // content of the page-1 QR code
	UpdateInfoURL   string      // payload used when QRPayload is PayloadUpdateURL
}

// Input bundles everything one card render needs.  IssuedAt is the
// transaction-date stamp printed on page 1 and is also pinned as the PDF
// creation date so output is reproducible in tests.
type Input struct {
	Profile          model.PersonalProfile
	Travel           model.TravelInformation
	CountriesVisited []string
	CardNo           string
	UniqueID         string
	IssuedAt         time.Time
}

// Renderer composes arrival-card PDFs.  It is safe for concurrent use; a
// fresh gofpdf document is created per Render call.
type Renderer struct {
	opts Options
}

// NewRenderer returns a Renderer with the given presentation options.
func NewRenderer(opts Options) *Renderer { return &Renderer{opts: opts} }

// QR pixel edges.  Sorted image emission orders registered images by
// width, so the two codes must be encoded at distinct sizes; equal widths
// would fall back to map iteration order and the output bytes would
// differ between renders of the same input.
const (
	qrCoverPx = 256
	qrCardPx  = 192
)

// notice paragraphs printed at the top of page 1.
var noticeLines = []string{
	"Please present this arrival card together with your passport at the",
	"immigration checkpoint. Keep the card for the duration of your stay.",
	"If any of the declared details change before arrival, scan the QR",
	"code to update your submission.",
}

// Render produces the complete multi-page PDF for one submission.
func (r *Renderer) Render(in Input) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Pin document metadata dates to the transaction time and emit the
	// font/image catalogs in sorted order so two renders of the same
	// input are byte-identical.
	pdf.SetCreationDate(in.IssuedAt)
	pdf.SetModificationDate(in.IssuedAt)
	pdf.SetCatalogSort(true)
	pdf.SetTitle("Arrival Card "+in.CardNo, false)
	pdf.SetAutoPageBreak(true, 15)

	if err := r.renderCover(pdf, in); err != nil {
		return nil, err
	}
	r.renderDetails(pdf, in)

	if pdf.Err() {
		return nil, fmt.Errorf("document: render failed: %s", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("document: output failed: %w", err)
	}
	return buf.Bytes(), nil
}

// renderCover draws page 1: notice text, the update QR code, the
// transaction-date stamp and the two summary bands.
func (r *Renderer) renderCover(pdf *gofpdf.Fpdf, in Input) error {
	pdf.AddPage()

	if r.opts.Letterhead {
		// Letterhead band across the top of the page.
		pdf.SetFillColor(20, 45, 90)
		pdf.Rect(0, 0, 210, 18, "F")
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetXY(10, 5)
		pdf.CellFormat(190, 8, "IMMIGRATION BUREAU - DIGITAL ARRIVAL CARD", "", 1, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.SetY(24)
	} else {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetXY(10, 12)
		pdf.CellFormat(190, 8, "DIGITAL ARRIVAL CARD", "", 1, "C", false, 0, "")
		pdf.SetY(24)
	}

	// Notice paragraph on the left, QR code on the right.
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetX(10)
	for _, line := range noticeLines {
		pdf.CellFormat(140, 5, line, "", 1, "L", false, 0, "")
		pdf.SetX(10)
	}

	payload := r.opts.UpdateInfoURL
	if r.opts.QRPayload == PayloadDocumentID {
		payload = in.UniqueID
	}
	if err := placeQR(pdf, "qr-cover", payload, qrCoverPx, 158, 24, 40); err != nil {
		return err
	}

	// Transaction-date stamp under the notice.
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetXY(10, 52)
	pdf.CellFormat(140, 5, "Transaction date: "+formatDate(in.IssuedAt), "", 1, "L", false, 0, "")

	// Band 1: traveller name and arrival date.
	fullName := joinName(in.Profile)
	pdf.SetY(68)
	r.band(pdf, [][2]string{
		{"Name", strings.ToUpper(fullName)},
		{"Date of Arrival", formatDate(in.Travel.DateOfArrival)},
	})

	// Band 2: card number, passport, flight, plus the document QR.
	pdf.SetY(96)
	r.band(pdf, [][2]string{
		{"Arrival Card No.", in.CardNo},
		{"Passport No.", strings.ToUpper(in.Profile.PassportNo)},
		{"Flight / Vehicle No.", strings.ToUpper(in.Travel.FlightVehicleNoArrival)},
	})
	if err := placeQR(pdf, "qr-card", in.UniqueID, qrCardPx, 158, 94, 34); err != nil {
		return err
	}
	return nil
}

// band draws a bordered label/value summary band.
func (r *Renderer) band(pdf *gofpdf.Fpdf, rows [][2]string) {
	y := pdf.GetY()
	pdf.SetFillColor(235, 238, 245)
	pdf.Rect(10, y, 142, float64(len(rows))*8+4, "F")
	pdf.SetY(y + 2)
	for _, row := range rows {
		pdf.SetX(12)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(44, 8, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(94, 8, row[1], "", 1, "L", false, 0, "")
	}
}

// renderDetails draws page 2 onward: the field-by-field breakdown of the
// submission.  Every value defaults to a dash when absent.
func (r *Renderer) renderDetails(pdf *gofpdf.Fpdf, in Input) {
	pdf.AddPage()
	p, t := in.Profile, in.Travel

	r.section(pdf, "Personal Information")
	r.field(pdf, "Family Name", p.FamilyName)
	r.field(pdf, "First Name", p.FirstName)
	r.field(pdf, "Middle Name", deref(p.MiddleName))
	r.field(pdf, "Passport No.", p.PassportNo)
	r.field(pdf, "Nationality", p.Nationality)
	r.field(pdf, "Occupation", p.Occupation)
	r.field(pdf, "Gender", p.Gender)
	r.field(pdf, "Visa No.", deref(p.VisaNo))
	r.field(pdf, "Country of Residence", p.CountryOfResidence)
	r.field(pdf, "City of Residence", p.CityOfResidence)
	r.field(pdf, "Phone", joinPhone(p.PhoneCode, p.PhoneNo))
	r.field(pdf, "Date of Birth", formatDate(p.DateOfBirth))

	r.section(pdf, "Arrival")
	r.field(pdf, "Date of Arrival", formatDate(t.DateOfArrival))
	r.field(pdf, "Country Boarded", t.CountryBoarded)
	r.field(pdf, "Purpose of Travel", t.PurposeOfTravel)
	r.field(pdf, "Mode of Travel", t.ModeOfTravelArrival)
	r.field(pdf, "Mode of Transport", t.ModeOfTransportArrival)
	r.field(pdf, "Flight / Vehicle No.", t.FlightVehicleNoArrival)

	r.section(pdf, "Departure")
	r.field(pdf, "Date of Departure", formatDatePtr(t.DateOfDeparture))
	r.field(pdf, "Mode of Travel", deref(t.ModeOfTravelDeparture))
	r.field(pdf, "Mode of Transport", deref(t.ModeOfTransportDeparture))
	r.field(pdf, "Flight / Vehicle No.", deref(t.FlightVehicleNoDeparture))

	r.section(pdf, "Accommodation")
	r.field(pdf, "Type", t.TypeOfAccommodation)
	// Address lines are assembled first so the case transform applies to
	// the joined string, not to each component.
	r.field(pdf, "Address", joinAddress(t))
	r.field(pdf, "Post Code", t.PostCode)

	r.section(pdf, "Countries Visited in the Last 14 Days")
	if len(in.CountriesVisited) == 0 {
		r.field(pdf, "Countries", "")
		return
	}
	r.field(pdf, "Countries", strings.Join(in.CountriesVisited, ", "))
}

// section draws a detail-page section heading.
func (r *Renderer) section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetX(10)
	pdf.SetFillColor(235, 238, 245)
	pdf.CellFormat(190, 8, title, "", 1, "L", true, 0, "")
	pdf.Ln(1)
}

// field draws one labeled value row.  Empty values render as a dash;
// non-date values are upper-cased when the renderer is configured to.
func (r *Renderer) field(pdf *gofpdf.Fpdf, label, value string) {
	v := strings.TrimSpace(value)
	if v == "" {
		v = "-"
	} else if r.opts.UppercaseFields {
		v = strings.ToUpper(v)
	}
	pdf.SetX(10)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(60, 6, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(130, 6, v, "", 1, "L", false, 0, "")
}

// placeQR encodes payload as a px-wide PNG QR image and draws it at
// (x, y) with the given edge length in millimetres.
func placeQR(pdf *gofpdf.Fpdf, name, payload string, px int, x, y, edge float64) error {
	png, err := qrcode.Encode(payload, qrcode.Medium, px)
	if err != nil {
		return fmt.Errorf("document: qr encode: %w", err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	pdf.ImageOptions(name, x, y, edge, edge, false, opts, 0, "")
	return nil
}

// formatDate renders a date as YYYY/M/D without zero padding.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%d/%d/%d", t.Year(), int(t.Month()), t.Day())
}

// formatDatePtr is formatDate for nullable dates.
func formatDatePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatDate(*t)
}

// joinName assembles the traveller's display name, skipping an absent
// middle name.
func joinName(p model.PersonalProfile) string {
	parts := []string{p.FirstName}
	if p.MiddleName != nil {
		parts = append(parts, *p.MiddleName)
	}
	parts = append(parts, p.FamilyName)
	return strings.Join(parts, " ")
}

// joinPhone combines the dialling code and subscriber number.
func joinPhone(code, no string) string {
	if code == "" && no == "" {
		return ""
	}
	if code == "" {
		return no
	}
	return "+" + code + " " + no
}

// joinAddress assembles the accommodation address components into one
// display line.
func joinAddress(t model.TravelInformation) string {
	parts := make([]string, 0, 4)
	for _, s := range []string{t.Address, t.SubDistrict, t.DistrictArea, t.Province} {
		if strings.TrimSpace(s) != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// deref maps a nil string pointer to "".
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
