package docx

import (
	"errors"
	"fmt"

	"github.com/ukaji3/lockersheet-go/pkg/lockersheet/models"
	"github.com/ukaji3/lockersheet-go/pkg/lockersheet/schema"
	"github.com/ukaji3/lockersheet-go/pkg/lockersheet/selector"
)

// FooterText is the branding line printed in the page footer.
const FooterText = "Amazon Locker Sheet Generator"

// ErrNoRecords indicates Render was called with an empty selection.
var ErrNoRecords = errors.New("no record to render")

// textWidth is the printable width of a Letter page with 1 inch margins, in twips.
const textWidth = 9360

// titleSize is the title font size in half-points.
const titleSize = 32

// column binds a header label to the sheet column it is filled from.
type column struct {
	label string
	field string
}

var propertyColumns = []column{
	{"Property Name", schema.ColPropertyName},
	{"Store ID", schema.ColStoreID},
	{"Address", schema.ColAddress},
	{"City", schema.ColCity},
	{"State", schema.ColState},
	{"Zip", schema.ColZip},
}

var lockerColumns = []column{
	{"Size", schema.ColSize},
	{"Gen", schema.ColGen},
	{"Indoor/Outdoor", schema.ColIndoorOutdoor},
	{"Config", schema.ColConfig},
	{"Locker Name", schema.ColLockerName},
	{"Contact Name", schema.ColContactName},
	{"Contact Phone", schema.ColContactPhone},
	{"PO for Invoice", schema.ColPOForInvoice},
}

// BrandingStatus reports whether page furniture was applied.
type BrandingStatus string

const (
	// BrandingApplied means the header logo and footer line were added.
	BrandingApplied BrandingStatus = "applied"
	// BrandingSuppressed means no usable logo was available.
	BrandingSuppressed BrandingStatus = "suppressed"
)

// Branding is the outcome of the optional decoration step.
type Branding struct {
	Status BrandingStatus `json:"status"`
	// Reason explains a suppression.
	Reason string `json:"reason,omitempty"`
}

// Options configures rendering.
type Options struct {
	// Logo is embedded when set. It takes precedence over LogoPath.
	Logo *Logo
	// LogoPath is loaded when Logo is nil. Empty disables branding.
	LogoPath string
}

// Result is a rendered document and the decoration outcome.
type Result struct {
	Document models.Document `json:"document"`
	// Title is the text of the title line.
	Title string `json:"title"`
	// Record is the row that was rendered.
	Record models.Record `json:"-"`
	// Candidates is the number of records that were offered.
	Candidates int      `json:"candidates"`
	Branding   Branding `json:"branding"`
}

// Title returns the title line for a record.
func Title(lockerName, kiosk string) string {
	return fmt.Sprintf("%s  (Kiosk %s)", lockerName, kiosk)
}

// FileName returns the suggested download name for a record.
func FileName(lockerName, kiosk string) string {
	return fmt.Sprintf("%s_Kiosk_%s.docx", lockerName, kiosk)
}

// Render lays out the first record onto the locker sheet template.
func Render(records []models.Record, kioskColumn string, opts Options) (*Result, error) {
	rec, ok := selector.First(records)
	if !ok {
		return nil, ErrNoRecords
	}

	locker := rec.Field(schema.ColLockerName)
	kiosk := rec.Field(kioskColumn)
	title := Title(locker, kiosk)

	logo, branding := resolveBranding(opts)

	data, err := buildPackage(rec, title, logo)
	if err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}

	return &Result{
		Document: models.Document{
			FileName:    FileName(locker, kiosk),
			ContentType: models.DocxContentType,
			Data:        data,
		},
		Title:      title,
		Record:     rec,
		Candidates: len(records),
		Branding:   branding,
	}, nil
}

// resolveBranding returns the logo to embed, or nil and the reason it is absent.
func resolveBranding(opts Options) (*Logo, Branding) {
	if opts.Logo != nil {
		logo, err := opts.Logo.usable()
		if err != nil {
			return nil, Branding{Status: BrandingSuppressed, Reason: err.Error()}
		}
		return logo, Branding{Status: BrandingApplied}
	}
	if opts.LogoPath == "" {
		return nil, Branding{Status: BrandingSuppressed, Reason: "no logo configured"}
	}
	logo, err := LoadLogo(opts.LogoPath)
	if err != nil {
		return nil, Branding{Status: BrandingSuppressed, Reason: err.Error()}
	}
	return logo, Branding{Status: BrandingApplied}
}

// buildPackage assembles every part of the document.
func buildPackage(rec models.Record, title string, logo *Logo) ([]byte, error) {
	defaults := []contentDefault{
		{"rels", ctRels},
		{"xml", ctXML},
	}
	overrides := []contentOverride{
		{"/word/document.xml", ctDocument},
		{"/word/styles.xml", ctStyles},
	}
	docRels := []relationship{
		{"rId1", relStyles, "styles.xml"},
	}
	if logo != nil {
		defaults = append(defaults, contentDefault{logo.Format, logo.ContentType()})
		overrides = append(overrides,
			contentOverride{"/word/header1.xml", ctHeader},
			contentOverride{"/word/footer1.xml", ctFooter},
		)
		docRels = append(docRels,
			relationship{"rId2", relHeader, "header1.xml"},
			relationship{"rId3", relFooter, "footer1.xml"},
		)
	}

	parts := []part{
		{"[Content_Types].xml", contentTypesXML(defaults, overrides)},
		{"_rels/.rels", relationshipsXML([]relationship{{"rId1", relOfficeDocument, "word/document.xml"}})},
		{"word/document.xml", documentXML(rec, title, logo != nil)},
		{"word/_rels/document.xml.rels", relationshipsXML(docRels)},
		{"word/styles.xml", []byte(stylesXML)},
	}
	if logo != nil {
		parts = append(parts,
			part{"word/header1.xml", headerXML(logo)},
			part{"word/_rels/header1.xml.rels", relationshipsXML([]relationship{{"rId1", relImage, "media/logo." + logo.Format}})},
			part{"word/footer1.xml", footerXML()},
			part{logo.partName(), logo.Data},
		)
	}

	return writePackage(parts)
}

func documentXML(rec models.Record, title string, branded bool) []byte {
	var b xmlBuilder
	b.raw(xmlHeader)
	b.raw(`<w:document xmlns:w="` + nsW + `" xmlns:r="` + nsR + `"><w:body>`)

	b.paragraph(title, "center", runStyle{bold: true, size: titleSize})
	b.table(labels(propertyColumns), [][]string{values(rec, propertyColumns)})
	b.paragraph("", "", runStyle{})
	b.table(labels(lockerColumns), [][]string{values(rec, lockerColumns)})

	b.raw(`<w:sectPr>`)
	if branded {
		b.raw(`<w:headerReference w:type="default" r:id="rId2"/><w:footerReference w:type="default" r:id="rId3"/>`)
	}
	b.raw(`<w:pgSz w:w="12240" w:h="15840"/><w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720" w:gutter="0"/></w:sectPr>`)
	b.raw(`</w:body></w:document>`)
	return b.bytes()
}

func headerXML(logo *Logo) []byte {
	cx, cy := logo.extent()

	var b xmlBuilder
	b.raw(xmlHeader)
	b.raw(`<w:hdr xmlns:w="` + nsW + `" xmlns:r="` + nsR + `" xmlns:wp="` + nsWP + `" xmlns:a="` + nsA + `" xmlns:pic="` + nsPic + `">`)
	b.raw(`<w:p><w:r><w:drawing><wp:inline distT="0" distB="0" distL="0" distR="0">`)
	b.raw(`<wp:extent cx="`).num(cx).raw(`" cy="`).num(cy).raw(`"/>`)
	b.raw(`<wp:docPr id="1" name="Logo"/>`)
	b.raw(`<wp:cNvGraphicFramePr><a:graphicFrameLocks noChangeAspect="1"/></wp:cNvGraphicFramePr>`)
	b.raw(`<a:graphic><a:graphicData uri="` + nsPic + `"><pic:pic>`)
	b.raw(`<pic:nvPicPr><pic:cNvPr id="0" name="logo.`).attr(logo.Format).raw(`"/><pic:cNvPicPr/></pic:nvPicPr>`)
	b.raw(`<pic:blipFill><a:blip r:embed="rId1"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`)
	b.raw(`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="`).num(cx).raw(`" cy="`).num(cy).raw(`"/></a:xfrm>`)
	b.raw(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`)
	b.raw(`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r></w:p>`)
	b.raw(`</w:hdr>`)
	return b.bytes()
}

func footerXML() []byte {
	var b xmlBuilder
	b.raw(xmlHeader)
	b.raw(`<w:ftr xmlns:w="` + nsW + `" xmlns:r="` + nsR + `">`)
	b.paragraph(FooterText, "center", runStyle{size: 18})
	b.raw(`</w:ftr>`)
	return b.bytes()
}

func labels(cols []column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.label
	}
	return out
}

func values(rec models.Record, cols []column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = rec.Field(c.field)
	}
	return out
}
