package docx

import (
	"archive/zip"
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/lockersheet-go/pkg/lockersheet/models"
	"github.com/ukaji3/lockersheet-go/pkg/lockersheet/schema"
)

func sampleRecord() models.Record {
	return models.Record{Row: models.Row{
		schema.ColPropertyName:  "Sunny Storage",
		schema.ColStoreID:       int64(4411),
		schema.ColAddress:       "1 Main St",
		schema.ColCity:          "Austin",
		schema.ColState:         "TX",
		schema.ColZip:           "02134",
		schema.ColSize:          "L",
		schema.ColGen:           int64(3),
		schema.ColIndoorOutdoor: "Indoor",
		schema.ColConfig:        "C-12",
		schema.ColLockerName:    "A1",
		schema.ColContactName:   "Pat Lee",
		schema.ColContactPhone:  "555-0100",
		schema.ColPOForInvoice:  "PO-9",
		"Kiosk":                 int64(7),
	}}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestRender(t *testing.T) {
	res, err := Render([]models.Record{sampleRecord()}, "Kiosk", Options{})
	require.NoError(t, err)

	assert.Equal(t, "A1  (Kiosk 7)", res.Title)
	assert.Equal(t, "A1_Kiosk_7.docx", res.Document.FileName)
	assert.Equal(t, models.DocxContentType, res.Document.ContentType)
	assert.Equal(t, 1, res.Candidates)

	outline, err := Inspect(res.Document.Data)
	require.NoError(t, err)

	assert.Equal(t, []string{"paragraph", "table", "paragraph", "table"}, outline.Blocks)
	assert.Equal(t, Paragraph{Text: "A1  (Kiosk 7)", Bold: true, Align: "center"}, outline.Paragraphs[0])

	require.Len(t, outline.Tables, 2)
	assert.Equal(t, [][]string{
		{"Property Name", "Store ID", "Address", "City", "State", "Zip"},
		{"Sunny Storage", "4411", "1 Main St", "Austin", "TX", "02134"},
	}, outline.Tables[0].Rows)
	assert.True(t, outline.Tables[0].HeaderBold)
	assert.Equal(t, [][]string{
		{"Size", "Gen", "Indoor/Outdoor", "Config", "Locker Name", "Contact Name", "Contact Phone", "PO for Invoice"},
		{"L", "3", "Indoor", "C-12", "A1", "Pat Lee", "555-0100", "PO-9"},
	}, outline.Tables[1].Rows)
	assert.True(t, outline.Tables[1].HeaderBold)
}

func TestRenderNoRecords(t *testing.T) {
	res, err := Render(nil, "Kiosk", Options{})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrNoRecords)

	_, err = Render([]models.Record{}, "Kiosk", Options{})
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestRenderUsesFirstRecord(t *testing.T) {
	first := sampleRecord()
	second := sampleRecord()
	second.Index = 1
	second.Row = models.Row{schema.ColLockerName: "A1", "Kiosk": int64(99), schema.ColCity: "Boston"}

	res, err := Render([]models.Record{first, second}, "Kiosk", Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Candidates)
	assert.Equal(t, 0, res.Record.Index)
	assert.Equal(t, "A1_Kiosk_7.docx", res.Document.FileName)

	outline, err := Inspect(res.Document.Data)
	require.NoError(t, err)
	assert.Equal(t, "Austin", outline.Tables[0].Rows[1][3])
}

func TestRenderBlankCells(t *testing.T) {
	rec := sampleRecord()
	rec.Row[schema.ColPropertyName] = nil
	delete(rec.Row, schema.ColContactName)

	res, err := Render([]models.Record{rec}, "Kiosk", Options{})
	require.NoError(t, err)

	outline, err := Inspect(res.Document.Data)
	require.NoError(t, err)
	assert.Equal(t, "", outline.Tables[0].Rows[1][0])
	assert.Equal(t, "", outline.Tables[1].Rows[1][5])
}

func TestRenderEscapesMarkup(t *testing.T) {
	rec := sampleRecord()
	rec.Row[schema.ColPropertyName] = `Tom & Jerry's <Storage> "West"`

	res, err := Render([]models.Record{rec}, "Kiosk", Options{})
	require.NoError(t, err)

	outline, err := Inspect(res.Document.Data)
	require.NoError(t, err)
	assert.Equal(t, `Tom & Jerry's <Storage> "West"`, outline.Tables[0].Rows[1][0])
}

func TestRenderDeterministic(t *testing.T) {
	logo, err := DecodeLogo(pngBytes(t, 4, 2))
	require.NoError(t, err)

	for _, opts := range []Options{{}, {Logo: logo}} {
		a, err := Render([]models.Record{sampleRecord()}, "Kiosk", opts)
		require.NoError(t, err)
		b, err := Render([]models.Record{sampleRecord()}, "Kiosk", opts)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(a.Document.Data, b.Document.Data))
	}
}

func TestRenderBrandingSuppressed(t *testing.T) {
	res, err := Render([]models.Record{sampleRecord()}, "Kiosk", Options{})
	require.NoError(t, err)
	assert.Equal(t, BrandingSuppressed, res.Branding.Status)
	assert.Equal(t, "no logo configured", res.Branding.Reason)

	missing := filepath.Join(t.TempDir(), "logo.png")
	res, err = Render([]models.Record{sampleRecord()}, "Kiosk", Options{LogoPath: missing})
	require.NoError(t, err)
	assert.Equal(t, BrandingSuppressed, res.Branding.Status)
	assert.Contains(t, res.Branding.Reason, ErrLogoUnavailable.Error())

	outline, err := Inspect(res.Document.Data)
	require.NoError(t, err)
	assert.False(t, outline.HeaderImage)
	assert.Empty(t, outline.FooterText)
	assert.False(t, outline.HasPart("word/header1.xml"))
	assert.False(t, outline.HasPart("word/footer1.xml"))
}

func TestRenderBrandingCorruptLogo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	res, err := Render([]models.Record{sampleRecord()}, "Kiosk", Options{LogoPath: path})
	require.NoError(t, err)
	assert.Equal(t, BrandingSuppressed, res.Branding.Status)
}

func TestRenderPreloadedLogo(t *testing.T) {
	tests := []struct {
		name   string
		logo   *Logo
		status BrandingStatus
	}{
		{"undecodable without size", &Logo{Data: []byte("x"), Format: "png"}, BrandingSuppressed},
		{"no format", &Logo{Data: []byte("x"), Width: 10, Height: 10}, BrandingSuppressed},
		{"empty", &Logo{}, BrandingSuppressed},
		{"size recovered from data", &Logo{Data: pngBytes(t, 40, 20), Format: "png"}, BrandingApplied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Render([]models.Record{sampleRecord()}, "Kiosk", Options{Logo: tt.logo})
			require.NoError(t, err)
			assert.Equal(t, tt.status, res.Branding.Status)

			outline, err := Inspect(res.Document.Data)
			require.NoError(t, err)
			assert.Equal(t, tt.status == BrandingApplied, outline.HeaderImage)
		})
	}
}

func TestRenderBrandingApplied(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 200, 100), 0o644))

	res, err := Render([]models.Record{sampleRecord()}, "Kiosk", Options{LogoPath: path})
	require.NoError(t, err)
	assert.Equal(t, Branding{Status: BrandingApplied}, res.Branding)

	outline, err := Inspect(res.Document.Data)
	require.NoError(t, err)
	assert.True(t, outline.HeaderImage)
	assert.Equal(t, FooterText, outline.FooterText)
	assert.True(t, outline.HasPart("word/media/logo.png"))
	assert.Equal(t, "A1  (Kiosk 7)", outline.Title())
}

func TestLoadLogo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 300, 150), 0o644))

	logo, err := LoadLogo(path)
	require.NoError(t, err)
	assert.Equal(t, "png", logo.Format)
	assert.Equal(t, "image/png", logo.ContentType())
	assert.Equal(t, 300, logo.Width)
	assert.Equal(t, 150, logo.Height)

	cx, cy := logo.extent()
	assert.Equal(t, int64(1371600), cx)
	assert.Equal(t, int64(685800), cy)

	_, err = LoadLogo(filepath.Join(t.TempDir(), "absent.png"))
	assert.ErrorIs(t, err, ErrLogoUnavailable)

	_, err = DecodeLogo([]byte{0x89, 'P', 'N', 'G'})
	assert.ErrorIs(t, err, ErrLogoUnavailable)
}

func TestInspectRejectsNonDocument(t *testing.T) {
	_, err := Inspect([]byte("plain text"))
	assert.Error(t, err)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("hello.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("hi"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Inspect(buf.Bytes())
	assert.ErrorIs(t, err, ErrNotDocument)
}

func TestResolveRelativePath(t *testing.T) {
	tests := []struct {
		target, base, expected string
	}{
		{"header1.xml", "word", "word/header1.xml"},
		{"/word/footer1.xml", "word", "word/footer1.xml"},
		{"../media/logo.png", "word/theme", "word/media/logo.png"},
		{"../customXml/item1.xml", "word", "customXml/item1.xml"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, resolveRelativePath(tt.target, tt.base), "target %q", tt.target)
	}
}

func TestTitleAndFileName(t *testing.T) {
	assert.Equal(t, "B2  (Kiosk )", Title("B2", ""))
	assert.Equal(t, "B2_Kiosk_12.docx", FileName("B2", "12"))
}
