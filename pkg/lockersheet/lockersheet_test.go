package lockersheet

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/lockersheet-go/pkg/lockersheet/docx"
	"github.com/ukaji3/lockersheet-go/pkg/lockersheet/schema"
)

// fullRow returns values for every required column.
func fullRow(locker string, kiosk interface{}) map[string]interface{} {
	return map[string]interface{}{
		schema.ColPropertyName:  "Sunny Storage",
		schema.ColStoreID:       4411,
		schema.ColAddress:       "1 Main St",
		schema.ColCity:          "Austin",
		schema.ColState:         "TX",
		schema.ColZip:           78701,
		schema.ColSize:          "L",
		schema.ColGen:           3,
		schema.ColIndoorOutdoor: "Indoor",
		schema.ColConfig:        "C-12",
		schema.ColLockerName:    locker,
		schema.ColContactName:   "Pat Lee",
		schema.ColContactPhone:  "555-0100",
		schema.ColPOForInvoice:  "PO-9",
		"Kiosk":                 kiosk,
	}
}

// workbook builds an xlsx with the given header and rows on its first sheet.
func workbook(t *testing.T, header []string, rows ...map[string]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for c, name := range header {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", cell, name))
	}
	for r, row := range rows {
		for c, name := range header {
			v, ok := row[name]
			if !ok || v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func standardHeader(kiosk ...string) []string {
	header := append([]string{}, schema.RequiredColumns...)
	if len(kiosk) == 0 {
		kiosk = []string{"Kiosk"}
	}
	return append(header, kiosk...)
}

func TestScenarioSingleRow(t *testing.T) {
	data := workbook(t, standardHeader(), fullRow("A1", 7))

	vt, err := Open(bytes.NewReader(data), Options{})
	require.NoError(t, err)

	names, err := Lockers(vt)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, names)

	res, err := Generate(vt, "A1", Options{})
	require.NoError(t, err)
	assert.Equal(t, "A1_Kiosk_7.docx", res.Document.FileName)
	assert.Equal(t, "A1  (Kiosk 7)", res.Title)

	outline, err := docx.Inspect(res.Document.Data)
	require.NoError(t, err)
	assert.Equal(t, "A1  (Kiosk 7)", outline.Title())
	require.Len(t, outline.Tables, 2)
	assert.Equal(t, []string{"Sunny Storage", "4411", "1 Main St", "Austin", "TX", "78701"}, outline.Tables[0].Rows[1])
	assert.Equal(t, []string{"L", "3", "Indoor", "C-12", "A1", "Pat Lee", "555-0100", "PO-9"}, outline.Tables[1].Rows[1])
}

func TestScenarioDuplicateLockerName(t *testing.T) {
	first := fullRow("B2", 1)
	first[schema.ColCity] = "Austin"
	second := fullRow("B2", 2)
	second[schema.ColCity] = "Boston"

	vt, err := Open(bytes.NewReader(workbook(t, standardHeader(), first, second)), Options{})
	require.NoError(t, err)

	names, err := Lockers(vt)
	require.NoError(t, err)
	assert.Equal(t, []string{"B2"}, names)

	res, err := Generate(vt, "B2", Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Candidates)
	assert.Equal(t, "B2_Kiosk_1.docx", res.Document.FileName)

	outline, err := docx.Inspect(res.Document.Data)
	require.NoError(t, err)
	assert.Equal(t, "Austin", outline.Tables[0].Rows[1][3])
}

func TestScenarioMissingColumns(t *testing.T) {
	var header []string
	for _, c := range standardHeader() {
		if c != schema.ColConfig && c != schema.ColZip {
			header = append(header, c)
		}
	}

	vt, err := Open(bytes.NewReader(workbook(t, header, fullRow("A1", 7))), Options{})
	assert.Nil(t, vt)

	var mce *schema.MissingColumnsError
	require.True(t, errors.As(err, &mce))
	assert.ElementsMatch(t, []string{schema.ColConfig, schema.ColZip}, mce.Missing)
}

func TestScenarioBlankPropertyName(t *testing.T) {
	row := fullRow("D4", 9)
	row[schema.ColPropertyName] = nil

	vt, err := Open(bytes.NewReader(workbook(t, standardHeader(), row)), Options{})
	require.NoError(t, err)

	res, err := Generate(vt, "D4", Options{})
	require.NoError(t, err)

	outline, err := docx.Inspect(res.Document.Data)
	require.NoError(t, err)
	cell := outline.Tables[0].Rows[1][0]
	assert.Equal(t, "", cell)
	assert.NotEqual(t, "nan", cell)
	assert.NotEqual(t, "None", cell)
}

func TestKioskAliasPreference(t *testing.T) {
	header := standardHeader("Kiosk ", "Kiosk")
	row := fullRow("A1", 7)
	row["Kiosk "] = 3

	vt, err := Open(bytes.NewReader(workbook(t, header, row)), Options{})
	require.NoError(t, err)
	assert.Equal(t, "Kiosk", vt.KioskColumn)

	res, err := Generate(vt, "A1", Options{})
	require.NoError(t, err)
	assert.Equal(t, "A1_Kiosk_7.docx", res.Document.FileName)
}

func TestTrailingSpaceKiosk(t *testing.T) {
	row := fullRow("A1", nil)
	row["Kiosk "] = 12

	vt, err := Open(bytes.NewReader(workbook(t, standardHeader("Kiosk "), row)), Options{})
	require.NoError(t, err)
	assert.Equal(t, "Kiosk ", vt.KioskColumn)

	res, err := Generate(vt, "A1", Options{})
	require.NoError(t, err)
	assert.Equal(t, "A1  (Kiosk 12)", res.Title)
}

func TestMissingKiosk(t *testing.T) {
	_, err := Open(bytes.NewReader(workbook(t, schema.RequiredColumns, fullRow("A1", 7))), Options{})
	assert.ErrorIs(t, err, schema.ErrMissingKiosk)
}

func TestNoLockers(t *testing.T) {
	row := fullRow("", 7)
	vt, err := Open(bytes.NewReader(workbook(t, standardHeader(), row)), Options{})
	require.NoError(t, err)

	names, err := Lockers(vt)
	assert.ErrorIs(t, err, ErrNoLockers)
	assert.Empty(t, names)

	vt, err = Open(bytes.NewReader(workbook(t, standardHeader())), Options{})
	require.NoError(t, err)
	_, err = Lockers(vt)
	assert.ErrorIs(t, err, ErrNoLockers)
}

func TestGenerateUnknownLocker(t *testing.T) {
	vt, err := Open(bytes.NewReader(workbook(t, standardHeader(), fullRow("A1", 7))), Options{})
	require.NoError(t, err)

	res, err := Generate(vt, "a1", Options{})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrLockerNotFound)
}

func TestGenerateIncompleteLogo(t *testing.T) {
	vt, err := Open(bytes.NewReader(workbook(t, standardHeader(), fullRow("A1", 7))), Options{})
	require.NoError(t, err)

	res, err := Generate(vt, "A1", Options{Logo: &docx.Logo{Format: "png"}})
	require.NoError(t, err)
	assert.Equal(t, docx.BrandingSuppressed, res.Branding.Status)
	assert.Contains(t, res.Branding.Reason, docx.ErrLogoUnavailable.Error())
}

func TestGenerateDeterministic(t *testing.T) {
	vt, err := Open(bytes.NewReader(workbook(t, standardHeader(), fullRow("A1", 7))), Options{})
	require.NoError(t, err)

	a, err := Generate(vt, "A1", Options{})
	require.NoError(t, err)
	b, err := Generate(vt, "A1", Options{})
	require.NoError(t, err)
	assert.Equal(t, a.Document.Data, b.Document.Data)
}

func TestLoadInvalidFormat(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte("Locker Name,Kiosk\nA1,7\n")), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	var ie *IngestionError
	assert.True(t, errors.As(err, &ie))
}

func TestLoadUnknownSheet(t *testing.T) {
	_, err := Load(bytes.NewReader(workbook(t, standardHeader())), Options{SheetName: "Lockers"})
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lockers.xlsx")
	require.NoError(t, os.WriteFile(path, workbook(t, standardHeader(), fullRow("A1", 7)), 0o644))

	vt, err := OpenFile(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", vt.SheetName)

	_, err = LoadFile(filepath.Join(dir, "absent.xlsx"), Options{})
	assert.ErrorIs(t, err, ErrFileNotFound)

	bad := filepath.Join(dir, "bad.xlsx")
	require.NoError(t, os.WriteFile(bad, []byte("nope"), 0o644))
	_, err = LoadFile(bad, Options{})
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.Contains(t, err.Error(), "bad.xlsx")
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, DefaultLogoPath, opts.LogoPath)
	assert.Equal(t, DefaultLogoPath, opts.RenderOptions().LogoPath)
}
