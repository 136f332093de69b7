package lockersheet

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ukaji3/lockersheet-go/pkg/lockersheet/docx"
	"github.com/ukaji3/lockersheet-go/pkg/lockersheet/models"
	"github.com/ukaji3/lockersheet-go/pkg/lockersheet/parser"
	"github.com/ukaji3/lockersheet-go/pkg/lockersheet/schema"
	"github.com/ukaji3/lockersheet-go/pkg/lockersheet/selector"
	"github.com/xuri/excelize/v2"
)

// Load reads a workbook and returns the table on its selected sheet.
func Load(r io.Reader, opts Options) (*models.Table, error) {
	return load(r, "", opts)
}

// LoadFile reads the workbook at path.
func LoadFile(path string, opts Options) (*models.Table, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return load(f, filepath.Base(path), opts)
}

func load(r io.Reader, source string, opts Options) (*models.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, NewIngestionError(source, err)
	}
	defer f.Close()

	sheetName := opts.SheetName
	if sheetName == "" {
		sheetName, err = parser.FirstSheet(f)
		if err != nil {
			return nil, NewIngestionError(source, err)
		}
	}

	table, err := parser.ReadTable(f, sheetName)
	if err != nil {
		return nil, NewIngestionError(source, err)
	}
	return table, nil
}

// Open loads a workbook and validates it against the locker sheet schema.
func Open(r io.Reader, opts Options) (*schema.ValidatedTable, error) {
	table, err := Load(r, opts)
	if err != nil {
		return nil, err
	}
	return schema.Validate(table)
}

// OpenFile loads and validates the workbook at path.
func OpenFile(path string, opts Options) (*schema.ValidatedTable, error) {
	table, err := LoadFile(path, opts)
	if err != nil {
		return nil, err
	}
	return schema.Validate(table)
}

// Lockers returns the selectable locker names.
// An empty list is returned together with ErrNoLockers.
func Lockers(vt *schema.ValidatedTable) ([]string, error) {
	names := selector.ListLockerNames(vt.Table)
	if len(names) == 0 {
		return names, ErrNoLockers
	}
	return names, nil
}

// Generate renders the document for the first row named name.
func Generate(vt *schema.ValidatedTable, name string, opts Options) (*docx.Result, error) {
	records := selector.Select(vt.Table, name)
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrLockerNotFound, name)
	}
	return docx.Render(records, vt.KioskColumn, opts.RenderOptions())
}
