// Package schema checks an ingested table against the locker sheet columns.
package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/lockersheet-go/pkg/lockersheet/models"
)

// Column names used by the locker sheet layout.
const (
	ColPropertyName  = "Property Name"
	ColStoreID       = "Store ID (NSA Unique ID)"
	ColAddress       = "Address"
	ColCity          = "City"
	ColState         = "St"
	ColZip           = "Zip"
	ColSize          = "Size"
	ColGen           = "Gen"
	ColIndoorOutdoor = "Indoor/ Outdoor"
	ColConfig        = "Config"
	ColLockerName    = "Locker Name"
	ColContactName   = "Contact Name"
	ColContactPhone  = "Contact Phone #"
	ColPOForInvoice  = "PO for Invoice"
)

// RequiredColumns must be present verbatim.
var RequiredColumns = []string{
	ColPropertyName,
	ColStoreID,
	ColAddress,
	ColCity,
	ColState,
	ColZip,
	ColSize,
	ColGen,
	ColIndoorOutdoor,
	ColConfig,
	ColLockerName,
	ColContactName,
	ColContactPhone,
	ColPOForInvoice,
}

// KioskAliases lists the accepted kiosk headers in preference order.
var KioskAliases = []string{"Kiosk", "Kiosk "}

// ErrMissingColumns is matched by every *MissingColumnsError.
var ErrMissingColumns = errors.New("missing required columns")

// ErrMissingKiosk indicates none of the kiosk aliases is a column.
var ErrMissingKiosk = fmt.Errorf("missing the 'Kiosk' column (expected header %s)", quoteAll(KioskAliases))

// MissingColumnsError names every required column absent from a table.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return "the uploaded file is missing these columns: " + strings.Join(e.Missing, ", ")
}

// Is reports whether target is ErrMissingColumns.
func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}

// ValidatedTable is a table known to carry every required column.
type ValidatedTable struct {
	*models.Table
	// KioskColumn is the resolved kiosk header.
	KioskColumn string
}

// Validate checks the required columns and resolves the kiosk column.
func Validate(table *models.Table) (*ValidatedTable, error) {
	var missing []string
	for _, name := range RequiredColumns {
		if !table.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}

	kiosk, ok := ResolveAlias(table, KioskAliases)
	if !ok {
		return nil, ErrMissingKiosk
	}

	return &ValidatedTable{Table: table, KioskColumn: kiosk}, nil
}

// ResolveAlias returns the first alias that is a column of table.
func ResolveAlias(table *models.Table, aliases []string) (string, bool) {
	for _, alias := range aliases {
		if table.HasColumn(alias) {
			return alias, true
		}
	}
	return "", false
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return strings.Join(quoted, " or ")
}
