package lockersheet

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrNoLockers indicates the table has no selectable locker names.
var ErrNoLockers = errors.New("no Locker Name values found in the file")

// ErrLockerNotFound indicates no row matches the selected locker name.
var ErrLockerNotFound = errors.New("no row found for that Locker Name")

// IngestionError represents a file that could not be read as a spreadsheet.
// It always matches ErrInvalidFormat.
type IngestionError struct {
	Source string
	Err    error
}

func (e *IngestionError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("error reading Excel file: %v", e.Err)
	}
	return fmt.Sprintf("error reading Excel file %q: %v", e.Source, e.Err)
}

func (e *IngestionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalidFormat.
func (e *IngestionError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// NewIngestionError creates a new IngestionError.
func NewIngestionError(source string, err error) *IngestionError {
	return &IngestionError{
		Source: source,
		Err:    err,
	}
}
