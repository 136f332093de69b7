package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// dateStyles remembers which cell style indexes display dates.
type dateStyles struct {
	f        *excelize.File
	date1904 bool
	known    map[int]bool
}

func newDateStyles(f *excelize.File) *dateStyles {
	d := &dateStyles{f: f, known: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

// value returns the date held by a numeric cell whose number format
// displays a date or time. ok is false for every other cell.
func (d *dateStyles) value(sheet, cell, raw string) (t time.Time, ok bool, err error) {
	idx, err := d.f.GetCellStyle(sheet, cell)
	if err != nil || idx == 0 {
		return time.Time{}, false, err
	}

	isDate, seen := d.known[idx]
	if !seen {
		style, err := d.f.GetStyle(idx)
		if err != nil {
			return time.Time{}, false, err
		}
		isDate = isBuiltinDateFormat(style.NumFmt) ||
			(style.CustomNumFmt != nil && isDateFormatCode(*style.CustomNumFmt))
		d.known[idx] = isDate
	}
	if !isDate {
		return time.Time{}, false, nil
	}

	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return time.Time{}, false, nil
	}
	t, err = excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return time.Time{}, false, nil
	}
	return t, true, nil
}

// isBuiltinDateFormat reports whether a built-in number format id shows a date or time.
func isBuiltinDateFormat(id int) bool {
	return (id >= 14 && id <= 22) || (id >= 27 && id <= 36) ||
		(id >= 45 && id <= 47) || (id >= 50 && id <= 58)
}

// isDateFormatCode reports whether a custom number format code shows a date or time.
// Quoted literals, escaped characters and bracketed sections are ignored.
func isDateFormatCode(code string) bool {
	inQuote, inBracket, escaped := false, false, false
	for _, r := range strings.ToLower(code) {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		case strings.ContainsRune("ymdhs", r):
			return true
		}
	}
	return false
}
