// Package output serializes conversion results for the command line.
package output

import "encoding/json"

// ToJSON serializes v, indented when pretty is set.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// LockerList is the serialized form of a locker name listing.
type LockerList struct {
	Sheet       string   `json:"sheet"`
	Range       string   `json:"range,omitempty"`
	KioskColumn string   `json:"kiosk_column"`
	Lockers     []string `json:"lockers"`
}

// Preview is the serialized form of a row preview.
type Preview struct {
	Locker  string     `json:"locker"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}
