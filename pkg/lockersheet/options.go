// Package lockersheet converts one row of an Amazon Locker spreadsheet into a
// Word document. Every function is request-scoped: inputs go in as arguments
// and nothing is kept between calls.
package lockersheet

import "github.com/ukaji3/lockersheet-go/pkg/lockersheet/docx"

// DefaultLogoPath is where the branding image is looked up by default.
const DefaultLogoPath = "assets/logo.png"

// Options configures loading and rendering.
type Options struct {
	// SheetName selects the sheet to read. Empty means the first sheet.
	SheetName string
	// LogoPath is the optional branding image. Empty disables branding.
	LogoPath string
	// Logo is a preloaded branding image. It takes precedence over LogoPath.
	Logo *docx.Logo
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		LogoPath: DefaultLogoPath,
	}
}

// RenderOptions returns the renderer settings derived from o.
func (o Options) RenderOptions() docx.Options {
	return docx.Options{
		Logo:     o.Logo,
		LogoPath: o.LogoPath,
	}
}
