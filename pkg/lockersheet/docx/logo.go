package docx

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoding
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding
	"os"

	"github.com/ukaji3/lockersheet-go/pkg/lockersheet/parser"
)

// ErrLogoUnavailable indicates the logo could not be loaded or decoded.
var ErrLogoUnavailable = errors.New("logo unavailable")

// logoWidthEMU is the rendered logo width: 1.5 inches.
const logoWidthEMU = parser.EMUPerInch * 3 / 2

// Logo is a decoded branding image ready for embedding.
type Logo struct {
	// Data holds the encoded image bytes.
	Data []byte
	// Format is the image format name ("png", "jpeg", "gif").
	Format string
	// Width and Height are the pixel dimensions of the image.
	Width  int
	Height int
}

// LoadLogo reads and decodes the image at path.
// Every failure wraps ErrLogoUnavailable.
func LoadLogo(path string) (*Logo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLogoUnavailable, err)
	}
	return DecodeLogo(data)
}

// DecodeLogo validates encoded image bytes as a logo.
func DecodeLogo(data []byte) (*Logo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLogoUnavailable, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: empty image", ErrLogoUnavailable)
	}
	return &Logo{Data: data, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// usable returns l itself when it carries a format and a size, and otherwise
// decodes l.Data again.
func (l *Logo) usable() (*Logo, error) {
	if l.Format != "" && l.Width > 0 && l.Height > 0 {
		return l, nil
	}
	return DecodeLogo(l.Data)
}

// ContentType returns the media type of the image.
func (l *Logo) ContentType() string {
	return "image/" + l.Format
}

// partName returns the package path of the embedded image.
func (l *Logo) partName() string {
	return "word/media/logo." + l.Format
}

// extent returns the rendered size in EMU, keeping the aspect ratio.
func (l *Logo) extent() (cx, cy int64) {
	cx = logoWidthEMU
	cy = cx * int64(l.Height) / int64(l.Width)
	return cx, cy
}
