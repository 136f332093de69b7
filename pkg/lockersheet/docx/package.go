// Package docx renders a locker record into a word-processing document.
package docx

import (
	"archive/zip"
	"bytes"
	"time"
)

// XML namespaces used in WordprocessingML packages
const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	nsCT  = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsRel = "http://schemas.openxmlformats.org/package/2006/relationships"
)

// Relationship types
const (
	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relHeader         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	relFooter         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
	relImage          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
)

// Part content types
const (
	ctRels     = "application/vnd.openxmlformats-package.relationships+xml"
	ctXML      = "application/xml"
	ctDocument = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ctStyles   = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	ctHeader   = "application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"
	ctFooter   = "application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// partTime is stamped on every zip entry so output is reproducible.
var partTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// part is one file inside the OOXML package.
type part struct {
	name string
	data []byte
}

// relationship is one entry of a .rels part.
type relationship struct {
	id, typ, target string
}

// contentDefault maps a file extension to a content type.
type contentDefault struct {
	ext, contentType string
}

// contentOverride maps a part name to a content type.
type contentOverride struct {
	partName, contentType string
}

// writePackage zips parts in the given order.
func writePackage(parts []part) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, p := range parts {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: partTime,
		})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(p.data); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// contentTypesXML builds the [Content_Types].xml part.
func contentTypesXML(defaults []contentDefault, overrides []contentOverride) []byte {
	var b xmlBuilder
	b.raw(xmlHeader)
	b.raw(`<Types xmlns="` + nsCT + `">`)
	for _, d := range defaults {
		b.raw(`<Default Extension="`).attr(d.ext).raw(`" ContentType="`).attr(d.contentType).raw(`"/>`)
	}
	for _, o := range overrides {
		b.raw(`<Override PartName="`).attr(o.partName).raw(`" ContentType="`).attr(o.contentType).raw(`"/>`)
	}
	b.raw(`</Types>`)
	return b.bytes()
}

// relationshipsXML builds a .rels part.
func relationshipsXML(rels []relationship) []byte {
	var b xmlBuilder
	b.raw(xmlHeader)
	b.raw(`<Relationships xmlns="` + nsRel + `">`)
	for _, r := range rels {
		b.raw(`<Relationship Id="`).attr(r.id).raw(`" Type="`).attr(r.typ).raw(`" Target="`).attr(r.target).raw(`"/>`)
	}
	b.raw(`</Relationships>`)
	return b.bytes()
}
