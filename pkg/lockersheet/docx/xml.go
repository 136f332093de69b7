package docx

import (
	"bytes"
	"encoding/xml"
	"strconv"
)

// xmlBuilder accumulates markup. Text and attribute values are escaped.
type xmlBuilder struct {
	buf bytes.Buffer
}

func (b *xmlBuilder) raw(s string) *xmlBuilder {
	b.buf.WriteString(s)
	return b
}

func (b *xmlBuilder) attr(s string) *xmlBuilder {
	xml.EscapeText(&b.buf, []byte(s))
	return b
}

func (b *xmlBuilder) num(n int64) *xmlBuilder {
	b.buf.WriteString(strconv.FormatInt(n, 10))
	return b
}

func (b *xmlBuilder) bytes() []byte {
	return b.buf.Bytes()
}

// runStyle holds the character formatting of a run.
type runStyle struct {
	bold bool
	// size is in half-points; zero keeps the style default.
	size int
}

// paragraph writes a single-run paragraph. align is a w:jc value or "".
func (b *xmlBuilder) paragraph(text, align string, style runStyle) {
	b.raw(`<w:p>`)
	if align != "" {
		b.raw(`<w:pPr><w:jc w:val="`).attr(align).raw(`"/></w:pPr>`)
	}
	if text != "" {
		b.run(text, style)
	}
	b.raw(`</w:p>`)
}

func (b *xmlBuilder) run(text string, style runStyle) {
	b.raw(`<w:r>`)
	if style.bold || style.size > 0 {
		b.raw(`<w:rPr>`)
		if style.bold {
			b.raw(`<w:b/>`)
		}
		if style.size > 0 {
			b.raw(`<w:sz w:val="`).num(int64(style.size)).raw(`"/>`)
		}
		b.raw(`</w:rPr>`)
	}
	b.raw(`<w:t xml:space="preserve">`).attr(text).raw(`</w:t></w:r>`)
}

// table writes a Table Grid table with a bold header row and value rows.
func (b *xmlBuilder) table(headers []string, rows [][]string) {
	width := int64(textWidth / len(headers))

	b.raw(`<w:tbl><w:tblPr><w:tblStyle w:val="TableGrid"/><w:tblW w:w="0" w:type="auto"/><w:tblLook w:val="04A0"/></w:tblPr>`)
	b.raw(`<w:tblGrid>`)
	for range headers {
		b.raw(`<w:gridCol w:w="`).num(width).raw(`"/>`)
	}
	b.raw(`</w:tblGrid>`)

	b.tableRow(headers, width, runStyle{bold: true})
	for _, row := range rows {
		b.tableRow(row, width, runStyle{})
	}
	b.raw(`</w:tbl>`)
}

func (b *xmlBuilder) tableRow(cells []string, width int64, style runStyle) {
	b.raw(`<w:tr>`)
	for _, cell := range cells {
		b.raw(`<w:tc><w:tcPr><w:tcW w:w="`).num(width).raw(`" w:type="dxa"/></w:tcPr>`)
		b.paragraph(cell, "", style)
		b.raw(`</w:tc>`)
	}
	b.raw(`</w:tr>`)
}
