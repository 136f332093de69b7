package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// ErrNotDocument indicates the package has no main document part.
var ErrNotDocument = errors.New("not a word-processing document")

// Paragraph is the text and formatting of one paragraph.
type Paragraph struct {
	Text  string `json:"text"`
	Bold  bool   `json:"bold,omitempty"`
	Align string `json:"align,omitempty"`
}

// Table is the cell text of one table, row by row.
type Table struct {
	Rows [][]string `json:"rows"`
	// HeaderBold reports whether every first-row cell is bold.
	HeaderBold bool `json:"header_bold"`
}

// Outline summarizes the content of a document package.
type Outline struct {
	// Blocks lists the body block kinds in order ("paragraph" or "table").
	Blocks     []string    `json:"blocks"`
	Paragraphs []Paragraph `json:"paragraphs"`
	Tables     []Table     `json:"tables"`
	// HeaderImage reports whether a header part contains a drawing.
	HeaderImage bool   `json:"header_image"`
	FooterText  string `json:"footer_text,omitempty"`
	// Parts lists the package part names in archive order.
	Parts []string `json:"parts"`
}

// Title returns the text of the first paragraph.
func (o *Outline) Title() string {
	if len(o.Paragraphs) == 0 {
		return ""
	}
	return o.Paragraphs[0].Text
}

// HasPart reports whether the package contains name.
func (o *Outline) HasPart(name string) bool {
	for _, p := range o.Parts {
		if p == name {
			return true
		}
	}
	return false
}

// xmlBlock decodes either a paragraph (w:p) or a table (w:tbl).
type xmlBlock struct {
	XMLName xml.Name
	PPr     *xmlPPr  `xml:"pPr"`
	Runs    []xmlRun `xml:"r"`
	Rows    []xmlRow `xml:"tr"`
}

type xmlPPr struct {
	Jc *xmlVal `xml:"jc"`
}

type xmlVal struct {
	Val string `xml:"val,attr"`
}

type xmlRun struct {
	RPr     *xmlRPr   `xml:"rPr"`
	Texts   []string  `xml:"t"`
	Drawing *struct{} `xml:"drawing"`
}

type xmlRPr struct {
	Bold *struct{} `xml:"b"`
}

type xmlRow struct {
	Cells []xmlCell `xml:"tc"`
}

type xmlCell struct {
	Paragraphs []xmlBlock `xml:"p"`
}

type xmlBody struct {
	Blocks []xmlBlock `xml:",any"`
}

type xmlDocument struct {
	Body xmlBody `xml:"body"`
}

// xmlPartRoot decodes the paragraphs of a header or footer part.
type xmlPartRoot struct {
	Paragraphs []xmlBlock `xml:"p"`
}

type xmlRelationships struct {
	Relationships []struct {
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// Inspect reads a rendered document package and outlines its content.
func Inspect(data []byte) (*Outline, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	outline := &Outline{}
	for _, f := range r.File {
		outline.Parts = append(outline.Parts, f.Name)
	}

	documentXML, err := readZipFile(r, "word/document.xml")
	if err != nil {
		return nil, err
	}
	if documentXML == nil {
		return nil, ErrNotDocument
	}

	var doc xmlDocument
	if err := xml.Unmarshal(documentXML, &doc); err != nil {
		return nil, err
	}
	for _, block := range doc.Body.Blocks {
		switch block.XMLName.Local {
		case "p":
			outline.Blocks = append(outline.Blocks, "paragraph")
			outline.Paragraphs = append(outline.Paragraphs, block.paragraph())
		case "tbl":
			outline.Blocks = append(outline.Blocks, "table")
			outline.Tables = append(outline.Tables, block.table())
		}
	}

	relsXML, err := readZipFile(r, "word/_rels/document.xml.rels")
	if err != nil || relsXML == nil {
		return outline, err
	}
	var rels xmlRelationships
	if err := xml.Unmarshal(relsXML, &rels); err != nil {
		return nil, err
	}

	for _, rel := range rels.Relationships {
		switch rel.Type {
		case relHeader:
			paras, err := readPartParagraphs(r, resolveRelativePath(rel.Target, "word"))
			if err != nil {
				return nil, err
			}
			for _, p := range paras {
				if p.hasDrawing() {
					outline.HeaderImage = true
				}
			}
		case relFooter:
			paras, err := readPartParagraphs(r, resolveRelativePath(rel.Target, "word"))
			if err != nil {
				return nil, err
			}
			var texts []string
			for _, p := range paras {
				if t := p.paragraph().Text; t != "" {
					texts = append(texts, t)
				}
			}
			outline.FooterText = strings.Join(texts, "\n")
		}
	}

	return outline, nil
}

func readPartParagraphs(r *zip.Reader, name string) ([]xmlBlock, error) {
	data, err := readZipFile(r, name)
	if err != nil || data == nil {
		return nil, err
	}
	var root xmlPartRoot
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return root.Paragraphs, nil
}

func (b xmlBlock) paragraph() Paragraph {
	p := Paragraph{}
	if b.PPr != nil && b.PPr.Jc != nil {
		p.Align = b.PPr.Jc.Val
	}

	var text strings.Builder
	bold := len(b.Runs) > 0
	for _, run := range b.Runs {
		for _, t := range run.Texts {
			text.WriteString(t)
		}
		if run.RPr == nil || run.RPr.Bold == nil {
			bold = false
		}
	}
	p.Text = text.String()
	p.Bold = bold
	return p
}

func (b xmlBlock) table() Table {
	t := Table{}
	for i, row := range b.Rows {
		cells := make([]string, len(row.Cells))
		rowBold := true
		for j, cell := range row.Cells {
			var texts []string
			for _, para := range cell.Paragraphs {
				p := para.paragraph()
				texts = append(texts, p.Text)
				if !p.Bold {
					rowBold = false
				}
			}
			cells[j] = strings.Join(texts, "\n")
		}
		if i == 0 {
			t.HeaderBold = rowBold && len(row.Cells) > 0
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func (b xmlBlock) hasDrawing() bool {
	for _, run := range b.Runs {
		if run.Drawing != nil {
			return true
		}
	}
	return false
}

// readZipFile returns the content of a zip entry, or nil if it does not exist.
func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, nil
}

// resolveRelativePath resolves a relationship target against the part directory.
func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	for strings.HasPrefix(target, "../") {
		target = strings.TrimPrefix(target, "../")
		if i := strings.LastIndex(baseDir, "/"); i >= 0 {
			baseDir = baseDir[:i]
		} else {
			baseDir = ""
		}
	}
	if baseDir == "" {
		return target
	}
	return baseDir + "/" + target
}
