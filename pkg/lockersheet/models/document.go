package models

// DocxContentType is the media type of a word-processing document.
const DocxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Document is a rendered, ready-to-download document.
type Document struct {
	// FileName is the suggested download name.
	FileName string `json:"file_name"`
	// ContentType is the media type of Data.
	ContentType string `json:"content_type"`
	// Data holds the document bytes.
	Data []byte `json:"-"`
}
