package server

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ukaji3/lockersheet-go/pkg/lockersheet"
	"github.com/ukaji3/lockersheet-go/pkg/lockersheet/schema"
)

// Form field names
const (
	fieldFile     = "file"
	fieldWorkbook = "workbook"
	fieldLocker   = "locker"
)

// minMultipartMemory is the smallest part of a multipart body kept in memory.
const minMultipartMemory = 32 << 20

// multipartMemory returns the memory budget for parsing an upload of at most
// limit bytes. Plain form values must fit in it, including the base64
// workbook field sent back by the select form.
func multipartMemory(limit int64) int64 {
	encoded := int64(base64.StdEncoding.EncodedLen(int(limit)))
	if encoded < minMultipartMemory {
		return minMultipartMemory
	}
	return encoded
}

var (
	errNoUpload     = errors.New("please upload an Excel file (.xlsx)")
	errUploadTooBig = errors.New("the uploaded file is too large")
	errNoSelection  = errors.New("please select a Locker Name")
)

// upload is a workbook received with a request.
type upload struct {
	name string
	data []byte
}

// readUpload returns the workbook posted as a file part or as the
// base64 workbook field carried by the select form.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (*upload, error) {
	limit := s.cfg.MaxUploadBytes()
	// base64 in the workbook field inflates the body by a third.
	r.Body = http.MaxBytesReader(w, r.Body, limit*2)

	if err := r.ParseMultipartForm(multipartMemory(limit)); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, errUploadTooBig
		}
		return nil, fmt.Errorf("read upload: %w", err)
	}

	up := &upload{}
	if file, header, err := r.FormFile(fieldFile); err == nil {
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, limit+1))
		if err != nil {
			return nil, fmt.Errorf("read upload: %w", err)
		}
		up.name, up.data = header.Filename, data
	} else if enc := r.FormValue(fieldWorkbook); enc != "" {
		data, err := base64.StdEncoding.DecodeString(enc)
		if err != nil {
			return nil, errNoUpload
		}
		up.name, up.data = r.FormValue("filename"), data
	} else {
		return nil, errNoUpload
	}

	if int64(len(up.data)) > limit {
		return nil, errUploadTooBig
	}
	return up, nil
}

// encoded returns the workbook as carried in the select form.
func (u *upload) encoded() string {
	return base64.StdEncoding.EncodeToString(u.data)
}

// statusFor maps a pipeline error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errNoUpload), errors.Is(err, errNoSelection):
		return http.StatusBadRequest
	case errors.Is(err, errUploadTooBig):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, lockersheet.ErrInvalidFormat):
		return http.StatusBadRequest
	case errors.Is(err, schema.ErrMissingColumns), errors.Is(err, schema.ErrMissingKiosk):
		return http.StatusUnprocessableEntity
	case errors.Is(err, lockersheet.ErrNoLockers), errors.Is(err, lockersheet.ErrLockerNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
