package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/ukaji3/lockersheet-go/pkg/lockersheet"
	"github.com/ukaji3/lockersheet-go/pkg/lockersheet/docx"
	"github.com/ukaji3/lockersheet-go/pkg/lockersheet/schema"
	"github.com/ukaji3/lockersheet-go/pkg/lockersheet/selector"
)

// pageData feeds the HTML templates.
type pageData struct {
	Error    string
	Missing  []string
	FileName string
	Workbook string
	Lockers  []string
	Selected string
	Columns  []string
	Preview  [][]string
}

// Duplicates reports whether the selected name matches several rows.
func (p pageData) Duplicates() bool {
	return len(p.Preview) > 1
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "index.html", pageData{})
}

// handleSelect validates the workbook and shows the locker selection.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	up, err := s.readUpload(w, r)
	if err != nil {
		s.renderError(w, err)
		return
	}

	vt, err := lockersheet.Open(bytes.NewReader(up.data), s.cfg.Options())
	if err != nil {
		s.renderError(w, err)
		return
	}

	names, err := lockersheet.Lockers(vt)
	if err != nil {
		s.renderError(w, err)
		return
	}

	selected := r.FormValue(fieldLocker)
	if !contains(names, selected) {
		selected = names[0]
	}
	columns, preview := selector.Preview(vt, selected)

	s.logger.Debug("Workbook accepted",
		zap.String("file", up.name),
		zap.String("range", vt.Range),
		zap.String("kiosk_column", vt.KioskColumn),
		zap.Int("rows", len(vt.Rows)),
		zap.Int("lockers", len(names)))

	s.render(w, http.StatusOK, "select.html", pageData{
		FileName: up.name,
		Workbook: up.encoded(),
		Lockers:  names,
		Selected: selected,
		Columns:  columns,
		Preview:  preview,
	})
}

// handleGenerate renders the selected locker and sends it as a download.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	res, err := s.generate(w, r)
	if err != nil {
		s.renderError(w, err)
		return
	}
	s.sendDocument(w, res)
}

func (s *Server) handleAPILockers(w http.ResponseWriter, r *http.Request) {
	up, err := s.readUpload(w, r)
	if err != nil {
		s.writeJSONError(w, err)
		return
	}

	vt, err := lockersheet.Open(bytes.NewReader(up.data), s.cfg.Options())
	if err != nil {
		s.writeJSONError(w, err)
		return
	}

	names, err := lockersheet.Lockers(vt)
	if err != nil && !errors.Is(err, lockersheet.ErrNoLockers) {
		s.writeJSONError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"sheet":        vt.SheetName,
		"range":        vt.Range,
		"kiosk_column": vt.KioskColumn,
		"lockers":      names,
	})
}

func (s *Server) handleAPIRender(w http.ResponseWriter, r *http.Request) {
	res, err := s.generate(w, r)
	if err != nil {
		s.writeJSONError(w, err)
		return
	}
	s.sendDocument(w, res)
}

// generate runs the whole pipeline for one request.
func (s *Server) generate(w http.ResponseWriter, r *http.Request) (*docx.Result, error) {
	up, err := s.readUpload(w, r)
	if err != nil {
		return nil, err
	}

	name := r.FormValue(fieldLocker)
	if name == "" {
		return nil, errNoSelection
	}

	opts := s.cfg.Options()
	vt, err := lockersheet.Open(bytes.NewReader(up.data), opts)
	if err != nil {
		return nil, err
	}

	res, err := lockersheet.Generate(vt, name, opts)
	if err != nil {
		return nil, err
	}

	if res.Branding.Status == docx.BrandingSuppressed {
		s.logger.Debug("Branding suppressed", zap.String("reason", res.Branding.Reason))
	}
	s.logger.Info("Document generated",
		zap.String("locker", name),
		zap.String("file", res.Document.FileName),
		zap.Int("candidates", res.Candidates),
		zap.Int("size", len(res.Document.Data)))

	return res, nil
}

func (s *Server) sendDocument(w http.ResponseWriter, res *docx.Result) {
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": res.Document.FileName})
	w.Header().Set("Content-Type", res.Document.ContentType)
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Document.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(res.Document.Data)
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data pageData) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("Template failed", zap.String("template", name), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// renderError shows err on the upload form.
func (s *Server) renderError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	s.logError(status, err)

	data := pageData{Error: err.Error()}
	var mce *schema.MissingColumnsError
	if errors.As(err, &mce) {
		data.Error = "The uploaded file is missing these columns:"
		data.Missing = mce.Missing
	}
	s.render(w, status, "index.html", data)
}

func (s *Server) writeJSONError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	s.logError(status, err)

	body := map[string]interface{}{"error": err.Error()}
	var mce *schema.MissingColumnsError
	if errors.As(err, &mce) {
		body["missing"] = mce.Missing
	}
	s.writeJSON(w, status, body)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("Failed to write response", zap.Error(err))
	}
}

func (s *Server) logError(status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", zap.Error(err))
		return
	}
	s.logger.Debug("Request rejected", zap.Int("status", status), zap.Error(err))
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
