package transport

import (
	"encoding/json"
	"errors"
	"io/fs"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/rpggio/tracker/internal/domain/activity"
	"github.com/rpggio/tracker/internal/upload"
	"github.com/rpggio/tracker/internal/web/templates"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	activities, err := s.service.List(r.Context())
	if err != nil {
		s.fail(w, r, "listing activities", err)
		return
	}
	templ.Handler(templates.IndexPage(activities)).ServeHTTP(w, r)
}

func (s *Server) handleAddForm(w http.ResponseWriter, r *http.Request) {
	templ.Handler(templates.AddPage()).ServeHTTP(w, r)
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	attachment, cleanup, err := formFile(r, "attachment")
	if err != nil {
		s.fail(w, r, "reading attachment", err)
		return
	}
	defer cleanup()

	req := activity.CreateRequest{
		Priority:     r.FormValue("priority"),
		Project:      r.FormValue("project"),
		Line:         r.FormValue("line"),
		Description:  r.FormValue("description"),
		StartDate:    r.FormValue("start_date"),
		CompleteDate: r.FormValue("complete_date"),
		Status:       r.FormValue("status"),
		Remarks:      r.FormValue("remarks"),
		Attachment:   attachment,
	}
	if _, err := s.service.Create(r.Context(), req); err != nil {
		s.fail(w, r, "creating activity", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleUpdateForm(w http.ResponseWriter, r *http.Request) {
	serial, ok := serialParam(w, r)
	if !ok {
		return
	}
	act, err := s.service.Get(r.Context(), serial)
	if err != nil && !errors.Is(err, activity.ErrActivityNotFound) && !errors.Is(err, activity.ErrInvalidInput) {
		s.fail(w, r, "loading activity", err)
		return
	}
	templ.Handler(templates.UpdatePage(serial, act)).ServeHTTP(w, r)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	serial, ok := serialParam(w, r)
	if !ok {
		return
	}
	if !s.parseForm(w, r) {
		return
	}
	file, cleanup, err := formFile(r, "update_file")
	if err != nil {
		s.fail(w, r, "reading update file", err)
		return
	}
	defer cleanup()

	req := activity.UpdateRequest{
		Serial:  serial,
		Details: r.FormValue("update_details"),
		File:    file,
	}
	res, err := s.service.Update(r.Context(), req)
	if err != nil {
		s.fail(w, r, "updating activity", err)
		return
	}
	if res.Outcome == activity.OutcomeNotFound {
		templ.Handler(templates.UpdatePage(serial, nil)).ServeHTTP(w, r)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleViewLogs(w http.ResponseWriter, r *http.Request) {
	serial, ok := serialParam(w, r)
	if !ok {
		return
	}
	entries, err := s.service.ViewLogs(r.Context(), serial)
	if err != nil {
		s.fail(w, r, "loading activity log", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		s.logger.Error("writing activity log", "sno", serial, "error", err)
	}
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	serial, ok := serialParam(w, r)
	if !ok {
		return
	}
	if _, err := s.service.Delete(r.Context(), serial); err != nil {
		s.fail(w, r, "deleting activity", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")
	if s.uploads == nil || !fs.ValidPath(name) || strings.HasPrefix(name, ".") {
		http.NotFound(w, r)
		return
	}
	info, err := fs.Stat(s.uploads, name)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeFileFS(w, r, s.uploads, name)
}

// parseForm accepts both multipart and urlencoded bodies.
func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if s.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes)
	}
	err := r.ParseMultipartForm(multipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		http.Error(w, "request too large", http.StatusRequestEntityTooLarge)
		return false
	}
	http.Error(w, "invalid form", http.StatusBadRequest)
	return false
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.logger.Error(op, "path", r.URL.Path, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// serialParam parses {sno}. Anything but a non-negative integer is a 404.
func serialParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	serial, err := strconv.Atoi(chi.URLParam(r, "sno"))
	if err != nil || serial < 0 {
		http.NotFound(w, r)
		return 0, false
	}
	return serial, true
}

// formFile returns the named file part, or nil when none was submitted.
func formFile(r *http.Request, field string) (*upload.File, func(), error) {
	noop := func() {}
	if r.MultipartForm == nil {
		return nil, noop, nil
	}
	f, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, err
	}
	if header.Filename == "" {
		_ = f.Close()
		return nil, noop, nil
	}
	return &upload.File{Name: header.Filename, Content: f}, closer(f), nil
}

func closer(f multipart.File) func() {
	return func() { _ = f.Close() }
}
