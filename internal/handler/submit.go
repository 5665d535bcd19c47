package handler

import (
	"errors"
	"fmt"
	"log"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/gabriel-vasile/mimetype"

	"appintake/internal/models"
	"appintake/internal/service"
	"appintake/internal/storage"
)

const (
	maxFileBytes = 5 << 20 // per-file ceiling, matches the client check
	// Two file slots plus form-field overhead.
	maxRequestBytes = 2*maxFileBytes + 1<<20
	memoryThreshold = 8 << 20
)

// One file slot per named field; anything else is rejected or ignored.
var fileFieldLimits = map[string]int{
	service.FieldIDDocument:   1,
	service.FieldTaxDocuments: 1,
}

var allowedDeclaredTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"application/pdf": true,
}

type validationError struct{ msg string }

func (e *validationError) Error() string { return e.msg }

// SubmitHandler is the upload receiver and response dispatcher for
// POST /submit.
type SubmitHandler struct {
	svc        *service.IntakeService
	files      *storage.FileStore
	mode       string // "redirect" or "json"
	redirectTo string
}

func NewSubmitHandler(svc *service.IntakeService, files *storage.FileStore, mode string) *SubmitHandler {
	return &SubmitHandler{svc: svc, files: files, mode: mode, redirectTo: "/thankyou.html"}
}

func (h *SubmitHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := r.ParseMultipartForm(memoryThreshold); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large (max 5MB per file)")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	// Validate every part before persisting anything, so a rejected
	// submission leaves no partial state behind.
	accepted, err := collectFileParts(r.MultipartForm)
	if err != nil {
		var verr *validationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.msg)
			return
		}
		var sizeErr *fileTooLargeError
		if errors.As(err, &sizeErr) {
			writeError(w, http.StatusRequestEntityTooLarge, sizeErr.Error())
			return
		}
		log.Printf("submit: part inspection failed: %v", err)
		writeError(w, http.StatusInternalServerError, "could not process upload")
		return
	}

	stored, err := h.persistFiles(accepted)
	if err != nil {
		log.Printf("submit: persist upload failed: %v", err)
		writeError(w, http.StatusInternalServerError, "could not store upload")
		return
	}

	fields := make(map[string]string, len(r.MultipartForm.Value))
	for name, values := range r.MultipartForm.Value {
		if len(values) > 0 {
			fields[name] = values[0]
		}
	}

	rec, err := h.svc.Submit(r.Context(), fields, stored)
	if err != nil {
		log.Printf("submit: %v", err)
		writeError(w, http.StatusInternalServerError, "could not save submission")
		return
	}

	if h.mode == "json" {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Form submitted successfully!",
			"id":      rec.ID,
		})
		return
	}
	http.Redirect(w, r, h.redirectTo, http.StatusFound)
}

type filePart struct {
	field    string
	header   *multipart.FileHeader
	declared string
}

type fileTooLargeError struct{ name string }

func (e *fileTooLargeError) Error() string {
	return fmt.Sprintf("file too large (max 5MB): %s", e.name)
}

// collectFileParts applies the field policy and type/size checks.
// Unknown file fields are ignored; a second file in an already-filled
// slot is rejected; empty parts count as absent.
func collectFileParts(form *multipart.Form) ([]filePart, error) {
	var parts []filePart
	for field, headers := range form.File {
		limit, known := fileFieldLimits[field]
		if !known {
			log.Printf("submit: ignoring unexpected file field %q", field)
			continue
		}

		var kept []*multipart.FileHeader
		for _, fh := range headers {
			if fh.Filename == "" || fh.Size == 0 {
				continue
			}
			kept = append(kept, fh)
		}
		if len(kept) == 0 {
			continue
		}
		if len(kept) > limit {
			return nil, &validationError{msg: fmt.Sprintf("too many files for field %q", field)}
		}

		fh := kept[0]
		if fh.Size > maxFileBytes {
			return nil, &fileTooLargeError{name: fh.Filename}
		}
		declared, err := inspectPart(fh)
		if err != nil {
			return nil, err
		}
		parts = append(parts, filePart{field: field, header: fh, declared: declared})
	}
	return parts, nil
}

// inspectPart checks both the declared content type and the actual bytes.
// The client validator performs the same declared-type check; this one
// holds even when the client is bypassed.
func inspectPart(fh *multipart.FileHeader) (string, error) {
	declared := fh.Header.Get("Content-Type")
	if mt, _, err := mime.ParseMediaType(declared); err == nil {
		declared = mt
	}
	if !allowedDeclaredTypes[declared] {
		return "", &validationError{msg: fmt.Sprintf("file type not allowed: %s", fh.Filename)}
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open part %q: %w", fh.Filename, err)
	}
	defer f.Close()
	sniffed, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("sniff part %q: %w", fh.Filename, err)
	}
	if !sniffed.Is("image/jpeg") && !sniffed.Is("image/png") && !sniffed.Is("application/pdf") {
		return "", &validationError{msg: fmt.Sprintf("file content not allowed: %s", fh.Filename)}
	}
	return declared, nil
}

func (h *SubmitHandler) persistFiles(parts []filePart) ([]models.StoredFile, error) {
	var stored []models.StoredFile
	for _, p := range parts {
		f, err := p.header.Open()
		if err != nil {
			return nil, fmt.Errorf("open part %q: %w", p.header.Filename, err)
		}
		name := storage.GenerateStoredName(p.header.Filename, storage.NewUniqueToken())
		written, err := h.files.Save(name, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		stored = append(stored, models.StoredFile{
			Field:        p.field,
			OriginalName: p.header.Filename,
			StoredName:   name,
			SizeBytes:    written,
			ContentType:  p.declared,
		})
	}
	return stored, nil
}
