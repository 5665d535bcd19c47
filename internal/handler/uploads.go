package handler

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"appintake/internal/filelink"
	"appintake/internal/storage"
)

// UploadsHandler serves stored files. The uploads directory holds
// identity documents, so every request must carry a valid signed link;
// there is no unauthenticated listing or fetching.
type UploadsHandler struct {
	files *storage.FileStore
	links *filelink.Signer
}

func NewUploadsHandler(files *storage.FileStore, links *filelink.Signer) *UploadsHandler {
	return &UploadsHandler{files: files, links: links}
}

func (h *UploadsHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "fileName")

	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing download token")
		return
	}
	if err := h.links.Verify(token, name); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid or expired link")
		return
	}

	f, info, err := h.files.Open(name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "file not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not read file")
		return
	}
	defer f.Close()

	ctype := mime.TypeByExtension(filepath.Ext(name))
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, name))
	http.ServeContent(w, r, name, info.ModTime(), f)
}
