package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"appintake/internal/filelink"
	"appintake/internal/storage"
)

func newUploadsEnv(t *testing.T) (*UploadsHandler, *storage.FileStore, *filelink.Signer) {
	t.Helper()
	files, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	links := filelink.NewSigner("test-secret", 15*time.Minute)
	return NewUploadsHandler(files, links), files, links
}

func serveUpload(h *UploadsHandler, fileName, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/uploads/"+fileName+query, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("fileName", fileName)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rr := httptest.NewRecorder()
	h.Serve(rr, req)
	return rr
}

func TestServeStoredFileWithValidToken(t *testing.T) {
	h, files, links := newUploadsEnv(t)

	name := "tok_id.png"
	if _, err := files.Save(name, strings.NewReader("png bytes")); err != nil {
		t.Fatalf("save: %v", err)
	}
	token, err := links.Sign(name)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	rr := serveUpload(h, name, "?token="+token)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if rr.Body.String() != "png bytes" {
		t.Fatalf("unexpected body: %q", rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("unexpected content type: %q", ct)
	}
}

func TestServeRejectsMissingToken(t *testing.T) {
	h, files, _ := newUploadsEnv(t)
	if _, err := files.Save("tok_id.png", strings.NewReader("x")); err != nil {
		t.Fatalf("save: %v", err)
	}

	rr := serveUpload(h, "tok_id.png", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestServeRejectsTokenForOtherFile(t *testing.T) {
	h, files, links := newUploadsEnv(t)
	if _, err := files.Save("tok_id.png", strings.NewReader("x")); err != nil {
		t.Fatalf("save: %v", err)
	}
	token, err := links.Sign("tok_other.png")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	rr := serveUpload(h, "tok_id.png", "?token="+token)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestServeUnknownFile(t *testing.T) {
	h, _, links := newUploadsEnv(t)
	token, err := links.Sign("tok_missing.png")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	rr := serveUpload(h, "tok_missing.png", "?token="+token)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
