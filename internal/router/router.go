package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"appintake/internal/handler"
	mw "appintake/internal/middleware"
)

func New(publicDir string, submitH *handler.SubmitHandler, uploadsH *handler.UploadsHandler) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS)

	r.Post("/submit", submitH.Submit)
	r.Get("/uploads/{fileName}", uploadsH.Serve)

	// Form page and static assets
	r.Handle("/*", http.FileServer(http.Dir(publicDir)))

	return r
}
