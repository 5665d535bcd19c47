package main

import (
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"appintake/internal/config"
	"appintake/internal/filelink"
	"appintake/internal/gelf"
	"appintake/internal/handler"
	"appintake/internal/router"
	"appintake/internal/service"
	"appintake/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	godotenv.Load()

	cfg := config.Load()

	// GELF UDP logging
	if cfg.GelfAddr != "" {
		gelfWriter, err := gelf.New(cfg.GelfAddr)
		if err != nil {
			log.Printf("Warning: GELF init failed: %v", err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stderr, gelfWriter))
			log.Printf("GELF logging: enabled (%s)", cfg.GelfAddr)
		}
	}

	// Storage
	fileStore, err := storage.NewFileStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Upload dir unusable: %v", err)
	}
	subStore, err := storage.NewSubmissionStore(cfg.DataFile)
	if err != nil {
		log.Fatalf("Submission store unusable: %v", err)
	}
	log.Printf("Uploads: %s, submissions: %s", cfg.UploadDir, cfg.DataFile)

	// Services
	links := filelink.NewSigner(cfg.LinkSecret, time.Duration(cfg.LinkTTLMin)*time.Minute)
	notifier, err := service.NewNotifier(service.NotifierConfig{
		Host:    cfg.MailHost,
		Port:    cfg.MailPort,
		User:    cfg.MailUser,
		Pass:    cfg.MailPass,
		From:    cfg.MailFrom,
		BaseURL: cfg.BaseURL,
	}, links)
	if err != nil {
		log.Fatalf("Mail client init failed: %v", err)
	}
	if notifier.Configured() {
		log.Printf("Mail relay: %s:%d", cfg.MailHost, cfg.MailPort)
	} else {
		log.Printf("Warning: mail relay not configured, confirmations will not be sent")
	}
	intakeSvc := service.NewIntakeService(subStore, notifier)

	// Handlers
	submitH := handler.NewSubmitHandler(intakeSvc, fileStore, cfg.ResponseMode)
	uploadsH := handler.NewUploadsHandler(fileStore, links)

	// Router
	r := router.New(cfg.PublicDir, submitH, uploadsH)

	log.Printf("Application intake server starting on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
