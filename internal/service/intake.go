package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"appintake/internal/models"
	"appintake/internal/storage"
)

// IntakeService runs the pipeline after the upload receiver has
// persisted the files: build the record, append it to the submission
// store, then attempt notification. The store step is the critical path;
// notification is best-effort and can never fail a stored submission.
type IntakeService struct {
	store    *storage.SubmissionStore
	notifier *Notifier
}

func NewIntakeService(store *storage.SubmissionStore, notifier *Notifier) *IntakeService {
	return &IntakeService{store: store, notifier: notifier}
}

func (s *IntakeService) Submit(ctx context.Context, fields map[string]string, files []models.StoredFile) (*models.ApplicationRecord, error) {
	byField := make(map[string]models.StoredFile, len(files))
	for _, f := range files {
		byField[f.Field] = f
	}

	rec := BuildRecord(fields, byField, time.Now())

	if err := s.store.Append(rec); err != nil {
		return nil, fmt.Errorf("store submission: %w", err)
	}

	outcome, err := s.notifier.Notify(ctx, rec, files)
	switch outcome {
	case NotifySent:
		log.Printf("submission %s: confirmation sent to %s", rec.ID, rec.PersonalInfo.Email)
	case NotifySkipped:
		log.Printf("submission %s: no email provided, skipping notification", rec.ID)
	case NotifyFailed:
		log.Printf("notify failed for submission %s: %v", rec.ID, err)
	}

	return rec, nil
}
