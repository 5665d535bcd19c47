package service

import (
	"time"

	"github.com/google/uuid"

	"appintake/internal/models"
)

// Form field names the submit endpoint accepts. Values are free text and
// pass through unvalidated; a missing field becomes an empty string and
// a missing file a null reference.
const (
	FieldIDDocument   = "idDocument"
	FieldTaxDocuments = "taxDocuments"
)

// BuildRecord maps raw form fields and stored file references into an
// ApplicationRecord. The timestamp is injected; only the record ID is
// generated here.
func BuildRecord(fields map[string]string, files map[string]models.StoredFile, now time.Time) *models.ApplicationRecord {
	return &models.ApplicationRecord{
		ID: uuid.New().String(),
		PersonalInfo: models.PersonalInfo{
			FirstName:    fields["firstName"],
			LastName:     fields["lastName"],
			Email:        fields["email"],
			Phone:        fields["phone"],
			PlaceOfBirth: fields["placeOfBirth"],
			Gender:       fields["gender"],
			OldAddress:   fields["oldAddress"],
			NewAddress:   fields["newAddress"],
		},
		ParentInfo: models.ParentInfo{
			FatherFullName: fields["fatherFullName"],
			MotherFullName: fields["motherFullName"],
		},
		Identification: models.Identification{
			SSN:         fields["ssn"],
			GovIDNumber: fields["govIdNumber"],
			IDDocument:  storedNameRef(files, FieldIDDocument),
		},
		IDMe: models.IDMe{
			IDMeEmail: fields["idmeEmail"],
		},
		TaxDocuments: storedNameRef(files, FieldTaxDocuments),
		Employment: models.Employment{
			Position:   fields["position"],
			Experience: fields["experience"],
			Reason:     fields["reason"],
		},
		SubmittedAt: now.UTC().Format(time.RFC3339),
	}
}

func storedNameRef(files map[string]models.StoredFile, field string) *string {
	f, ok := files[field]
	if !ok {
		return nil
	}
	name := f.StoredName
	return &name
}
