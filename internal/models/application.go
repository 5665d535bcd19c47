package models

type PersonalInfo struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PlaceOfBirth string `json:"placeOfBirth"`
	Gender       string `json:"gender"`
	OldAddress   string `json:"oldAddress"`
	NewAddress   string `json:"newAddress"`
}

type ParentInfo struct {
	FatherFullName string `json:"fatherFullName"`
	MotherFullName string `json:"motherFullName"`
}

// Identification carries the applicant's identifiers. IDDocument is the
// stored name of the uploaded identity document, or null when absent.
type Identification struct {
	SSN         string  `json:"ssn"`
	GovIDNumber string  `json:"govIdNumber"`
	IDDocument  *string `json:"idDocument"`
}

type IDMe struct {
	IDMeEmail string `json:"idmeEmail"`
}

type Employment struct {
	Position   string `json:"position"`
	Experience string `json:"experience"`
	Reason     string `json:"reason"`
}

// ApplicationRecord is the unit of persistence. Records are appended to
// the submission collection and never mutated afterwards.
type ApplicationRecord struct {
	ID             string         `json:"id"`
	PersonalInfo   PersonalInfo   `json:"personalInfo"`
	ParentInfo     ParentInfo     `json:"parentInfo"`
	Identification Identification `json:"identification"`
	IDMe           IDMe           `json:"idme"`
	TaxDocuments   *string        `json:"taxDocuments"`
	Employment     Employment     `json:"employment"`
	SubmittedAt    string         `json:"submittedAt"` // RFC3339
}
