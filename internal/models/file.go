package models

// StoredFile describes one uploaded file persisted to the upload area.
// OriginalName is client-supplied and display-only; StoredName is the
// server-generated unique name the file lives under on disk.
type StoredFile struct {
	Field        string `json:"field"`
	OriginalName string `json:"originalName"`
	StoredName   string `json:"storedName"`
	SizeBytes    int64  `json:"sizeBytes"`
	ContentType  string `json:"contentType"`
}
