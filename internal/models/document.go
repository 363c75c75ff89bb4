package models

// DocumentType classifies uploaded document metadata.
type DocumentType string

const (
	DocPDF   DocumentType = "pdf"
	DocWord  DocumentType = "doc"
	DocImage DocumentType = "image"
	DocOther DocumentType = "other"
)

// Document is shared-file metadata; file contents live outside the store.
type Document struct {
	ID         string       `json:"id"`
	UserID     string       `json:"userId"`
	Name       string       `json:"name"`
	Type       DocumentType `json:"type"`
	Size       string       `json:"size,omitempty"`
	UploadDate string       `json:"uploadDate"`
	Visibility Visibility   `json:"visibility"`
	Pinned     bool         `json:"pinned"`
	URL        string       `json:"url,omitempty"`
}
