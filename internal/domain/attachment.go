package domain

import "time"

// Attachment is metadata for a file whose payload lives in the external
// object store. StorageKey locates the object; FileURL is what clients
// download.
type Attachment struct {
	ID         string
	TicketID   string
	FileName   string
	FileType   string
	FileSize   int64
	FileURL    string
	StorageKey string
	UploadedBy string
	CreatedAt  time.Time
}
