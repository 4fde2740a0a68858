package dto

import "time"

type ExportResponse struct {
	URL         string    `json:"url"`
	Path        string    `json:"path"`
	Provider    string    `json:"provider"`
	Collections int       `json:"collections"`
	Tasks       int       `json:"tasks"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ExportSnapshot is the document written to storage.
type ExportSnapshot struct {
	UserID      string           `json:"userId"`
	ExportedAt  time.Time        `json:"exportedAt"`
	Collections []CollectionCard `json:"collections"`
}
