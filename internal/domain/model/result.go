package model

import "time"

const (
	StatusCreated = "created"
	StatusUpdated = "updated"
	StatusFailed  = "failed"
)

type ImportResult struct {
	ID           string    `json:"id"`
	SourceURL    string    `json:"sourceUrl"`
	LegacyItemID string    `json:"legacyItemId,omitempty"`
	ProductID    string    `json:"productId,omitempty"`
	Handle       string    `json:"handle,omitempty"`
	Title        string    `json:"title,omitempty"`
	Variants     int       `json:"variants,omitempty"`
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
	ShopifyURL   string    `json:"shopifyUrl,omitempty"`
	ImportedAt   time.Time `json:"importedAt"`
}
