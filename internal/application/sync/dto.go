package sync

import "github.com/google/uuid"

// SyncReport summarizes one import run from the source platform
type SyncReport struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// SendOutcome is the per-order result of a batch send
type SendOutcome struct {
	OrderID        uuid.UUID `json:"order_id"`
	SourceID       string    `json:"source_id"`
	Success        bool      `json:"success"`
	Message        string    `json:"message"`
	NotLinkedItems []string  `json:"not_linked_items,omitempty"`
	ClientName     string    `json:"client_name,omitempty"`
	ClientID       string    `json:"client_id,omitempty"`
	ContactExists  bool      `json:"contact_exists"`
}

// BatchSendReport aggregates a batch send. Success means at least one
// order went through; per-order failures are carried in Results.
type BatchSendReport struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Results []SendOutcome `json:"results"`
}
