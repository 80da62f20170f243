package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Filter narrows order listings
type Filter struct {
	Status       *Status
	SentToTarget *bool
	Search       string // matches customer name or source ID
	From         *time.Time
	To           *time.Time
	MinTotal     *decimal.Decimal
	MaxTotal     *decimal.Decimal
	Limit        int
	Offset       int
}

// Stats aggregates order counts and revenue for the dashboard
type Stats struct {
	Total        int64           `json:"total"`
	Pending      int64           `json:"pending"`
	Processing   int64           `json:"processing"`
	Completed    int64           `json:"completed"`
	Cancelled    int64           `json:"cancelled"`
	Errored      int64           `json:"errored"`
	SentToTarget int64           `json:"sent_to_target"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// Repository defines the interface for order persistence
type Repository interface {
	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindBySourceID finds an order by the source platform's identifier
	FindBySourceID(ctx context.Context, sourceID string) (*Order, error)

	// ExistingSourceIDs returns which of the given source IDs are already stored
	ExistingSourceIDs(ctx context.Context, sourceIDs []string) (map[string]bool, error)

	// FindAll finds orders matching the filter, newest first
	FindAll(ctx context.Context, filter Filter) ([]Order, error)

	// FindUnsent returns orders not yet forwarded to the target platform
	FindUnsent(ctx context.Context) ([]Order, error)

	// Save creates or updates an order
	Save(ctx context.Context, o *Order) error

	// SaveBatch creates or updates multiple orders
	SaveBatch(ctx context.Context, orders []*Order) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter Filter) (int64, error)

	// Stats aggregates counts per status and total revenue
	Stats(ctx context.Context) (*Stats, error)
}
