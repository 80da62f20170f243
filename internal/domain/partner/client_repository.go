package partner

import (
	"context"

	"github.com/google/uuid"
)

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	// FindByID finds a client by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindByNormalizedPhone finds a client whose normalized phone equals the given value
	FindByNormalizedPhone(ctx context.Context, normalized string) (*Client, error)

	// FindAll returns all registered clients ordered by name
	FindAll(ctx context.Context) ([]Client, error)

	// Save creates or updates a client
	Save(ctx context.Context, client *Client) error

	// Delete deletes a client
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts all registered clients
	Count(ctx context.Context) (int64, error)
}
