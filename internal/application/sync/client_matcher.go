package sync

import (
	"context"
	"errors"

	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/partner"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/shared"
)

// ClientMatch is the result of reconciling an order phone against the
// registered clients
type ClientMatch struct {
	Exists bool
	Client *partner.Client
}

// ClientMatcher reconciles order phones against the client registry so
// forwarded orders reuse the registered contact instead of creating a
// duplicate.
type ClientMatcher struct {
	clients partner.ClientRepository
}

// NewClientMatcher creates a new ClientMatcher
func NewClientMatcher(clients partner.ClientRepository) *ClientMatcher {
	return &ClientMatcher{clients: clients}
}

// Match looks up the client registered under the given raw phone. Phones
// with fewer than MinComparablePhoneDigits digits never match.
func (m *ClientMatcher) Match(ctx context.Context, phone string) (ClientMatch, error) {
	normalized := partner.NormalizePhone(phone)
	if len(normalized) < partner.MinComparablePhoneDigits {
		return ClientMatch{}, nil
	}

	client, err := m.clients.FindByNormalizedPhone(ctx, normalized)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ClientMatch{}, nil
		}
		return ClientMatch{}, err
	}

	return ClientMatch{Exists: true, Client: client}, nil
}
