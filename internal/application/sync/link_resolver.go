package sync

import (
	"context"
	"strings"

	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/integration"
)

// LinkResolver resolves order item names to product links. Resolution is
// read-only; maintaining the links is the dashboard's job.
type LinkResolver struct {
	links integration.ProductLinkFinder
}

// NewLinkResolver creates a new LinkResolver
func NewLinkResolver(links integration.ProductLinkFinder) *LinkResolver {
	return &LinkResolver{links: links}
}

// Resolve finds the link for a source item name. A link whose source name
// equals the item name wins; otherwise the closest substring match is
// taken, relying on the finder's shortest-name-first ordering. Returns
// ErrLinkNotFound when no link matches.
func (r *LinkResolver) Resolve(ctx context.Context, itemName string) (*integration.ProductLink, error) {
	itemName = strings.TrimSpace(itemName)
	if itemName == "" {
		return nil, integration.ErrLinkNotFound
	}

	candidates, err := r.links.FindBySourceNameContains(ctx, itemName)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, integration.ErrLinkNotFound
	}

	for i := range candidates {
		if candidates[i].SourceName == itemName {
			return &candidates[i], nil
		}
	}
	return &candidates[0], nil
}
