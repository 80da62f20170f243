package sync

import (
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/integration"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/order"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/partner"
)

// Address fallbacks for fields the detail parser could not extract. The
// target platform rejects orders with empty address fields.
const (
	defaultNeighborhood = "Centro"
	defaultCity         = "Cidade"
	defaultState        = "ES"
)

// ResolvedItem pairs an order item with the product link it resolved to
type ResolvedItem struct {
	Item order.Item
	Link *integration.ProductLink
}

// Transformer builds the payload the target platform accepts out of an
// imported order, its resolved items and the client reconciliation result.
type Transformer struct{}

// NewTransformer creates a new Transformer
func NewTransformer() *Transformer {
	return &Transformer{}
}

// Build assembles the outbound order. Product IDs are repeated once per
// unit since the target platform has no quantity field, and the customer
// name is overridden with the registered client's canonical name when the
// phone matched one.
func (t *Transformer) Build(o *order.Order, items []ResolvedItem, match ClientMatch) integration.OutboundOrder {
	name := o.CustomerName
	clientID := ""
	if match.Exists && match.Client != nil {
		name = match.Client.Name
		clientID = match.Client.GetID().String()
	}

	var productIDs []string
	for _, ri := range items {
		if ri.Link == nil {
			continue
		}
		for i := 0; i < ri.Item.Quantity; i++ {
			productIDs = append(productIDs, ri.Link.EffectiveTargetID())
		}
	}

	out := integration.OutboundOrder{
		SourceID:      o.SourceID,
		Name:          name,
		Phone:         partner.NormalizePhone(o.CustomerPhone),
		Street:        o.Address.Street,
		Number:        o.Address.Number,
		Neighborhood:  o.Address.Neighborhood,
		Complement:    o.Address.Complement,
		City:          o.Address.City,
		State:         o.Address.State,
		ProductIDs:    productIDs,
		PaymentLabel:  o.Payment.Method.Label(),
		ContactExists: match.Exists,
		ClientID:      clientID,
	}

	if out.Neighborhood == "" {
		out.Neighborhood = defaultNeighborhood
	}
	if out.City == "" {
		out.City = defaultCity
	}
	if out.State == "" {
		out.State = defaultState
	}

	return out
}
