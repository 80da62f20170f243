package integration

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/shared"
)

// Product link errors
var (
	// ErrLinkNotFound indicates no link exists for the product
	ErrLinkNotFound = errors.New("integration: product link not found")

	// ErrDuplicateLink indicates a link for the same source product and
	// variation already exists
	ErrDuplicateLink = errors.New("integration: product link already exists")
)

// ProductLink maps one source platform product (optionally a specific
// variation) to a target platform product. The pair (SourceID,
// VariationDescription) is unique.
type ProductLink struct {
	shared.BaseEntity
	SourceID             string          `gorm:"column:plus_id;type:varchar(50);not null;uniqueIndex:idx_link_source_variation,priority:1"`
	SourceName           string          `gorm:"column:plus_name;type:varchar(200);not null;index"`
	SourceCategory       string          `gorm:"column:plus_category;type:varchar(100)"`
	SourcePrice          decimal.Decimal `gorm:"column:plus_price;type:decimal(10,2);not null;default:0"`
	SourcePromoPrice     decimal.Decimal `gorm:"column:plus_promo_price;type:decimal(10,2);not null;default:0"`
	SourceEnabled        bool            `gorm:"column:plus_enabled;not null;default:true"`
	TargetID             string          `gorm:"column:saboritte_id;type:varchar(50);not null;index"`
	TargetName           string          `gorm:"column:saboritte_name;type:varchar(200);not null"`
	TargetCategory       string          `gorm:"column:saboritte_category;type:varchar(100)"`
	TargetPrice          decimal.Decimal `gorm:"column:saboritte_price;type:decimal(10,2);not null;default:0"`
	TargetEnabled        bool            `gorm:"column:saboritte_enabled;not null;default:true"`
	TargetImage          string          `gorm:"column:saboritte_image;type:text"`
	VariationDescription string          `gorm:"column:variation_description;type:varchar(200);not null;default:'';uniqueIndex:idx_link_source_variation,priority:2"`
	VariationPrice       decimal.Decimal `gorm:"column:variation_price;type:decimal(10,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductLink) TableName() string {
	return "product_links"
}

// NewProductLink creates a link between a source and a target product
func NewProductLink(source SourceProduct, target TargetProduct) (*ProductLink, error) {
	if strings.TrimSpace(source.ID) == "" {
		return nil, shared.NewDomainError("INVALID_SOURCE_PRODUCT", "Source product ID cannot be empty")
	}
	if strings.TrimSpace(source.Name) == "" {
		return nil, shared.NewDomainError("INVALID_SOURCE_PRODUCT", "Source product name cannot be empty")
	}
	if strings.TrimSpace(target.ID) == "" {
		return nil, shared.NewDomainError("INVALID_TARGET_PRODUCT", "Target product ID cannot be empty")
	}
	if strings.TrimSpace(target.Name) == "" {
		return nil, shared.NewDomainError("INVALID_TARGET_PRODUCT", "Target product name cannot be empty")
	}

	return &ProductLink{
		BaseEntity:       shared.NewBaseEntity(),
		SourceID:         source.ID,
		SourceName:       source.Name,
		SourceCategory:   source.Category,
		SourcePrice:      source.Price,
		SourcePromoPrice: source.PromoPrice,
		SourceEnabled:    source.Enabled,
		TargetID:         target.ID,
		TargetName:       target.Name,
		TargetCategory:   target.Category,
		TargetPrice:      target.Price,
		TargetEnabled:    target.Enabled,
		TargetImage:      target.Image,
	}, nil
}

// WithVariation pins the link to a specific variation of the target product
func (l *ProductLink) WithVariation(v ProductVariation) *ProductLink {
	l.VariationDescription = v.Description
	l.VariationPrice = v.Price
	return l
}

// EffectiveTargetID returns the product ID to place on outbound orders
func (l *ProductLink) EffectiveTargetID() string {
	return l.TargetID
}

// ProductLinkFilter narrows product link listings
type ProductLinkFilter struct {
	Search string // matches source or target product name
	Limit  int
	Offset int
}

// ProductLinkReader provides read access to product links
type ProductLinkReader interface {
	// FindByID finds a link by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProductLink, error)

	// FindAll finds links matching the filter
	FindAll(ctx context.Context, filter ProductLinkFilter) ([]ProductLink, error)

	// Count counts links matching the filter
	Count(ctx context.Context, filter ProductLinkFilter) (int64, error)
}

// ProductLinkFinder resolves order lines to links
type ProductLinkFinder interface {
	// FindBySourceID finds the link whose source product ID matches exactly
	FindBySourceID(ctx context.Context, sourceID string) (*ProductLink, error)

	// FindBySourceNameContains finds links whose source name contains the
	// given fragment, case-insensitively. Results are ordered by source
	// name length ascending, then by most recent update, so the closest
	// match comes first and ties resolve the same way on every call.
	FindBySourceNameContains(ctx context.Context, fragment string) ([]ProductLink, error)
}

// ProductLinkWriter provides write access to product links
type ProductLinkWriter interface {
	// Save creates or updates a link. Creating a link that duplicates an
	// existing (source, variation) pair returns ErrDuplicateLink.
	Save(ctx context.Context, link *ProductLink) error

	// Delete deletes a link
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductLinkRepository combines all product link persistence interfaces
type ProductLinkRepository interface {
	ProductLinkReader
	ProductLinkFinder
	ProductLinkWriter
}
