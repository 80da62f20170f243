package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/integration"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductLinkRepository implements integration.ProductLinkRepository using GORM
type GormProductLinkRepository struct {
	db *gorm.DB
}

// NewGormProductLinkRepository creates a new GormProductLinkRepository
func NewGormProductLinkRepository(db *gorm.DB) *GormProductLinkRepository {
	return &GormProductLinkRepository{db: db}
}

// FindByID finds a link by its ID
func (r *GormProductLinkRepository) FindByID(ctx context.Context, id uuid.UUID) (*integration.ProductLink, error) {
	var link integration.ProductLink
	if err := r.db.WithContext(ctx).First(&link, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

// FindAll finds links matching the filter
func (r *GormProductLinkRepository) FindAll(ctx context.Context, filter integration.ProductLinkFilter) ([]integration.ProductLink, error) {
	var links []integration.ProductLink
	query := r.applySearch(r.db.WithContext(ctx).Model(&integration.ProductLink{}), filter.Search).
		Order("plus_name ASC")

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	if err := query.Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// Count counts links matching the filter
func (r *GormProductLinkRepository) Count(ctx context.Context, filter integration.ProductLinkFilter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&integration.ProductLink{}), filter.Search)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindBySourceID finds the link whose source product ID matches exactly
func (r *GormProductLinkRepository) FindBySourceID(ctx context.Context, sourceID string) (*integration.ProductLink, error) {
	var link integration.ProductLink
	if err := r.db.WithContext(ctx).First(&link, "plus_id = ?", sourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, integration.ErrLinkNotFound
		}
		return nil, err
	}
	return &link, nil
}

// FindBySourceNameContains finds links whose source name contains the given
// fragment, case-insensitively. Shortest names first, then most recently
// updated, so the closest match leads and ties resolve deterministically.
func (r *GormProductLinkRepository) FindBySourceNameContains(ctx context.Context, fragment string) ([]integration.ProductLink, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return []integration.ProductLink{}, nil
	}

	var links []integration.ProductLink
	if err := r.db.WithContext(ctx).
		Where(`LOWER(plus_name) LIKE LOWER(?) ESCAPE '\'`, containsPattern(fragment)).
		Order("LENGTH(plus_name) ASC, updated_at DESC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// Save creates or updates a link. A new link that repeats an existing
// (source, variation) pair trips the unique index and maps to ErrDuplicateLink.
func (r *GormProductLinkRepository) Save(ctx context.Context, link *integration.ProductLink) error {
	if err := r.db.WithContext(ctx).Save(link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return integration.ErrDuplicateLink
		}
		return err
	}
	return nil
}

// Delete deletes a link
func (r *GormProductLinkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&integration.ProductLink{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applySearch matches the fragment against both platforms' product names
func (r *GormProductLinkRepository) applySearch(query *gorm.DB, search string) *gorm.DB {
	if search == "" {
		return query
	}
	pattern := containsPattern(search)
	return query.Where(`LOWER(plus_name) LIKE LOWER(?) ESCAPE '\' OR LOWER(saboritte_name) LIKE LOWER(?) ESCAPE '\'`,
		pattern, pattern)
}

// Ensure GormProductLinkRepository implements integration.ProductLinkRepository
var _ integration.ProductLinkRepository = (*GormProductLinkRepository)(nil)
