package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/order"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindBySourceID finds an order by the source platform's identifier
func (r *GormOrderRepository) FindBySourceID(ctx context.Context, sourceID string) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).First(&o, "source_id = ?", sourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// ExistingSourceIDs returns which of the given source IDs are already stored
func (r *GormOrderRepository) ExistingSourceIDs(ctx context.Context, sourceIDs []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(sourceIDs))
	if len(sourceIDs) == 0 {
		return existing, nil
	}

	var found []string
	if err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("source_id IN ?", sourceIDs).
		Pluck("source_id", &found).Error; err != nil {
		return nil, err
	}

	for _, id := range found {
		existing[id] = true
	}
	return existing, nil
}

// FindAll finds orders matching the filter, newest first
func (r *GormOrderRepository) FindAll(ctx context.Context, filter order.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.applyFilter(r.db.WithContext(ctx).Model(&order.Order{}), filter).
		Order("placed_at DESC")

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindUnsent returns orders not yet forwarded to the target platform,
// oldest first so resends preserve arrival order
func (r *GormOrderRepository) FindUnsent(ctx context.Context) ([]order.Order, error) {
	var orders []order.Order
	if err := r.db.WithContext(ctx).
		Where("sent_to_target = ? AND status = ?", false, order.StatusPending).
		Order("placed_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an order
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Save(o).Error
}

// SaveBatch creates or updates multiple orders
func (r *GormOrderRepository) SaveBatch(ctx context.Context, orders []*order.Order) error {
	if len(orders) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(orders).Error
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter order.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&order.Order{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Stats aggregates counts per status and total revenue in a single query.
// Cancelled and errored orders do not count towards revenue.
func (r *GormOrderRepository) Stats(ctx context.Context) (*order.Stats, error) {
	var stats order.Stats
	err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0) AS pending,
			COALESCE(SUM(CASE WHEN status = 'processing' THEN 1 ELSE 0 END), 0) AS processing,
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0) AS completed,
			COALESCE(SUM(CASE WHEN status = 'cancelled' THEN 1 ELSE 0 END), 0) AS cancelled,
			COALESCE(SUM(CASE WHEN status = 'error' THEN 1 ELSE 0 END), 0) AS errored,
			COALESCE(SUM(CASE WHEN sent_to_target THEN 1 ELSE 0 END), 0) AS sent_to_target,
			COALESCE(SUM(CASE WHEN status NOT IN ('cancelled', 'error') THEN total ELSE 0 END), 0) AS revenue`).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// applyFilter applies filter options to the query, without pagination
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter order.Filter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.SentToTarget != nil {
		query = query.Where("sent_to_target = ?", *filter.SentToTarget)
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		// LOWER/LIKE keeps the query valid on both postgres and sqlite
		query = query.Where(`LOWER(customer_name) LIKE LOWER(?) ESCAPE '\' OR source_id = ?`,
			pattern, filter.Search)
	}
	if filter.From != nil {
		query = query.Where("placed_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("placed_at <= ?", *filter.To)
	}
	if filter.MinTotal != nil {
		query = query.Where("total >= ?", *filter.MinTotal)
	}
	if filter.MaxTotal != nil {
		query = query.Where("total <= ?", *filter.MaxTotal)
	}
	return query
}

// Ensure GormOrderRepository implements order.Repository
var _ order.Repository = (*GormOrderRepository)(nil)
