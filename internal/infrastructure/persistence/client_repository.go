package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/partner"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormClientRepository implements partner.ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByID finds a client by its ID
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	var client partner.Client
	if err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

// FindByNormalizedPhone finds a client whose normalized phone equals the given value
func (r *GormClientRepository) FindByNormalizedPhone(ctx context.Context, normalized string) (*partner.Client, error) {
	if normalized == "" {
		return nil, shared.ErrNotFound
	}
	var client partner.Client
	if err := r.db.WithContext(ctx).First(&client, "normalized_phone = ?", normalized).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

// FindAll returns all registered clients ordered by name
func (r *GormClientRepository) FindAll(ctx context.Context) ([]partner.Client, error) {
	var clients []partner.Client
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, client *partner.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

// Delete deletes a client
func (r *GormClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Client{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all registered clients
func (r *GormClientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&partner.Client{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormClientRepository implements partner.ClientRepository
var _ partner.ClientRepository = (*GormClientRepository)(nil)
