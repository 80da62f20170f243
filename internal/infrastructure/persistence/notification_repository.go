package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/notification"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormNotificationRepository implements notification.Repository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// FindAll returns notifications, newest first
func (r *GormNotificationRepository) FindAll(ctx context.Context, onlyUnread bool, limit int) ([]notification.Notification, error) {
	query := r.db.WithContext(ctx).Model(&notification.Notification{}).Order("created_at DESC")
	if onlyUnread {
		query = query.Where("read = ?", false)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var notifications []notification.Notification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// Save creates or updates a notification
func (r *GormNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	return r.db.WithContext(ctx).Save(n).Error
}

// MarkRead marks a notification as read
func (r *GormNotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&notification.Notification{}).
		Where("id = ?", id).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// MarkAllRead marks every notification as read
func (r *GormNotificationRepository) MarkAllRead(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&notification.Notification{}).
		Where("read = ?", false).
		Update("read", true).Error
}

// CountUnread counts unread notifications
func (r *GormNotificationRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&notification.Notification{}).
		Where("read = ?", false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormNotificationRepository implements notification.Repository
var _ notification.Repository = (*GormNotificationRepository)(nil)
