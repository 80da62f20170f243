package notification

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/shared"
)

// Type classifies a notification
type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
)

// IsValid checks whether the type is one of the known values
func (t Type) IsValid() bool {
	switch t {
	case TypeInfo, TypeSuccess, TypeWarning, TypeError:
		return true
	}
	return false
}

// Notification is a dashboard message recorded by sync and send operations
type Notification struct {
	shared.BaseEntity
	Title   string `gorm:"type:varchar(200);not null"`
	Message string `gorm:"type:text;not null"`
	Type    Type   `gorm:"type:varchar(20);not null;default:'info';index"`
	Read    bool   `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// New creates an unread notification
func New(title, message string, typ Type) (*Notification, error) {
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Notification title cannot be empty")
	}
	if !typ.IsValid() {
		typ = TypeInfo
	}
	return &Notification{
		BaseEntity: shared.NewBaseEntity(),
		Title:      title,
		Message:    message,
		Type:       typ,
	}, nil
}

// MarkRead marks the notification as read
func (n *Notification) MarkRead() {
	n.Read = true
	n.Touch()
}

// Repository defines the interface for notification persistence
type Repository interface {
	// FindAll returns notifications, newest first
	FindAll(ctx context.Context, onlyUnread bool, limit int) ([]Notification, error)

	// Save creates or updates a notification
	Save(ctx context.Context, n *Notification) error

	// MarkRead marks a notification as read
	MarkRead(ctx context.Context, id uuid.UUID) error

	// MarkAllRead marks every notification as read
	MarkAllRead(ctx context.Context) error

	// CountUnread counts unread notifications
	CountUnread(ctx context.Context) (int64, error)
}
