package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/shared"
)

// Status represents the lifecycle state of an order
type Status string

const (
	StatusPending    Status = "pending"    // Imported, not yet forwarded
	StatusProcessing Status = "processing" // Forwarded to the target platform
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusError      Status = "error" // Set manually, never by the send path
)

// IsValid checks whether the status is one of the known values
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled, StatusError:
		return true
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusError
}

// String returns the string representation
func (s Status) String() string {
	return string(s)
}

// Item is a single line of an order as parsed from the source platform.
// ProductID is the source platform's product identifier when the line
// carried one, empty otherwise.
type Item struct {
	ProductID string          `json:"product_id,omitempty"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Notes     string          `json:"notes,omitempty"`
	Extras    []string        `json:"extras,omitempty"`
	Variation string          `json:"variation,omitempty"`
}

// LineTotal returns quantity times unit price
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Address holds the delivery address extracted from the order detail text
type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	Reference    string `json:"reference,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// PaymentMethod is the normalized payment method of an order
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentCash       PaymentMethod = "cash"
	PaymentPix        PaymentMethod = "pix"
	PaymentOther      PaymentMethod = "other"
)

// Label returns the Portuguese display label the target platform accepts.
// Methods without a native label fall back to cash.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCreditCard:
		return "Cartão de Crédito"
	case PaymentDebitCard:
		return "Cartão de Débito"
	case PaymentPix:
		return "PIX"
	default:
		return "Dinheiro"
	}
}

// Payment holds the payment information extracted from the order detail text
type Payment struct {
	Method PaymentMethod   `json:"method"`
	Change decimal.Decimal `json:"change"`
}

// Order is an order imported from the source platform. SourceID is the
// platform's own identifier and is the deduplication key for imports.
type Order struct {
	shared.BaseEntity
	SourceID        string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerName    string          `gorm:"type:varchar(200);not null"`
	CustomerPhone   string          `gorm:"type:varchar(50)"`
	PlacedAt        time.Time       `gorm:"not null;index"`
	Items           []Item          `gorm:"type:jsonb;serializer:json"`
	Address         Address         `gorm:"type:jsonb;serializer:json"`
	Payment         Payment         `gorm:"type:jsonb;serializer:json"`
	DeliveryFee     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	ConvenienceFee  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	DeliveryTime    string          `gorm:"type:varchar(50)"`
	Total           decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Status          Status          `gorm:"type:varchar(20);not null;default:'pending';index"`
	SentToTarget    bool            `gorm:"not null;default:false;index"`
	SentAt          *time.Time      `gorm:""`
	RawDetails      string          `gorm:"type:text"`
	LastSendFailure string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// New creates an order imported from the source platform
func New(sourceID, customerName string, placedAt time.Time) (*Order, error) {
	sourceID = strings.TrimSpace(sourceID)
	if sourceID == "" {
		return nil, shared.NewDomainError("INVALID_SOURCE_ID", "Order source ID cannot be empty")
	}
	if strings.TrimSpace(customerName) == "" {
		customerName = "Cliente não identificado"
	}
	if placedAt.IsZero() {
		placedAt = time.Now()
	}

	return &Order{
		BaseEntity:   shared.NewBaseEntity(),
		SourceID:     sourceID,
		CustomerName: strings.TrimSpace(customerName),
		PlacedAt:     placedAt,
		Status:       StatusPending,
	}, nil
}

// ComputedTotal returns the sum of line totals plus fees. It is the
// fallback when the detail text carries no explicit total.
func (o *Order) ComputedTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range o.Items {
		sum = sum.Add(item.LineTotal())
	}
	return sum.Add(o.DeliveryFee).Add(o.ConvenienceFee)
}

// EnsureTotal fills Total from the items and fees when it was not parsed
func (o *Order) EnsureTotal() {
	if o.Total.IsZero() {
		o.Total = o.ComputedTotal()
	}
}

// MarkSent records a successful forward to the target platform
func (o *Order) MarkSent(at time.Time) {
	o.Status = StatusProcessing
	o.SentToTarget = true
	o.SentAt = &at
	o.LastSendFailure = ""
	o.Touch()
}

// RecordSendFailure keeps the last failure reason for diagnostics
func (o *Order) RecordSendFailure(reason string) {
	o.LastSendFailure = reason
	o.Touch()
}

// SetStatus applies a manual status change. Terminal states can only be
// entered this way, and once entered the order does not leave them.
func (o *Order) SetStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	if o.Status.IsTerminal() && status != o.Status {
		return shared.NewDomainError("INVALID_STATE", "Order is already in a terminal status")
	}
	o.Status = status
	o.Touch()
	return nil
}

// IsPending returns true if the order has not been forwarded yet
func (o *Order) IsPending() bool {
	return o.Status == StatusPending
}
