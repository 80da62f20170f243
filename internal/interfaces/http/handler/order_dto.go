package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/order"
)

// orderResponse is the API representation of an order
type orderResponse struct {
	ID              uuid.UUID       `json:"id"`
	SourceID        string          `json:"source_id"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone,omitempty"`
	PlacedAt        time.Time       `json:"placed_at"`
	Items           []order.Item    `json:"items"`
	Address         order.Address   `json:"address"`
	Payment         order.Payment   `json:"payment"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee"`
	ConvenienceFee  decimal.Decimal `json:"convenience_fee"`
	DeliveryTime    string          `json:"delivery_time,omitempty"`
	Total           decimal.Decimal `json:"total"`
	Status          order.Status    `json:"status"`
	SentToTarget    bool            `json:"sent_to_target"`
	SentAt          *time.Time      `json:"sent_at,omitempty"`
	LastSendFailure string          `json:"last_send_failure,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func toOrderResponse(o *order.Order) orderResponse {
	return orderResponse{
		ID:              o.ID,
		SourceID:        o.SourceID,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		PlacedAt:        o.PlacedAt,
		Items:           o.Items,
		Address:         o.Address,
		Payment:         o.Payment,
		DeliveryFee:     o.DeliveryFee,
		ConvenienceFee:  o.ConvenienceFee,
		DeliveryTime:    o.DeliveryTime,
		Total:           o.Total,
		Status:          o.Status,
		SentToTarget:    o.SentToTarget,
		SentAt:          o.SentAt,
		LastSendFailure: o.LastSendFailure,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
