package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/integration"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/order"
)

// maxResponseSize limits response bodies to prevent memory exhaustion
const maxResponseSize = 10 * 1024 * 1024 // 10MB

// PlusAdapter implements the SourcePlatform port against the gateway API
type PlusAdapter struct {
	config     *PlusConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewPlusAdapter creates a new adapter for the source platform
func NewPlusAdapter(config *PlusConfig, logger *zap.Logger) (*PlusAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &PlusAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger.Named("plus"),
	}, nil
}

// Code returns the platform identifier
func (a *PlusAdapter) Code() integration.PlatformCode {
	return integration.PlatformPlus
}

// FetchOrders retrieves the current orders and parses their detail blobs.
// Orders whose payload cannot even identify the order are skipped with a
// warning; parse degradations inside a valid order never fail the fetch.
func (a *PlusAdapter) FetchOrders(ctx context.Context) ([]*order.Order, []integration.ParseWarning, error) {
	body, err := a.doRequest(ctx, "/api/pedidos")
	if err != nil {
		return nil, nil, err
	}

	var resp plusOrdersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", integration.ErrInvalidResponse, err)
	}
	if resp.Pedidos == nil {
		return nil, nil, fmt.Errorf("%w: missing pedidos field", integration.ErrInvalidResponse)
	}

	orders := make([]*order.Order, 0, len(resp.Pedidos))
	var warnings []integration.ParseWarning

	for _, payload := range resp.Pedidos {
		o, w, err := ParseAPIOrder(payload)
		if err != nil {
			a.logger.Warn("Skipping unparseable order payload",
				zap.String("source_id", payload.ID),
				zap.Error(err),
			)
			warnings = append(warnings, integration.ParseWarning{
				OrderSourceID: payload.ID,
				Field:         "order",
				Detail:        err.Error(),
			})
			continue
		}
		warnings = append(warnings, w...)
		orders = append(orders, o)
	}

	return orders, warnings, nil
}

// FetchProducts retrieves the product catalog, flattening menu sections
// into a single list with the menu name as category
func (a *PlusAdapter) FetchProducts(ctx context.Context) ([]integration.SourceProduct, error) {
	body, err := a.doRequest(ctx, "/api/cardapio")
	if err != nil {
		return nil, err
	}

	var resp plusMenuResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrInvalidResponse, err)
	}

	var products []integration.SourceProduct
	for _, menu := range resp.Menus {
		for _, p := range menu.Produtos {
			category := p.Categoria
			if category == "" {
				category = menu.Nome
			}
			products = append(products, integration.SourceProduct{
				ID:         p.ID,
				Name:       p.Nome,
				Category:   category,
				Price:      parseDecimal(p.Valor),
				PromoPrice: parseDecimal(p.Promocao),
				Enabled:    p.Habilitado,
			})
		}
	}

	return products, nil
}

// doRequest performs an authenticated GET against the gateway
func (a *PlusAdapter) doRequest(ctx context.Context, path string) ([]byte, error) {
	endpoint := a.config.BaseURL + path
	params := url.Values{}
	params.Set("email", a.config.Email)
	params.Set("senha", a.config.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("plus: failed to create request: %w", err)
	}
	req.Header.Set("x-Secret", a.config.Secret)
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("plus: failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: HTTP %d", integration.ErrInvalidCredentials, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: HTTP %d - %s", integration.ErrPlatformUnavailable, resp.StatusCode, string(body))
	}

	return body, nil
}

// parseDecimal parses a price string, returning zero on malformed input
func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Ensure PlusAdapter implements SourcePlatform interface
var _ integration.SourcePlatform = (*PlusAdapter)(nil)
