package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/integration"
)

// SaboritteAdapter implements the TargetPlatform port against the gateway
// API. It also exposes the platform's registered contacts for client
// reconciliation.
type SaboritteAdapter struct {
	config     *SaboritteConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewSaboritteAdapter creates a new adapter for the target platform
func NewSaboritteAdapter(config *SaboritteConfig, logger *zap.Logger) (*SaboritteAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &SaboritteAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger.Named("saboritte"),
	}, nil
}

// Code returns the platform identifier
func (a *SaboritteAdapter) Code() integration.PlatformCode {
	return integration.PlatformSaboritte
}

// SendOrder forwards one order to the platform. In test mode the payload
// is logged and reported as accepted without hitting the API.
func (a *SaboritteAdapter) SendOrder(ctx context.Context, o integration.OutboundOrder) (*integration.SendResult, error) {
	reqBody := saboritteOrderRequest{
		ID:             o.SourceID,
		Nome:           o.Name,
		Telefone:       o.Phone,
		Endereco:       o.Street,
		Numero:         o.Number,
		Bairro:         o.Neighborhood,
		Cidade:         o.City,
		Estado:         o.State,
		Complemento:    o.Complement,
		IDProdutos:     o.ProductIDs,
		Pagamento:      o.PaymentLabel,
		ContactIsexist: o.ContactExists,
		ClienteID:      o.ClientID,
	}

	if a.config.TestMode {
		payload, _ := json.Marshal(reqBody)
		a.logger.Info("Test mode, order not sent",
			zap.String("source_id", o.SourceID),
			zap.ByteString("payload", payload),
		)
		return &integration.SendResult{Accepted: true, Message: "test mode"}, nil
	}

	body, status, err := a.doRequest(ctx, http.MethodPost, "/api/enviapedido", reqBody)
	if err != nil {
		return nil, err
	}

	var resp saboritteOrderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		// Some gateway errors come back as plain text
		resp = saboritteOrderResponse{Error: string(body)}
	}

	if status >= 400 {
		msg := resp.Error
		if msg == "" {
			msg = resp.Mensagem
		}
		return nil, fmt.Errorf("%w: HTTP %d - %s", integration.ErrOrderRejected, status, msg)
	}

	return &integration.SendResult{
		Accepted: resp.Sucesso,
		Message:  resp.Mensagem,
	}, nil
}

// FetchProducts retrieves the product catalog, flattening the per-category
// map into a single list
func (a *SaboritteAdapter) FetchProducts(ctx context.Context) ([]integration.TargetProduct, error) {
	body, _, err := a.doRequest(ctx, http.MethodGet, "/api/cardapio-sab", nil)
	if err != nil {
		return nil, err
	}

	var resp saboritteMenuResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrInvalidResponse, err)
	}

	var products []integration.TargetProduct
	for category, items := range resp.Categorias {
		for _, p := range items {
			product := integration.TargetProduct{
				ID:       p.ID,
				Name:     p.Nome,
				Category: p.Categoria,
				Price:    parseDecimal(p.Preco),
				Enabled:  p.Ativo,
				Image:    p.Imagem,
			}
			if product.Category == "" {
				product.Category = category
			}
			for _, v := range p.Variacoes {
				product.Variations = append(product.Variations, integration.ProductVariation{
					Description: v.Descricao,
					Price:       parseDecimal(v.Preco),
				})
			}
			products = append(products, product)
		}
	}

	return products, nil
}

// FetchClients retrieves the contacts registered on the platform
func (a *SaboritteAdapter) FetchClients(ctx context.Context) ([]integration.RemoteClient, error) {
	body, _, err := a.doRequest(ctx, http.MethodGet, "/api/buscar-clientes-sab", nil)
	if err != nil {
		return nil, err
	}

	var resp saboritteClientsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrInvalidResponse, err)
	}

	clients := make([]integration.RemoteClient, 0, len(resp.Clientes))
	for _, c := range resp.Clientes {
		clients = append(clients, integration.RemoteClient{
			ID:    c.ID,
			Name:  c.Nome,
			Phone: c.Telefone,
		})
	}

	return clients, nil
}

// doRequest performs an authenticated request against the gateway
func (a *SaboritteAdapter) doRequest(ctx context.Context, method, path string, payload any) ([]byte, int, error) {
	endpoint := a.config.BaseURL + path
	params := url.Values{}
	params.Set("email", a.config.Email)
	params.Set("senha", a.config.Password)

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("saboritte: failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint+"?"+params.Encode(), reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("saboritte: failed to create request: %w", err)
	}
	req.Header.Set("x-Secret", a.config.Secret)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", integration.ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, 0, fmt.Errorf("saboritte: failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, resp.StatusCode, fmt.Errorf("%w: HTTP %d", integration.ErrInvalidCredentials, resp.StatusCode)
	}
	// Other HTTP errors are surfaced by the caller together with the
	// decoded body
	if method == http.MethodGet && resp.StatusCode >= 400 {
		return nil, resp.StatusCode, fmt.Errorf("%w: HTTP %d - %s", integration.ErrPlatformUnavailable, resp.StatusCode, string(body))
	}

	return body, resp.StatusCode, nil
}

// Interface assertions
var (
	_ integration.TargetPlatform  = (*SaboritteAdapter)(nil)
	_ integration.ClientDirectory = (*SaboritteAdapter)(nil)
)
