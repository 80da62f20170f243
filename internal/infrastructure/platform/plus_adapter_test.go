package platform

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/integration"
)

// ---------------------------------------------------------------------------
// Config Tests
// ---------------------------------------------------------------------------

func TestPlusConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *PlusConfig
		wantErr bool
	}{
		{
			name: "valid config",
			config: &PlusConfig{
				BaseURL:  "https://api.example.com",
				Secret:   "s3cret",
				Email:    "user@example.com",
				Password: "pass",
			},
			wantErr: false,
		},
		{
			name:    "missing base URL",
			config:  &PlusConfig{Secret: "s", Email: "e", Password: "p"},
			wantErr: true,
		},
		{
			name:    "missing secret",
			config:  &PlusConfig{BaseURL: "https://api.example.com", Email: "e", Password: "p"},
			wantErr: true,
		},
		{
			name:    "missing credentials",
			config:  &PlusConfig{BaseURL: "https://api.example.com", Secret: "s"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 30*time.Second, tt.config.Timeout)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Adapter Tests
// ---------------------------------------------------------------------------

func TestNewPlusAdapter(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		adapter, err := NewPlusAdapter(testPlusConfig("https://api.example.com"), zap.NewNop())
		require.NoError(t, err)
		assert.NotNil(t, adapter)
		assert.Equal(t, integration.PlatformPlus, adapter.Code())
	})

	t.Run("invalid config", func(t *testing.T) {
		adapter, err := NewPlusAdapter(&PlusConfig{}, zap.NewNop())
		assert.Error(t, err)
		assert.Nil(t, adapter)
	})
}

func TestPlusAdapter_FetchOrders(t *testing.T) {
	t.Run("successful fetch", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/pedidos", r.URL.Path)
			assert.Equal(t, "test-secret", r.Header.Get("x-Secret"))
			assert.Equal(t, "user@example.com", r.URL.Query().Get("email"))
			assert.Equal(t, "pass", r.URL.Query().Get("senha"))

			w.Write([]byte(`{"pedidos":[
				{"id":"100","cliente":"João","dataHora":"Data: 15/05/2025 - Hora: 20:10:00","status":"pendente",
				 "detalhes":"Telefone: 27 99999-8888<br>Endereço: Rua A, 1, Centro, Vitoria/ES<br><br>==== Conteúdo ====<br>1 - Lanche - R$ 20.00<br>Pagamento: PIX<br>TOTAL: R$ 20.00"}
			]}`))
		}))
		defer server.Close()

		adapter := testPlusAdapter(t, server.URL)

		orders, warnings, err := adapter.FetchOrders(context.Background())
		require.NoError(t, err)
		assert.Empty(t, warnings)
		require.Len(t, orders, 1)
		assert.Equal(t, "100", orders[0].SourceID)
		assert.Equal(t, "João", orders[0].CustomerName)
		assert.True(t, orders[0].Total.Equal(decimal.NewFromInt(20)))
	})

	t.Run("payload without id is skipped with warning", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"pedidos":[
				{"cliente":"Sem ID","detalhes":""},
				{"id":"200","cliente":"Ok","detalhes":""}
			]}`))
		}))
		defer server.Close()

		adapter := testPlusAdapter(t, server.URL)

		orders, warnings, err := adapter.FetchOrders(context.Background())
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "200", orders[0].SourceID)

		var orderWarnings int
		for _, w := range warnings {
			if w.Field == "order" {
				orderWarnings++
			}
		}
		assert.Equal(t, 1, orderWarnings)
	})

	t.Run("missing pedidos field", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"sucesso":true}`))
		}))
		defer server.Close()

		adapter := testPlusAdapter(t, server.URL)

		_, _, err := adapter.FetchOrders(context.Background())
		assert.ErrorIs(t, err, integration.ErrInvalidResponse)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		adapter := testPlusAdapter(t, server.URL)

		_, _, err := adapter.FetchOrders(context.Background())
		assert.ErrorIs(t, err, integration.ErrInvalidCredentials)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		adapter := testPlusAdapter(t, server.URL)

		_, _, err := adapter.FetchOrders(context.Background())
		assert.ErrorIs(t, err, integration.ErrPlatformUnavailable)
	})

	t.Run("unreachable host", func(t *testing.T) {
		adapter := testPlusAdapter(t, "http://127.0.0.1:1")

		_, _, err := adapter.FetchOrders(context.Background())
		assert.ErrorIs(t, err, integration.ErrPlatformUnavailable)
	})
}

func TestPlusAdapter_FetchProducts(t *testing.T) {
	t.Run("flattens menus", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/cardapio", r.URL.Path)
			w.Write([]byte(`{"sucesso":true,"menus":[
				{"nome":"Lanches","disponivel":true,"produtos":[
					{"id":"p1","nome":"X-Burguer","valor":"25.90","promocao":"19.90","habilitado":true},
					{"id":"p2","nome":"X-Salada","valor":"23.00","promocao":"","habilitado":false,"categoria":"Especiais"}
				]},
				{"nome":"Bebidas","disponivel":true,"produtos":[
					{"id":"p3","nome":"Coca-Cola","valor":"8.00","promocao":"","habilitado":true}
				]}
			]}`))
		}))
		defer server.Close()

		adapter := testPlusAdapter(t, server.URL)

		products, err := adapter.FetchProducts(context.Background())
		require.NoError(t, err)
		require.Len(t, products, 3)

		assert.Equal(t, "p1", products[0].ID)
		assert.Equal(t, "Lanches", products[0].Category, "category falls back to menu name")
		assert.True(t, products[0].Price.Equal(decimal.NewFromFloat(25.90)))
		assert.True(t, products[0].PromoPrice.Equal(decimal.NewFromFloat(19.90)))

		assert.Equal(t, "Especiais", products[1].Category)
		assert.True(t, products[1].PromoPrice.IsZero())
		assert.False(t, products[1].Enabled)

		assert.Equal(t, "Bebidas", products[2].Category)
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		adapter := testPlusAdapter(t, server.URL)

		_, err := adapter.FetchProducts(context.Background())
		assert.ErrorIs(t, err, integration.ErrInvalidResponse)
	})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func testPlusConfig(baseURL string) *PlusConfig {
	return &PlusConfig{
		BaseURL:  baseURL,
		Secret:   "test-secret",
		Email:    "user@example.com",
		Password: "pass",
		Timeout:  5 * time.Second,
	}
}

func testPlusAdapter(t *testing.T, baseURL string) *PlusAdapter {
	t.Helper()
	adapter, err := NewPlusAdapter(testPlusConfig(baseURL), zap.NewNop())
	require.NoError(t, err)
	return adapter
}
