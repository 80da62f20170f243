package platform

import (
	"context"
	"encoding/json"
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

func TestSaboritteConfig_Validate(t *testing.T) {
	t.Run("valid config sets default timeout", func(t *testing.T) {
		config := &SaboritteConfig{
			BaseURL:  "https://app.example.com",
			Secret:   "s3cret",
			Email:    "user@example.com",
			Password: "pass",
		}
		require.NoError(t, config.Validate())
		assert.Equal(t, 30*time.Second, config.Timeout)
	})

	t.Run("missing fields", func(t *testing.T) {
		assert.Error(t, (&SaboritteConfig{}).Validate())
		assert.Error(t, (&SaboritteConfig{BaseURL: "https://x", Email: "e", Password: "p"}).Validate())
		assert.Error(t, (&SaboritteConfig{BaseURL: "https://x", Secret: "s"}).Validate())
	})
}

func TestNewSaboritteAdapter(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		adapter, err := NewSaboritteAdapter(testSaboritteConfig("https://app.example.com"), zap.NewNop())
		require.NoError(t, err)
		assert.NotNil(t, adapter)
		assert.Equal(t, integration.PlatformSaboritte, adapter.Code())
	})

	t.Run("invalid config", func(t *testing.T) {
		adapter, err := NewSaboritteAdapter(&SaboritteConfig{}, zap.NewNop())
		assert.Error(t, err)
		assert.Nil(t, adapter)
	})
}

func TestSaboritteAdapter_SendOrder(t *testing.T) {
	outbound := integration.OutboundOrder{
		SourceID:     "4821",
		Name:         "Maria Souza",
		Phone:        "27999998888",
		Street:       "Rua das Flores",
		Number:       "123",
		Neighborhood: "Centro",
		City:         "Vitoria",
		State:        "ES",
		ProductIDs:   []string{"p1", "p1", "p2"},
		PaymentLabel: "Dinheiro",
		ContactExists: true,
		ClientID:     "c9",
	}

	t.Run("accepted", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/enviapedido", r.URL.Path)
			assert.Equal(t, "test-secret", r.Header.Get("x-Secret"))
			assert.Equal(t, "user@example.com", r.URL.Query().Get("email"))
			assert.Equal(t, "pass", r.URL.Query().Get("senha"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req saboritteOrderRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "4821", req.ID)
			assert.Equal(t, []string{"p1", "p1", "p2"}, req.IDProdutos)
			assert.True(t, req.ContactIsexist)
			assert.Equal(t, "c9", req.ClienteID)

			w.Write([]byte(`{"sucesso":true,"mensagem":"Pedido recebido"}`))
		}))
		defer server.Close()

		adapter := testSaboritteAdapter(t, server.URL)

		result, err := adapter.SendOrder(context.Background(), outbound)
		require.NoError(t, err)
		assert.True(t, result.Accepted)
		assert.Equal(t, "Pedido recebido", result.Message)
	})

	t.Run("rejected with JSON error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"error":"produto indisponivel"}`))
		}))
		defer server.Close()

		adapter := testSaboritteAdapter(t, server.URL)

		result, err := adapter.SendOrder(context.Background(), outbound)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, integration.ErrOrderRejected)
		assert.Contains(t, err.Error(), "produto indisponivel")
	})

	t.Run("rejected with plain text body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`Bad Request`))
		}))
		defer server.Close()

		adapter := testSaboritteAdapter(t, server.URL)

		_, err := adapter.SendOrder(context.Background(), outbound)
		assert.ErrorIs(t, err, integration.ErrOrderRejected)
		assert.Contains(t, err.Error(), "Bad Request")
	})

	t.Run("invalid credentials", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		adapter := testSaboritteAdapter(t, server.URL)

		_, err := adapter.SendOrder(context.Background(), outbound)
		assert.ErrorIs(t, err, integration.ErrInvalidCredentials)
	})

	t.Run("test mode short-circuits", func(t *testing.T) {
		var hit bool
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hit = true
		}))
		defer server.Close()

		config := testSaboritteConfig(server.URL)
		config.TestMode = true
		adapter, err := NewSaboritteAdapter(config, zap.NewNop())
		require.NoError(t, err)

		result, err := adapter.SendOrder(context.Background(), outbound)
		require.NoError(t, err)
		assert.True(t, result.Accepted)
		assert.False(t, hit, "test mode must not hit the API")
	})
}

func TestSaboritteAdapter_FetchProducts(t *testing.T) {
	t.Run("flattens category map", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/cardapio-sab", r.URL.Path)
			w.Write([]byte(`{"sucesso":true,"categorias":{
				"Pizzas":[
					{"id":"s1","categoria":"Pizzas","nome":"Calabresa","preco":"45.00","ativo":true,
					 "imagem":"https://img.example.com/1.jpg",
					 "variacoes":[{"descricao":"Grande","preco":"55.00"},{"descricao":"Broto","preco":"35.00"}]},
					{"id":"s2","categoria":"","nome":"Mussarela","preco":"40.00","ativo":false,"variacoes":[]}
				]
			}}`))
		}))
		defer server.Close()

		adapter := testSaboritteAdapter(t, server.URL)

		products, err := adapter.FetchProducts(context.Background())
		require.NoError(t, err)
		require.Len(t, products, 2)

		byID := make(map[string]integration.TargetProduct)
		for _, p := range products {
			byID[p.ID] = p
		}

		calabresa := byID["s1"]
		assert.Equal(t, "Calabresa", calabresa.Name)
		assert.Equal(t, "Pizzas", calabresa.Category)
		assert.True(t, calabresa.Price.Equal(decimal.NewFromInt(45)))
		require.Len(t, calabresa.Variations, 2)
		assert.Equal(t, "Grande", calabresa.Variations[0].Description)
		assert.True(t, calabresa.Variations[0].Price.Equal(decimal.NewFromInt(55)))

		mussarela := byID["s2"]
		assert.Equal(t, "Pizzas", mussarela.Category, "empty category falls back to map key")
		assert.False(t, mussarela.Enabled)
		assert.Empty(t, mussarela.Variations)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		adapter := testSaboritteAdapter(t, server.URL)

		_, err := adapter.FetchProducts(context.Background())
		assert.ErrorIs(t, err, integration.ErrPlatformUnavailable)
	})
}

func TestSaboritteAdapter_FetchClients(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/buscar-clientes-sab", r.URL.Path)
		w.Write([]byte(`{"sucesso":true,"clientes":[
			{"id":"c1","nome":"Maria","telefone":"27999998888"},
			{"id":"c2","nome":"José","telefone":"(27) 3333-4444"}
		]}`))
	}))
	defer server.Close()

	adapter := testSaboritteAdapter(t, server.URL)

	clients, err := adapter.FetchClients(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "c1", clients[0].ID)
	assert.Equal(t, "Maria", clients[0].Name)
	assert.Equal(t, "(27) 3333-4444", clients[1].Phone)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func testSaboritteConfig(baseURL string) *SaboritteConfig {
	return &SaboritteConfig{
		BaseURL:  baseURL,
		Secret:   "test-secret",
		Email:    "user@example.com",
		Password: "pass",
		Timeout:  5 * time.Second,
	}
}

func testSaboritteAdapter(t *testing.T, baseURL string) *SaboritteAdapter {
	t.Helper()
	adapter, err := NewSaboritteAdapter(testSaboritteConfig(baseURL), zap.NewNop())
	require.NoError(t, err)
	return adapter
}
