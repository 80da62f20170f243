package platform

// saboritteOrderRequest is the body of POST /api/enviapedido. IDProdutos
// repeats each product ID once per unit, the endpoint has no quantity
// field.
type saboritteOrderRequest struct {
	ID             string   `json:"id"`
	Nome           string   `json:"nome"`
	Telefone       string   `json:"telefone"`
	Endereco       string   `json:"endereco"`
	Numero         string   `json:"numero"`
	Bairro         string   `json:"bairro"`
	Cidade         string   `json:"cidade"`
	Estado         string   `json:"estado"`
	Complemento    string   `json:"complemento"`
	IDProdutos     []string `json:"id_produtos"`
	Pagamento      string   `json:"pagamento"`
	ContactIsexist bool     `json:"contactIsexiste"`
	ClienteID      string   `json:"clienteId,omitempty"`
}

// saboritteOrderResponse is the acknowledgement of POST /api/enviapedido
type saboritteOrderResponse struct {
	Sucesso  bool   `json:"sucesso"`
	Mensagem string `json:"mensagem"`
	Error    string `json:"error"`
}

// saboritteMenuResponse is the payload of GET /api/cardapio-sab, keyed by
// category name
type saboritteMenuResponse struct {
	Sucesso    bool                           `json:"sucesso"`
	Categorias map[string][]saboritteProdutos `json:"categorias"`
}

type saboritteProdutos struct {
	ID        string               `json:"id"`
	Categoria string               `json:"categoria"`
	Nome      string               `json:"nome"`
	Descricao string               `json:"descricao"`
	Preco     string               `json:"preco"`
	Ativo     bool                 `json:"ativo"`
	Imagem    string               `json:"imagem"`
	Variacoes []saboritteVariation `json:"variacoes"`
}

type saboritteVariation struct {
	Descricao string `json:"descricao"`
	Preco     string `json:"preco"`
}

// saboritteClientsResponse is the payload of GET /api/buscar-clientes-sab
type saboritteClientsResponse struct {
	Sucesso  bool               `json:"sucesso"`
	Clientes []saboritteCliente `json:"clientes"`
}

type saboritteCliente struct {
	ID       string `json:"id"`
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`
}
