package platform

// plusOrdersResponse is the payload of GET /api/pedidos
type plusOrdersResponse struct {
	Pedidos []plusOrderPayload `json:"pedidos"`
}

// plusOrderPayload is one order as delivered by the gateway. Detalhes is a
// free-text blob with <br> separated lines holding phone, address, items,
// fees and payment.
type plusOrderPayload struct {
	ID       string `json:"id"`
	Cliente  string `json:"cliente"`
	DataHora string `json:"dataHora"`
	Status   string `json:"status"`
	Detalhes string `json:"detalhes"`
}

// plusMenuResponse is the payload of GET /api/cardapio
type plusMenuResponse struct {
	Sucesso       bool       `json:"sucesso"`
	Menus         []plusMenu `json:"menus"`
	TotalMenus    int        `json:"total_menus"`
	TotalProdutos int        `json:"total_produtos"`
}

type plusMenu struct {
	Nome       string        `json:"nome"`
	Disponivel bool          `json:"disponivel"`
	Produtos   []plusProduct `json:"produtos"`
}

// plusProduct carries prices as decimal strings ("25.90")
type plusProduct struct {
	ID         string `json:"id"`
	Nome       string `json:"nome"`
	Valor      string `json:"valor"`
	Promocao   string `json:"promocao"`
	Habilitado bool   `json:"habilitado"`
	Categoria  string `json:"categoria"`
}
