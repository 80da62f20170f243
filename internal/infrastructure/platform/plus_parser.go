package platform

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/integration"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/order"
)

// The detail blob is a loosely structured text document. Every extractor
// below pulls one field out of it; a field that cannot be found degrades to
// its zero value and is reported as a warning, the import itself never
// fails on malformed details.

const (
	contentMarker     = "==== Conteúdo ===="
	deliveryFeeMarker = "TAXA DE ENTREGA"
	addressMarker     = "Endereço: "
	paymentMarker     = "Pagamento: "
)

var (
	rePhone          = regexp.MustCompile(`Telefone:.*?(\d{10,11}|\d{2}\s\d{8,9}|\d{2}\s\d{4,5}-\d{4})`)
	reItem           = regexp.MustCompile(`(\d+)\s*-\s*(.*?)\s*-\s*R\$\s*(\d+(?:\.\d+)?)`)
	reItemNotes      = regexp.MustCompile(`R\$\s*\d+(?:\.\d+)?\s*(.*)`)
	reDeliveryFee    = regexp.MustCompile(`TAXA DE ENTREGA: R\$ (\d+(?:\.\d+)?)`)
	reConvenienceFee = regexp.MustCompile(`TAXA DE CONVENIÊNCIA: R\$ (\d+(?:\.\d+)?)`)
	reDeliveryTime   = regexp.MustCompile(`Tempo de entrega: (\d+(?:-\d+)?min)`)
	reChangeFor      = regexp.MustCompile(`Troco para: R\$ (\d+(?:\.\d+)?)`)
	reTotal          = regexp.MustCompile(`TOTAL: R\$ (\d+(?:\.\d+)?)`)
	reCityState      = regexp.MustCompile(`([A-Za-z\s]+)/([A-Z]{2})`)
	reNeighborhood   = regexp.MustCompile(`,\s*([^,]+?),\s*(?:Em frente|Próximo|Referência|Portão|[A-Z][A-Za-z]+/[A-Z]{2})`)
	reCityStateTail  = regexp.MustCompile(`,\s*[A-Z][A-Za-z]+/[A-Z]{2}`)
	reDataHora       = regexp.MustCompile(`Data: (\d{2}/\d{2}/\d{4}) - Hora: (\d{2}:\d{2}:\d{2})`)
)

var referenceKeywords = []string{"Em frente", "Próximo", "Referência", "Portão"}

// ParsedDetails is the structured result of parsing an order detail blob
type ParsedDetails struct {
	Phone          string
	Address        order.Address
	Items          []order.Item
	DeliveryFee    decimal.Decimal
	ConvenienceFee decimal.Decimal
	DeliveryTime   string
	PaymentLabel   string
	ChangeFor      decimal.Decimal
	Total          decimal.Decimal
}

type detailExtractor struct {
	field string
	fn    func(text string, d *ParsedDetails) bool
}

// detailExtractors runs in order; each returns false when its field could
// not be found. Only fields an order cannot be forwarded well without are
// reported as warnings.
var detailExtractors = []detailExtractor{
	{"phone", extractPhone},
	{"address", extractAddress},
	{"items", extractItems},
	{"delivery_fee", extractDeliveryFee},
	{"convenience_fee", extractConvenienceFee},
	{"delivery_time", extractDeliveryTime},
	{"payment", extractPayment},
	{"change_for", extractChangeFor},
	{"total", extractTotal},
}

var warnedFields = map[string]bool{
	"phone":   true,
	"address": true,
	"items":   true,
	"payment": true,
}

// ParseOrderDetails extracts structured order data from the free-text
// detail blob. It never fails; missing fields come back as warnings.
func ParseOrderDetails(sourceID, detailsHTML string) (ParsedDetails, []integration.ParseWarning) {
	text := strings.ReplaceAll(detailsHTML, "<br>", "\n")

	var d ParsedDetails
	var warnings []integration.ParseWarning

	for _, ex := range detailExtractors {
		if ex.fn(text, &d) {
			continue
		}
		if warnedFields[ex.field] {
			warnings = append(warnings, integration.ParseWarning{
				OrderSourceID: sourceID,
				Field:         ex.field,
				Detail:        "field not found in order details",
			})
		}
	}

	// Fall back to the computed total when the blob carries none
	if d.Total.IsZero() {
		sum := decimal.Zero
		for _, item := range d.Items {
			sum = sum.Add(item.LineTotal())
		}
		d.Total = sum.Add(d.DeliveryFee).Add(d.ConvenienceFee)
	}

	return d, warnings
}

func extractPhone(text string, d *ParsedDetails) bool {
	m := rePhone.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	d.Phone = strings.TrimSpace(m[1])
	return true
}

func extractAddress(text string, d *ParsedDetails) bool {
	section := sectionAfter(text, addressMarker)
	if section == "" {
		return false
	}

	parts := splitTrimmed(section, ",")
	if len(parts) >= 1 {
		d.Address.Street = parts[0]
	}
	if len(parts) >= 2 {
		d.Address.Number = parts[1]
	}

	if m := reNeighborhood.FindStringSubmatch(section); m != nil {
		d.Address.Neighborhood = strings.TrimSpace(m[1])
	}
	if m := reCityState.FindStringSubmatch(section); m != nil {
		d.Address.City = strings.TrimSpace(m[1])
		d.Address.State = m[2]
	}
	d.Address.Reference = extractReference(section)

	return true
}

func extractItems(text string, d *ParsedDetails) bool {
	section := contentSection(text)
	if section == "" {
		return false
	}

	for _, line := range strings.Split(section, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := reItem.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		quantity, err := strconv.Atoi(m[1])
		if err != nil || quantity <= 0 {
			continue
		}
		price, err := decimal.NewFromString(m[3])
		if err != nil {
			continue
		}

		item := order.Item{
			Name:      strings.TrimSpace(m[2]),
			Quantity:  quantity,
			UnitPrice: price,
		}
		if nm := reItemNotes.FindStringSubmatch(line); nm != nil {
			item.Notes = strings.TrimSpace(nm[1])
		}
		d.Items = append(d.Items, item)
	}

	return len(d.Items) > 0
}

func extractDeliveryFee(text string, d *ParsedDetails) bool {
	return extractMoney(reDeliveryFee, text, &d.DeliveryFee)
}

func extractConvenienceFee(text string, d *ParsedDetails) bool {
	return extractMoney(reConvenienceFee, text, &d.ConvenienceFee)
}

func extractDeliveryTime(text string, d *ParsedDetails) bool {
	m := reDeliveryTime.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	d.DeliveryTime = m[1]
	return true
}

func extractPayment(text string, d *ParsedDetails) bool {
	for _, line := range strings.Split(text, "\n") {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(line), paymentMarker); ok {
			d.PaymentLabel = strings.TrimSpace(rest)
			return d.PaymentLabel != ""
		}
	}
	return false
}

func extractChangeFor(text string, d *ParsedDetails) bool {
	return extractMoney(reChangeFor, text, &d.ChangeFor)
}

func extractTotal(text string, d *ParsedDetails) bool {
	return extractMoney(reTotal, text, &d.Total)
}

func extractMoney(re *regexp.Regexp, text string, dst *decimal.Decimal) bool {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	value, err := decimal.NewFromString(m[1])
	if err != nil {
		return false
	}
	*dst = value
	return true
}

// sectionAfter returns the text following the marker up to the first blank
// line
func sectionAfter(text, marker string) string {
	idx := strings.Index(text, marker)
	if idx < 0 {
		return ""
	}
	rest := text[idx+len(marker):]
	if end := strings.Index(rest, "\n\n"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

// contentSection returns the item lines between the content header and the
// fee block
func contentSection(text string) string {
	idx := strings.Index(text, contentMarker)
	if idx < 0 {
		return ""
	}
	rest := text[idx+len(contentMarker):]
	if end := strings.Index(rest, deliveryFeeMarker); end >= 0 {
		rest = rest[:end]
	}
	return rest
}

func extractReference(address string) string {
	for _, kw := range referenceKeywords {
		idx := strings.Index(address, kw)
		if idx < 0 {
			continue
		}
		rest := address[idx+len(kw):]
		if loc := reCityStateTail.FindStringIndex(rest); loc != nil {
			rest = rest[:loc[0]]
		}
		return strings.TrimSpace(strings.Trim(rest, ","))
	}
	return ""
}

func splitTrimmed(s, sep string) []string {
	parts := strings.Split(s, sep)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// MapPaymentLabel normalizes the free-text payment label of the source
// platform into a payment method
func MapPaymentLabel(label string) order.PaymentMethod {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "cartão") && strings.Contains(l, "crédito"):
		return order.PaymentCreditCard
	case strings.Contains(l, "cartão") && strings.Contains(l, "débito"):
		return order.PaymentDebitCard
	case strings.Contains(l, "dinheiro") || strings.Contains(l, "vista"):
		return order.PaymentCash
	case strings.Contains(l, "pix"):
		return order.PaymentPix
	default:
		return order.PaymentOther
	}
}

// ParseAPIOrder converts one gateway order payload into a domain order,
// parsing the detail blob along the way
func ParseAPIOrder(p plusOrderPayload) (*order.Order, []integration.ParseWarning, error) {
	placedAt := parsePlacedAt(p.DataHora)

	o, err := order.New(p.ID, p.Cliente, placedAt)
	if err != nil {
		return nil, nil, err
	}

	details, warnings := ParseOrderDetails(p.ID, p.Detalhes)

	o.CustomerPhone = details.Phone
	o.Address = details.Address
	o.Items = details.Items
	o.DeliveryFee = details.DeliveryFee
	o.ConvenienceFee = details.ConvenienceFee
	o.DeliveryTime = details.DeliveryTime
	o.Total = details.Total
	o.Payment = order.Payment{
		Method: MapPaymentLabel(details.PaymentLabel),
		Change: details.ChangeFor,
	}
	o.RawDetails = p.Detalhes
	o.EnsureTotal()

	return o, warnings, nil
}

// parsePlacedAt parses the "Data: DD/MM/YYYY - Hora: HH:MM:SS" stamp,
// falling back to the current time when it does not match
func parsePlacedAt(dataHora string) time.Time {
	m := reDataHora.FindStringSubmatch(dataHora)
	if m == nil {
		return time.Now()
	}
	t, err := time.ParseInLocation("02/01/2006 15:04:05", m[1]+" "+m[2], time.Local)
	if err != nil {
		return time.Now()
	}
	return t
}
