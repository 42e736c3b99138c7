package reconcile

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// itemContainerCandidates lists the fields that may carry an order's line
// items, in priority order.
var itemContainerCandidates = []string{
	"order_items",
	"orderItems",
	"items",
	"products",
	"line_items",
	"cart_items",
	"order.order_items",
	"order.items",
	"order.products",
}

// envelopeKeys are the wrapper fields an item container may be nested under
// when the upstream returns an envelope object instead of a bare array.
var envelopeKeys = []string{"items", "list", "data"}

// Per-item field candidates.
var (
	itemIDCandidates       = []string{"product_id", "productId", "id", "product.id"}
	itemNameCandidates     = []string{"product_name", "productName", "name", "title", "product.name", "product.title"}
	itemQuantityCandidates = []string{"quantity", "qty", "count"}
	itemPriceCandidates    = []string{"price", "unit_price", "unitPrice", "product_price", "product.price"}
)

// extractItems resolves an order's line items. It tries the container
// candidates in order; a JSON-encoded string value is parsed, and an
// envelope object is unwrapped one level. When no container matches but the
// payload carries a top-level product_id/quantity pair, a single item is
// synthesized with unit price approximated as total/quantity.
// POST: never fails; returns an empty (non-nil) list when nothing matches
func extractItems(raw Raw, total decimal.Decimal) []Item {
	container := lookupFirst(raw, itemContainerCandidates)

	if s, ok := container.(string); ok {
		container = parseJSONList(s)
	}
	if obj, ok := container.(Raw); ok {
		container = unwrapEnvelope(obj)
	}

	if list, ok := container.([]any); ok && len(list) > 0 {
		items := make([]Item, 0, len(list))
		for _, el := range list {
			obj, ok := el.(Raw)
			if !ok {
				continue
			}
			items = append(items, Item{
				ProductID: stringValue(lookupFirst(obj, itemIDCandidates)),
				Name:      stringField(obj, itemNameCandidates, Placeholder),
				Quantity:  itemQuantity(obj),
				UnitPrice: itemPrice(obj),
			})
		}
		return items
	}

	if item, ok := synthesizeItem(raw, total); ok {
		return []Item{item}
	}
	return []Item{}
}

// parseJSONList decodes a JSON-encoded string container. Some upstream
// versions double-encode the item array.
func parseJSONList(s string) any {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") && !strings.HasPrefix(s, "{") {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil
	}
	return v
}

// unwrapEnvelope unwraps a container object one level, returning the first
// nested list found under a known envelope key.
func unwrapEnvelope(obj Raw) any {
	for _, key := range envelopeKeys {
		if list, ok := obj[key].([]any); ok {
			return list
		}
	}
	return nil
}

// synthesizeItem builds a one-item list from a top-level product_id/quantity
// pair, dividing total price by quantity to approximate a unit price.
func synthesizeItem(raw Raw, total decimal.Decimal) (Item, bool) {
	id := stringValue(lookupFirst(raw, []string{"product_id", "productId"}))
	if id == "" {
		return Item{}, false
	}
	qty := intValue(lookupFirst(raw, []string{"quantity", "qty"}))
	if qty < 1 {
		qty = 1
	}
	unit := decimal.Zero
	if total.IsPositive() {
		unit = total.DivRound(decimal.NewFromInt(int64(qty)), 2)
	}
	return Item{
		ProductID: id,
		Name:      Placeholder,
		Quantity:  qty,
		UnitPrice: unit,
	}, true
}

func itemQuantity(obj Raw) int {
	q := intValue(lookupFirst(obj, itemQuantityCandidates))
	if q < 1 {
		q = 1
	}
	return q
}

func itemPrice(obj Raw) decimal.Decimal {
	d, _ := decimalValue(lookupFirst(obj, itemPriceCandidates))
	return d
}
