package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainPromo "fitfront/internal/domain/promocode"
)

// OrderItemInput is one cart line at checkout.
type OrderItemInput struct {
	ProductID string
	Quantity  int
}

// SubmitOrderInput carries the checkout form.
type SubmitOrderInput struct {
	Token     string
	PromoCode string
	Items     []OrderItemInput
}

// PromoLookup resolves a promo code entered at checkout. The zero result
// with ok=false means the code does not exist.
type PromoLookup interface {
	FindPromoCode(ctx context.Context, token, code string) (domainPromo.PromoCode, bool, error)
}

// SubmitOrderDeps holds dependencies for SubmitOrder.
type SubmitOrderDeps struct {
	Mutator Mutator
	Promos  PromoLookup
	Lister  Lister
	Cache   CacheStore
}

// Checkout errors.
var (
	ErrEmptyCart        = errors.New("order must contain at least one item")
	ErrInvalidQuantity  = errors.New("item quantity must be at least 1")
	ErrUnknownPromoCode = errors.New("promo code not recognized")
	ErrExpiredPromoCode = errors.New("promo code is not active")
)

// ExecuteSubmitOrder validates the cart and promo code, then places the
// order. Pricing is computed upstream; the promo check here only catches
// typos and expired codes before the round trip.
func ExecuteSubmitOrder(ctx context.Context, input SubmitOrderInput, deps SubmitOrderDeps) error {
	if len(input.Items) == 0 {
		return ErrEmptyCart
	}
	items := make([]map[string]any, 0, len(input.Items))
	for _, item := range input.Items {
		if item.ProductID == "" || item.Quantity < 1 {
			return ErrInvalidQuantity
		}
		items = append(items, map[string]any{
			"product_id": item.ProductID,
			"quantity":   item.Quantity,
		})
	}

	code := strings.TrimSpace(input.PromoCode)
	if code != "" && deps.Promos != nil {
		promo, ok, err := deps.Promos.FindPromoCode(ctx, input.Token, code)
		if err == nil {
			// A promo lookup failure is not fatal; the upstream revalidates.
			if !ok {
				return ErrUnknownPromoCode
			}
			if !promo.IsActive(time.Now()) {
				return ErrExpiredPromoCode
			}
		}
	}

	url := deps.Mutator.Endpoints().User().Orders.Add()
	body := map[string]any{"items": items}
	if code != "" {
		body["promo_code"] = code
	}
	result, err := deps.Mutator.Mutate(ctx, input.Token, http.MethodPost, url, body)
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}

	slog.Info("order_event", "event", "order_submitted", "items", len(items), "promo", code != "")
	refreshSection(ctx, deps.Lister, deps.Cache, input.Token, deps.Mutator.Endpoints().User().Orders.List(), sectionOrders)
	return nil
}
