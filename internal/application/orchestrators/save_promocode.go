package orchestrators

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	domainPromo "fitfront/internal/domain/promocode"

	"github.com/shopspring/decimal"
)

// SavePromoCodeInput carries a promo code add or update form.
type SavePromoCodeInput struct {
	Token         string
	ID            string
	Code          string
	DiscountValue decimal.Decimal
	ValidFrom     time.Time
	ValidTo       time.Time
}

// ExecuteSavePromoCode creates or updates a promo code.
func ExecuteSavePromoCode(ctx context.Context, input SavePromoCodeInput, deps CatalogDeps) error {
	p := domainPromo.PromoCode{
		ID:            input.ID,
		Code:          input.Code,
		DiscountValue: input.DiscountValue,
		ValidFrom:     input.ValidFrom,
		ValidTo:       input.ValidTo,
	}
	if err := p.Validate(); err != nil {
		return err
	}

	routes := deps.Mutator.Endpoints().Admin().PromoCodes
	url := routes.Add()
	if input.ID != "" {
		url = routes.Update(input.ID)
	}

	body := map[string]any{
		"code":           p.Code,
		"discount_value": p.DiscountValue.InexactFloat64(),
	}
	if !p.ValidFrom.IsZero() {
		body["valid_from"] = p.ValidFrom.Format(time.RFC3339)
	}
	if !p.ValidTo.IsZero() {
		body["valid_to"] = p.ValidTo.Format(time.RFC3339)
	}

	result, err := deps.Mutator.Mutate(ctx, input.Token, http.MethodPost, url, body)
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}

	slog.Info("admin_event", "event", "promocode_saved", "id", input.ID, "code", p.Code)
	return nil
}

// ExecuteDeletePromoCode removes a promo code. Orders that already used it
// keep their recorded discount.
func ExecuteDeletePromoCode(ctx context.Context, token, id string, deps CatalogDeps) error {
	routes := deps.Mutator.Endpoints().Admin().PromoCodes
	result, err := deps.Mutator.Mutate(ctx, token, http.MethodPost, routes.Delete(id), nil)
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}
	slog.Info("admin_event", "event", "promocode_deleted", "id", id)
	return nil
}
