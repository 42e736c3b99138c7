package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	domainPromo "fitfront/internal/domain/promocode"

	"github.com/shopspring/decimal"
)

type fakePromoLookup struct {
	promos map[string]domainPromo.PromoCode
	err    error
}

func (f *fakePromoLookup) FindPromoCode(_ context.Context, _, code string) (domainPromo.PromoCode, bool, error) {
	if f.err != nil {
		return domainPromo.PromoCode{}, false, f.err
	}
	promo, ok := f.promos[code]
	return promo, ok, nil
}

func TestExecuteSubmitOrderRejectsBadCarts(t *testing.T) {
	tests := []struct {
		name  string
		items []OrderItemInput
		want  error
	}{
		{"empty cart", nil, ErrEmptyCart},
		{"zero quantity", []OrderItemInput{{ProductID: "p1", Quantity: 0}}, ErrInvalidQuantity},
		{"missing product", []OrderItemInput{{Quantity: 2}}, ErrInvalidQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mutator := newFakeMutator()
			err := ExecuteSubmitOrder(context.Background(), SubmitOrderInput{Items: tt.items}, SubmitOrderDeps{Mutator: mutator})
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if mutator.mutationCount() != 0 {
				t.Error("invalid cart must not reach the upstream")
			}
		})
	}
}

func TestExecuteSubmitOrderPromoChecks(t *testing.T) {
	now := time.Now()
	promos := &fakePromoLookup{promos: map[string]domainPromo.PromoCode{
		"SUMMER10": {Code: "SUMMER10", DiscountValue: decimal.NewFromInt(10)},
		"EXPIRED": {
			Code:          "EXPIRED",
			DiscountValue: decimal.NewFromInt(20),
			ValidTo:       now.Add(-24 * time.Hour),
		},
	}}
	cart := []OrderItemInput{{ProductID: "p1", Quantity: 1}}

	tests := []struct {
		name string
		code string
		want error
	}{
		{"unknown code", "NOPE", ErrUnknownPromoCode},
		{"expired code", "EXPIRED", ErrExpiredPromoCode},
		{"active code", "SUMMER10", nil},
		{"no code", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mutator := newFakeMutator()
			err := ExecuteSubmitOrder(context.Background(), SubmitOrderInput{Items: cart, PromoCode: tt.code},
				SubmitOrderDeps{Mutator: mutator, Promos: promos, Lister: mutator, Cache: &fakeCacheStore{}})
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestExecuteSubmitOrderPromoLookupFailureIsNotFatal(t *testing.T) {
	mutator := newFakeMutator()
	promos := &fakePromoLookup{err: errUpstreamDown}

	err := ExecuteSubmitOrder(context.Background(), SubmitOrderInput{
		Items:     []OrderItemInput{{ProductID: "p1", Quantity: 1}},
		PromoCode: "SUMMER10",
	}, SubmitOrderDeps{Mutator: mutator, Promos: promos, Lister: mutator, Cache: &fakeCacheStore{}})
	if err != nil {
		t.Errorf("ExecuteSubmitOrder: %v", err)
	}
	// The code still rides along for the upstream to revalidate.
	body, ok := mutator.lastCall().Body.(map[string]any)
	if !ok || body["promo_code"] != "SUMMER10" {
		t.Errorf("body = %v, want promo_code preserved", mutator.lastCall().Body)
	}
}

func TestExecuteSubmitOrderRefreshesOrderSection(t *testing.T) {
	mutator := newFakeMutator()
	store := &fakeCacheStore{}

	err := ExecuteSubmitOrder(context.Background(), SubmitOrderInput{
		Items: []OrderItemInput{{ProductID: "p1", Quantity: 2}, {ProductID: "p2", Quantity: 1}},
	}, SubmitOrderDeps{Mutator: mutator, Lister: mutator, Cache: store})
	if err != nil {
		t.Fatalf("ExecuteSubmitOrder: %v", err)
	}

	if got := mutator.lastCall().URL; got != mutator.endpoints.User().Orders.Add() {
		t.Errorf("posted to %q", got)
	}
	if sections := store.replacedSections(); len(sections) != 1 || sections[0] != sectionOrders {
		t.Errorf("refreshed sections = %v", sections)
	}
}
