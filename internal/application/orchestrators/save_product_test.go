package orchestrators

import (
	"context"
	"errors"
	"testing"

	"fitfront/internal/adapters/upstream"
	domainProduct "fitfront/internal/domain/product"

	"github.com/shopspring/decimal"
)

func TestExecuteSaveProductValidatesBeforeUpstream(t *testing.T) {
	mutator := newFakeMutator()
	err := ExecuteSaveProduct(context.Background(), SaveProductInput{
		Name:  "   ",
		Price: decimal.NewFromInt(10),
	}, CatalogDeps{Mutator: mutator})

	if !errors.Is(err, domainProduct.ErrEmptyName) {
		t.Errorf("err = %v, want ErrEmptyName", err)
	}
	if mutator.mutationCount() != 0 {
		t.Error("invalid product must not reach the upstream")
	}
}

func TestExecuteSaveProductAddVsUpdateURL(t *testing.T) {
	mutator := newFakeMutator()
	routes := mutator.endpoints.Admin().Products
	deps := CatalogDeps{Mutator: mutator, Lister: mutator, Cache: &fakeCacheStore{}}

	input := SaveProductInput{Name: "Whey Protein", Price: decimal.NewFromFloat(49.99), Stock: 5}
	if err := ExecuteSaveProduct(context.Background(), input, deps); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := mutator.lastCall().URL; got != routes.Add() {
		t.Errorf("add posted to %q", got)
	}

	input.ID = "p1"
	if err := ExecuteSaveProduct(context.Background(), input, deps); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := mutator.lastCall().URL; got != routes.Update("p1") {
		t.Errorf("update posted to %q", got)
	}
}

func TestExecuteSaveProductRefreshesCache(t *testing.T) {
	mutator := newFakeMutator()
	mutator.lists[mutator.endpoints.Admin().Products.List()] = []map[string]any{
		{"id": "p1", "name": "Whey Protein"},
	}
	store := &fakeCacheStore{}

	err := ExecuteSaveProduct(context.Background(), SaveProductInput{
		Name: "Whey Protein", Price: decimal.NewFromFloat(49.99),
	}, CatalogDeps{Mutator: mutator, Lister: mutator, Cache: store})
	if err != nil {
		t.Fatalf("ExecuteSaveProduct: %v", err)
	}

	if sections := store.replacedSections(); len(sections) != 1 || sections[0] != sectionProducts {
		t.Errorf("refreshed sections = %v", sections)
	}
}

func TestExecuteSaveProductEnvelopeFailure(t *testing.T) {
	mutator := newFakeMutator()
	routes := mutator.endpoints.Admin().Products
	mutator.results[routes.Add()] = upstream.MutationResult{Status: "error", Message: "name already taken"}

	err := ExecuteSaveProduct(context.Background(), SaveProductInput{
		Name: "Whey Protein", Price: decimal.NewFromInt(10),
	}, CatalogDeps{Mutator: mutator})
	if err == nil || err.Error() != "name already taken" {
		t.Errorf("err = %v, want upstream envelope message", err)
	}
}

func TestExecuteDeleteProduct(t *testing.T) {
	mutator := newFakeMutator()
	routes := mutator.endpoints.Admin().Products
	store := &fakeCacheStore{}

	err := ExecuteDeleteProduct(context.Background(), "", "p1", CatalogDeps{Mutator: mutator, Lister: mutator, Cache: store})
	if err != nil {
		t.Fatalf("ExecuteDeleteProduct: %v", err)
	}
	if got := mutator.lastCall().URL; got != routes.Delete("p1") {
		t.Errorf("posted to %q", got)
	}
}
