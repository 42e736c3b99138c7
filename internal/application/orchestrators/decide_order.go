package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	domainOrder "fitfront/internal/domain/order"
	"fitfront/internal/reconcile"
)

// ErrOrderFinished is returned when approving or cancelling an order that
// already reached a terminal state.
var ErrOrderFinished = errors.New("only pending orders can be approved or cancelled")

// DecideOrderInput identifies the order and the decision.
type DecideOrderInput struct {
	Token   string
	OrderID string
	Approve bool
}

// DecideOrderDeps holds dependencies for order decisions.
type DecideOrderDeps struct {
	Mutator Mutator
	Fetcher RequestFetcher
	Lister  Lister
	Cache   CacheStore
}

// ExecuteDecideOrder approves or cancels a pending order from the back
// office. The live status is re-fetched before posting the transition.
func ExecuteDecideOrder(ctx context.Context, input DecideOrderInput, deps DecideOrderDeps) error {
	routes := deps.Mutator.Endpoints().Admin().Orders

	payload, err := deps.Fetcher.FetchOne(ctx, input.Token, routes.GetByID(input.OrderID))
	if err != nil {
		return err
	}
	rec := reconcile.Reconcile(reconcile.SectionOrders, payload, input.OrderID)
	if rec.Status != domainOrder.StatusPending {
		return ErrOrderFinished
	}

	url := routes.Cancel(input.OrderID)
	if input.Approve {
		url = routes.Approve(input.OrderID)
	}
	result, err := deps.Mutator.Mutate(ctx, input.Token, http.MethodPost, url, nil)
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}

	slog.Info("admin_event", "event", "order_decided", "id", input.OrderID, "approved", input.Approve)
	refreshSection(ctx, deps.Lister, deps.Cache, input.Token, routes.List(), sectionOrders)
	return nil
}

// ExecuteDeleteOrder removes an order record.
func ExecuteDeleteOrder(ctx context.Context, token, id string, deps DecideOrderDeps) error {
	routes := deps.Mutator.Endpoints().Admin().Orders
	result, err := deps.Mutator.Mutate(ctx, token, http.MethodPost, routes.Delete(id), nil)
	if err != nil {
		return err
	}
	if err := mutationError(result); err != nil {
		return err
	}
	slog.Info("admin_event", "event", "order_deleted", "id", id)
	refreshSection(ctx, deps.Lister, deps.Cache, token, routes.List(), sectionOrders)
	return nil
}
