package orchestrators

import (
	"context"
	"errors"
	"log/slog"
)

// ErrUnknownBulkAction is returned per row when the action name is not one
// of the declared constants.
var ErrUnknownBulkAction = errors.New("unknown bulk action")

// BulkActionApprove, BulkActionCancel, and BulkActionDelete are the
// supported bulk table actions.
const (
	BulkActionApprove = "approve"
	BulkActionCancel  = "cancel"
	BulkActionDelete  = "delete"
)

// BulkRequestInput carries one bulk action over selected request rows.
type BulkRequestInput struct {
	Token      string
	Kind       string
	Action     string
	RequestIDs []string
}

// BulkItemResult reports the outcome for one row.
type BulkItemResult struct {
	RequestID string
	Err       error
}

// BulkRequestResult summarizes a bulk action.
type BulkRequestResult struct {
	Succeeded int
	Failed    int
	Items     []BulkItemResult
}

// ExecuteBulkRequestAction applies one action to each selected request in
// order. There is no atomicity across rows: each row succeeds or fails on
// its own and the summary reports both counts, mirroring what the upstream
// can actually guarantee.
// POST: len(Items) == len(input.RequestIDs); Succeeded+Failed == len(Items)
func ExecuteBulkRequestAction(ctx context.Context, input BulkRequestInput, deps DecideRequestDeps) BulkRequestResult {
	result := BulkRequestResult{Items: make([]BulkItemResult, 0, len(input.RequestIDs))}

	for _, id := range input.RequestIDs {
		var err error
		switch input.Action {
		case BulkActionApprove:
			err = ExecuteDecideRequest(ctx, DecideRequestInput{
				Token: input.Token, Kind: input.Kind, RequestID: id, Approve: true,
			}, deps)
		case BulkActionCancel:
			err = ExecuteDecideRequest(ctx, DecideRequestInput{
				Token: input.Token, Kind: input.Kind, RequestID: id,
			}, deps)
		case BulkActionDelete:
			err = ExecuteDeleteRequest(ctx, input.Token, input.Kind, id, deps)
		default:
			err = ErrUnknownBulkAction
		}

		result.Items = append(result.Items, BulkItemResult{RequestID: id, Err: err})
		if err != nil {
			result.Failed++
		} else {
			result.Succeeded++
		}
	}

	slog.Info("admin_event", "event", "bulk_request_action",
		"kind", input.Kind, "action", input.Action,
		"succeeded", result.Succeeded, "failed", result.Failed)
	return result
}
