package commands

import (
	"context"
	"log/slog"

	"routeengine/internal/core/domain/model/kernel"
)

// BulkAssignResult summarizes a bulk assignment. A client counts as
// succeeded when its assignment was applied, even if propagation was
// partial; those results are also listed in Partial.
type BulkAssignResult struct {
	Succeeded int
	Failed    int
	Errors    map[kernel.UUID]error
	Partial   []AssignClientResult
}

// BulkAssignClientsCommandHandler runs one independent assignment per client.
// There is no cross-client atomicity: a failure for one client does not
// undo the others.
type BulkAssignClientsCommandHandler struct {
	assign AssignClientCommandHandler
	logger *slog.Logger
}

// NewBulkAssignClientsCommandHandler wraps the single-client handler.
func NewBulkAssignClientsCommandHandler(assign AssignClientCommandHandler, logger *slog.Logger) BulkAssignClientsCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return BulkAssignClientsCommandHandler{
		assign: assign,
		logger: logger.With("component", "bulk_assign"),
	}
}

// Handle processes every client and returns the summary. It only returns an
// error for an invalid command or a cancelled context.
func (h BulkAssignClientsCommandHandler) Handle(ctx context.Context, cmd BulkAssignClientsCommand) (BulkAssignResult, error) {
	if err := cmd.Validate(); err != nil {
		return BulkAssignResult{}, err
	}

	result := BulkAssignResult{Errors: make(map[kernel.UUID]error)}
	for _, clientID := range cmd.ClientIDs() {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		single, err := NewAssignClientCommand(clientID, cmd.DriverID(), cmd.Scope())
		if err != nil {
			result.Failed++
			result.Errors[clientID] = err
			continue
		}

		res, err := h.assign.Handle(ctx, single)
		if err != nil {
			h.logger.WarnContext(ctx, "client assignment failed", "client_id", clientID.String(), "error", err)
			result.Failed++
			result.Errors[clientID] = err
			continue
		}

		result.Succeeded++
		if res.Partial() {
			result.Partial = append(result.Partial, res)
		}
	}

	h.logger.InfoContext(ctx, "bulk assignment finished",
		"succeeded", result.Succeeded,
		"failed", result.Failed,
		"partial", len(result.Partial),
	)
	return result, nil
}
