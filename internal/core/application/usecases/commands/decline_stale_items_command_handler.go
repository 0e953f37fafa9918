package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// DeclineStaleItemsResult summarizes one auto-decline pass.
type DeclineStaleItemsResult struct {
	Orders   int
	Declined int
	// Skipped counts orders another writer changed after they were loaded.
	Skipped int
}

// DeclineStaleItemsCommandHandler cancels, as System, every item that stayed Pending
// and untouched for longer than the policy allows.
//
// The whole pass is one transaction. An order that lost a concurrency race is rolled
// back to its savepoint and skipped: whoever won already handled it. Notifications go
// out after commit, one per customer.
type DeclineStaleItemsCommandHandler struct {
	uowFactory BatchOrderUoWFactory
	policy     services.AutoDeclinePolicy
	clock      ports.Clock
	notifier   CancellationNotifier
}

func NewDeclineStaleItemsCommandHandler(
	uowFactory BatchOrderUoWFactory,
	policy services.AutoDeclinePolicy,
	clock ports.Clock,
	notifier CancellationNotifier,
) DeclineStaleItemsCommandHandler {
	return DeclineStaleItemsCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clock,
		notifier:   notifier,
	}
}

func (h *DeclineStaleItemsCommandHandler) Handle(ctx context.Context, cmd DeclineStaleItemsCommand) (DeclineStaleItemsResult, error) {
	if err := cmd.Validate(); err != nil {
		return DeclineStaleItemsResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DeclineStaleItemsResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock.Now()
	repo := uow.OrderRepository()
	orders, err := repo.ListWithStalePendingDetails(ctx, h.policy.Cutoff(now))
	if err != nil {
		return DeclineStaleItemsResult{}, err
	}

	var (
		result DeclineStaleItemsResult
		events []order.DetailCancelled
	)
	for i, o := range orders {
		declined, declineErr := h.policy.Decline(o, now)
		if declineErr != nil {
			return DeclineStaleItemsResult{}, declineErr
		}
		if declined == 0 {
			continue
		}

		savepoint := fmt.Sprintf("decline_%d", i)
		if err = uow.SavePoint(ctx, savepoint); err != nil {
			return DeclineStaleItemsResult{}, err
		}
		if err = repo.Update(ctx, o); err != nil {
			if !errors.Is(err, errs.ErrConcurrencyConflict) {
				return DeclineStaleItemsResult{}, err
			}
			if err = uow.RollbackTo(ctx, savepoint); err != nil {
				return DeclineStaleItemsResult{}, err
			}
			result.Skipped++
			continue
		}

		result.Orders++
		result.Declined += declined
		events = append(events, o.Events()...)
	}

	if err = uow.Commit(ctx); err != nil {
		return DeclineStaleItemsResult{}, err
	}

	h.notifier.Notify(ctx, events)
	return result, nil
}
