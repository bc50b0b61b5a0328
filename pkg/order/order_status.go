package order

import "Restaurant-POS-Backend/domain"

var orderFlow = map[domain.OrderStatus]int{
	domain.OrderPending:   0,
	domain.OrderPreparing: 1,
	domain.OrderReady:     2,
	domain.OrderServed:    3,
	domain.OrderCompleted: 4,
}

var itemFlow = map[domain.ItemStatus]int{
	domain.ItemPending:   0,
	domain.ItemPreparing: 1,
	domain.ItemReady:     2,
	domain.ItemServed:    3,
}

// checkOrderTransition allows forward moves along the happy path (steps may be
// skipped) and cancellation of any open order. Voiding goes through the void
// workflow only.
func checkOrderTransition(from, to domain.OrderStatus) error {
	if _, ok := orderFlow[to]; !ok && to != domain.OrderCancelled && to != domain.OrderVoided {
		return domain.Errorf(domain.ErrOrderStatusUnknown, "%q", to)
	}
	if from == domain.OrderCompleted && to == domain.OrderCompleted {
		return domain.ErrOrderAlreadyCompleted
	}
	if from.IsTerminal() {
		return domain.Errorf(domain.ErrOrderTerminal, "order is %s", from)
	}

	switch to {
	case domain.OrderVoided:
		return domain.ErrVoidRequiresApproval
	case domain.OrderCancelled:
		return nil
	}

	if orderFlow[to] <= orderFlow[from] {
		return domain.Errorf(domain.ErrInvalidTransition, "%s -> %s", from, to)
	}
	return nil
}

// checkItemTransition allows forward kitchen progress and voiding of any
// non-voided item. Voided items never change again.
func checkItemTransition(from, to domain.ItemStatus) error {
	if _, ok := itemFlow[to]; !ok && to != domain.ItemVoided {
		return domain.Errorf(domain.ErrOrderItemStatusUnknown, "%q", to)
	}
	if from == domain.ItemVoided {
		return domain.ErrOrderItemVoided
	}
	if to == domain.ItemVoided {
		return nil
	}
	if itemFlow[to] <= itemFlow[from] {
		return domain.Errorf(domain.ErrInvalidItemTransition, "%s -> %s", from, to)
	}
	return nil
}
