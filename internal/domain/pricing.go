package domain

// ItemPricing is the pricing input for one order line.
type ItemPricing struct {
	UnitPrice int64
	Quantity  int
}

// OrderTotals is the outcome of ComputeOrderTotals. Amounts are in cents.
type OrderTotals struct {
	Subtotals []int64
	Gross     int64
	Discount  int64
	Total     int64
}

// ComputeOrderTotals prices every line and applies the discount, never going below zero.
func ComputeOrderTotals(items []ItemPricing, discount int64) (OrderTotals, error) {
	if discount < 0 {
		return OrderTotals{}, ValidationError{Field: "discount", Msg: "must not be negative"}
	}

	out := OrderTotals{Subtotals: make([]int64, len(items))}
	for i, it := range items {
		if it.Quantity < 1 {
			return OrderTotals{}, ValidationError{Field: "items.quantity", Msg: "must be at least 1"}
		}
		if it.UnitPrice < 0 {
			return OrderTotals{}, ValidationError{Field: "items.unitPrice", Msg: "must not be negative"}
		}
		sub := it.UnitPrice * int64(it.Quantity)
		out.Subtotals[i] = sub
		out.Gross += sub
	}

	if discount > out.Gross {
		return OrderTotals{}, ValidationError{Field: "discount", Msg: "must not exceed the order amount"}
	}
	out.Discount = discount
	out.Total = out.Gross - discount
	return out, nil
}

// PaymentStatusFor derives the payment status from what has been paid so far.
func PaymentStatusFor(total, paid int64) string {
	switch {
	case paid > 0 && paid >= total:
		return PaymentPaid
	case paid > 0:
		return PaymentPartial
	case total == 0:
		return PaymentPaid
	default:
		return PaymentUnpaid
	}
}

const (
	PaymentUnpaid  = "unpaid"
	PaymentPartial = "partial"
	PaymentPaid    = "paid"
)
