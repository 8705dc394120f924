// Package pricing provides the volume-discount price calculator for
// StayKit Core.
//
// Pricing is a pure function over a quantified product list and a room
// count. The discount rate is a step function of the room count alone,
// never of the subtotal, and every breakdown is recomputed on call;
// nothing is cached.
package pricing

import "github.com/staykit/staykit-core/internal/catalog"

// LineItem is one quantified product in a bundle. Quantity is per room;
// the room count multiplies into the line total.
type LineItem struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Breakdown is the full price decomposition for a bundle.
//
// Invariants: Total = Subtotal - Discount, Discount = Subtotal *
// DiscountRate, PerRoom = Total / roomCount (after clamping). Values are
// exact decimals; rounding to cents is the presentation layer's job.
type Breakdown struct {
	Subtotal     float64 `json:"subtotal"`
	DiscountRate float64 `json:"discount_rate"`
	Discount     float64 `json:"discount"`
	Total        float64 `json:"total"`
	PerRoom      float64 `json:"per_room"`
}

// Volume discount tiers. Thresholds are inclusive at the lower bound.
const (
	tierSmallRooms  = 20
	tierMediumRooms = 50
	tierLargeRooms  = 100

	tierSmallRate  = 0.05
	tierMediumRate = 0.10
	tierLargeRate  = 0.15
)

// DiscountRate returns the volume discount rate for a room count.
//
// The rate is non-decreasing in roomCount and piecewise-constant:
// below 20 rooms there is no discount, then 5%, 10% and 15% at the
// 20/50/100 thresholds.
func DiscountRate(roomCount int) float64 {
	switch {
	case roomCount >= tierLargeRooms:
		return tierLargeRate
	case roomCount >= tierMediumRooms:
		return tierMediumRate
	case roomCount >= tierSmallRooms:
		return tierSmallRate
	default:
		return 0
	}
}

// Calculate computes the price breakdown for a bundle.
//
// roomCount is clamped to a minimum of 1 and negative quantities to 0
// before computing, so division by zero cannot occur and a zero-quantity
// line simply contributes nothing. Calculate is pure and idempotent:
// identical inputs always yield identical output.
func Calculate(items []LineItem, roomCount int) Breakdown {
	if roomCount < 1 {
		roomCount = 1
	}

	var subtotal float64
	for _, item := range items {
		qty := item.Quantity
		if qty < 0 {
			qty = 0
		}
		subtotal += item.Product.Price * float64(qty) * float64(roomCount)
	}

	rate := DiscountRate(roomCount)
	discount := subtotal * rate
	total := subtotal - discount

	return Breakdown{
		Subtotal:     subtotal,
		DiscountRate: rate,
		Discount:     discount,
		Total:        total,
		PerRoom:      total / float64(roomCount),
	}
}
