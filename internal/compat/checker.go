// Package compat provides the compatibility checker for StayKit Core.
//
// The checker scans a candidate product selection for mutually-exclusive
// or incomplete combinations and emits human-readable warnings. It is
// purely advisory: it never mutates or removes products, and the caller
// decides whether a warning blocks checkout or is merely displayed.
//
// The rule set is fixed in code. Rules operate on product categories and
// the well-known feature tags declared in the catalog package, never on
// product names or SKUs.
package compat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/staykit/staykit-core/internal/catalog"
)

// Warning is a single non-blocking advisory about a product combination.
type Warning struct {
	// Message is a human-readable description of the conflict.
	Message string `json:"message"`

	// ProductIDs identifies the offending products so the caller can
	// highlight them. IDs are de-duplicated and sorted ascending.
	ProductIDs []string `json:"product_ids"`
}

// rule is a single compatibility check over a selection.
type rule func(selected []catalog.Product) *Warning

// rules is the fixed rule set, evaluated in order.
var rules = []rule{
	checkLockPowerConflict,
	checkKioskDispenserMissing,
}

// Check scans the selection against the fixed rule set.
//
// Duplicate entries of the same product are legal (quantity multiplies
// cost) and never flagged by themselves. Check is a pure function: it
// never mutates the input and returns an empty slice, not an error,
// when no rule fires.
func Check(selected []catalog.Product) []Warning {
	warnings := []Warning{}
	for _, r := range rules {
		if w := r(selected); w != nil {
			warnings = append(warnings, *w)
		}
	}
	return warnings
}

// checkLockPowerConflict flags a selection containing both battery-powered
// and wired locks. The two power types are mutually exclusive within one
// installation: they need different door preparation and different
// maintenance schedules.
func checkLockPowerConflict(selected []catalog.Product) *Warning {
	battery := idsWithFeature(selected, catalog.CategoryLock, catalog.FeatureBatteryPowered)
	wired := idsWithFeature(selected, catalog.CategoryLock, catalog.FeatureWired)

	if len(battery) == 0 || len(wired) == 0 {
		return nil
	}

	return &Warning{
		Message: fmt.Sprintf(
			"battery-powered and wired locks selected together (%s vs %s); pick one power type per installation",
			strings.Join(battery, ", "), strings.Join(wired, ", "),
		),
		ProductIDs: dedupeSorted(append(battery, wired...)),
	}
}

// checkKioskDispenserMissing flags a card-dispensing kiosk without a card
// dispenser unit anywhere in the selection.
func checkKioskDispenserMissing(selected []catalog.Product) *Warning {
	kiosks := idsWithFeature(selected, catalog.CategoryKiosk, catalog.FeatureCardDispensing)
	if len(kiosks) == 0 {
		return nil
	}

	for _, p := range selected {
		if p.HasFeature(catalog.FeatureCardDispenser) {
			return nil
		}
	}

	return &Warning{
		Message: fmt.Sprintf(
			"kiosk with card dispensing selected (%s) but no card dispenser unit is in the selection",
			strings.Join(kiosks, ", "),
		),
		ProductIDs: dedupeSorted(kiosks),
	}
}

// idsWithFeature returns the IDs of selected products in the given
// category carrying the given feature tag, in selection order.
func idsWithFeature(selected []catalog.Product, cat catalog.Category, tag string) []string {
	var ids []string
	for _, p := range selected {
		if p.Category == cat && p.HasFeature(tag) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// dedupeSorted returns the unique IDs sorted ascending.
func dedupeSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
