package compat

import (
	"reflect"
	"testing"

	"github.com/staykit/staykit-core/internal/catalog"
)

func batteryLock(id string) catalog.Product {
	return catalog.Product{
		ID:       id,
		Name:     "Battery Lock",
		Category: catalog.CategoryLock,
		Features: []string{catalog.FeatureBatteryPowered},
	}
}

func wiredLock(id string) catalog.Product {
	return catalog.Product{
		ID:       id,
		Name:     "Wired Lock",
		Category: catalog.CategoryLock,
		Features: []string{catalog.FeatureWired},
	}
}

func dispensingKiosk(id string) catalog.Product {
	return catalog.Product{
		ID:       id,
		Name:     "Check-in Kiosk",
		Category: catalog.CategoryKiosk,
		Features: []string{catalog.FeatureCardDispensing},
	}
}

func cardDispenser(id string) catalog.Product {
	return catalog.Product{
		ID:       id,
		Name:     "Card Dispenser",
		Category: catalog.CategoryOther,
		Features: []string{catalog.FeatureCardDispenser},
	}
}

func TestCheck_NoWarnings(t *testing.T) {
	selected := []catalog.Product{
		batteryLock("lock-a"),
		{ID: "sensor-1", Category: catalog.CategorySensor},
	}

	warnings := Check(selected)
	if warnings == nil {
		t.Fatal("Check() = nil, want empty slice")
	}
	if len(warnings) != 0 {
		t.Errorf("Check() = %d warnings, want 0", len(warnings))
	}
}

func TestCheck_EmptySelection(t *testing.T) {
	if got := Check(nil); len(got) != 0 {
		t.Errorf("Check(nil) = %d warnings, want 0", len(got))
	}
}

func TestCheck_LockPowerConflict(t *testing.T) {
	selected := []catalog.Product{
		wiredLock("lock-wired-01"),
		batteryLock("lock-battery-01"),
	}

	warnings := Check(selected)
	if len(warnings) != 1 {
		t.Fatalf("Check() = %d warnings, want exactly 1", len(warnings))
	}

	want := []string{"lock-battery-01", "lock-wired-01"}
	if !reflect.DeepEqual(warnings[0].ProductIDs, want) {
		t.Errorf("ProductIDs = %v, want %v", warnings[0].ProductIDs, want)
	}
	if warnings[0].Message == "" {
		t.Error("warning message is empty")
	}
}

func TestCheck_SamePowerTypeTwiceIsLegal(t *testing.T) {
	// Two battery locks (even the same product twice) are not a conflict;
	// quantity just multiplies cost.
	selected := []catalog.Product{
		batteryLock("lock-a"),
		batteryLock("lock-a"),
		batteryLock("lock-b"),
	}

	if got := Check(selected); len(got) != 0 {
		t.Errorf("Check() = %d warnings, want 0", len(got))
	}
}

func TestCheck_KioskWithoutDispenser(t *testing.T) {
	selected := []catalog.Product{
		dispensingKiosk("kiosk-01"),
	}

	warnings := Check(selected)
	if len(warnings) != 1 {
		t.Fatalf("Check() = %d warnings, want exactly 1", len(warnings))
	}
	if !reflect.DeepEqual(warnings[0].ProductIDs, []string{"kiosk-01"}) {
		t.Errorf("ProductIDs = %v, want [kiosk-01]", warnings[0].ProductIDs)
	}
}

func TestCheck_KioskWithDispenser(t *testing.T) {
	selected := []catalog.Product{
		dispensingKiosk("kiosk-01"),
		cardDispenser("dispenser-01"),
	}

	if got := Check(selected); len(got) != 0 {
		t.Errorf("Check() = %d warnings, want 0", len(got))
	}
}

func TestCheck_MultipleRulesFire(t *testing.T) {
	selected := []catalog.Product{
		wiredLock("lock-wired-01"),
		batteryLock("lock-battery-01"),
		dispensingKiosk("kiosk-01"),
	}

	warnings := Check(selected)
	if len(warnings) != 2 {
		t.Fatalf("Check() = %d warnings, want 2", len(warnings))
	}
}

func TestCheck_DoesNotMutateInput(t *testing.T) {
	selected := []catalog.Product{
		wiredLock("lock-wired-01"),
		batteryLock("lock-battery-01"),
	}
	before := make([]catalog.Product, len(selected))
	copy(before, selected)

	Check(selected)

	if !reflect.DeepEqual(selected, before) {
		t.Error("Check() mutated its input")
	}
}

func TestCheck_NonLockPowerTagsIgnored(t *testing.T) {
	// Power-type tags on non-lock categories don't trigger the lock rule.
	selected := []catalog.Product{
		{ID: "sensor-1", Category: catalog.CategorySensor, Features: []string{catalog.FeatureBatteryPowered}},
		{ID: "switch-1", Category: catalog.CategorySwitch, Features: []string{catalog.FeatureWired}},
	}

	if got := Check(selected); len(got) != 0 {
		t.Errorf("Check() = %d warnings, want 0", len(got))
	}
}
