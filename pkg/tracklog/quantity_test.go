package tracklog

import (
	"strings"
	"testing"
)

func TestQuantityConfigForUnknownFallsBackToOther(t *testing.T) {
	cfg := QuantityConfigFor(VesselCategory("Hookah"))
	if cfg.Type != QuantityDecimal || cfg.Unit != "units" {
		t.Errorf("expected Other config, got %+v", cfg)
	}
	if cfg.Step != 0.1 {
		t.Errorf("expected step 0.1, got %v", cfg.Step)
	}
}

func TestSizeOrdinalBijection(t *testing.T) {
	q, err := MakeSizeQuantity(VesselBong, "medium")
	if err != nil {
		t.Fatalf("MakeSizeQuantity() error = %v", err)
	}
	if q.Amount != 2 || q.Unit != "bowl size" || q.Type != QuantitySizeCategory {
		t.Errorf("unexpected quantity: %+v", q)
	}
	if got := FormatQuantity(q); got != "medium bowl size" {
		t.Errorf("FormatQuantity() = %q, want %q", got, "medium bowl size")
	}
}

func TestMakeSizeQuantityUnknownLabel(t *testing.T) {
	if _, err := MakeSizeQuantity(VesselBong, "gigantic"); err == nil {
		t.Error("expected error for unknown size label")
	}
}

func TestQuantityRoundTripUnit(t *testing.T) {
	// The formatted quantity must always carry the category's configured
	// unit; the unit is never stored independently of category.
	for _, cat := range Categories {
		cfg := QuantityConfigFor(cat)

		if cfg.Type == QuantitySizeCategory {
			for _, label := range SizeLabels {
				q, err := MakeSizeQuantity(cat, label)
				if err != nil {
					t.Fatalf("%s/%s: %v", cat, label, err)
				}
				if q.Unit != cfg.Unit {
					t.Errorf("%s/%s: unit = %q, want %q", cat, label, q.Unit, cfg.Unit)
				}
				if !strings.Contains(FormatQuantity(q), cfg.Unit) {
					t.Errorf("%s/%s: formatted %q missing unit", cat, label, FormatQuantity(q))
				}
			}
		}

		for _, amount := range []float64{0.5, 1, 2.5, 10} {
			q := MakeQuantity(cat, amount)
			if q.Unit != cfg.Unit {
				t.Errorf("%s/%v: unit = %q, want %q", cat, amount, q.Unit, cfg.Unit)
			}
			if !strings.Contains(FormatQuantity(q), cfg.Unit) {
				t.Errorf("%s/%v: formatted %q missing unit", cat, amount, FormatQuantity(q))
			}
		}
	}
}

func TestFormatQuantityDecimal(t *testing.T) {
	q := MakeQuantity(VesselJoint, 0.5)
	if got := FormatQuantity(q); got != "0.5 joint portion" {
		t.Errorf("FormatQuantity() = %q", got)
	}
}

func TestCategoryFromString(t *testing.T) {
	if got := CategoryFromString("dab rig"); got != VesselDabRig {
		t.Errorf("CategoryFromString(dab rig) = %q", got)
	}
	if got := CategoryFromString("mystery"); got != VesselOther {
		t.Errorf("CategoryFromString(mystery) = %q", got)
	}
}
