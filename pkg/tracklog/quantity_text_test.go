package tracklog

import "testing"

func TestParseQuantityText(t *testing.T) {
	tests := []struct {
		raw  string
		cat  VesselCategory
		want QuantityValue
	}{
		{"medium", VesselBong, QuantityValue{2, "bowl size", QuantitySizeCategory}},
		{"Large", VesselPipe, QuantityValue{3, "bowl size", QuantitySizeCategory}},
		{"tiny", VesselDabRig, QuantityValue{0, "dab size", QuantitySizeCategory}},
		{"hits_4", VesselPen, QuantityValue{4, "puffs", QuantityDecimal}},
		{"HITS_12", VesselPen, QuantityValue{12, "puffs", QuantityDecimal}},
		{"10mg", VesselEdible, QuantityValue{10, "mg THC", QuantityMilligrams}},
		{"2.5", VesselTincture, QuantityValue{2.5, "mg THC", QuantityMilligrams}},
		{"0.5", VesselJoint, QuantityValue{0.5, "joint portion", QuantityDecimal}},
		{"half (0.5)", VesselBlunt, QuantityValue{0.5, "joint portion", QuantityDecimal}},
		{"0.75", VesselBong, QuantityValue{0.75, "bowl size", QuantityDecimal}},
		{"", VesselJoint, QuantityValue{1, "units", QuantityDecimal}},
		{"some", VesselOther, QuantityValue{1, "units", QuantityDecimal}},
	}
	for _, tt := range tests {
		if got := ParseQuantityText(tt.raw, tt.cat); got != tt.want {
			t.Errorf("ParseQuantityText(%q, %s) = %+v, want %+v", tt.raw, tt.cat, got, tt.want)
		}
	}
}
