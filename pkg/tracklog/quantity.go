package tracklog

import (
	"fmt"
	"strconv"
	"strings"
)

// QuantityType tags how a QuantityValue's Amount is interpreted.
type QuantityType string

const (
	QuantityDecimal      QuantityType = "decimal"
	QuantityMilligrams   QuantityType = "milligrams"
	QuantitySizeCategory QuantityType = "size_category"
)

// VesselCategory is the fixed consumption-method taxonomy.
type VesselCategory string

const (
	VesselBong     VesselCategory = "Bong"
	VesselJoint    VesselCategory = "Joint"
	VesselPipe     VesselCategory = "Pipe"
	VesselPen      VesselCategory = "Pen"
	VesselEdible   VesselCategory = "Edible"
	VesselTincture VesselCategory = "Tincture"
	VesselPreRoll  VesselCategory = "Pre-roll"
	VesselBlunt    VesselCategory = "Blunt"
	VesselDabRig   VesselCategory = "Dab Rig"
	VesselOther    VesselCategory = "Other"
)

// Categories lists every vessel category in display order.
var Categories = []VesselCategory{
	VesselBong, VesselJoint, VesselPipe, VesselPen, VesselEdible,
	VesselTincture, VesselPreRoll, VesselBlunt, VesselDabRig, VesselOther,
}

// SizeLabels is the ordered size scale for size-category quantities.
// A label's index in this slice is its ordinal in QuantityValue.Amount.
var SizeLabels = []string{"tiny", "small", "medium", "large"}

// QuantityConfig describes how quantities are entered and stored for a
// vessel category.
type QuantityConfig struct {
	Type        QuantityType
	Unit        string
	Placeholder float64
	Step        float64
}

// AccessoryConfig describes which accessory names a category accepts.
type AccessoryConfig struct {
	Prefixes    []string
	AllowNA     bool
	AllowCustom bool
}

var quantityConfigs = map[VesselCategory]QuantityConfig{
	VesselBong:     {Type: QuantitySizeCategory, Unit: "bowl size"},
	VesselPipe:     {Type: QuantitySizeCategory, Unit: "bowl size"},
	VesselDabRig:   {Type: QuantitySizeCategory, Unit: "dab size"},
	VesselJoint:    {Type: QuantityDecimal, Unit: "joint portion", Placeholder: 0.5, Step: 0.25},
	VesselPreRoll:  {Type: QuantityDecimal, Unit: "joint portion", Placeholder: 1, Step: 0.25},
	VesselBlunt:    {Type: QuantityDecimal, Unit: "joint portion", Placeholder: 0.5, Step: 0.25},
	VesselPen:      {Type: QuantityDecimal, Unit: "puffs", Placeholder: 3, Step: 1},
	VesselEdible:   {Type: QuantityMilligrams, Unit: "mg THC", Placeholder: 10, Step: 2.5},
	VesselTincture: {Type: QuantityMilligrams, Unit: "mg THC", Placeholder: 5, Step: 2.5},
	VesselOther:    {Type: QuantityDecimal, Unit: "units", Placeholder: 1, Step: 0.1},
}

var accessoryConfigs = map[VesselCategory]AccessoryConfig{
	VesselBong:     {Prefixes: []string{"bowl_", "ash_catcher_"}, AllowCustom: true},
	VesselPipe:     {Prefixes: []string{"bowl_", "screen_"}, AllowNA: true, AllowCustom: true},
	VesselDabRig:   {Prefixes: []string{"banger_", "carb_cap_"}, AllowCustom: true},
	VesselJoint:    {Prefixes: []string{"filter_", "crutch_"}, AllowNA: true},
	VesselPreRoll:  {AllowNA: true},
	VesselBlunt:    {AllowNA: true},
	VesselPen:      {Prefixes: []string{"cart_", "pod_"}, AllowNA: true},
	VesselEdible:   {AllowNA: true},
	VesselTincture: {Prefixes: []string{"dropper_"}, AllowNA: true},
	VesselOther:    {AllowNA: true, AllowCustom: true},
}

// QuantityConfigFor returns the quantity configuration for a category.
// Unknown categories fall back to the Other config, so the function is
// total over arbitrary strings.
func QuantityConfigFor(cat VesselCategory) QuantityConfig {
	if cfg, ok := quantityConfigs[cat]; ok {
		return cfg
	}
	return quantityConfigs[VesselOther]
}

// AccessoryConfigFor returns the accessory configuration for a category,
// falling back to Other like QuantityConfigFor.
func AccessoryConfigFor(cat VesselCategory) AccessoryConfig {
	if cfg, ok := accessoryConfigs[cat]; ok {
		return cfg
	}
	return accessoryConfigs[VesselOther]
}

// QuantityValue is the tagged amount+unit representation of how much was
// consumed in one session. The unit is always derived from the owning
// vessel category, never chosen independently.
type QuantityValue struct {
	Amount float64      `json:"amount"`
	Unit   string       `json:"unit"`
	Type   QuantityType `json:"type"`
}

// MakeQuantity builds a QuantityValue from a plain numeric amount. For
// size-category vessels a bare number is recorded as a decimal in the
// category's unit rather than a size ordinal.
func MakeQuantity(cat VesselCategory, amount float64) QuantityValue {
	cfg := QuantityConfigFor(cat)
	typ := cfg.Type
	if typ == QuantitySizeCategory {
		typ = QuantityDecimal
	}
	return QuantityValue{Amount: amount, Unit: cfg.Unit, Type: typ}
}

// MakeSizeQuantity builds a size-category QuantityValue from one of the
// four size labels. An unrecognized label is an error rather than a
// negative ordinal.
func MakeSizeQuantity(cat VesselCategory, label string) (QuantityValue, error) {
	cfg := QuantityConfigFor(cat)
	ord := sizeOrdinal(label)
	if ord < 0 {
		return QuantityValue{}, fmt.Errorf("unknown size label %q", label)
	}
	return QuantityValue{Amount: float64(ord), Unit: cfg.Unit, Type: QuantitySizeCategory}, nil
}

// FormatQuantity renders a quantity for display: "medium bowl size" for
// size categories, "0.5 joint portion" otherwise. Pure formatting.
func FormatQuantity(q QuantityValue) string {
	if q.Type == QuantitySizeCategory {
		ord := int(q.Amount)
		if ord >= 0 && ord < len(SizeLabels) && q.Amount == float64(ord) {
			return SizeLabels[ord] + " " + q.Unit
		}
	}
	return strconv.FormatFloat(q.Amount, 'f', -1, 64) + " " + q.Unit
}

// CategoryFromString maps a stored category name back to the enum,
// defaulting to Other for anything unrecognized.
func CategoryFromString(s string) VesselCategory {
	s = strings.TrimSpace(s)
	for _, cat := range Categories {
		if strings.EqualFold(s, string(cat)) {
			return cat
		}
	}
	return VesselOther
}

func sizeOrdinal(label string) int {
	label = strings.ToLower(strings.TrimSpace(label))
	for i, l := range SizeLabels {
		if l == label {
			return i
		}
	}
	return -1
}
