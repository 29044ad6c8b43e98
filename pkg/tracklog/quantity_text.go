package tracklog

import "strings"

// ParseQuantityText turns a raw quantity cell into a QuantityValue using
// the row's vessel for unit context. Recognized shapes, in order:
//
//	size words  "tiny" / "Small" / ...   -> size ordinal
//	hit counts  "hits_4"                 -> 4 puffs
//	numbers     "10mg", "about 0.5"      -> first numeric substring
//
// Anything else defaults to 1 "units". Never fails; the historical data
// is too messy for strictness here.
func ParseQuantityText(raw string, cat VesselCategory) QuantityValue {
	text := strings.TrimSpace(raw)

	if q, err := MakeSizeQuantity(cat, text); err == nil {
		return q
	}

	if rest, ok := cutPrefixFold(text, "hits_"); ok {
		if n, found := firstNumber(rest); found {
			f, _ := n.Float64()
			return QuantityValue{Amount: f, Unit: "puffs", Type: QuantityDecimal}
		}
	}

	if n, ok := firstNumber(text); ok {
		f, _ := n.Float64()
		return MakeQuantity(cat, f)
	}

	return QuantityValue{Amount: 1, Unit: "units", Type: QuantityDecimal}
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return "", false
}
