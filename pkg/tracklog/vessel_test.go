package tracklog

import "testing"

func TestClassifyVessel(t *testing.T) {
	tests := []struct {
		raw  string
		want VesselCategory
	}{
		{"Bong", VesselBong},
		{"Simba", VesselBong},
		{"zenco flowerpot", VesselBong},
		{"pen_blue", VesselPen},
		{"Stizzy", VesselPen},
		{"terp pen", VesselPen},
		{"Edible: brownie", VesselEdible},
		{"peach gummies", VesselEdible},
		{"cbd tincture", VesselTincture},
		{"pre-roll", VesselPreRoll},
		{"Backwoods blunt", VesselBlunt},
		{"dab rig", VesselDabRig},
		{"rolling paper", VesselJoint},
		{"joint", VesselJoint},
		{"glass spoon pipe", VesselPipe},
		{"one hitter", VesselPipe},
		{"", VesselOther},
		{"mystery device", VesselOther},
	}
	for _, tt := range tests {
		if got := ClassifyVessel(tt.raw); got != tt.want {
			t.Errorf("ClassifyVessel(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestClassifyVesselPrecedence(t *testing.T) {
	// The rule table is ordered and the first match wins: a name matching
	// both the Bong and Joint patterns is a Bong because that rule comes
	// first.
	if got := ClassifyVessel("bong paper"); got != VesselBong {
		t.Errorf("ClassifyVessel(bong paper) = %q, want %q", got, VesselBong)
	}
	// "pipe" appears in the name but the dab rule is checked earlier.
	if got := ClassifyVessel("dab pipe"); got != VesselDabRig {
		t.Errorf("ClassifyVessel(dab pipe) = %q, want %q", got, VesselDabRig)
	}
}
