package tracklog

import "strings"

// vesselRule maps a free-text pattern to a category. Rules are checked in
// order and the first match wins, so a name matching several patterns
// classifies by whichever rule appears first in the table.
type vesselRule struct {
	prefixes []string
	contains []string
	category VesselCategory
}

// The historical exports name vessels inconsistently ("Simba", "pen_blue",
// "Edible: brownie"), so classification is substring/prefix based rather
// than an exact lookup. Order matters: "bong paper" is a Bong, not a Joint.
var vesselRules = []vesselRule{
	{contains: []string{"bong", "bubbler", "simba", "zenco"}, category: VesselBong},
	{prefixes: []string{"pen_"}, contains: []string{"stizzy", "terp pen", "vape"}, category: VesselPen},
	{prefixes: []string{"edible:"}, contains: []string{"gummie", "gummy", "edible", "brownie", "chocolate"}, category: VesselEdible},
	{contains: []string{"tincture", "drops"}, category: VesselTincture},
	{contains: []string{"pre-roll", "preroll", "pre roll"}, category: VesselPreRoll},
	{contains: []string{"blunt"}, category: VesselBlunt},
	{contains: []string{"dab", "rig", "banger"}, category: VesselDabRig},
	{contains: []string{"joint", "paper"}, category: VesselJoint},
	{contains: []string{"pipe", "spoon", "chillum", "one hitter", "one-hitter"}, category: VesselPipe},
}

// ClassifyVessel maps free-text vessel names to the fixed category
// taxonomy. Total: anything unmatched is Other.
func ClassifyVessel(raw string) VesselCategory {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return VesselOther
	}
	for _, rule := range vesselRules {
		for _, p := range rule.prefixes {
			if strings.HasPrefix(name, p) {
				return rule.category
			}
		}
		for _, c := range rule.contains {
			if strings.Contains(name, c) {
				return rule.category
			}
		}
	}
	return VesselOther
}
