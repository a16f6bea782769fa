package history

// Tier is an ordered unlock level within one query mode. Tier numbers are
// mode-relative: time tier 3 is the timeline while person tier 3 is the
// six-degrees chain.
type Tier int

const (
	Tier1 Tier = 1
	Tier2 Tier = 2
	Tier3 Tier = 3
	Tier4 Tier = 4
)

// TierSpec describes one rung of the ladder: the credit cost, the field that
// must already be present, and the field the rung fills.
type TierSpec struct {
	Cost     int
	Requires Field
	Produces Field
}

// ImageSpec governs the orthogonal image action: free-tier summary first,
// then one credit per generation.
var ImageSpec = TierSpec{Cost: 1, Requires: FieldSummary, Produces: FieldImage}

var tierTable = map[Kind]map[Tier]TierSpec{
	KindTime: {
		Tier1: {Cost: 0, Requires: FieldNone, Produces: FieldSummary},
		Tier2: {Cost: 1, Requires: FieldSummary, Produces: FieldInDepth},
		Tier3: {Cost: 2, Requires: FieldInDepth, Produces: FieldTimeline},
	},
	KindPerson: {
		Tier1: {Cost: 0, Requires: FieldNone, Produces: FieldSummary},
		Tier2: {Cost: 1, Requires: FieldSummary, Produces: FieldInDepth},
		Tier3: {Cost: 2, Requires: FieldInDepth, Produces: FieldSixDegrees},
		Tier4: {Cost: 2, Requires: FieldSixDegrees, Produces: FieldFamilyTree},
	},
	KindTopic: {
		Tier1: {Cost: 0, Requires: FieldNone, Produces: FieldSummary},
	},
}

// SpecFor returns the tier spec for the given mode, or false when the mode
// has no such rung.
func SpecFor(k Kind, t Tier) (TierSpec, bool) {
	s, ok := tierTable[k][t]
	return s, ok
}

// MaxTier returns the highest tier defined for the given mode.
func MaxTier(k Kind) Tier {
	var max Tier
	for t := range tierTable[k] {
		if t > max {
			max = t
		}
	}
	return max
}
