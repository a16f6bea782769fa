package history

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timeAgg() Aggregate {
	return NewTime(
		TimeQuery{Year: -400, City: "Athens", Country: "Greece", Topic: "Religion & Philosophy"},
		SummaryPair{Primary: "p", Related: "r"},
	)
}

func TestNewTimeStartsAtTierOne(t *testing.T) {
	a := timeAgg()
	assert.True(t, a.Has(FieldSummary))
	assert.False(t, a.Has(FieldInDepth))
	assert.False(t, a.Has(FieldTimeline))
	assert.False(t, a.Has(FieldImage))
}

func TestMergeIsCopyOnWrite(t *testing.T) {
	a := timeAgg()
	b, err := a.WithEventInDepth(EventInDepth{KeyFigures: "Socrates"})
	require.NoError(t, err)

	assert.False(t, a.Has(FieldInDepth), "original aggregate untouched")
	assert.True(t, b.Has(FieldInDepth))
	assert.Equal(t, a.Time.Summary, b.Time.Summary, "summary pointer shared, never mutated")

	c, err := b.WithTimeline([]TimelineEvent{{Year: "-404", Event: "Fall of Athens", Type: "succeeding"}})
	require.NoError(t, err)
	assert.False(t, b.Has(FieldTimeline))
	assert.True(t, c.Has(FieldTimeline))
}

func TestMergeRejectsWrongKind(t *testing.T) {
	a := NewTopic("Silk Road", "summary text")
	_, err := a.WithEventInDepth(EventInDepth{})
	assert.Error(t, err)
	_, err = a.WithFamilyTree(FamilyTreeNode{Name: "x", Relation: "Self"})
	assert.Error(t, err)
}

func TestWithImageReplacesOnlyImage(t *testing.T) {
	a := timeAgg()
	b := a.WithImage("aGVsbG8=")
	assert.Empty(t, a.ImageData)
	assert.Equal(t, "aGVsbG8=", b.ImageData)
	assert.Equal(t, a.Time, b.Time, "tier fields untouched by image attach")

	c := b.WithImage("d29ybGQ=")
	assert.Equal(t, "d29ybGQ=", c.ImageData, "regeneration replaces the reference")
}

func TestPersonLadder(t *testing.T) {
	a := NewPerson("Napoleon Bonaparte", PersonSummary{Overview: "o"})
	assert.True(t, a.Has(FieldSummary))

	b, err := a.WithPersonInDepth(PersonInDepth{Achievements: "many"})
	require.NoError(t, err)
	c, err := b.WithSixDegrees([]EchoLink{{Year: "1804", Title: "Code civil", Consequence: "..."}})
	require.NoError(t, err)
	d, err := c.WithFamilyTree(FamilyTreeNode{Name: "Napoleon Bonaparte", Relation: "Self"})
	require.NoError(t, err)

	assert.False(t, c.Has(FieldFamilyTree))
	assert.True(t, d.Has(FieldFamilyTree))
	assert.True(t, d.Has(FieldSixDegrees))
	assert.True(t, d.Has(FieldInDepth))
}

func TestTierTable(t *testing.T) {
	s, ok := SpecFor(KindTime, Tier3)
	require.True(t, ok)
	assert.Equal(t, 2, s.Cost)
	assert.Equal(t, FieldInDepth, s.Requires)
	assert.Equal(t, FieldTimeline, s.Produces)

	s, ok = SpecFor(KindPerson, Tier4)
	require.True(t, ok)
	assert.Equal(t, FieldSixDegrees, s.Requires)

	_, ok = SpecFor(KindTopic, Tier2)
	assert.False(t, ok, "topic mode only has the free tier")

	assert.Equal(t, Tier3, MaxTier(KindTime))
	assert.Equal(t, Tier4, MaxTier(KindPerson))
	assert.Equal(t, Tier1, MaxTier(KindTopic))
}

func TestMarshalDiscriminatedUnion(t *testing.T) {
	a := timeAgg()
	raw, err := json.Marshal(a)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "time", m["type"])
	assert.NotNil(t, m["summary"])
	assert.Nil(t, m["inDepth"], "unfilled tiers render as null")
	assert.Nil(t, m["timeline"])

	p := NewPerson("Ada Lovelace", PersonSummary{Overview: "o"})
	raw, err = json.Marshal(p)
	require.NoError(t, err)
	m = map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "person", m["type"])
	assert.Equal(t, "Ada Lovelace", m["searchTerm"])
	assert.Nil(t, m["familyTree"])
}
