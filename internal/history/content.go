// Package history defines the query shapes, the tier ladder, and the
// append-only result aggregate the disclosure controller builds per query.
package history

// TimeQuery pins a point-in-time/location question.
type TimeQuery struct {
	Year    int    `json:"year"`
	City    string `json:"city"`
	Country string `json:"country"`
	Topic   string `json:"topic"`
}

// SummaryPair is the tier-1 payload for a time query: the primary story plus
// one related piece of context.
type SummaryPair struct {
	Primary string `json:"primary"`
	Related string `json:"related"`
}

// EventInDepth is the tier-2 report for a time query.
type EventInDepth struct {
	KeyFigures            string `json:"keyFigures"`
	SocioPoliticalContext string `json:"socioPoliticalContext"`
	OpposingViews         string `json:"opposingViews"`
	ImmediateConsequences string `json:"immediateConsequences"`
}

// TimelineEvent is one entry of the tier-3 timeline. Type is one of
// "preceding", "main" or "succeeding".
type TimelineEvent struct {
	Year              string `json:"year"`
	Event             string `json:"event"`
	Type              string `json:"type"`
	InterestingDetail string `json:"interestingDetail,omitempty"`
}

// PersonSummary is the tier-1 payload for a person search.
type PersonSummary struct {
	Overview  string `json:"overview"`
	Family    string `json:"family"`
	KeyEvents string `json:"keyEvents"`
}

// PersonInDepth is the tier-2 report for a person search.
type PersonInDepth struct {
	FriendsAndAssociates string `json:"friendsAndAssociates"`
	InfluencesAndMentors string `json:"influencesAndMentors"`
	Achievements         string `json:"achievements"`
	FunnyAnecdotes       string `json:"funnyAnecdotes"`
	EmbarrassingStories  string `json:"embarrassingStories"`
	ConspiracyTheories   string `json:"conspiracyTheories"`
	Enemies              string `json:"enemies"`
	NotableQuotes        string `json:"notableQuotes"`
	ContextualAnalysis   string `json:"contextualAnalysis"`
}

// EchoLink is one step of the tier-3 causal chain for a person.
type EchoLink struct {
	Year        string `json:"year"`
	Title       string `json:"title"`
	Consequence string `json:"consequence"`
}

// FamilyTreeNode is the tier-4 family tree. The root carries relation "Self";
// nesting is limited by the response schema to two generations each way.
type FamilyTreeNode struct {
	Name     string           `json:"name"`
	Relation string           `json:"relation"`
	Children []FamilyTreeNode `json:"children,omitempty"`
}
