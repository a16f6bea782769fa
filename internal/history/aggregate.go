package history

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates the three aggregate variants.
type Kind string

const (
	KindTime   Kind = "time"
	KindPerson Kind = "person"
	KindTopic  Kind = "topic"
)

// Field names one slot of an aggregate that a tier (or the image action)
// fills.
type Field int

const (
	FieldNone Field = iota
	FieldSummary
	FieldInDepth
	FieldTimeline
	FieldSixDegrees
	FieldFamilyTree
	FieldImage
)

func (f Field) String() string {
	switch f {
	case FieldSummary:
		return "summary"
	case FieldInDepth:
		return "inDepth"
	case FieldTimeline:
		return "timeline"
	case FieldSixDegrees:
		return "sixDegrees"
	case FieldFamilyTree:
		return "familyTree"
	case FieldImage:
		return "image"
	default:
		return "none"
	}
}

// TimeBody holds the tiered content of a time aggregate.
type TimeBody struct {
	Summary  *SummaryPair
	InDepth  *EventInDepth
	Timeline []TimelineEvent
}

// PersonBody holds the tiered content of a person aggregate.
type PersonBody struct {
	Summary    *PersonSummary
	InDepth    *PersonInDepth
	SixDegrees []EchoLink
	FamilyTree *FamilyTreeNode
}

// TopicBody holds the single free-tier payload of a topic aggregate.
type TopicBody struct {
	Summary string
}

// Aggregate is the accumulated result for the current query. Values are
// treated as immutable: every merge returns a fresh Aggregate whose variant
// body is a shallow copy with exactly one newly filled field. Payload
// contents are never mutated after being set, so shared pointers between an
// old and a new aggregate are safe.
type Aggregate struct {
	Kind Kind

	// TimeQuery is set for KindTime; Term for KindPerson and KindTopic.
	TimeQuery TimeQuery
	Term      string

	// ImageData is the base64-encoded generated image, empty when absent.
	ImageData string

	Time   *TimeBody
	Person *PersonBody
	Topic  *TopicBody
}

// NewTime starts a time aggregate with the tier-1 summary already resolved.
func NewTime(q TimeQuery, s SummaryPair) Aggregate {
	return Aggregate{Kind: KindTime, TimeQuery: q, Time: &TimeBody{Summary: &s}}
}

// NewPerson starts a person aggregate with the tier-1 summary already
// resolved.
func NewPerson(term string, s PersonSummary) Aggregate {
	return Aggregate{Kind: KindPerson, Term: term, Person: &PersonBody{Summary: &s}}
}

// NewTopic starts a topic aggregate; topic queries only have the free tier.
func NewTopic(term, summary string) Aggregate {
	return Aggregate{Kind: KindTopic, Term: term, Topic: &TopicBody{Summary: summary}}
}

// Has reports whether the given field is populated.
func (a Aggregate) Has(f Field) bool {
	if f == FieldImage {
		return a.ImageData != ""
	}
	switch a.Kind {
	case KindTime:
		if a.Time == nil {
			return false
		}
		switch f {
		case FieldSummary:
			return a.Time.Summary != nil
		case FieldInDepth:
			return a.Time.InDepth != nil
		case FieldTimeline:
			return a.Time.Timeline != nil
		}
	case KindPerson:
		if a.Person == nil {
			return false
		}
		switch f {
		case FieldSummary:
			return a.Person.Summary != nil
		case FieldInDepth:
			return a.Person.InDepth != nil
		case FieldSixDegrees:
			return a.Person.SixDegrees != nil
		case FieldFamilyTree:
			return a.Person.FamilyTree != nil
		}
	case KindTopic:
		if a.Topic == nil {
			return false
		}
		if f == FieldSummary {
			return a.Topic.Summary != ""
		}
	}
	return false
}

// ErrKindMismatch is returned when a merge targets a field the aggregate's
// variant does not carry.
var errKindMismatch = func(k Kind, f Field) error {
	return fmt.Errorf("history: aggregate kind %q has no field %q", k, f)
}

// WithEventInDepth returns a copy with the time-mode in-depth report set.
func (a Aggregate) WithEventInDepth(v EventInDepth) (Aggregate, error) {
	if a.Kind != KindTime || a.Time == nil {
		return a, errKindMismatch(a.Kind, FieldInDepth)
	}
	body := *a.Time
	body.InDepth = &v
	a.Time = &body
	return a, nil
}

// WithTimeline returns a copy with the time-mode timeline set.
func (a Aggregate) WithTimeline(events []TimelineEvent) (Aggregate, error) {
	if a.Kind != KindTime || a.Time == nil {
		return a, errKindMismatch(a.Kind, FieldTimeline)
	}
	if events == nil {
		events = []TimelineEvent{}
	}
	body := *a.Time
	body.Timeline = events
	a.Time = &body
	return a, nil
}

// WithPersonInDepth returns a copy with the person in-depth report set.
func (a Aggregate) WithPersonInDepth(v PersonInDepth) (Aggregate, error) {
	if a.Kind != KindPerson || a.Person == nil {
		return a, errKindMismatch(a.Kind, FieldInDepth)
	}
	body := *a.Person
	body.InDepth = &v
	a.Person = &body
	return a, nil
}

// WithSixDegrees returns a copy with the person causal chain set.
func (a Aggregate) WithSixDegrees(links []EchoLink) (Aggregate, error) {
	if a.Kind != KindPerson || a.Person == nil {
		return a, errKindMismatch(a.Kind, FieldSixDegrees)
	}
	if links == nil {
		links = []EchoLink{}
	}
	body := *a.Person
	body.SixDegrees = links
	a.Person = &body
	return a, nil
}

// WithFamilyTree returns a copy with the person family tree set.
func (a Aggregate) WithFamilyTree(root FamilyTreeNode) (Aggregate, error) {
	if a.Kind != KindPerson || a.Person == nil {
		return a, errKindMismatch(a.Kind, FieldFamilyTree)
	}
	body := *a.Person
	body.FamilyTree = &root
	a.Person = &body
	return a, nil
}

// WithImage returns a copy with the generated image attached. A repeated
// generation simply replaces the previous reference.
func (a Aggregate) WithImage(b64 string) Aggregate {
	a.ImageData = b64
	return a
}

// MarshalJSON renders the aggregate as a discriminated union: a "type" tag,
// the originating query, the variant's tier fields (null when unfilled) and
// the image reference.
func (a Aggregate) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case KindTime:
		body := a.Time
		if body == nil {
			body = &TimeBody{}
		}
		return json.Marshal(struct {
			Type     Kind            `json:"type"`
			Query    TimeQuery       `json:"query"`
			Summary  *SummaryPair    `json:"summary"`
			InDepth  *EventInDepth   `json:"inDepth"`
			Timeline []TimelineEvent `json:"timeline"`
			Image    string          `json:"imageData,omitempty"`
		}{a.Kind, a.TimeQuery, body.Summary, body.InDepth, body.Timeline, a.ImageData})
	case KindPerson:
		body := a.Person
		if body == nil {
			body = &PersonBody{}
		}
		return json.Marshal(struct {
			Type       Kind            `json:"type"`
			Term       string          `json:"searchTerm"`
			Summary    *PersonSummary  `json:"summary"`
			InDepth    *PersonInDepth  `json:"inDepth"`
			SixDegrees []EchoLink      `json:"sixDegrees"`
			FamilyTree *FamilyTreeNode `json:"familyTree"`
			Image      string          `json:"imageData,omitempty"`
		}{a.Kind, a.Term, body.Summary, body.InDepth, body.SixDegrees, body.FamilyTree, a.ImageData})
	case KindTopic:
		var summary *string
		if a.Topic != nil && a.Topic.Summary != "" {
			s := a.Topic.Summary
			summary = &s
		}
		return json.Marshal(struct {
			Type    Kind    `json:"type"`
			Term    string  `json:"searchTerm"`
			Summary *string `json:"summary"`
			Image   string  `json:"imageData,omitempty"`
		}{a.Kind, a.Term, summary, a.ImageData})
	default:
		return nil, fmt.Errorf("history: unknown aggregate kind %q", a.Kind)
	}
}
