package gemini

import (
	"context"
	"strings"

	"chronolink/internal/history"
	"chronolink/internal/util/jsonutil"
)

// The functions below bind each task to its prompt, its invocation and its
// parsed shape. Structured tasks decode through jsonutil; a parse failure is
// reported as MalformedResponseError, never as partial data.

func invokeJSON(ctx context.Context, inv Invoker, task Task, p Payload, out any) error {
	res, err := inv.Invoke(ctx, task, p)
	if err != nil {
		return err
	}
	text := strings.TrimSpace(res.Text)
	if text == "" {
		return ErrNoContent
	}
	if err := jsonutil.UnmarshalFlex([]byte(text), out); err != nil {
		return &MalformedResponseError{Task: task, Err: err}
	}
	return nil
}

// GetSummaries fetches the tier-1 summary pair for a time query.
func GetSummaries(ctx context.Context, inv Invoker, q history.TimeQuery) (history.SummaryPair, error) {
	var out history.SummaryPair
	err := invokeJSON(ctx, inv, TaskGetSummaries, SummariesPayload(q), &out)
	return out, err
}

// GetInDepthReport fetches the tier-2 report for a time query.
func GetInDepthReport(ctx context.Context, inv Invoker, q history.TimeQuery) (history.EventInDepth, error) {
	var out history.EventInDepth
	err := invokeJSON(ctx, inv, TaskGetInDepthReport, InDepthPayload(q), &out)
	return out, err
}

// GetTimeline fetches the tier-3 timeline for a time query.
func GetTimeline(ctx context.Context, inv Invoker, q history.TimeQuery) ([]history.TimelineEvent, error) {
	var out []history.TimelineEvent
	err := invokeJSON(ctx, inv, TaskGetTimeline, TimelinePayload(q), &out)
	return out, err
}

// ClassifySearchTerm decides whether a term names a person or a topic. The
// call is free and ungated; anything but a clear "person" answer falls back
// to topic.
func ClassifySearchTerm(ctx context.Context, inv Invoker, term string) (history.Kind, error) {
	res, err := inv.Invoke(ctx, TaskClassifySearchTerm, ClassifyPayload(term))
	if err != nil {
		return "", err
	}
	if strings.EqualFold(strings.TrimSpace(res.Text), "person") {
		return history.KindPerson, nil
	}
	return history.KindTopic, nil
}

// GetTopicSummary fetches the free-tier plain-text topic summary.
func GetTopicSummary(ctx context.Context, inv Invoker, term string) (string, error) {
	res, err := inv.Invoke(ctx, TaskGetTopicSummary, TopicSummaryPayload(term))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(res.Text) == "" {
		return "", ErrNoContent
	}
	return res.Text, nil
}

// GetPersonSummary fetches the tier-1 biography outline.
func GetPersonSummary(ctx context.Context, inv Invoker, term string) (history.PersonSummary, error) {
	var out history.PersonSummary
	err := invokeJSON(ctx, inv, TaskGetPersonSummary, PersonSummaryPayload(term), &out)
	return out, err
}

// GetPersonInDepth fetches the tier-2 person report.
func GetPersonInDepth(ctx context.Context, inv Invoker, term string) (history.PersonInDepth, error) {
	var out history.PersonInDepth
	err := invokeJSON(ctx, inv, TaskGetPersonInDepth, PersonInDepthPayload(term), &out)
	return out, err
}

// GetSixDegrees fetches the tier-3 causal chain for a person.
func GetSixDegrees(ctx context.Context, inv Invoker, term string) ([]history.EchoLink, error) {
	var out []history.EchoLink
	err := invokeJSON(ctx, inv, TaskGetSixDegrees, SixDegreesPayload(term), &out)
	return out, err
}

// GetFamilyTree fetches the tier-4 family tree for a person.
func GetFamilyTree(ctx context.Context, inv Invoker, term string) (history.FamilyTreeNode, error) {
	var out history.FamilyTreeNode
	err := invokeJSON(ctx, inv, TaskGetFamilyTree, FamilyTreePayload(term), &out)
	return out, err
}

// GenerateImage renders an image for the aggregate's originating query and
// returns the base64 data.
func GenerateImage(ctx context.Context, inv Invoker, agg history.Aggregate) (string, error) {
	var p Payload
	if agg.Kind == history.KindTime {
		p = ImagePayloadForTime(agg.TimeQuery)
	} else {
		p = ImagePayloadForTerm(agg.Term)
	}
	res, err := inv.Invoke(ctx, TaskGenerateImage, p)
	if err != nil {
		return "", err
	}
	if res.ImageData == "" {
		return "", ErrNoContent
	}
	return res.ImageData, nil
}
