package gemini

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chronolink/internal/history"
)

type cannedInvoker struct {
	res  *Result
	err  error
	last struct {
		task Task
		p    Payload
	}
}

func (c *cannedInvoker) Invoke(_ context.Context, task Task, p Payload) (*Result, error) {
	c.last.task = task
	c.last.p = p
	if c.err != nil {
		return nil, c.err
	}
	return c.res, nil
}

func TestTaskValid(t *testing.T) {
	for _, task := range []Task{
		TaskGetSummaries, TaskGetInDepthReport, TaskGetTimeline,
		TaskClassifySearchTerm, TaskGetTopicSummary, TaskGetPersonSummary,
		TaskGetPersonInDepth, TaskGetSixDegrees, TaskGetFamilyTree,
		TaskGenerateImage,
	} {
		assert.True(t, task.Valid(), string(task))
	}
	assert.False(t, Task("makeCoffee").Valid())
	assert.False(t, Task("").Valid())
}

func TestTaskModelSelection(t *testing.T) {
	assert.Equal(t, "gemini-2.5-pro", TaskGetInDepthReport.Model())
	assert.Equal(t, "gemini-2.5-pro", TaskGetPersonInDepth.Model())
	assert.Equal(t, "gemini-2.5-pro", TaskGetSixDegrees.Model())
	assert.Equal(t, "gemini-2.5-flash-image", TaskGenerateImage.Model())
	assert.Equal(t, "gemini-2.5-flash", TaskGetSummaries.Model())
	assert.Equal(t, "gemini-2.5-flash", TaskClassifySearchTerm.Model())
	assert.Equal(t, "gemini-2.5-flash", TaskGetFamilyTree.Model())
}

func TestStructuredPayloadsCarrySchema(t *testing.T) {
	q := history.TimeQuery{Year: -431, City: "Athens", Country: "Greece", Topic: "Daily Life"}

	for name, p := range map[string]Payload{
		"summaries":  SummariesPayload(q),
		"inDepth":    InDepthPayload(q),
		"timeline":   TimelinePayload(q),
		"personSum":  PersonSummaryPayload("Napoleon"),
		"personDeep": PersonInDepthPayload("Napoleon"),
		"sixDegrees": SixDegreesPayload("Napoleon"),
		"familyTree": FamilyTreePayload("Napoleon"),
	} {
		require.NotNil(t, p.Config, name)
		assert.Equal(t, "application/json", p.Config.ResponseMIMEType, name)
		require.NotNil(t, p.Config.ResponseSchema, name)
		assert.NotEmpty(t, p.Prompt, name)
	}

	// Plain-text tasks carry no schema.
	assert.Nil(t, ClassifyPayload("x").Config)
	assert.Nil(t, TopicSummaryPayload("x").Config)
	assert.Nil(t, ImagePayloadForTerm("x").Config)
	assert.Nil(t, ImagePayloadForTime(q).Config)
}

func TestSummariesPayloadMentionsQuery(t *testing.T) {
	p := SummariesPayload(history.TimeQuery{Year: -431, City: "Athens", Country: "Greece", Topic: "Daily Life"})
	assert.Contains(t, p.Prompt, "Athens")
	assert.Contains(t, p.Prompt, "Greece")
	assert.Contains(t, p.Prompt, "-431")
	assert.Contains(t, p.Prompt, "Daily Life")
}

func TestGetSummariesParsesResponse(t *testing.T) {
	inv := &cannedInvoker{res: &Result{Text: `{"primary":"p","related":"r"}`}}
	pair, err := GetSummaries(context.Background(), inv, history.TimeQuery{Year: 1900, City: "Paris", Country: "France", Topic: "Art"})
	require.NoError(t, err)
	assert.Equal(t, history.SummaryPair{Primary: "p", Related: "r"}, pair)
	assert.Equal(t, TaskGetSummaries, inv.last.task)
}

func TestGetSummariesRepairsQuotedJSON(t *testing.T) {
	inv := &cannedInvoker{res: &Result{Text: `"{\"primary\":\"p\",\"related\":\"r\"}"`}}
	pair, err := GetSummaries(context.Background(), inv, history.TimeQuery{Year: 1900, City: "Paris", Country: "France", Topic: "Art"})
	require.NoError(t, err)
	assert.Equal(t, "p", pair.Primary)
}

func TestGetSummariesMalformed(t *testing.T) {
	inv := &cannedInvoker{res: &Result{Text: "sorry, I cannot"}}
	_, err := GetSummaries(context.Background(), inv, history.TimeQuery{Year: 1900, City: "Paris", Country: "France", Topic: "Art"})
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, TaskGetSummaries, malformed.Task)
}

func TestGetSummariesEmptyText(t *testing.T) {
	inv := &cannedInvoker{res: &Result{Text: "  "}}
	_, err := GetSummaries(context.Background(), inv, history.TimeQuery{Year: 1900, City: "Paris", Country: "France", Topic: "Art"})
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestGetTimelineParsesArray(t *testing.T) {
	inv := &cannedInvoker{res: &Result{Text: `[{"year":"-431","event":"war","type":"main","interestingDetail":"d"}]`}}
	events, err := GetTimeline(context.Background(), inv, history.TimeQuery{Year: -431, City: "Athens", Country: "Greece", Topic: "War"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "main", events[0].Type)
}

func TestClassifySearchTerm(t *testing.T) {
	inv := &cannedInvoker{res: &Result{Text: " Person \n"}}
	kind, err := ClassifySearchTerm(context.Background(), inv, "Napoleon")
	require.NoError(t, err)
	assert.Equal(t, history.KindPerson, kind)

	inv.res = &Result{Text: "topic"}
	kind, err = ClassifySearchTerm(context.Background(), inv, "French Revolution")
	require.NoError(t, err)
	assert.Equal(t, history.KindTopic, kind)

	// Anything that is not clearly "person" falls back to topic.
	inv.res = &Result{Text: "probably a person?"}
	kind, err = ClassifySearchTerm(context.Background(), inv, "ambiguous")
	require.NoError(t, err)
	assert.Equal(t, history.KindTopic, kind)
}

func TestClassifySearchTermError(t *testing.T) {
	inv := &cannedInvoker{err: &TransportError{Err: errors.New("boom")}}
	_, err := ClassifySearchTerm(context.Background(), inv, "Napoleon")
	var transport *TransportError
	assert.ErrorAs(t, err, &transport)
}

func TestGenerateImagePicksPromptByKind(t *testing.T) {
	inv := &cannedInvoker{res: &Result{ImageData: "aW1n"}}

	timeAgg := history.NewTime(
		history.TimeQuery{Year: 1905, City: "Kyoto", Country: "Japan", Topic: "Tea"},
		history.SummaryPair{Primary: "p"},
	)
	data, err := GenerateImage(context.Background(), inv, timeAgg)
	require.NoError(t, err)
	assert.Equal(t, "aW1n", data)
	assert.Contains(t, inv.last.p.Prompt, "Kyoto")

	personAgg := history.NewPerson("Ada Lovelace", history.PersonSummary{Overview: "o"})
	_, err = GenerateImage(context.Background(), inv, personAgg)
	require.NoError(t, err)
	assert.Contains(t, inv.last.p.Prompt, "Ada Lovelace")
	assert.Contains(t, inv.last.p.Prompt, "portrait")
}

func TestGenerateImageNoData(t *testing.T) {
	inv := &cannedInvoker{res: &Result{Text: "no image for you"}}
	_, err := GenerateImage(context.Background(), inv, history.NewPerson("X", history.PersonSummary{}))
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestClassifyErrorTaxonomy(t *testing.T) {
	assert.Nil(t, classify(nil))

	var auth *AuthError
	assert.ErrorAs(t, classify(errors.New("403: API key not valid")), &auth)
	assert.ErrorAs(t, classify(errors.New("API_KEY_INVALID")), &auth)

	var timeout *TimeoutError
	assert.ErrorAs(t, classify(context.DeadlineExceeded), &timeout)
	assert.ErrorAs(t, classify(errors.New("rpc: Deadline Exceeded")), &timeout)

	var transport *TransportError
	assert.ErrorAs(t, classify(errors.New("connection reset")), &transport)
}

func TestHTTPStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&BlockedError{Task: TaskGetSummaries}))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(&AuthError{Err: errors.New("x")}))
	assert.Equal(t, http.StatusGatewayTimeout, HTTPStatus(&TimeoutError{Err: errors.New("x")}))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(&TransportError{Err: errors.New("x")}))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(ErrMissingAPIKey))
}

func TestBlockedErrorMessages(t *testing.T) {
	img := &BlockedError{Task: TaskGenerateImage, Reason: "SAFETY"}
	assert.Contains(t, img.Error(), "Image generation failed")
	text := &BlockedError{Task: TaskGetSummaries, Reason: "SAFETY"}
	assert.Contains(t, text.Error(), "blocked")
}

func TestUnconfiguredInvoker(t *testing.T) {
	_, err := Unconfigured().Invoke(context.Background(), TaskGetSummaries, Payload{Prompt: "p"})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
