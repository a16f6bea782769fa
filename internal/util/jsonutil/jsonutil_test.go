package jsonutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Primary string `json:"primary"`
	Related string `json:"related"`
}

func TestUnmarshalFlexDirect(t *testing.T) {
	var out sample
	require.NoError(t, UnmarshalFlex([]byte(`{"primary":"a","related":"b"}`), &out))
	assert.Equal(t, sample{Primary: "a", Related: "b"}, out)
}

func TestUnmarshalFlexQuotedPayload(t *testing.T) {
	// The whole object arrives wrapped in one extra layer of string quoting.
	raw := []byte(`"{\"primary\":\"a\",\"related\":\"b\"}"`)
	var out sample
	require.NoError(t, UnmarshalFlex(raw, &out))
	assert.Equal(t, "a", out.Primary)
}

func TestNormalizeResolvesDoubleEscapedUnicode(t *testing.T) {
	norm, err := NormalizeJSONUnicode([]byte(`{"primary":"1 \\u003e 0","related":"b"}`))
	require.NoError(t, err)
	var out sample
	require.NoError(t, json.Unmarshal(norm, &out))
	assert.Equal(t, "1 > 0", out.Primary)
}

func TestUnmarshalFlexRejectsGarbage(t *testing.T) {
	var out sample
	assert.Error(t, UnmarshalFlex([]byte("sorry, I cannot do that"), &out))
}

func TestUnmarshalRaw(t *testing.T) {
	var out sample
	require.NoError(t, UnmarshalRaw(json.RawMessage(`{"primary":"a"}`), &out))
	assert.Equal(t, "a", out.Primary)
}

func TestNormalizeJSONUnicodeKeepsHTMLChars(t *testing.T) {
	norm, err := NormalizeJSONUnicode([]byte(`{"k":"a < b & c"}`))
	require.NoError(t, err)
	assert.Contains(t, string(norm), `a < b & c`)
}
