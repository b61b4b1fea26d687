package agent

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountTokens(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"single word", "hello", 1},
		{"two words", "hello world", 2},
		{"leading whitespace", "   hello world", 2},
		{"trailing whitespace", "hello world   \n", 2},
		{"interior runs", "a\t\tb\n\nc", 3},
		{"whitespace only", "  \t\n ", 0},
		{"unicode", "héllo wörld — dash", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountTokens(tt.in))
		})
	}
}

func TestCountTokensPaddingInvariant(t *testing.T) {
	// Token counting must not change when the text is padded with
	// surrounding whitespace.
	for _, s := range []string{"", "one", "two words", "a b c d"} {
		assert.Equal(t, CountTokens(s), CountTokens("  "+s+"\t\n"))
	}
}

func TestStub(t *testing.T) {
	assert.Equal(t, "Processed: hello", Stub("hello"))
	assert.Equal(t, "Processed: ", Stub(""))
}

func TestEcho(t *testing.T) {
	assert.Equal(t, "same", Echo("same"))
}

func TestResponseRoundTrip(t *testing.T) {
	tokensIn, tokensOut := 2, 3
	seconds := 0.001
	orig := Response{
		Result: "Processed: hello world",
		Meta: Meta{
			TokensInput:  &tokensIn,
			TokensOutput: &tokensOut,
			Seconds:      &seconds,
			Model:        "dev.test-agent",
		},
	}

	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var decoded Response
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, orig.Result, decoded.Result)
	assert.Equal(t, orig.Meta.Model, decoded.Meta.Model)
}

func TestErrorResponseNullMetrics(t *testing.T) {
	data, err := json.Marshal(NewErrorResponse("boom", "dev.test-agent"))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "boom", doc["error"])

	meta, ok := doc["mentat_meta"].(map[string]any)
	require.True(t, ok)
	assert.Nil(t, meta["tokens_input"])
	assert.Nil(t, meta["tokens_output"])
	assert.Nil(t, meta["seconds"])
	assert.Equal(t, "dev.test-agent", meta["model"])
}

func TestRequestUnknownFieldsIgnored(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(`{"text":"hi","extra":42}`), &req))
	assert.Equal(t, "hi", req.Text)
}
