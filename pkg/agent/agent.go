// Package agent implements the MentatLab one-shot agent contract: a single
// JSON request read from stdin, a transformation, and a single JSON response
// (result plus mentat_meta metrics) written to stdout.
//
// The package is the scaffolding shared by every agent binary. Downstream
// agents supply a Transformer and keep the I/O, metrics, and error envelope
// behaviour unchanged.
package agent

import "strings"

// Model identifies this agent in the mentat_meta envelope. It is a build-time
// parameter, overridden per agent with:
//
//	go build -ldflags "-X github.com/mentatlab/mentat-agent/pkg/agent.Model=dev.my-agent"
var Model = "dev.agent"

// Request is the single JSON document an agent reads from stdin. A missing
// text field is treated as the empty string; unknown fields are ignored.
type Request struct {
	Text string `json:"text"`
}

// Meta is the metrics envelope attached to every response. The counters and
// timing are pointers so that error responses serialize them as JSON null.
type Meta struct {
	TokensInput  *int     `json:"tokens_input"`
	TokensOutput *int     `json:"tokens_output"`
	Seconds      *float64 `json:"seconds"`
	Model        string   `json:"model"`
}

// Response is the success document written to stdout.
type Response struct {
	Result string `json:"result"`
	Meta   Meta   `json:"mentat_meta"`
}

// ErrorResponse is the failure document written to stdout. Its metrics are
// always null; only the model identifier is populated.
type ErrorResponse struct {
	Error string `json:"error"`
	Meta  Meta   `json:"mentat_meta"`
}

// NewErrorResponse builds the failure document for the given model.
func NewErrorResponse(message, model string) ErrorResponse {
	return ErrorResponse{
		Error: message,
		Meta:  Meta{Model: model},
	}
}

// Transformer maps input text to result text. Implementations must be pure
// and total: any string in (empty, unicode, arbitrarily long), a string out,
// never a panic. A transformer that can fail must fold the failure into its
// output and extend the error taxonomy explicitly.
type Transformer func(text string) string

// Stub is the placeholder transformation used until an agent supplies real
// logic. It prefixes the input so round-trips are visible in testing.
func Stub(text string) string {
	return "Processed: " + text
}

// Echo returns the input unchanged.
func Echo(text string) string {
	return text
}

// CountTokens returns the number of whitespace-delimited tokens in s.
// The count is insensitive to leading and trailing whitespace; the empty
// string counts as zero tokens.
func CountTokens(s string) int {
	if s == "" {
		return 0
	}
	return len(strings.Fields(s))
}
