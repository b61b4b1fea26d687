package agent

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mentatlab/mentat-agent/pkg/events"
)

// Exit codes for a single invocation. Every failure class (empty input,
// decode failure, encode failure) maps to ExitFailure.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

type flusher interface {
	Flush() error
}

// Processor runs one request/response cycle over a pair of streams.
//
// It reads the whole of Stdin, decodes a Request, applies Transform, and
// writes exactly one JSON document to Stdout: a Response on success, an
// ErrorResponse on any failure. Diagnostics go to Stderr and are not part of
// the machine contract.
type Processor struct {
	// Model is the identifier stamped into every mentat_meta envelope.
	Model string

	// Transform is the replaceable business logic. It must be pure and
	// total; see Transformer.
	Transform Transformer

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Emitter, when set, receives NDJSON checkpoints alongside the plain
	// stderr diagnostics. Optional.
	Emitter *events.Emitter
}

// New returns a Processor bound to the operating system streams.
func New(model string, transform Transformer) *Processor {
	return &Processor{
		Model:     model,
		Transform: transform,
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}
}

// Run performs the one-shot cycle and returns the process exit code. The
// response document is written and flushed before Run returns, so the caller
// may exit immediately.
func (p *Processor) Run() int {
	runID := uuid.NewString()
	logger := zerolog.New(p.Stderr).With().Timestamp().Str("run_id", runID).Logger()
	if p.Emitter != nil {
		p.Emitter.SetCorrelationID(runID)
	}

	raw, err := io.ReadAll(p.Stdin)
	if err != nil {
		return p.fail(logger, fmt.Sprintf("Processing error: %v", err))
	}

	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return p.fail(logger, "No input received from stdin")
	}

	var req Request
	if err := json.Unmarshal([]byte(trimmed), &req); err != nil {
		return p.fail(logger, fmt.Sprintf("Invalid JSON input: %v", err))
	}

	if echo, err := json.Marshal(req); err == nil {
		logger.Info().RawJSON("input", echo).Msg("processing input")
	}
	if p.Emitter != nil {
		p.Emitter.Checkpoint("transform", 0, nil)
	}

	start := time.Now()
	result := p.Transform(req.Text)
	seconds := math.Round(time.Since(start).Seconds()*1000) / 1000

	tokensIn := CountTokens(req.Text)
	tokensOut := CountTokens(result)

	resp := Response{
		Result: result,
		Meta: Meta{
			TokensInput:  &tokensIn,
			TokensOutput: &tokensOut,
			Seconds:      &seconds,
			Model:        p.Model,
		},
	}

	out, err := json.Marshal(resp)
	if err != nil {
		return p.fail(logger, fmt.Sprintf("JSON serialization error: %v", err))
	}

	if _, err := p.Stdout.Write(out); err != nil {
		logger.Error().Err(err).Msg("failed to write response")
		return ExitFailure
	}
	p.flush()

	logger.Info().
		Int("tokens_input", tokensIn).
		Int("tokens_output", tokensOut).
		Float64("seconds", seconds).
		Msg("processing completed successfully")
	if p.Emitter != nil {
		p.Emitter.Checkpoint("transform", 1, map[string]any{
			"tokens_input":  tokensIn,
			"tokens_output": tokensOut,
		})
	}
	return ExitSuccess
}

// fail writes the structured error document to stdout, mirrors the detail on
// stderr, and returns the failure exit code.
func (p *Processor) fail(logger zerolog.Logger, message string) int {
	// The error envelope contains only strings and nil pointers, so this
	// marshal cannot fail.
	out, _ := json.Marshal(NewErrorResponse(message, p.Model))
	_, _ = p.Stdout.Write(out)
	p.flush()

	logger.Error().Msg(message)
	if p.Emitter != nil {
		p.Emitter.LogError(message, nil)
	}
	return ExitFailure
}

func (p *Processor) flush() {
	if f, ok := p.Stdout.(flusher); ok {
		_ = f.Flush()
	}
}
