// Package events emits single-line JSON diagnostic events for agent
// processes. Each event is one NDJSON line flushed immediately, so an
// external supervisor can follow progress while the agent runs.
package events

import (
	"encoding/json"
	"io"
	"sync"
	"time"
)

// Event types understood by the MentatLab stream consumers.
const (
	EventLog        = "log"
	EventCheckpoint = "checkpoint"
	EventMetric     = "metric"
	EventNodeStatus = "node_status"
)

// Event is a single diagnostic record.
type Event struct {
	Type          string         `json:"type"`
	Level         string         `json:"level,omitempty"`
	Message       string         `json:"message,omitempty"`
	Data          map[string]any `json:"data,omitempty"`
	CorrelationID string         `json:"correlation_id,omitempty"`
	Timestamp     string         `json:"ts"`
}

// Emitter writes events to a single writer. Emit failures are swallowed: a
// broken diagnostic channel must never abort the agent.
type Emitter struct {
	mu            sync.Mutex
	w             io.Writer
	correlationID string
	now           func() time.Time
}

// New returns an Emitter writing NDJSON lines to w.
func New(w io.Writer) *Emitter {
	return &Emitter{w: w, now: time.Now}
}

// SetCorrelationID sets a default correlation ID attached to all subsequent
// events. Pass the empty string to clear it.
func (e *Emitter) SetCorrelationID(id string) {
	e.mu.Lock()
	e.correlationID = id
	e.mu.Unlock()
}

// Emit writes one event line. The timestamp and default correlation ID are
// filled in if the caller left them empty.
func (e *Emitter) Emit(evt Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if evt.CorrelationID == "" {
		evt.CorrelationID = e.correlationID
	}
	if evt.Timestamp == "" {
		evt.Timestamp = e.now().UTC().Format(time.RFC3339Nano)
	}

	line, err := json.Marshal(evt)
	if err != nil {
		return
	}
	_, _ = e.w.Write(append(line, '\n'))
	if f, ok := e.w.(interface{ Flush() error }); ok {
		_ = f.Flush()
	}
}

// LogInfo emits an info-level log event.
func (e *Emitter) LogInfo(message string, data map[string]any) {
	e.Emit(Event{Type: EventLog, Level: "info", Message: message, Data: data})
}

// LogError emits an error-level log event.
func (e *Emitter) LogError(message string, data map[string]any) {
	e.Emit(Event{Type: EventLog, Level: "error", Message: message, Data: data})
}

// Checkpoint emits a progress checkpoint for a processing stage. Progress is
// a fraction in [0, 1]; extra fields are merged into the event data.
func (e *Emitter) Checkpoint(stage string, progress float64, extra map[string]any) {
	data := map[string]any{
		"stage":    stage,
		"progress": progress,
	}
	for k, v := range extra {
		data[k] = v
	}
	e.Emit(Event{Type: EventCheckpoint, Data: data})
}

// Metric emits a named measurement.
func (e *Emitter) Metric(name string, value float64, unit string) {
	data := map[string]any{
		"name":  name,
		"value": value,
	}
	if unit != "" {
		data["unit"] = unit
	}
	e.Emit(Event{Type: EventMetric, Data: data})
}

// NodeStatus emits a coarse lifecycle status ("running", "succeeded",
// "failed") with an optional human-readable detail.
func (e *Emitter) NodeStatus(status, detail string) {
	data := map[string]any{"status": status}
	e.Emit(Event{Type: EventNodeStatus, Message: detail, Data: data})
}
