package events

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, out string) []Event {
	t.Helper()
	var evts []Event
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var evt Event
		require.NoError(t, json.Unmarshal([]byte(line), &evt), "line %q", line)
		evts = append(evts, evt)
	}
	return evts
}

func TestEmitSingleLine(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf)
	e.LogInfo("starting up", map[string]any{"attempt": 1})

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "\n"))

	evts := decodeLines(t, out)
	require.Len(t, evts, 1)
	assert.Equal(t, EventLog, evts[0].Type)
	assert.Equal(t, "info", evts[0].Level)
	assert.Equal(t, "starting up", evts[0].Message)
	assert.Equal(t, float64(1), evts[0].Data["attempt"])
}

func TestEmitTimestampIsUTC(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf)
	e.now = func() time.Time {
		return time.Date(2025, 3, 14, 9, 26, 53, 0, time.FixedZone("PST", -8*3600))
	}
	e.Checkpoint("load", 0.5, nil)

	evts := decodeLines(t, buf.String())
	assert.Equal(t, "2025-03-14T17:26:53Z", evts[0].Timestamp)
}

func TestEmitCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf)
	e.SetCorrelationID("run-123")
	e.LogError("failed", nil)
	e.Emit(Event{Type: EventLog, Level: "warn", CorrelationID: "override"})

	evts := decodeLines(t, buf.String())
	require.Len(t, evts, 2)
	assert.Equal(t, "run-123", evts[0].CorrelationID)
	assert.Equal(t, "override", evts[1].CorrelationID)
}

func TestCheckpointMergesExtra(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Checkpoint("transform", 1, map[string]any{"tokens_output": 3})

	evts := decodeLines(t, buf.String())
	assert.Equal(t, EventCheckpoint, evts[0].Type)
	assert.Equal(t, "transform", evts[0].Data["stage"])
	assert.Equal(t, float64(1), evts[0].Data["progress"])
	assert.Equal(t, float64(3), evts[0].Data["tokens_output"])
}

func TestMetricAndNodeStatus(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf)
	e.Metric("latency", 12.5, "ms")
	e.NodeStatus("succeeded", "all done")

	evts := decodeLines(t, buf.String())
	require.Len(t, evts, 2)
	assert.Equal(t, EventMetric, evts[0].Type)
	assert.Equal(t, "ms", evts[0].Data["unit"])
	assert.Equal(t, EventNodeStatus, evts[1].Type)
	assert.Equal(t, "succeeded", evts[1].Data["status"])
}

func TestEmitFlushesBufferedWriter(t *testing.T) {
	var raw bytes.Buffer
	buffered := bufio.NewWriter(&raw)
	New(buffered).LogInfo("hello", nil)

	assert.Zero(t, buffered.Buffered())
	assert.Contains(t, raw.String(), "hello")
}
