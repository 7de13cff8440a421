// Package sse emits the client-facing event protocol. Every frame is a named
// event followed by one JSON data line; the stream always ends with exactly
// one "done" or "error" frame.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Event kinds sent to the client.
const (
	KindDelta      = "delta"
	KindToolCall   = "tool_call"
	KindToolResult = "tool_result"
	KindDone       = "done"
	KindError      = "error"
)

// Writer streams events to a single HTTP response. It is not safe for
// concurrent use; the chat handler drives it from one goroutine.
type Writer struct {
	w        http.ResponseWriter
	flusher  http.Flusher
	terminal bool
}

// NewWriter prepares w for event streaming and writes the SSE headers.
func NewWriter(w http.ResponseWriter) *Writer {
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")

	flusher, _ := w.(http.Flusher)
	return &Writer{w: w, flusher: flusher}
}

// Terminated reports whether a done or error frame has already been sent.
func (s *Writer) Terminated() bool {
	return s.terminal
}

func (s *Writer) writeEvent(kind string, payload any) {
	if s.terminal {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	fmt.Fprintf(s.w, "event: %s\n", kind)
	fmt.Fprintf(s.w, "data: %s\n\n", data)
	if s.flusher != nil {
		s.flusher.Flush()
	}
}

// Delta sends an incremental text chunk. Empty chunks are dropped.
func (s *Writer) Delta(text string) {
	if text == "" {
		return
	}
	s.writeEvent(KindDelta, map[string]string{"delta": text})
}

// ToolCall announces that a tool is about to run.
func (s *Writer) ToolCall(id, name string, input json.RawMessage) {
	if len(input) == 0 {
		input = json.RawMessage("{}")
	}
	s.writeEvent(KindToolCall, map[string]any{
		"id":    id,
		"name":  name,
		"input": input,
	})
}

// ToolResult reports the outcome of a completed tool run.
func (s *Writer) ToolResult(id, name string, output any) {
	s.writeEvent(KindToolResult, map[string]any{
		"id":     id,
		"name":   name,
		"output": output,
	})
}

// Done terminates the stream normally. Further frames are suppressed.
func (s *Writer) Done() {
	s.writeEvent(KindDone, map[string]any{})
	s.terminal = true
}

// Error terminates the stream with a client-safe message.
func (s *Writer) Error(message string) {
	s.writeEvent(KindError, map[string]string{"message": message})
	s.terminal = true
}
