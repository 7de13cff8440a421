// Package stream parses the upstream chunked event protocol down to the three
// event kinds the relay acts on. The reader is deliberately tolerant: lines
// that do not decode and event kinds it does not know are skipped rather than
// failing the whole stream.
package stream

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

// Kind classifies an upstream stream event.
type Kind int

const (
	KindTextDelta Kind = iota + 1
	KindCompleted
	KindFailed
)

// Event is one upstream event the relay cares about. Text is set for
// KindTextDelta, ErrMessage for KindFailed when the upstream named a cause.
type Event struct {
	Kind       Kind
	Text       string
	ErrMessage string
}

// frame mirrors the upstream wire shape for the fields the relay reads.
type frame struct {
	Type     string `json:"type"`
	Delta    string `json:"delta"`
	Response struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	} `json:"response"`
}

// Reader reads upstream events from an io.Reader. A partial trailing line is
// retained by the scanner until the next read completes it, so frames split
// across network chunks reassemble correctly.
type Reader struct {
	scanner *bufio.Scanner
}

// NewReader creates a new event reader.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 256*1024), 1024*1024)
	return &Reader{scanner: scanner}
}

// Next returns the next relevant event, in upstream order.
// Returns nil, io.EOF when the stream ends.
func (r *Reader) Next() (*Event, error) {
	for r.scanner.Scan() {
		data, ok := strings.CutPrefix(r.scanner.Text(), "data:")
		if !ok {
			continue
		}
		data = strings.TrimSpace(data)
		if data == "" {
			continue
		}
		if data == "[DONE]" {
			return nil, io.EOF
		}
		var f frame
		if err := json.Unmarshal([]byte(data), &f); err != nil {
			continue
		}
		switch f.Type {
		case "response.output_text.delta":
			return &Event{Kind: KindTextDelta, Text: f.Delta}, nil
		case "response.completed":
			return &Event{Kind: KindCompleted}, nil
		case "response.failed":
			return &Event{Kind: KindFailed, ErrMessage: f.Response.Error.Message}, nil
		}
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}
