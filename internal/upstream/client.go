// Package upstream talks to the completion service over its Responses API.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/LielWeinfeld/pharmacist-assistant/internal/types"
)

// upstreamHTTPTimeout is the maximum time allowed for one upstream request.
// Streaming responses can be long-lived, so the timeout is generous.
const upstreamHTTPTimeout = 5 * time.Minute

// Caps a single model turn. Answers in this product are short by design of
// the instructions, so a tight cap keeps latency and cost down.
const maxOutputTokens = 450

// ErrNoAPIKey is returned when the client has no credentials configured.
var ErrNoAPIKey = errors.New("no API key configured")

// httpClient is the shared HTTP client for upstream requests.
var httpClient = &http.Client{Timeout: upstreamHTTPTimeout}

// Request holds the parameters for one upstream call.
type Request struct {
	Instructions string
	Input        []types.ResponsesInputItem
	Tools        []types.ResponsesTool
	ToolChoice   any
	Stream       bool
}

// Client makes requests to the completion service.
type Client struct {
	APIKey  string
	Model   string
	BaseURL string
	Verbose bool
}

// NewClient creates a new upstream client.
func NewClient(apiKey, model, baseURL string, verbose bool) *Client {
	return &Client{APIKey: apiKey, Model: model, BaseURL: baseURL, Verbose: verbose}
}

// Do sends a Responses API request. The caller owns the returned body.
// Non-2xx statuses are drained into an *Error so the body never leaks.
func (c *Client) Do(ctx context.Context, req *Request) (*http.Response, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, ErrNoAPIKey
	}

	// A tool_choice without tools is an invalid pairing, so a tool-less
	// request leaves the field out entirely.
	var toolChoice any
	if len(req.Tools) > 0 {
		toolChoice = req.ToolChoice
		switch tc := toolChoice.(type) {
		case string:
			if tc != "auto" && tc != "none" {
				toolChoice = "auto"
			}
		case map[string]any:
			// keep as-is
		default:
			toolChoice = "auto"
		}
	}

	parallel := false
	payload := types.UpstreamPayload{
		Model:             c.Model,
		Instructions:      req.Instructions,
		Input:             req.Input,
		Tools:             req.Tools,
		ToolChoice:        toolChoice,
		ParallelToolCalls: &parallel,
		Stream:            req.Stream,
		Reasoning:         &types.ReasoningParam{Effort: "minimal"},
		Text:              &types.TextParam{Verbosity: "low"},
		MaxOutputTokens:   maxOutputTokens,
	}

	if c.Verbose {
		slog.Info("upstream.request",
			"model", payload.Model,
			"input_items", len(payload.Input),
			"tools", len(payload.Tools),
			"tool_choice", summarizeToolChoice(payload.ToolChoice),
			"stream", payload.Stream,
			"instructions_chars", len(payload.Instructions),
		)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")
	if req.Stream {
		httpReq.Header.Set("Accept", "text/event-stream")
	} else {
		httpReq.Header.Set("Accept", "application/json")
	}

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}

	if c.Verbose {
		requestID := upstreamRequestID(resp.Header)
		attrs := []any{"status", resp.StatusCode}
		if requestID != "" {
			attrs = append(attrs, "request_id", requestID)
		}
		slog.Info("upstream.response", attrs...)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		resp.Body.Close()
		return nil, &Error{StatusCode: resp.StatusCode, Body: raw, Headers: resp.Header}
	}

	return resp, nil
}

func summarizeToolChoice(choice any) string {
	switch v := choice.(type) {
	case nil:
		return "omitted"
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return "auto"
		}
		return v
	case map[string]any:
		kind, _ := v["type"].(string)
		if name, _ := v["name"].(string); name != "" {
			if kind != "" {
				return kind + ":" + name
			}
			return "function:" + name
		}
		if kind != "" {
			return kind
		}
		return "object"
	default:
		return fmt.Sprintf("%T", choice)
	}
}
