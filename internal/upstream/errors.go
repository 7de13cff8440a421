package upstream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Error describes a non-2xx upstream response with the body already drained.
type Error struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

func (e *Error) Error() string {
	status := fmt.Sprintf("%d", e.StatusCode)
	if text := http.StatusText(e.StatusCode); text != "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, text)
	}

	msg := ""
	switch {
	case extractErrorMessage(e.Body) != "":
		msg = fmt.Sprintf("upstream returned HTTP %s: %s", status, extractErrorMessage(e.Body))
	case compactBodyPreview(e.Body, 280) != "":
		msg = fmt.Sprintf("upstream returned HTTP %s with unparsed body: %s", status, compactBodyPreview(e.Body, 280))
	default:
		msg = fmt.Sprintf("upstream returned HTTP %s with empty error body", status)
	}

	if reqID := upstreamRequestID(e.Headers); reqID != "" {
		return fmt.Sprintf("%s (request_id: %s)", msg, reqID)
	}
	return msg
}

func upstreamRequestID(headers http.Header) string {
	if headers == nil {
		return ""
	}
	return firstNonEmpty(
		headers.Get("x-request-id"),
		headers.Get("x-openai-request-id"),
		headers.Get("openai-request-id"),
		headers.Get("request-id"),
		headers.Get("cf-ray"),
	)
}

func extractErrorMessage(rawBody []byte) string {
	trimmed := strings.TrimSpace(string(rawBody))
	if trimmed == "" {
		return ""
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return ""
	}
	return errorMessageFromMap(payload)
}

func errorMessageFromMap(payload map[string]any) string {
	if payload == nil {
		return ""
	}

	if v := trimmedString(payload["message"]); v != "" {
		return v
	}
	if v := trimmedString(payload["detail"]); v != "" {
		return v
	}

	if nested, ok := payload["error"].(map[string]any); ok {
		if msg := errorMessageFromMap(nested); msg != "" {
			return msg
		}
	}
	if v := trimmedString(payload["error"]); v != "" {
		return v
	}

	if list, ok := payload["errors"].([]any); ok {
		for _, item := range list {
			if entry, ok := item.(map[string]any); ok {
				if msg := errorMessageFromMap(entry); msg != "" {
					return msg
				}
			}
			if v := trimmedString(item); v != "" {
				return v
			}
		}
	}

	return ""
}

func trimmedString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func compactBodyPreview(rawBody []byte, maxLen int) string {
	trimmed := strings.TrimSpace(string(rawBody))
	if trimmed == "" {
		return ""
	}
	clean := strings.Join(strings.Fields(trimmed), " ")
	if len(clean) <= maxLen {
		return clean
	}
	return clean[:maxLen] + "..."
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			return v
		}
	}
	return ""
}
