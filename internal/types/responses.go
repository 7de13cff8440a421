package types

// ResponsesInputItem is a single item in the Responses API input array.
// Flat discriminated union: Type determines which fields are relevant.
type ResponsesInputItem struct {
	Type      string             `json:"type"`
	Role      string             `json:"role,omitempty"`
	Content   []ResponsesContent `json:"content,omitempty"`
	Name      string             `json:"name,omitempty"`
	Arguments string             `json:"arguments,omitempty"`
	CallID    string             `json:"call_id,omitempty"`
	Output    string             `json:"output,omitempty"`
	Status    string             `json:"status,omitempty"`
}

// ResponsesContent is a content part of a Responses API message item.
type ResponsesContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// ResponsesTool describes a function tool in the Responses API format.
type ResponsesTool struct {
	Type        string `json:"type"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Parameters  any    `json:"parameters,omitempty"`
}

// ReasoningParam tunes upstream reasoning effort.
type ReasoningParam struct {
	Effort string `json:"effort,omitempty"`
}

// TextParam tunes upstream text generation.
type TextParam struct {
	Verbosity string `json:"verbosity,omitempty"`
}

// UpstreamPayload is the full request body sent to the completion service.
type UpstreamPayload struct {
	Model             string               `json:"model"`
	Instructions      string               `json:"instructions,omitempty"`
	Input             []ResponsesInputItem `json:"input"`
	Tools             []ResponsesTool      `json:"tools,omitempty"`
	ToolChoice        any                  `json:"tool_choice,omitempty"`
	ParallelToolCalls *bool                `json:"parallel_tool_calls,omitempty"`
	Stream            bool                 `json:"stream"`
	Reasoning         *ReasoningParam      `json:"reasoning,omitempty"`
	Text              *TextParam           `json:"text,omitempty"`
	MaxOutputTokens   int                  `json:"max_output_tokens,omitempty"`
}

// ForcedToolChoice builds a tool_choice value that compels the named function.
func ForcedToolChoice(name string) map[string]any {
	return map[string]any{"type": "function", "name": name}
}

// UserMessageItem wraps text as a user message input item.
func UserMessageItem(text string) ResponsesInputItem {
	return ResponsesInputItem{
		Type:    "message",
		Role:    RoleUser,
		Content: []ResponsesContent{{Type: "input_text", Text: text}},
	}
}

// AssistantMessageItem wraps text as an assistant message input item.
// Assistant history must use output_text content on the Responses API.
func AssistantMessageItem(text string) ResponsesInputItem {
	return ResponsesInputItem{
		Type:    "message",
		Role:    RoleAssistant,
		Content: []ResponsesContent{{Type: "output_text", Text: text}},
	}
}

// ConversationInput converts cleaned chat messages into Responses API input
// items. System messages are excluded; they travel in the instructions field.
func ConversationInput(messages []Message) []ResponsesInputItem {
	items := make([]ResponsesInputItem, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleUser:
			items = append(items, UserMessageItem(m.Content))
		case RoleAssistant:
			items = append(items, AssistantMessageItem(m.Content))
		}
	}
	return items
}

// SystemExtras collects the content of system messages, in order.
func SystemExtras(messages []Message) []string {
	var extras []string
	for _, m := range messages {
		if m.Role == RoleSystem {
			extras = append(extras, m.Content)
		}
	}
	return extras
}
