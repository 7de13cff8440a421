package types

import "strings"

// Message roles accepted on the inbound chat surface.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn in the conversation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the inbound body of POST /api/chat/stream.
type ChatRequest struct {
	Messages []Message `json:"messages"`
}

// Lang selects the reply language for localized strings.
type Lang string

const (
	LangHebrew  Lang = "he"
	LangEnglish Lang = "en"
)

// CleanMessages drops messages with unknown roles or empty content and trims
// the content of the survivors. The relative order is preserved.
func CleanMessages(messages []Message) []Message {
	cleaned := make([]Message, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem, RoleUser, RoleAssistant:
		default:
			continue
		}
		content := strings.TrimSpace(m.Content)
		if content == "" {
			continue
		}
		cleaned = append(cleaned, Message{Role: m.Role, Content: content})
	}
	return cleaned
}

// LastUserText returns the content of the most recent user message, or "".
func LastUserText(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return messages[i].Content
		}
	}
	return ""
}

// DetectLang picks the reply language from the user text: any ASCII letter
// means English, otherwise Hebrew.
func DetectLang(text string) Lang {
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return LangEnglish
		}
	}
	return LangHebrew
}

// ContainsHebrew reports whether the text has at least one Hebrew letter.
func ContainsHebrew(text string) bool {
	for _, r := range text {
		if r >= 0x0590 && r <= 0x05FF {
			return true
		}
	}
	return false
}
