package types

import "testing"

func TestCleanMessages(t *testing.T) {
	in := []Message{
		{Role: "user", Content: "  hello  "},
		{Role: "tool", Content: "dropped role"},
		{Role: "assistant", Content: "   "},
		{Role: "system", Content: "keep"},
	}
	out := CleanMessages(in)
	if len(out) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(out))
	}
	if out[0].Content != "hello" {
		t.Errorf("expected trimmed content, got %q", out[0].Content)
	}
	if out[1].Role != RoleSystem {
		t.Errorf("expected system message kept, got %q", out[1].Role)
	}
}

func TestLastUserText(t *testing.T) {
	msgs := []Message{
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "reply"},
		{Role: "user", Content: "second"},
	}
	if got := LastUserText(msgs); got != "second" {
		t.Errorf("expected second, got %q", got)
	}
	if got := LastUserText(nil); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestDetectLang(t *testing.T) {
	tests := []struct {
		text string
		want Lang
	}{
		{"is advil available?", LangEnglish},
		{"יש אדוויל בדיזנגוף?", LangHebrew},
		{"123?", LangHebrew},
		{"יש Advil?", LangEnglish},
	}
	for _, tt := range tests {
		if got := DetectLang(tt.text); got != tt.want {
			t.Errorf("DetectLang(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestConversationInput(t *testing.T) {
	msgs := []Message{
		{Role: "system", Content: "sys"},
		{Role: "user", Content: "q"},
		{Role: "assistant", Content: "a"},
	}
	items := ConversationInput(msgs)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Content[0].Type != "input_text" {
		t.Errorf("user item content type = %q", items[0].Content[0].Type)
	}
	if items[1].Content[0].Type != "output_text" {
		t.Errorf("assistant item content type = %q", items[1].Content[0].Type)
	}
}
