package stock

import (
	"strings"

	"github.com/LielWeinfeld/pharmacist-assistant/internal/resolve"
	"github.com/LielWeinfeld/pharmacist-assistant/internal/types"
)

var stockKeywords = []string{
	// Hebrew stock intent
	"מלאי", "במלאי", "זמין", "זמינות", "יש לכם", "יש בסניף", "בסניף",
	"איפה יש", "איפה ניתן למצוא",
	// English stock intent
	"stock", "in stock", "available", "availability", "do you have",
	"at the store", "avaliable",
}

// IsStockQuestion reports whether the text reads like an inventory question.
// Used to force the stock tool on the first planning turn.
func IsStockQuestion(text string) bool {
	t := strings.ToLower(text)
	for _, kw := range stockKeywords {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}

var allStoresPhrases = []string{"כל הסניפים", "all stores", "every store"}

// IsAllStoresRequest reports an explicit ask to list every branch.
func IsAllStoresRequest(text string) bool {
	t := resolve.Normalize(text)
	for _, p := range allStoresPhrases {
		if strings.Contains(t, p) {
			return true
		}
	}
	return false
}

var followupPhrases = []string{
	"עוד", "נוספים", "אחרים",
	"additional", "other stores", "all stores", "anywhere",
}

// IsAllStoresFollowup detects a follow-up asking about further branches.
func IsAllStoresFollowup(text string) bool {
	t := strings.ToLower(text)
	for _, p := range followupPhrases {
		if strings.Contains(t, p) {
			return true
		}
	}
	return false
}

var assistantStockMarkers = []string{
	"זמינות", "סניפים", "כמות", "מלאי",
	"in-stock", "availability", "otc", "qty",
}

// LastAssistantWasStockQuestion checks whether the most recent assistant turn
// was part of a stock conversation, which keeps a follow-up in stock mode.
func LastAssistantWasStockQuestion(messages []types.Message) bool {
	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]
		if m.Role != types.RoleAssistant {
			continue
		}
		t := strings.ToLower(m.Content)
		for _, marker := range assistantStockMarkers {
			if strings.Contains(t, marker) {
				return true
			}
		}
		return false
	}
	return false
}

var askedForStoreMarkers = []string{"רוצה לבדוק", "איזה סניף", "check a specific store"}

// LastAssistantAskedForStore checks whether the assistant just offered to
// check a specific branch, so a bare "yes" means "pick me a store".
func LastAssistantAskedForStore(messages []types.Message) bool {
	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]
		if m.Role != types.RoleAssistant {
			continue
		}
		for _, marker := range askedForStoreMarkers {
			if strings.Contains(m.Content, marker) {
				return true
			}
		}
		return false
	}
	return false
}

var yesNoAnswers = []string{"כן", "כן.", "yes", "sure", "ok", "אוקיי", "בבקשה"}

// IsYesNo reports whether the text is a bare affirmative.
func IsYesNo(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, y := range yesNoAnswers {
		if t == y {
			return true
		}
	}
	return false
}
