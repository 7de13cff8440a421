// Package guardrail blocks personal-advice questions before any other
// processing. This is a hard safety boundary: on a match the turn ends with a
// fixed advisory and neither the tools nor the upstream service are touched.
package guardrail

import (
	"regexp"
	"strings"

	"github.com/LielWeinfeld/pharmacist-assistant/internal/types"
)

const (
	advisoryHe = "אני יכולה לתת מידע עובדתי כללי מהעלון על תרופות (שימושים, רכיבים פעילים, מרשם/ללא מרשם, הנחיות כלליות). אם זו שאלה אישית לגבי מינון/מצב רפואי - כדאי להתייעץ עם רוקח/רופא."
	advisoryEn = "I can share general, factual leaflet information (uses, active ingredients, Rx/OTC, general label directions). For personal dosing/medical decisions, please consult a pharmacist or clinician."
)

// advicePatterns is an ordered table of advice-seeking phrasings. Matching is
// done against the raw user text, not the normalized form, so the patterns
// can anchor on punctuation-free phrase shapes.
var advicePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)מה (כדאי|מומלץ) (לעשות|לקחת)`),
	regexp.MustCompile(`(?i)האם (כדאי|מותר) (לי )?(לקחת|לשלב)`),
	regexp.MustCompile(`(?i)כמה (כדאי|מומלץ) לקחת`),
	regexp.MustCompile(`(?i)אבחון|לאבחן|מה יש לי`),
	regexp.MustCompile(`(?i)should i (take|use|combine)`),
	regexp.MustCompile(`(?i)what should i do`),
	regexp.MustCompile(`(?i)diagnose|diagnosis`),
}

// Check classifies the raw user text. On an advice-seeking match it returns
// the localized advisory the caller must stream before terminating the turn;
// otherwise it returns "".
func Check(userText string) string {
	text := strings.TrimSpace(userText)
	if text == "" {
		return ""
	}
	for _, p := range advicePatterns {
		if p.MatchString(text) {
			if types.ContainsHebrew(text) {
				return advisoryHe
			}
			return advisoryEn
		}
	}
	return ""
}
