package resolve

import (
	"regexp"
	"strings"
)

// Availability-intent and city-extraction patterns. These run over the raw
// lowercased text rather than the normalized form because the extraction
// anchors on punctuation and word spacing.
var (
	hebrewIntentRe = regexp.MustCompile(`(?:^|\s)(?:האם\s+)?יש(?:\s|$)`)

	englishCityRe = regexp.MustCompile(`\bin\s+([a-z][a-z\s'-]{1,30})`)

	// "יש ב<city>", an availability question naming a location directly.
	hebrewCityAfterYeshRe = regexp.MustCompile(`(?:^|\s)(?:האם\s+)?יש\s+ב\s*([א-ת]{2,}(?:\s+[א-ת]{2,})?)(?:[\s?.,!]|$)`)

	// "ב<city> יש", location-first phrasing.
	hebrewCityBeforeYeshRe = regexp.MustCompile(`(?:^|\s)ב\s*([א-ת]{2,}(?:\s+[א-ת]{2,})?)(?:\s+יש(?:[\s?.,!]|$)|\?)`)
)

func hasAvailabilityIntent(t string) bool {
	if hebrewIntentRe.MatchString(t) {
		return true
	}
	return strings.Contains(t, "available") ||
		strings.Contains(t, "in stock") ||
		strings.Contains(t, "do you have") ||
		strings.Contains(t, "do u have")
}

// MentionedCity extracts a city mention from the text. A city from the served
// list is returned in its canonical form. When the text carries an explicit
// availability intent, a free-form location token is pulled out even if it is
// unknown, so the caller can reject it with a helpful message. Returns ""
// when no city is mentioned at all.
func MentionedCity(text string, servedCities []string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return ""
	}

	for _, city := range servedCities {
		if strings.Contains(t, strings.ToLower(city)) {
			return city
		}
	}

	if !hasAvailabilityIntent(t) {
		return ""
	}

	// "in stock" is an availability idiom, not a location; drop it before
	// extracting so "stock" is never taken for a city.
	enText := strings.ReplaceAll(t, "in stock", " ")
	if m := englishCityRe.FindStringSubmatch(enText); m != nil {
		return strings.TrimRight(strings.TrimSpace(m[1]), "?.!,")
	}
	if m := hebrewCityAfterYeshRe.FindStringSubmatch(t); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := hebrewCityBeforeYeshRe.FindStringSubmatch(t); m != nil {
		return strings.TrimSpace(m[1])
	}

	return ""
}

// CityServed reports whether the mentioned city is on the served list,
// compared case-insensitively.
func CityServed(city string, servedCities []string) bool {
	c := strings.ToLower(strings.TrimSpace(city))
	for _, served := range servedCities {
		if strings.ToLower(served) == c {
			return true
		}
	}
	return false
}
