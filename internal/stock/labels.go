package stock

import (
	"fmt"
	"strings"

	"github.com/LielWeinfeld/pharmacist-assistant/internal/types"
)

// English transliterations for the dataset's Hebrew place names. Unknown
// names fall through untranslated.
var locationEN = map[string]string{
	"רמת אביב": "Ramat Aviv",
	"דיזנגוף":  "Dizengoff",
	"פלורנטין": "Florentin",
	"יפו":      "Jaffa",
}

var cityEN = map[string]string{
	"תל אביב": "Tel Aviv",
}

// StoreLabel renders the user-facing branch label in the reply language.
// Store numbers are never part of the label.
func StoreLabel(location, city string, lang types.Lang) string {
	if lang == types.LangHebrew {
		return location + ", " + city
	}
	loc := location
	if en, ok := locationEN[location]; ok {
		loc = en
	}
	c := city
	if en, ok := cityEN[city]; ok {
		c = en
	}
	return loc + ", " + c
}

// LocationName renders just the branch location in the reply language.
func LocationName(location string, lang types.Lang) string {
	if lang == types.LangEnglish {
		if en, ok := locationEN[location]; ok {
			return en
		}
	}
	return location
}

// CitiesSummary describes which cities the chain serves, for rejecting
// questions about unserved locations.
func CitiesSummary(cities []string, lang types.Lang) string {
	seen := make(map[string]bool, len(cities))
	var uniq []string
	for _, c := range cities {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		if lang == types.LangEnglish {
			if en, ok := cityEN[c]; ok {
				c = en
			}
		}
		uniq = append(uniq, c)
	}

	if lang == types.LangHebrew {
		switch len(uniq) {
		case 0:
			return "לרשת אין סניפים מוגדרים כרגע."
		case 1:
			return fmt.Sprintf("לרשת יש סניפים רק ב%s.", uniq[0])
		case 2:
			return fmt.Sprintf("לרשת יש סניפים רק ב%s ו%s.", uniq[0], uniq[1])
		default:
			return fmt.Sprintf("לרשת יש סניפים רק ב%s ו%s.",
				strings.Join(uniq[:len(uniq)-1], ", "), uniq[len(uniq)-1])
		}
	}

	switch len(uniq) {
	case 0:
		return "The chain currently has no configured branches."
	case 1:
		return fmt.Sprintf("The chain has branches only in %s.", uniq[0])
	case 2:
		return fmt.Sprintf("The chain has branches only in %s and %s.", uniq[0], uniq[1])
	default:
		return fmt.Sprintf("The chain has branches only in %s and %s.",
			strings.Join(uniq[:len(uniq)-1], ", "), uniq[len(uniq)-1])
	}
}

// CityNotServedMessage is the full user-facing rejection for an unserved city.
func CityNotServedMessage(city string, cities []string, lang types.Lang) string {
	summary := CitiesSummary(cities, lang)
	if lang == types.LangHebrew {
		return fmt.Sprintf("%s\nאין לנו סניפים ב%s.", summary, city)
	}
	return fmt.Sprintf("%s\nWe don’t have any branches in %s.", summary, city)
}
