// Package resolve maps free user text to catalog entities. Matching is rule
// driven: ordered tables of alias terms are checked before looser name and
// ingredient matching, and the first rule that fires wins.
package resolve

import (
	"regexp"
	"strings"

	"github.com/LielWeinfeld/pharmacist-assistant/internal/catalog"
)

// MatchKind says which rule produced a resolution.
type MatchKind string

const (
	MatchAlias       MatchKind = "alias"
	MatchName        MatchKind = "name"
	MatchIngredient  MatchKind = "ingredient"
	MatchStoreNumber MatchKind = "storeNumber"
	MatchLocation    MatchKind = "location"
	MatchCityAlias   MatchKind = "cityAlias"
)

// Match is a resolved medication together with the rule that matched it.
type Match struct {
	Medication *catalog.Medication
	MatchedBy  MatchKind
}

// StoreMatch is a resolved store together with the rule that matched it.
type StoreMatch struct {
	Store     *catalog.Store
	MatchedBy MatchKind
}

// aliasRule maps colloquial or brand spellings to a canonical medication name.
type aliasRule struct {
	terms     []string
	canonical string
}

// medicationAliases are checked in order; earlier rules win.
var medicationAliases = []aliasRule{
	{terms: []string{"אדוויל", "אדויל"}, canonical: "advil"},
	{terms: []string{"נורופן"}, canonical: "nurofen"},
	{terms: []string{"אוגמנטין"}, canonical: "augmentin"},
	{terms: []string{"זירטק", "זירתק"}, canonical: "zyrtec"},
	{terms: []string{"אקמול", "פרצטמול", "פאראצטמול"}, canonical: "paracetamol"},
}

// locationRule maps branch keywords to a store number.
type locationRule struct {
	terms       []string
	storeNumber string
}

var locationAliases = []locationRule{
	{terms: []string{"רמת אביב", "ramat aviv"}, storeNumber: "101"},
	{terms: []string{"דיזנגוף", "dizengoff"}, storeNumber: "102"},
	{terms: []string{"פלורנטין", "florentin"}, storeNumber: "103"},
	{terms: []string{"יפו", "jaffa"}, storeNumber: "104"},
}

// cityRule maps city keywords to a canonical served city.
type cityRule struct {
	terms []string
	city  string
}

var cityAliases = []cityRule{
	{terms: []string{"תל אביב", "tel aviv", "tlv"}, city: "תל אביב"},
}

var storeNumberRe = regexp.MustCompile(`\b(\d{3})\b`)

// Resolver resolves medications and stores against an injected catalog.
type Resolver struct {
	cat *catalog.Catalog
}

// New creates a resolver over the given catalog.
func New(cat *catalog.Catalog) *Resolver {
	return &Resolver{cat: cat}
}

// Medication resolves free text to a medication. Priority is fixed:
// alias table, then canonical name substring, then active ingredient
// substring. Returns nil when nothing matches.
func (r *Resolver) Medication(text string) *Match {
	t := Normalize(text)
	if t == "" {
		return nil
	}

	for _, rule := range medicationAliases {
		for _, term := range rule.terms {
			if strings.Contains(t, term) {
				if med := r.medicationByName(rule.canonical); med != nil {
					return &Match{Medication: med, MatchedBy: MatchAlias}
				}
			}
		}
	}

	for i := range r.cat.Medications {
		m := &r.cat.Medications[i]
		if strings.Contains(t, strings.ToLower(m.Name)) {
			return &Match{Medication: m, MatchedBy: MatchName}
		}
	}

	for i := range r.cat.Medications {
		m := &r.cat.Medications[i]
		ai := Normalize(m.ActiveIngredient)
		if ai != "" && strings.Contains(t, ai) {
			return &Match{Medication: m, MatchedBy: MatchIngredient}
		}
	}

	return nil
}

// Store resolves free text to a store. Priority: explicit store number
// token, then curated location keyword, then city keyword (which picks the
// closest branch in that city). Returns nil when nothing matches.
func (r *Resolver) Store(text string) *StoreMatch {
	t := Normalize(text)
	if t == "" {
		return nil
	}

	for _, num := range storeNumberRe.FindAllString(t, -1) {
		if s := r.cat.StoreByNumber(num); s != nil {
			return &StoreMatch{Store: s, MatchedBy: MatchStoreNumber}
		}
	}

	for _, rule := range locationAliases {
		for _, term := range rule.terms {
			if strings.Contains(t, term) {
				if s := r.cat.StoreByNumber(rule.storeNumber); s != nil {
					return &StoreMatch{Store: s, MatchedBy: MatchLocation}
				}
			}
		}
	}

	for _, rule := range cityAliases {
		for _, term := range rule.terms {
			if strings.Contains(t, term) {
				if s := r.cat.ClosestInCity(rule.city); s != nil {
					return &StoreMatch{Store: s, MatchedBy: MatchCityAlias}
				}
			}
		}
	}

	return nil
}

// MedicationFromContext scans the conversation newest-first over user and
// assistant turns and returns the first medication mentioned.
func (r *Resolver) MedicationFromContext(history []string) *Match {
	for i := len(history) - 1; i >= 0; i-- {
		if m := r.Medication(history[i]); m != nil {
			return m
		}
	}
	return nil
}

func (r *Resolver) medicationByName(lowerName string) *catalog.Medication {
	for i := range r.cat.Medications {
		if strings.ToLower(r.cat.Medications[i].Name) == lowerName {
			return &r.cat.Medications[i]
		}
	}
	return nil
}
