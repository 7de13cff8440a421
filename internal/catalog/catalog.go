// Package catalog holds the static reference dataset: the store network and
// the medication list with per-store stock. The catalog is loaded once at
// startup and is read-only afterwards, so request handlers never lock it.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed dataset.yaml
var defaultDataset []byte

// Store is a single pharmacy branch. DistanceRank is a strict total order
// used as a proxy for physical proximity.
type Store struct {
	StoreNumber  string `yaml:"storeNumber" json:"storeNumber"`
	Location     string `yaml:"location" json:"location"`
	City         string `yaml:"city" json:"city"`
	DistanceRank int    `yaml:"distanceRank" json:"distanceRank"`
}

// Medication is one catalog entry with its per-store stock quantities.
type Medication struct {
	ID                   string         `yaml:"id" json:"id"`
	Name                 string         `yaml:"name" json:"name"`
	ActiveIngredient     string         `yaml:"activeIngredient" json:"activeIngredient"`
	PrescriptionRequired bool           `yaml:"prescriptionRequired" json:"prescriptionRequired"`
	LabelUsage           string         `yaml:"labelUsage" json:"labelUsage"`
	StockByStore         map[string]int `yaml:"stockByStore" json:"stockByStore"`
}

// Quantity returns the stock of this medication at the given store.
// Missing entries and negative values read as zero.
func (m *Medication) Quantity(storeNumber string) int {
	q, ok := m.StockByStore[storeNumber]
	if !ok || q < 0 {
		return 0
	}
	return q
}

// User is a registered chain member.
type User struct {
	ID       string `yaml:"id" json:"id"`
	FullName string `yaml:"fullName" json:"fullName"`
	Locale   string `yaml:"locale" json:"locale"`
	AgeGroup string `yaml:"ageGroup" json:"ageGroup"`
	MemberID string `yaml:"memberId" json:"memberId"`
}

// Catalog is the loaded reference dataset.
type Catalog struct {
	Stores      []Store      `yaml:"stores"`
	Medications []Medication `yaml:"medications"`
	Users       []User       `yaml:"users"`
}

// Default loads the embedded dataset.
func Default() (*Catalog, error) {
	return Parse(defaultDataset)
}

// LoadFile loads a dataset from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML dataset.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	seenNumber := make(map[string]bool, len(c.Stores))
	seenRank := make(map[int]bool, len(c.Stores))
	for _, s := range c.Stores {
		if s.StoreNumber == "" {
			return fmt.Errorf("store with empty storeNumber")
		}
		if seenNumber[s.StoreNumber] {
			return fmt.Errorf("duplicate storeNumber %q", s.StoreNumber)
		}
		seenNumber[s.StoreNumber] = true
		if s.DistanceRank <= 0 {
			return fmt.Errorf("store %s: distanceRank must be positive", s.StoreNumber)
		}
		if seenRank[s.DistanceRank] {
			return fmt.Errorf("store %s: duplicate distanceRank %d", s.StoreNumber, s.DistanceRank)
		}
		seenRank[s.DistanceRank] = true
	}
	seenMed := make(map[string]bool, len(c.Medications))
	for _, m := range c.Medications {
		if m.ID == "" || m.Name == "" {
			return fmt.Errorf("medication with empty id or name")
		}
		if seenMed[m.ID] {
			return fmt.Errorf("duplicate medication id %q", m.ID)
		}
		seenMed[m.ID] = true
		for store, qty := range m.StockByStore {
			if qty < 0 {
				return fmt.Errorf("medication %s: negative quantity at store %s", m.ID, store)
			}
			if !seenNumber[store] {
				return fmt.Errorf("medication %s: stock for unknown store %s", m.ID, store)
			}
		}
	}
	return nil
}

// MedicationByID returns the medication with the given id, or nil.
func (c *Catalog) MedicationByID(id string) *Medication {
	for i := range c.Medications {
		if c.Medications[i].ID == id {
			return &c.Medications[i]
		}
	}
	return nil
}

// StoreByNumber returns the store with the given number, or nil.
func (c *Catalog) StoreByNumber(number string) *Store {
	for i := range c.Stores {
		if c.Stores[i].StoreNumber == number {
			return &c.Stores[i]
		}
	}
	return nil
}

// StoresByRank returns a copy of the stores sorted by ascending distance rank.
func (c *Catalog) StoresByRank() []Store {
	sorted := make([]Store, len(c.Stores))
	copy(sorted, c.Stores)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DistanceRank < sorted[j].DistanceRank
	})
	return sorted
}

// Cities returns the distinct served cities in order of first appearance.
func (c *Catalog) Cities() []string {
	seen := make(map[string]bool, len(c.Stores))
	var cities []string
	for _, s := range c.Stores {
		if s.City == "" || seen[s.City] {
			continue
		}
		seen[s.City] = true
		cities = append(cities, s.City)
	}
	return cities
}

// ClosestInCity returns the store with the lowest distance rank in the given
// city, or nil when the city is not served.
func (c *Catalog) ClosestInCity(city string) *Store {
	var best *Store
	for i := range c.Stores {
		s := &c.Stores[i]
		if s.City != city {
			continue
		}
		if best == nil || s.DistanceRank < best.DistanceRank {
			best = s
		}
	}
	return best
}

// UserByMemberID returns the member with the given id, or nil.
func (c *Catalog) UserByMemberID(memberID string) *User {
	for i := range c.Users {
		if c.Users[i].MemberID == memberID {
			return &c.Users[i]
		}
	}
	return nil
}
