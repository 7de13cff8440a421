// Package stock builds the deterministic inventory payload the model is
// handed. Ordering and filtering happen entirely here: the model consumes the
// payload and is forbidden from reordering or inventing entries, so the sort
// must be reproducible with no ties left to chance.
package stock

import (
	"sort"

	"github.com/LielWeinfeld/pharmacist-assistant/internal/catalog"
	"github.com/LielWeinfeld/pharmacist-assistant/internal/types"
)

// Sort rules reported in Meta.SortedBy.
const (
	SortedRelative = "RELATIVE_TO_REQUESTED_STORE"
	SortedGlobal   = "GLOBAL_DISTANCE_RANK"
)

// orderRule is the contract line shipped to the consuming model.
const orderRule = "Preserve order exactly as given in stores[]. Do not reorder."

// MedicationSummary is the identity slice of a medication in the payload.
type MedicationSummary struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	ActiveIngredient     string `json:"activeIngredient"`
	PrescriptionRequired bool   `json:"prescriptionRequired"`
}

// RequestedStore reports the branch the user asked about. It is always
// present when a store was requested, even at zero quantity, because the
// caller needs to know explicitly that their branch is out of stock.
type RequestedStore struct {
	StoreLabel string `json:"storeLabel"`
	Quantity   int    `json:"quantity"`
}

// StoreEntry is one branch row. Order is 1-based and is the single source of
// truth for display sequence.
type StoreEntry struct {
	Order      int    `json:"order"`
	StoreLabel string `json:"storeLabel"`
	Quantity   int    `json:"quantity"`
}

// Meta documents how the rows were produced.
type Meta struct {
	ShowAllStores bool   `json:"showAllStores"`
	SortedBy      string `json:"sortedBy"`
	Rule          string `json:"rule"`
}

// Payload is the full inventory snapshot for one medication.
type Payload struct {
	Medication     MedicationSummary `json:"medication"`
	RequestedStore *RequestedStore   `json:"requestedStore"`
	Stores         []StoreEntry      `json:"stores"`
	Meta           Meta              `json:"meta"`
}

type row struct {
	storeNumber string
	label       string
	rank        int
	qty         int
}

// Build computes the payload for a medication, optionally anchored on a
// requested store. With a pivot, stores sort by absolute rank distance to it,
// ties broken toward the lower rank; without one, by global rank. The pivot
// itself is removed from the rows and reported as RequestedStore. Zero
// quantity rows are kept only when the text asks for all stores or the
// caller forces the all-stores view.
func Build(rawText string, med *catalog.Medication, requested *catalog.Store, lang types.Lang, cat *catalog.Catalog, forceAll bool) Payload {
	showAll := forceAll || IsAllStoresRequest(rawText) || IsAllStoresFollowup(rawText)

	rows := make([]row, 0, len(cat.Stores))
	for _, s := range cat.Stores {
		rows = append(rows, row{
			storeNumber: s.StoreNumber,
			label:       StoreLabel(s.Location, s.City, lang),
			rank:        s.DistanceRank,
			qty:         med.Quantity(s.StoreNumber),
		})
	}

	sortedBy := SortedGlobal
	if requested == nil {
		sort.Slice(rows, func(i, j int) bool {
			return rows[i].rank < rows[j].rank
		})
	} else {
		sortedBy = SortedRelative
		pivot := requested.DistanceRank
		sort.Slice(rows, func(i, j int) bool {
			di, dj := absDiff(rows[i].rank, pivot), absDiff(rows[j].rank, pivot)
			if di != dj {
				return di < dj
			}
			return rows[i].rank < rows[j].rank
		})
	}

	var requestedOut *RequestedStore
	if requested != nil {
		requestedOut = &RequestedStore{
			StoreLabel: StoreLabel(requested.Location, requested.City, lang),
			Quantity:   med.Quantity(requested.StoreNumber),
		}
		kept := rows[:0]
		for _, r := range rows {
			if r.storeNumber != requested.StoreNumber {
				kept = append(kept, r)
			}
		}
		rows = kept
	}

	entries := make([]StoreEntry, 0, len(rows))
	for _, r := range rows {
		if !showAll && r.qty <= 0 {
			continue
		}
		entries = append(entries, StoreEntry{
			Order:      len(entries) + 1,
			StoreLabel: r.label,
			Quantity:   r.qty,
		})
	}

	return Payload{
		Medication: MedicationSummary{
			ID:                   med.ID,
			Name:                 med.Name,
			ActiveIngredient:     med.ActiveIngredient,
			PrescriptionRequired: med.PrescriptionRequired,
		},
		RequestedStore: requestedOut,
		Stores:         entries,
		Meta: Meta{
			ShowAllStores: showAll,
			SortedBy:      sortedBy,
			Rule:          orderRule,
		},
	}
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
