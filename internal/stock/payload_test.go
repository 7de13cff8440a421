package stock

import (
	"testing"

	"github.com/LielWeinfeld/pharmacist-assistant/internal/catalog"
	"github.com/LielWeinfeld/pharmacist-assistant/internal/types"
)

func loadCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return cat
}

func checkOrderContiguous(t *testing.T, entries []StoreEntry) {
	t.Helper()
	for i, e := range entries {
		if e.Order != i+1 {
			t.Fatalf("order not contiguous: entry %d has order %d", i, e.Order)
		}
	}
}

func TestBuildRequestedStoreZeroQuantity(t *testing.T) {
	cat := loadCatalog(t)
	med := cat.MedicationByID("med-1") // Advil: 101:5 102:0 103:3 104:0
	store := cat.StoreByNumber("102")

	p := Build("is advil available at dizengoff?", med, store, types.LangEnglish, cat, false)

	if p.RequestedStore == nil {
		t.Fatal("expected requestedStore present")
	}
	if p.RequestedStore.Quantity != 0 {
		t.Errorf("requestedStore quantity = %d, want 0", p.RequestedStore.Quantity)
	}
	if p.RequestedStore.StoreLabel != "Dizengoff, Tel Aviv" {
		t.Errorf("requestedStore label = %q", p.RequestedStore.StoreLabel)
	}
	for _, e := range p.Stores {
		if e.StoreLabel == p.RequestedStore.StoreLabel {
			t.Errorf("requested store leaked into stores[]: %+v", e)
		}
	}
	if p.Meta.SortedBy != SortedRelative {
		t.Errorf("sortedBy = %q, want %q", p.Meta.SortedBy, SortedRelative)
	}
	checkOrderContiguous(t, p.Stores)

	// Pivot rank 2: store 101 (|1-2|=1) and 103 (|3-2|=1) tie, lower rank
	// wins; 104 has qty 0 and is filtered.
	if len(p.Stores) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(p.Stores))
	}
	if p.Stores[0].StoreLabel != "Ramat Aviv, Tel Aviv" || p.Stores[0].Quantity != 5 {
		t.Errorf("first entry = %+v", p.Stores[0])
	}
	if p.Stores[1].StoreLabel != "Florentin, Tel Aviv" || p.Stores[1].Quantity != 3 {
		t.Errorf("second entry = %+v", p.Stores[1])
	}
}

func TestBuildNoStoreGlobalOrder(t *testing.T) {
	cat := loadCatalog(t)
	med := cat.MedicationByID("med-3") // Nurofen: 101:0 102:2 103:0 104:1

	p := Build("יש נורופן?", med, nil, types.LangHebrew, cat, false)

	if p.RequestedStore != nil {
		t.Fatalf("expected no requestedStore, got %+v", p.RequestedStore)
	}
	if p.Meta.SortedBy != SortedGlobal {
		t.Errorf("sortedBy = %q, want %q", p.Meta.SortedBy, SortedGlobal)
	}
	// Only the two in-stock branches, ascending global rank.
	if len(p.Stores) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(p.Stores))
	}
	if p.Stores[0].StoreLabel != "דיזנגוף, תל אביב" || p.Stores[0].Quantity != 2 {
		t.Errorf("first entry = %+v", p.Stores[0])
	}
	if p.Stores[1].StoreLabel != "יפו, תל אביב" || p.Stores[1].Quantity != 1 {
		t.Errorf("second entry = %+v", p.Stores[1])
	}
	checkOrderContiguous(t, p.Stores)
}

func TestBuildAllStoresKeepsZeroQuantity(t *testing.T) {
	cat := loadCatalog(t)
	med := cat.MedicationByID("med-1")

	p := Build("show advil in all stores", med, nil, types.LangEnglish, cat, false)

	if !p.Meta.ShowAllStores {
		t.Error("expected showAllStores true")
	}
	if len(p.Stores) != 4 {
		t.Fatalf("expected all 4 stores, got %d", len(p.Stores))
	}
	checkOrderContiguous(t, p.Stores)
}

func TestBuildForceAll(t *testing.T) {
	cat := loadCatalog(t)
	med := cat.MedicationByID("med-1")

	p := Build("advil stock", med, nil, types.LangEnglish, cat, true)
	if !p.Meta.ShowAllStores {
		t.Error("expected forced showAllStores true")
	}
	if len(p.Stores) != 4 {
		t.Fatalf("expected all 4 stores, got %d", len(p.Stores))
	}
}

func TestBuildSortIdempotent(t *testing.T) {
	cat := loadCatalog(t)
	med := cat.MedicationByID("med-5") // Zyrtec: 2 everywhere, full of ties
	store := cat.StoreByNumber("103")

	first := Build("zyrtec in all stores", med, store, types.LangEnglish, cat, false)
	second := Build("zyrtec in all stores", med, store, types.LangEnglish, cat, false)

	if len(first.Stores) != len(second.Stores) {
		t.Fatalf("lengths differ: %d vs %d", len(first.Stores), len(second.Stores))
	}
	for i := range first.Stores {
		if first.Stores[i] != second.Stores[i] {
			t.Errorf("entry %d differs: %+v vs %+v", i, first.Stores[i], second.Stores[i])
		}
	}
	// Pivot rank 3: ties |2-3|=|4-3| resolved toward the lower rank.
	want := []string{"Dizengoff, Tel Aviv", "Jaffa, Tel Aviv", "Ramat Aviv, Tel Aviv"}
	for i, label := range want {
		if first.Stores[i].StoreLabel != label {
			t.Errorf("entry %d = %q, want %q", i, first.Stores[i].StoreLabel, label)
		}
	}
}

func TestCatalogNotMutatedByBuild(t *testing.T) {
	cat := loadCatalog(t)
	med := cat.MedicationByID("med-1")
	store := cat.StoreByNumber("104")

	Build("advil", med, store, types.LangEnglish, cat, false)

	for i, want := range []string{"101", "102", "103", "104"} {
		if cat.Stores[i].StoreNumber != want {
			t.Fatalf("catalog store order mutated at %d: %s", i, cat.Stores[i].StoreNumber)
		}
	}
}
