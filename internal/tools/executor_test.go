package tools

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/LielWeinfeld/pharmacist-assistant/internal/catalog"
	"github.com/LielWeinfeld/pharmacist-assistant/internal/types"
)

func testExecutor(t *testing.T) *Executor {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return NewExecutor(cat)
}

func args(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal args: %v", err)
	}
	return data
}

func TestUnknownTool(t *testing.T) {
	e := testExecutor(t)
	out := e.Execute("no_such_tool", nil, Conversation{})
	f, ok := out.(Failure)
	if !ok || f.Reason != ReasonUnknownTool {
		t.Fatalf("expected UNKNOWN_TOOL failure, got %#v", out)
	}
}

func TestGetMedicationInfo(t *testing.T) {
	e := testExecutor(t)
	convo := Conversation{UserText: "tell me about advil", Lang: types.LangEnglish}

	out := e.Execute(NameGetMedicationInfo, args(t, map[string]string{"query": "advil"}), convo)
	info, ok := out.(medicationOut)
	if !ok {
		t.Fatalf("unexpected result type %#v", out)
	}
	if info.Medication.Name != "Advil" || info.Medication.ActiveIngredient != "Ibuprofen" {
		t.Errorf("unexpected medication %+v", info.Medication)
	}
	if info.Medication.StockByStore != nil {
		t.Error("stock map must not leak through get_medication_info")
	}
}

func TestMedicationContextFallback(t *testing.T) {
	e := testExecutor(t)
	convo := Conversation{
		Messages: []types.Message{
			{Role: types.RoleUser, Content: "tell me about nurofen"},
			{Role: types.RoleAssistant, Content: "Nurofen is an OTC ibuprofen brand."},
			{Role: types.RoleUser, Content: "is it in stock?"},
		},
		UserText: "is it in stock?",
		Lang:     types.LangEnglish,
	}

	out := e.Execute(NameGetMedicationInfo, args(t, map[string]string{"query": "it"}), convo)
	info, ok := out.(medicationOut)
	if !ok {
		t.Fatalf("expected fallback hit, got %#v", out)
	}
	if info.Medication.Name != "Nurofen" {
		t.Errorf("expected Nurofen from context, got %s", info.Medication.Name)
	}
}

func TestMedicationNotFound(t *testing.T) {
	e := testExecutor(t)
	out := e.Execute(NameGetMedicationInfo, args(t, map[string]string{"query": "vitamin q"}),
		Conversation{UserText: "vitamin q?", Lang: types.LangEnglish})
	f, ok := out.(Failure)
	if !ok || f.Reason != ReasonMedNotFound {
		t.Fatalf("expected MED_NOT_FOUND, got %#v", out)
	}
}

func TestCheckPrescription(t *testing.T) {
	e := testExecutor(t)
	out := e.Execute(NameCheckPrescription, args(t, map[string]string{"query": "אוגמנטין"}),
		Conversation{UserText: "צריך מרשם לאוגמנטין?", Lang: types.LangHebrew})
	p, ok := out.(prescriptionOut)
	if !ok {
		t.Fatalf("unexpected result %#v", out)
	}
	if !p.PrescriptionRequired || p.Name != "Augmentin" {
		t.Errorf("unexpected result %+v", p)
	}
}

func TestCheckStockExplicitStoreWins(t *testing.T) {
	e := testExecutor(t)
	// The user text mentions Jaffa, the explicit argument says Dizengoff;
	// the explicit argument wins.
	convo := Conversation{UserText: "is advil available in jaffa?", Lang: types.LangEnglish}
	out := e.Execute(NameCheckStock, args(t, map[string]any{
		"medicationQuery": "advil",
		"storeQuery":      "dizengoff",
	}), convo)
	s, ok := out.(stockOut)
	if !ok {
		t.Fatalf("unexpected result %#v", out)
	}
	if s.Stock.RequestedStore == nil || s.Stock.RequestedStore.StoreLabel != "Dizengoff, Tel Aviv" {
		t.Errorf("expected Dizengoff pivot, got %+v", s.Stock.RequestedStore)
	}
}

func TestCheckStockCityNotServed(t *testing.T) {
	e := testExecutor(t)
	convo := Conversation{UserText: "is advil available in haifa?", Lang: types.LangEnglish}
	out := e.Execute(NameCheckStock, args(t, map[string]string{"medicationQuery": "advil"}), convo)
	f, ok := out.(Failure)
	if !ok || f.Reason != ReasonCityNotServed {
		t.Fatalf("expected CITY_NOT_SERVED, got %#v", out)
	}
	if !strings.Contains(f.Message, "haifa") {
		t.Errorf("message should name the city, got %q", f.Message)
	}
	if !strings.Contains(f.Message, "Tel Aviv") {
		t.Errorf("message should list served cities, got %q", f.Message)
	}
}

func TestCheckStockNoStore(t *testing.T) {
	e := testExecutor(t)
	convo := Conversation{UserText: "יש אדוויל?", Lang: types.LangHebrew}
	out := e.Execute(NameCheckStock, args(t, map[string]string{"medicationQuery": "אדוויל"}), convo)
	s, ok := out.(stockOut)
	if !ok {
		t.Fatalf("unexpected result %#v", out)
	}
	if s.Stock.RequestedStore != nil {
		t.Errorf("expected no requested store, got %+v", s.Stock.RequestedStore)
	}
	if s.Stock.Meta.SortedBy != "GLOBAL_DISTANCE_RANK" {
		t.Errorf("sortedBy = %q", s.Stock.Meta.SortedBy)
	}
}

func TestCheckStockForcedShowAll(t *testing.T) {
	e := testExecutor(t)
	convo := Conversation{UserText: "advil stock", Lang: types.LangEnglish}
	out := e.Execute(NameCheckStock, args(t, map[string]any{
		"medicationQuery": "advil",
		"showAllStores":   true,
	}), convo)
	s, ok := out.(stockOut)
	if !ok {
		t.Fatalf("unexpected result %#v", out)
	}
	if !s.Stock.Meta.ShowAllStores {
		t.Error("expected showAllStores forced true")
	}
	if len(s.Stock.Stores) != 4 {
		t.Errorf("expected 4 entries, got %d", len(s.Stock.Stores))
	}
}

func TestCheckStockMalformedArguments(t *testing.T) {
	e := testExecutor(t)
	convo := Conversation{UserText: "is advil in stock?", Lang: types.LangEnglish}
	out := e.Execute(NameCheckStock, json.RawMessage("not json"), convo)
	// Malformed arguments degrade to the raw user text, which resolves.
	s, ok := out.(stockOut)
	if !ok {
		t.Fatalf("unexpected result %#v", out)
	}
	if s.Stock.Medication.Name != "Advil" {
		t.Errorf("expected Advil via user text, got %s", s.Stock.Medication.Name)
	}
}
