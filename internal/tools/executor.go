package tools

import (
	"encoding/json"

	"github.com/LielWeinfeld/pharmacist-assistant/internal/catalog"
	"github.com/LielWeinfeld/pharmacist-assistant/internal/resolve"
	"github.com/LielWeinfeld/pharmacist-assistant/internal/stock"
	"github.com/LielWeinfeld/pharmacist-assistant/internal/types"
)

// Failure reasons returned across the tool boundary.
const (
	ReasonMedNotFound   = "MED_NOT_FOUND"
	ReasonCityNotServed = "CITY_NOT_SERVED"
	ReasonUnknownTool   = "UNKNOWN_TOOL"
)

// Failure is the structured error shape fed back into the conversation. The
// executor never panics or returns Go errors across its boundary: every
// failure is a result the model can respond to.
type Failure struct {
	OK      bool   `json:"ok"`
	Reason  string `json:"reason"`
	Message string `json:"message,omitempty"`
}

func fail(reason string) Failure {
	return Failure{Reason: reason}
}

// Conversation is the per-request context a tool call runs against.
type Conversation struct {
	Messages []types.Message
	UserText string
	Lang     types.Lang
}

// history returns user and assistant turns in order, for fallback scanning.
func (c Conversation) history() []string {
	texts := make([]string, 0, len(c.Messages))
	for _, m := range c.Messages {
		if m.Role == types.RoleUser || m.Role == types.RoleAssistant {
			texts = append(texts, m.Content)
		}
	}
	return texts
}

// Executor dispatches named tool invocations against the catalog.
type Executor struct {
	cat *catalog.Catalog
	res *resolve.Resolver
}

// NewExecutor creates an executor over the given catalog.
func NewExecutor(cat *catalog.Catalog) *Executor {
	return &Executor{cat: cat, res: resolve.New(cat)}
}

type medicationOut struct {
	OK         bool               `json:"ok"`
	Medication catalog.Medication `json:"medication"`
	MatchedBy  resolve.MatchKind  `json:"matchedBy"`
}

type prescriptionOut struct {
	OK                   bool              `json:"ok"`
	ID                   string            `json:"id"`
	Name                 string            `json:"name"`
	PrescriptionRequired bool              `json:"prescriptionRequired"`
	MatchedBy            resolve.MatchKind `json:"matchedBy"`
}

type stockOut struct {
	OK    bool          `json:"ok"`
	Stock stock.Payload `json:"stock"`
}

// Execute runs one tool call and returns its structured output.
func (e *Executor) Execute(name string, rawArgs json.RawMessage, convo Conversation) any {
	switch name {
	case NameGetMedicationInfo:
		return e.medicationInfo(rawArgs, convo)
	case NameCheckPrescription:
		return e.prescriptionRequirement(rawArgs, convo)
	case NameCheckStock:
		return e.checkStock(rawArgs, convo)
	default:
		return fail(ReasonUnknownTool)
	}
}

// resolveWithFallback resolves a medication from the query, then from the
// raw user text, then from the conversation history, newest first.
func (e *Executor) resolveWithFallback(query string, convo Conversation) *resolve.Match {
	if m := e.res.Medication(query); m != nil {
		return m
	}
	if m := e.res.Medication(convo.UserText); m != nil {
		return m
	}
	return e.res.MedicationFromContext(convo.history())
}

func (e *Executor) medicationInfo(rawArgs json.RawMessage, convo Conversation) any {
	var args struct {
		Query string `json:"query"`
	}
	_ = json.Unmarshal(rawArgs, &args)

	m := e.resolveWithFallback(args.Query, convo)
	if m == nil {
		return fail(ReasonMedNotFound)
	}
	med := *m.Medication
	med.StockByStore = nil // stock facts come only from check_stock
	return medicationOut{OK: true, Medication: med, MatchedBy: m.MatchedBy}
}

func (e *Executor) prescriptionRequirement(rawArgs json.RawMessage, convo Conversation) any {
	var args struct {
		Query string `json:"query"`
	}
	_ = json.Unmarshal(rawArgs, &args)

	m := e.resolveWithFallback(args.Query, convo)
	if m == nil {
		return fail(ReasonMedNotFound)
	}
	return prescriptionOut{
		OK:                   true,
		ID:                   m.Medication.ID,
		Name:                 m.Medication.Name,
		PrescriptionRequired: m.Medication.PrescriptionRequired,
		MatchedBy:            m.MatchedBy,
	}
}

func (e *Executor) checkStock(rawArgs json.RawMessage, convo Conversation) any {
	var args struct {
		MedicationQuery string `json:"medicationQuery"`
		StoreQuery      string `json:"storeQuery"`
		ShowAllStores   bool   `json:"showAllStores"`
	}
	_ = json.Unmarshal(rawArgs, &args)

	m := e.resolveWithFallback(args.MedicationQuery, convo)
	if m == nil {
		return fail(ReasonMedNotFound)
	}

	// The explicit storeQuery argument wins over a store inferred from the
	// raw user text.
	var requested *catalog.Store
	if sm := e.res.Store(args.StoreQuery); sm != nil {
		requested = sm.Store
	} else if sm := e.res.Store(convo.UserText); sm != nil {
		requested = sm.Store
	}

	if requested == nil {
		cityText := args.StoreQuery
		if cityText == "" {
			cityText = convo.UserText
		}
		cities := e.cat.Cities()
		if city := resolve.MentionedCity(cityText, cities); city != "" {
			if !resolve.CityServed(city, cities) {
				return Failure{
					Reason:  ReasonCityNotServed,
					Message: stock.CityNotServedMessage(city, cities, convo.Lang),
				}
			}
			requested = e.cat.ClosestInCity(city)
		}
	}

	payload := stock.Build(convo.UserText, m.Medication, requested, convo.Lang, e.cat, args.ShowAllStores)
	return stockOut{OK: true, Stock: payload}
}
