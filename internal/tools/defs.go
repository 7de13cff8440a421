// Package tools defines the deterministic lookups the model may request
// before producing prose, and the executor that dispatches them.
package tools

import "github.com/LielWeinfeld/pharmacist-assistant/internal/types"

// Tool names exposed to the completion service.
const (
	NameGetMedicationInfo = "get_medication_info"
	NameCheckPrescription = "check_prescription_requirement"
	NameCheckStock        = "check_stock"
)

// Definitions returns the function tool declarations in Responses API format.
func Definitions() []types.ResponsesTool {
	return []types.ResponsesTool{
		{
			Type:        "function",
			Name:        NameGetMedicationInfo,
			Description: "Look up factual catalog information about a medication: active ingredient, prescription requirement and general leaflet usage. Accepts brand names, Hebrew aliases or active ingredients.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "The medication name, alias or ingredient as the user wrote it.",
					},
				},
				"required":             []string{"query"},
				"additionalProperties": false,
			},
		},
		{
			Type:        "function",
			Name:        NameCheckPrescription,
			Description: "Check whether a medication requires a prescription.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "The medication name, alias or ingredient as the user wrote it.",
					},
				},
				"required":             []string{"query"},
				"additionalProperties": false,
			},
		},
		{
			Type:        "function",
			Name:        NameCheckStock,
			Description: "Check branch availability for a medication. All stock facts must come from this tool only. Present stores exactly in the returned order.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"medicationQuery": map[string]any{
						"type":        "string",
						"description": "The medication the user asked about.",
					},
					"storeQuery": map[string]any{
						"type":        "string",
						"description": "Optional branch, city or store number the user mentioned.",
					},
					"showAllStores": map[string]any{
						"type":        "boolean",
						"description": "Set when the user explicitly asked to see every branch, including ones without stock.",
					},
				},
				"required":             []string{"medicationQuery"},
				"additionalProperties": false,
			},
		},
	}
}
