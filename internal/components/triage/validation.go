package triage

import (
	"pragati-dashboard/internal/common/validation"
	"pragati-dashboard/internal/models"
)

func GetUpdateSchema() validation.JSONSchema {
	statuses := make([]string, 0, len(models.AllStatuses))
	for _, s := range models.AllStatuses {
		statuses = append(statuses, string(s))
	}

	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"id", "status"},
		Properties: map[string]validation.Property{
			"id": {
				Type:        "string",
				Description: "Store-assigned complaint identifier",
				MinLength:   intPtr(1),
			},
			"status": {
				Type:        "string",
				Description: "Target lifecycle status",
				Enum:        statuses,
			},
			"resolutionNote": {
				Type:        "string",
				Description: "Optional note; blank means leave unchanged",
				MaxLength:   intPtr(2000),
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}
