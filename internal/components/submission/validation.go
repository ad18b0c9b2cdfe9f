package submission

import (
	"pragati-dashboard/internal/common/validation"
	"pragati-dashboard/internal/models"
)

func GetInputSchema() validation.JSONSchema {
	categories := make([]string, 0, len(models.AllCategories))
	for _, c := range models.AllCategories {
		categories = append(categories, string(c))
	}

	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"category", "description"},
		Properties: map[string]validation.Property{
			"category": {
				Type:        "string",
				Description: "One of the fixed complaint categories",
				Enum:        categories,
			},
			"description": {
				Type:        "string",
				Description: "Free-text issue description, non-empty after trimming",
				MinLength:   intPtr(1),
				MaxLength:   intPtr(2000),
			},
			"isAnonymous": {
				Type:        "boolean",
				Description: "Hide the submitting student from staff views",
				Default:     false,
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}
