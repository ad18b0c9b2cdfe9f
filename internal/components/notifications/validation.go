package notifications

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"pragati-dashboard/internal/common/errors"
	"pragati-dashboard/internal/models"
)

// composeSchema covers the wire shape of a broadcast create. The
// targets-when-private rule is relational and lives in validateCompose.
func composeSchema() map[string]interface{} {
	categories := make([]interface{}, 0, len(models.AllNotificationCategories))
	for _, c := range models.AllNotificationCategories {
		categories = append(categories, string(c))
	}

	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"title", "body", "category", "priority", "activeFrom", "activeTill"},
		"properties": map[string]interface{}{
			"title": map[string]interface{}{
				"type":      "string",
				"minLength": 1,
				"maxLength": 200,
			},
			"body": map[string]interface{}{
				"type":      "string",
				"minLength": 1,
				"maxLength": 5000,
			},
			"category": map[string]interface{}{
				"type": "string",
				"enum": categories,
			},
			"priority": map[string]interface{}{
				"type":    "integer",
				"minimum": 1,
				"maximum": 5,
			},
			"isPublic": map[string]interface{}{
				"type": "boolean",
			},
			"activeFrom": map[string]interface{}{
				"type":   "string",
				"format": "date-time",
			},
			"activeTill": map[string]interface{}{
				"type":   "string",
				"format": "date-time",
			},
			"targets": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type":     "object",
					"required": []interface{}{"type"},
				},
			},
		},
	}
}

func validateSchema(schemaMap, data map[string]interface{}) error {
	schemaLoader := gojsonschema.NewGoLoader(schemaMap)
	documentLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return errors.NewValidationFailedError(fmt.Sprintf("broadcast validation failed: %v", errs))
	}

	return nil
}
