package application

import (
	"fmt"
	"strings"

	"shelfmark/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		// Format field name with spaces for error message (e.g., "folderID" -> "folder ID")
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "folderID" -> "folder ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"folderID":      "folder ID",
		"itemID":        "bookmark ID",
		"sourceID":      "source ID",
		"destinationID": "destination ID",
		"name":          "name",
		"url":           "URL",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidateNotBuiltin rejects the built-in containers for operations that
// would rename or delete them
func ValidateNotBuiltin(fieldName, id string) error {
	if domain.IsBuiltin(id) {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is a built-in container", id),
		}
	}
	return nil
}

// ValidateKind checks that a node has the expected kind
func ValidateKind(fieldName string, node *domain.Node, expected domain.NodeKind) error {
	if node.Kind != expected {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected %s for %s, got: %s", expected, displayName, node.Kind),
		}
	}
	return nil
}
