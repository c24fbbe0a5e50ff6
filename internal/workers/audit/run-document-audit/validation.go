// internal/workers/audit/run-document-audit/validation.go
package rundocumentaudit

import (
	"encoding/json"
	"fmt"
	"strings"

	"docushield-workers/internal/common/validation"
)

var variablesSchema = validation.MustCompile(TaskType+" variables", `{
  "type": "object",
  "required": ["caseType"],
  "properties": {
    "applicantId": {"type": "string"},
    "caseType": {"type": "string", "minLength": 1},
    "applicantContext": {"type": ["object", "null"]},
    "uploads": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "required": ["requirementId"],
        "properties": {
          "requirementId": {"type": "string", "minLength": 1},
          "rawContent": {"type": "string"}
        }
      }
    },
    "archive": {"type": "string"},
    "filenames": {"type": ["array", "null"], "items": {"type": "string"}},
    "classifiedFiles": {"type": ["object", "null"]}
  }
}`)

// validateVariables checks the raw job variables before they are decoded,
// so type errors name the offending field.
func validateVariables(raw string) error {
	var doc interface{}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return fmt.Errorf("%w: parse input: %v", ErrInvalidInput, err)
	}

	result, err := variablesSchema.Validate(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !result.Valid {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(result.Messages(), "; "))
	}
	return nil
}
