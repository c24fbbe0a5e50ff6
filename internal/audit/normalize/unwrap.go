package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrParse = errors.New("AUDIT_PARSE_ERROR")

var fencePattern = regexp.MustCompile("(?s)^```[A-Za-z]*[ \\t]*\\r?\\n?(.*?)\\s*```$")

// Unwrap strips a markdown code fence around the engine text and decodes the
// JSON object inside. If that fails, the span from the first '{' to the last
// '}' is tried once more; anything else is ErrParse.
func Unwrap(raw string) (map[string]interface{}, error) {
	text := strings.TrimSpace(raw)
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}

	obj, err := decodeObject(text)
	if err == nil {
		return obj, nil
	}

	start, end := strings.Index(text, "{"), strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		if obj, innerErr := decodeObject(text[start : end+1]); innerErr == nil {
			return obj, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrParse, err)
}

func decodeObject(text string) (map[string]interface{}, error) {
	if text == "" {
		return nil, errors.New("empty response")
	}
	var v interface{}
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %T", v)
	}
	return obj, nil
}
