package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON trims LLM wrapping (markdown fences, surrounding prose) down to
// the outermost JSON value, object or array.
func ExtractJSON(response string) (string, error) {
	s := StripFences(response)

	start := -1
	var opener, closer byte
	for i := 0; i < len(s); i++ {
		if s[i] == '{' || s[i] == '[' {
			start = i
			opener = s[i]
			break
		}
	}
	if start == -1 {
		return "", fmt.Errorf("no JSON value found in response")
	}
	if opener == '{' {
		closer = '}'
	} else {
		closer = ']'
	}

	end := -1
	for i := len(s) - 1; i >= start; i-- {
		if s[i] == closer {
			end = i + 1
			break
		}
	}
	if end == -1 {
		return "", fmt.Errorf("unterminated JSON value in response")
	}

	return s[start:end], nil
}

// StripFences removes markdown code fence markers like ```json ... ```.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx != -1 {
		// Drop the language hint on the opening fence line.
		if !strings.ContainsAny(s[:idx], "{[") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ParseJSON cleans and unmarshals a JSON string into a type T.
// It handles common LLM quirks like surrounding markdown or extra text.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	jsonStr, err := ExtractJSON(response)
	if err != nil {
		return zero, err
	}

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, jsonStr)
	}

	return result, nil
}
