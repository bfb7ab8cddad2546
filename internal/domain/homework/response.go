// internal/domain/homework/response.go
package homework

import (
	"encoding/json"
	"fmt"
	"math"
)

const statusMessageFormat = "Изменился статус проверки работы \"%s\". %s"

// Validate checks the top-level shape of a decoded status response and
// returns the homeworks array as is. An empty array is valid.
func Validate(payload any) ([]any, error) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, &ShapeError{Reason: fmt.Sprintf("expected an object, got %s", describe(payload))}
	}
	raw, ok := obj[FieldHomeworks]
	if !ok {
		return nil, &ShapeError{Reason: "no \"homeworks\" key"}
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, &ShapeError{Reason: fmt.Sprintf("\"homeworks\" is %s, not an array", describe(raw))}
	}
	return list, nil
}

// Latest returns the newest record of a validated homeworks array.
// Only the first element is ever inspected.
func Latest(homeworks []any) (Record, bool, error) {
	if len(homeworks) == 0 {
		return nil, false, nil
	}
	rec, ok := homeworks[0].(map[string]any)
	if !ok {
		return nil, false, &ShapeError{Reason: fmt.Sprintf("homework record is %s, not an object", describe(homeworks[0]))}
	}
	return Record(rec), true, nil
}

// StatusMessage renders the notification text for a homework record.
func StatusMessage(rec Record) (string, error) {
	name, ok := rec[FieldHomeworkName].(string)
	if !ok || name == "" {
		return "", &MissingFieldError{Field: FieldHomeworkName}
	}
	status, ok := rec[FieldStatus].(string)
	if !ok || status == "" {
		return "", &MissingFieldError{Field: FieldStatus}
	}
	verdict, ok := Status(status).Verdict()
	if !ok {
		return "", &UnknownStatusError{Status: status}
	}
	return fmt.Sprintf(statusMessageFormat, name, verdict), nil
}

// CurrentDate extracts the server timestamp from a validated payload.
func CurrentDate(payload any) (int64, bool) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return 0, false
	}
	switch v := obj[FieldCurrentDate].(type) {
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "a string"
	case json.Number, float64, int, int64:
		return "a number"
	case bool:
		return "a boolean"
	case []any:
		return "an array"
	case map[string]any:
		return "an object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
