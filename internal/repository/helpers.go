package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the formatted string.
func nullableTimeToString(t *time.Time, layout string) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// marshalAssignees encodes an assignee list as a JSON array for storage.
func marshalAssignees(names []string) (string, error) {
	if len(names) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal(names)
	if err != nil {
		return "", fmt.Errorf("encoding assignees: %w", err)
	}
	return string(raw), nil
}

// unmarshalAssignees decodes a stored JSON assignee array.
func unmarshalAssignees(raw string) ([]string, error) {
	if raw == "" || raw == "[]" {
		return nil, nil
	}
	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		return nil, fmt.Errorf("decoding assignees: %w", err)
	}
	return names, nil
}
