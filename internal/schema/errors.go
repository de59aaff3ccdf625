package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const (
	MsgMissing      = "Missing data for required field."
	MsgNull         = "Field may not be null."
	MsgBlank        = "Field may not be blank."
	MsgUnknown      = "Unknown field."
	MsgInvalidType  = "Invalid input type."
	MsgInvalidJSON  = "Invalid JSON body."
	MsgNotString    = "Not a valid string."
	MsgNotInteger   = "Not a valid integer."
	MsgNotDatetime  = "Not a valid datetime."
	MsgInvalidValue = "Invalid value."
)

// SchemaField collects errors that belong to the body as a whole.
const SchemaField = "_schema"

// ValidationError maps each rejected field to the reasons it was rejected.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) add(field, reason string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], reason)
}

func (e *ValidationError) has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

func (e *ValidationError) empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.Fields[name], " ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Fields)
}
