// Package schema decodes JSON write bodies into input structs and reports
// every invalid field at once.
//
// Input structs declare their wire names with `json` tags and their
// constraints with `validate` tags (go-playground/validator). Fields may be
// string, any signed integer kind or time.Time.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var timeType = reflect.TypeOf(time.Time{})

// Accepted timestamp layouts, tried in order.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

type Decoder struct {
	validate *validator.Validate
}

func NewDecoder() *Decoder {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	return &Decoder{validate: v}
}

// Decode reads a JSON object from r into dst, which must be a pointer to a
// struct. It returns a *ValidationError when the body is rejected.
func (d *Decoder) Decode(r io.Reader, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("schema: destination must be a pointer to struct, got %T", dst)
	}
	target := rv.Elem()

	verr := &ValidationError{}

	body, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("schema: read body: %w", err)
	}

	raw, ok := readObject(body, verr)
	if !ok {
		return verr
	}

	fields := fieldsOf(target.Type())
	for key := range raw {
		if _, known := fields[key]; !known {
			verr.add(key, MsgUnknown)
		}
	}

	for name, idx := range fields {
		value, present := raw[name]
		if !present {
			continue
		}
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			verr.add(name, MsgNull)
			continue
		}
		if reason := assign(target.Field(idx), value); reason != "" {
			verr.add(name, reason)
		}
	}

	if err := d.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("schema: validate: %w", err)
		}
		for _, fe := range fieldErrs {
			name := fe.Field()
			if verr.has(name) {
				continue
			}
			_, present := raw[name]
			verr.add(name, reasonFor(fe, present))
		}
	}

	if verr.empty() {
		return nil
	}
	return verr
}

func readObject(body []byte, verr *ValidationError) (map[string]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		verr.add(SchemaField, MsgInvalidJSON)
		return nil, false
	}
	if trimmed[0] != '{' {
		verr.add(SchemaField, MsgInvalidType)
		return nil, false
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		verr.add(SchemaField, MsgInvalidType)
		return nil, false
	}
	return raw, true
}

// fieldsOf maps wire names to struct field indexes.
func fieldsOf(t reflect.Type) map[string]int {
	fields := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if name := jsonName(f); name != "" {
			fields[name] = i
		}
	}
	return fields
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func assign(field reflect.Value, value json.RawMessage) string {
	switch {
	case field.Type() == timeType:
		t, ok := parseTime(value)
		if !ok {
			return MsgNotDatetime
		}
		field.Set(reflect.ValueOf(t))
	case field.Kind() == reflect.String:
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return MsgNotString
		}
		field.SetString(s)
	case field.CanInt():
		n, ok := parseInt(value)
		if !ok || field.OverflowInt(n) {
			return MsgNotInteger
		}
		field.SetInt(n)
	default:
		return MsgInvalidValue
	}
	return ""
}

// parseInt accepts integral JSON numbers and numeric strings.
func parseInt(value json.RawMessage) (int64, bool) {
	var number json.Number
	if err := json.Unmarshal(value, &number); err == nil {
		if n, err := number.Int64(); err == nil {
			return n, true
		}
		if f, err := number.Float64(); err == nil && f == math.Trunc(f) && math.Abs(f) < math.MaxInt64 {
			return int64(f), true
		}
		return 0, false
	}

	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil
}

func parseTime(value json.RawMessage) (time.Time, bool) {
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func reasonFor(fe validator.FieldError, present bool) string {
	switch fe.Tag() {
	case "required":
		switch {
		case !present:
			return MsgMissing
		case fe.Kind() == reflect.String:
			return MsgBlank
		default:
			return MsgInvalidValue
		}
	case "gt":
		return fmt.Sprintf("Must be greater than %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s.", fe.Param())
	case "max":
		return fmt.Sprintf("Longer than maximum length %s.", fe.Param())
	default:
		return MsgInvalidValue
	}
}
