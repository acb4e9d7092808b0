package schema

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Reason is the machine-readable constraint a validation failure violated.
type Reason string

const (
	ReasonMissingRequired      Reason = "missing_required"
	ReasonOutOfRange           Reason = "out_of_range"
	ReasonInvalidEnumValue     Reason = "invalid_enum_value"
	ReasonBothNameAndIDMissing Reason = "both_name_and_id_missing"
)

// ValidationError reports a single constraint violation found while
// constructing an entity. Field is the dotted path of the offending field,
// including list indices for nested collections ("owners[0].type").
// Construction either succeeds fully or fails with the first violation; no
// partial entity is ever produced.
type ValidationError struct {
	Field  string
	Reason Reason
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("schema: field %q: %s (%s)", e.Field, e.Reason, e.Detail)
	}
	return fmt.Sprintf("schema: field %q: %s", e.Field, e.Reason)
}

// AsValidationError unwraps err into a *ValidationError if it carries one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// requireString fails with missing_required when value is empty.
func requireString(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Reason: ReasonMissingRequired}
	}
	return nil
}

// boundString fails with out_of_range when value exceeds max code points.
// Presence is checked separately so an empty required field reports
// missing_required, not a length violation.
func boundString(field, value string, max int) error {
	if n := utf8.RuneCountInString(value); n > max {
		return &ValidationError{
			Field:  field,
			Reason: ReasonOutOfRange,
			Detail: fmt.Sprintf("length %d exceeds maximum %d", n, max),
		}
	}
	return nil
}

// requireNonNegative fails with out_of_range for negative counts.
func requireNonNegative(field string, value int) error {
	if value < 0 {
		return &ValidationError{
			Field:  field,
			Reason: ReasonOutOfRange,
			Detail: fmt.Sprintf("%d is negative", value),
		}
	}
	return nil
}

// inEnum fails with invalid_enum_value when value is not one of allowed.
func inEnum(field, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &ValidationError{
		Field:  field,
		Reason: ReasonInvalidEnumValue,
		Detail: fmt.Sprintf("%q is not one of: %s", value, strings.Join(allowed, ", ")),
	}
}

// prefixField rewrites the field path of a nested validation failure so the
// error reported at the top names the full path into the entity tree.
func prefixField(field string, err error) error {
	if err == nil {
		return nil
	}
	ve, ok := AsValidationError(err)
	if !ok {
		return err
	}
	path := field
	if ve.Field != "" {
		if strings.HasPrefix(ve.Field, "[") {
			path = field + ve.Field
		} else {
			path = field + "." + ve.Field
		}
	}
	return &ValidationError{Field: path, Reason: ve.Reason, Detail: ve.Detail}
}

// indexField is prefixField for list elements.
func indexField(field string, i int, err error) error {
	return prefixField(fmt.Sprintf("%s[%d]", field, i), err)
}
