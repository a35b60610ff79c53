package trellis

import (
	"fmt"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate walks the merged tree against a declarative schema and returns
// a *ValidationError listing every violation found, or nil. Keys absent
// from the schema are ignored (forward compatibility). An explicit null
// satisfies presence and skips value checks, matching the manifest
// convention of null meaning "deliberately unset".
func Validate(root *Node, schema *Schema) error {
	if schema == nil || root == nil {
		return nil
	}

	var fieldErrors []FieldError
	for _, field := range schema.Fields {
		node, ok := root.Lookup(field.Path)
		if !ok {
			if field.Required {
				fieldErrors = append(fieldErrors, FieldError{
					FieldPath: field.Path,
					Code:      ErrCodeRequired,
					Message:   "key is required but not provided",
				})
			}
			continue
		}

		if node.IsNull() {
			continue
		}

		if field.Kind != KindNull && node.Kind() != field.Kind {
			// An int literal is acceptable where a float is expected.
			if !(field.Kind == KindFloat && node.Kind() == KindInt) {
				fieldErrors = append(fieldErrors, FieldError{
					FieldPath: field.Path,
					Code:      ErrCodeWrongKind,
					Message:   fmt.Sprintf("expected %s, got %s", field.Kind, node.Kind()),
				})
				continue
			}
		}

		fieldErrors = append(fieldErrors, checkValue(node, field)...)
	}

	if len(fieldErrors) > 0 {
		return &ValidationError{FieldErrors: fieldErrors}
	}
	return nil
}

// checkValue applies the enum and range rules of a schema field to a
// present, non-null node.
func checkValue(node *Node, field Field) []FieldError {
	var errs []FieldError

	if len(field.OneOf) > 0 {
		value, ok := node.AsString()
		if !ok {
			// A field with an enum and no declared kind still only
			// accepts strings; a mapping or sequence there must not
			// silently skip the check.
			errs = append(errs, FieldError{
				FieldPath: field.Path,
				Code:      ErrCodeWrongKind,
				Message:   fmt.Sprintf("expected string for enum, got %s", node.Kind()),
			})
		} else {
			allowed := make([]interface{}, len(field.OneOf))
			for i, option := range field.OneOf {
				allowed[i] = option
			}
			// ozzo treats the empty string as empty and skips it; an
			// empty value is only acceptable when the enum lists it.
			if err := validation.Validate(value, validation.In(allowed...)); err != nil || (value == "" && !slices.Contains(field.OneOf, "")) {
				errs = append(errs, FieldError{
					FieldPath: field.Path,
					Code:      ErrCodeOneOf,
					Message:   fmt.Sprintf("value %q must be one of: %s", value, strings.Join(field.OneOf, ", ")),
				})
			}
		}
	}

	if field.Min != nil || field.Max != nil {
		value, ok := node.AsFloat()
		if !ok {
			return errs
		}
		// ozzo treats a zero scalar as empty and skips it; a zero in a
		// manifest is a real value, so bounds that exclude zero are
		// checked explicitly.
		if field.Min != nil {
			if err := validation.Validate(value, validation.Min(*field.Min)); err != nil || (value == 0 && *field.Min > 0) {
				errs = append(errs, FieldError{
					FieldPath: field.Path,
					Code:      ErrCodeMin,
					Message:   fmt.Sprintf("value %g is below minimum %g", value, *field.Min),
				})
			}
		}
		if field.Max != nil {
			if err := validation.Validate(value, validation.Max(*field.Max)); err != nil || (value == 0 && *field.Max < 0) {
				errs = append(errs, FieldError{
					FieldPath: field.Path,
					Code:      ErrCodeMax,
					Message:   fmt.Sprintf("value %g exceeds maximum %g", value, *field.Max),
				})
			}
		}
	}

	return errs
}
