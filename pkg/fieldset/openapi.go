package fieldset

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-walletforms/pkg/model"
)

var (
	// ErrOperationNotFound is returned when no operation matches the
	// requested id.
	ErrOperationNotFound = errors.New("fieldset: openapi operation not found")
	// ErrNoRequestBody is returned when the operation has no object request
	// body to derive fields from.
	ErrNoRequestBody = errors.New("fieldset: openapi operation has no object request body")
)

// RulesExtension lets a schema property declare extra rules using the same
// entries fieldset documents accept.
const RulesExtension = "x-walletforms-rules"

var requestMediaTypes = []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"}

// FromOpenAPI derives a fieldset from the request body of operationID in an
// OpenAPI 3 document. Nested objects become dotted paths; read-only and array
// properties are skipped. The fieldset id is the operation id and label keys
// are "<operationID>.<path>".
func FromOpenAPI(ctx context.Context, raw []byte, operationID string, opts ...Option) (Fieldset, error) {
	if err := ctx.Err(); err != nil {
		return Fieldset{}, err
	}
	id := strings.TrimSpace(operationID)
	if id == "" {
		return Fieldset{}, fmt.Errorf("%w: empty id", ErrOperationNotFound)
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return Fieldset{}, fmt.Errorf("fieldset: load openapi document: %w", err)
	}

	op := findOperation(doc, id)
	if op == nil {
		return Fieldset{}, fmt.Errorf("%w: %q", ErrOperationNotFound, id)
	}
	schema := requestSchema(op.RequestBody)
	if schema == nil || len(schema.Properties) == 0 {
		return Fieldset{}, fmt.Errorf("%w: %q", ErrNoRequestBody, id)
	}

	var fields []fieldFile
	if err := collectFields(&fields, schema, "", id, map[*openapi3.Schema]bool{}); err != nil {
		return Fieldset{}, fmt.Errorf("fieldset: openapi operation %q: %w", id, err)
	}
	source := "openapi:" + id
	return normaliseFieldset(id, source, fieldsetFile{TitleKey: id, Fields: fields}, resolveOptions(opts).registry)
}

// OperationIDs lists the operations of an OpenAPI document that carry an
// object request body.
func OperationIDs(ctx context.Context, raw []byte) ([]string, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("fieldset: load openapi document: %w", err)
	}
	var ids []string
	eachOperation(doc, func(op *openapi3.Operation) bool {
		if op.OperationID == "" {
			return true
		}
		if schema := requestSchema(op.RequestBody); schema != nil && len(schema.Properties) > 0 {
			ids = append(ids, op.OperationID)
		}
		return true
	})
	sort.Strings(ids)
	return ids, nil
}

func findOperation(doc *openapi3.T, id string) *openapi3.Operation {
	var found *openapi3.Operation
	eachOperation(doc, func(op *openapi3.Operation) bool {
		if op.OperationID == id {
			found = op
			return false
		}
		return true
	})
	return found
}

// eachOperation visits operations in path order until fn returns false.
func eachOperation(doc *openapi3.T, fn func(*openapi3.Operation) bool) {
	if doc == nil || doc.Paths == nil {
		return
	}
	items := doc.Paths.Map()
	paths := make([]string, 0, len(items))
	for path := range items {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		item := items[path]
		if item == nil {
			continue
		}
		for _, op := range []*openapi3.Operation{item.Post, item.Put, item.Patch, item.Get, item.Delete} {
			if op == nil {
				continue
			}
			if !fn(op) {
				return
			}
		}
	}
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range requestMediaTypes {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

// collectFields flattens object properties into dotted fields. seen holds the
// schemas on the current path; a property that refers back to one of them is
// skipped.
func collectFields(out *[]fieldFile, schema *openapi3.Schema, prefix, labelPrefix string, seen map[*openapi3.Schema]bool) error {
	if seen[schema] {
		return nil
	}
	seen[schema] = true
	defer delete(seen, schema)

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		if prop.ReadOnly {
			continue
		}
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}

		kind := schemaType(prop.Type)
		if kind == "object" || (kind == "" && len(prop.Properties) > 0) {
			if err := collectFields(out, prop, path, labelPrefix, seen); err != nil {
				return err
			}
			continue
		}
		if kind == "array" {
			continue
		}

		field, err := fieldFromSchema(path, labelPrefix, prop)
		if err != nil {
			return err
		}
		if _, ok := required[name]; ok {
			rules := []any{"required"}
			if model.FieldType(field.Type) == model.FieldTypeText || model.FieldType(field.Type) == model.FieldTypeEmail {
				rules = append(rules, "trimmedRequired")
			}
			field.Validators = append(rules, field.Validators...)
		}
		*out = append(*out, field)
	}
	return nil
}

func fieldFromSchema(path, labelPrefix string, prop *openapi3.Schema) (fieldFile, error) {
	field := fieldFile{
		Name:     path,
		Type:     string(fieldTypeFor(prop)),
		LabelKey: labelPrefix + "." + path,
	}

	for _, value := range prop.Enum {
		field.Options = append(field.Options, optionFor(value))
	}

	if prop.Format == "email" {
		field.Validators = append(field.Validators, "strictEmail")
	}
	if prop.MinLength > 0 {
		field.Validators = append(field.Validators, map[string]any{"minLength": int(prop.MinLength)})
	}
	if prop.MaxLength != nil {
		field.Validators = append(field.Validators, map[string]any{"maxLength": int(*prop.MaxLength)})
	}
	if prop.Min != nil {
		field.Validators = append(field.Validators, map[string]any{"min": *prop.Min})
	}
	if prop.Max != nil {
		field.Validators = append(field.Validators, map[string]any{"max": *prop.Max})
	}
	if prop.Pattern != "" {
		field.Validators = append(field.Validators, map[string]any{"pattern": prop.Pattern})
	}

	if raw, ok := prop.Extensions[RulesExtension]; ok {
		entries, ok := raw.([]any)
		if !ok {
			return fieldFile{}, fmt.Errorf("%w: %s on %q must be a list", ErrInvalidRule, RulesExtension, path)
		}
		field.Validators = append(field.Validators, entries...)
	}
	return field, nil
}

func fieldTypeFor(prop *openapi3.Schema) model.FieldType {
	if len(prop.Enum) > 0 {
		return model.FieldTypeSelect
	}
	switch schemaType(prop.Type) {
	case "boolean":
		return model.FieldTypeCheckbox
	case "integer", "number":
		return model.FieldTypeNumber
	}
	switch prop.Format {
	case "email":
		return model.FieldTypeEmail
	case "date":
		return model.FieldTypeDate
	case "date-time":
		return model.FieldTypeDateTimeLocal
	}
	return model.FieldTypeText
}

// schemaType returns the first non-null declared type.
func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != "null" {
			return value
		}
	}
	return ""
}

func optionFor(value any) model.SelectOption {
	return model.SelectOption{LabelKey: fmt.Sprint(value), Value: value}
}
