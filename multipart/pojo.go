package multipart

import (
	"reflect"
	"sort"

	"github.com/illuscio-dev/formtools-go/formtypes"
)

/*
pojoWriter handles structured values: structs, string-keyed maps and nested
*Fields mappings. The value is decomposed into child key/value pairs named
"<parentKey>.<fieldName>" and every child is redispatched through the SAME
writer chain, so nested structures encode to arbitrary depth and custom writers
registered on the chain apply to child values too.

Struct fields are named by their `form:"..."` tag when present, falling back to
the Go field name. A tag name of "-" skips the field, and the "omitempty" flag
skips zero values, matching the usual encoding-package tag conventions.
*/
type pojoWriter struct {
	chain *WriterChain
}

func (writer *pojoWriter) Applicable(value interface{}) bool {
	switch value.(type) {
	case *Fields, Fields:
		return true
	case formtypes.File, formtypes.FormData, *formtypes.FormData:
		// File implementations are commonly structs. Kept out of the composite
		// decomposition even when the chain has been reordered.
		return false
	}

	reflected := reflect.Indirect(reflect.ValueOf(value))
	if !reflected.IsValid() {
		return false
	}

	switch reflected.Kind() {
	case reflect.Struct:
		return true
	case reflect.Map:
		return reflected.Type().Key().Kind() == reflect.String
	default:
		return false
	}
}

func (writer *pojoWriter) Write(
	out *Output, boundary string, key string, value interface{},
) error {
	switch typed := value.(type) {
	case *Fields:
		return writer.writeFields(out, boundary, key, typed)
	case Fields:
		return writer.writeFields(out, boundary, key, &typed)
	}

	reflected := reflect.Indirect(reflect.ValueOf(value))
	if reflected.Kind() == reflect.Map {
		return writer.writeMap(out, boundary, key, reflected)
	}

	return writer.writeStruct(out, boundary, key, reflected)
}

// writeChild redispatches one decomposed child pair through the chain.
func (writer *pojoWriter) writeChild(
	out *Output, boundary string, childKey string, childValue interface{},
) error {
	childWriter := writer.chain.Dispatch(childValue)
	return childWriter.Write(out, boundary, childKey, childValue)
}

func (writer *pojoWriter) writeFields(
	out *Output, boundary string, key string, fields *Fields,
) error {
	return fields.Each(func(childKey string, childValue interface{}) error {
		return writer.writeChild(out, boundary, key+"."+childKey, childValue)
	})
}

// Map keys are sorted so dispatch over the same value is deterministic, since
// Go randomizes map iteration order.
func (writer *pojoWriter) writeMap(
	out *Output, boundary string, key string, reflected reflect.Value,
) error {
	mapKeys := make([]string, 0, reflected.Len())
	for _, mapKey := range reflected.MapKeys() {
		mapKeys = append(mapKeys, mapKey.String())
	}
	sort.Strings(mapKeys)

	for _, mapKey := range mapKeys {
		childValue := reflected.MapIndex(reflect.ValueOf(mapKey).Convert(
			reflected.Type().Key(),
		))
		if !childValue.IsValid() {
			continue
		}
		if childValue.Kind() == reflect.Interface && childValue.IsNil() {
			continue
		}

		err := writer.writeChild(
			out, boundary, key+"."+mapKey, childValue.Interface(),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func (writer *pojoWriter) writeStruct(
	out *Output, boundary string, key string, reflected reflect.Value,
) error {
	fieldTags := structTags(reflected.Type())

	for index := 0; index < reflected.NumField(); index++ {
		tag := fieldTags[index]
		if tag.Ignore {
			continue
		}

		fieldValue := reflected.Field(index)
		if !fieldValue.CanInterface() {
			continue
		}
		if tag.Omit && fieldValue.IsZero() {
			continue
		}

		err := writer.writeChild(
			out, boundary, key+"."+tag.Name, fieldValue.Interface(),
		)
		if err != nil {
			return err
		}
	}

	return nil
}
