package multipart

import (
	"reflect"
	"strings"
	"sync"
)

// cache of struct tags to avoid repeated parsing of the same struct type across
// multiple encode passes. The key is the reflect.Type of the struct, and the
// value is a slice of *fieldTag, one for each field on the struct.
//
// This cache is safe for concurrent use.
var structTagCache sync.Map

type fieldTag struct {
	Name   string
	Omit   bool
	Ignore bool
}

// structTags returns the parsed `form` tags of every field on a struct type,
// in field order.
func structTags(structType reflect.Type) []*fieldTag {
	if cached, ok := structTagCache.Load(structType); ok {
		return cached.([]*fieldTag)
	}

	tags := make([]*fieldTag, structType.NumField())

	for index := 0; index < structType.NumField(); index++ {
		field := structType.Field(index)
		tag := parseFieldTag(field.Tag.Get("form"))

		// Unexported fields can never be read through reflection.
		if field.PkgPath != "" {
			tag.Ignore = true
		}
		if !tag.Ignore && tag.Name == "" {
			tag.Name = field.Name
		}
		tags[index] = tag
	}

	structTagCache.Store(structType, tags)
	return tags
}

func parseFieldTag(raw string) *fieldTag {
	raw = strings.TrimSpace(raw)
	if raw == "-" {
		return &fieldTag{Ignore: true}
	}

	parts := strings.Split(raw, ",")

	tag := &fieldTag{}

	// The first part of the tag is the name of the field. If the first part is
	// a hyphen, the field is skipped.
	name := strings.TrimSpace(parts[0])
	switch name {
	case "-":
		tag.Ignore = true
	default:
		tag.Name = name
	}

	// The remaining parts of the tag are flags that modify the behaviour of the
	// field.
	for _, part := range parts[1:] {
		switch strings.TrimSpace(part) {
		case "omitempty":
			tag.Omit = true
		case "ignore":
			tag.Ignore = true
		}
	}

	return tag
}
