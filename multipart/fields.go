package multipart

/*
Fields is an ordered mapping of field names to arbitrary values. Keys are
unique; insertion order is preserved and governs the order parts appear in the
encoded body. Setting an existing key replaces its value in place without
moving the field.

Fields is not safe for concurrent mutation.
*/
type Fields struct {
	keys   []string
	values map[string]interface{}
}

// NewFields creates an empty ordered field mapping.
func NewFields() *Fields {
	return &Fields{
		keys:   make([]string, 0),
		values: make(map[string]interface{}),
	}
}

// Set adds a field, or replaces the value of an existing field in place.
// Returns the Fields for chaining.
func (fields *Fields) Set(key string, value interface{}) *Fields {
	if _, ok := fields.values[key]; !ok {
		fields.keys = append(fields.keys, key)
	}
	fields.values[key] = value
	return fields
}

// Get returns the value stored under key, and whether the key exists.
func (fields *Fields) Get(key string) (interface{}, bool) {
	value, ok := fields.values[key]
	return value, ok
}

// Delete removes a field. Deleting an absent key is a no-op.
func (fields *Fields) Delete(key string) {
	if _, ok := fields.values[key]; !ok {
		return
	}

	delete(fields.values, key)
	for index, existing := range fields.keys {
		if existing == key {
			fields.keys = append(fields.keys[:index], fields.keys[index+1:]...)
			break
		}
	}
}

// Len returns the number of fields.
func (fields *Fields) Len() int {
	return len(fields.values)
}

// Keys returns the field names in insertion order. The returned slice is a
// copy.
func (fields *Fields) Keys() []string {
	keys := make([]string, len(fields.keys))
	copy(keys, fields.keys)
	return keys
}

// Each invokes callback for every field in insertion order, stopping at the
// first error, which is returned.
func (fields *Fields) Each(
	callback func(key string, value interface{}) error,
) error {
	for _, key := range fields.keys {
		if err := callback(key, fields.values[key]); err != nil {
			return err
		}
	}
	return nil
}
