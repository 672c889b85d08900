package rewards

import (
	"encoding/json"
	"iter"
)

// Table is a map keyed by coin symbol (or account id) that remembers the
// order in which keys were first set. It is persisted as a JSON object with
// the keys in that order. Its zero value is an empty table ready to use.
type Table[V any] struct {
	keys   []string
	values map[string]V
}

// Len returns the number of keys.
func (t *Table[V]) Len() int { return len(t.keys) }

// Keys returns the keys in insertion order.
func (t *Table[V]) Keys() []string { return t.keys }

// Get returns the value for key, and whether it was set.
func (t *Table[V]) Get(key string) (V, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Set sets the value for key. A new key is appended to the order, an
// existing one keeps its position.
func (t *Table[V]) Set(key string, value V) {
	if t.values == nil {
		t.values = make(map[string]V)
	}
	if _, exists := t.values[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}

// GetOrCreate returns the value for key, setting it to create() first if the
// key is unknown.
func (t *Table[V]) GetOrCreate(key string, create func() V) V {
	if v, ok := t.values[key]; ok {
		return v
	}
	v := create()
	t.Set(key, v)
	return v
}

// All iterates over the table in insertion order.
func (t *Table[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, k := range t.keys {
			if !yield(k, t.values[k]) {
				return
			}
		}
	}
}

// MarshalJSON implements the json.Marshaler interface.
func (t Table[V]) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for _, k := range t.keys {
		w.Append(k, t.values[k])
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface, keeping the key
// order of the document. A repeated key replaces the earlier value in place.
func (t *Table[V]) UnmarshalJSON(data []byte) error {
	*t = Table[V]{}
	return decodeObject(data, func(key string, raw json.RawMessage) error {
		var v V
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		t.Set(key, v)
		return nil
	})
}
