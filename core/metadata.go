package core

import (
	"maps"
	"slices"
)

// MetadataKey names a metadata entry. Keys are typed so stages cannot collide
// on ad-hoc strings.
type MetadataKey string

const (
	MetaSource    MetadataKey = "source"
	MetaLength    MetadataKey = "length"
	MetaPages     MetadataKey = "pages"
	MetaFilePath  MetadataKey = "file_path"
	MetaURL       MetadataKey = "url"
	MetaVideoID   MetadataKey = "video_id"
	MetaTitle     MetadataKey = "title"
	MetaLanguage  MetadataKey = "language"
	MetaNumItems  MetadataKey = "num_items"
	MetaNumChunks MetadataKey = "num_chunks"
)

// Metadata is an append-only key/value store scoped to one invocation.
// Entries can be added or updated but never removed, so keys written by an
// earlier stage survive every later stage.
type Metadata struct {
	values map[MetadataKey]any
}

// NewMetadata creates an empty metadata store.
func NewMetadata() *Metadata {
	return &Metadata{values: make(map[MetadataKey]any)}
}

// Set stores value under key, replacing any previous value for that key.
func (m *Metadata) Set(key MetadataKey, value any) *Metadata {
	if m.values == nil {
		m.values = make(map[MetadataKey]any)
	}
	m.values[key] = value
	return m
}

// Merge copies every entry of other into m. Keys only present in m are kept.
func (m *Metadata) Merge(other *Metadata) {
	if other == nil {
		return
	}
	for k, v := range other.values {
		m.Set(k, v)
	}
}

// Get returns the value stored under key.
func (m *Metadata) Get(key MetadataKey) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Metadata) Has(key MetadataKey) bool {
	_, ok := m.Get(key)
	return ok
}

// String returns the value under key if it is a string.
func (m *Metadata) String(key MetadataKey) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Int returns the value under key if it is an int.
func (m *Metadata) Int(key MetadataKey) (int, bool) {
	v, ok := m.Get(key)
	if !ok {
		return 0, false
	}
	i, ok := v.(int)
	return i, ok
}

// Keys returns the stored keys in sorted order.
func (m *Metadata) Keys() []MetadataKey {
	if m == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(m.values))
}

// Len returns the number of entries.
func (m *Metadata) Len() int {
	if m == nil {
		return 0
	}
	return len(m.values)
}

// Map returns a copy of the entries keyed by plain strings, suitable for
// logging or JSON encoding.
func (m *Metadata) Map() map[string]any {
	out := make(map[string]any, m.Len())
	if m == nil {
		return out
	}
	for k, v := range m.values {
		out[string(k)] = v
	}
	return out
}
