// Package provider supplies concrete implementations of suggest.Provider:
// a static in-memory provider for tests and offline use, and a signed HTTP
// client for a real dictionary backend.
package provider

import "github.com/slugforge/slugpattern/suggest"

// Memory is a static suggest.Provider backed by data given at construction.
// It never errors and needs no synchronization since it is immutable once
// built.
type Memory struct {
	dictionaries []suggest.DictionaryInfo
	tags         []suggest.TagInfo
}

// NewMemory builds a Memory provider from fixed dictionary and tag data.
func NewMemory(dictionaries []suggest.DictionaryInfo, tags []suggest.TagInfo) *Memory {
	return &Memory{dictionaries: dictionaries, tags: tags}
}

func (m *Memory) Dictionaries() ([]suggest.DictionaryInfo, error) {
	return m.dictionaries, nil
}

func (m *Memory) Tags() ([]suggest.TagInfo, error) {
	return m.tags, nil
}
