package provider

import (
	"testing"

	"github.com/slugforge/slugpattern/suggest"
)

func TestMemoryDictionaries(t *testing.T) {
	dicts := []suggest.DictionaryInfo{{Kind: "noun", Count: 10}}
	m := NewMemory(dicts, nil)

	got, err := m.Dictionaries()
	if err != nil {
		t.Fatalf("Dictionaries() error = %v", err)
	}
	if len(got) != 1 || got[0].Kind != "noun" {
		t.Fatalf("Dictionaries() = %+v, want %+v", got, dicts)
	}
}

func TestMemoryTags(t *testing.T) {
	tags := []suggest.TagInfo{{Kind: "noun", Tag: "animal"}}
	m := NewMemory(nil, tags)

	got, err := m.Tags()
	if err != nil {
		t.Fatalf("Tags() error = %v", err)
	}
	if len(got) != 1 || got[0].Tag != "animal" {
		t.Fatalf("Tags() = %+v, want %+v", got, tags)
	}
}

func TestMemoryEmpty(t *testing.T) {
	m := NewMemory(nil, nil)

	dicts, err := m.Dictionaries()
	if err != nil || len(dicts) != 0 {
		t.Fatalf("Dictionaries() = %+v, %v, want empty, nil", dicts, err)
	}

	tags, err := m.Tags()
	if err != nil || len(tags) != 0 {
		t.Fatalf("Tags() = %+v, %v, want empty, nil", tags, err)
	}
}
