// Package seed decodes the initial contact set and loads it into a book.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/smileynet/contactbook/internal/contact"
)

// Entry is one contact as written in a seed file.
type Entry struct {
	Name  string   `yaml:"name"`
	Phone string   `yaml:"phone"`
	Email string   `yaml:"email"`
	Tags  []string `yaml:"tags"`
}

type file struct {
	Contacts []Entry `yaml:"contacts"`
}

// Parse decodes seed YAML. Unknown fields are rejected.
// Empty or comment-only input yields no entries.
func Parse(data []byte) ([]Entry, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("seed: parsing: %w", err)
	}
	return f.Contacts, nil
}

// Read loads and parses the seed file name from fsys.
func Read(fsys fs.FS, name string) ([]Entry, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("seed: reading %s: %w", name, err)
	}
	entries, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, name)
	}
	return entries, nil
}

// Load adds every entry to b in file order and returns how many contacts
// the book gained. Entries sharing a phone replace each other, so the count
// can be lower than len(entries). It stops at the first entry the book rejects.
func Load(b *contact.Book, entries []Entry) (int, error) {
	before := b.Len()
	for i, e := range entries {
		if _, err := b.Add(e.Name, e.Phone, e.Email, e.Tags); err != nil {
			return b.Len() - before, fmt.Errorf("seed: entry %d: %w", i+1, err)
		}
	}
	return b.Len() - before, nil
}
