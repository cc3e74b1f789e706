// Package contact implements the contact record and the in-memory book
// that stores contacts keyed by phone number.
package contact

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultTimeFormat is the layout used when rendering CreatedAt.
const DefaultTimeFormat = "2006-01-02 15:04:05"

// ErrNotFound indicates no contact is stored under the requested phone.
var ErrNotFound = errors.New("contact: not found")

// ErrValidation indicates a required contact field is empty.
var ErrValidation = errors.New("contact: validation failed")

// Contact is one person's contact information.
// Tags never contain the same value twice.
type Contact struct {
	Name      string
	Phone     string
	Email     string
	Tags      []string
	CreatedAt time.Time
}

// New creates a Contact stamped with createdAt.
// Tags are copied; repeated values keep their first occurrence.
func New(name, phone, email string, tags []string, createdAt time.Time) *Contact {
	c := &Contact{
		Name:      name,
		Phone:     phone,
		Email:     email,
		Tags:      make([]string, 0, len(tags)),
		CreatedAt: createdAt,
	}
	for _, t := range tags {
		c.AddTag(t)
	}
	return c
}

// AddTag appends tag unless the contact already carries it (exact match)
// and reports whether it was appended.
func (c *Contact) AddTag(tag string) bool {
	if c.HasTag(tag) {
		return false
	}
	c.Tags = append(c.Tags, tag)
	return true
}

// HasTag reports whether tag is attached to the contact.
func (c *Contact) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Validate checks that name, phone and email are present.
func (c *Contact) Validate() error {
	switch {
	case strings.TrimSpace(c.Name) == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case strings.TrimSpace(c.Phone) == "":
		return fmt.Errorf("%w: phone is required", ErrValidation)
	case strings.TrimSpace(c.Email) == "":
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	return nil
}

// String renders the contact one labeled field per line.
func (c *Contact) String() string {
	return c.Format(DefaultTimeFormat)
}

// Format is String with a caller-chosen layout for the creation time.
func (c *Contact) Format(layout string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", c.Name)
	fmt.Fprintf(&b, "Phone: %s\n", c.Phone)
	fmt.Fprintf(&b, "Email: %s\n", c.Email)
	fmt.Fprintf(&b, "Tags: %s\n", strings.Join(c.Tags, ", "))
	fmt.Fprintf(&b, "Created on: %s", c.CreatedAt.Format(layout))
	return b.String()
}
