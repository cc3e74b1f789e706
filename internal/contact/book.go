package contact

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Criteria holds optional substring filters for Search.
// Empty fields are not applied.
type Criteria struct {
	Name  string
	Phone string
	Email string
}

// Match reports whether ct satisfies every non-empty field of c.
// Matching is a case-sensitive substring test per field.
func (c Criteria) Match(ct *Contact) bool {
	if c.Name != "" && !strings.Contains(ct.Name, c.Name) {
		return false
	}
	if c.Phone != "" && !strings.Contains(ct.Phone, c.Phone) {
		return false
	}
	if c.Email != "" && !strings.Contains(ct.Email, c.Email) {
		return false
	}
	return true
}

// Book is an in-memory collection of contacts keyed by phone.
// Listing follows the order in which phones were first added.
//
// Book is not safe for concurrent use; confine it to a single goroutine
// (e.g., the Bubble Tea update loop).
type Book struct {
	contacts map[string]*Contact
	order    []string
	now      func() time.Time
	logger   *zap.Logger
	validate bool
}

// Option configures a Book.
type Option func(*Book)

// WithClock sets the time source used to stamp new contacts.
func WithClock(now func() time.Time) Option {
	return func(b *Book) {
		if now != nil {
			b.now = now
		}
	}
}

// WithLogger sets the logger used to record mutations.
func WithLogger(l *zap.Logger) Option {
	return func(b *Book) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithValidation makes Add reject contacts with an empty name, phone or email.
func WithValidation(enabled bool) Option {
	return func(b *Book) {
		b.validate = enabled
	}
}

// NewBook creates an empty Book.
func NewBook(opts ...Option) *Book {
	b := &Book{
		contacts: make(map[string]*Contact),
		now:      time.Now,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Add stores a new contact under phone, replacing any contact already
// stored there. A replaced contact keeps its position in the listing.
func (b *Book) Add(name, phone, email string, tags []string) (*Contact, error) {
	c := New(name, phone, email, tags, b.now())
	if b.validate {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}

	if _, exists := b.contacts[phone]; exists {
		b.logger.Debug("contact replaced", zap.String("phone", phone), zap.String("name", name))
	} else {
		b.order = append(b.order, phone)
		b.logger.Debug("contact added", zap.String("phone", phone), zap.String("name", name))
	}
	b.contacts[phone] = c
	return c, nil
}

// Delete removes the contact stored under phone.
// It returns ErrNotFound if there is none.
func (b *Book) Delete(phone string) error {
	if _, ok := b.contacts[phone]; !ok {
		b.logger.Debug("delete miss", zap.String("phone", phone))
		return fmt.Errorf("%w: phone %q", ErrNotFound, phone)
	}
	delete(b.contacts, phone)
	for i, p := range b.order {
		if p == phone {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	b.logger.Debug("contact deleted", zap.String("phone", phone))
	return nil
}

// Get returns the contact stored under phone.
func (b *Book) Get(phone string) (*Contact, bool) {
	c, ok := b.contacts[phone]
	return c, ok
}

// Tag attaches tag to the contact stored under phone. A tag the contact
// already carries is left as is.
func (b *Book) Tag(phone, tag string) error {
	c, ok := b.contacts[phone]
	if !ok {
		return fmt.Errorf("%w: phone %q", ErrNotFound, phone)
	}
	if c.AddTag(tag) {
		b.logger.Debug("tag added", zap.String("phone", phone), zap.String("tag", tag))
	}
	return nil
}

// Len returns the number of stored contacts.
func (b *Book) Len() int {
	return len(b.order)
}

// List returns every contact in insertion order.
func (b *Book) List() []*Contact {
	return b.filter(func(*Contact) bool { return true })
}

// ByTag returns the contacts carrying tag, in insertion order.
func (b *Book) ByTag(tag string) []*Contact {
	return b.filter(func(c *Contact) bool { return c.HasTag(tag) })
}

// Search returns the contacts matching all non-empty fields of crit.
// Zero criteria match every contact.
func (b *Book) Search(crit Criteria) []*Contact {
	return b.filter(crit.Match)
}

func (b *Book) filter(keep func(*Contact) bool) []*Contact {
	out := make([]*Contact, 0, len(b.order))
	for _, phone := range b.order {
		c := b.contacts[phone]
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
