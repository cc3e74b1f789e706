package contact

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// newScenarioBook returns the three-contact book used across query tests.
func newScenarioBook(t *testing.T, opts ...Option) *Book {
	t.Helper()
	b := NewBook(append([]Option{WithClock(func() time.Time { return fixedTime })}, opts...)...)
	for _, c := range []struct {
		name, phone, email string
		tags               []string
	}{
		{"John Doe", "12345", "john@work.com", []string{"work"}},
		{"Jane Doe", "67890", "jane@personal.com", []string{"friend"}},
		{"Alice Johnson", "12346", "alice@company.com", []string{"work"}},
	} {
		if _, err := b.Add(c.name, c.phone, c.email, c.tags); err != nil {
			t.Fatalf("Add(%q) error = %v", c.name, err)
		}
	}
	return b
}

func names(cs []*Contact) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func TestBook_AddStoresByPhone(t *testing.T) {
	b := NewBook()

	c, err := b.Add("John Doe", "12345", "john@work.com", []string{"work"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got, ok := b.Get("12345")
	if !ok {
		t.Fatal("Get(12345) found = false, want true")
	}
	if got != c {
		t.Errorf("Get returned %p, want the added contact %p", got, c)
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
}

func TestBook_AddUsesClock(t *testing.T) {
	b := NewBook(WithClock(func() time.Time { return fixedTime }))

	c, _ := b.Add("John Doe", "12345", "john@work.com", nil)

	if !c.CreatedAt.Equal(fixedTime) {
		t.Errorf("CreatedAt = %v, want %v", c.CreatedAt, fixedTime)
	}
}

func TestBook_AddSamePhoneReplacesInPlace(t *testing.T) {
	// Given: a book with three contacts
	b := newScenarioBook(t)

	// When: the first phone is added again with new content
	if _, err := b.Add("Johnny Doe", "12345", "johnny@home.com", nil); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	// Then: the entry is replaced, count unchanged, position kept
	want := []string{"Johnny Doe", "Jane Doe", "Alice Johnson"}
	if diff := cmp.Diff(want, names(b.List())); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
	c, _ := b.Get("12345")
	if c.Email != "johnny@home.com" {
		t.Errorf("Email = %q, want the most recent value", c.Email)
	}
}

func TestBook_ListInsertionOrder(t *testing.T) {
	b := newScenarioBook(t)

	want := []string{"John Doe", "Jane Doe", "Alice Johnson"}
	if diff := cmp.Diff(want, names(b.List())); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestBook_ListEmpty(t *testing.T) {
	got := NewBook().List()
	if got == nil || len(got) != 0 {
		t.Errorf("List() = %#v, want empty non-nil slice", got)
	}
}

func TestBook_Delete(t *testing.T) {
	// Given: a book with three contacts
	b := newScenarioBook(t)

	// When: an existing phone is deleted
	if err := b.Delete("12345"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// Then: only that entry is gone
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}
	if _, ok := b.Get("12345"); ok {
		t.Error("Get(12345) found = true after delete")
	}
	want := []string{"Jane Doe", "Alice Johnson"}
	if diff := cmp.Diff(want, names(b.List())); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}

	// And: deleting it again reports not found
	err := b.Delete("12345")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() = %v, want ErrNotFound", err)
	}
	if b.Len() != 2 {
		t.Errorf("Len() after failed delete = %d, want 2", b.Len())
	}
}

func TestBook_DeleteThenReAddAppends(t *testing.T) {
	b := newScenarioBook(t)

	_ = b.Delete("12345")
	_, _ = b.Add("John Doe", "12345", "john@work.com", nil)

	want := []string{"Jane Doe", "Alice Johnson", "John Doe"}
	if diff := cmp.Diff(want, names(b.List())); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestBook_ByTag(t *testing.T) {
	b := newScenarioBook(t)

	tests := []struct {
		tag  string
		want []string
	}{
		{"work", []string{"John Doe", "Alice Johnson"}},
		{"friend", []string{"Jane Doe"}},
		{"Work", []string{}},
		{"missing", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got := b.ByTag(tt.tag)
			if diff := cmp.Diff(tt.want, names(got)); diff != "" {
				t.Errorf("ByTag(%q) mismatch (-want +got):\n%s", tt.tag, diff)
			}
		})
	}
}

func TestBook_Search(t *testing.T) {
	b := newScenarioBook(t)

	tests := []struct {
		name string
		crit Criteria
		want int
	}{
		{"name substring", Criteria{Name: "John"}, 2},
		{"exact phone", Criteria{Phone: "12345"}, 1},
		{"exact email", Criteria{Email: "john@work.com"}, 1},
		{"shared surname", Criteria{Name: "Doe"}, 2},
		{"phone prefix", Criteria{Name: "", Phone: "123"}, 2},
		{"name and email", Criteria{Name: "Jane", Email: "jane@personal.com"}, 1},
		{"fields are ANDed", Criteria{Name: "Jane", Phone: "123"}, 0},
		{"case-sensitive", Criteria{Name: "john"}, 0},
		{"no criteria matches all", Criteria{}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Search(tt.crit)
			if len(got) != tt.want {
				t.Errorf("Search(%+v) = %v, want %d results", tt.crit, names(got), tt.want)
			}
		})
	}
}

func TestBook_SearchKeepsOrder(t *testing.T) {
	b := newScenarioBook(t)

	got := names(b.Search(Criteria{Email: ".com"}))
	want := []string{"John Doe", "Jane Doe", "Alice Johnson"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Search mismatch (-want +got):\n%s", diff)
	}
}

func TestBook_Tag(t *testing.T) {
	b := newScenarioBook(t)

	if err := b.Tag("67890", "work"); err != nil {
		t.Fatalf("Tag() error = %v", err)
	}
	want := []string{"John Doe", "Jane Doe", "Alice Johnson"}
	if diff := cmp.Diff(want, names(b.ByTag("work"))); diff != "" {
		t.Errorf("ByTag(work) mismatch (-want +got):\n%s", diff)
	}

	if err := b.Tag("00000", "work"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Tag(missing) = %v, want ErrNotFound", err)
	}
}

func TestBook_ValidationOption(t *testing.T) {
	t.Run("disabled by default", func(t *testing.T) {
		b := NewBook()
		if _, err := b.Add("", "1", "", nil); err != nil {
			t.Errorf("Add() error = %v, want nil without validation", err)
		}
		if b.Len() != 1 {
			t.Errorf("Len() = %d, want 1", b.Len())
		}
	})

	t.Run("enabled rejects empty fields", func(t *testing.T) {
		b := NewBook(WithValidation(true))
		_, err := b.Add("John", "1", "", nil)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("Add() = %v, want ErrValidation", err)
		}
		if b.Len() != 0 {
			t.Errorf("Len() = %d, want 0 after rejected add", b.Len())
		}
	})
}

func TestBook_LogsMutations(t *testing.T) {
	// Given: a book wired to an observed logger
	core, logs := observer.New(zapcore.DebugLevel)
	b := NewBook(WithLogger(zap.New(core)))

	// When: contacts are added, replaced and deleted
	_, _ = b.Add("John Doe", "12345", "john@work.com", nil)
	_, _ = b.Add("John Doe", "12345", "john@home.com", nil)
	_ = b.Delete("12345")
	_ = b.Delete("12345")

	// Then: each mutation is logged with the phone
	want := []string{"contact added", "contact replaced", "contact deleted", "delete miss"}
	entries := logs.All()
	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = e.Message
		if phone, ok := e.ContextMap()["phone"]; !ok || phone != "12345" {
			t.Errorf("entry %q phone = %v, want 12345", e.Message, phone)
		}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("log messages mismatch (-want +got):\n%s", diff)
	}
}

func TestBook_TagLogsOnlyWhenAdded(t *testing.T) {
	// Given: a contact that already carries "work"
	core, logs := observer.New(zapcore.DebugLevel)
	b := NewBook(WithLogger(zap.New(core)))
	_, _ = b.Add("John Doe", "12345", "john@work.com", []string{"work"})

	// When: the same tag is attached again, then a new one
	_ = b.Tag("12345", "work")
	_ = b.Tag("12345", "golf")

	// Then: only the new tag is logged
	tagged := logs.FilterMessage("tag added").All()
	if len(tagged) != 1 {
		t.Fatalf("tag added entries = %d, want 1", len(tagged))
	}
	if got := tagged[0].ContextMap()["tag"]; got != "golf" {
		t.Errorf("logged tag = %v, want golf", got)
	}
	c, _ := b.Get("12345")
	if diff := cmp.Diff([]string{"work", "golf"}, c.Tags); diff != "" {
		t.Errorf("Tags mismatch (-want +got):\n%s", diff)
	}
}
