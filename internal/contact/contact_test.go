package contact

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var fixedTime = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

func TestNew_DefaultsEmptyTags(t *testing.T) {
	c := New("Jane Doe", "67890", "jane@personal.com", nil, fixedTime)

	if c.Name != "Jane Doe" || c.Phone != "67890" || c.Email != "jane@personal.com" {
		t.Errorf("fields = %+v, want Jane Doe/67890/jane@personal.com", c)
	}
	if c.Tags == nil || len(c.Tags) != 0 {
		t.Errorf("Tags = %#v, want empty non-nil slice", c.Tags)
	}
	if !c.CreatedAt.Equal(fixedTime) {
		t.Errorf("CreatedAt = %v, want %v", c.CreatedAt, fixedTime)
	}
}

func TestNew_CopiesAndDeduplicatesTags(t *testing.T) {
	// Given: a caller-owned tag slice with a repeat
	in := []string{"work", "friend", "work"}

	// When: a contact is built from it
	c := New("John Doe", "12345", "john@work.com", in, fixedTime)
	in[0] = "mutated"

	// Then: the repeat is dropped and the caller's slice is not shared
	if diff := cmp.Diff([]string{"work", "friend"}, c.Tags); diff != "" {
		t.Errorf("Tags mismatch (-want +got):\n%s", diff)
	}
}

func TestContact_AddTag(t *testing.T) {
	c := New("John Doe", "12345", "john@work.com", []string{"work"}, fixedTime)

	if !c.AddTag("new_tag") {
		t.Error("AddTag(new_tag) = false, want true for a new tag")
	}
	if c.AddTag("new_tag") {
		t.Error("AddTag(new_tag) again = true, want false for a repeat")
	}
	c.AddTag("Work")

	want := []string{"work", "new_tag", "Work"}
	if diff := cmp.Diff(want, c.Tags); diff != "" {
		t.Errorf("Tags mismatch (-want +got):\n%s", diff)
	}
}

func TestContact_HasTag(t *testing.T) {
	c := New("John Doe", "12345", "john@work.com", []string{"work"}, fixedTime)

	if !c.HasTag("work") {
		t.Error("HasTag(work) = false, want true")
	}
	if c.HasTag("wor") {
		t.Error("HasTag(wor) = true, want false: tags match exactly")
	}
	if c.HasTag("WORK") {
		t.Error("HasTag(WORK) = true, want false: tags are case-sensitive")
	}
}

func TestContact_String(t *testing.T) {
	c := New("John Doe", "12345", "john@work.com", []string{"work", "golf"}, fixedTime)

	want := "Name: John Doe\n" +
		"Phone: 12345\n" +
		"Email: john@work.com\n" +
		"Tags: work, golf\n" +
		"Created on: 2026-01-02 15:04:05"
	if got := c.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestContact_FormatLayout(t *testing.T) {
	c := New("John Doe", "12345", "john@work.com", nil, fixedTime)

	got := c.Format(time.RFC3339)
	want := "Name: John Doe\nPhone: 12345\nEmail: john@work.com\nTags: \nCreated on: 2026-01-02T15:04:05Z"
	if got != want {
		t.Errorf("Format(RFC3339) =\n%s\nwant\n%s", got, want)
	}
}

func TestContact_Validate(t *testing.T) {
	tests := []struct {
		name    string
		contact *Contact
		wantErr bool
	}{
		{"complete", New("John", "1", "j@x", nil, fixedTime), false},
		{"missing name", New("", "1", "j@x", nil, fixedTime), true},
		{"blank name", New("   ", "1", "j@x", nil, fixedTime), true},
		{"missing phone", New("John", "", "j@x", nil, fixedTime), true},
		{"missing email", New("John", "1", "", nil, fixedTime), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.contact.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Errorf("Validate() = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}
