// Package console holds the menu actions shared by every front end and the
// plain line-oriented prompt used when stdout is not a terminal.
package console

import (
	"errors"
	"fmt"
	"strings"

	"github.com/smileynet/contactbook/internal/contact"
)

// Book is the contact store as seen by the console.
type Book interface {
	Add(name, phone, email string, tags []string) (*contact.Contact, error)
	Delete(phone string) error
	List() []*contact.Contact
	ByTag(tag string) []*contact.Contact
	Search(crit contact.Criteria) []*contact.Contact
}

// Verify at compile time that *contact.Book satisfies Book.
var _ Book = (*contact.Book)(nil)

// Action is a menu entry's operation.
type Action int

const (
	ActionExit   Action = iota // Leave the program.
	ActionAdd                  // Add a new contact.
	ActionList                 // List every contact.
	ActionSearch               // Search by name, phone and email.
	ActionDelete               // Delete by phone.
	ActionTag                  // List contacts carrying a tag.
)

// Item is one line of the main menu.
type Item struct {
	Key    string
	Label  string
	Action Action
}

// Items is the main menu in display order.
var Items = []Item{
	{Key: "1", Label: "Add new contact", Action: ActionAdd},
	{Key: "2", Label: "List all contacts", Action: ActionList},
	{Key: "3", Label: "Search contact", Action: ActionSearch},
	{Key: "4", Label: "Delete contact", Action: ActionDelete},
	{Key: "5", Label: "Search by tag", Action: ActionTag},
	{Key: "0", Label: "Exit", Action: ActionExit},
}

// Lookup returns the menu item selected by key.
func Lookup(key string) (Item, bool) {
	for _, it := range Items {
		if it.Key == key {
			return it, true
		}
	}
	return Item{}, false
}

// Title returns the menu label of a.
func (a Action) Title() string {
	for _, it := range Items {
		if it.Action == a {
			return it.Label
		}
	}
	return ""
}

// Field is one input collected before running an action.
type Field struct {
	Prompt      string
	Placeholder string
}

// Fields returns the inputs a needs, in the order Execute expects them.
func (a Action) Fields() []Field {
	switch a {
	case ActionAdd:
		return []Field{
			{Prompt: "Enter name", Placeholder: "Jane Doe"},
			{Prompt: "Enter phone", Placeholder: "67890"},
			{Prompt: "Enter email", Placeholder: "jane@personal.com"},
			{Prompt: "Enter tags (comma-separated)", Placeholder: "friend, work"},
		}
	case ActionSearch:
		return []Field{
			{Prompt: "Enter name (leave empty to skip)"},
			{Prompt: "Enter phone (leave empty to skip)"},
			{Prompt: "Enter email (leave empty to skip)"},
		}
	case ActionDelete:
		return []Field{{Prompt: "Enter phone number of the contact to delete"}}
	case ActionTag:
		return []Field{{Prompt: "Enter tag to search by"}}
	default:
		return nil
	}
}

// Outcome classifies a Result for styling.
type Outcome int

const (
	OutcomeSuccess Outcome = iota // Mutation applied or contacts found.
	OutcomeEmpty                  // Query matched nothing.
	OutcomeFailure                // Store rejected the request.
)

// Result is what an action produced: a message, contacts, or both.
type Result struct {
	Outcome  Outcome
	Message  string
	Contacts []*contact.Contact
}

// Execute runs a against b with inputs ordered as a.Fields().
// Missing inputs are treated as empty.
func Execute(b Book, a Action, values []string) Result {
	v := func(i int) string {
		if i < len(values) {
			return values[i]
		}
		return ""
	}

	switch a {
	case ActionAdd:
		name := v(0)
		if _, err := b.Add(name, v(1), v(2), SplitTags(v(3))); err != nil {
			return Result{Outcome: OutcomeFailure, Message: fmt.Sprintf("Contact not added: %s", reason(err))}
		}
		return Result{Outcome: OutcomeSuccess, Message: fmt.Sprintf("Contact '%s' added successfully!", name)}

	case ActionList:
		cs := b.List()
		if len(cs) == 0 {
			return Result{Outcome: OutcomeEmpty, Message: "No contacts available."}
		}
		return Result{Outcome: OutcomeSuccess, Contacts: cs}

	case ActionSearch:
		cs := b.Search(contact.Criteria{Name: v(0), Phone: v(1), Email: v(2)})
		if len(cs) == 0 {
			return Result{Outcome: OutcomeEmpty, Message: "No contacts found with the given criteria."}
		}
		return Result{Outcome: OutcomeSuccess, Contacts: cs}

	case ActionDelete:
		phone := v(0)
		if err := b.Delete(phone); err != nil {
			if errors.Is(err, contact.ErrNotFound) {
				return Result{Outcome: OutcomeFailure, Message: fmt.Sprintf("No contact with phone '%s'.", phone)}
			}
			return Result{Outcome: OutcomeFailure, Message: reason(err)}
		}
		return Result{Outcome: OutcomeSuccess, Message: fmt.Sprintf("Contact with phone '%s' deleted.", phone)}

	case ActionTag:
		tag := v(0)
		cs := b.ByTag(tag)
		if len(cs) == 0 {
			return Result{Outcome: OutcomeEmpty, Message: fmt.Sprintf("No contacts found with tag '%s'.", tag)}
		}
		return Result{
			Outcome:  OutcomeSuccess,
			Message:  fmt.Sprintf("%d contact(s) found with tag: '%s'", len(cs), tag),
			Contacts: cs,
		}
	}

	return Result{}
}

// SplitTags splits comma-separated input, trimming blanks and dropping empties.
func SplitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// reason strips the package prefix from store errors for display.
func reason(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 && errors.Is(err, contact.ErrValidation) {
		return msg[i+2:]
	}
	return msg
}
