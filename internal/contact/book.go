// Package contact implements the address book: validated phone and birthday
// values, contact records, and the name-keyed book with its upcoming-birthday
// query.
package contact

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

// GreetingWindow is the number of days after the reference date, inclusive,
// in which a birthday counts as upcoming.
const GreetingWindow = 7

// Greeting is one upcoming birthday: whom to greet and on which date.
type Greeting struct {
	Name string
	Date string // DD.MM.YYYY, moved off weekends to Monday
}

// Book owns the records of an address book, keyed by name and kept in
// insertion order. The zero value is not usable; call NewBook.
type Book struct {
	order   []string
	records map[string]*Record
}

// NewBook returns an empty book.
func NewBook() *Book {
	return &Book{records: make(map[string]*Record)}
}

// Add stores r under its name. A record already stored under that name is
// replaced, keeping its position.
func (b *Book) Add(r *Record) {
	if _, ok := b.records[r.name]; !ok {
		b.order = append(b.order, r.name)
	}
	b.records[r.name] = r
}

// Find returns the record stored under name.
func (b *Book) Find(name string) (*Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Delete removes the record stored under name, if any.
func (b *Book) Delete(name string) {
	if _, ok := b.records[name]; !ok {
		return
	}
	delete(b.records, name)
	if i := slices.Index(b.order, name); i >= 0 {
		b.order = slices.Delete(b.order, i, i+1)
	}
}

// Len returns the number of records.
func (b *Book) Len() int {
	return len(b.order)
}

// Records returns the records in insertion order.
func (b *Book) Records() []*Record {
	out := make([]*Record, len(b.order))
	for i, name := range b.order {
		out[i] = b.records[name]
	}
	return out
}

// UpcomingBirthdays returns the contacts whose next birthday falls within
// GreetingWindow days of ref, in book order. Only the calendar date of ref,
// in its own location, is used. A greeting date on a Saturday or Sunday is
// moved to the following Monday. Records without a birthday are skipped.
func (b *Book) UpcomingBirthdays(ref time.Time) []Greeting {
	today := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)

	var out []Greeting
	for _, name := range b.order {
		bd := b.records[name].birthday
		if bd == nil {
			continue
		}

		next := bd.in(today.Year())
		if next.Before(today) {
			next = bd.in(today.Year() + 1)
		}

		days := int(next.Sub(today).Hours() / 24)
		if days < 0 || days > GreetingWindow {
			continue
		}

		out = append(out, Greeting{Name: name, Date: shiftWeekend(next).Format(DateLayout)})
	}
	return out
}

// shiftWeekend moves Saturday and Sunday to the following Monday.
func shiftWeekend(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, 2)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	default:
		return d
	}
}

// String renders every record on its own line, in book order.
func (b *Book) String() string {
	lines := make([]string, len(b.order))
	for i, name := range b.order {
		lines[i] = b.records[name].String()
	}
	return strings.Join(lines, "\n")
}

// bookJSON is the persisted form of a Book.
type bookJSON struct {
	Contacts []recordJSON `json:"contacts"`
}

type recordJSON struct {
	Name     string    `json:"name"`
	Phones   []Phone   `json:"phones"`
	Birthday *Birthday `json:"birthday,omitempty"`
}

// MarshalJSON encodes every record, in order, with all of its fields.
func (b *Book) MarshalJSON() ([]byte, error) {
	doc := bookJSON{Contacts: make([]recordJSON, 0, len(b.order))}
	for _, name := range b.order {
		r := b.records[name]
		phones := r.phones
		if phones == nil {
			phones = []Phone{}
		}
		doc.Contacts = append(doc.Contacts, recordJSON{
			Name:     r.name,
			Phones:   phones,
			Birthday: r.birthday,
		})
	}
	return json.Marshal(doc)
}

// UnmarshalJSON replaces the contents of b with the encoded records.
// Empty or repeated names are rejected with ErrCorruptBook.
func (b *Book) UnmarshalJSON(data []byte) error {
	var doc bookJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	loaded := NewBook()
	for i, rj := range doc.Contacts {
		if rj.Name == "" {
			return fmt.Errorf("%w: contact %d has no name", ErrCorruptBook, i)
		}
		if _, dup := loaded.records[rj.Name]; dup {
			return fmt.Errorf("%w: duplicate contact %q", ErrCorruptBook, rj.Name)
		}
		r := NewRecord(rj.Name)
		if len(rj.Phones) > 0 {
			r.phones = rj.Phones
		}
		r.birthday = rj.Birthday
		loaded.Add(r)
	}

	*b = *loaded
	return nil
}
