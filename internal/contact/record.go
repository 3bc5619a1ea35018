package contact

import (
	"fmt"
	"strings"
)

// Sentinels used by Record.String for empty fields.
const (
	noPhone    = "No phone"
	noBirthday = "No birthday"
)

// Record holds one contact: an immutable name, zero or more phones in
// insertion order (duplicates allowed), and an optional birthday.
//
// Every mutating method validates its input before touching the record, so a
// failed call leaves the record unchanged.
type Record struct {
	name     string
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates a record with no phones and no birthday.
func NewRecord(name string) *Record {
	return &Record{name: name}
}

// Name returns the contact name.
func (r *Record) Name() string {
	return r.name
}

// Phones returns a copy of the phone list in order.
func (r *Record) Phones() []Phone {
	out := make([]Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// AddPhone validates raw and appends it.
func (r *Record) AddPhone(raw string) error {
	p, err := ParsePhone(raw)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone drops every phone equal to raw. Unknown values are ignored.
func (r *Record) RemovePhone(raw string) {
	kept := r.phones[:0]
	for _, p := range r.phones {
		if p.digits != raw {
			kept = append(kept, p)
		}
	}
	clear(r.phones[len(kept):])
	r.phones = kept
}

// EditPhone replaces the first phone equal to oldRaw with newRaw.
func (r *Record) EditPhone(oldRaw, newRaw string) error {
	idx := r.indexOf(oldRaw)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrPhoneNotFound, oldRaw)
	}
	p, err := ParsePhone(newRaw)
	if err != nil {
		return err
	}
	r.phones[idx] = p
	return nil
}

// FindPhone returns the first phone equal to raw.
func (r *Record) FindPhone(raw string) (Phone, bool) {
	idx := r.indexOf(raw)
	if idx < 0 {
		return Phone{}, false
	}
	return r.phones[idx], true
}

// SetBirthday validates raw and overwrites any existing birthday.
func (r *Record) SetBirthday(raw string) error {
	b, err := ParseBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// Birthday returns the birthday, if set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// String renders the record as a single human-readable line.
func (r *Record) String() string {
	phones := noPhone
	if len(r.phones) > 0 {
		parts := make([]string, len(r.phones))
		for i, p := range r.phones {
			parts[i] = p.digits
		}
		phones = strings.Join(parts, "; ")
	}
	birthday := noBirthday
	if r.birthday != nil {
		birthday = r.birthday.String()
	}
	return fmt.Sprintf("Contact name: %s, phones: %s, birthday: %s", r.name, phones, birthday)
}

func (r *Record) indexOf(raw string) int {
	for i, p := range r.phones {
		if p.digits == raw {
			return i
		}
	}
	return -1
}
