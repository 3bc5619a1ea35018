package contact

import (
	"errors"
	"slices"
	"testing"
)

func phoneStrings(r *Record) []string {
	var out []string
	for _, p := range r.Phones() {
		out = append(out, p.String())
	}
	return out
}

func TestNewRecord_Empty(t *testing.T) {
	r := NewRecord("John")

	if r.Name() != "John" {
		t.Errorf("Name() = %q, want %q", r.Name(), "John")
	}
	if len(r.Phones()) != 0 {
		t.Errorf("Phones() = %v, want empty", r.Phones())
	}
	if _, ok := r.Birthday(); ok {
		t.Error("Birthday() ok = true, want false")
	}
}

func TestRecord_AddPhone(t *testing.T) {
	t.Run("appends in order without dedup", func(t *testing.T) {
		// Given a record
		r := NewRecord("John")

		// When phones are added, one of them twice
		for _, p := range []string{"1234567890", "5555555555", "1234567890"} {
			if err := r.AddPhone(p); err != nil {
				t.Fatalf("AddPhone(%q) error = %v", p, err)
			}
		}

		// Then all three are kept in order
		want := []string{"1234567890", "5555555555", "1234567890"}
		if got := phoneStrings(r); !slices.Equal(got, want) {
			t.Errorf("phones = %v, want %v", got, want)
		}
	})

	t.Run("invalid phone leaves record unchanged", func(t *testing.T) {
		r := NewRecord("John")
		if err := r.AddPhone("1234567890"); err != nil {
			t.Fatal(err)
		}

		err := r.AddPhone("12345")

		if !errors.Is(err, ErrInvalidPhone) {
			t.Fatalf("AddPhone(short) error = %v, want ErrInvalidPhone", err)
		}
		if got := phoneStrings(r); !slices.Equal(got, []string{"1234567890"}) {
			t.Errorf("phones = %v, want unchanged", got)
		}
	})
}

func TestRecord_RemovePhone(t *testing.T) {
	t.Run("removes every match", func(t *testing.T) {
		r := NewRecord("John")
		for _, p := range []string{"1111111111", "2222222222", "1111111111"} {
			if err := r.AddPhone(p); err != nil {
				t.Fatal(err)
			}
		}

		r.RemovePhone("1111111111")

		if got := phoneStrings(r); !slices.Equal(got, []string{"2222222222"}) {
			t.Errorf("phones = %v, want [2222222222]", got)
		}
	})

	t.Run("unknown value is a no-op", func(t *testing.T) {
		r := NewRecord("John")
		if err := r.AddPhone("1111111111"); err != nil {
			t.Fatal(err)
		}

		r.RemovePhone("9999999999")
		r.RemovePhone("not-a-phone")

		if got := phoneStrings(r); !slices.Equal(got, []string{"1111111111"}) {
			t.Errorf("phones = %v, want unchanged", got)
		}
	})

	t.Run("earlier Phones copy is not affected", func(t *testing.T) {
		r := NewRecord("John")
		for _, p := range []string{"1111111111", "2222222222"} {
			if err := r.AddPhone(p); err != nil {
				t.Fatal(err)
			}
		}
		before := r.Phones()

		r.RemovePhone("1111111111")

		if before[0].String() != "1111111111" || before[1].String() != "2222222222" {
			t.Errorf("earlier copy changed to %v", before)
		}
	})
}

func TestRecord_EditPhone(t *testing.T) {
	newRecord := func(t *testing.T, phones ...string) *Record {
		t.Helper()
		r := NewRecord("John")
		for _, p := range phones {
			if err := r.AddPhone(p); err != nil {
				t.Fatal(err)
			}
		}
		return r
	}

	t.Run("replaces the only phone", func(t *testing.T) {
		r := newRecord(t, "1234567890")

		if err := r.EditPhone("1234567890", "1112223333"); err != nil {
			t.Fatalf("EditPhone() error = %v", err)
		}

		if got := phoneStrings(r); !slices.Equal(got, []string{"1112223333"}) {
			t.Errorf("phones = %v, want [1112223333]", got)
		}
	})

	t.Run("replaces only the first match in place", func(t *testing.T) {
		r := newRecord(t, "5555555555", "1234567890", "1234567890")

		if err := r.EditPhone("1234567890", "1112223333"); err != nil {
			t.Fatalf("EditPhone() error = %v", err)
		}

		want := []string{"5555555555", "1112223333", "1234567890"}
		if got := phoneStrings(r); !slices.Equal(got, want) {
			t.Errorf("phones = %v, want %v", got, want)
		}
	})

	t.Run("unknown old phone", func(t *testing.T) {
		r := newRecord(t, "1234567890")

		err := r.EditPhone("0000000000", "1112223333")

		if !errors.Is(err, ErrPhoneNotFound) {
			t.Fatalf("EditPhone() error = %v, want ErrPhoneNotFound", err)
		}
		if got := phoneStrings(r); !slices.Equal(got, []string{"1234567890"}) {
			t.Errorf("phones = %v, want unchanged", got)
		}
	})

	t.Run("invalid new phone keeps original", func(t *testing.T) {
		r := newRecord(t, "1234567890")

		err := r.EditPhone("1234567890", "abc")

		if !errors.Is(err, ErrInvalidPhone) {
			t.Fatalf("EditPhone() error = %v, want ErrInvalidPhone", err)
		}
		if got := phoneStrings(r); !slices.Equal(got, []string{"1234567890"}) {
			t.Errorf("phones = %v, want unchanged", got)
		}
	})

	t.Run("both invalid reports not found", func(t *testing.T) {
		r := newRecord(t, "1234567890")

		err := r.EditPhone("0000000000", "abc")

		if !errors.Is(err, ErrPhoneNotFound) {
			t.Errorf("EditPhone() error = %v, want ErrPhoneNotFound", err)
		}
	})
}

func TestRecord_FindPhone(t *testing.T) {
	r := NewRecord("John")
	if err := r.AddPhone("5555555555"); err != nil {
		t.Fatal(err)
	}

	p, ok := r.FindPhone("5555555555")
	if !ok {
		t.Fatal("FindPhone() ok = false, want true")
	}
	if p.String() != "5555555555" {
		t.Errorf("FindPhone() = %q, want %q", p.String(), "5555555555")
	}

	if _, ok := r.FindPhone("555555555"); ok {
		t.Error("FindPhone(prefix) ok = true, want false")
	}
}

func TestRecord_SetBirthday(t *testing.T) {
	t.Run("last write wins", func(t *testing.T) {
		r := NewRecord("John")
		if err := r.SetBirthday("12.06.1990"); err != nil {
			t.Fatal(err)
		}
		if err := r.SetBirthday("13.07.1991"); err != nil {
			t.Fatal(err)
		}

		b, ok := r.Birthday()
		if !ok {
			t.Fatal("Birthday() ok = false")
		}
		if b.String() != "13.07.1991" {
			t.Errorf("Birthday() = %s, want 13.07.1991", b)
		}
	})

	t.Run("invalid date keeps previous", func(t *testing.T) {
		r := NewRecord("John")
		if err := r.SetBirthday("12.06.1990"); err != nil {
			t.Fatal(err)
		}

		err := r.SetBirthday("31.02.2024")

		if !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("SetBirthday() error = %v, want ErrInvalidDate", err)
		}
		if b, _ := r.Birthday(); b.String() != "12.06.1990" {
			t.Errorf("Birthday() = %s, want unchanged 12.06.1990", b)
		}
	})

	t.Run("invalid date on empty record leaves it unset", func(t *testing.T) {
		r := NewRecord("John")

		if err := r.SetBirthday("1990"); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("SetBirthday() error = %v, want ErrInvalidDate", err)
		}
		if _, ok := r.Birthday(); ok {
			t.Error("Birthday() ok = true after failed set")
		}
	})
}

func TestRecord_String(t *testing.T) {
	tests := []struct {
		name     string
		phones   []string
		birthday string
		want     string
	}{
		{
			name: "empty record",
			want: "Contact name: John, phones: No phone, birthday: No birthday",
		},
		{
			name:   "phones only",
			phones: []string{"1234567890", "5555555555"},
			want:   "Contact name: John, phones: 1234567890; 5555555555, birthday: No birthday",
		},
		{
			name:     "everything",
			phones:   []string{"1234567890"},
			birthday: "01.02.1990",
			want:     "Contact name: John, phones: 1234567890, birthday: 01.02.1990",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecord("John")
			for _, p := range tt.phones {
				if err := r.AddPhone(p); err != nil {
					t.Fatal(err)
				}
			}
			if tt.birthday != "" {
				if err := r.SetBirthday(tt.birthday); err != nil {
					t.Fatal(err)
				}
			}

			if got := r.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
