package contact

import (
	"fmt"
	"time"
)

// DateLayout is the only accepted textual form of a birthday: DD.MM.YYYY.
const DateLayout = "02.01.2006"

// Birthday is a calendar date with no time component.
// Values are only obtained through ParseBirthday.
type Birthday struct {
	year  int
	month time.Month
	day   int
}

// ParseBirthday parses raw as DD.MM.YYYY. Two-digit day and month and a
// four-digit year are required, and the date must exist in the Gregorian
// calendar.
func ParseBirthday(raw string) (Birthday, error) {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return Birthday{}, fmt.Errorf("%w: %q: use DD.MM.YYYY", ErrInvalidDate, raw)
	}
	return Birthday{year: t.Year(), month: t.Month(), day: t.Day()}, nil
}

// String formats the birthday as zero-padded DD.MM.YYYY.
func (b Birthday) String() string {
	return fmt.Sprintf("%02d.%02d.%04d", b.day, int(b.month), b.year)
}

// Year returns the birth year.
func (b Birthday) Year() int { return b.year }

// Month returns the birth month.
func (b Birthday) Month() time.Month { return b.month }

// Day returns the day of the month.
func (b Birthday) Day() int { return b.day }

// in returns the anniversary of b in year as a UTC midnight. A 29 February
// birthday falls on 28 February in non-leap years.
func (b Birthday) in(year int) time.Time {
	day := b.day
	if b.month == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, b.month, day, 0, 0, 0, 0, time.UTC)
}

// MarshalText implements encoding.TextMarshaler.
func (b Birthday) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Birthday) UnmarshalText(text []byte) error {
	parsed, err := ParseBirthday(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
