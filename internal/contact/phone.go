package contact

import "fmt"

// phoneDigits is the exact length of a valid phone number.
const phoneDigits = 10

// Phone is a validated phone number of exactly ten ASCII digits.
// Values are only obtained through ParsePhone.
type Phone struct {
	digits string
}

// ParsePhone validates raw as a phone number. No separators are stripped.
func ParsePhone(raw string) (Phone, error) {
	if len(raw) != phoneDigits {
		return Phone{}, fmt.Errorf("%w: %q: must be exactly %d digits", ErrInvalidPhone, raw, phoneDigits)
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return Phone{}, fmt.Errorf("%w: %q: must be exactly %d digits", ErrInvalidPhone, raw, phoneDigits)
		}
	}
	return Phone{digits: raw}, nil
}

// String returns the ten digits.
func (p Phone) String() string {
	return p.digits
}

// MarshalText implements encoding.TextMarshaler.
func (p Phone) MarshalText() ([]byte, error) {
	return []byte(p.digits), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phone) UnmarshalText(text []byte) error {
	parsed, err := ParsePhone(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
