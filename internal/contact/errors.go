package contact

import "errors"

// Validation and lookup failures. Returned errors wrap one of these with the
// offending input; match them with errors.Is.
var (
	// ErrInvalidPhone indicates a phone value that is not exactly 10 ASCII digits.
	ErrInvalidPhone = errors.New("contact: invalid phone number")

	// ErrInvalidDate indicates a birthday that is not a real DD.MM.YYYY date.
	ErrInvalidDate = errors.New("contact: invalid date format")

	// ErrPhoneNotFound indicates an edit of a phone the record does not hold.
	ErrPhoneNotFound = errors.New("contact: phone not found")

	// ErrContactNotFound indicates a name with no record in the book.
	// Book.Find reports absence with a bool; callers that treat absence as
	// a failure wrap this sentinel.
	ErrContactNotFound = errors.New("contact: contact not found")

	// ErrCorruptBook indicates a serialized book that cannot be reconstructed.
	ErrCorruptBook = errors.New("contact: corrupt address book")
)
