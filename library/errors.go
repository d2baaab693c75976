package library

import "errors"

var (
	// ErrBookNotFound is returned when a book id is not in the catalog.
	ErrBookNotFound = errors.New("book not found")

	// ErrMemberNotFound is returned when a member id is not in the roster.
	ErrMemberNotFound = errors.New("member not found")

	// ErrNoCopiesAvailable is returned when a borrow is attempted and every
	// copy of the book is already out.
	ErrNoCopiesAvailable = errors.New("no copies available")

	// ErrInvalidArgument is returned when operation input fails validation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMalformedStorage is returned when a storage artifact cannot be
	// parsed. It is fatal: the library refuses to open.
	ErrMalformedStorage = errors.New("malformed storage")
)
