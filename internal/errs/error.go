package errs

import (
	"errors"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrBookNotFound     = errors.New("Book not found.")
	ErrRequestNotFound  = errors.New("Request not found.")
	ErrBookBorrowed     = errors.New("cannot delete book with active borrow records")
	ErrNoCopies         = errors.New("book unavailable")
	ErrQuantityTooLow   = errors.New("quantity cannot be less than currently borrowed copies")
	ErrDuplicateEmail   = errors.New("an account with this email already exists")
	ErrInvalidSession   = errors.New("invalid credentials")
	ErrAlreadyResolved  = errors.New("request already resolved")
	ErrDuplicateRequest = errors.New("a pending request for this book already exists")
	ErrAlreadyBorrowed  = errors.New("book is already borrowed and not returned")
	ErrNoOpenBorrow     = errors.New("no active borrow record")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidRole      = errors.New("invalid role")
	ErrSampleGen        = errors.New("failed to generate sample books")
)
