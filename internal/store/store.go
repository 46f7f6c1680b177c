package store

import (
	"strings"
	"sync"

	"github.com/motlib/library-service/internal/errs"
	"github.com/motlib/library-service/internal/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Store is the process-wide state container: books, users, borrow
// records and book requests live here and nowhere else. All state is
// lost on restart. The single mutex keeps every operation sequential,
// so each one observes and leaves a consistent data set even though
// the HTTP layer serves concurrently.
type Store struct {
	mu  sync.RWMutex
	log *zap.Logger

	books    []model.Book
	users    []model.User
	records  []model.BorrowRecord
	requests []model.BookRequest
}

func New(log *zap.Logger) *Store {
	return &Store{
		log: log.Named("store"),
	}
}

// Books returns books matching the search term against title, author or
// category, case-insensitive. An empty term returns everything.
func (s *Store) Books(search string) []model.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term := strings.ToLower(search)
	items := make([]model.Book, 0, len(s.books))
	for _, b := range s.books {
		if term == "" ||
			strings.Contains(strings.ToLower(b.Title), term) ||
			strings.Contains(strings.ToLower(b.Author), term) ||
			strings.Contains(strings.ToLower(b.Category), term) {
			items = append(items, b)
		}
	}
	return items
}

func (s *Store) Book(id string) (model.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.books {
		if b.ID == id {
			return b, nil
		}
	}
	return model.Book{}, errs.ErrBookNotFound
}

func (s *Store) AddBook(b model.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books = append(s.books, b)
}

// AddBooks appends a batch under one lock, so a generated sample set is
// applied entirely or not at all.
func (s *Store) AddBooks(bs []model.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books = append(s.books, bs...)
}

func (s *Store) ReplaceBook(b model.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.books {
		if s.books[i].ID == b.ID {
			s.books[i] = b
			return nil
		}
	}
	return errs.ErrBookNotFound
}

// DeleteBook removes the book unless an open borrow record still
// references it.
func (s *Store) DeleteBook(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.records {
		if r.BookID == id && r.Open() {
			return errs.ErrBookBorrowed
		}
	}
	for i := range s.books {
		if s.books[i].ID == id {
			s.books = append(s.books[:i], s.books[i+1:]...)
			return nil
		}
	}
	return errs.ErrBookNotFound
}

// AdjustAvailable shifts the available count by delta and recomputes the
// derived status, refusing to leave the 0..quantity range. The check and
// the write happen under one lock, so two approvals cannot both take the
// last copy.
func (s *Store) AdjustAvailable(id string, delta int) (model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.books {
		if s.books[i].ID != id {
			continue
		}
		next := s.books[i].Available + delta
		if next < 0 {
			return model.Book{}, errs.ErrNoCopies
		}
		if next > s.books[i].Quantity {
			return model.Book{}, errors.Errorf("available %d would exceed quantity %d for book %s", next, s.books[i].Quantity, id)
		}
		s.books[i].Available = next
		s.books[i].Status = model.StatusFor(next)
		return s.books[i], nil
	}
	return model.Book{}, errs.ErrBookNotFound
}

func (s *Store) Users() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.User, len(s.users))
	copy(items, s.users)
	return items
}

func (s *Store) User(id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, errs.ErrNotFound
}

// UserByEmail matches case-insensitively regardless of active status.
func (s *Store) UserByEmail(email string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *Store) AddUser(u model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, u)
}

func (s *Store) ReplaceUser(u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == u.ID {
			s.users[i] = u
			return nil
		}
	}
	return errs.ErrNotFound
}

func (s *Store) BorrowRecords() []model.BorrowRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.BorrowRecord, len(s.records))
	copy(items, s.records)
	return items
}

func (s *Store) AddBorrowRecord(r model.BorrowRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
}

func (s *Store) ReplaceBorrowRecord(r model.BorrowRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == r.ID {
			s.records[i] = r
			return nil
		}
	}
	return errs.ErrNotFound
}

// OpenBorrow finds the user's open record for the book, if any.
func (s *Store) OpenBorrow(bookID, userID string) (model.BorrowRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.records {
		if r.BookID == bookID && r.UserID == userID && r.Open() {
			return r, true
		}
	}
	return model.BorrowRecord{}, false
}

// CloseBorrow stamps the user's open record for the book with the
// return date. Once stamped the record is no longer open, so a second
// return attempt finds nothing to close.
func (s *Store) CloseBorrow(bookID, userID, date string) (model.BorrowRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].BookID == bookID && s.records[i].UserID == userID && s.records[i].Open() {
			s.records[i].ReturnDate = &date
			return s.records[i], nil
		}
	}
	return model.BorrowRecord{}, errs.ErrNoOpenBorrow
}

func (s *Store) Requests() []model.BookRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.BookRequest, len(s.requests))
	copy(items, s.requests)
	return items
}

func (s *Store) RequestsByUser(userID string) []model.BookRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.BookRequest, 0)
	for _, r := range s.requests {
		if r.UserID == userID {
			items = append(items, r)
		}
	}
	return items
}

func (s *Store) Request(id string) (model.BookRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return model.BookRequest{}, errs.ErrRequestNotFound
}

func (s *Store) AddRequest(r model.BookRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, r)
}

// HasPendingRequest reports whether the user already has a pending
// request for the book.
func (s *Store) HasPendingRequest(bookID, userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.requests {
		if r.BookID == bookID && r.UserID == userID && r.Status == model.RequestPending {
			return true
		}
	}
	return false
}

// ResolveRequest transitions a request out of Pending into the given
// terminal status, stamping the resolution date and, when present, the
// resolver. Terminal requests stay as they are: the transition happens
// exactly once.
func (s *Store) ResolveRequest(id string, status model.RequestStatus, resolverID *string, date string) (model.BookRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.requests {
		if s.requests[i].ID != id {
			continue
		}
		if s.requests[i].Status.Terminal() {
			return model.BookRequest{}, errs.ErrAlreadyResolved
		}
		s.requests[i].Status = status
		s.requests[i].ResolvedDate = &date
		s.requests[i].ResolverID = resolverID
		return s.requests[i], nil
	}
	return model.BookRequest{}, errs.ErrRequestNotFound
}
