package service

import (
	"github.com/motlib/library-service/internal/errs"
	"github.com/motlib/library-service/internal/model"
	"github.com/motlib/library-service/internal/store"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// RequestService runs the borrow-request state machine:
// Pending -> Approved | Rejected | Cancelled, all terminal.
type RequestService struct {
	log   *zap.Logger
	store *store.Store
}

func NewRequestService(st *store.Store, log *zap.Logger) *RequestService {
	return &RequestService{
		log:   log,
		store: st,
	}
}

// Submit creates a Pending request for the reader. A reader holding the
// book unreturned, or already waiting on a pending request for it, may
// not submit another.
func (s *RequestService) Submit(userID, bookID string) (model.BookRequest, error) {
	if _, err := s.store.Book(bookID); err != nil {
		return model.BookRequest{}, err
	}
	if _, open := s.store.OpenBorrow(bookID, userID); open {
		return model.BookRequest{}, errs.ErrAlreadyBorrowed
	}
	if s.store.HasPendingRequest(bookID, userID) {
		return model.BookRequest{}, errs.ErrDuplicateRequest
	}

	req := model.BookRequest{
		ID:          model.NewID(),
		UserID:      userID,
		BookID:      bookID,
		RequestDate: model.Today(),
		Status:      model.RequestPending,
	}
	s.store.AddRequest(req)
	return req, nil
}

// List returns every request for staff and only the caller's own for
// readers.
func (s *RequestService) List(user model.User) []model.BookRequest {
	if user.Role.IsStaff() {
		return s.store.Requests()
	}
	return s.store.RequestsByUser(user.ID)
}

// Approve takes one copy for the requester and moves the request to
// Approved. When no copy is available the request self-corrects into
// Rejected instead of staying Pending against an unavailable book, and
// the caller gets the explanation as an error.
func (s *RequestService) Approve(requestID, resolverID string) (model.BookRequest, error) {
	req, err := s.store.Request(requestID)
	if err != nil {
		return model.BookRequest{}, err
	}
	if req.Status.Terminal() {
		return model.BookRequest{}, errs.ErrAlreadyResolved
	}
	book, err := s.store.Book(req.BookID)
	if err != nil {
		return model.BookRequest{}, err
	}

	if _, err := s.store.AdjustAvailable(req.BookID, -1); err != nil {
		if errors.Is(err, errs.ErrNoCopies) {
			rejected, rejErr := s.store.ResolveRequest(requestID, model.RequestRejected, &resolverID, model.Today())
			if rejErr != nil {
				return model.BookRequest{}, rejErr
			}
			s.log.Info("request auto-rejected, book unavailable",
				zap.String("requestId", requestID),
				zap.String("bookId", req.BookID))
			return rejected, errors.Wrapf(errs.ErrNoCopies,
				"%q is currently unavailable. The request has been automatically rejected", book.Title)
		}
		return model.BookRequest{}, err
	}

	approved, err := s.store.ResolveRequest(requestID, model.RequestApproved, &resolverID, model.Today())
	if err != nil {
		// Lost the race to a concurrent resolution: hand the copy back.
		if _, backErr := s.store.AdjustAvailable(req.BookID, 1); backErr != nil {
			s.log.Warn("availability compensation failed", zap.Error(backErr))
		}
		return model.BookRequest{}, err
	}

	s.store.AddBorrowRecord(model.BorrowRecord{
		ID:         model.NewID(),
		BookID:     req.BookID,
		UserID:     req.UserID,
		BorrowDate: model.Today(),
		ReturnDate: nil,
	})
	return approved, nil
}

// Reject moves a pending request to Rejected. Book availability is not
// touched.
func (s *RequestService) Reject(requestID, resolverID string) (model.BookRequest, error) {
	return s.store.ResolveRequest(requestID, model.RequestRejected, &resolverID, model.Today())
}

// Cancel is the requester's own withdrawal: no resolver is stamped.
func (s *RequestService) Cancel(requestID, userID string) (model.BookRequest, error) {
	req, err := s.store.Request(requestID)
	if err != nil {
		return model.BookRequest{}, err
	}
	if req.UserID != userID {
		return model.BookRequest{}, errs.ErrForbidden
	}
	return s.store.ResolveRequest(requestID, model.RequestCancelled, nil, model.Today())
}
