package service_test

import (
	"testing"

	"github.com/motlib/library-service/internal/errs"
	"github.com/motlib/library-service/internal/model"
	"github.com/motlib/library-service/internal/service"
	"github.com/motlib/library-service/internal/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(zap.NewExample().Named("test"))
}

func strPtr(s string) *string { return &s }

func TestRequestService_Submit(t *testing.T) {
	t.Parallel()
	type seed func(st *store.Store)

	var tests = []struct {
		name    string
		seed    seed
		bookID  string
		wantErr error
	}{
		{
			name:   "ok",
			seed:   func(st *store.Store) {},
			bookID: "b1",
		},
		{
			name:    "unknown book",
			seed:    func(st *store.Store) {},
			bookID:  "missing",
			wantErr: errs.ErrBookNotFound,
		},
		{
			name: "holding the book unreturned",
			seed: func(st *store.Store) {
				st.AddBorrowRecord(model.BorrowRecord{ID: "br1", BookID: "b1", UserID: "u1", BorrowDate: "2026-08-10"})
			},
			bookID:  "b1",
			wantErr: errs.ErrAlreadyBorrowed,
		},
		{
			name: "pending request already queued",
			seed: func(st *store.Store) {
				st.AddRequest(model.BookRequest{ID: "req1", UserID: "u1", BookID: "b1", Status: model.RequestPending})
			},
			bookID:  "b1",
			wantErr: errs.ErrDuplicateRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			st := newStore(t)
			st.AddBook(model.Book{ID: "b1", Title: "Dune", Quantity: 2, Available: 2, Status: model.BookAvailable})
			tt.seed(st)
			svc := service.NewRequestService(st, zap.NewExample())

			req, err := svc.Submit("u1", tt.bookID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, req.ID)
			require.Equal(t, model.RequestPending, req.Status)
			require.Equal(t, "u1", req.UserID)
			require.Equal(t, tt.bookID, req.BookID)
			require.Nil(t, req.ResolvedDate)
			require.Nil(t, req.ResolverID)
		})
	}
}

func TestRequestService_Approve(t *testing.T) {
	t.Parallel()
	st := newStore(t)
	st.AddBook(model.Book{ID: "b4", Title: "Transportation Policy and Planning", Quantity: 7, Available: 7, Status: model.BookAvailable})
	st.AddRequest(model.BookRequest{ID: "req1", UserID: "3", BookID: "b4", RequestDate: "2026-08-27", Status: model.RequestPending})
	svc := service.NewRequestService(st, zap.NewExample())

	approved, err := svc.Approve("req1", "2")
	require.NoError(t, err)
	require.Equal(t, model.RequestApproved, approved.Status)
	require.Equal(t, "2", *approved.ResolverID)
	require.NotNil(t, approved.ResolvedDate)

	book, err := st.Book("b4")
	require.NoError(t, err)
	require.Equal(t, 6, book.Available)
	require.Equal(t, model.BookAvailable, book.Status)

	rec, open := st.OpenBorrow("b4", "3")
	require.True(t, open)
	require.Equal(t, "3", rec.UserID)
	require.Nil(t, rec.ReturnDate)

	// The approval consumed the request.
	_, err = svc.Approve("req1", "2")
	require.ErrorIs(t, err, errs.ErrAlreadyResolved)
}

func TestRequestService_Approve_AutoReject(t *testing.T) {
	t.Parallel()
	st := newStore(t)
	st.AddBook(model.Book{ID: "b3", Title: "Principles of Pavement Engineering", Quantity: 2, Available: 0, Status: model.BookUnavailable})
	st.AddRequest(model.BookRequest{ID: "req1", UserID: "3", BookID: "b3", RequestDate: "2026-08-27", Status: model.RequestPending})
	svc := service.NewRequestService(st, zap.NewExample())

	rejected, err := svc.Approve("req1", "2")
	require.ErrorIs(t, err, errs.ErrNoCopies)
	require.Contains(t, err.Error(), `"Principles of Pavement Engineering" is currently unavailable`)
	require.Equal(t, model.RequestRejected, rejected.Status)
	require.Equal(t, "2", *rejected.ResolverID)

	// Nothing else moved: no borrow record, availability untouched.
	_, open := st.OpenBorrow("b3", "3")
	require.False(t, open)
	book, err := st.Book("b3")
	require.NoError(t, err)
	require.Equal(t, 0, book.Available)
	require.Equal(t, model.BookUnavailable, book.Status)

	got, err := st.Request("req1")
	require.NoError(t, err)
	require.Equal(t, model.RequestRejected, got.Status)
}

func TestRequestService_Reject(t *testing.T) {
	t.Parallel()
	st := newStore(t)
	st.AddBook(model.Book{ID: "b1", Title: "Dune", Quantity: 2, Available: 2, Status: model.BookAvailable})
	st.AddRequest(model.BookRequest{ID: "req1", UserID: "3", BookID: "b1", RequestDate: "2026-08-27", Status: model.RequestPending})
	svc := service.NewRequestService(st, zap.NewExample())

	rejected, err := svc.Reject("req1", "2")
	require.NoError(t, err)
	require.Equal(t, model.RequestRejected, rejected.Status)
	require.Equal(t, "2", *rejected.ResolverID)

	// Rejection never touches availability.
	book, err := st.Book("b1")
	require.NoError(t, err)
	require.Equal(t, 2, book.Available)

	_, err = svc.Reject("req1", "2")
	require.ErrorIs(t, err, errs.ErrAlreadyResolved)
}

func TestRequestService_Cancel(t *testing.T) {
	t.Parallel()
	st := newStore(t)
	st.AddRequest(model.BookRequest{ID: "req1", UserID: "3", BookID: "b1", RequestDate: "2026-08-27", Status: model.RequestPending})
	svc := service.NewRequestService(st, zap.NewExample())

	_, err := svc.Cancel("req1", "somebody-else")
	require.ErrorIs(t, err, errs.ErrForbidden)

	cancelled, err := svc.Cancel("req1", "3")
	require.NoError(t, err)
	require.Equal(t, model.RequestCancelled, cancelled.Status)
	require.Nil(t, cancelled.ResolverID)
	require.NotNil(t, cancelled.ResolvedDate)

	_, err = svc.Cancel("missing", "3")
	require.ErrorIs(t, err, errs.ErrRequestNotFound)
}

func TestRequestService_List(t *testing.T) {
	t.Parallel()
	st := newStore(t)
	st.AddRequest(model.BookRequest{ID: "req1", UserID: "3", BookID: "b1", Status: model.RequestPending})
	st.AddRequest(model.BookRequest{ID: "req2", UserID: "4", BookID: "b2", Status: model.RequestApproved})
	svc := service.NewRequestService(st, zap.NewExample())

	staff := model.User{ID: "2", Role: model.RoleLibrarian}
	require.Len(t, svc.List(staff), 2)

	reader := model.User{ID: "3", Role: model.RoleReader}
	own := svc.List(reader)
	require.Len(t, own, 1)
	require.Equal(t, "req1", own[0].ID)
}
