package store_test

import (
	"testing"

	"github.com/motlib/library-service/internal/errs"
	"github.com/motlib/library-service/internal/model"
	"github.com/motlib/library-service/internal/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(zap.NewExample().Named("test"))
}

func TestStore_Books_Search(t *testing.T) {
	t.Parallel()
	st := newStore(t)
	st.AddBooks([]model.Book{
		{ID: "b1", Title: "The Go Programming Language", Author: "Alan A. A. Donovan", Category: "Programming"},
		{ID: "b2", Title: "Dune", Author: "Frank Herbert", Category: "Science Fiction"},
		{ID: "b3", Title: "A Brief History of Time", Author: "Stephen Hawking", Category: "Science"},
	})

	var tests = []struct {
		name    string
		search  string
		wantIDs []string
	}{
		{name: "empty term returns all", search: "", wantIDs: []string{"b1", "b2", "b3"}},
		{name: "title match, case-insensitive", search: "dUnE", wantIDs: []string{"b2"}},
		{name: "author match", search: "herbert", wantIDs: []string{"b2"}},
		{name: "category match hits both science shelves", search: "science", wantIDs: []string{"b2", "b3"}},
		{name: "no match", search: "cooking", wantIDs: []string{}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := st.Books(tt.search)
			ids := make([]string, 0, len(got))
			for _, b := range got {
				ids = append(ids, b.ID)
			}
			require.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestStore_AdjustAvailable(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		name          string
		available     int
		quantity      int
		delta         int
		wantAvailable int
		wantStatus    model.BookStatus
		wantErr       error
	}{
		{name: "take last copy", available: 1, quantity: 2, delta: -1, wantAvailable: 0, wantStatus: model.BookUnavailable},
		{name: "return a copy", available: 0, quantity: 2, delta: 1, wantAvailable: 1, wantStatus: model.BookAvailable},
		{name: "cannot go below zero", available: 0, quantity: 2, delta: -1, wantErr: errs.ErrNoCopies},
		{name: "cannot exceed quantity", available: 2, quantity: 2, delta: 1, wantErr: nil},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			st := newStore(t)
			st.AddBook(model.Book{
				ID: "b1", Title: "Dune", Quantity: tt.quantity,
				Available: tt.available, Status: model.StatusFor(tt.available),
			})

			book, err := st.AdjustAvailable("b1", tt.delta)
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.available+tt.delta > tt.quantity:
				require.Error(t, err)
			default:
				require.NoError(t, err)
				require.Equal(t, tt.wantAvailable, book.Available)
				require.Equal(t, tt.wantStatus, book.Status)
			}
		})
	}

	t.Run("unknown book", func(t *testing.T) {
		t.Parallel()
		st := newStore(t)
		_, err := st.AdjustAvailable("nope", -1)
		require.ErrorIs(t, err, errs.ErrBookNotFound)
	})
}

func TestStore_DeleteBook(t *testing.T) {
	t.Parallel()
	st := newStore(t)
	st.AddBook(model.Book{ID: "b1", Title: "Dune", Quantity: 1, Available: 0})
	st.AddBorrowRecord(model.BorrowRecord{ID: "br1", BookID: "b1", UserID: "u1", BorrowDate: "2026-08-01"})

	err := st.DeleteBook("b1")
	require.ErrorIs(t, err, errs.ErrBookBorrowed)

	returned := "2026-08-20"
	require.NoError(t, st.ReplaceBorrowRecord(model.BorrowRecord{
		ID: "br1", BookID: "b1", UserID: "u1", BorrowDate: "2026-08-01", ReturnDate: &returned,
	}))
	require.NoError(t, st.DeleteBook("b1"))

	_, err = st.Book("b1")
	require.ErrorIs(t, err, errs.ErrBookNotFound)

	require.ErrorIs(t, st.DeleteBook("b1"), errs.ErrBookNotFound)
}

func TestStore_ResolveRequest(t *testing.T) {
	t.Parallel()
	st := newStore(t)
	st.AddRequest(model.BookRequest{
		ID: "req1", UserID: "u1", BookID: "b1",
		RequestDate: "2026-08-25", Status: model.RequestPending,
	})

	resolver := "staff1"
	resolved, err := st.ResolveRequest("req1", model.RequestApproved, &resolver, "2026-08-29")
	require.NoError(t, err)
	require.Equal(t, model.RequestApproved, resolved.Status)
	require.Equal(t, "2026-08-29", *resolved.ResolvedDate)
	require.Equal(t, "staff1", *resolved.ResolverID)

	// The transition out of Pending happens exactly once.
	_, err = st.ResolveRequest("req1", model.RequestRejected, &resolver, "2026-08-29")
	require.ErrorIs(t, err, errs.ErrAlreadyResolved)

	got, err := st.Request("req1")
	require.NoError(t, err)
	require.Equal(t, model.RequestApproved, got.Status)

	_, err = st.ResolveRequest("missing", model.RequestApproved, &resolver, "2026-08-29")
	require.ErrorIs(t, err, errs.ErrRequestNotFound)
}

func TestStore_CloseBorrow(t *testing.T) {
	t.Parallel()
	st := newStore(t)
	st.AddBorrowRecord(model.BorrowRecord{ID: "br1", BookID: "b1", UserID: "u1", BorrowDate: "2026-08-01"})

	rec, err := st.CloseBorrow("b1", "u1", "2026-08-29")
	require.NoError(t, err)
	require.NotNil(t, rec.ReturnDate)
	require.Equal(t, "2026-08-29", *rec.ReturnDate)
	require.False(t, rec.Open())

	// Closed once, the second return finds nothing open.
	_, err = st.CloseBorrow("b1", "u1", "2026-08-30")
	require.ErrorIs(t, err, errs.ErrNoOpenBorrow)
}

func TestStore_HasPendingRequest(t *testing.T) {
	t.Parallel()
	st := newStore(t)
	st.AddRequest(model.BookRequest{ID: "req1", UserID: "u1", BookID: "b1", Status: model.RequestPending})
	st.AddRequest(model.BookRequest{ID: "req2", UserID: "u1", BookID: "b2", Status: model.RequestCancelled})

	require.True(t, st.HasPendingRequest("b1", "u1"))
	require.False(t, st.HasPendingRequest("b2", "u1"))
	require.False(t, st.HasPendingRequest("b1", "u2"))
}

func TestStore_UserByEmail(t *testing.T) {
	t.Parallel()
	st := newStore(t)
	st.AddUser(model.User{ID: "u1", Email: "Ana.Silva@example.com", IsActive: false})

	u, ok := st.UserByEmail("ana.silva@EXAMPLE.com")
	require.True(t, ok)
	require.Equal(t, "u1", u.ID)

	_, ok = st.UserByEmail("other@example.com")
	require.False(t, ok)
}
