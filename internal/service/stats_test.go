package service_test

import (
	"testing"
	"time"

	"github.com/motlib/library-service/internal/model"
	"github.com/motlib/library-service/internal/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func daysAgo(n int) string {
	return time.Now().AddDate(0, 0, -n).Format(time.DateOnly)
}

func TestStatsService_Summary(t *testing.T) {
	t.Parallel()
	st := newStore(t)
	st.AddBooks([]model.Book{
		{ID: "b1", Title: "The Future of Urban Mobility", Category: "Urban Planning", Quantity: 5, Available: 3},
		{ID: "b2", Title: "Logistics and Supply Chain Management", Category: "Logistics", Quantity: 3, Available: 3},
		{ID: "b3", Title: "Transit Atlas", Category: "Urban Planning", Quantity: 2, Available: 0},
	})
	st.AddUser(model.User{ID: "u1", Role: model.RoleAdmin, IsActive: true})
	st.AddUser(model.User{ID: "u2", Role: model.RoleReader, IsActive: false})

	// One open record well past the borrow period, one fresh, one closed
	// long ago.
	st.AddBorrowRecord(model.BorrowRecord{ID: "br1", BookID: "b1", UserID: "u1", BorrowDate: daysAgo(30)})
	st.AddBorrowRecord(model.BorrowRecord{ID: "br2", BookID: "b3", UserID: "u2", BorrowDate: daysAgo(3)})
	st.AddBorrowRecord(model.BorrowRecord{ID: "br3", BookID: "b1", UserID: "u1", BorrowDate: daysAgo(60), ReturnDate: strPtr(daysAgo(50))})

	svc := service.NewStatsService(st, zap.NewExample())
	stats := svc.Summary()

	require.Equal(t, 10, stats.TotalBooks)
	require.Equal(t, 4, stats.BorrowedBooks)
	require.Equal(t, 1, stats.OverdueBooks)
	require.Equal(t, 2, stats.TotalUsers)

	// Categories keep catalog order and count copies, not titles.
	require.Equal(t, []model.CategoryCount{
		{Name: "Urban Planning", Count: 7},
		{Name: "Logistics", Count: 3},
	}, stats.Categories)
}

func TestStatsService_Summary_Empty(t *testing.T) {
	t.Parallel()
	svc := service.NewStatsService(newStore(t), zap.NewExample())
	stats := svc.Summary()

	require.Zero(t, stats.TotalBooks)
	require.Zero(t, stats.BorrowedBooks)
	require.Zero(t, stats.OverdueBooks)
	require.Zero(t, stats.TotalUsers)
	require.Empty(t, stats.Categories)
}
