package store

import (
	"time"

	"github.com/motlib/library-service/internal/model"
	"go.uber.org/zap"
)

func dateOffset(days int) string {
	return time.Now().AddDate(0, 0, days).Format(time.DateOnly)
}

func strPtr(s string) *string { return &s }

// Seed loads the demo data set: the ministry staff directory plus a
// small catalog with known availability, used by the default deployment
// and the workflow tests.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = []model.User{
		{ID: "1", Name: "Admin User", Email: "admin@transport.gov", Role: model.RoleAdmin, IsActive: true},
		{ID: "2", Name: "Librarian User", Email: "librarian@transport.gov", Role: model.RoleLibrarian, IsActive: true},
		{ID: "3", Name: "Jane Doe", Email: "jane.doe@transport.gov", Role: model.RoleReader, IsActive: true},
		{ID: "4", Name: "John Smith", Email: "john.smith@transport.gov", Role: model.RoleReader, IsActive: false},
	}

	s.books = []model.Book{
		{ID: "b1", Title: "The Future of Urban Mobility", Author: "A. B. Cde", Publisher: "Metropolis Books", Category: "Urban Planning", Year: 2022, ShelfNo: "A1-01", ISBN: "978-3-16-148410-0", Quantity: 5, Available: 3, Status: model.BookAvailable},
		{ID: "b2", Title: "Logistics and Supply Chain Management", Author: "D. E. Fgh", Publisher: "Global Press", Category: "Logistics", Year: 2021, ShelfNo: "B2-05", ISBN: "978-1-4028-9462-6", Quantity: 3, Available: 3, Status: model.BookAvailable},
		{ID: "b3", Title: "Principles of Pavement Engineering", Author: "G. H. Ijk", Publisher: "InfraStruct Publishing", Category: "Engineering", Year: 2020, ShelfNo: "C3-10", ISBN: "978-0-7506-8579-8", Quantity: 2, Available: 0, Status: model.BookUnavailable},
		{ID: "b4", Title: "Transportation Policy and Planning", Author: "K. L. Mno", Publisher: "GovWorks", Category: "Policy", Year: 2023, ShelfNo: "A1-02", ISBN: "978-0-415-88336-7", Quantity: 7, Available: 7, Status: model.BookAvailable},
	}

	s.records = []model.BorrowRecord{
		{ID: "br1", BookID: "b1", UserID: "3", BorrowDate: dateOffset(-20), ReturnDate: strPtr(dateOffset(-5))},
		{ID: "br2", BookID: "b3", UserID: "3", BorrowDate: dateOffset(-10), ReturnDate: nil},
		{ID: "br3", BookID: "b1", UserID: "2", BorrowDate: dateOffset(-30), ReturnDate: nil},
		{ID: "br4", BookID: "b3", UserID: "4", BorrowDate: dateOffset(-60), ReturnDate: strPtr(dateOffset(-45))},
	}

	s.requests = []model.BookRequest{
		{ID: "req1", UserID: "3", BookID: "b4", RequestDate: dateOffset(-2), Status: model.RequestPending},
		{ID: "req2", UserID: "4", BookID: "b2", RequestDate: dateOffset(-5), Status: model.RequestApproved, ResolvedDate: strPtr(dateOffset(-4)), ResolverID: strPtr("2")},
		{ID: "req3", UserID: "3", BookID: "b1", RequestDate: dateOffset(-10), Status: model.RequestRejected, ResolvedDate: strPtr(dateOffset(-9)), ResolverID: strPtr("2")},
	}

	s.log.Info("seed data loaded",
		zap.Int("books", len(s.books)),
		zap.Int("users", len(s.users)),
		zap.Int("borrowRecords", len(s.records)),
		zap.Int("requests", len(s.requests)))
}
