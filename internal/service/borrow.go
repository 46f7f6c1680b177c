package service

import (
	"sort"

	"github.com/motlib/library-service/internal/model"
	"github.com/motlib/library-service/internal/store"
	"go.uber.org/zap"
)

type BorrowService struct {
	log   *zap.Logger
	store *store.Store
}

func NewBorrowService(st *store.Store, log *zap.Logger) *BorrowService {
	return &BorrowService{
		log:   log,
		store: st,
	}
}

// Return closes the caller's open record for the book and puts the copy
// back. A record is closed at most once, so the second attempt finds no
// open record and fails.
func (s *BorrowService) Return(userID, bookID string) (model.BorrowRecord, error) {
	rec, err := s.store.CloseBorrow(bookID, userID, model.Today())
	if err != nil {
		return model.BorrowRecord{}, err
	}
	if _, err := s.store.AdjustAvailable(bookID, 1); err != nil {
		s.log.Error("return: availability update failed",
			zap.String("bookId", bookID), zap.Error(err))
		return model.BorrowRecord{}, err
	}
	return rec, nil
}

// History is the full borrowing report, newest first, with book and
// user names resolved for display.
func (s *BorrowService) History() []model.BorrowHistoryItem {
	records := s.store.BorrowRecords()
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].BorrowDate > records[j].BorrowDate
	})

	items := make([]model.BorrowHistoryItem, 0, len(records))
	for _, rec := range records {
		item := model.BorrowHistoryItem{
			BorrowRecord: rec,
			BookTitle:    "Unknown Book",
			UserName:     "Unknown User",
		}
		if book, err := s.store.Book(rec.BookID); err == nil {
			item.BookTitle = book.Title
		}
		if user, err := s.store.User(rec.UserID); err == nil {
			item.UserName = user.Name
		}
		items = append(items, item)
	}
	return items
}
