package service

import (
	"time"

	"github.com/motlib/library-service/internal/model"
	"github.com/motlib/library-service/internal/store"
	"go.uber.org/zap"
)

// borrowPeriodDays is how long a copy may stay out before it counts as
// overdue on the dashboard.
const borrowPeriodDays = 14

type StatsService struct {
	log   *zap.Logger
	store *store.Store
}

func NewStatsService(st *store.Store, log *zap.Logger) *StatsService {
	return &StatsService{
		log:   log,
		store: st,
	}
}

// Summary computes the dashboard numbers from the live data set.
func (s *StatsService) Summary() model.Stats {
	books := s.store.Books("")

	stats := model.Stats{
		TotalUsers: len(s.store.Users()),
	}

	byCategory := make(map[string]int)
	order := make([]string, 0)
	for _, b := range books {
		stats.TotalBooks += b.Quantity
		stats.BorrowedBooks += b.Borrowed()
		if _, seen := byCategory[b.Category]; !seen {
			order = append(order, b.Category)
		}
		byCategory[b.Category] += b.Quantity
	}
	for _, name := range order {
		stats.Categories = append(stats.Categories, model.CategoryCount{
			Name:  name,
			Count: byCategory[name],
		})
	}

	today := time.Now()
	for _, rec := range s.store.BorrowRecords() {
		if !rec.Open() {
			continue
		}
		borrowed, err := time.Parse(time.DateOnly, rec.BorrowDate)
		if err != nil {
			s.log.Warn("unparsable borrow date", zap.String("recordId", rec.ID), zap.Error(err))
			continue
		}
		if today.Sub(borrowed) > borrowPeriodDays*24*time.Hour {
			stats.OverdueBooks++
		}
	}
	return stats
}
