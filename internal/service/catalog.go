package service

import (
	"context"

	"github.com/motlib/library-service/internal/errs"
	"github.com/motlib/library-service/internal/model"
	"github.com/motlib/library-service/internal/store"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SampleGenerator produces candidate books from an external,
// non-deterministic collaborator. The workflow stays deterministic
// behind this capability.
type SampleGenerator interface {
	GenerateCandidates(ctx context.Context, count int) ([]model.BookDraft, error)
}

type CatalogService struct {
	log       *zap.Logger
	store     *store.Store
	generator SampleGenerator
}

func NewCatalogService(st *store.Store, generator SampleGenerator, log *zap.Logger) *CatalogService {
	return &CatalogService{
		log:       log,
		store:     st,
		generator: generator,
	}
}

func (s *CatalogService) ListBooks(search string) []model.Book {
	return s.store.Books(search)
}

func (s *CatalogService) GetBook(id string) (model.Book, error) {
	return s.store.Book(id)
}

func (s *CatalogService) AddBook(data model.BookData) model.Book {
	book := model.Book{
		ID:        model.NewID(),
		Title:     data.Title,
		Author:    data.Author,
		Publisher: data.Publisher,
		Category:  data.Category,
		Year:      data.Year,
		ShelfNo:   data.ShelfNo,
		ISBN:      data.ISBN,
		Quantity:  data.Quantity,
		Available: data.Quantity,
		Status:    model.StatusFor(data.Quantity),
	}
	s.store.AddBook(book)
	return book
}

// UpdateBook replaces the book's descriptive fields and quantity. The
// available count is recomputed from the borrowed copies, and the
// quantity can never drop below what is currently checked out.
func (s *CatalogService) UpdateBook(id string, data model.BookData) (model.Book, error) {
	book, err := s.store.Book(id)
	if err != nil {
		return model.Book{}, err
	}

	borrowed := book.Borrowed()
	available := data.Quantity - borrowed
	if available < 0 {
		return model.Book{}, errors.Wrapf(errs.ErrQuantityTooLow, "%d copies are currently borrowed", borrowed)
	}

	updated := model.Book{
		ID:        book.ID,
		Title:     data.Title,
		Author:    data.Author,
		Publisher: data.Publisher,
		Category:  data.Category,
		Year:      data.Year,
		ShelfNo:   data.ShelfNo,
		ISBN:      data.ISBN,
		Quantity:  data.Quantity,
		Available: available,
		Status:    model.StatusFor(available),
	}
	if err := s.store.ReplaceBook(updated); err != nil {
		return model.Book{}, err
	}
	return updated, nil
}

func (s *CatalogService) DeleteBook(id string) error {
	return s.store.DeleteBook(id)
}

// LoadSampleBooks asks the generator for count candidates and adds them
// to the catalog as one batch. Nothing is applied when the generator
// fails or returns an unusable payload.
func (s *CatalogService) LoadSampleBooks(ctx context.Context, count int) ([]model.Book, error) {
	drafts, err := s.generator.GenerateCandidates(ctx, count)
	if err != nil {
		s.log.Warn("sample generation failed", zap.Error(err))
		return nil, errs.ErrSampleGen
	}
	if drafts == nil {
		return nil, errs.ErrSampleGen
	}

	books := make([]model.Book, 0, len(drafts))
	for _, d := range drafts {
		books = append(books, model.Book{
			ID:        model.NewID(),
			Title:     d.Title,
			Author:    d.Author,
			Publisher: d.Publisher,
			Category:  d.Category,
			Year:      d.Year,
			ShelfNo:   d.ShelfNo,
			ISBN:      d.ISBN,
			Quantity:  d.Quantity,
			Available: d.Quantity,
			Status:    model.StatusFor(d.Quantity),
		})
	}
	s.store.AddBooks(books)
	return books, nil
}
