package handler

import (
	"context"

	"github.com/motlib/library-service/internal/model"
	"github.com/motlib/library-service/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type CatalogService interface {
	ListBooks(search string) []model.Book
	GetBook(id string) (model.Book, error)
	AddBook(data model.BookData) model.Book
	UpdateBook(id string, data model.BookData) (model.Book, error)
	DeleteBook(id string) error
	LoadSampleBooks(ctx context.Context, count int) ([]model.Book, error)
}

type RequestService interface {
	Submit(userID, bookID string) (model.BookRequest, error)
	List(user model.User) []model.BookRequest
	Approve(requestID, resolverID string) (model.BookRequest, error)
	Reject(requestID, resolverID string) (model.BookRequest, error)
	Cancel(requestID, userID string) (model.BookRequest, error)
}

type BorrowService interface {
	Return(userID, bookID string) (model.BorrowRecord, error)
	History() []model.BorrowHistoryItem
}

type AuthService interface {
	Register(req model.RegisterRequest) (model.User, error)
	Login(ctx context.Context, email string) (model.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (model.User, error)
	Users() []model.User
	UpdateUser(id string, req model.UpdateUserRequest) (model.User, error)
}

type StatsService interface {
	Summary() model.Stats
}

var (
	_ CatalogService = (*service.CatalogService)(nil)
	_ RequestService = (*service.RequestService)(nil)
	_ BorrowService  = (*service.BorrowService)(nil)
	_ AuthService    = (*service.AuthService)(nil)
	_ StatsService   = (*service.StatsService)(nil)
)
