package model

import "time"

type BookData struct {
	Title     string `json:"title" validate:"required"`
	Author    string `json:"author" validate:"required"`
	Publisher string `json:"publisher" validate:"required"`
	Category  string `json:"category" validate:"required"`
	Year      int    `json:"year" validate:"required,gte=0"`
	ShelfNo   string `json:"shelfNo" validate:"required"`
	ISBN      string `json:"isbn"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// BookDraft is a candidate book produced by the sample generator. Same
// field set as BookData but nothing is required until the whole batch
// has been validated.
type BookDraft struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Publisher string `json:"publisher"`
	Category  string `json:"category"`
	Year      int    `json:"year"`
	ShelfNo   string `json:"shelfNo"`
	ISBN      string `json:"isbn"`
	Quantity  int    `json:"quantity"`
}

type RegisterRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type SubmitRequestRequest struct {
	BookID string `json:"bookId" validate:"required"`
}

type UpdateUserRequest struct {
	Role     *Role `json:"role"`
	IsActive *bool `json:"isActive"`
}

type GenerateSamplesRequest struct {
	Count int `json:"count" validate:"required,gte=1,lte=20"`
}

type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Stats struct {
	TotalBooks    int             `json:"totalBooks"`
	BorrowedBooks int             `json:"borrowedBooks"`
	OverdueBooks  int             `json:"overdueBooks"`
	TotalUsers    int             `json:"totalUsers"`
	Categories    []CategoryCount `json:"categories"`
}

// BorrowHistoryItem is one row of the borrowing history report.
type BorrowHistoryItem struct {
	BorrowRecord `json:",inline"`
	BookTitle    string `json:"bookTitle"`
	UserName     string `json:"userName"`
}

// Session is the durable login record: the serialized user snapshot the
// original kept under the currentUser key, keyed by an opaque token.
type Session struct {
	Token     string    `db:"token"`
	UserID    string    `db:"user_id"`
	Payload   []byte    `db:"payload"`
	CreatedAt time.Time `db:"created_at"`
}
