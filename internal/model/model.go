package model

type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleLibrarian Role = "Librarian"
	RoleReader    Role = "Reader"
)

// IsStaff reports whether the role may manage the catalog and resolve requests.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleLibrarian
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleLibrarian, RoleReader:
		return true
	}
	return false
}

type BookStatus string

const (
	BookAvailable   BookStatus = "Available"
	BookUnavailable BookStatus = "Unavailable"
)

// StatusFor derives the book status from the available count.
// Status is never set independently of this rule.
func StatusFor(available int) BookStatus {
	if available > 0 {
		return BookAvailable
	}
	return BookUnavailable
}

type Book struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	Publisher string     `json:"publisher"`
	Category  string     `json:"category"`
	Year      int        `json:"year"`
	ShelfNo   string     `json:"shelfNo"`
	ISBN      string     `json:"isbn,omitempty"`
	Quantity  int        `json:"quantity"`
	Available int        `json:"available"`
	Status    BookStatus `json:"status"`
}

// Borrowed is the number of copies currently checked out.
func (b Book) Borrowed() int {
	return b.Quantity - b.Available
}

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	IsActive bool   `json:"isActive"`
}

// BorrowRecord is one checkout of one copy. A nil ReturnDate means the
// copy is still out.
type BorrowRecord struct {
	ID         string  `json:"id"`
	BookID     string  `json:"bookId"`
	UserID     string  `json:"userId"`
	BorrowDate string  `json:"borrowDate"`
	ReturnDate *string `json:"returnDate"`
}

func (r BorrowRecord) Open() bool {
	return r.ReturnDate == nil
}

type RequestStatus string

const (
	RequestPending   RequestStatus = "Pending"
	RequestApproved  RequestStatus = "Approved"
	RequestRejected  RequestStatus = "Rejected"
	RequestCancelled RequestStatus = "Cancelled"
)

// Terminal reports whether no further transition is permitted.
func (s RequestStatus) Terminal() bool {
	return s != RequestPending
}

type BookRequest struct {
	ID           string        `json:"id"`
	UserID       string        `json:"userId"`
	BookID       string        `json:"bookId"`
	RequestDate  string        `json:"requestDate"`
	Status       RequestStatus `json:"status"`
	ResolvedDate *string       `json:"resolvedDate"`
	ResolverID   *string       `json:"resolverId"`
}
