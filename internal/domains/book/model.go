package book

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoanPeriod is the informational due window set at borrow time. Nothing
// escalates when it passes.
const LoanPeriod = 14 * 24 * time.Hour

type Book struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	AuthorID      primitive.ObjectID `bson:"authorId" json:"authorId"`
	ISBN          string             `bson:"isbn" json:"isbn"`
	Genre         string             `bson:"genre" json:"genre"`
	PublishedDate string             `bson:"publishedDate" json:"publishedDate"`
	Description   string             `bson:"description" json:"description"`
	TotalPages    int                `bson:"totalPages" json:"totalPages"`
	Rating        float64            `bson:"rating" json:"rating"`

	// Lending state: Availability is false exactly when BorrowedBy is set.
	Availability  bool       `bson:"availability" json:"availability"`
	BorrowedBy    string     `bson:"borrowedBy,omitempty" json:"borrowedBy,omitempty"`
	BorrowedDate  *time.Time `bson:"borrowedDate,omitempty" json:"borrowedDate,omitempty"`
	ReturnDueDate *time.Time `bson:"returnDueDate,omitempty" json:"returnDueDate,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// OnLoan reports whether the book is currently borrowed.
func (b *Book) OnLoan() bool {
	return !b.Availability
}

// Filter carries list query parameters, already bounded by the HTTP layer.
type Filter struct {
	Genre        string
	AuthorID     string
	Availability *bool
	SortBy       string
	Order        string
	Skip         int64
	Limit        int64
}
