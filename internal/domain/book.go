package domain

import "time"

// Book represents a catalogue entry. Ownership is tracked server-side;
// CreatedBy only reflects what the service reports.
type Book struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre,omitempty"`
	Year        string `json:"year,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedBy   string `json:"created_by,omitempty"`
}

// BookInput carries the user-editable fields for creating or updating a
// book. Title and Author are required; the rest are optional.
type BookInput struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Genre       string `json:"genre"`
	Year        string `json:"year"`
	Description string `json:"description"`
}

// Review is a single user's review of a book. The service enforces at
// most one review per (book, user) pair; the client maintains the same
// invariant locally.
type Review struct {
	ID         string    `json:"id"`
	BookID     string    `json:"book_id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name,omitempty"`
	Rating     int       `json:"rating"`
	ReviewText string    `json:"review_text"`
	CreatedAt  time.Time `json:"created_at"`
}

// BookReviews is the server's authoritative view of a book together with
// its full review list and precomputed aggregates.
type BookReviews struct {
	Book          Book     `json:"book"`
	Reviews       []Review `json:"reviews"`
	AverageRating float64  `json:"average_rating"`
	ReviewsCount  int      `json:"reviews_count"`
}

// BookPage is one page of the catalogue listing.
type BookPage struct {
	Books      []Book `json:"books"`
	TotalPages int    `json:"total_pages"`
}
