package api

import (
	"time"

	"github.com/logiksutra/bookshelf-cli/internal/domain"
)

// Raw wire types. The backend speaks Mongo-flavored JSON: entity ids
// live under "_id" and a review's author arrives as a populated user
// object, not a bare id. These stay private; everything crossing the
// package boundary is a clean domain type.

type rawUser struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u rawUser) toDomain() domain.User {
	return domain.User{ID: u.ID, Name: u.Name, Email: u.Email}
}

type rawAuthResponse struct {
	Token string  `json:"token"`
	User  rawUser `json:"user"`
}

type rawBook struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre"`
	Year        string `json:"year"`
	Description string `json:"description"`
	CreatedBy   string `json:"createdBy"`
}

func (b rawBook) toDomain() domain.Book {
	return domain.Book{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Genre:       b.Genre,
		Year:        b.Year,
		Description: b.Description,
		CreatedBy:   b.CreatedBy,
	}
}

type rawBookList struct {
	Books      []rawBook `json:"books"`
	TotalPages int       `json:"totalPages"`
}

type rawReview struct {
	ID         string    `json:"_id"`
	BookID     string    `json:"bookId"`
	UserID     rawUser   `json:"userId"`
	Rating     int       `json:"rating"`
	ReviewText string    `json:"reviewText"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (r rawReview) toDomain() domain.Review {
	return domain.Review{
		ID:         r.ID,
		BookID:     r.BookID,
		UserID:     r.UserID.ID,
		UserName:   r.UserID.Name,
		Rating:     r.Rating,
		ReviewText: r.ReviewText,
		CreatedAt:  r.CreatedAt,
	}
}

type rawBookReviews struct {
	Book          rawBook     `json:"book"`
	Reviews       []rawReview `json:"reviews"`
	AverageRating float64     `json:"averageRating"`
	ReviewsCount  int         `json:"reviewsCount"`
}

func (br rawBookReviews) toDomain() domain.BookReviews {
	reviews := make([]domain.Review, 0, len(br.Reviews))
	for _, r := range br.Reviews {
		reviews = append(reviews, r.toDomain())
	}
	return domain.BookReviews{
		Book:          br.Book.toDomain(),
		Reviews:       reviews,
		AverageRating: br.AverageRating,
		ReviewsCount:  br.ReviewsCount,
	}
}

// Request payloads.

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type bookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre"`
	Year        string `json:"year"`
	Description string `json:"description"`
}

type createReviewRequest struct {
	BookID     string `json:"bookId"`
	Rating     int    `json:"rating"`
	ReviewText string `json:"reviewText"`
}

type updateReviewRequest struct {
	Rating     int    `json:"rating"`
	ReviewText string `json:"reviewText"`
}
