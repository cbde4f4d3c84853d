package review

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logiksutra/bookshelf-cli/internal/domain"
	apperrors "github.com/logiksutra/bookshelf-cli/internal/errors"
)

type createCall struct {
	bookID string
	rating int
	text   string
}

type updateCall struct {
	reviewID string
	rating   int
	text     string
}

// fakeGateway records calls and serves canned review state.
type fakeGateway struct {
	result    *domain.BookReviews
	loadErr   error
	createErr error
	updateErr error
	deleteErr error

	loads       int
	createCalls []createCall
	updateCalls []updateCall
	deleteCalls []string

	// onMutate lets a test change the served result after a mutation,
	// simulating the server's post-mutation state.
	onMutate func()
}

func (f *fakeGateway) GetBookReviews(_ context.Context, _ string) (*domain.BookReviews, error) {
	f.loads++
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.result, nil
}

func (f *fakeGateway) CreateReview(_ context.Context, bookID string, rating int, text string) error {
	f.createCalls = append(f.createCalls, createCall{bookID, rating, text})
	if f.createErr != nil {
		return f.createErr
	}
	if f.onMutate != nil {
		f.onMutate()
	}
	return nil
}

func (f *fakeGateway) UpdateReview(_ context.Context, reviewID string, rating int, text string) error {
	f.updateCalls = append(f.updateCalls, updateCall{reviewID, rating, text})
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.onMutate != nil {
		f.onMutate()
	}
	return nil
}

func (f *fakeGateway) DeleteReview(_ context.Context, reviewID string) error {
	f.deleteCalls = append(f.deleteCalls, reviewID)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if f.onMutate != nil {
		f.onMutate()
	}
	return nil
}

type fakeSessions struct {
	sess domain.Session
}

func (f *fakeSessions) Current() domain.Session { return f.sess }

func loggedIn() *fakeSessions {
	return &fakeSessions{sess: domain.Session{
		Token: "t1",
		User:  domain.User{ID: "u1", Name: "A"},
	}}
}

func bookState(reviews ...domain.Review) *domain.BookReviews {
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	var avg float64
	if len(reviews) > 0 {
		avg = float64(sum) / float64(len(reviews))
	}
	return &domain.BookReviews{
		Book:          domain.Book{ID: "b1", Title: "Dune", Author: "Frank Herbert"},
		Reviews:       reviews,
		AverageRating: avg,
		ReviewsCount:  len(reviews),
	}
}

func otherReview() domain.Review {
	return domain.Review{
		ID: "r9", BookID: "b1", UserID: "u2", UserName: "B",
		Rating: 2, ReviewText: "Meh", CreatedAt: time.Now(),
	}
}

func ownReview(rating int) domain.Review {
	return domain.Review{
		ID: "r1", BookID: "b1", UserID: "u1", UserName: "A",
		Rating: rating, ReviewText: "Great", CreatedAt: time.Now(),
	}
}

func setupLoaded(t *testing.T, gw *fakeGateway, sessions SessionSource) *Reconciler {
	t.Helper()
	r := NewReconciler(gw, sessions, nil)
	require.NoError(t, r.Load(context.Background(), "b1"))
	return r
}

func TestSubmit_ValidationBlocksNetwork(t *testing.T) {
	tests := []struct {
		name   string
		rating int
		text   string
	}{
		{"zero rating", 0, "Great"},
		{"negative rating", -1, "Great"},
		{"rating above five", 6, "Great"},
		{"empty text", 4, ""},
		{"whitespace text", 4, "   \t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{result: bookState()}
			r := setupLoaded(t, gw, loggedIn())
			loadsBefore := gw.loads

			err := r.Submit(context.Background(), tt.rating, tt.text)

			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Empty(t, gw.createCalls, "no create call may be issued")
			assert.Empty(t, gw.updateCalls, "no update call may be issued")
			assert.Equal(t, loadsBefore, gw.loads, "no refetch may be issued")
		})
	}
}

func TestSubmit_CreatesWhenNoReview(t *testing.T) {
	gw := &fakeGateway{result: bookState(otherReview())}
	gw.onMutate = func() {
		created := ownReview(4)
		created.ReviewText = "Great"
		gw.result = bookState(otherReview(), created)
	}
	r := setupLoaded(t, gw, loggedIn())

	_, hasReview := r.Current()
	require.False(t, hasReview)

	err := r.Submit(context.Background(), 4, "Great")
	require.NoError(t, err)

	require.Len(t, gw.createCalls, 1)
	assert.Equal(t, createCall{"b1", 4, "Great"}, gw.createCalls[0])
	assert.Empty(t, gw.updateCalls)

	// Refetched state shows exactly one review for the user and the
	// aggregates recomputed over all ratings including the new one.
	own, hasReview := r.Current()
	require.True(t, hasReview)
	assert.Equal(t, "r1", own.ID)
	avg, count := r.Aggregates()
	assert.Equal(t, 2, count)
	assert.InDelta(t, 3.0, avg, 1e-9)
}

func TestSubmit_UpdatesExistingByID(t *testing.T) {
	gw := &fakeGateway{result: bookState(ownReview(3))}
	gw.onMutate = func() {
		updated := ownReview(5)
		updated.ReviewText = "Better now"
		gw.result = bookState(updated)
	}
	r := setupLoaded(t, gw, loggedIn())

	err := r.Submit(context.Background(), 5, "Better now")
	require.NoError(t, err)

	assert.Empty(t, gw.createCalls, "update must not create")
	require.Len(t, gw.updateCalls, 1)
	assert.Equal(t, updateCall{"r1", 5, "Better now"}, gw.updateCalls[0])

	// Same id, new rating after refetch.
	own, hasReview := r.Current()
	require.True(t, hasReview)
	assert.Equal(t, "r1", own.ID)
	assert.Equal(t, 5, own.Rating)
}

func TestSubmit_TrimsTextBeforeSend(t *testing.T) {
	gw := &fakeGateway{result: bookState()}
	gw.onMutate = func() { gw.result = bookState(ownReview(4)) }
	r := setupLoaded(t, gw, loggedIn())

	err := r.Submit(context.Background(), 4, "  Great  ")
	require.NoError(t, err)

	require.Len(t, gw.createCalls, 1)
	assert.Equal(t, "Great", gw.createCalls[0].text)
}

func TestSubmit_FailureLeavesStateUnchanged(t *testing.T) {
	gw := &fakeGateway{
		result:    bookState(ownReview(3)),
		updateErr: &apperrors.Error{Code: apperrors.CodeNetwork, Message: "boom"},
	}
	r := setupLoaded(t, gw, loggedIn())
	loadsBefore := gw.loads

	err := r.Submit(context.Background(), 5, "Better now")
	require.Error(t, err)

	own, hasReview := r.Current()
	require.True(t, hasReview)
	assert.Equal(t, 3, own.Rating, "local state must not change on failure")
	assert.Equal(t, loadsBefore, gw.loads, "no refetch after a failed mutation")
}

func TestSubmit_RequiresAuth(t *testing.T) {
	gw := &fakeGateway{result: bookState()}
	r := setupLoaded(t, gw, loggedIn())

	// Log out between load and submit.
	sessions := r.sessions.(*fakeSessions)
	sessions.sess = domain.Session{}

	err := r.Submit(context.Background(), 4, "Great")
	assert.ErrorIs(t, err, apperrors.ErrAuthRequired)
	assert.Empty(t, gw.createCalls)
}

func TestDelete_NoReviewIsNoop(t *testing.T) {
	gw := &fakeGateway{result: bookState(otherReview())}
	r := setupLoaded(t, gw, loggedIn())
	loadsBefore := gw.loads

	err := r.Delete(context.Background())
	require.NoError(t, err)

	assert.Empty(t, gw.deleteCalls, "no delete action exists outside the HasReview state")
	assert.Equal(t, loadsBefore, gw.loads)
}

func TestDelete_RemovesOwnReview(t *testing.T) {
	gw := &fakeGateway{result: bookState(ownReview(4), otherReview())}
	gw.onMutate = func() { gw.result = bookState(otherReview()) }
	r := setupLoaded(t, gw, loggedIn())

	err := r.Delete(context.Background())
	require.NoError(t, err)

	require.Len(t, gw.deleteCalls, 1)
	assert.Equal(t, "r1", gw.deleteCalls[0])

	_, hasReview := r.Current()
	assert.False(t, hasReview)
	avg, count := r.Aggregates()
	assert.Equal(t, 1, count)
	assert.InDelta(t, 2.0, avg, 1e-9)
}

func TestDelete_FailureLeavesStateUnchanged(t *testing.T) {
	gw := &fakeGateway{
		result:    bookState(ownReview(4)),
		deleteErr: &apperrors.Error{Code: apperrors.CodeAPI, Message: "forbidden"},
	}
	r := setupLoaded(t, gw, loggedIn())

	err := r.Delete(context.Background())
	require.Error(t, err)

	own, hasReview := r.Current()
	assert.True(t, hasReview)
	assert.Equal(t, "r1", own.ID)
}

func TestLoad_DuplicateUserReviewsIsIntegrityError(t *testing.T) {
	dup := ownReview(4)
	dup.ID = "r2"
	gw := &fakeGateway{result: bookState(ownReview(3), dup)}

	r := NewReconciler(gw, loggedIn(), nil)
	err := r.Load(context.Background(), "b1")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrIntegrity)
	assert.Contains(t, err.Error(), "r1")
	assert.Contains(t, err.Error(), "r2")
}

func TestLoad_FailureKeepsPreviousState(t *testing.T) {
	gw := &fakeGateway{result: bookState(ownReview(4))}
	r := setupLoaded(t, gw, loggedIn())

	gw.loadErr = &apperrors.Error{Code: apperrors.CodeNetwork, Message: "down"}
	err := r.Load(context.Background(), "b1")
	require.Error(t, err)

	own, hasReview := r.Current()
	assert.True(t, hasReview)
	assert.Equal(t, 4, own.Rating)
	assert.Equal(t, "Dune", r.Book().Title)
}

func TestSubmit_WithoutLoadFails(t *testing.T) {
	gw := &fakeGateway{result: bookState()}
	r := NewReconciler(gw, loggedIn(), nil)

	err := r.Submit(context.Background(), 4, "Great")
	assert.Error(t, err)
	assert.Empty(t, gw.createCalls)
}
