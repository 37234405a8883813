package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"feedgraph/internal/auth"
	"feedgraph/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice     = auth.Authenticated(1, "alice@example.com")
	anonymous = auth.Anonymous()
)

type userRepoStub struct {
	listFn       func(context.Context) ([]*models.User, error)
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByIDsFn   func(context.Context, []uint) (map[uint]*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
}

func (s *userRepoStub) List(ctx context.Context) ([]*models.User, error) { return s.listFn(ctx) }
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDs(ctx context.Context, ids []uint) (map[uint]*models.User, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		listFn: func(_ context.Context) ([]*models.User, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Name: "user", Email: "user@example.com"}, nil
		},
		getByIDsFn: func(_ context.Context, ids []uint) (map[uint]*models.User, error) {
			out := make(map[uint]*models.User, len(ids))
			for _, id := range ids {
				out[id] = &models.User{ID: id}
			}
			return out, nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:     func(_ context.Context, _ *models.User) error { return nil },
	}
}

type postRepoStub struct {
	listFn    func(context.Context) ([]*models.Post, error)
	getByIDFn func(context.Context, uint) (*models.Post, error)
	createFn  func(context.Context, *models.Post) error
}

func (s *postRepoStub) List(ctx context.Context) ([]*models.Post, error) { return s.listFn(ctx) }
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		listFn:    func(_ context.Context) ([]*models.Post, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
	}
}

type likeRepoStub struct {
	existsFn func(context.Context, uint, uint) (bool, error)
	createFn func(context.Context, *models.Like) error
	countFn  func(context.Context, []uint) (map[uint]int, error)
}

func (s *likeRepoStub) Exists(ctx context.Context, postID, userID uint) (bool, error) {
	return s.existsFn(ctx, postID, userID)
}
func (s *likeRepoStub) Create(ctx context.Context, like *models.Like) error {
	return s.createFn(ctx, like)
}
func (s *likeRepoStub) CountByPostIDs(ctx context.Context, ids []uint) (map[uint]int, error) {
	return s.countFn(ctx, ids)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		existsFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		createFn: func(_ context.Context, _ *models.Like) error { return nil },
		countFn:  func(_ context.Context, _ []uint) (map[uint]int, error) { return map[uint]int{}, nil },
	}
}

type commentRepoStub struct {
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
	createFn     func(context.Context, *models.Comment) error
	countFn      func(context.Context, []uint) (map[uint]int, error)
}

func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) CountByPostIDs(ctx context.Context, ids []uint) (map[uint]int, error) {
	return s.countFn(ctx, ids)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		listByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		countFn:      func(_ context.Context, _ []uint) (map[uint]int, error) { return map[uint]int{}, nil },
	}
}

// recordingPublisher collects published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []models.FeedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event models.FeedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Events() []models.FeedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.FeedEvent(nil), p.events...)
}

type tokenIssuerStub struct {
	token string
	err   error
}

func (s tokenIssuerStub) Issue(_ uint, _ string) (string, error) { return s.token, s.err }

func assertCode(t *testing.T, err error, code string) *models.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertCode(t, err, models.CodeValidation)
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	appErr := assertCode(t, err, models.CodeUnauthorized)
	assert.Equal(t, "Not authenticated", appErr.Message)
}
