package graph

import (
	"context"

	"feedgraph/internal/auth"
	"feedgraph/internal/models"
	"feedgraph/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockUsers struct{ mock.Mock }

func (m *MockUsers) ListUsers(ctx context.Context, id auth.Identity) ([]*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUsers) CreateUser(ctx context.Context, id auth.Identity, in service.CreateUserInput) (*models.User, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUsers) Login(ctx context.Context, id auth.Identity, in service.LoginInput) (*service.AuthPayload, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthPayload), args.Error(1)
}

type MockPosts struct{ mock.Mock }

func (m *MockPosts) ListPosts(ctx context.Context, id auth.Identity) ([]*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPosts) CreatePost(ctx context.Context, id auth.Identity, in service.CreatePostInput) (*models.Post, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPosts) LikePost(ctx context.Context, id auth.Identity, in service.LikePostInput) (*models.Like, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Like), args.Error(1)
}

type MockComments struct{ mock.Mock }

func (m *MockComments) ListComments(ctx context.Context, id auth.Identity, postID uint) ([]*models.Comment, error) {
	args := m.Called(ctx, id, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockComments) CreateComment(ctx context.Context, id auth.Identity, in service.CreateCommentInput) (*models.Comment, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}
