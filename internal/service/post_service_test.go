package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"feedgraph/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_ListPosts_StitchesInBatches(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	posts.listFn = func(_ context.Context) ([]*models.Post, error) {
		return []*models.Post{
			{ID: 3, UserID: 2, Content: "c"},
			{ID: 2, UserID: 1, Content: "b"},
			{ID: 1, UserID: 2, Content: "a"},
		}, nil
	}

	var userCalls, likeCalls, commentCalls int32
	users := noopUserRepo()
	users.getByIDsFn = func(_ context.Context, ids []uint) (map[uint]*models.User, error) {
		atomic.AddInt32(&userCalls, 1)
		assert.ElementsMatch(t, []uint{1, 2}, ids)
		return map[uint]*models.User{
			1: {ID: 1, Name: "Alice", Email: "alice@example.com"},
			2: {ID: 2, Name: "Bob", Email: "bob@example.com"},
		}, nil
	}
	likes := noopLikeRepo()
	likes.countFn = func(_ context.Context, ids []uint) (map[uint]int, error) {
		atomic.AddInt32(&likeCalls, 1)
		assert.ElementsMatch(t, []uint{1, 2, 3}, ids)
		return map[uint]int{3: 5}, nil
	}
	comments := noopCommentRepo()
	comments.countFn = func(_ context.Context, _ []uint) (map[uint]int, error) {
		atomic.AddInt32(&commentCalls, 1)
		return map[uint]int{1: 2}, nil
	}

	svc := NewPostService(posts, users, likes, comments, nil)
	list, err := svc.ListPosts(context.Background(), anonymous)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, []uint{3, 2, 1}, []uint{list[0].ID, list[1].ID, list[2].ID})
	assert.Equal(t, "Bob", list[0].User.Name)
	assert.Equal(t, "Alice", list[1].User.Name)
	assert.Equal(t, 5, list[0].Likes)
	assert.Equal(t, 0, list[1].Likes)
	assert.Equal(t, 2, list[2].Comments)

	assert.Equal(t, int32(1), userCalls)
	assert.Equal(t, int32(1), likeCalls)
	assert.Equal(t, int32(1), commentCalls)
}

func TestPostService_ListPosts_Failures(t *testing.T) {
	t.Parallel()

	twoPosts := func(_ context.Context) ([]*models.Post, error) {
		return []*models.Post{{ID: 1, UserID: 1}, {ID: 2, UserID: 9}}, nil
	}

	t.Run("missing author fails whole list", func(t *testing.T) {
		t.Parallel()
		posts := noopPostRepo()
		posts.listFn = twoPosts
		users := noopUserRepo()
		users.getByIDsFn = func(_ context.Context, _ []uint) (map[uint]*models.User, error) {
			return map[uint]*models.User{1: {ID: 1}}, nil
		}
		svc := NewPostService(posts, users, noopLikeRepo(), noopCommentRepo(), nil)

		list, err := svc.ListPosts(context.Background(), anonymous)
		assert.Nil(t, list)
		assertCode(t, err, models.CodeInternal)
	})

	t.Run("count failure propagates", func(t *testing.T) {
		t.Parallel()
		posts := noopPostRepo()
		posts.listFn = twoPosts
		likes := noopLikeRepo()
		likes.countFn = func(_ context.Context, _ []uint) (map[uint]int, error) {
			return nil, models.NewInternalError(errors.New("db down"))
		}
		svc := NewPostService(posts, noopUserRepo(), likes, noopCommentRepo(), nil)

		list, err := svc.ListPosts(context.Background(), anonymous)
		assert.Nil(t, list)
		assertCode(t, err, models.CodeInternal)
	})

	t.Run("empty feed skips lookups", func(t *testing.T) {
		t.Parallel()
		users := noopUserRepo()
		users.getByIDsFn = func(_ context.Context, _ []uint) (map[uint]*models.User, error) {
			t.Fatal("no lookup expected")
			return nil, nil
		}
		svc := NewPostService(noopPostRepo(), users, noopLikeRepo(), noopCommentRepo(), nil)

		list, err := svc.ListPosts(context.Background(), anonymous)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestPostService_CreatePost(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo(), noopUserRepo(), noopLikeRepo(), noopCommentRepo(), nil)
		_, err := svc.CreatePost(ctx, anonymous, CreatePostInput{Content: "hi"})
		assertUnauthorizedError(t, err)
	})

	t.Run("blank content", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo(), noopUserRepo(), noopLikeRepo(), noopCommentRepo(), nil)
		_, err := svc.CreatePost(ctx, alice, CreatePostInput{Content: " \n\t "})
		assertValidationError(t, err)
		assert.Equal(t, "Content is required", err.Error())
	})

	t.Run("success stitches author and publishes", func(t *testing.T) {
		t.Parallel()
		posts := noopPostRepo()
		posts.createFn = func(_ context.Context, p *models.Post) error {
			p.ID = 42
			return nil
		}
		pub := &recordingPublisher{}
		svc := NewPostService(posts, noopUserRepo(), noopLikeRepo(), noopCommentRepo(), pub)

		post, err := svc.CreatePost(ctx, alice, CreatePostInput{Content: "  hello  "})
		require.NoError(t, err)
		assert.Equal(t, "hello", post.Content)
		assert.Equal(t, uint(1), post.UserID)
		require.NotNil(t, post.User)
		assert.Equal(t, uint(1), post.User.ID)
		assert.Zero(t, post.Likes)
		assert.Zero(t, post.Comments)

		events := pub.Events()
		require.Len(t, events, 1)
		assert.Equal(t, models.FeedEventPostCreated, events[0].Type)
		assert.Equal(t, uint(42), events[0].PostID)
	})

	t.Run("publish failure does not fail the write", func(t *testing.T) {
		t.Parallel()
		pub := &recordingPublisher{err: errors.New("redis down")}
		svc := NewPostService(noopPostRepo(), noopUserRepo(), noopLikeRepo(), noopCommentRepo(), pub)

		_, err := svc.CreatePost(ctx, alice, CreatePostInput{Content: "hello"})
		assert.NoError(t, err)
		assert.Len(t, pub.Events(), 1)
	})
}

func TestPostService_LikePost(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo(), noopUserRepo(), noopLikeRepo(), noopCommentRepo(), nil)
		_, err := svc.LikePost(ctx, anonymous, LikePostInput{PostID: 1})
		assertUnauthorizedError(t, err)
	})

	t.Run("missing post", func(t *testing.T) {
		t.Parallel()
		posts := noopPostRepo()
		posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}
		svc := NewPostService(posts, noopUserRepo(), noopLikeRepo(), noopCommentRepo(), nil)
		_, err := svc.LikePost(ctx, alice, LikePostInput{PostID: 7})
		assertCode(t, err, models.CodeNotFound)
	})

	t.Run("already liked does not insert", func(t *testing.T) {
		t.Parallel()
		likes := noopLikeRepo()
		likes.existsFn = func(_ context.Context, postID, userID uint) (bool, error) {
			assert.Equal(t, uint(7), postID)
			assert.Equal(t, uint(1), userID)
			return true, nil
		}
		likes.createFn = func(_ context.Context, _ *models.Like) error {
			t.Fatal("create must not be called")
			return nil
		}
		svc := NewPostService(noopPostRepo(), noopUserRepo(), likes, noopCommentRepo(), nil)

		_, err := svc.LikePost(ctx, alice, LikePostInput{PostID: 7})
		appErr := assertCode(t, err, models.CodeConflict)
		assert.Equal(t, "Post already liked", appErr.Message)
	})

	t.Run("insert race surfaces conflict", func(t *testing.T) {
		t.Parallel()
		likes := noopLikeRepo()
		likes.createFn = func(_ context.Context, _ *models.Like) error {
			return models.NewConflictError("Post already liked")
		}
		svc := NewPostService(noopPostRepo(), noopUserRepo(), likes, noopCommentRepo(), nil)

		_, err := svc.LikePost(ctx, alice, LikePostInput{PostID: 7})
		assertCode(t, err, models.CodeConflict)
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		likes := noopLikeRepo()
		likes.createFn = func(_ context.Context, l *models.Like) error {
			l.ID = 3
			return nil
		}
		pub := &recordingPublisher{}
		svc := NewPostService(noopPostRepo(), noopUserRepo(), likes, noopCommentRepo(), pub)

		like, err := svc.LikePost(ctx, alice, LikePostInput{PostID: 7})
		require.NoError(t, err)
		assert.Equal(t, models.Like{ID: 3, PostID: 7, UserID: 1}, *like)
		require.Len(t, pub.Events(), 1)
		assert.Equal(t, models.FeedEventPostLiked, pub.Events()[0].Type)
	})
}
