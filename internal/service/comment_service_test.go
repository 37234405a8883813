package service

import (
	"context"
	"testing"

	"feedgraph/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_CreateComment_Validation(t *testing.T) {
	t.Parallel()

	svc := NewCommentService(noopCommentRepo(), noopPostRepo(), noopUserRepo(), nil)
	ctx := context.Background()

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateComment(ctx, anonymous, CreateCommentInput{PostID: 1, Content: "hi"})
		assertUnauthorizedError(t, err)
	})

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateComment(ctx, alice, CreateCommentInput{PostID: 1, Content: "   "})
		assertValidationError(t, err)
		assert.Equal(t, "Comment content is required", err.Error())
	})

	t.Run("post not found", func(t *testing.T) {
		t.Parallel()
		posts := noopPostRepo()
		posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}
		svc2 := NewCommentService(noopCommentRepo(), posts, noopUserRepo(), nil)
		_, err := svc2.CreateComment(ctx, alice, CreateCommentInput{PostID: 99, Content: "hi"})
		assertCode(t, err, models.CodeNotFound)
	})
}

func TestCommentService_CreateComment_Success(t *testing.T) {
	t.Parallel()

	comments := noopCommentRepo()
	comments.createFn = func(_ context.Context, c *models.Comment) error {
		c.ID = 11
		return nil
	}
	pub := &recordingPublisher{}
	svc := NewCommentService(comments, noopPostRepo(), noopUserRepo(), pub)

	comment, err := svc.CreateComment(context.Background(), alice, CreateCommentInput{PostID: 4, Content: " nice "})
	require.NoError(t, err)
	assert.Equal(t, "nice", comment.Content)
	assert.Equal(t, uint(4), comment.PostID)
	assert.Equal(t, uint(1), comment.UserID)
	require.NotNil(t, comment.User)

	events := pub.Events()
	require.Len(t, events, 1)
	assert.Equal(t, models.FeedEventCommentCreated, events[0].Type)
	assert.Equal(t, uint(11), events[0].CommentID)
}

func TestCommentService_ListComments(t *testing.T) {
	t.Parallel()

	comments := noopCommentRepo()
	comments.listByPostFn = func(_ context.Context, postID uint) ([]*models.Comment, error) {
		return []*models.Comment{
			{ID: 2, PostID: postID, UserID: 5},
			{ID: 1, PostID: postID, UserID: 5},
		}, nil
	}
	var lookups int
	users := noopUserRepo()
	users.getByIDsFn = func(_ context.Context, ids []uint) (map[uint]*models.User, error) {
		lookups++
		assert.Equal(t, []uint{5}, ids)
		return map[uint]*models.User{5: {ID: 5, Name: "Eve"}}, nil
	}
	svc := NewCommentService(comments, noopPostRepo(), users, nil)

	list, err := svc.ListComments(context.Background(), anonymous, 3)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Eve", list[0].User.Name)
	assert.Equal(t, 1, lookups)
}

func TestCommentService_ListComments_StitchesEachAuthor(t *testing.T) {
	t.Parallel()

	comments := noopCommentRepo()
	comments.listByPostFn = func(_ context.Context, postID uint) ([]*models.Comment, error) {
		return []*models.Comment{
			{ID: 3, PostID: postID, UserID: 6},
			{ID: 2, PostID: postID, UserID: 5},
			{ID: 1, PostID: postID, UserID: 6},
		}, nil
	}
	users := noopUserRepo()
	users.getByIDsFn = func(_ context.Context, ids []uint) (map[uint]*models.User, error) {
		assert.Equal(t, []uint{6, 5}, ids)
		return map[uint]*models.User{5: {ID: 5, Name: "Eve"}, 6: {ID: 6, Name: "Finn"}}, nil
	}
	svc := NewCommentService(comments, noopPostRepo(), users, nil)

	list, err := svc.ListComments(context.Background(), anonymous, 3)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []uint{3, 2, 1}, []uint{list[0].ID, list[1].ID, list[2].ID})
	assert.Equal(t, "Finn", list[0].User.Name)
	assert.Equal(t, "Eve", list[1].User.Name)
	assert.Equal(t, "Finn", list[2].User.Name)
}

func TestCommentService_ListComments_MissingAuthor(t *testing.T) {
	t.Parallel()

	comments := noopCommentRepo()
	comments.listByPostFn = func(_ context.Context, postID uint) ([]*models.Comment, error) {
		return []*models.Comment{{ID: 1, PostID: postID, UserID: 9}}, nil
	}
	users := noopUserRepo()
	users.getByIDsFn = func(_ context.Context, _ []uint) (map[uint]*models.User, error) {
		return map[uint]*models.User{}, nil
	}
	svc := NewCommentService(comments, noopPostRepo(), users, nil)

	_, err := svc.ListComments(context.Background(), anonymous, 3)
	assert.True(t, models.IsCode(err, models.CodeInternal))
}
