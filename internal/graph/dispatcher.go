package graph

import (
	"context"
	"errors"
	"fmt"
	"time"

	"feedgraph/internal/auth"
	"feedgraph/internal/models"
	"feedgraph/internal/observability"
	"feedgraph/internal/service"

	"go.opentelemetry.io/otel/attribute"
)

// UserResolver resolves the user and session operations.
type UserResolver interface {
	ListUsers(ctx context.Context, id auth.Identity) ([]*models.User, error)
	CreateUser(ctx context.Context, id auth.Identity, in service.CreateUserInput) (*models.User, error)
	Login(ctx context.Context, id auth.Identity, in service.LoginInput) (*service.AuthPayload, error)
}

// PostResolver resolves the post and like operations.
type PostResolver interface {
	ListPosts(ctx context.Context, id auth.Identity) ([]*models.Post, error)
	CreatePost(ctx context.Context, id auth.Identity, in service.CreatePostInput) (*models.Post, error)
	LikePost(ctx context.Context, id auth.Identity, in service.LikePostInput) (*models.Like, error)
}

// CommentResolver resolves the comment operations.
type CommentResolver interface {
	ListComments(ctx context.Context, id auth.Identity, postID uint) ([]*models.Comment, error)
	CreateComment(ctx context.Context, id auth.Identity, in service.CreateCommentInput) (*models.Comment, error)
}

// Dispatcher routes typed operations to their resolvers. Authorization is
// left to each resolver.
type Dispatcher struct {
	users    UserResolver
	posts    PostResolver
	comments CommentResolver
}

func NewDispatcher(users UserResolver, posts PostResolver, comments CommentResolver) *Dispatcher {
	return &Dispatcher{users: users, posts: posts, comments: comments}
}

// Dispatch runs op on behalf of id and returns the resolver's result unchanged.
func (d *Dispatcher) Dispatch(ctx context.Context, id auth.Identity, op Operation) (result any, err error) {
	if op == nil {
		return nil, models.NewInternalError(errors.New("nil operation"))
	}

	start := time.Now()
	ctx, span := observability.StartSpan(ctx, "graphql."+op.Field(),
		attribute.String("graphql.operation.type", string(op.Kind())),
		attribute.Bool("auth.authenticated", id.IsAuthenticated()),
	)
	defer func() {
		observability.EndSpan(span, err)
		observability.ObserveOperation(op.Field(), outcome(err), start)
	}()

	switch o := op.(type) {
	case ListUsersOp:
		return d.users.ListUsers(ctx, id)
	case ListPostsOp:
		return d.posts.ListPosts(ctx, id)
	case ListCommentsOp:
		return d.comments.ListComments(ctx, id, o.PostID)
	case CreateUserOp:
		return d.users.CreateUser(ctx, id, service.CreateUserInput{Name: o.Name, Email: o.Email, Password: o.Password})
	case LoginOp:
		return d.users.Login(ctx, id, service.LoginInput{Email: o.Email, Password: o.Password})
	case CreatePostOp:
		return d.posts.CreatePost(ctx, id, service.CreatePostInput{Content: o.Content})
	case LikePostOp:
		return d.posts.LikePost(ctx, id, service.LikePostInput{PostID: o.PostID})
	case CreateCommentOp:
		return d.comments.CreateComment(ctx, id, service.CreateCommentInput{PostID: o.PostID, Content: o.Content})
	default:
		return nil, models.NewInternalError(fmt.Errorf("unhandled operation %T", op))
	}
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return models.AsAppError(err).Code
}
