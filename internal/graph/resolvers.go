package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"feedgraph/internal/auth"
	"feedgraph/internal/models"
	"feedgraph/internal/service"

	"github.com/graph-gophers/graphql-go"
)

// rootResolver serves the Query and Mutation roots. Each field builds its
// typed operation and hands it to the dispatcher with the caller's identity.
type rootResolver struct {
	dispatcher *Dispatcher
}

func (r *rootResolver) dispatch(ctx context.Context, op Operation) (any, error) {
	return r.dispatcher.Dispatch(ctx, auth.FromContext(ctx), op)
}

func (r *rootResolver) Users(ctx context.Context) ([]*userResolver, error) {
	result, err := r.dispatch(ctx, ListUsersOp{})
	if err != nil {
		return nil, err
	}
	users, err := resultAs[[]*models.User](result)
	if err != nil {
		return nil, err
	}
	out := make([]*userResolver, len(users))
	for i, u := range users {
		out[i] = &userResolver{u}
	}
	return out, nil
}

func (r *rootResolver) Posts(ctx context.Context) ([]*postResolver, error) {
	result, err := r.dispatch(ctx, ListPostsOp{})
	if err != nil {
		return nil, err
	}
	posts, err := resultAs[[]*models.Post](result)
	if err != nil {
		return nil, err
	}
	out := make([]*postResolver, len(posts))
	for i, p := range posts {
		out[i] = &postResolver{p}
	}
	return out, nil
}

func (r *rootResolver) Comments(ctx context.Context, args struct{ PostID idInput }) ([]*commentResolver, error) {
	postID, err := args.PostID.parse("postId")
	if err != nil {
		return nil, err
	}
	result, err := r.dispatch(ctx, ListCommentsOp{PostID: postID})
	if err != nil {
		return nil, err
	}
	comments, err := resultAs[[]*models.Comment](result)
	if err != nil {
		return nil, err
	}
	out := make([]*commentResolver, len(comments))
	for i, c := range comments {
		out[i] = &commentResolver{c}
	}
	return out, nil
}

func (r *rootResolver) CreateUser(ctx context.Context, args struct {
	Name     string
	Email    string
	Password string
}) (*userResolver, error) {
	result, err := r.dispatch(ctx, CreateUserOp{Name: args.Name, Email: args.Email, Password: args.Password})
	if err != nil {
		return nil, err
	}
	user, err := resultAs[*models.User](result)
	if err != nil {
		return nil, err
	}
	return &userResolver{user}, nil
}

func (r *rootResolver) Login(ctx context.Context, args struct {
	Email    string
	Password string
}) (*authPayloadResolver, error) {
	result, err := r.dispatch(ctx, LoginOp{Email: args.Email, Password: args.Password})
	if err != nil {
		return nil, err
	}
	payload, err := resultAs[*service.AuthPayload](result)
	if err != nil {
		return nil, err
	}
	return &authPayloadResolver{payload}, nil
}

func (r *rootResolver) CreatePost(ctx context.Context, args struct{ Content string }) (*postResolver, error) {
	result, err := r.dispatch(ctx, CreatePostOp{Content: args.Content})
	if err != nil {
		return nil, err
	}
	post, err := resultAs[*models.Post](result)
	if err != nil {
		return nil, err
	}
	return &postResolver{post}, nil
}

func (r *rootResolver) LikePost(ctx context.Context, args struct{ PostID idInput }) (*likeResolver, error) {
	postID, err := args.PostID.parse("postId")
	if err != nil {
		return nil, err
	}
	result, err := r.dispatch(ctx, LikePostOp{PostID: postID})
	if err != nil {
		return nil, err
	}
	like, err := resultAs[*models.Like](result)
	if err != nil {
		return nil, err
	}
	return &likeResolver{like}, nil
}

func (r *rootResolver) CreateComment(ctx context.Context, args struct {
	PostID  idInput
	Content string
}) (*commentResolver, error) {
	postID, err := args.PostID.parse("postId")
	if err != nil {
		return nil, err
	}
	result, err := r.dispatch(ctx, CreateCommentOp{PostID: postID, Content: args.Content})
	if err != nil {
		return nil, err
	}
	comment, err := resultAs[*models.Comment](result)
	if err != nil {
		return nil, err
	}
	return &commentResolver{comment}, nil
}

// resultAs narrows a dispatch result. A nil pointer counts as a mismatch so
// non-null fields never resolve to null without an error.
func resultAs[T any](result any) (T, error) {
	v, ok := result.(T)
	if !ok {
		var zero T
		return zero, models.NewInternalError(fmt.Errorf("unexpected result type %T", result))
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && rv.IsNil() {
		var zero T
		return zero, models.NewInternalError(fmt.Errorf("nil %T result", result))
	}
	return v, nil
}

type userResolver struct{ u *models.User }

func (r *userResolver) ID() graphql.ID { return toID(r.u.ID) }
func (r *userResolver) Name() string   { return r.u.Name }
func (r *userResolver) Email() string  { return r.u.Email }

type postResolver struct{ p *models.Post }

func (r *postResolver) ID() graphql.ID     { return toID(r.p.ID) }
func (r *postResolver) Content() string    { return r.p.Content }
func (r *postResolver) UserID() graphql.ID { return toID(r.p.UserID) }
func (r *postResolver) Likes() int32       { return int32(r.p.Likes) }
func (r *postResolver) Comments() int32    { return int32(r.p.Comments) }
func (r *postResolver) CreatedAt() string  { return timestamp(r.p.CreatedAt) }

func (r *postResolver) User() (*userResolver, error) {
	return author(r.p.User, "post", r.p.ID)
}

type commentResolver struct{ c *models.Comment }

func (r *commentResolver) ID() graphql.ID     { return toID(r.c.ID) }
func (r *commentResolver) Content() string    { return r.c.Content }
func (r *commentResolver) PostID() graphql.ID { return toID(r.c.PostID) }
func (r *commentResolver) UserID() graphql.ID { return toID(r.c.UserID) }
func (r *commentResolver) CreatedAt() string  { return timestamp(r.c.CreatedAt) }

func (r *commentResolver) User() (*userResolver, error) {
	return author(r.c.User, "comment", r.c.ID)
}

type likeResolver struct{ l *models.Like }

func (r *likeResolver) ID() graphql.ID     { return toID(r.l.ID) }
func (r *likeResolver) PostID() graphql.ID { return toID(r.l.PostID) }
func (r *likeResolver) UserID() graphql.ID { return toID(r.l.UserID) }

type authPayloadResolver struct{ p *service.AuthPayload }

func (r *authPayloadResolver) Token() string { return r.p.Token }

func (r *authPayloadResolver) User() (*userResolver, error) {
	return author(r.p.User, "session", 0)
}

// author wraps a stitched user. The services always attach one, so a missing
// user is an internal error rather than a null.
func author(u *models.User, owner string, ownerID uint) (*userResolver, error) {
	if u == nil {
		return nil, models.NewInternalError(fmt.Errorf("%s %d: author not loaded", owner, ownerID))
	}
	return &userResolver{u}, nil
}

func toID(n uint) graphql.ID {
	return graphql.ID(strconv.FormatUint(uint64(n), 10))
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// idInput is the ID scalar as an argument. It keeps the raw value so the
// resolver can report a malformed ID against the field that received it.
type idInput struct {
	raw   string
	valid bool
}

func (idInput) ImplementsGraphQLType(name string) bool {
	return name == "ID"
}

// UnmarshalGraphQL accepts string and numeric IDs, including numbers decoded
// from request variables.
func (i *idInput) UnmarshalGraphQL(input interface{}) error {
	i.valid = true
	switch v := input.(type) {
	case string:
		i.raw = v
	case json.Number:
		i.raw = v.String()
	case int32:
		i.raw = strconv.FormatInt(int64(v), 10)
	case int:
		i.raw = strconv.Itoa(v)
	case int64:
		i.raw = strconv.FormatInt(v, 10)
	case float64:
		if v != math.Trunc(v) {
			i.valid = false
		}
		i.raw = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		i.valid = false
	}
	return nil
}

func (i idInput) parse(arg string) (uint, error) {
	invalid := models.NewValidationError(fmt.Sprintf("Invalid ID for argument %s", arg))
	if !i.valid {
		return 0, invalid
	}
	n, err := strconv.ParseUint(strings.TrimSpace(i.raw), 10, 0)
	if err != nil || n == 0 {
		return 0, invalid
	}
	return uint(n), nil
}
