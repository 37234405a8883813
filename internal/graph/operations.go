// Package graph decodes GraphQL documents into typed operations and
// dispatches them to the resolvers.
package graph

// OperationKind is the GraphQL root an operation belongs to.
type OperationKind string

const (
	KindQuery    OperationKind = "query"
	KindMutation OperationKind = "mutation"
)

// Operation is one decoded root field. The set of implementations is closed:
// only the types in this file satisfy it.
type Operation interface {
	Kind() OperationKind
	Field() string
	operation()
}

type ListUsersOp struct{}

type ListPostsOp struct{}

type ListCommentsOp struct {
	PostID uint
}

type CreateUserOp struct {
	Name     string
	Email    string
	Password string
}

type LoginOp struct {
	Email    string
	Password string
}

type CreatePostOp struct {
	Content string
}

type LikePostOp struct {
	PostID uint
}

type CreateCommentOp struct {
	PostID  uint
	Content string
}

func (ListUsersOp) Kind() OperationKind     { return KindQuery }
func (ListPostsOp) Kind() OperationKind     { return KindQuery }
func (ListCommentsOp) Kind() OperationKind  { return KindQuery }
func (CreateUserOp) Kind() OperationKind    { return KindMutation }
func (LoginOp) Kind() OperationKind         { return KindMutation }
func (CreatePostOp) Kind() OperationKind    { return KindMutation }
func (LikePostOp) Kind() OperationKind      { return KindMutation }
func (CreateCommentOp) Kind() OperationKind { return KindMutation }

func (ListUsersOp) Field() string     { return "users" }
func (ListPostsOp) Field() string     { return "posts" }
func (ListCommentsOp) Field() string  { return "comments" }
func (CreateUserOp) Field() string    { return "createUser" }
func (LoginOp) Field() string         { return "login" }
func (CreatePostOp) Field() string    { return "createPost" }
func (LikePostOp) Field() string      { return "likePost" }
func (CreateCommentOp) Field() string { return "createComment" }

func (ListUsersOp) operation()     {}
func (ListPostsOp) operation()     {}
func (ListCommentsOp) operation()  {}
func (CreateUserOp) operation()    {}
func (LoginOp) operation()         {}
func (CreatePostOp) operation()    {}
func (LikePostOp) operation()      {}
func (CreateCommentOp) operation() {}
