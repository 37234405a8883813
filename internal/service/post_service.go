package service

import (
	"context"
	"fmt"
	"strings"

	"feedgraph/internal/auth"
	"feedgraph/internal/models"
	"feedgraph/internal/repository"

	"golang.org/x/sync/errgroup"
)

type PostService struct {
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
	publisher   EventPublisher
}

type CreatePostInput struct {
	Content string
}

type LikePostInput struct {
	PostID uint
}

// NewPostService wires the post resolvers. publisher may be nil.
func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	publisher EventPublisher,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		userRepo:    userRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
		publisher:   publisher,
	}
}

// ListPosts returns every post newest first with author, like count and
// comment count attached. The three relation lookups are batched and run
// concurrently once the ordered list is known.
func (s *PostService) ListPosts(ctx context.Context, _ auth.Identity) ([]*models.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return posts, nil
	}

	postIDs := repository.UniqueKeys(posts, func(p *models.Post) uint { return p.ID })
	authorIDs := repository.UniqueKeys(posts, func(p *models.Post) uint { return p.UserID })

	var (
		authors       map[uint]*models.User
		likeCounts    map[uint]int
		commentCounts map[uint]int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		authors, err = s.userRepo.GetByIDs(gctx, authorIDs)
		return err
	})
	g.Go(func() error {
		var err error
		likeCounts, err = s.likeRepo.CountByPostIDs(gctx, postIDs)
		return err
	})
	g.Go(func() error {
		var err error
		commentCounts, err = s.commentRepo.CountByPostIDs(gctx, postIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, p := range posts {
		author, ok := authors[p.UserID]
		if !ok {
			return nil, models.NewInternalError(fmt.Errorf("post %d: author %d missing", p.ID, p.UserID))
		}
		p.User = author
		p.Likes = likeCounts[p.ID]
		p.Comments = commentCounts[p.ID]
	}
	return posts, nil
}

func (s *PostService) CreatePost(ctx context.Context, id auth.Identity, in CreatePostInput) (*models.Post, error) {
	if !id.IsAuthenticated() {
		return nil, models.NewUnauthorizedError(notAuthenticatedMessage)
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}

	post := &models.Post{Content: content, UserID: id.UserID()}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, id.UserID())
	if err != nil {
		return nil, err
	}
	post.User = author

	publishEvent(ctx, s.publisher, models.FeedEvent{
		Type:   models.FeedEventPostCreated,
		PostID: post.ID,
		UserID: post.UserID,
		At:     post.CreatedAt,
	})
	return post, nil
}

func (s *PostService) LikePost(ctx context.Context, id auth.Identity, in LikePostInput) (*models.Like, error) {
	if !id.IsAuthenticated() {
		return nil, models.NewUnauthorizedError(notAuthenticatedMessage)
	}
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	liked, err := s.likeRepo.Exists(ctx, in.PostID, id.UserID())
	if err != nil {
		return nil, err
	}
	if liked {
		return nil, models.NewConflictError("Post already liked")
	}

	like := &models.Like{PostID: in.PostID, UserID: id.UserID()}
	if err := s.likeRepo.Create(ctx, like); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.publisher, models.FeedEvent{
		Type:   models.FeedEventPostLiked,
		PostID: like.PostID,
		UserID: like.UserID,
		LikeID: like.ID,
		At:     like.CreatedAt,
	})
	return like, nil
}
