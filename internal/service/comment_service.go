package service

import (
	"context"
	"fmt"
	"strings"

	"feedgraph/internal/auth"
	"feedgraph/internal/models"
	"feedgraph/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	publisher   EventPublisher
}

type CreateCommentInput struct {
	PostID  uint
	Content string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	publisher EventPublisher,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		publisher:   publisher,
	}
}

// ListComments returns the comments of postID newest first. An unknown post
// simply has no comments.
func (s *CommentService) ListComments(ctx context.Context, _ auth.Identity, postID uint) ([]*models.Comment, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return comments, nil
	}

	authorIDs := repository.UniqueKeys(comments, func(c *models.Comment) uint { return c.UserID })
	authors, err := s.userRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	for authorID, written := range repository.GroupBy(comments, func(c *models.Comment) uint { return c.UserID }) {
		author, ok := authors[authorID]
		if !ok {
			return nil, models.NewInternalError(fmt.Errorf("comment %d: author %d missing", written[0].ID, authorID))
		}
		for _, c := range written {
			c.User = author
		}
	}
	return comments, nil
}

func (s *CommentService) CreateComment(ctx context.Context, id auth.Identity, in CreateCommentInput) (*models.Comment, error) {
	if !id.IsAuthenticated() {
		return nil, models.NewUnauthorizedError(notAuthenticatedMessage)
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: content,
		UserID:  id.UserID(),
		PostID:  in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, id.UserID())
	if err != nil {
		return nil, err
	}
	comment.User = author

	publishEvent(ctx, s.publisher, models.FeedEvent{
		Type:      models.FeedEventCommentCreated,
		PostID:    comment.PostID,
		UserID:    comment.UserID,
		CommentID: comment.ID,
		At:        comment.CreatedAt,
	})
	return comment, nil
}
