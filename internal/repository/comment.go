package repository

import (
	"context"

	"feedgraph/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	CountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit("User", "Post").Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) CountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int, error) {
	counts, err := CountByForeignKey(ctx, r.db, &models.Comment{}, "post_id", postIDs)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return counts, nil
}
