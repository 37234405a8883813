package repository

import (
	"context"

	"feedgraph/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines persistence operations for likes.
type LikeRepository interface {
	Exists(ctx context.Context, postID, userID uint) (bool, error)
	Create(ctx context.Context, like *models.Like) error
	CountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Exists(ctx context.Context, postID, userID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&n).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return n > 0, nil
}

// Create inserts like. The (post_id, user_id) unique index is the
// authoritative guard against double likes.
func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	if err := r.db.WithContext(ctx).Omit("User", "Post").Create(like).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Post already liked")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *likeRepository) CountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int, error) {
	counts, err := CountByForeignKey(ctx, r.db, &models.Like{}, "post_id", postIDs)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return counts, nil
}
