// Package seed creates demo data for development databases and tests.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"feedgraph/internal/auth"
	"feedgraph/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded user can log in with.
const DefaultPassword = "password123"

// Options tune generated content.
type Options struct {
	// Seed makes generation deterministic. Zero uses the current time.
	Seed int64
	// MaxDays bounds how far back created_at timestamps are spread.
	MaxDays int
}

// Factory builds domain entities and persists them.
type Factory struct {
	db     *gorm.DB
	opts   Options
	faker  *gofakeit.Faker
	rng    *rand.Rand
	hashed string
	serial int
}

// NewFactory creates a Factory bound to db. The default password is hashed
// once and shared by every generated user.
func NewFactory(db *gorm.DB, opts Options) (*Factory, error) {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = 30
	}

	hashed, err := auth.HashPassword(DefaultPassword)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	return &Factory{
		db:     db,
		opts:   opts,
		faker:  gofakeit.New(opts.Seed),
		rng:    rand.New(rand.NewSource(opts.Seed)),
		hashed: hashed,
	}, nil
}

// pastTime returns a timestamp within the configured window.
func (f *Factory) pastTime() time.Time {
	back := time.Duration(f.rng.Int63n(int64(f.opts.MaxDays) * int64(24*time.Hour)))
	return time.Now().Add(-back).Truncate(time.Second)
}

// CreateUser persists a generated user. Optional overrides run before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	f.serial++
	user := &models.User{
		Name:      f.faker.Name(),
		Email:     strings.ToLower(fmt.Sprintf("%s.%d@example.com", f.faker.Username(), f.serial)),
		Password:  f.hashed,
		CreatedAt: f.pastTime(),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost persists a generated post authored by user.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		Content:   f.faker.Paragraph(1, 3, 12, " "),
		UserID:    user.ID,
		CreatedAt: f.pastTime(),
	}
	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Omit("User").Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a generated comment by user on post.
func (f *Factory) CreateComment(user *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content:   f.faker.Sentence(f.faker.Number(4, 16)),
		PostID:    post.ID,
		UserID:    user.ID,
		CreatedAt: post.CreatedAt.Add(time.Duration(f.rng.Intn(48*60)) * time.Minute),
	}
	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Omit("User", "Post").Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike records that user likes post.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	like := &models.Like{PostID: post.ID, UserID: user.ID}
	return f.db.Omit("User", "Post").Create(like).Error
}
