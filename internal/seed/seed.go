package seed

import (
	"fmt"
	"log/slog"

	"feedgraph/internal/middleware"
	"feedgraph/internal/models"

	"gorm.io/gorm"
)

// Counts describes how much data Run generates.
type Counts struct {
	Users int
	Posts int
	// MaxCommentsPerPost and MaxLikesPerPost bound per-post engagement.
	MaxCommentsPerPost int
	MaxLikesPerPost    int
}

// Result reports what Run created.
type Result struct {
	Users    []*models.User
	Posts    []*models.Post
	Comments int
	Likes    int
}

// Seeder populates a database through a Factory.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

func NewSeeder(db *gorm.DB, opts Options) (*Seeder, error) {
	f, err := NewFactory(db, opts)
	if err != nil {
		return nil, err
	}
	return &Seeder{db: db, factory: f}, nil
}

// ClearAll deletes every feed row, children first.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"comments", "likes", "posts", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	middleware.Logger.Info("seed: cleared feed tables")
	return nil
}

// Run creates users, then posts by random authors, then comments and likes.
// A user likes a given post at most once.
func (s *Seeder) Run(c Counts) (*Result, error) {
	if c.Users <= 0 {
		return nil, fmt.Errorf("seed: need at least one user, got %d", c.Users)
	}
	if c.MaxCommentsPerPost < 0 || c.MaxLikesPerPost < 0 {
		return nil, fmt.Errorf("seed: per-post limits must not be negative")
	}

	f := s.factory
	res := &Result{}

	for i := 0; i < c.Users; i++ {
		u, err := f.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		res.Users = append(res.Users, u)
	}

	for i := 0; i < c.Posts; i++ {
		author := res.Users[f.rng.Intn(len(res.Users))]
		p, err := f.CreatePost(author)
		if err != nil {
			return nil, fmt.Errorf("create post: %w", err)
		}
		res.Posts = append(res.Posts, p)
	}

	for _, p := range res.Posts {
		if c.MaxCommentsPerPost > 0 {
			for n := f.rng.Intn(c.MaxCommentsPerPost + 1); n > 0; n-- {
				commenter := res.Users[f.rng.Intn(len(res.Users))]
				if _, err := f.CreateComment(commenter, p); err != nil {
					return nil, fmt.Errorf("create comment: %w", err)
				}
				res.Comments++
			}
		}

		likes := 0
		if c.MaxLikesPerPost > 0 {
			likes = f.rng.Intn(c.MaxLikesPerPost + 1)
		}
		if likes > len(res.Users) {
			likes = len(res.Users)
		}
		for _, idx := range f.rng.Perm(len(res.Users))[:likes] {
			if err := f.CreateLike(res.Users[idx], p); err != nil {
				return nil, fmt.Errorf("create like: %w", err)
			}
			res.Likes++
		}
	}

	middleware.Logger.Info("seed: done",
		slog.Int("users", len(res.Users)),
		slog.Int("posts", len(res.Posts)),
		slog.Int("comments", res.Comments),
		slog.Int("likes", res.Likes),
	)
	return res, nil
}
