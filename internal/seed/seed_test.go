package seed

import (
	"context"
	"testing"

	"feedgraph/internal/auth"
	"feedgraph/internal/models"
	"feedgraph/internal/repository"
	"feedgraph/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeeder_RunAndClear(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	s, err := NewSeeder(db, Options{Seed: 7, MaxDays: 10})
	require.NoError(t, err)

	res, err := s.Run(Counts{Users: 4, Posts: 6, MaxCommentsPerPost: 3, MaxLikesPerPost: 10})
	require.NoError(t, err)
	assert.Len(t, res.Users, 4)
	assert.Len(t, res.Posts, 6)

	var likes, comments int64
	require.NoError(t, db.Model(&models.Like{}).Count(&likes).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	assert.EqualValues(t, res.Likes, likes)
	assert.EqualValues(t, res.Comments, comments)
	assert.LessOrEqual(t, res.Likes, 6*4, "a user likes a post at most once")

	users, err := repository.NewUserRepository(db).GetByEmail(context.Background(), res.Users[0].Email)
	require.NoError(t, err)
	require.NotNil(t, users)
	assert.True(t, auth.VerifyPassword(DefaultPassword, users.Password))

	require.NoError(t, s.ClearAll())
	var left int64
	require.NoError(t, db.Model(&models.User{}).Count(&left).Error)
	assert.Zero(t, left)
}

func TestSeeder_RejectsEmptyRun(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	s, err := NewSeeder(db, Options{Seed: 1})
	require.NoError(t, err)

	_, err = s.Run(Counts{Users: 0, Posts: 3})
	assert.Error(t, err)
}

func TestFactory_DeterministicContent(t *testing.T) {
	a, err := NewFactory(testutil.NewSQLiteDB(t), Options{Seed: 42})
	require.NoError(t, err)
	ua, err := a.CreateUser()
	require.NoError(t, err)

	t.Run("same seed", func(t *testing.T) {
		b, err := NewFactory(testutil.NewSQLiteDB(t), Options{Seed: 42})
		require.NoError(t, err)
		ub, err := b.CreateUser()
		require.NoError(t, err)
		assert.Equal(t, ua.Name, ub.Name)
		assert.Equal(t, ua.Email, ub.Email)
	})
}
