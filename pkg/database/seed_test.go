package database_test

import (
	"testing"

	"math_edu_backend/internal/animation"
	"math_edu_backend/internal/config"
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/testutil"
	"math_edu_backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLessonsEvaluate(t *testing.T) {
	reg := animation.NewRegistry()
	for _, l := range database.DefaultLessons() {
		t.Run(l.Title, func(t *testing.T) {
			assert.True(t, animation.IsKnownType(l.AnimationType))
			_, err := reg.Evaluate(l.AnimationType, l.AnimationConfig, nil)
			assert.NoError(t, err)
		})
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	cfg := &config.SeedConfig{AdminEmail: "admin@example.com", AdminPassword: "admin-password"}

	require.NoError(t, database.Seed(db, cfg))
	require.NoError(t, database.Seed(db, cfg))

	var users, admins, lessons int64
	db.Model(&model.User{}).Count(&users)
	db.Model(&model.Profile{}).Where("role = ?", model.RoleAdmin).Count(&admins)
	db.Model(&model.Lesson{}).Count(&lessons)
	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(1), admins)
	assert.Equal(t, int64(len(database.DefaultLessons())), lessons)
}

func TestSeedWithoutAdmin(t *testing.T) {
	db := testutil.NewDB(t)
	require.NoError(t, database.Seed(db, nil))

	var users int64
	db.Model(&model.User{}).Count(&users)
	assert.Zero(t, users)
}
