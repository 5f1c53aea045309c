package service

import (
	"context"
	"testing"

	"math_edu_backend/internal/animation"
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/testutil"
	"math_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressService_MarkCompleted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	lesson := testutil.CreateLesson(t, env.db, "Circles", 1, animation.TypeCircle, nil)
	_, student := testutil.CreateUser(t, env.db, "ana@example.com", "password1", model.RoleStudent, "Ana")

	before, err := env.progress.LessonProgress(student.ID, lesson.ID)
	require.NoError(t, err)
	assert.False(t, before.Completed)

	first, err := env.progress.MarkCompleted(ctx, student.ID, lesson.ID)
	require.NoError(t, err)
	second, err := env.progress.MarkCompleted(ctx, student.ID, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	after, err := env.progress.LessonProgress(student.ID, lesson.ID)
	require.NoError(t, err)
	assert.True(t, after.Completed)
	assert.NotNil(t, after.CompletedAt)

	assert.Equal(t, []string{EventLessonCompleted, EventLessonCompleted}, env.events.types())

	_, err = env.progress.MarkCompleted(ctx, student.ID, model.GenerateUUID())
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}

func TestProgressService_Dashboard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	lessons := []*model.Lesson{
		testutil.CreateLesson(t, env.db, "One", 1, animation.TypeQuadratic, nil),
		testutil.CreateLesson(t, env.db, "Two", 2, animation.TypeLinearSystem, nil),
		testutil.CreateLesson(t, env.db, "Three", 3, animation.TypeCircle, nil),
	}
	_, student := testutil.CreateUser(t, env.db, "ana@example.com", "password1", model.RoleStudent, "Ana")

	dash, err := env.progress.Dashboard(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, dash.ProgressPercent)
	assert.Equal(t, 3, dash.TotalLessons)

	_, err = env.progress.MarkCompleted(ctx, student.ID, lessons[0].ID)
	require.NoError(t, err)
	_, err = env.progress.MarkCompleted(ctx, student.ID, lessons[2].ID)
	require.NoError(t, err)

	dash, err = env.progress.Dashboard(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, dash.CompletedCount)
	assert.Equal(t, 67, dash.ProgressPercent)
	assert.Equal(t, "Ana", dash.Profile.FullName)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, Percent(0, 0))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 50, Percent(1, 2))
	assert.Equal(t, 100, Percent(4, 4))
}
