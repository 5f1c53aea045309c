package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"math_edu_backend/internal/animation"
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/repository"
	"math_edu_backend/internal/testutil"
	"math_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomeworkService_CreateRequiresLesson(t *testing.T) {
	env := newTestEnv(t)
	lesson := testutil.CreateLesson(t, env.db, "Quadratics", 1, animation.TypeQuadratic, nil)

	hw, err := env.homework.Create(HomeworkInput{LessonID: lesson.ID, Title: " Roots ", DueDate: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, "Roots", hw.Title)
	require.NotNil(t, hw.Lesson)

	_, err = env.homework.Create(HomeworkInput{LessonID: model.GenerateUUID(), Title: "x", DueDate: time.Now()})
	assert.ErrorIs(t, err, util.ErrLessonNotFound)

	list, err := env.homework.List(lesson.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	updated, err := env.homework.Update(hw.ID, HomeworkInput{Title: "Roots 2", DueDate: time.Now().Add(2 * time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, "Roots 2", updated.Title)
	assert.Equal(t, lesson.ID, updated.LessonID)

	require.NoError(t, env.homework.Delete(hw.ID))
	assert.ErrorIs(t, env.homework.Delete(hw.ID), util.ErrHomeworkNotFound)
}

func TestHomeworkService_SubmitAndDetail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	lesson := testutil.CreateLesson(t, env.db, "Quadratics", 1, animation.TypeQuadratic, nil)
	hw := testutil.CreateHomework(t, env.db, lesson.ID, "Roots", time.Now().Add(24*time.Hour))
	_, student := testutil.CreateUser(t, env.db, "ana@example.com", "password1", model.RoleStudent, "Ana")

	detail, err := env.homework.Detail(student.ID, hw.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.Submission)
	assert.False(t, detail.Overdue)
	require.NotNil(t, detail.Homework.Lesson)

	_, err = env.homework.Submit(ctx, student.ID, hw.ID, "   \n\t")
	assert.ErrorIs(t, err, util.ErrEmptySubmission)

	first, err := env.homework.Submit(ctx, student.ID, hw.ID, "x = 2")
	require.NoError(t, err)
	second, err := env.homework.Submit(ctx, student.ID, hw.ID, "x = 2 or x = 3")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	detail, err = env.homework.Detail(student.ID, hw.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Submission)
	assert.Equal(t, "x = 2 or x = 3", detail.Submission.SubmissionText)
	assert.Nil(t, detail.Grade)

	_, err = env.homework.Submit(ctx, student.ID, model.GenerateUUID(), "answer")
	assert.ErrorIs(t, err, util.ErrHomeworkNotFound)

	assert.Equal(t, []string{EventSubmissionCreated, EventSubmissionCreated}, env.events.types())
}

func TestHomeworkService_OverdueSubmissionIsAccepted(t *testing.T) {
	env := newTestEnv(t)
	lesson := testutil.CreateLesson(t, env.db, "Quadratics", 1, animation.TypeQuadratic, nil)
	hw := testutil.CreateHomework(t, env.db, lesson.ID, "Late", time.Now().Add(-time.Hour))
	_, student := testutil.CreateUser(t, env.db, "ana@example.com", "password1", model.RoleStudent, "Ana")

	_, err := env.homework.Submit(context.Background(), student.ID, hw.ID, "late answer")
	require.NoError(t, err)

	detail, err := env.homework.Detail(student.ID, hw.ID)
	require.NoError(t, err)
	assert.True(t, detail.Overdue)
	assert.NotNil(t, detail.Submission)
}

func TestHomeworkService_UploadAttachmentKeepsText(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	lesson := testutil.CreateLesson(t, env.db, "Quadratics", 1, animation.TypeQuadratic, nil)
	hw := testutil.CreateHomework(t, env.db, lesson.ID, "Roots", time.Now().Add(time.Hour))
	_, student := testutil.CreateUser(t, env.db, "ana@example.com", "password1", model.RoleStudent, "Ana")

	_, err := env.homework.Submit(ctx, student.ID, hw.ID, "see attachment")
	require.NoError(t, err)

	content := []byte("worked solution: x = 2, x = 3\n")
	sub, err := env.homework.UploadAttachment(ctx, student.ID, hw.ID, "Solution.TXT", int64(len(content)), bytes.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, "see attachment", sub.SubmissionText)
	require.True(t, strings.HasPrefix(sub.FileURL, "/uploads/homework/"+hw.ID+"/"+student.ID+"/"))
	assert.True(t, strings.HasSuffix(sub.FileURL, ".txt"))

	stored, err := os.ReadFile(filepath.Join(env.cfg.Storage.LocalPath, strings.TrimPrefix(sub.FileURL, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, content, stored)

	// a later text submission keeps the file
	again, err := env.homework.Submit(ctx, student.ID, hw.ID, "final answer")
	require.NoError(t, err)
	assert.Equal(t, sub.FileURL, again.FileURL)
}

func TestHomeworkService_UploadAttachmentValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	lesson := testutil.CreateLesson(t, env.db, "Quadratics", 1, animation.TypeQuadratic, nil)
	hw := testutil.CreateHomework(t, env.db, lesson.ID, "Roots", time.Now().Add(time.Hour))
	_, student := testutil.CreateUser(t, env.db, "ana@example.com", "password1", model.RoleStudent, "Ana")

	exe := []byte("MZ\x90\x00\x03\x00\x00\x00")
	_, err := env.homework.UploadAttachment(ctx, student.ID, hw.ID, "run.exe", int64(len(exe)), bytes.NewReader(exe))
	assert.ErrorIs(t, err, util.ErrUnsupportedFileType)

	// allowed extension, disallowed content
	zip := []byte("PK\x03\x04\x14\x00\x00\x00\x08\x00")
	_, err = env.homework.UploadAttachment(ctx, student.ID, hw.ID, "photo.png", int64(len(zip)), bytes.NewReader(zip))
	assert.ErrorIs(t, err, util.ErrUnsupportedFileType)

	_, err = env.homework.UploadAttachment(ctx, student.ID, hw.ID, "big.txt", 2<<20, bytes.NewReader([]byte("x")))
	assert.ErrorIs(t, err, util.ErrFileTooLarge)
}

func TestHomeworkService_GradeAndListSubmissions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	algebra := testutil.CreateLesson(t, env.db, "Algebra", 1, animation.TypeQuadratic, nil)
	geometry := testutil.CreateLesson(t, env.db, "Geometry", 2, animation.TypeCircle, nil)
	hwA := testutil.CreateHomework(t, env.db, algebra.ID, "Roots", time.Now().Add(time.Hour))
	hwG := testutil.CreateHomework(t, env.db, geometry.ID, "Angles", time.Now().Add(time.Hour))
	_, admin := testutil.CreateUser(t, env.db, "admin@example.com", "password1", model.RoleAdmin, "Admin")
	_, ana := testutil.CreateUser(t, env.db, "ana@example.com", "password1", model.RoleStudent, "Ana")
	_, ben := testutil.CreateUser(t, env.db, "ben@example.com", "password1", model.RoleStudent, "Ben")

	subA, err := env.homework.Submit(ctx, ana.ID, hwA.ID, "x = 2")
	require.NoError(t, err)
	_, err = env.homework.Submit(ctx, ben.ID, hwG.ID, "30 degrees")
	require.NoError(t, err)

	byLesson, err := env.homework.ListSubmissions(repository.SubmissionFilter{LessonID: algebra.ID})
	require.NoError(t, err)
	require.Len(t, byLesson, 1)
	assert.Equal(t, ana.ID, byLesson[0].StudentID)

	byStudent, err := env.homework.ListSubmissions(repository.SubmissionFilter{StudentID: ben.ID})
	require.NoError(t, err)
	require.Len(t, byStudent, 1)
	assert.Equal(t, hwG.ID, byStudent[0].HomeworkID)

	for _, score := range []int{-1, 101} {
		_, err = env.homework.Grade(ctx, admin.ID, subA.ID, score, "")
		assert.ErrorIs(t, err, util.ErrInvalidScore)
	}
	_, err = env.homework.Grade(ctx, admin.ID, model.GenerateUUID(), 50, "")
	assert.ErrorIs(t, err, util.ErrSubmissionNotFound)

	g, err := env.homework.Grade(ctx, admin.ID, subA.ID, 60, "check the second root")
	require.NoError(t, err)
	regraded, err := env.homework.Grade(ctx, admin.ID, subA.ID, 100, "  perfect ")
	require.NoError(t, err)
	assert.Equal(t, g.ID, regraded.ID)
	assert.Equal(t, 100, regraded.Score)
	assert.Equal(t, "perfect", regraded.Feedback)
	assert.Equal(t, admin.ID, regraded.GradedBy)

	detail, err := env.homework.Detail(ana.ID, hwA.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Grade)
	assert.Equal(t, 100, detail.Grade.Score)

	assert.Contains(t, env.events.types(), EventSubmissionGraded)
}
