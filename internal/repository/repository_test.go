package repository

import (
	"testing"
	"time"

	"math_edu_backend/internal/animation"
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_CreateWithProfile(t *testing.T) {
	db := testutil.NewDB(t)
	users := NewUserRepository(db)
	profiles := NewProfileRepository(db)

	user := &model.User{Email: "ana@example.com", Password: "hash"}
	profile := &model.Profile{Role: model.RoleStudent, FullName: "Ana", GradeLevel: 10}
	require.NoError(t, users.CreateWithProfile(user, profile))
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, user.ID, profile.ID)

	found, err := profiles.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", found.FullName)

	// duplicate email rolls back the whole account
	dup := &model.User{Email: "ana@example.com", Password: "hash"}
	err = users.CreateWithProfile(dup, &model.Profile{Role: model.RoleStudent, FullName: "Other"})
	require.Error(t, err)
	count, err := profiles.CountByRole(model.RoleStudent)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestLessonRepository_ListOrderAndDelete(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewLessonRepository(db)
	second := testutil.CreateLesson(t, db, "Second", 2, animation.TypeCircle, nil)
	first := testutil.CreateLesson(t, db, "First", 1, animation.TypeQuadratic, map[string]interface{}{"initialA": 1})
	_, student := testutil.CreateUser(t, db, "s@example.com", "password1", model.RoleStudent, "S")
	testutil.CreateHomework(t, db, first.ID, "HW", time.Now().Add(24*time.Hour))
	_, err := NewProgressRepository(db).MarkCompleted(student.ID, first.ID, time.Now())
	require.NoError(t, err)

	lessons, err := repo.List()
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, first.ID, lessons[0].ID)
	assert.Equal(t, second.ID, lessons[1].ID)
	assert.EqualValues(t, 1, lessons[0].AnimationConfig["initialA"])

	require.NoError(t, repo.Delete(first.ID))
	_, err = repo.FindByID(first.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	hw, err := NewHomeworkRepository(db).List(first.ID)
	require.NoError(t, err)
	assert.Empty(t, hw)
	progress, err := NewProgressRepository(db).ListByStudent(student.ID)
	require.NoError(t, err)
	assert.Empty(t, progress)

	assert.ErrorIs(t, repo.Delete(first.ID), gorm.ErrRecordNotFound)
}

func TestProgressRepository_MarkCompletedIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProgressRepository(db)
	lesson := testutil.CreateLesson(t, db, "L", 1, animation.TypeTrigonometry, nil)
	_, student := testutil.CreateUser(t, db, "s@example.com", "password1", model.RoleStudent, "S")

	first, err := repo.MarkCompleted(student.ID, lesson.ID, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	second, err := repo.MarkCompleted(student.ID, lesson.ID, time.Now())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Completed)
	require.NotNil(t, second.CompletedAt)

	all, err := repo.ListByStudent(student.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	count, err := repo.CountCompleted()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	stats, err := repo.CompletionByLesson()
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, lesson.ID, stats[0].LessonID)
	assert.EqualValues(t, 1, stats[0].Completed)
}

func TestSubmissionAndGradeRepositories(t *testing.T) {
	db := testutil.NewDB(t)
	subs := NewSubmissionRepository(db)
	grades := NewGradeRepository(db)
	lessonA := testutil.CreateLesson(t, db, "A", 1, animation.TypeQuadratic, nil)
	lessonB := testutil.CreateLesson(t, db, "B", 2, animation.TypeQuadratic, nil)
	hwA := testutil.CreateHomework(t, db, lessonA.ID, "HW A", time.Now().Add(time.Hour))
	hwB := testutil.CreateHomework(t, db, lessonB.ID, "HW B", time.Now().Add(time.Hour))
	_, ana := testutil.CreateUser(t, db, "ana@example.com", "password1", model.RoleStudent, "Ana")
	_, ben := testutil.CreateUser(t, db, "ben@example.com", "password1", model.RoleStudent, "Ben")

	first, err := subs.Upsert(&model.HomeworkSubmission{HomeworkID: hwA.ID, StudentID: ana.ID, SubmissionText: "x = 2", SubmittedAt: time.Now()})
	require.NoError(t, err)
	again, err := subs.Upsert(&model.HomeworkSubmission{HomeworkID: hwA.ID, StudentID: ana.ID, SubmissionText: "x = 2 or x = 3", SubmittedAt: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "x = 2 or x = 3", again.SubmissionText)

	_, err = subs.Upsert(&model.HomeworkSubmission{HomeworkID: hwB.ID, StudentID: ben.ID, SubmissionText: "done", SubmittedAt: time.Now()})
	require.NoError(t, err)

	byLesson, err := subs.List(SubmissionFilter{LessonID: lessonA.ID})
	require.NoError(t, err)
	require.Len(t, byLesson, 1)
	assert.Equal(t, ana.ID, byLesson[0].StudentID)
	require.NotNil(t, byLesson[0].Student)
	assert.Equal(t, "Ana", byLesson[0].Student.FullName)

	byStudent, err := subs.List(SubmissionFilter{StudentID: ben.ID})
	require.NoError(t, err)
	require.Len(t, byStudent, 1)
	assert.Equal(t, hwB.ID, byStudent[0].HomeworkID)

	all, err := subs.List(SubmissionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	g, err := grades.Upsert(&model.Grade{SubmissionID: again.ID, Score: 70, GradedAt: time.Now()})
	require.NoError(t, err)
	regraded, err := grades.Upsert(&model.Grade{SubmissionID: again.ID, Score: 90, Feedback: "good", GradedAt: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, g.ID, regraded.ID)
	assert.Equal(t, 90, regraded.Score)

	avg, err := grades.AverageScore()
	require.NoError(t, err)
	assert.InDelta(t, 90, avg, 0.001)

	withGrade, err := subs.FindByID(again.ID)
	require.NoError(t, err)
	require.NotNil(t, withGrade.Grade)
	assert.Equal(t, "good", withGrade.Grade.Feedback)
}

func TestGradeRepository_AverageWithoutGrades(t *testing.T) {
	db := testutil.NewDB(t)
	avg, err := NewGradeRepository(db).AverageScore()
	require.NoError(t, err)
	assert.Zero(t, avg)
}

func TestAttendanceRepository_UpsertAndCount(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAttendanceRepository(db)
	_, ana := testutil.CreateUser(t, db, "ana@example.com", "password1", model.RoleStudent, "Ana")
	_, ben := testutil.CreateUser(t, db, "ben@example.com", "password1", model.RoleStudent, "Ben")
	date := "2024-09-02"

	_, err := repo.Upsert(&model.Attendance{StudentID: ana.ID, Date: date, Status: model.AttendanceAbsent})
	require.NoError(t, err)
	updated, err := repo.Upsert(&model.Attendance{StudentID: ana.ID, Date: date, Status: model.AttendancePresent})
	require.NoError(t, err)
	assert.Equal(t, model.AttendancePresent, updated.Status)
	_, err = repo.Upsert(&model.Attendance{StudentID: ben.ID, Date: date, Status: model.AttendanceExcused})
	require.NoError(t, err)

	list, err := repo.ListByDate(date)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	counts, err := repo.CountByStatus(date)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"present": 1, "excused": 1}, counts)

	history, err := repo.ListByStudent(ana.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
