package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"math_edu_backend/internal/animation"
	"math_edu_backend/internal/config"
	"math_edu_backend/internal/repository"
	"math_edu_backend/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret-with-at-least-32-characters"

type recordingPublisher struct {
	mu     sync.Mutex
	events []LiveEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, eventType string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, LiveEvent{Type: eventType, Data: data, At: time.Now()})
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}

type testEnv struct {
	db         *gorm.DB
	rdb        *redis.Client
	mr         *miniredis.Miniredis
	cfg        *config.Config
	events     *recordingPublisher
	auth       *AuthService
	lessons    *LessonService
	progress   *ProgressService
	homework   *HomeworkService
	attendance *AttendanceService
	students   *StudentService
	analytics  *AnalyticsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewDB(t)
	rdb, mr := testutil.NewRedis(t)
	cfg := &config.Config{
		JWT:     config.JWTConfig{Secret: testSecret, ExpireTime: time.Hour},
		Storage: config.StorageConfig{Type: "local", LocalPath: t.TempDir(), MaxUploadMB: 1},
		Lessons: config.LessonsConfig{CacheTTLSeconds: 60, ExcerptLength: 20},
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	homeworkRepo := repository.NewHomeworkRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)

	events := &recordingPublisher{}
	auth := NewAuthService(userRepo, profileRepo, NewSessionStore(rdb), cfg)
	auth.BcryptCost = bcrypt.MinCost
	lessons := NewLessonService(lessonRepo, progressRepo, homeworkRepo, animation.NewRegistry(), rdb, &cfg.Lessons)

	return &testEnv{
		db:         db,
		rdb:        rdb,
		mr:         mr,
		cfg:        cfg,
		events:     events,
		auth:       auth,
		lessons:    lessons,
		progress:   NewProgressService(progressRepo, profileRepo, lessons, events),
		homework:   NewHomeworkService(homeworkRepo, submissionRepo, gradeRepo, profileRepo, lessons, NewStorageService(&cfg.Storage), events, &cfg.Storage),
		attendance: NewAttendanceService(attendanceRepo, profileRepo, events),
		students:   NewStudentService(profileRepo, userRepo, progressRepo, submissionRepo, attendanceRepo, auth),
		analytics:  NewAnalyticsService(profileRepo, lessonRepo, homeworkRepo, progressRepo, submissionRepo, gradeRepo, attendanceRepo),
	}
}
