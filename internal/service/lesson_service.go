package service

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"math_edu_backend/internal/animation"
	"math_edu_backend/internal/config"
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/repository"
	"math_edu_backend/internal/util"
	"math_edu_backend/pkg/logger"
	"math_edu_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const lessonListCacheKey = "lessons:list"

// LessonInput 管理端创建或修改课程
type LessonInput struct {
	Title           string
	Content         string
	AnimationType   string
	AnimationConfig map[string]interface{}
	VideoURL        string
	LessonOrder     int
}

type LessonService struct {
	LessonRepo    *repository.LessonRepository
	ProgressRepo  *repository.ProgressRepository
	HomeworkRepo  *repository.HomeworkRepository
	Registry      *animation.Registry
	Redis         *redis.Client
	ExcerptLength int

	markdown goldmark.Markdown
	ttlMu    sync.RWMutex
	cacheTTL time.Duration
}

func NewLessonService(
	lessonRepo *repository.LessonRepository,
	progressRepo *repository.ProgressRepository,
	homeworkRepo *repository.HomeworkRepository,
	registry *animation.Registry,
	rdb *redis.Client,
	cfg *config.LessonsConfig,
) *LessonService {
	return &LessonService{
		LessonRepo:    lessonRepo,
		ProgressRepo:  progressRepo,
		HomeworkRepo:  homeworkRepo,
		Registry:      registry,
		Redis:         rdb,
		ExcerptLength: cfg.ExcerptLength,
		markdown:      goldmark.New(goldmark.WithExtensions(extension.GFM)),
		cacheTTL:      cfg.CacheTTL(),
	}
}

// SetCacheTTL 配置热更新时调用，0 表示关闭列表缓存
func (s *LessonService) SetCacheTTL(ttl time.Duration) {
	s.ttlMu.Lock()
	s.cacheTTL = ttl
	s.ttlMu.Unlock()
}

func (s *LessonService) ttl() time.Duration {
	s.ttlMu.RLock()
	defer s.ttlMu.RUnlock()
	return s.cacheTTL
}

// Render 把课程的 markdown 正文转成 HTML
func (s *LessonService) Render(content string) (string, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(content), &buf); err != nil {
		return "", errors.Wrap(err, "render lesson content")
	}
	return buf.String(), nil
}

// List 按 lesson_order 排序的全部课程，优先读 redis
func (s *LessonService) List(ctx context.Context) ([]model.Lesson, error) {
	if lessons, ok := s.cachedList(ctx); ok {
		return lessons, nil
	}

	lessons, err := s.LessonRepo.List()
	if err != nil {
		return nil, errors.Wrap(err, "list lessons")
	}
	s.storeList(ctx, lessons)
	return lessons, nil
}

func (s *LessonService) cachedList(ctx context.Context) ([]model.Lesson, bool) {
	if s.Redis == nil || s.ttl() <= 0 {
		return nil, false
	}
	data, err := s.Redis.Get(ctx, lessonListCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("Lesson cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var lessons []model.Lesson
	if err := json.Unmarshal(data, &lessons); err != nil {
		logger.Log.Warn("Lesson cache corrupted", zap.Error(err))
		return nil, false
	}
	return lessons, true
}

func (s *LessonService) storeList(ctx context.Context, lessons []model.Lesson) {
	ttl := s.ttl()
	if s.Redis == nil || ttl <= 0 {
		return
	}
	data, err := json.Marshal(lessons)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, lessonListCacheKey, data, ttl).Err(); err != nil {
		logger.Log.Warn("Lesson cache write failed", zap.Error(err))
	}
}

// InvalidateCache 管理端写入后清除列表缓存
func (s *LessonService) InvalidateCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, lessonListCacheKey).Err(); err != nil {
		logger.Log.Warn("Lesson cache invalidation failed", zap.Error(err))
	}
}

// ListForStudent 课程列表，附带摘要和该学生的完成标记
func (s *LessonService) ListForStudent(ctx context.Context, studentID string) ([]model.LessonSummary, error) {
	lessons, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := s.completedSet(studentID)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.LessonSummary, 0, len(lessons))
	for _, l := range lessons {
		summaries = append(summaries, model.LessonSummary{
			ID:            l.ID,
			Title:         l.Title,
			Excerpt:       util.Excerpt(l.Content, s.ExcerptLength),
			AnimationType: l.AnimationType,
			LessonOrder:   l.LessonOrder,
			HasVideo:      l.VideoURL != "",
			Completed:     completed[l.ID],
		})
	}
	return summaries, nil
}

func (s *LessonService) completedSet(studentID string) (map[string]bool, error) {
	set := map[string]bool{}
	if studentID == "" {
		return set, nil
	}
	progress, err := s.ProgressRepo.ListByStudent(studentID)
	if err != nil {
		return nil, errors.Wrap(err, "list progress")
	}
	for _, p := range progress {
		if p.Completed {
			set[p.LessonID] = true
		}
	}
	return set, nil
}

func (s *LessonService) Get(id string) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, errors.Wrap(err, "find lesson")
	}
	return lesson, nil
}

// Detail 课程页：渲染后的正文、初始可视化、完成状态和关联作业
func (s *LessonService) Detail(studentID, lessonID string) (*model.LessonDetail, error) {
	lesson, err := s.Get(lessonID)
	if err != nil {
		return nil, err
	}

	html, err := s.Render(lesson.Content)
	if err != nil {
		return nil, err
	}

	detail := &model.LessonDetail{Lesson: lesson, ContentHTML: html, Homework: []model.Homework{}}

	if lesson.AnimationType != "" {
		vis, err := s.evaluate(lesson.AnimationType, lesson.AnimationConfig, nil)
		if err != nil {
			// 存量配置有误时页面仍可打开，只是不显示图形
			logger.Log.Warn("Lesson visualization config invalid",
				zap.String("lessonId", lesson.ID), zap.Error(err))
		} else {
			detail.Visualization = vis
		}
	}

	if studentID != "" {
		progress, err := s.ProgressRepo.FindByStudentAndLesson(studentID, lessonID)
		if err == nil {
			detail.Completed = progress.Completed
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(err, "find progress")
		}
	}

	homework, err := s.HomeworkRepo.List(lessonID)
	if err != nil {
		return nil, errors.Wrap(err, "list homework")
	}
	if homework != nil {
		detail.Homework = homework
	}
	return detail, nil
}

// Evaluate 按课程配置加上调用方覆盖参数重新计算可视化
func (s *LessonService) Evaluate(lessonID string, overrides map[string]interface{}) (*animation.Result, error) {
	lesson, err := s.Get(lessonID)
	if err != nil {
		return nil, err
	}
	return s.evaluate(lesson.AnimationType, lesson.AnimationConfig, overrides)
}

func (s *LessonService) evaluate(animationType string, cfg datatypes.JSONMap, overrides map[string]interface{}) (*animation.Result, error) {
	res, err := s.Registry.Evaluate(animationType, map[string]interface{}(cfg), overrides)
	switch {
	case err != nil:
		monitoring.VisualizationEvaluations.WithLabelValues(animationType, "invalid").Inc()
		return nil, err
	case res.Placeholder:
		monitoring.VisualizationEvaluations.WithLabelValues(animationType, "placeholder").Inc()
	default:
		monitoring.VisualizationEvaluations.WithLabelValues(animationType, "ok").Inc()
	}
	return res, nil
}

func (s *LessonService) validate(in *LessonInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if in.AnimationType == "" {
		return nil
	}
	// 保存前试算一次，配置无效直接拒绝
	_, err := s.Registry.Evaluate(in.AnimationType, in.AnimationConfig, nil)
	return err
}

func (s *LessonService) Create(ctx context.Context, in LessonInput) (*model.Lesson, error) {
	if err := s.validate(&in); err != nil {
		return nil, err
	}
	lesson := &model.Lesson{
		Title:           in.Title,
		Content:         in.Content,
		AnimationType:   in.AnimationType,
		AnimationConfig: datatypes.JSONMap(in.AnimationConfig),
		VideoURL:        in.VideoURL,
		LessonOrder:     in.LessonOrder,
	}
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, errors.Wrap(err, "create lesson")
	}
	s.InvalidateCache(ctx)
	return lesson, nil
}

func (s *LessonService) Update(ctx context.Context, id string, in LessonInput) (*model.Lesson, error) {
	lesson, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(&in); err != nil {
		return nil, err
	}

	lesson.Title = in.Title
	lesson.Content = in.Content
	lesson.AnimationType = in.AnimationType
	lesson.AnimationConfig = datatypes.JSONMap(in.AnimationConfig)
	lesson.VideoURL = in.VideoURL
	lesson.LessonOrder = in.LessonOrder
	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, errors.Wrap(err, "update lesson")
	}
	s.InvalidateCache(ctx)
	return lesson, nil
}

// Delete 同时删除该课程的进度和作业
func (s *LessonService) Delete(ctx context.Context, id string) error {
	if err := s.LessonRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrLessonNotFound
		}
		return errors.Wrap(err, "delete lesson")
	}
	s.InvalidateCache(ctx)
	return nil
}
