package service

import (
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/repository"
	"math_edu_backend/internal/util"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// StudentDetail 管理端查看单个学生
type StudentDetail struct {
	Profile     *model.Profile             `json:"profile"`
	Email       string                     `json:"email"`
	Progress    []model.StudentProgress    `json:"progress"`
	Submissions []model.HomeworkSubmission `json:"submissions"`
	Attendance  []model.Attendance         `json:"attendance"`
}

type StudentService struct {
	ProfileRepo    *repository.ProfileRepository
	UserRepo       *repository.UserRepository
	ProgressRepo   *repository.ProgressRepository
	SubmissionRepo *repository.SubmissionRepository
	AttendanceRepo *repository.AttendanceRepository
	Auth           *AuthService
}

func NewStudentService(
	profileRepo *repository.ProfileRepository,
	userRepo *repository.UserRepository,
	progressRepo *repository.ProgressRepository,
	submissionRepo *repository.SubmissionRepository,
	attendanceRepo *repository.AttendanceRepository,
	auth *AuthService,
) *StudentService {
	return &StudentService{
		ProfileRepo:    profileRepo,
		UserRepo:       userRepo,
		ProgressRepo:   progressRepo,
		SubmissionRepo: submissionRepo,
		AttendanceRepo: attendanceRepo,
		Auth:           auth,
	}
}

func (s *StudentService) List() ([]model.Profile, error) {
	list, err := s.ProfileRepo.ListByRole(model.RoleStudent)
	if err != nil {
		return nil, errors.Wrap(err, "list students")
	}
	return list, nil
}

// Create 管理端开通学生账号
func (s *StudentService) Create(in NewAccount) (*model.Profile, error) {
	_, profile, err := s.Auth.CreateAccount(in)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *StudentService) Get(id string) (*StudentDetail, error) {
	profile, err := s.ProfileRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, errors.Wrap(err, "find student")
	}
	if profile.Role != model.RoleStudent {
		return nil, util.ErrStudentNotFound
	}

	detail := &StudentDetail{Profile: profile}
	if user, err := s.UserRepo.FindByID(id); err == nil {
		detail.Email = user.Email
	}
	if detail.Progress, err = s.ProgressRepo.ListByStudent(id); err != nil {
		return nil, errors.Wrap(err, "list progress")
	}
	if detail.Submissions, err = s.SubmissionRepo.List(repository.SubmissionFilter{StudentID: id}); err != nil {
		return nil, errors.Wrap(err, "list submissions")
	}
	if detail.Attendance, err = s.AttendanceRepo.ListByStudent(id); err != nil {
		return nil, errors.Wrap(err, "list attendance")
	}
	return detail, nil
}
