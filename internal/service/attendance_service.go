package service

import (
	"context"

	"math_edu_backend/internal/model"
	"math_edu_backend/internal/repository"
	"math_edu_backend/internal/util"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type AttendanceService struct {
	AttendanceRepo *repository.AttendanceRepository
	ProfileRepo    *repository.ProfileRepository
	Events         EventPublisher
}

func NewAttendanceService(attendanceRepo *repository.AttendanceRepository, profileRepo *repository.ProfileRepository, events EventPublisher) *AttendanceService {
	return &AttendanceService{
		AttendanceRepo: attendanceRepo,
		ProfileRepo:    profileRepo,
		Events:         events,
	}
}

// ForDate 某天的点名表：所有学生，未点名的 Marked 为 false。date 为空时取今天
func (s *AttendanceService) ForDate(date string) ([]model.AttendanceEntry, string, error) {
	day, err := util.ParseDate(date)
	if err != nil {
		return nil, "", err
	}

	students, err := s.ProfileRepo.ListByRole(model.RoleStudent)
	if err != nil {
		return nil, "", errors.Wrap(err, "list students")
	}
	records, err := s.AttendanceRepo.ListByDate(day)
	if err != nil {
		return nil, "", errors.Wrap(err, "list attendance")
	}

	byStudent := make(map[string]model.AttendanceStatus, len(records))
	for _, r := range records {
		byStudent[r.StudentID] = r.Status
	}

	entries := make([]model.AttendanceEntry, 0, len(students))
	for i := range students {
		status, marked := byStudent[students[i].ID]
		entries = append(entries, model.AttendanceEntry{
			Student: &students[i],
			Date:    day,
			Status:  status,
			Marked:  marked,
		})
	}
	return entries, day, nil
}

// Mark 以 (学生, 日期) 为键写入点名状态
func (s *AttendanceService) Mark(ctx context.Context, markedBy, studentID, date string, status model.AttendanceStatus) (*model.Attendance, error) {
	if !status.Valid() {
		return nil, util.ErrInvalidAttendance
	}
	day, err := util.ParseDate(date)
	if err != nil {
		return nil, err
	}

	student, err := s.ProfileRepo.FindByID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, errors.Wrap(err, "find student")
	}
	if student.Role != model.RoleStudent {
		return nil, util.ErrStudentNotFound
	}

	record, err := s.AttendanceRepo.Upsert(&model.Attendance{
		StudentID: studentID,
		Date:      day,
		Status:    status,
		MarkedBy:  markedBy,
	})
	if err != nil {
		return nil, errors.Wrap(err, "save attendance")
	}

	if s.Events != nil {
		s.Events.Publish(ctx, EventAttendanceMarked, map[string]interface{}{
			"studentId":   studentID,
			"studentName": student.FullName,
			"date":        day,
			"status":      status,
		})
	}
	return record, nil
}

// History 单个学生的全部点名记录
func (s *AttendanceService) History(studentID string) ([]model.Attendance, error) {
	if _, err := s.ProfileRepo.FindByID(studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, errors.Wrap(err, "find student")
	}
	list, err := s.AttendanceRepo.ListByStudent(studentID)
	if err != nil {
		return nil, errors.Wrap(err, "list attendance")
	}
	return list, nil
}
