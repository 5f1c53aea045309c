package util

import (
	"sync"

	"math_edu_backend/internal/animation"
	"math_edu_backend/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators 给 gin 的 binding 注册自定义校验标签
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("animation_type", func(fl validator.FieldLevel) bool {
			return animation.IsKnownType(fl.Field().String())
		})
		_ = v.RegisterValidation("attendance_status", func(fl validator.FieldLevel) bool {
			return model.AttendanceStatus(fl.Field().String()).Valid()
		})
	})
}
