package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"math_edu_backend/internal/animation"
	"math_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"lesson not found", errors.Wrap(util.ErrLessonNotFound, "get lesson"), http.StatusNotFound},
		{"student not found", util.ErrStudentNotFound, http.StatusNotFound},
		{"email taken", util.ErrEmailRegistered, http.StatusConflict},
		{"bad credentials", util.ErrInvalidCredentials, http.StatusUnauthorized},
		{"revoked", util.ErrSessionRevoked, http.StatusUnauthorized},
		{"permission", util.ErrPermissionDenied, http.StatusForbidden},
		{"too large", util.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"score", util.ErrInvalidScore, http.StatusBadRequest},
		{"date", util.ErrInvalidDate, http.StatusBadRequest},
		{"visualization param", &animation.ParamError{Param: "a", Reason: "must be between -5 and 5"}, http.StatusBadRequest},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			respondError(ctx, tt.err)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestPathID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Params = gin.Params{{Key: "id", Value: "../etc/passwd"}}
	_, ok := pathID(ctx, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	ctx, _ = gin.CreateTestContext(w)
	ctx.Params = gin.Params{{Key: "id", Value: "3f1c2a4e-8b7d-4c6e-9a1f-2b3c4d5e6f70"}}
	id, ok := pathID(ctx, "id")
	assert.True(t, ok)
	assert.Equal(t, "3f1c2a4e-8b7d-4c6e-9a1f-2b3c4d5e6f70", id)
}
