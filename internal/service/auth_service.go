package service

import (
	"context"
	"strings"
	"time"

	"math_edu_backend/internal/config"
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/repository"
	"math_edu_backend/internal/util"
	"math_edu_backend/pkg/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// NewAccount 注册或管理员创建学生时的输入
type NewAccount struct {
	Email      string
	Password   string
	FullName   string
	GradeLevel int
}

type AuthService struct {
	UserRepo    *repository.UserRepository
	ProfileRepo *repository.ProfileRepository
	Sessions    *SessionStore
	Cfg         *config.Config
	BcryptCost  int
}

func NewAuthService(userRepo *repository.UserRepository, profileRepo *repository.ProfileRepository, sessions *SessionStore, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:    userRepo,
		ProfileRepo: profileRepo,
		Sessions:    sessions,
		Cfg:         cfg,
		BcryptCost:  bcrypt.DefaultCost,
	}
}

// CreateAccount 创建用户和学生资料（同一事务），不签发令牌
func (s *AuthService) CreateAccount(in NewAccount) (*model.User, *model.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	_, err := s.UserRepo.FindByEmail(email)
	if err == nil {
		return nil, nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, errors.Wrap(err, "find user by email")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.BcryptCost)
	if err != nil {
		return nil, nil, errors.Wrap(err, "hash password")
	}

	user := &model.User{Email: email, Password: string(hashed)}
	profile := &model.Profile{
		Role:       model.RoleStudent,
		FullName:   strings.TrimSpace(in.FullName),
		GradeLevel: in.GradeLevel,
	}
	if err := s.UserRepo.CreateWithProfile(user, profile); err != nil {
		return nil, nil, errors.Wrap(err, "create account")
	}
	return user, profile, nil
}

// SignUp 自助注册只能得到学生账号，注册后直接登录
func (s *AuthService) SignUp(in NewAccount) (*model.Session, error) {
	user, profile, err := s.CreateAccount(in)
	if err != nil {
		return nil, err
	}
	return s.issue(user, profile)
}

func (s *AuthService) SignIn(email, password string) (*model.Session, error) {
	user, err := s.UserRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, "find user by email")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	profile, err := s.ProfileRepo.FindByID(user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProfileNotFound
		}
		return nil, errors.Wrap(err, "find profile")
	}

	now := time.Now()
	if err := s.UserRepo.UpdateLastLogin(user.ID, now); err != nil {
		logger.Log.Warn("Failed to update last login", zap.Error(err), zap.String("userId", user.ID))
	}
	user.LastLogin = &now

	return s.issue(user, profile)
}

func (s *AuthService) issue(user *model.User, profile *model.Profile) (*model.Session, error) {
	token, claims, err := util.GenerateJWT(user, profile.Role, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, errors.Wrap(err, "sign token")
	}
	return &model.Session{
		Token:       token,
		ExpiresAt:   claims.ExpiresAt.Time,
		User:        user,
		Profile:     profile,
		LandingPath: profile.Role.LandingPath(),
	}, nil
}

// SignOut 吊销当前令牌直到其自然过期
func (s *AuthService) SignOut(ctx context.Context, claims *util.Claims) error {
	if claims == nil {
		return nil
	}
	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	return s.Sessions.Revoke(ctx, claims.ID, ttl)
}

// Authenticate 解析令牌并确认未被吊销、资料仍然存在；角色以数据库为准
func (s *AuthService) Authenticate(ctx context.Context, token string) (*util.Claims, error) {
	claims, err := util.ParseJWT(token, s.Cfg.JWT.Secret)
	if err != nil {
		return nil, errors.Wrap(util.ErrInvalidCredentials, err.Error())
	}

	// 吊销列表查不到（Redis 中途断开）时放行，与启动时没有 Redis 的行为一致
	revoked, err := s.Sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		logger.Log.Warn("Revocation lookup failed, accepting token", zap.Error(err), zap.String("userId", claims.UserID))
	}
	if revoked {
		return nil, util.ErrSessionRevoked
	}

	profile, err := s.ProfileRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProfileNotFound
		}
		return nil, errors.Wrap(err, "find profile")
	}
	claims.Role = profile.Role
	return claims, nil
}

// Session 当前登录态；不返回令牌本身
func (s *AuthService) Session(claims *util.Claims) (*model.Session, error) {
	if claims == nil {
		return &model.Session{LandingPath: model.UserRole("").LandingPath()}, nil
	}
	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "find user")
	}
	profile, err := s.ProfileRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProfileNotFound
		}
		return nil, errors.Wrap(err, "find profile")
	}
	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return &model.Session{
		ExpiresAt:   expiresAt,
		User:        user,
		Profile:     profile,
		LandingPath: profile.Role.LandingPath(),
	}, nil
}
