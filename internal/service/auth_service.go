package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dujiao-next/storefront/internal/authz"
	"github.com/dujiao-next/storefront/internal/cache"
	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// AuthService 后台员工认证服务
type AuthService struct {
	cfg       *config.Config
	adminRepo repository.AdminRepository
	authz     *authz.Service
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, adminRepo repository.AdminRepository, authzService *authz.Service) *AuthService {
	return &AuthService{
		cfg:       cfg,
		adminRepo: adminRepo,
		authz:     authzService,
	}
}

// JWTClaims 员工 JWT 声明
type JWTClaims struct {
	AdminID      uint   `json:"admin_id"`
	Username     string `json:"username"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// StaffInput 创建员工输入
type StaffInput struct {
	Username string
	Password string
	Roles    []string
}

// HashPassword 使用 bcrypt 加密密码
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// GenerateJWT 生成员工 JWT Token
func (s *AuthService) GenerateJWT(admin *models.Admin) (string, time.Time, error) {
	expireHours := s.cfg.JWT.ExpireHours
	if expireHours <= 0 {
		expireHours = 24
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(expireHours) * time.Hour)
	claims := JWTClaims{
		AdminID:      admin.ID,
		Username:     admin.Username,
		TokenVersion: admin.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT 解析员工 JWT Token
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &JWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.AdminID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Login 员工登录
func (s *AuthService) Login(username, password string) (*models.Admin, string, time.Time, error) {
	admin, err := s.adminRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if admin == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(admin)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	admin.LastLoginAt = &now
	if err := s.adminRepo.Update(admin); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetAdminAuthState(context.Background(), admin.ID, adminAuthState(admin))
	return admin, token, expiresAt, nil
}

// GetAdmin 获取员工，员工鉴权缓存未命中时回源使用
func (s *AuthService) GetAdmin(id uint) (*models.Admin, error) {
	return s.adminRepo.GetByID(id)
}

// CreateStaff 创建员工并绑定角色
func (s *AuthService) CreateStaff(input StaffInput) (*models.Admin, []string, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || strings.EqualFold(username, defaultAdminUsername) {
		return nil, nil, ErrAdminTargetInvalid
	}
	if err := validatePassword(s.cfg.Security.PasswordMinLength, input.Password); err != nil {
		return nil, nil, err
	}
	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, nil, err
	}
	admin := &models.Admin{Username: username, PasswordHash: hash}
	if err := s.adminRepo.Create(admin); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, ErrAdminTargetInvalid
		}
		return nil, nil, err
	}
	if s.authz == nil || len(input.Roles) == 0 {
		return admin, nil, nil
	}
	if err := s.authz.SetAdminRoles(admin.ID, input.Roles); err != nil {
		return nil, nil, err
	}
	roles, err := s.authz.GetAdminRoles(admin.ID)
	if err != nil {
		return nil, nil, err
	}
	logger.Infow("staff_created", "admin_id", admin.ID, "username", admin.Username, "roles", roles)
	return admin, roles, nil
}

// EnsureDefaultAdmin 没有任何员工时创建默认超级管理员
func (s *AuthService) EnsureDefaultAdmin(username, password string) error {
	count, err := s.adminRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if strings.TrimSpace(username) == "" {
		username = defaultAdminUsername
	}
	if password == "" {
		password = defaultAdminPassword
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	admin := &models.Admin{
		Username:     strings.TrimSpace(username),
		PasswordHash: hash,
		IsSuper:      true,
	}
	if err := s.adminRepo.Create(admin); err != nil {
		return err
	}
	if password == defaultAdminPassword {
		logger.Warnw("default_admin_created_with_default_password", "username", admin.Username)
	} else {
		logger.Warnw("default_admin_created", "username", admin.Username, "password_hidden", true)
	}
	return nil
}

func adminAuthState(admin *models.Admin) cache.AuthState {
	return cache.AuthState{
		Status:       "active",
		TokenVersion: admin.TokenVersion,
		IsSuper:      admin.IsSuper,
	}
}
