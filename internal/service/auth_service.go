package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"brian-crafts/backend/config"
	"brian-crafts/backend/internal/dto"
	"brian-crafts/backend/internal/model"
	"brian-crafts/backend/internal/repository"
	"brian-crafts/backend/pkg/jwt"
)

// ── 认证模块业务错误 ──

var (
	ErrMissingIdentifier   = errors.New("邮箱或手机号至少填写一项")
	ErrInvalidOTP          = errors.New("验证码错误或已过期")
	ErrInvalidRefreshToken = errors.New("刷新令牌无效或已过期")
)

// OTPStore 时效性单次验证码存储 + Token 黑名单
// 生产实现为 Redis（pkg/redis.Client）
type OTPStore interface {
	SaveOTP(ctx context.Context, identifier, code string, ttl time.Duration) error
	ConsumeOTP(ctx context.Context, identifier, code string) (bool, error)
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthService 认证业务接口
type AuthService interface {
	// RequestOTP 生成并投递验证码（当前通过日志投递，对接短信/邮件网关后替换）
	RequestOTP(ctx context.Context, req *dto.OTPRequest) error
	// Login 校验并消费验证码，首次登录自动开通 member 账号，签发令牌对
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Refresh 用 Refresh Token 换取新令牌对，角色以用户当前状态为准
	Refresh(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	// Logout 将当前 Token 加入黑名单直至其自然过期
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

type authService struct {
	cfg      *config.Config
	repo     *repository.Repository
	jwtMgr   *jwt.Manager
	otpStore OTPStore
	logger   *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	otpStore OTPStore,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:      cfg,
		repo:     repo,
		jwtMgr:   jwtMgr,
		otpStore: otpStore,
		logger:   logger,
	}
}

func (s *authService) RequestOTP(ctx context.Context, req *dto.OTPRequest) error {
	identifier := normalizeIdentifier(req.Email, req.Phone)
	if identifier == "" {
		return ErrMissingIdentifier
	}

	code, err := generateOTP()
	if err != nil {
		s.logger.Error("生成验证码失败", zap.Error(err))
		return err
	}

	if err := s.otpStore.SaveOTP(ctx, identifier, code, s.cfg.Auth.OTPTTL); err != nil {
		s.logger.Error("存储验证码失败", zap.Error(err))
		return err
	}

	// 投递渠道暂为日志；对接网关后此行改为发送调用
	s.logger.Info("验证码已生成",
		zap.String("identifier", identifier),
		zap.String("code", code),
	)
	return nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	identifier := normalizeIdentifier(req.Email, req.Phone)
	if identifier == "" {
		return nil, ErrMissingIdentifier
	}

	// 1. 校验并消费验证码（单次使用）
	ok, err := s.otpStore.ConsumeOTP(ctx, identifier, req.OTP)
	if err != nil {
		s.logger.Error("校验验证码失败", zap.Error(err))
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidOTP
	}

	// 2. 查找用户；首次登录自动开通 member 账号
	user, err := s.findByIdentifier(ctx, req.Email, req.Phone)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询用户失败", zap.Error(err))
			return nil, err
		}
		user = &model.User{
			Name:   identifier,
			Email:  strings.ToLower(strings.TrimSpace(req.Email)),
			Phone:  strings.TrimSpace(req.Phone),
			Role:   model.RoleMember,
			Status: "active",
		}
		if err := s.repo.User.Create(ctx, user); err != nil {
			s.logger.Error("自动开通用户失败", zap.Error(err))
			return nil, err
		}
		s.logger.Info("首次登录自动开通账号",
			zap.String("user_id", user.UserID),
			zap.String("identifier", identifier),
		)
	}

	// 3. 签发令牌对
	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("签发 Access Token 失败", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("签发 Refresh Token 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

func (s *authService) Refresh(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	if claims.TokenType != "refresh" {
		return nil, ErrInvalidRefreshToken
	}

	// 重新读取用户，角色变更在刷新时生效
	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		s.logger.Error("刷新令牌时查询用户失败", zap.Error(err))
		return nil, err
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Role)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	return s.otpStore.BlacklistToken(ctx, jti, time.Until(expiresAt))
}

// ── helpers ──

func (s *authService) findByIdentifier(ctx context.Context, email, phone string) (*model.User, error) {
	if e := strings.ToLower(strings.TrimSpace(email)); e != "" {
		return s.repo.User.GetByEmail(ctx, e)
	}
	return s.repo.User.GetByPhone(ctx, strings.TrimSpace(phone))
}

func normalizeIdentifier(email, phone string) string {
	if e := strings.ToLower(strings.TrimSpace(email)); e != "" {
		return e
	}
	return strings.TrimSpace(phone)
}

// generateOTP 生成 6 位数字验证码（加密随机）
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
