package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"market_dev_v1_202601/internal/api/dto"
	"market_dev_v1_202601/internal/apperr"
	"market_dev_v1_202601/internal/middleware"
	"market_dev_v1_202601/internal/model"
	"market_dev_v1_202601/internal/repository"
)

// ==================== UserService 用户服务 ====================

// UserService 用户服务
type UserService struct {
	userRepo repository.UserRepository
	cartRepo repository.CartRepository
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository, cartRepo repository.CartRepository) *UserService {
	return &UserService{userRepo: userRepo, cartRepo: cartRepo}
}

// ==================== 注册 / 登录 ====================

// Register 用户注册
// 采购方注册时顺带建好购物车，第一次加购不用再建
func (s *UserService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserInfo, error) {
	// 检查邮箱是否已注册
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Duplicate("邮箱已注册")
	}

	// 加密密码
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// 创建用户
	user := &model.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		FullName: req.FullName,
		Company:  req.Company,
		Position: req.Position,
		Kind:     req.Kind,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if user.IsBuyer() {
		if err := s.cartRepo.Create(ctx, &model.Cart{UserID: user.ID}); err != nil {
			return nil, err
		}
	}

	return s.toUserInfo(user), nil
}

// Login 用户登录
func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	// 查找用户
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	// 检查状态
	if !user.IsActive {
		return nil, ErrUserDisabled
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 生成 Token
	accessToken, refreshToken, err := middleware.GenerateTokenPair(user.ID, user.Email, user.Role())
	if err != nil {
		return nil, err
	}

	cfg := middleware.GetJWTConfig()
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(cfg.AccessTokenTTL),
		User:         *s.toUserInfo(user),
	}, nil
}

// Refresh 刷新 Token
func (s *UserService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.LoginResponse, error) {
	// 解析 Refresh Token
	claims, err := middleware.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	// 验证是否为 Refresh Token
	if claims.Subject != "refresh" {
		return nil, ErrInvalidToken
	}

	// 获取用户信息（确保用户仍然有效）
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrUserDisabled
	}

	// 生成新 Token
	accessToken, refreshToken, err := middleware.GenerateTokenPair(user.ID, user.Email, user.Role())
	if err != nil {
		return nil, err
	}

	cfg := middleware.GetJWTConfig()
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(cfg.AccessTokenTTL),
		User:         *s.toUserInfo(user),
	}, nil
}

// GetProfile 获取当前用户信息
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("用户")
	}
	return s.toUserInfo(user), nil
}

// toUserInfo 转换为用户信息 DTO
func (s *UserService) toUserInfo(user *model.User) *dto.UserInfo {
	info := &dto.UserInfo{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Company:  user.Company,
		Position: user.Position,
		Kind:     user.Kind,
		IsStaff:  user.IsStaff,
	}
	if user.Shop != nil {
		info.ShopID = user.Shop.ID
	}
	return info
}

// ==================== 服务错误 ====================

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUserDisabled       = errors.New("用户已被禁用")
	ErrInvalidToken       = errors.New("token 无效")
)
