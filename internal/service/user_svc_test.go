package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"market_dev_v1_202601/internal/api/dto"
	"market_dev_v1_202601/internal/apperr"
	"market_dev_v1_202601/internal/model"
	"market_dev_v1_202601/internal/repository"
)

func newTestUserService(t *testing.T) (*UserService, *gorm.DB) {
	db := setupServiceTestDB(t)
	svc := NewUserService(
		repository.NewUserRepository(db),
		repository.NewCartRepository(db),
	)
	return svc, db
}

func registerReq(email, kind string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:    email,
		Password: "password123",
		FullName: "测试用户",
		Kind:     kind,
	}
}

// ==================== 注册测试 ====================

func TestUserService_Register_BuyerGetsCart(t *testing.T) {
	svc, db := newTestUserService(t)

	info, err := svc.Register(context.Background(), registerReq("buyer@example.com", model.UserKindBuyer))
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	var cartCount int64
	db.Model(&model.Cart{}).Where("user_id = ?", info.ID).Count(&cartCount)
	if cartCount != 1 {
		t.Errorf("采购方注册后购物车数量 = %d, want 1", cartCount)
	}

	// 密码不能明文落库
	var user model.User
	db.First(&user, info.ID)
	if user.Password == "password123" {
		t.Error("密码未加密")
	}
}

func TestUserService_Register_SupplierNoCart(t *testing.T) {
	svc, db := newTestUserService(t)

	info, err := svc.Register(context.Background(), registerReq("supplier@example.com", model.UserKindSupplier))
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	var cartCount int64
	db.Model(&model.Cart{}).Where("user_id = ?", info.ID).Count(&cartCount)
	if cartCount != 0 {
		t.Errorf("供应商不应有购物车, got %d", cartCount)
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq("dup@example.com", model.UserKindBuyer)); err != nil {
		t.Fatalf("第一次 Register() error = %v", err)
	}

	_, err := svc.Register(ctx, registerReq("dup@example.com", model.UserKindSupplier))
	if apperr.KindOf(err) != apperr.KindDuplicate {
		t.Errorf("Kind = %s, want %s", apperr.KindOf(err), apperr.KindDuplicate)
	}
}

// ==================== 登录测试 ====================

func TestUserService_Login(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq("login@example.com", model.UserKindBuyer)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "login@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("Token 为空")
	}
	if resp.User.Email != "login@example.com" {
		t.Errorf("User.Email = %s", resp.User.Email)
	}
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq("wrong@example.com", model.UserKindBuyer)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := svc.Login(ctx, &dto.LoginRequest{Email: "wrong@example.com", Password: "bad-password"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestUserService_Refresh(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq("refresh@example.com", model.UserKindBuyer)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "refresh@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	// Access Token 不能当 Refresh Token 用
	if _, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: login.AccessToken}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}

	resp, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("刷新后 AccessToken 为空")
	}
}
