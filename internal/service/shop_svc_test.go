package service

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"market_dev_v1_202601/internal/api/dto"
	"market_dev_v1_202601/internal/apperr"
	"market_dev_v1_202601/internal/model"
	"market_dev_v1_202601/internal/repository"
)

func newTestShopService(t *testing.T) (*ShopService, *gorm.DB) {
	db := setupServiceTestDB(t)
	return NewShopService(repository.NewShopRepository(db)), db
}

func TestShopService_Create(t *testing.T) {
	svc, db := newTestShopService(t)

	supplier := &model.User{Email: "supplier@example.com", Password: "x", Kind: model.UserKindSupplier}
	db.Create(supplier)

	resp, err := svc.Create(context.Background(), supplier.ID, &dto.CreateShopRequest{
		Name: "新店铺",
		URL:  "https://shop.example.com",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if resp.Active {
		t.Error("新店铺应默认下架")
	}
}

func TestShopService_Create_SecondShopFails(t *testing.T) {
	svc, db := newTestShopService(t)
	ctx := context.Background()

	supplier := &model.User{Email: "supplier@example.com", Password: "x", Kind: model.UserKindSupplier}
	db.Create(supplier)

	if _, err := svc.Create(ctx, supplier.ID, &dto.CreateShopRequest{Name: "店铺一", URL: "https://a.example.com"}); err != nil {
		t.Fatalf("第一次 Create() error = %v", err)
	}

	_, err := svc.Create(ctx, supplier.ID, &dto.CreateShopRequest{Name: "店铺二", URL: "https://b.example.com"})
	if apperr.KindOf(err) != apperr.KindDuplicate {
		t.Errorf("Kind = %s, want %s", apperr.KindOf(err), apperr.KindDuplicate)
	}
}

func TestShopService_Patch_OwnerOnly(t *testing.T) {
	svc, db := newTestShopService(t)
	ctx := context.Background()

	supplier := &model.User{Email: "supplier@example.com", Password: "x", Kind: model.UserKindSupplier}
	db.Create(supplier)
	shop := &model.Shop{Name: "店铺", URL: "https://a.example.com", ManagerID: supplier.ID}
	db.Create(shop)

	other := &model.User{Email: "other@example.com", Password: "x", Kind: model.UserKindSupplier}
	db.Create(other)

	active := true
	_, err := svc.Patch(ctx, shop.ID, other.ID, false, &dto.PatchShopRequest{Active: &active})
	if apperr.KindOf(err) != apperr.KindPermission {
		t.Errorf("Kind = %s, want %s", apperr.KindOf(err), apperr.KindPermission)
	}

	// 管理员本人可以切换上架
	resp, err := svc.Patch(ctx, shop.ID, supplier.ID, false, &dto.PatchShopRequest{Active: &active})
	if err != nil {
		t.Fatalf("Patch() error = %v", err)
	}
	if !resp.Active {
		t.Error("上架未生效")
	}

	// staff 也可以
	inactive := false
	if _, err := svc.Patch(ctx, shop.ID, other.ID, true, &dto.PatchShopRequest{Active: &inactive}); err != nil {
		t.Errorf("staff Patch() error = %v", err)
	}
}
