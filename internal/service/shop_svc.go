package service

import (
	"context"

	"market_dev_v1_202601/internal/api/dto"
	"market_dev_v1_202601/internal/apperr"
	"market_dev_v1_202601/internal/model"
	"market_dev_v1_202601/internal/repository"
)

// ==================== ShopService 店铺服务 ====================

// ShopService 店铺服务
type ShopService struct {
	shopRepo repository.ShopRepository
}

// NewShopService 创建店铺服务
func NewShopService(shopRepo repository.ShopRepository) *ShopService {
	return &ShopService{shopRepo: shopRepo}
}

// Create 供应商开店，每个供应商只能有一个店铺
// 新店铺默认下架（active=false），上架由店铺管理员自行切换
func (s *ShopService) Create(ctx context.Context, managerID int64, req *dto.CreateShopRequest) (*dto.ShopResp, error) {
	existing, err := s.shopRepo.GetByManagerID(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Duplicate("该供应商已有店铺")
	}

	shop := &model.Shop{
		Name:      req.Name,
		URL:       req.URL,
		Active:    false,
		ManagerID: managerID,
	}
	if err := s.shopRepo.Create(ctx, shop); err != nil {
		return nil, err
	}
	return s.toShopResp(shop), nil
}

// Get 获取店铺
func (s *ShopService) Get(ctx context.Context, id int64) (*dto.ShopResp, error) {
	shop, err := s.shopRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, apperr.NotFound("店铺")
	}
	return s.toShopResp(shop), nil
}

// GetMine 获取当前供应商的店铺
func (s *ShopService) GetMine(ctx context.Context, managerID int64) (*dto.ShopResp, error) {
	shop, err := s.shopRepo.GetByManagerID(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, apperr.NotFound("店铺")
	}
	return s.toShopResp(shop), nil
}

// List 店铺列表
func (s *ShopService) List(ctx context.Context, page, pageSize int) (*dto.ShopListResp, error) {
	shops, total, err := s.shopRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	data := make([]dto.ShopResp, 0, len(shops))
	for i := range shops {
		data = append(data, *s.toShopResp(&shops[i]))
	}
	return &dto.ShopListResp{
		Code:     200,
		Message:  "success",
		Data:     data,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Patch 修改店铺，只有店铺管理员本人（或 staff）可以操作
// Active 的切换就在这里：下架后全店报价在商品接口里立即不可见
func (s *ShopService) Patch(ctx context.Context, id int64, operatorID int64, isStaff bool, req *dto.PatchShopRequest) (*dto.ShopResp, error) {
	shop, err := s.shopRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, apperr.NotFound("店铺")
	}
	if shop.ManagerID != operatorID && !isStaff {
		return nil, apperr.Permission("只有店铺管理员可以修改店铺")
	}

	if req.Name != nil {
		shop.Name = *req.Name
	}
	if req.URL != nil {
		shop.URL = *req.URL
	}
	if req.Active != nil {
		shop.Active = *req.Active
	}

	if err := s.shopRepo.Update(ctx, shop); err != nil {
		return nil, err
	}
	return s.toShopResp(shop), nil
}

// RequireOwnShop 解析操作者自己的店铺，报价单提交前调用
func (s *ShopService) RequireOwnShop(ctx context.Context, managerID int64) (*model.Shop, error) {
	shop, err := s.shopRepo.GetByManagerID(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, apperr.NotFound("店铺")
	}
	return shop, nil
}

// toShopResp 转换为店铺 DTO
func (s *ShopService) toShopResp(shop *model.Shop) *dto.ShopResp {
	return &dto.ShopResp{
		ID:     shop.ID,
		Name:   shop.Name,
		URL:    shop.URL,
		Active: shop.Active,
	}
}
