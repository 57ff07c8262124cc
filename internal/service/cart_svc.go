package service

import (
	"context"

	"market_dev_v1_202601/internal/api/dto"
	"market_dev_v1_202601/internal/apperr"
	"market_dev_v1_202601/internal/model"
	"market_dev_v1_202601/internal/repository"
)

// ==================== CartService 购物车服务 ====================

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	catalogRepo repository.CatalogRepository
	contactRepo repository.ContactRepository
}

// NewCartService 创建购物车服务
func NewCartService(
	cartRepo repository.CartRepository,
	catalogRepo repository.CatalogRepository,
	contactRepo repository.ContactRepository,
) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		catalogRepo: catalogRepo,
		contactRepo: contactRepo,
	}
}

// ==================== 购物车 ====================

// Create 创建购物车，每个采购方只能有一个
func (s *CartService) Create(ctx context.Context, userID int64) (*dto.CartResp, error) {
	existing, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Duplicate("购物车已存在")
	}

	cart := &model.Cart{UserID: userID}
	if err := s.cartRepo.Create(ctx, cart); err != nil {
		return nil, err
	}
	return s.toCartResp(cart), nil
}

// Get 获取当前用户的购物车
func (s *CartService) Get(ctx context.Context, userID int64) (*dto.CartResp, error) {
	cart, err := s.requireCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toCartResp(cart), nil
}

// Patch 修改购物车，目前只支持设置/清除联系方式
// 联系方式必须属于购物车主人
func (s *CartService) Patch(ctx context.Context, userID int64, req *dto.PatchCartRequest) (*dto.CartResp, error) {
	cart, err := s.requireCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.ContactID != nil {
		contact, err := s.contactRepo.GetByID(ctx, *req.ContactID)
		if err != nil {
			return nil, err
		}
		if contact == nil {
			return nil, apperr.NotFound("联系方式")
		}
		if contact.UserID != userID {
			return nil, apperr.Permission("不能使用他人的联系方式")
		}
	}

	if err := s.cartRepo.SetContact(ctx, cart.ID, req.ContactID); err != nil {
		return nil, err
	}

	cart, err = s.cartRepo.GetByID(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	return s.toCartResp(cart), nil
}

// ==================== 行项目 ====================

// AddItem 添加行项目
// 同一报价只能出现一行；数量不能超过报价库存
func (s *CartService) AddItem(ctx context.Context, userID int64, req *dto.AddItemRequest) (*dto.CartResp, error) {
	cart, err := s.requireCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	detail, err := s.requireListing(ctx, req.ProductDetailID)
	if err != nil {
		return nil, err
	}
	if req.Qty > detail.Qty {
		return nil, apperr.Stock(detail.Qty, req.Qty)
	}

	existing, err := s.cartRepo.GetItemByDetail(ctx, cart.ID, detail.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Duplicate("该报价已在购物车中，请直接修改数量")
	}

	item := &model.CartItem{
		CartID:          cart.ID,
		ProductDetailID: detail.ID,
		Qty:             req.Qty,
	}
	if err := s.cartRepo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	cart, err = s.cartRepo.GetByID(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	return s.toCartResp(cart), nil
}

// PatchItem 修改行项目数量
func (s *CartService) PatchItem(ctx context.Context, userID, itemID int64, req *dto.PatchItemRequest) (*dto.CartResp, error) {
	cart, err := s.requireCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.GetItem(ctx, cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.NotFound("购物车行项目")
	}

	detail, err := s.requireListing(ctx, item.ProductDetailID)
	if err != nil {
		return nil, err
	}
	if req.Qty > detail.Qty {
		return nil, apperr.Stock(detail.Qty, req.Qty)
	}

	item.Qty = req.Qty
	if err := s.cartRepo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	cart, err = s.cartRepo.GetByID(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	return s.toCartResp(cart), nil
}

// DeleteItem 删除行项目
func (s *CartService) DeleteItem(ctx context.Context, userID, itemID int64) (*dto.CartResp, error) {
	cart, err := s.requireCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.GetItem(ctx, cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.NotFound("购物车行项目")
	}

	if err := s.cartRepo.DeleteItem(ctx, cart.ID, itemID); err != nil {
		return nil, err
	}

	cart, err = s.cartRepo.GetByID(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	return s.toCartResp(cart), nil
}

// ==================== 内部方法 ====================

// requireCart 取当前用户的购物车
func (s *CartService) requireCart(ctx context.Context, userID int64) (*model.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, apperr.NotFound("购物车")
	}
	return cart, nil
}

// requireListing 取在售报价，下架或不存在都视为不可购买
func (s *CartService) requireListing(ctx context.Context, detailID int64) (*model.ProductDetail, error) {
	detail, err := s.catalogRepo.GetDetail(ctx, detailID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, apperr.NotFound("报价")
	}
	if !detail.Available {
		return nil, apperr.Precondition("该报价已下架")
	}
	return detail, nil
}

// toCartResp 转换为购物车 DTO
func (s *CartService) toCartResp(cart *model.Cart) *dto.CartResp {
	resp := &dto.CartResp{
		ID:        cart.ID,
		UserID:    cart.UserID,
		ContactID: cart.ContactID,
		Items:     make([]dto.CartItemVO, 0, len(cart.Items)),
	}
	for _, item := range cart.Items {
		vo := dto.CartItemVO{
			ID:              item.ID,
			ProductDetailID: item.ProductDetailID,
			Qty:             item.Qty,
		}
		if item.ProductDetail != nil {
			vo.Price = item.ProductDetail.Price
			if item.ProductDetail.Product != nil {
				vo.ProductName = item.ProductDetail.Product.Name
			}
		}
		resp.Items = append(resp.Items, vo)
	}
	return resp
}
