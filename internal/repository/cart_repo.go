package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"market_dev_v1_202601/internal/model"
)

// ==================== 接口定义 ====================

// CartRepository 购物车仓储接口
type CartRepository interface {
	Create(ctx context.Context, cart *model.Cart) error
	GetByID(ctx context.Context, id int64) (*model.Cart, error)
	GetByUserID(ctx context.Context, userID int64) (*model.Cart, error)
	SetContact(ctx context.Context, cartID int64, contactID *int64) error

	CreateItem(ctx context.Context, item *model.CartItem) error
	GetItem(ctx context.Context, cartID, itemID int64) (*model.CartItem, error)
	GetItemByDetail(ctx context.Context, cartID, detailID int64) (*model.CartItem, error)
	UpdateItem(ctx context.Context, item *model.CartItem) error
	DeleteItem(ctx context.Context, cartID, itemID int64) error
	DeleteItemsByCart(ctx context.Context, cartID int64) error

	WithTx(tx *gorm.DB) CartRepository
}

// ==================== 仓储实现 ====================

type cartRepo struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepo{db: db}
}

func (r *cartRepo) Create(ctx context.Context, cart *model.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

func (r *cartRepo) GetByID(ctx context.Context, id int64) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Preload("Contact").
		Preload("Items").
		Preload("Items.ProductDetail").
		Preload("Items.ProductDetail.Product").
		First(&cart, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepo) GetByUserID(ctx context.Context, userID int64) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Preload("Contact").
		Preload("Items").
		Preload("Items.ProductDetail").
		Preload("Items.ProductDetail.Product").
		Where("user_id = ?", userID).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// SetContact 设置或清空购物车的联系方式
func (r *cartRepo) SetContact(ctx context.Context, cartID int64, contactID *int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Cart{}).
		Where("id = ?", cartID).
		Update("contact_id", contactID).Error
}

func (r *cartRepo) CreateItem(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *cartRepo) GetItem(ctx context.Context, cartID, itemID int64) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Preload("ProductDetail").
		Preload("ProductDetail.Product").
		Where("cart_id = ?", cartID).
		First(&item, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) GetItemByDetail(ctx context.Context, cartID, detailID int64) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_detail_id = ?", cartID, detailID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) UpdateItem(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *cartRepo) DeleteItem(ctx context.Context, cartID, itemID int64) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&model.CartItem{}, itemID).Error
}

func (r *cartRepo) DeleteItemsByCart(ctx context.Context, cartID int64) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&model.CartItem{}).Error
}

func (r *cartRepo) WithTx(tx *gorm.DB) CartRepository {
	return &cartRepo{db: tx}
}
