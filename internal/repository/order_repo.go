package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"market_dev_v1_202601/internal/model"
)

// ==================== 接口定义 ====================

// OrderRepository 订单仓储接口
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	CreateItems(ctx context.Context, items []model.OrderItem) error
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListAll(ctx context.Context, page, pageSize int) ([]model.Order, int64, error)
	ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]model.Order, int64, error)
	ListByShop(ctx context.Context, shopID int64, page, pageSize int) ([]model.Order, int64, error)
	ContainsShopItems(ctx context.Context, orderID, shopID int64) (bool, error)

	WithTx(tx *gorm.DB) OrderRepository
}

// ==================== 仓储实现 ====================

type orderRepo struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepo) CreateItems(ctx context.Context, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Contact").
		Preload("Items").
		Preload("Items.ProductDetail").
		Preload("Items.ProductDetail.Product").
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) ListAll(ctx context.Context, page, pageSize int) ([]model.Order, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&model.Order{}), page, pageSize)
}

func (r *orderRepo) ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]model.Order, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("user_id = ?", userID)
	return r.list(ctx, query, page, pageSize)
}

// ListByShop 供应商视角：只看包含本店铺报价的订单
func (r *orderRepo) ListByShop(ctx context.Context, shopID int64, page, pageSize int) ([]model.Order, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("order_items.shop_id = ?", shopID).
		Distinct("orders.*")
	return r.list(ctx, query, page, pageSize)
}

func (r *orderRepo) ContainsShopItems(ctx context.Context, orderID, shopID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Where("order_id = ? AND shop_id = ?", orderID, shopID).
		Count(&count).Error
	return count > 0, err
}

func (r *orderRepo) list(_ context.Context, query *gorm.DB, page, pageSize int) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	err := query.
		Order("orders.created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepo) WithTx(tx *gorm.DB) OrderRepository {
	return &orderRepo{db: tx}
}

// ==================== 事务支持 ====================

// TradeUnitOfWork 交易工作单元
// 结算要同时动购物车和订单两张表，放在一个事务里
type TradeUnitOfWork struct {
	db     *gorm.DB
	Carts  CartRepository
	Orders OrderRepository
}

// NewTradeUnitOfWork 创建交易工作单元
func NewTradeUnitOfWork(db *gorm.DB) *TradeUnitOfWork {
	return &TradeUnitOfWork{
		db:     db,
		Carts:  NewCartRepository(db),
		Orders: NewOrderRepository(db),
	}
}

// Transaction 执行事务
func (u *TradeUnitOfWork) Transaction(ctx context.Context, fn func(uow *TradeUnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txUow := &TradeUnitOfWork{
			db:     tx,
			Carts:  NewCartRepository(tx),
			Orders: NewOrderRepository(tx),
		}
		return fn(txUow)
	})
}
