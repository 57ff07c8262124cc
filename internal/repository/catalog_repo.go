package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"market_dev_v1_202601/internal/model"
)

// ==================== 接口定义 ====================

// CatalogRepository 目录仓储接口
// 对账（reconcile）需要的全部写操作都集中在这里，配合 Transaction 使用，
// 保证幂等逻辑在一个地方可审计
type CatalogRepository interface {
	// 查询
	ListProducts(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	GetDetail(ctx context.Context, id int64) (*model.ProductDetail, error)

	// 对账写操作
	InvalidateShopDetails(ctx context.Context, shopID int64) error
	GetOrCreateCategory(ctx context.Context, name string) (*model.Category, error)
	AttachShopToCategory(ctx context.Context, category *model.Category, shopID int64) error
	GetOrCreateProduct(ctx context.Context, name string, categoryID int64) (*model.Product, error)
	UpsertDetail(ctx context.Context, detail *model.ProductDetail) error
	GetOrCreateParameter(ctx context.Context, name string) (*model.Parameter, error)
	ReplaceDetailParameters(ctx context.Context, detailID int64, params []model.ProductParameter) error
	PruneOrphanProducts(ctx context.Context) (int64, error)
	PruneOrphanParameters(ctx context.Context) (int64, error)

	// 事务
	WithTx(tx *gorm.DB) CatalogRepository
	Transaction(ctx context.Context, fn func(txRepo CatalogRepository) error) error
}

// ==================== 过滤条件 ====================

// ProductFilter 商品过滤条件
type ProductFilter struct {
	ShopID     int64
	CategoryID int64
	Keyword    string
	Page       int
	PageSize   int
}

// ==================== 仓储实现 ====================

type catalogRepo struct {
	db *gorm.DB
}

// NewCatalogRepository 创建目录仓储
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepo{db: db}
}

// ==================== 查询 ====================

// 只暴露在售商品：报价 available 且店铺 active
const visibleDetails = "product_details.available = ? AND product_details.shop_id IN (SELECT id FROM shops WHERE active = ?)"

func (r *catalogRepo) ListProducts(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	query := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Joins("JOIN product_details ON product_details.product_id = products.id").
		Where(visibleDetails, true, true).
		Distinct("products.*")

	if filter.ShopID > 0 {
		query = query.Where("product_details.shop_id = ?", filter.ShopID)
	}
	if filter.CategoryID > 0 {
		query = query.Where("products.category_id = ?", filter.CategoryID)
	}
	if filter.Keyword != "" {
		query = query.Where("products.name LIKE ?", "%"+filter.Keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	err := query.
		Preload("Category").
		Order("products.id").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&products).Error
	return products, total, err
}

func (r *catalogRepo) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Details", "available = ? AND shop_id IN (SELECT id FROM shops WHERE active = ?)", true, true).
		Preload("Details.Parameters").
		Preload("Details.Parameters.Parameter").
		First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *catalogRepo) GetDetail(ctx context.Context, id int64) (*model.ProductDetail, error) {
	var detail model.ProductDetail
	err := r.db.WithContext(ctx).
		Preload("Product").
		First(&detail, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// ==================== 对账写操作 ====================

// InvalidateShopDetails 把店铺全部报价置为不可用
// 对账第一步：先软失效，缺席的报价不会被重新激活
func (r *catalogRepo) InvalidateShopDetails(ctx context.Context, shopID int64) error {
	return r.db.WithContext(ctx).
		Model(&model.ProductDetail{}).
		Where("shop_id = ?", shopID).
		Update("available", false).Error
}

func (r *catalogRepo) GetOrCreateCategory(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).
		Where(model.Category{Name: name}).
		FirstOrCreate(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// AttachShopToCategory 给分类打上店铺标记（多对多，幂等）
func (r *catalogRepo) AttachShopToCategory(ctx context.Context, category *model.Category, shopID int64) error {
	return r.db.WithContext(ctx).
		Model(category).
		Association("Shops").
		Append(&model.Shop{BaseModel: model.BaseModel{ID: shopID}})
}

func (r *catalogRepo) GetOrCreateProduct(ctx context.Context, name string, categoryID int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where(model.Product{Name: name, CategoryID: categoryID}).
		FirstOrCreate(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// UpsertDetail 按 (supplier_id, shop, product) 更新或创建报价
// 同一 supplier_id 重复出现必须更新既有行而不是新建，否则撞唯一索引
func (r *catalogRepo) UpsertDetail(ctx context.Context, detail *model.ProductDetail) error {
	var existing model.ProductDetail
	err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND shop_id = ? AND product_id = ?",
			detail.SupplierID, detail.ShopID, detail.ProductID).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(detail).Error
	}
	if err != nil {
		return err
	}

	existing.Price = detail.Price
	existing.PriceRRP = detail.PriceRRP
	existing.Qty = detail.Qty
	existing.Available = detail.Available
	if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return err
	}
	*detail = existing
	return nil
}

func (r *catalogRepo) GetOrCreateParameter(ctx context.Context, name string) (*model.Parameter, error) {
	var parameter model.Parameter
	err := r.db.WithContext(ctx).
		Where(model.Parameter{Name: name}).
		FirstOrCreate(&parameter).Error
	if err != nil {
		return nil, err
	}
	return &parameter, nil
}

// ReplaceDetailParameters 整体替换报价的属性集
// 重新 upsert 的报价保持同一 id，旧属性行不保留，以新文档为准
func (r *catalogRepo) ReplaceDetailParameters(ctx context.Context, detailID int64, params []model.ProductParameter) error {
	if err := r.db.WithContext(ctx).
		Where("product_detail_id = ?", detailID).
		Delete(&model.ProductParameter{}).Error; err != nil {
		return err
	}
	if len(params) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&params).Error
}

// PruneOrphanProducts 删除没有任何报价行的商品
// 其他店铺还在卖的商品自然有报价行，不会被误删
func (r *catalogRepo) PruneOrphanProducts(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id NOT IN (SELECT product_id FROM product_details)").
		Delete(&model.Product{})
	return result.RowsAffected, result.Error
}

// PruneOrphanParameters 删除没有任何属性值引用的全局属性
func (r *catalogRepo) PruneOrphanParameters(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id NOT IN (SELECT parameter_id FROM product_parameters)").
		Delete(&model.Parameter{})
	return result.RowsAffected, result.Error
}

// ==================== 事务 ====================

func (r *catalogRepo) WithTx(tx *gorm.DB) CatalogRepository {
	return &catalogRepo{db: tx}
}

func (r *catalogRepo) Transaction(ctx context.Context, fn func(txRepo CatalogRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&catalogRepo{db: tx})
	})
}
