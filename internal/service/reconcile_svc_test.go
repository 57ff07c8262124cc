package service

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"market_dev_v1_202601/internal/api/dto"
	"market_dev_v1_202601/internal/model"
	"market_dev_v1_202601/internal/repository"
)

func newTestReconcileService(t *testing.T) (*ReconcileService, *gorm.DB) {
	db := setupServiceTestDB(t)
	svc := NewReconcileService(
		repository.NewCatalogRepository(db),
		repository.NewImportLogRepository(db),
		zap.NewNop(),
	)
	return svc, db
}

func seedShop(t *testing.T, db *gorm.DB) *model.Shop {
	t.Helper()

	user := &model.User{Email: "supplier@example.com", Password: "x", Kind: model.UserKindSupplier}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("创建供应商失败: %v", err)
	}
	shop := &model.Shop{Name: "测试店铺", URL: "https://shop.example.com", Active: true, ManagerID: user.ID}
	if err := db.Create(shop).Error; err != nil {
		t.Fatalf("创建店铺失败: %v", err)
	}
	return shop
}

// phoneDoc 标准测试文档：手机分类下一条报价，带两个属性
func phoneDoc(qty int) *dto.PriceListDoc {
	return &dto.PriceListDoc{
		Categories: []dto.PriceListCategory{
			{
				Name: strPtr("手机"),
				Products: []dto.PriceListProduct{
					{
						SupplierID: i64Ptr(1),
						Name:       strPtr("Galaxy S23"),
						Price:      intPtr(4999),
						PriceRRP:   intPtr(5499),
						Qty:        intPtr(qty),
						Parameters: []dto.PriceListParameter{
							{Name: strPtr("屏幕尺寸"), Value: strPtr("6.1")},
							{Name: strPtr("颜色"), Value: strPtr("黑色")},
						},
					},
				},
			},
		},
	}
}

// ==================== Apply 测试 ====================

func TestReconcileService_Apply_CreatesGraph(t *testing.T) {
	svc, db := newTestReconcileService(t)
	shop := seedShop(t, db)

	updated, err := svc.Apply(context.Background(), shop.ID, phoneDoc(10))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if updated != 1 {
		t.Errorf("updated = %d, want 1", updated)
	}

	var category model.Category
	if err := db.Where("name = ?", "手机").First(&category).Error; err != nil {
		t.Fatalf("分类未创建: %v", err)
	}

	var product model.Product
	if err := db.Where("name = ? AND category_id = ?", "Galaxy S23", category.ID).First(&product).Error; err != nil {
		t.Fatalf("商品未创建: %v", err)
	}

	var detail model.ProductDetail
	if err := db.Where("supplier_id = ? AND shop_id = ? AND product_id = ?", 1, shop.ID, product.ID).
		First(&detail).Error; err != nil {
		t.Fatalf("报价未创建: %v", err)
	}
	if !detail.Available || detail.Price != 4999 || detail.Qty != 10 {
		t.Errorf("报价字段错误: %+v", detail)
	}

	var paramCount int64
	db.Model(&model.ProductParameter{}).Where("product_detail_id = ?", detail.ID).Count(&paramCount)
	if paramCount != 2 {
		t.Errorf("属性数量 = %d, want 2", paramCount)
	}

	// 分类挂上了店铺标记
	var shopCats int64
	db.Table("shop_categories").Where("category_id = ?", category.ID).Count(&shopCats)
	if shopCats != 1 {
		t.Errorf("shop_categories = %d, want 1", shopCats)
	}
}

func TestReconcileService_Apply_Idempotent(t *testing.T) {
	svc, db := newTestReconcileService(t)
	shop := seedShop(t, db)
	ctx := context.Background()

	first, err := svc.Apply(ctx, shop.ID, phoneDoc(10))
	if err != nil {
		t.Fatalf("第一次 Apply() error = %v", err)
	}
	second, err := svc.Apply(ctx, shop.ID, phoneDoc(10))
	if err != nil {
		t.Fatalf("第二次 Apply() error = %v", err)
	}
	if first != second {
		t.Errorf("两次 Apply 返回不同条数: %d vs %d", first, second)
	}

	var productCount, detailCount int64
	db.Model(&model.Product{}).Count(&productCount)
	db.Model(&model.ProductDetail{}).Count(&detailCount)
	if productCount != 1 || detailCount != 1 {
		t.Errorf("重复应用产生了副本: products=%d details=%d", productCount, detailCount)
	}
}

func TestReconcileService_Apply_ResubmitUpdatesSameRow(t *testing.T) {
	svc, db := newTestReconcileService(t)
	shop := seedShop(t, db)
	ctx := context.Background()

	if _, err := svc.Apply(ctx, shop.ID, phoneDoc(10)); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	var before model.ProductDetail
	db.Where("supplier_id = ?", 1).First(&before)

	// 同一 supplier_id 重新提交，qty 归零
	if _, err := svc.Apply(ctx, shop.ID, phoneDoc(0)); err != nil {
		t.Fatalf("重新提交 Apply() error = %v", err)
	}

	var details []model.ProductDetail
	db.Where("supplier_id = ?", 1).Find(&details)
	if len(details) != 1 {
		t.Fatalf("重新提交产生了新行: len = %d", len(details))
	}
	if details[0].ID != before.ID {
		t.Errorf("报价行 ID 变了: %d -> %d", before.ID, details[0].ID)
	}
	if details[0].Qty != 0 || !details[0].Available {
		t.Errorf("报价未按 qty=0 更新: %+v", details[0])
	}
}

func TestReconcileService_Apply_OmittedListingUnavailable(t *testing.T) {
	svc, db := newTestReconcileService(t)
	shop := seedShop(t, db)
	ctx := context.Background()

	doc := phoneDoc(10)
	doc.Categories[0].Products = append(doc.Categories[0].Products, dto.PriceListProduct{
		SupplierID: i64Ptr(2),
		Name:       strPtr("Pixel 8"),
		Price:      intPtr(3999),
		PriceRRP:   intPtr(4499),
		Qty:        intPtr(5),
	})
	if _, err := svc.Apply(ctx, shop.ID, doc); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	// 第二版文档只剩 Galaxy，Pixel 缺席
	if _, err := svc.Apply(ctx, shop.ID, phoneDoc(10)); err != nil {
		t.Fatalf("第二次 Apply() error = %v", err)
	}

	var pixel model.ProductDetail
	if err := db.Where("supplier_id = ?", 2).First(&pixel).Error; err != nil {
		t.Fatalf("缺席报价被删除了，应该只是失效: %v", err)
	}
	if pixel.Available {
		t.Error("缺席的报价应该置为不可用")
	}

	var galaxy model.ProductDetail
	db.Where("supplier_id = ?", 1).First(&galaxy)
	if !galaxy.Available {
		t.Error("在档报价应该保持可用")
	}
}

func TestReconcileService_Apply_PrunesOrphans(t *testing.T) {
	svc, db := newTestReconcileService(t)
	shop := seedShop(t, db)

	// 手工制造孤儿：无报价的商品、无引用的属性
	cat := &model.Category{Name: "遗留分类"}
	db.Create(cat)
	db.Create(&model.Product{Name: "遗留商品", CategoryID: cat.ID})
	db.Create(&model.Parameter{Name: "遗留属性"})

	if _, err := svc.Apply(context.Background(), shop.ID, phoneDoc(10)); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	var orphanProducts int64
	db.Model(&model.Product{}).Where("name = ?", "遗留商品").Count(&orphanProducts)
	if orphanProducts != 0 {
		t.Error("无报价的商品应该被清理")
	}

	var orphanParams int64
	db.Model(&model.Parameter{}).Where("name = ?", "遗留属性").Count(&orphanParams)
	if orphanParams != 0 {
		t.Error("无引用的属性应该被清理")
	}
}

// ==================== Record 测试 ====================

func TestReconcileService_Record(t *testing.T) {
	svc, db := newTestReconcileService(t)
	shop := seedShop(t, db)
	ctx := context.Background()

	doc := phoneDoc(10)
	svc.Record(ctx, shop.ID, model.ImportSourceFile, "", doc, 1, nil)

	logs, err := svc.History(ctx, shop.ID, 10)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("len(logs) = %d, want 1", len(logs))
	}
	if logs[0].Status != model.ImportStatusOK || logs[0].UpdatedCount != 1 {
		t.Errorf("导入记录字段错误: %+v", logs[0])
	}
}
