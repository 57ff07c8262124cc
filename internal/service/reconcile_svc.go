package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"market_dev_v1_202601/internal/api/dto"
	"market_dev_v1_202601/internal/apperr"
	"market_dev_v1_202601/internal/model"
	"market_dev_v1_202601/internal/repository"
)

// ==================== ReconcileService ====================

// ReconcileService 目录对账服务
// 把校验过的价格表文档一次性应用到指定店铺的目录切片，
// 全部步骤在一个事务里，失败不留任何半成品状态。
// 同一文档重复应用结果相同（幂等），返回的处理条数也相同
type ReconcileService struct {
	catalogRepo repository.CatalogRepository
	logRepo     repository.ImportLogRepository
	logger      *zap.Logger
}

// NewReconcileService 创建对账服务
func NewReconcileService(
	catalogRepo repository.CatalogRepository,
	logRepo repository.ImportLogRepository,
	logger *zap.Logger,
) *ReconcileService {
	return &ReconcileService{
		catalogRepo: catalogRepo,
		logRepo:     logRepo,
		logger:      logger,
	}
}

// ==================== 对账 ====================

// Apply 把价格表文档应用到店铺目录，返回处理的报价条数
//
// 事务内步骤：
//  1. 店铺现有报价全部置为不可用（先软失效，购物车/订单里的引用要留着）
//  2. 按名称 get-or-create 分类，并给分类补上店铺标记
//  3. 按 (名称, 分类) get-or-create 商品，按 (supplier_id, 店铺, 商品) upsert 报价
//  4. 报价的属性集整体替换为新文档的内容
//  5. 清掉全局已无报价的商品、已无引用的属性
func (s *ReconcileService) Apply(ctx context.Context, shopID int64, doc *dto.PriceListDoc) (int, error) {
	updated := 0

	err := s.catalogRepo.Transaction(ctx, func(repo repository.CatalogRepository) error {
		updated = 0

		if err := repo.InvalidateShopDetails(ctx, shopID); err != nil {
			return fmt.Errorf("失效店铺旧报价失败: %w", err)
		}

		for _, cat := range doc.Categories {
			category, err := repo.GetOrCreateCategory(ctx, *cat.Name)
			if err != nil {
				return fmt.Errorf("创建分类 %q 失败: %w", *cat.Name, err)
			}
			if err := repo.AttachShopToCategory(ctx, category, shopID); err != nil {
				return fmt.Errorf("关联店铺到分类 %q 失败: %w", *cat.Name, err)
			}

			for _, p := range cat.Products {
				if err := s.applyListing(ctx, repo, shopID, category.ID, &p); err != nil {
					return err
				}
				updated++
			}
		}

		if _, err := repo.PruneOrphanProducts(ctx); err != nil {
			return fmt.Errorf("清理孤儿商品失败: %w", err)
		}
		if _, err := repo.PruneOrphanParameters(ctx); err != nil {
			return fmt.Errorf("清理孤儿属性失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("价格表对账完成",
		zap.Int64("shop_id", shopID),
		zap.Int("updated", updated))
	return updated, nil
}

// applyListing 处理单条报价：商品 get-or-create + 报价 upsert + 属性整体替换
func (s *ReconcileService) applyListing(
	ctx context.Context,
	repo repository.CatalogRepository,
	shopID, categoryID int64,
	p *dto.PriceListProduct,
) error {
	product, err := repo.GetOrCreateProduct(ctx, *p.Name, categoryID)
	if err != nil {
		return fmt.Errorf("创建商品 %q 失败: %w", *p.Name, err)
	}

	detail := &model.ProductDetail{
		ProductID:  product.ID,
		ShopID:     shopID,
		SupplierID: *p.SupplierID,
		Price:      *p.Price,
		PriceRRP:   *p.PriceRRP,
		Qty:        *p.Qty,
		Available:  true,
	}
	if err := repo.UpsertDetail(ctx, detail); err != nil {
		return fmt.Errorf("更新报价 (supplier_id=%d) 失败: %w", *p.SupplierID, err)
	}

	params := make([]model.ProductParameter, 0, len(p.Parameters))
	for _, pp := range p.Parameters {
		parameter, err := repo.GetOrCreateParameter(ctx, *pp.Name)
		if err != nil {
			return fmt.Errorf("创建属性 %q 失败: %w", *pp.Name, err)
		}
		params = append(params, model.ProductParameter{
			ParameterID:     parameter.ID,
			ProductDetailID: detail.ID,
			Value:           *pp.Value,
		})
	}
	if err := repo.ReplaceDetailParameters(ctx, detail.ID, params); err != nil {
		return fmt.Errorf("替换报价属性失败: %w", err)
	}
	return nil
}

// ==================== 导入记录 ====================

// Record 落一条导入记录（成功或失败都落），在对账事务之外执行
// 记录失败只打日志，不影响本次提交的结果
func (s *ReconcileService) Record(
	ctx context.Context,
	shopID int64,
	source, sourceURL string,
	doc *dto.PriceListDoc,
	updated int,
	submitErr error,
) {
	entry := &model.ImportLog{
		ShopID:       shopID,
		Source:       source,
		SourceURL:    sourceURL,
		Status:       model.ImportStatusOK,
		UpdatedCount: updated,
	}

	if submitErr != nil {
		entry.Status = model.ImportStatusFailed
		if e, ok := apperr.From(submitErr); ok {
			entry.Errors = pq.StringArray{string(e.Kind) + ": " + e.Message}
			for _, f := range e.Fields {
				entry.Errors = append(entry.Errors, f.Field+": "+f.Message)
			}
		} else {
			entry.Errors = pq.StringArray{submitErr.Error()}
		}
	}

	if doc != nil {
		summary := map[string]int{
			"categories": len(doc.Categories),
			"listings":   doc.Listings(),
		}
		if raw, err := json.Marshal(summary); err == nil {
			entry.Summary = raw
		}
	}

	if err := s.logRepo.Create(ctx, entry); err != nil {
		s.logger.Warn("写入导入记录失败",
			zap.Int64("shop_id", shopID),
			zap.Error(err))
	}
}

// History 店铺的导入历史
func (s *ReconcileService) History(ctx context.Context, shopID int64, limit int) ([]model.ImportLog, error) {
	return s.logRepo.ListByShop(ctx, shopID, limit)
}
