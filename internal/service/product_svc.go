package service

import (
	"context"

	"market_dev_v1_202601/internal/api/dto"
	"market_dev_v1_202601/internal/apperr"
	"market_dev_v1_202601/internal/model"
	"market_dev_v1_202601/internal/repository"
)

// ==================== ProductService 商品查询服务 ====================

// ProductService 商品查询服务，只读
// 可见性规则在仓储层收口：报价 available 且店铺 active
type ProductService struct {
	catalogRepo repository.CatalogRepository
}

// NewProductService 创建商品查询服务
func NewProductService(catalogRepo repository.CatalogRepository) *ProductService {
	return &ProductService{catalogRepo: catalogRepo}
}

// List 商品列表，支持店铺/分类/关键字过滤
func (s *ProductService) List(ctx context.Context, req *dto.ListProductsRequest) (*dto.ProductListResp, error) {
	products, total, err := s.catalogRepo.ListProducts(ctx, repository.ProductFilter{
		ShopID:     req.ShopID,
		CategoryID: req.CategoryID,
		Keyword:    req.Keyword,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		return nil, err
	}

	data := make([]dto.ProductResp, 0, len(products))
	for i := range products {
		p := &products[i]
		item := dto.ProductResp{ID: p.ID, Name: p.Name}
		if p.Category != nil {
			item.Category = p.Category.Name
		}
		data = append(data, item)
	}
	return &dto.ProductListResp{
		Code:     200,
		Message:  "success",
		Data:     data,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

// Get 商品详情，带全部在售报价和属性
func (s *ProductService) Get(ctx context.Context, id int64) (*dto.ProductDetailResp, error) {
	product, err := s.catalogRepo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperr.NotFound("商品")
	}

	resp := &dto.ProductDetailResp{
		ID:      product.ID,
		Name:    product.Name,
		Details: make([]dto.ListingVO, 0, len(product.Details)),
	}
	if product.Category != nil {
		resp.Category = product.Category.Name
	}
	for i := range product.Details {
		resp.Details = append(resp.Details, s.toListingVO(&product.Details[i]))
	}
	return resp, nil
}

// toListingVO 转换为报价 DTO
func (s *ProductService) toListingVO(detail *model.ProductDetail) dto.ListingVO {
	vo := dto.ListingVO{
		ID:         detail.ID,
		ShopID:     detail.ShopID,
		SupplierID: detail.SupplierID,
		Price:      detail.Price,
		PriceRRP:   detail.PriceRRP,
		Qty:        detail.Qty,
		Parameters: make([]dto.ParameterVO, 0, len(detail.Parameters)),
	}
	for _, p := range detail.Parameters {
		pv := dto.ParameterVO{Value: p.Value}
		if p.Parameter != nil {
			pv.Name = p.Parameter.Name
		}
		vo.Parameters = append(vo.Parameters, pv)
	}
	return vo
}
