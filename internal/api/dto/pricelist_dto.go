package dto

// ==================== 价格表文档 ====================
// 供应商上传的文档结构（YAML 或 JSON）：
// {categories: [{name, products: [{supplier_id, name, price, price_rrp, qty, parameters: [{name, value}]}]}]}
// 必填字段全部用指针解码，0 和缺失才能区分开，校验阶段统一收集错误

// PriceListDoc 价格表文档
type PriceListDoc struct {
	Categories []PriceListCategory `yaml:"categories" json:"categories"`
}

// PriceListCategory 文档中的分类
type PriceListCategory struct {
	Name     *string            `yaml:"name" json:"name"`
	Products []PriceListProduct `yaml:"products" json:"products"`
}

// PriceListProduct 文档中的报价行
type PriceListProduct struct {
	SupplierID *int64               `yaml:"supplier_id" json:"supplier_id"`
	Name       *string              `yaml:"name" json:"name"`
	Price      *int                 `yaml:"price" json:"price"`
	PriceRRP   *int                 `yaml:"price_rrp" json:"price_rrp"`
	Qty        *int                 `yaml:"qty" json:"qty"`
	Parameters []PriceListParameter `yaml:"parameters" json:"parameters"`
}

// PriceListParameter 文档中的属性对
type PriceListParameter struct {
	Name  *string `yaml:"name" json:"name"`
	Value *string `yaml:"value" json:"value"`
}

// Listings 文档里报价行总数
func (d *PriceListDoc) Listings() int {
	n := 0
	for _, c := range d.Categories {
		n += len(c.Products)
	}
	return n
}

// ==================== 请求/响应 ====================

// PriceListURLRequest 按 URL 拉取价格表请求
type PriceListURLRequest struct {
	URL string `json:"url" binding:"required"`
}

// PriceListResp 价格表更新响应
type PriceListResp struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Updated int    `json:"updated"`
}
