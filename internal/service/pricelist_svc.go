package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"market_dev_v1_202601/internal/api/dto"
	"market_dev_v1_202601/internal/apperr"
)

// 拉取价格表时的分块大小和默认大小上限
const (
	fetchChunkSize       = 512
	DefaultMaxFetchBytes = 10 << 20 // 10MB
)

// ==================== PriceListService ====================

// PriceListService 价格表服务：拉取、解析、校验
// 纯转换，不写库，对账由 ReconcileService 负责
type PriceListService struct {
	client        *resty.Client
	maxFetchBytes int64
	logger        *zap.Logger
}

// NewPriceListService 创建价格表服务
func NewPriceListService(client *resty.Client, maxFetchBytes int64, logger *zap.Logger) *PriceListService {
	if maxFetchBytes <= 0 {
		maxFetchBytes = DefaultMaxFetchBytes
	}
	return &PriceListService{
		client:        client,
		maxFetchBytes: maxFetchBytes,
		logger:        logger,
	}
}

// ==================== 解析与校验 ====================

// Parse 把字节流解析成校验过的价格表文档
// JSON 是 YAML 的子集，一个解码器同时覆盖两种格式。
// 流本身坏掉返回 ParseError；字段级问题全量收集后返回一个 ValidationError，
// 不允许遇到第一个错就停
func (s *PriceListService) Parse(data []byte) (*dto.PriceListDoc, error) {
	var doc dto.PriceListDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		// yaml.TypeError 是字段类型不匹配，解码器会继续往下走并攒齐所有错误
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			fields := make([]apperr.FieldError, 0, len(typeErr.Errors))
			for _, msg := range typeErr.Errors {
				fields = append(fields, apperr.FieldError{Field: "document", Message: msg})
			}
			// 类型错误行之外的部分可能解出来了，继续收集缺字段/负数错误
			fields = append(fields, validateDoc(&doc)...)
			return nil, apperr.Validation(fields)
		}
		return nil, apperr.Parse(err)
	}

	if fields := validateDoc(&doc); len(fields) > 0 {
		return nil, apperr.Validation(fields)
	}
	return &doc, nil
}

// validateDoc 遍历整个文档收集全部字段违规
func validateDoc(doc *dto.PriceListDoc) []apperr.FieldError {
	var fields []apperr.FieldError

	addMissing := func(path string) {
		fields = append(fields, apperr.FieldError{Field: path, Message: "必填字段缺失"})
	}
	addNegative := func(path string, v int64) {
		fields = append(fields, apperr.FieldError{Field: path, Message: fmt.Sprintf("不能为负数: %d", v)})
	}

	for i, cat := range doc.Categories {
		catPath := fmt.Sprintf("categories[%d]", i)
		if cat.Name == nil || *cat.Name == "" {
			addMissing(catPath + ".name")
		}
		for j, p := range cat.Products {
			path := fmt.Sprintf("%s.products[%d]", catPath, j)
			if p.SupplierID == nil {
				addMissing(path + ".supplier_id")
			} else if *p.SupplierID < 0 {
				addNegative(path+".supplier_id", *p.SupplierID)
			}
			if p.Name == nil || *p.Name == "" {
				addMissing(path + ".name")
			}
			if p.Price == nil {
				addMissing(path + ".price")
			} else if *p.Price < 0 {
				addNegative(path+".price", int64(*p.Price))
			}
			if p.PriceRRP == nil {
				addMissing(path + ".price_rrp")
			} else if *p.PriceRRP < 0 {
				addNegative(path+".price_rrp", int64(*p.PriceRRP))
			}
			if p.Qty == nil {
				addMissing(path + ".qty")
			} else if *p.Qty < 0 {
				addNegative(path+".qty", int64(*p.Qty))
			}
			for k, pp := range p.Parameters {
				ppPath := fmt.Sprintf("%s.parameters[%d]", path, k)
				if pp.Name == nil || *pp.Name == "" {
					addMissing(ppPath + ".name")
				}
				if pp.Value == nil || *pp.Value == "" {
					addMissing(ppPath + ".value")
				}
			}
		}
	}
	return fields
}

// ==================== URL 拉取 ====================

// FetchURL 从供应商自己的店铺 URL 下拉取价格表
// URL 必须是店铺注册 URL 的前缀匹配，防止指向任意外部资源；
// 响应按固定分块读入并限制总大小，避免一口气吞下无界流
func (s *PriceListService) FetchURL(ctx context.Context, rawURL, shopURL string) ([]byte, error) {
	if shopURL == "" || !strings.HasPrefix(rawURL, shopURL) {
		return nil, apperr.URLValidation()
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(rawURL)
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	body := resp.RawBody()
	defer func() { _ = body.Close() }()

	if resp.StatusCode() != http.StatusOK {
		return nil, apperr.Unavailable(fmt.Errorf("HTTP %d", resp.StatusCode()))
	}

	var buf bytes.Buffer
	chunk := make([]byte, fetchChunkSize)
	for {
		n, readErr := body.Read(chunk)
		if n > 0 {
			if int64(buf.Len()+n) > s.maxFetchBytes {
				return nil, apperr.Unavailable(fmt.Errorf("价格表超过大小上限 %d 字节", s.maxFetchBytes))
			}
			buf.Write(chunk[:n])
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, apperr.Unavailable(readErr)
		}
	}

	s.logger.Info("价格表拉取完成",
		zap.String("url", rawURL),
		zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}
