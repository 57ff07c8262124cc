package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"market_dev_v1_202601/internal/apperr"
)

func newTestPriceListService(maxBytes int64) *PriceListService {
	return NewPriceListService(resty.New(), maxBytes, zap.NewNop())
}

// ==================== Parse 测试 ====================

const validYAML = `
categories:
  - name: 手机
    products:
      - supplier_id: 1
        name: Galaxy S23
        price: 4999
        price_rrp: 5499
        qty: 10
        parameters:
          - name: 屏幕尺寸
            value: "6.1"
          - name: 颜色
            value: 黑色
  - name: 配件
    products:
      - supplier_id: 2
        name: 充电器
        price: 99
        price_rrp: 129
        qty: 100
`

func TestPriceListService_Parse_YAML(t *testing.T) {
	svc := newTestPriceListService(0)

	doc, err := svc.Parse([]byte(validYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(doc.Categories) != 2 {
		t.Errorf("len(Categories) = %d, want 2", len(doc.Categories))
	}
	if doc.Listings() != 2 {
		t.Errorf("Listings() = %d, want 2", doc.Listings())
	}

	p := doc.Categories[0].Products[0]
	if *p.SupplierID != 1 || *p.Name != "Galaxy S23" || *p.Price != 4999 || *p.Qty != 10 {
		t.Errorf("报价行字段解析错误: %+v", p)
	}
	if len(p.Parameters) != 2 {
		t.Errorf("len(Parameters) = %d, want 2", len(p.Parameters))
	}
}

func TestPriceListService_Parse_JSON(t *testing.T) {
	svc := newTestPriceListService(0)

	jsonDoc := `{"categories":[{"name":"手机","products":[{"supplier_id":1,"name":"Galaxy S23","price":4999,"price_rrp":5499,"qty":10,"parameters":[{"name":"颜色","value":"黑色"}]}]}]}`

	doc, err := svc.Parse([]byte(jsonDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.Listings() != 1 {
		t.Errorf("Listings() = %d, want 1", doc.Listings())
	}
}

func TestPriceListService_Parse_BrokenStream(t *testing.T) {
	svc := newTestPriceListService(0)

	_, err := svc.Parse([]byte("categories:\n  - name: [unclosed"))
	if err == nil {
		t.Fatal("Parse() 应该返回错误")
	}
	if apperr.KindOf(err) != apperr.KindParse {
		t.Errorf("Kind = %s, want %s", apperr.KindOf(err), apperr.KindParse)
	}
}

func TestPriceListService_Parse_CollectsAllViolations(t *testing.T) {
	svc := newTestPriceListService(0)

	// 两个产品各有一处问题：缺 qty、price 为负，必须同时报出来
	doc := `
categories:
  - name: 手机
    products:
      - supplier_id: 1
        name: A
        price: 100
        price_rrp: 120
      - supplier_id: 2
        name: B
        price: -5
        price_rrp: 120
        qty: 3
`
	_, err := svc.Parse([]byte(doc))
	if err == nil {
		t.Fatal("Parse() 应该返回错误")
	}

	e, ok := apperr.From(err)
	if !ok || e.Kind != apperr.KindValidation {
		t.Fatalf("Kind = %s, want %s", apperr.KindOf(err), apperr.KindValidation)
	}
	if len(e.Fields) != 2 {
		t.Fatalf("len(Fields) = %d, want 2: %+v", len(e.Fields), e.Fields)
	}
	if e.Fields[0].Field != "categories[0].products[0].qty" {
		t.Errorf("Fields[0].Field = %s", e.Fields[0].Field)
	}
	if e.Fields[1].Field != "categories[0].products[1].price" {
		t.Errorf("Fields[1].Field = %s", e.Fields[1].Field)
	}
}

func TestPriceListService_Parse_TypeMismatch(t *testing.T) {
	svc := newTestPriceListService(0)

	doc := `
categories:
  - name: 手机
    products:
      - supplier_id: 1
        name: A
        price: 一百
        price_rrp: 120
        qty: 3
`
	_, err := svc.Parse([]byte(doc))
	if err == nil {
		t.Fatal("Parse() 应该返回错误")
	}
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("Kind = %s, want %s", apperr.KindOf(err), apperr.KindValidation)
	}
}

// ==================== FetchURL 测试 ====================

func TestPriceListService_FetchURL_PrefixMismatch(t *testing.T) {
	svc := newTestPriceListService(0)

	_, err := svc.FetchURL(context.Background(), "https://evil.example.com/list.yaml", "https://shop.example.com")
	if apperr.KindOf(err) != apperr.KindURL {
		t.Errorf("Kind = %s, want %s", apperr.KindOf(err), apperr.KindURL)
	}
}

func TestPriceListService_FetchURL_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(validYAML))
	}))
	defer server.Close()

	svc := newTestPriceListService(0)

	data, err := svc.FetchURL(context.Background(), server.URL+"/price.yaml", server.URL)
	if err != nil {
		t.Fatalf("FetchURL() error = %v", err)
	}
	if string(data) != validYAML {
		t.Errorf("拉取内容与源不一致, len = %d", len(data))
	}
}

func TestPriceListService_FetchURL_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	svc := newTestPriceListService(0)

	_, err := svc.FetchURL(context.Background(), server.URL+"/missing.yaml", server.URL)
	if apperr.KindOf(err) != apperr.KindUnavailable {
		t.Errorf("Kind = %s, want %s", apperr.KindOf(err), apperr.KindUnavailable)
	}
}

func TestPriceListService_FetchURL_SizeCap(t *testing.T) {
	big := strings.Repeat("a", 4096)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(big))
	}))
	defer server.Close()

	svc := newTestPriceListService(1024)

	_, err := svc.FetchURL(context.Background(), server.URL+"/huge.yaml", server.URL)
	if apperr.KindOf(err) != apperr.KindUnavailable {
		t.Errorf("Kind = %s, want %s", apperr.KindOf(err), apperr.KindUnavailable)
	}
}
