package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"market_dev_v1_202601/internal/middleware"
	"market_dev_v1_202601/internal/model"
	"market_dev_v1_202601/internal/repository"
	"market_dev_v1_202601/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 测试辅助 ====================

type priceListFixture struct {
	router *gin.Engine
	db     *gorm.DB
	shop   *model.Shop
	token  string
}

func setupPriceListFixture(t *testing.T) *priceListFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "连接测试数据库失败")

	err = db.AutoMigrate(
		&model.User{}, &model.Shop{},
		&model.Category{}, &model.Product{}, &model.ProductDetail{},
		&model.Parameter{}, &model.ProductParameter{},
		&model.ImportLog{},
	)
	require.NoError(t, err, "数据库迁移失败")

	supplier := &model.User{Email: "supplier@example.com", Password: "x", Kind: model.UserKindSupplier}
	require.NoError(t, db.Create(supplier).Error)
	shop := &model.Shop{Name: "测试店铺", URL: "https://shop.example.com", Active: true, ManagerID: supplier.ID}
	require.NoError(t, db.Create(shop).Error)

	token, err := middleware.GenerateAccessToken(supplier.ID, supplier.Email, model.UserKindSupplier)
	require.NoError(t, err)

	zlog := zap.NewNop()
	shopSvc := service.NewShopService(repository.NewShopRepository(db))
	priceListSvc := service.NewPriceListService(resty.New(), 0, zlog)
	reconcileSvc := service.NewReconcileService(
		repository.NewCatalogRepository(db),
		repository.NewImportLogRepository(db),
		zlog,
	)
	ctl := NewPriceListController(priceListSvc, reconcileSvc, shopSvc)

	r := gin.New()
	group := r.Group("/api/shop/price-list")
	group.Use(middleware.JWTAuth(), middleware.RequireRole(model.UserKindSupplier))
	{
		group.POST("", ctl.Submit)
		group.GET("/history", ctl.History)
	}

	return &priceListFixture{router: r, db: db, shop: shop, token: token}
}

func (f *priceListFixture) submit(body []byte, contentType, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, "/api/shop/price-list", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

const submitYAML = `
categories:
  - name: 手机
    products:
      - supplier_id: 1
        name: Galaxy S23
        price: 4999
        price_rrp: 5499
        qty: 10
        parameters:
          - name: 颜色
            value: 黑色
`

// ==================== 提交测试 ====================

func TestPriceListController_Submit_RawYAML(t *testing.T) {
	f := setupPriceListFixture(t)

	w := f.submit([]byte(submitYAML), "text/yaml", f.token)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Code    int    `json:"code"`
		Updated int    `json:"updated"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Updated)

	// 目录确实写入了
	var detailCount int64
	f.db.Model(&model.ProductDetail{}).Where("shop_id = ?", f.shop.ID).Count(&detailCount)
	assert.EqualValues(t, 1, detailCount)

	// 导入记录落了一条成功
	var logEntry model.ImportLog
	require.NoError(t, f.db.Where("shop_id = ?", f.shop.ID).First(&logEntry).Error)
	assert.Equal(t, model.ImportStatusOK, logEntry.Status)
	assert.Equal(t, 1, logEntry.UpdatedCount)
}

func TestPriceListController_Submit_ValidationError(t *testing.T) {
	f := setupPriceListFixture(t)

	bad := `
categories:
  - name: 手机
    products:
      - supplier_id: 1
        name: Galaxy S23
        price: -1
        price_rrp: 5499
`
	w := f.submit([]byte(bad), "text/yaml", f.token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Kind   string `json:"kind"`
		Fields []struct {
			Field string `json:"field"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Kind)
	assert.Len(t, resp.Fields, 2) // price 为负 + qty 缺失

	// 失败也要落导入记录
	var logEntry model.ImportLog
	require.NoError(t, f.db.Where("shop_id = ?", f.shop.ID).First(&logEntry).Error)
	assert.Equal(t, model.ImportStatusFailed, logEntry.Status)
}

func TestPriceListController_Submit_ByURL(t *testing.T) {
	f := setupPriceListFixture(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(submitYAML))
	}))
	defer server.Close()

	// 店铺注册 URL 必须是拉取 URL 的前缀
	require.NoError(t, f.db.Model(f.shop).Update("url", server.URL).Error)

	body, _ := json.Marshal(map[string]string{"url": server.URL + "/price.yaml"})
	w := f.submit(body, "application/json", f.token)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var logEntry model.ImportLog
	require.NoError(t, f.db.Where("shop_id = ?", f.shop.ID).First(&logEntry).Error)
	assert.Equal(t, model.ImportSourceURL, logEntry.Source)
	assert.Equal(t, server.URL+"/price.yaml", logEntry.SourceURL)
}

func TestPriceListController_Submit_ForeignURLRejected(t *testing.T) {
	f := setupPriceListFixture(t)

	body, _ := json.Marshal(map[string]string{"url": "https://evil.example.com/price.yaml"})
	w := f.submit(body, "application/json", f.token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Kind string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "url_validation_error", resp.Kind)
}

func TestPriceListController_Submit_Unauthorized(t *testing.T) {
	f := setupPriceListFixture(t)

	w := f.submit([]byte(submitYAML), "text/yaml", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPriceListController_History(t *testing.T) {
	f := setupPriceListFixture(t)

	w := f.submit([]byte(submitYAML), "text/yaml", f.token)
	require.Equal(t, http.StatusOK, w.Code)

	req, _ := http.NewRequest(http.MethodGet, "/api/shop/price-list/history", nil)
	req.Header.Set("Authorization", "Bearer "+f.token)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []model.ImportLog `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
}
