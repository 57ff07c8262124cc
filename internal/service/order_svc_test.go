package service

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"market_dev_v1_202601/internal/api/dto"
	"market_dev_v1_202601/internal/apperr"
	"market_dev_v1_202601/internal/model"
	"market_dev_v1_202601/internal/repository"
)

// ==================== Mock 实现 ====================

type mockNotifier struct {
	mu     sync.Mutex
	orders []int64
	emails []string
}

func (m *mockNotifier) NotifyOrderCreated(orderID int64, email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, orderID)
	m.emails = append(m.emails, email)
}

func newTestOrderService(t *testing.T) (*OrderService, *mockNotifier, *gorm.DB) {
	db := setupServiceTestDB(t)
	notifier := &mockNotifier{}
	svc := NewOrderService(
		repository.NewTradeUnitOfWork(db),
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewUserRepository(db),
		repository.NewShopRepository(db),
		notifier,
		zap.NewNop(),
	)
	return svc, notifier, db
}

// fillCart 给采购方的购物车塞一条行项目，设好联系方式
func fillCart(t *testing.T, db *gorm.DB, buyer *model.User, detail *model.ProductDetail, withContact bool) {
	t.Helper()

	var cart model.Cart
	if err := db.Where("user_id = ?", buyer.ID).First(&cart).Error; err != nil {
		t.Fatalf("购物车不存在: %v", err)
	}
	if err := db.Create(&model.CartItem{CartID: cart.ID, ProductDetailID: detail.ID, Qty: 2}).Error; err != nil {
		t.Fatalf("塞购物车失败: %v", err)
	}

	if withContact {
		contact := &model.Contact{UserID: buyer.ID, Phone: "123", Address: "测试地址"}
		db.Create(contact)
		db.Model(&cart).Update("contact_id", contact.ID)
	}
}

// ==================== Checkout 测试 ====================

func TestOrderService_Checkout_RequiresContact(t *testing.T) {
	svc, _, db := newTestOrderService(t)
	buyer, detail := seedMarket(t, db)
	fillCart(t, db, buyer, detail, false)

	_, err := svc.Checkout(context.Background(), buyer.ID)
	if apperr.KindOf(err) != apperr.KindPrecondition {
		t.Errorf("Kind = %s, want %s", apperr.KindOf(err), apperr.KindPrecondition)
	}

	// 未下单
	var count int64
	db.Model(&model.Order{}).Count(&count)
	if count != 0 {
		t.Errorf("订单数量 = %d, want 0", count)
	}
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	svc, _, db := newTestOrderService(t)
	buyer, _ := seedMarket(t, db)

	_, err := svc.Checkout(context.Background(), buyer.ID)
	if apperr.KindOf(err) != apperr.KindPrecondition {
		t.Errorf("Kind = %s, want %s", apperr.KindOf(err), apperr.KindPrecondition)
	}
}

func TestOrderService_Checkout_Success(t *testing.T) {
	svc, notifier, db := newTestOrderService(t)
	buyer, detail := seedMarket(t, db)
	fillCart(t, db, buyer, detail, true)

	resp, err := svc.Checkout(context.Background(), buyer.ID)
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}

	if resp.Status != model.OrderStatusNew {
		t.Errorf("Status = %s, want %s", resp.Status, model.OrderStatusNew)
	}
	if len(resp.Items) != 1 || resp.Items[0].Qty != 2 {
		t.Errorf("订单行项目错误: %+v", resp.Items)
	}
	if resp.Total != detail.Price*2 {
		t.Errorf("Total = %d, want %d", resp.Total, detail.Price*2)
	}

	// 行项目带店铺快照
	var item model.OrderItem
	db.Where("order_id = ?", resp.ID).First(&item)
	if item.ShopID != detail.ShopID {
		t.Errorf("ShopID = %d, want %d", item.ShopID, detail.ShopID)
	}

	// 购物车清空、联系方式解绑
	var cart model.Cart
	db.Where("user_id = ?", buyer.ID).First(&cart)
	if cart.ContactID != nil {
		t.Error("结算后购物车应解绑联系方式")
	}
	var itemCount int64
	db.Model(&model.CartItem{}).Where("cart_id = ?", cart.ID).Count(&itemCount)
	if itemCount != 0 {
		t.Errorf("结算后购物车行项目 = %d, want 0", itemCount)
	}

	// 通知恰好一次
	if len(notifier.orders) != 1 || notifier.orders[0] != resp.ID {
		t.Errorf("通知记录 = %v, want [%d]", notifier.orders, resp.ID)
	}
	if len(notifier.emails) != 1 || notifier.emails[0] != buyer.Email {
		t.Errorf("通知邮箱 = %v, want [%s]", notifier.emails, buyer.Email)
	}
}

// ==================== 查询测试 ====================

func TestOrderService_List_RoleScoping(t *testing.T) {
	svc, _, db := newTestOrderService(t)
	buyer, detail := seedMarket(t, db)
	fillCart(t, db, buyer, detail, true)
	ctx := context.Background()

	order, err := svc.Checkout(ctx, buyer.ID)
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}

	// 另一个采购方没有订单
	other := &model.User{Email: "other@example.com", Password: "x", Kind: model.UserKindBuyer}
	db.Create(other)

	req := &dto.ListOrdersRequest{Page: 1, PageSize: 10}

	// staff 看到全部
	resp, err := svc.List(ctx, 0, "staff", req)
	if err != nil {
		t.Fatalf("staff List() error = %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("staff Total = %d, want 1", resp.Total)
	}

	// 买家只看自己的
	resp, err = svc.List(ctx, other.ID, model.UserKindBuyer, req)
	if err != nil {
		t.Fatalf("buyer List() error = %v", err)
	}
	if resp.Total != 0 {
		t.Errorf("other buyer Total = %d, want 0", resp.Total)
	}

	// 供应商按店铺过滤
	var shop model.Shop
	db.First(&shop, detail.ShopID)
	resp, err = svc.List(ctx, shop.ManagerID, model.UserKindSupplier, req)
	if err != nil {
		t.Fatalf("supplier List() error = %v", err)
	}
	if resp.Total != 1 || resp.Data[0].ID != order.ID {
		t.Errorf("supplier Total = %d, want 1", resp.Total)
	}
}

func TestOrderService_Get_Permission(t *testing.T) {
	svc, _, db := newTestOrderService(t)
	buyer, detail := seedMarket(t, db)
	fillCart(t, db, buyer, detail, true)
	ctx := context.Background()

	order, err := svc.Checkout(ctx, buyer.ID)
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}

	other := &model.User{Email: "other@example.com", Password: "x", Kind: model.UserKindBuyer}
	db.Create(other)

	_, err = svc.Get(ctx, other.ID, model.UserKindBuyer, order.ID)
	if apperr.KindOf(err) != apperr.KindPermission {
		t.Errorf("Kind = %s, want %s", apperr.KindOf(err), apperr.KindPermission)
	}

	// 订单主人可以看
	if _, err := svc.Get(ctx, buyer.ID, model.UserKindBuyer, order.ID); err != nil {
		t.Errorf("订单主人 Get() error = %v", err)
	}

	// 相关供应商可以看
	var shop model.Shop
	db.First(&shop, detail.ShopID)
	if _, err := svc.Get(ctx, shop.ManagerID, model.UserKindSupplier, order.ID); err != nil {
		t.Errorf("供应商 Get() error = %v", err)
	}
}
