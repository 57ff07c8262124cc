package service

import (
	"context"

	"go.uber.org/zap"

	"market_dev_v1_202601/internal/api/dto"
	"market_dev_v1_202601/internal/apperr"
	"market_dev_v1_202601/internal/middleware"
	"market_dev_v1_202601/internal/model"
	"market_dev_v1_202601/internal/repository"
)

// ==================== OrderNotifier 下单通知 ====================

// OrderNotifier 下单后的异步通知入口
// 实现方不允许阻塞结算流程，投递失败只记日志
type OrderNotifier interface {
	NotifyOrderCreated(orderID int64, email string)
}

// ==================== OrderService 订单服务 ====================

// OrderService 订单服务
type OrderService struct {
	uow       *repository.TradeUnitOfWork
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	userRepo  repository.UserRepository
	shopRepo  repository.ShopRepository
	notifier  OrderNotifier
	logger    *zap.Logger
}

// NewOrderService 创建订单服务
func NewOrderService(
	uow *repository.TradeUnitOfWork,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	userRepo repository.UserRepository,
	shopRepo repository.ShopRepository,
	notifier OrderNotifier,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		uow:       uow,
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		userRepo:  userRepo,
		shopRepo:  shopRepo,
		notifier:  notifier,
		logger:    logger,
	}
}

// ==================== 结算 ====================

// Checkout 购物车结算
// 前置条件：购物车非空且已设置联系方式
// 购物车 -> 订单的转换在一个事务里完成：建单、快照行项目、清空购物车
func (s *OrderService) Checkout(ctx context.Context, userID int64) (*dto.OrderDetailResp, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, apperr.NotFound("购物车")
	}
	if len(cart.Items) == 0 {
		return nil, apperr.Precondition("购物车为空，无法结算")
	}
	if cart.ContactID == nil {
		return nil, apperr.Precondition("结算前必须设置联系方式")
	}

	var orderID int64
	err = s.uow.Transaction(ctx, func(uow *repository.TradeUnitOfWork) error {
		order := &model.Order{
			UserID:    userID,
			Status:    model.OrderStatusNew,
			ContactID: cart.ContactID,
		}
		if err := uow.Orders.Create(ctx, order); err != nil {
			return err
		}

		items := make([]model.OrderItem, 0, len(cart.Items))
		for _, ci := range cart.Items {
			item := model.OrderItem{
				OrderID:         order.ID,
				ProductDetailID: ci.ProductDetailID,
				Qty:             ci.Qty,
			}
			if ci.ProductDetail != nil {
				item.ShopID = ci.ProductDetail.ShopID
			}
			items = append(items, item)
		}
		if err := uow.Orders.CreateItems(ctx, items); err != nil {
			return err
		}

		// 清空购物车并解绑联系方式，购物车回到初始状态
		if err := uow.Carts.DeleteItemsByCart(ctx, cart.ID); err != nil {
			return err
		}
		if err := uow.Carts.SetContact(ctx, cart.ID, nil); err != nil {
			return err
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	middleware.RecordOrderCreated()

	// 事务提交后再通知，避免回滚后发出假通知
	if s.notifier != nil {
		if user, err := s.userRepo.GetByID(ctx, userID); err == nil && user != nil {
			s.notifier.NotifyOrderCreated(orderID, user.Email)
		} else {
			s.logger.Warn("下单通知未发送：查询用户失败",
				zap.Int64("order_id", orderID),
				zap.Int64("user_id", userID),
				zap.Error(err))
		}
	}

	return s.Get(ctx, userID, model.UserKindBuyer, orderID)
}

// ==================== 查询 ====================

// List 订单列表，按角色裁剪可见范围
//   - staff: 全部订单
//   - buyer: 自己的订单
//   - supplier: 包含本店铺报价的订单
func (s *OrderService) List(ctx context.Context, userID int64, role string, req *dto.ListOrdersRequest) (*dto.OrderListResp, error) {
	var (
		orders []model.Order
		total  int64
		err    error
	)

	switch role {
	case "staff":
		orders, total, err = s.orderRepo.ListAll(ctx, req.Page, req.PageSize)
	case model.UserKindSupplier:
		var shop *model.Shop
		shop, err = s.shopRepo.GetByManagerID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if shop == nil {
			return nil, apperr.NotFound("店铺")
		}
		orders, total, err = s.orderRepo.ListByShop(ctx, shop.ID, req.Page, req.PageSize)
	default:
		orders, total, err = s.orderRepo.ListByUser(ctx, userID, req.Page, req.PageSize)
	}
	if err != nil {
		return nil, err
	}

	data := make([]dto.OrderListItem, 0, len(orders))
	for i := range orders {
		data = append(data, dto.OrderListItem{
			ID:        orders[i].ID,
			UserID:    orders[i].UserID,
			Status:    orders[i].Status,
			CreatedAt: orders[i].CreatedAt,
		})
	}
	return &dto.OrderListResp{
		Code:     200,
		Message:  "success",
		Data:     data,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

// Get 订单详情
// 采购方只能看自己的订单；供应商只能看包含本店铺报价的订单
func (s *OrderService) Get(ctx context.Context, userID int64, role string, orderID int64) (*dto.OrderDetailResp, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.NotFound("订单")
	}

	switch role {
	case "staff":
		// 不限制
	case model.UserKindSupplier:
		shop, err := s.shopRepo.GetByManagerID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if shop == nil {
			return nil, apperr.Permission("无权查看该订单")
		}
		ok, err := s.orderRepo.ContainsShopItems(ctx, orderID, shop.ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.Permission("无权查看该订单")
		}
	default:
		if order.UserID != userID {
			return nil, apperr.Permission("无权查看该订单")
		}
	}

	return s.toOrderDetailResp(order), nil
}

// toOrderDetailResp 转换为订单详情 DTO，合计按当前报价计算
func (s *OrderService) toOrderDetailResp(order *model.Order) *dto.OrderDetailResp {
	resp := &dto.OrderDetailResp{
		ID:        order.ID,
		UserID:    order.UserID,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
		ContactID: order.ContactID,
		Items:     make([]dto.OrderItemVO, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		vo := dto.OrderItemVO{
			ID:              item.ID,
			ProductDetailID: item.ProductDetailID,
			Qty:             item.Qty,
		}
		if item.ProductDetail != nil {
			vo.Price = item.ProductDetail.Price
			if item.ProductDetail.Product != nil {
				vo.ProductName = item.ProductDetail.Product.Name
			}
			resp.Total += item.ProductDetail.Price * item.Qty
		}
		resp.Items = append(resp.Items, vo)
	}
	return resp
}
