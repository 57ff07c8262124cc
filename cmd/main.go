package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"market_dev_v1_202601/internal/controller"
	"market_dev_v1_202601/internal/middleware"
	"market_dev_v1_202601/internal/model"
	"market_dev_v1_202601/internal/repository"
	"market_dev_v1_202601/internal/router"
	"market_dev_v1_202601/internal/service"
	"market_dev_v1_202601/internal/task"
	"market_dev_v1_202601/pkg/database"
	"market_dev_v1_202601/pkg/logger"
	"market_dev_v1_202601/pkg/utils"
)

func main() {
	// 0. 加载环境变量与日志
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}
	if err := logger.Init(&logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Environment: getEnv("APP_ENV", "development"),
		ServiceName: "market-api",
	}); err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}
	defer logger.Sync()

	// 1. 初始化数据库
	db := initDatabase()
	middleware.RegisterAuditCallbacks(db)

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 启动后台任务
	initTasks(deps)
	defer stopTasks(deps)

	// 4. 初始化路由
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLog(logger.L()))
	router.InitRoutes(r,
		deps.Controllers.Auth,
		deps.Controllers.Shop,
		deps.Controllers.PriceList,
		deps.Controllers.Product,
		deps.Controllers.Cart,
		deps.Controllers.Order,
		deps.Controllers.Contact,
	)

	// 5. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *Controllers
	NotifyTask  *task.NotifyTask
	CleanupTask *task.ImportLogCleanupTask
}

// Repositories 仓库集合
type Repositories struct {
	User      repository.UserRepository
	Shop      repository.ShopRepository
	Catalog   repository.CatalogRepository
	Cart      repository.CartRepository
	Order     repository.OrderRepository
	Contact   repository.ContactRepository
	ImportLog repository.ImportLogRepository
	TradeUow  *repository.TradeUnitOfWork
}

// Services 服务集合
type Services struct {
	User      *service.UserService
	Shop      *service.ShopService
	PriceList *service.PriceListService
	Reconcile *service.ReconcileService
	Product   *service.ProductService
	Cart      *service.CartService
	Order     *service.OrderService
	Contact   *service.ContactService
	Email     service.EmailService
}

// Controllers 控制器集合
type Controllers struct {
	Auth      *controller.AuthController
	Shop      *controller.ShopController
	PriceList *controller.PriceListController
	Product   *controller.ProductController
	Cart      *controller.CartController
	Order     *controller.OrderController
	Contact   *controller.ContactController
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN",
		"host=localhost user=market password=market dbname=market port=5432 sslmode=disable")

	return database.InitDB(dsn,
		// 用户与店铺
		&model.User{}, &model.Shop{}, &model.Contact{},
		// 目录
		&model.Category{}, &model.Product{}, &model.ProductDetail{},
		&model.Parameter{}, &model.ProductParameter{},
		// 交易
		&model.Cart{}, &model.CartItem{}, &model.Order{}, &model.OrderItem{},
		// 导入记录
		&model.ImportLog{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	zlog := logger.L()

	// -------- Repo 层 --------
	repos := &Repositories{
		User:      repository.NewUserRepository(db),
		Shop:      repository.NewShopRepository(db),
		Catalog:   repository.NewCatalogRepository(db),
		Cart:      repository.NewCartRepository(db),
		Order:     repository.NewOrderRepository(db),
		Contact:   repository.NewContactRepository(db),
		ImportLog: repository.NewImportLogRepository(db),
		TradeUow:  repository.NewTradeUnitOfWork(db),
	}

	// -------- 后台任务（Service 层依赖通知入口，先建） --------
	emailSvc := service.NewEmailService()
	notifyTask := task.NewNotifyTask(emailSvc, zlog, 0)

	// -------- Service 层 --------
	httpClient := utils.NewHTTPClient(20 * time.Second)
	services := &Services{
		User:      service.NewUserService(repos.User, repos.Cart),
		Shop:      service.NewShopService(repos.Shop),
		PriceList: service.NewPriceListService(httpClient, 0, zlog),
		Reconcile: service.NewReconcileService(repos.Catalog, repos.ImportLog, zlog),
		Product:   service.NewProductService(repos.Catalog),
		Cart:      service.NewCartService(repos.Cart, repos.Catalog, repos.Contact),
		Contact:   service.NewContactService(repos.Contact),
		Email:     emailSvc,
	}
	services.Order = service.NewOrderService(
		repos.TradeUow, repos.Order, repos.Cart, repos.User, repos.Shop,
		notifyTask, zlog,
	)

	// -------- Controller 层 --------
	controllers := &Controllers{
		Auth:      controller.NewAuthController(services.User),
		Shop:      controller.NewShopController(services.Shop),
		PriceList: controller.NewPriceListController(services.PriceList, services.Reconcile, services.Shop),
		Product:   controller.NewProductController(services.Product),
		Cart:      controller.NewCartController(services.Cart),
		Order:     controller.NewOrderController(services.Order),
		Contact:   controller.NewContactController(services.Contact),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
		NotifyTask:  notifyTask,
		CleanupTask: task.NewImportLogCleanupTask(repos.ImportLog, zlog, 0),
	}
}

// ==================== 后台任务 ====================

// initTasks 启动后台任务
func initTasks(deps *Dependencies) {
	deps.NotifyTask.Start()
	deps.CleanupTask.Start()
}

// stopTasks 停止后台任务
func stopTasks(deps *Dependencies) {
	deps.CleanupTask.Stop()
	deps.NotifyTask.Stop()
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
