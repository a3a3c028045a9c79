package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront_dev_v1_202601/internal/config"
	"storefront_dev_v1_202601/internal/controller"
	"storefront_dev_v1_202601/internal/model"
	"storefront_dev_v1_202601/internal/repository"
	"storefront_dev_v1_202601/internal/router"
	"storefront_dev_v1_202601/internal/service"
	"storefront_dev_v1_202601/internal/task"
	"storefront_dev_v1_202601/pkg/database"
	"storefront_dev_v1_202601/pkg/logger"
	"storefront_dev_v1_202601/pkg/theme"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径 (缺省时搜索 ./config.yaml)")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	// 2. 初始化日志与主题
	logger.Init(cfg.Log.Level, cfg.Log.Development)
	defer logger.Sync()
	theme.Init(theme.Mode(cfg.Theme.Mode))

	// 3. 初始化数据库
	db := initDatabase(cfg)

	// 4. 初始化依赖
	deps := initDependencies(cfg, db)

	// 5. 启动后台任务
	tm := initTasks(cfg, deps)
	defer tm.Stop()

	// 6. 初始化路由
	r := router.SetupRouter(deps.Controllers, router.Options{
		TemplateGlob:     "templates/*.html",
		CheckoutCooldown: cfg.Server.CheckoutCooldown,
	})

	// 7. 启动服务
	startServer(cfg, r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Snapshot  repository.ProductSnapshotRepository
	CartStore repository.CartStore
}

// Services 服务集合
type Services struct {
	Catalog *service.CatalogService
	Cart    *service.CartService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config) *gorm.DB {
	return database.InitDB(cfg.Database.DSN,
		&model.ProductSnapshot{},
		&repository.CartEntry{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		Snapshot:  repository.NewProductSnapshotRepository(db),
		CartStore: initCartStore(cfg, db),
	}

	// -------- 服务层 --------
	catalogSvc := service.NewCatalogService(&service.CatalogConfig{
		BaseURL:    cfg.Catalog.BaseURL,
		Timeout:    cfg.Catalog.Timeout,
		RetryCount: cfg.Catalog.RetryCount,
		CacheTTL:   cfg.Catalog.CacheTTL,
	}, repos.Snapshot)

	cartSvc := service.NewCartService(repos.CartStore)
	// 引擎的操作通知落一份结构化日志，排查用户反馈时能对上时间线
	cartSvc.Subscribe(func(n service.Notification) {
		logger.L().Info("购物车通知",
			zap.String("level", string(n.Level)),
			zap.String("message", n.Message))
	})

	services := &Services{Catalog: catalogSvc, Cart: cartSvc}

	// -------- 控制器层 --------
	controllers := &router.Controllers{
		Product: controller.NewProductController(catalogSvc),
		Cart:    controller.NewCartController(cartSvc, catalogSvc),
		Page:    controller.NewPageController(catalogSvc, cartSvc),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initCartStore 按配置选择购物车存储后端
func initCartStore(cfg *config.Config, db *gorm.DB) repository.CartStore {
	if cfg.Cart.Backend == "redis" {
		store, err := repository.NewRedisCartStore(cfg.Cart.RedisAddr)
		if err != nil {
			log.Fatalf("Redis 购物车存储初始化失败: %v", err)
		}
		return store
	}
	return repository.NewKVCartStore(db)
}

// initTasks 启动后台任务
func initTasks(cfg *config.Config, deps *Dependencies) *task.TaskManager {
	catalogTask := task.NewCatalogSyncTask(deps.Services.Catalog, deps.Repos.Snapshot)
	tm := task.NewTaskManager(catalogTask)

	if err := tm.Start(&task.TaskManagerConfig{
		CatalogEnabled: cfg.Catalog.SyncEnabled,
		CatalogSpec:    cfg.Catalog.SyncSpec,
	}); err != nil {
		log.Fatalf("后台任务启动失败: %v", err)
	}
	return tm
}

// startServer 启动服务
func startServer(cfg *config.Config, handler http.Handler) {
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 %s", cfg.Server.Addr)
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
