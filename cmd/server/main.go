package main

import (
	"database/sql"
	"net/http"

	"cartmart-be/internal/config"
	"cartmart-be/internal/dashboard"
	"cartmart-be/internal/db"
	"cartmart-be/internal/handlers"
	"cartmart-be/internal/logger"
	"cartmart-be/internal/order"
	"cartmart-be/internal/payment"
	"cartmart-be/internal/product"
	"cartmart-be/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Indirections for testing.
var (
	initDBFunc      = db.InitDB
	startServerFunc = http.ListenAndServe
)

// newServer assembles repositories, services, and the REST router.
func newServer(cfg *config.Config, database *sql.DB) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	paymentRepo := payment.NewRepository(database)
	gateway := payment.NewStubGateway()

	orderRepo := order.NewRepository(database, productRepo)
	orderSvc := order.NewService(orderRepo, paymentRepo, gateway)

	dashboardRepo := dashboard.NewRepository(database)
	dashboardSvc := dashboard.NewService(dashboardRepo)

	return handlers.NewRouter(handlers.Handlers{
		Auth:      handlers.NewAuthHandler(userSvc),
		User:      handlers.NewUserHandler(userSvc),
		Product:   handlers.NewProductHandler(productSvc),
		Order:     handlers.NewOrderHandler(orderSvc, paymentRepo),
		Dashboard: handlers.NewDashboardHandler(dashboardSvc),
	})
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	router := newServer(cfg, database)

	logger.L().Info("server listening", zap.String("port", cfg.AppPort))
	return startServerFunc(":"+cfg.AppPort, router)
}

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server exited", zap.Error(err))
	}
}
