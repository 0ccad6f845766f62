// Package api wires the HTTP surface: middleware, auth gates and handlers under /api.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/MikeMC777/storex/docs"
	"github.com/MikeMC777/storex/internal/auth"
	"github.com/MikeMC777/storex/internal/httpx"
	"github.com/MikeMC777/storex/internal/order"
	"github.com/MikeMC777/storex/internal/payment"
	"github.com/MikeMC777/storex/internal/storage"
	"github.com/MikeMC777/storex/internal/telemetry"
)

type Deps struct {
	Store      *storage.Store
	Verifier   auth.Verifier
	AdminRole  string
	CORSOrigin string
	Logger     *zap.Logger
	Metrics    *telemetry.Metrics
	Gatherer   prometheus.Gatherer
}

func NewRouter(d Deps) *gin.Engine {
	RegisterValidators()
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Metrics == nil {
		d.Metrics = telemetry.NewMetrics("storex", nil)
	}

	orders := order.NewService(d.Store.Orders, d.Store.Addresses, d.Store.Products, d.Metrics)
	payments := payment.NewService(d.Store.Payments, orders, d.Metrics)

	r := gin.New()
	r.Use(
		httpx.RequestID(),
		httpx.Tracing(),
		httpx.Logger(d.Logger),
		httpx.Metrics(d.Metrics),
		httpx.CORS(d.CORSOrigin),
		httpx.ErrorHandler(),
		httpx.Recovery(),
	)

	r.GET("/healthz", healthHandler(d.Store))
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authn := auth.RequireAuth(d.Verifier)
	admin := auth.RequireAdmin(d.AdminRole)
	api := r.Group("/api")

	products := api.Group("/products")
	products.GET("", listProductsHandler(d.Store.Products))
	products.POST("", authn, admin, createProductHandler(d.Store.Products, d.Store.Categories))
	products.GET("/:id", getProductHandler(d.Store.Products))
	products.PATCH("/:id", authn, admin, updateProductHandler(d.Store.Products, d.Store.Categories))
	products.DELETE("/:id", authn, admin, deleteProductHandler(d.Store.Products))
	products.PATCH("/:id/inventory", authn, updateInventoryHandler(d.Store.Products))

	categories := api.Group("/categories")
	categories.GET("", listCategoriesHandler(d.Store.Categories))
	categories.POST("", authn, admin, createCategoryHandler(d.Store.Categories))
	categories.GET("/:id", getCategoryHandler(d.Store.Categories))
	categories.PATCH("/:id", authn, admin, updateCategoryHandler(d.Store.Categories))
	categories.DELETE("/:id", authn, admin, deleteCategoryHandler(d.Store.Categories, d.Store.Products))

	ordersGroup := api.Group("/orders", authn)
	ordersGroup.POST("", createOrderHandler(orders))
	ordersGroup.GET("", listOrdersHandler(orders))
	ordersGroup.GET("/:id", getOrderHandler(orders, d.AdminRole))

	paymentsGroup := api.Group("/payments", authn)
	paymentsGroup.POST("", createPaymentHandler(payments))
	paymentsGroup.GET("/:id", getPaymentHandler(payments, d.AdminRole))

	return r
}

// healthHandler reports 503 while the store is unreachable.
func healthHandler(store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
