package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"onlyexchange/address"
	"onlyexchange/checkout"
	"onlyexchange/logger"
	"onlyexchange/metrics"
	"onlyexchange/pricefeed"
	"onlyexchange/utils"
	"onlyexchange/web/controllers"
	"onlyexchange/web/db"
	"onlyexchange/web/middleware"
)

func init() {
	utils.LoadEnv()
	db.Connect()
	db.Sync()
}

func main() {
	log := logger.NewZapLogger(os.Getenv("LOG_LEVEL"))
	rec := metrics.NewPrometheusRecorder()

	priceAPI := utils.Env("PRICE_API", "https://api.only.exchange")
	addressAPI := utils.Env("ADDRESS_API", "https://api.only.exchange")

	prices := pricefeed.New(priceAPI, log, rec)
	prices.Start(context.Background())

	issuer := address.New(addressAPI, log, rec)
	issuer.DemoFallback = os.Getenv("DEMO_FALLBACK") == "true"
	if issuer.DemoFallback {
		log.Warn("demo fallback addresses enabled, issued addresses may be non-functional", nil)
	}

	controllers.Init(checkout.Deps{
		Prices: prices,
		Issuer: issuer,
		Pool:   checkout.NewAmountPool(),
		Log:    log,
		Rec:    rec,
	})
	controllers.StartSessionSweeper()

	r := gin.Default()
	r.Use(cors.Default())

	globalLimiter := middleware.NewRateLimiter(60, time.Minute) // 60 requests/min/IP
	globalLimiter.StartCleanup(10 * time.Minute)

	r.GET("/healthz", controllers.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api", globalLimiter.Middleware())
	api.GET("/products", controllers.Products)
	api.GET("/products/:product", controllers.Product)
	api.POST("/products/:product/checkout", controllers.CreateSession)
	api.GET("/methods", controllers.Methods)
	api.GET("/checkout/:id", controllers.GetSession)
	api.POST("/checkout/:id/select", controllers.UpdateSelection)
	api.POST("/checkout/:id/start", controllers.StartPayment)
	api.POST("/checkout/:id/cancel", controllers.CancelSession)
	api.GET("/checkout/:id/qr.png", controllers.SessionQR)

	r.Run(":" + utils.Env("GIN_PORT", "8080"))
}
