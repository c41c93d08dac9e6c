package main

import (
	"log"
	"math/rand"
	"net/http"
	"time"

	config "retail-pricing-api/configs"
	"retail-pricing-api/pkg/handlers"
	"retail-pricing-api/pkg/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .envファイルを読み込み
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// 設定の読み込み
	cfg := config.LoadConfig()

	// Ginルーターの初期化
	r := gin.Default()

	// サービスの初期化
	catalog := config.DefaultCatalog()
	seed := cfg.DatasetSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	monitoringService := services.NewMonitoringService()
	datasetService := services.NewDatasetService(catalog, rng)
	encoder := services.NewFeatureEncoder(catalog)
	modelService := services.NewPricingModelService(encoder)
	optimizerService := services.NewPriceOptimizerService(catalog, modelService)

	// 起動時にモデルを学習。学習完了までサービスはreadyにならない。
	log.Println("⏳ 合成データセットを生成してモデルを学習します...")
	rows := datasetService.Generate()
	if err := modelService.Train(rows); err != nil {
		log.Fatalf("モデルの学習に失敗しました: %v", err)
	}
	log.Printf("✅ モデルの学習が完了しました（%d行）", len(rows))

	// ハンドラーの初期化
	pricingHandler := handlers.NewPricingHandler(catalog, modelService, optimizerService)
	datasetHandler := handlers.NewDatasetHandler(datasetService)
	adminHandler := handlers.NewAdminHandler(cfg, modelService)
	monitoringHandler := handlers.NewMonitoringHandler(monitoringService)

	// ミドルウェアの登録
	r.Use(monitoringService.LoggingMiddleware()) // ロギングミドルウェアをグローバルに適用
	r.Use(cors.Default())

	// 認証ミドルウェア
	authMiddleware := func(apiKey string) gin.HandlerFunc {
		return func(c *gin.Context) {
			if apiKey == "" || apiKey == "default_secret_key" {
				c.Next()
				return
			}
			providedKey := c.GetHeader("X-API-KEY")
			if providedKey != apiKey {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			c.Next()
		}
	}

	// ヘルスチェックエンドポイント
	r.GET("/health", handlers.HealthCheck(modelService))

	// APIバージョン1のルートグループ
	v1 := r.Group("/api/v1")
	v1.Use(authMiddleware(cfg.APIKey))
	{
		// 管理者向けAPI
		admin := v1.Group("/admin")
		{
			admin.GET("/health-status", adminHandler.GetHealthStatus)
			admin.POST("/maintenance/start", adminHandler.StartMaintenance)
			admin.POST("/maintenance/stop", adminHandler.StopMaintenance)
		}

		// モニタリングAPI
		monitoring := v1.Group("/monitoring")
		{
			monitoring.GET("/logs", monitoringHandler.GetLogs)
		}

		// 価格最適化API
		pricing := v1.Group("/pricing")
		{
			pricing.GET("/config", pricingHandler.GetConfig)
			pricing.POST("/predict", pricingHandler.Predict)
			pricing.POST("/optimize", pricingHandler.Optimize)
		}

		// データセットAPI
		dataset := v1.Group("/dataset")
		{
			dataset.GET("/export", datasetHandler.Export)
		}
	}

	log.Printf("Starting Retail Pricing API server on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
