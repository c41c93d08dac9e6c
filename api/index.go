package handler

import (
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	config "retail-pricing-api/configs"
	"retail-pricing-api/pkg/handlers"
	"retail-pricing-api/pkg/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	app  *gin.Engine
	once sync.Once
)

// setupApp はGinアプリケーションを初期化します。
// サーバーレス環境では、リクエストごとに初期化が走らないようsync.Onceで一度だけ実行します。
// モデルの学習も初回リクエスト時に一度だけ行われます。
func setupApp() *gin.Engine {
	once.Do(func() {
		log.Printf("🟢 [setupApp] Initializing Gin application")

		// 環境変数はデプロイ先の設定から読み込まれるため、ここではgodotenvを呼び出しません。
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

		rows := datasetService.Generate()
		if err := modelService.Train(rows); err != nil {
			log.Printf("FATAL: モデルの学習に失敗しました: %v", err)
		}

		// ハンドラーの初期化
		pricingHandler := handlers.NewPricingHandler(catalog, modelService, optimizerService)
		datasetHandler := handlers.NewDatasetHandler(datasetService)
		adminHandler := handlers.NewAdminHandler(cfg, modelService)
		monitoringHandler := handlers.NewMonitoringHandler(monitoringService)

		// ミドルウェアの登録
		r.Use(monitoringService.LoggingMiddleware())
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowAllOrigins = true
		r.Use(cors.New(corsConfig))

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

		// APIルートの定義
		v1 := r.Group("/api/v1")
		v1.Use(authMiddleware(cfg.APIKey))
		{
			admin := v1.Group("/admin")
			{
				admin.GET("/health-status", adminHandler.GetHealthStatus)
				admin.POST("/maintenance/start", adminHandler.StartMaintenance)
				admin.POST("/maintenance/stop", adminHandler.StopMaintenance)
			}

			monitoring := v1.Group("/monitoring")
			{
				monitoring.GET("/logs", monitoringHandler.GetLogs)
			}

			pricing := v1.Group("/pricing")
			{
				pricing.GET("/config", pricingHandler.GetConfig)
				pricing.POST("/predict", pricingHandler.Predict)
				pricing.POST("/optimize", pricingHandler.Optimize)
			}

			dataset := v1.Group("/dataset")
			{
				dataset.GET("/export", datasetHandler.Export)
			}
		}

		app = r
	})
	return app
}

// Handler はサーバーレス環境からのすべてのリクエストを処理するエントリーポイントです。
func Handler(w http.ResponseWriter, r *http.Request) {
	app := setupApp()
	app.ServeHTTP(w, r)
}
