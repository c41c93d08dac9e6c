package handlers

import (
	"errors"
	"net/http"

	config "retail-pricing-api/configs"
	"retail-pricing-api/pkg/models"
	"retail-pricing-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// PricingHandler 需要予測・価格最適化のハンドラー
type PricingHandler struct {
	catalog   *config.Catalog
	model     *services.PricingModelService
	optimizer *services.PriceOptimizerService
}

// NewPricingHandler 新しい価格最適化ハンドラーを作成
func NewPricingHandler(catalog *config.Catalog, model *services.PricingModelService, optimizer *services.PriceOptimizerService) *PricingHandler {
	return &PricingHandler{
		catalog:   catalog,
		model:     model,
		optimizer: optimizer,
	}
}

// GetConfig はカタログ（カテゴリ→商品リスト・価格帯）を返します。
func (ph *PricingHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, ph.catalog.ToMap())
}

// Predict は入力された価格に対する需要・売上・利益の予測と、
// 価格最適化の結果（最適点＋51点の曲線）をまとめて返します。
func (ph *PricingHandler) Predict(c *gin.Context) {
	if !ph.model.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "モデルはまだ学習中です。しばらくしてから再試行してください。",
		})
		return
	}

	var request models.PredictRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "リクエストの解析に失敗しました: " + err.Error(),
		})
		return
	}

	obs := request.Observation()

	// 利用者の入力価格に対する予測
	userDemand, err := ph.model.Predict(obs)
	if err != nil {
		ph.respondPredictionError(c, err)
		return
	}
	userRevenue := request.UnitPrice * userDemand
	userProfit := userRevenue - request.UnitCost*userDemand

	// 価格最適化
	optimal, err := ph.optimizer.Optimize(obs, request.UnitCost)
	if err != nil {
		ph.respondPredictionError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.PredictResponse{
		Success: true,
		UserPrediction: models.UserPrediction{
			Demand:  services.Round2(userDemand),
			Revenue: services.Round2(userRevenue),
			Profit:  services.Round2(userProfit),
		},
		OptimalPrediction: models.OptimalPrediction{
			OptimalPrice:  optimal.OptimalPrice,
			OptimalDemand: optimal.OptimalDemand,
			MaxProfit:     optimal.MaxProfit,
		},
		PlotData: models.PlotData{
			Prices: optimal.PriceRange,
			Demand: optimal.DemandCurve,
			Profit: optimal.ProfitCurve,
		},
	})
}

// Optimize は価格最適化の結果のみを返します。
func (ph *PricingHandler) Optimize(c *gin.Context) {
	if !ph.model.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "モデルはまだ学習中です。しばらくしてから再試行してください。",
		})
		return
	}

	var request models.OptimizeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "リクエストの解析に失敗しました: " + err.Error(),
		})
		return
	}

	result, err := ph.optimizer.Optimize(request.Observation(), request.UnitCost)
	if err != nil {
		ph.respondPredictionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// respondPredictionError は予測系エラーをHTTPステータスへ対応付けます。
// 未学習エラーは一時的な503として返し、クラッシュ扱いにはしません。
func (ph *PricingHandler) respondPredictionError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrModelNotTrained) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "モデルはまだ学習中です。しばらくしてから再試行してください。",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "予測の実行に失敗しました: " + err.Error(),
	})
}
