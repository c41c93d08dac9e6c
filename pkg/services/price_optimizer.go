package services

import (
	"math"

	config "retail-pricing-api/configs"
	"retail-pricing-api/pkg/models"
)

const (
	// 価格帯の分割ステップ数（グリッド点数はgridSteps+1）
	gridSteps = 50

	// カタログに存在しない商品のフォールバック価格帯
	fallbackPriceMin = 0
	fallbackPriceMax = 10000
)

// PriceOptimizerService は固定の観測条件の下で価格のみを動かし、
// 利益を最大化する価格点をグリッド探索で求めるサービスです。
type PriceOptimizerService struct {
	catalog *config.Catalog
	model   *PricingModelService
}

// NewPriceOptimizerService 新しい価格最適化サービスを作成
func NewPriceOptimizerService(catalog *config.Catalog, model *PricingModelService) *PriceOptimizerService {
	return &PriceOptimizerService{
		catalog: catalog,
		model:   model,
	}
}

// Optimize は商品の有効価格帯を51点に分割し、各点の需要・利益を評価して
// 利益最大の価格と曲線全体を返します。
// 商品がカタログに見つからない場合は[0, 10000]の全域をフォールバックとして
// 使用し、エラーにはしません。
func (s *PriceOptimizerService) Optimize(obs models.Observation, unitCost float64) (*models.OptimizationResult, error) {
	priceMin, priceMax, ok := s.catalog.PriceRange(obs.ProductName)
	if !ok {
		priceMin, priceMax = fallbackPriceMin, fallbackPriceMax
	}

	step := (priceMax - priceMin) / gridSteps

	priceRange := make([]float64, 0, gridSteps+1)
	demandCurve := make([]float64, 0, gridSteps+1)
	profitCurve := make([]float64, 0, gridSteps+1)

	bestProfit := math.Inf(-1)
	optimalPrice := priceMin
	optimalDemand := 0.0

	for i := 0; i <= gridSteps; i++ {
		price := priceMin + float64(i)*step

		gridObs := obs
		gridObs.UnitPrice = price

		demand, err := s.model.Predict(gridObs)
		if err != nil {
			return nil, err
		}

		revenue := price * demand
		profit := revenue - unitCost*demand

		priceRange = append(priceRange, Round2(price))
		demandCurve = append(demandCurve, Round2(demand))
		profitCurve = append(profitCurve, Round2(profit))

		// 厳密な大なり比較。利益が同値の場合は先に見つけた（低い）価格を保持する。
		if profit > bestProfit {
			bestProfit = profit
			optimalPrice = price
			optimalDemand = demand
		}
	}

	return &models.OptimizationResult{
		OptimalPrice:  Round2(optimalPrice),
		OptimalDemand: Round2(optimalDemand),
		MaxProfit:     Round2(bestProfit),
		PriceRange:    priceRange,
		DemandCurve:   demandCurve,
		ProfitCurve:   profitCurve,
	}, nil
}

// Round2 は小数第2位へ丸めます（0.5は0から遠い方へ）。
// 丸めは出力値ごとに独立して適用し、中間計算には適用しません。
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
