package models

// TrainingRow 合成データ生成器が出力する学習データの1行
type TrainingRow struct {
	ProductName     string  `json:"product_name"`
	ProductCategory string  `json:"product_category"`
	Promotion       int     `json:"promotion"`
	UnitPrice       float64 `json:"unit_price"`
	Comp1           float64 `json:"comp_1"`
	Comp2           float64 `json:"comp_2"`
	Comp3           float64 `json:"comp_3"`
	Holiday         int     `json:"holiday"`
	Weekend         int     `json:"weekend"`
	Month           int     `json:"month"`
	Qty             int     `json:"qty"` // 目的変数（販売数量）
}

// Observation 推論用の観測値（学習行からqtyを除いた形）
type Observation struct {
	ProductName     string  `json:"product_name"`
	ProductCategory string  `json:"product_category"`
	Promotion       int     `json:"promotion"`
	UnitPrice       float64 `json:"unit_price"`
	Comp1           float64 `json:"comp_1"`
	Comp2           float64 `json:"comp_2"`
	Comp3           float64 `json:"comp_3"`
	Holiday         int     `json:"holiday"`
	Weekend         int     `json:"weekend"`
	Month           int     `json:"month"`
}

// Observation 学習行を推論用の観測値へ変換
func (r TrainingRow) Observation() Observation {
	return Observation{
		ProductName:     r.ProductName,
		ProductCategory: r.ProductCategory,
		Promotion:       r.Promotion,
		UnitPrice:       r.UnitPrice,
		Comp1:           r.Comp1,
		Comp2:           r.Comp2,
		Comp3:           r.Comp3,
		Holiday:         r.Holiday,
		Weekend:         r.Weekend,
		Month:           r.Month,
	}
}

// PredictRequest /pricing/predict のリクエストボディ
type PredictRequest struct {
	ProductName     string  `json:"product_name" binding:"required"`
	ProductCategory string  `json:"product_category" binding:"required"`
	Promotion       int     `json:"promotion"`
	UnitCost        float64 `json:"unit_cost" binding:"required,gt=0"`
	UnitPrice       float64 `json:"unit_price" binding:"required,gt=0"`
	Comp1           float64 `json:"comp_1"`
	Comp2           float64 `json:"comp_2"`
	Comp3           float64 `json:"comp_3"`
	Holiday         int     `json:"holiday"`
	Weekend         int     `json:"weekend"`
	Month           int     `json:"month" binding:"required,min=1,max=12"`
}

// Observation リクエストから観測値を構築（unit_costは含まない）
func (req PredictRequest) Observation() Observation {
	return Observation{
		ProductName:     req.ProductName,
		ProductCategory: req.ProductCategory,
		Promotion:       req.Promotion,
		UnitPrice:       req.UnitPrice,
		Comp1:           req.Comp1,
		Comp2:           req.Comp2,
		Comp3:           req.Comp3,
		Holiday:         req.Holiday,
		Weekend:         req.Weekend,
		Month:           req.Month,
	}
}

// OptimizeRequest /pricing/optimize のリクエストボディ。
// 最適化は価格グリッドを走査するため、unit_priceは要求しません。
type OptimizeRequest struct {
	ProductName     string  `json:"product_name" binding:"required"`
	ProductCategory string  `json:"product_category" binding:"required"`
	Promotion       int     `json:"promotion"`
	UnitCost        float64 `json:"unit_cost" binding:"required,gt=0"`
	Comp1           float64 `json:"comp_1"`
	Comp2           float64 `json:"comp_2"`
	Comp3           float64 `json:"comp_3"`
	Holiday         int     `json:"holiday"`
	Weekend         int     `json:"weekend"`
	Month           int     `json:"month" binding:"required,min=1,max=12"`
}

// Observation リクエストから観測値を構築（価格はグリッド走査で上書きされる）
func (req OptimizeRequest) Observation() Observation {
	return Observation{
		ProductName:     req.ProductName,
		ProductCategory: req.ProductCategory,
		Promotion:       req.Promotion,
		Comp1:           req.Comp1,
		Comp2:           req.Comp2,
		Comp3:           req.Comp3,
		Holiday:         req.Holiday,
		Weekend:         req.Weekend,
		Month:           req.Month,
	}
}

// UserPrediction 利用者が入力した価格に対する予測値
type UserPrediction struct {
	Demand  float64 `json:"demand"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

// OptimalPrediction 利益最大化点の要約
type OptimalPrediction struct {
	OptimalPrice  float64 `json:"optimal_price"`
	OptimalDemand float64 `json:"optimal_demand"`
	MaxProfit     float64 `json:"max_profit"`
}

// PlotData 価格グリッド全体の曲線（グラフ描画用）
type PlotData struct {
	Prices []float64 `json:"prices"`
	Demand []float64 `json:"demand"`
	Profit []float64 `json:"profit"`
}

// PredictResponse /pricing/predict のレスポンスボディ
type PredictResponse struct {
	Success           bool              `json:"success"`
	UserPrediction    UserPrediction    `json:"user_prediction"`
	OptimalPrediction OptimalPrediction `json:"optimal_prediction"`
	PlotData          PlotData          `json:"plot_data"`
}

// OptimizationResult 価格最適化の結果（arg-maxと51点のサンプル曲線）
type OptimizationResult struct {
	OptimalPrice  float64   `json:"optimal_price"`
	OptimalDemand float64   `json:"optimal_demand"`
	MaxProfit     float64   `json:"max_profit"`
	PriceRange    []float64 `json:"price_range"`
	DemandCurve   []float64 `json:"demand_curve"`
	ProfitCurve   []float64 `json:"profit_curve"`
}
