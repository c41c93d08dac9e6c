package services

import (
	config "retail-pricing-api/configs"
	"retail-pricing-api/pkg/models"
)

// 数値特徴量の数（promotion, unit_price, comp_1..3, holiday, weekend, month）
const numericFeatureCount = 8

// FeatureEncoder は観測値を固定長の特徴ベクトルへ変換します。
// one-hotブロックの名前→位置の対応は起動時にカタログから一度だけ構築され、
// 以降は不変です。未知の名前はエラーにせず全ゼロブロックへ縮退します。
type FeatureEncoder struct {
	productIndex  map[string]int
	categoryIndex map[string]int
	productCount  int
	categoryCount int
}

// NewFeatureEncoder カタログのスナップショットからエンコーダを構築
func NewFeatureEncoder(catalog *config.Catalog) *FeatureEncoder {
	products := catalog.ProductNames()
	categories := catalog.CategoryNames()

	productIndex := make(map[string]int, len(products))
	for i, name := range products {
		productIndex[name] = i
	}
	categoryIndex := make(map[string]int, len(categories))
	for i, name := range categories {
		categoryIndex[name] = i
	}

	return &FeatureEncoder{
		productIndex:  productIndex,
		categoryIndex: categoryIndex,
		productCount:  len(products),
		categoryCount: len(categories),
	}
}

// VectorLength 特徴ベクトルの固定長を返す
func (e *FeatureEncoder) VectorLength() int {
	return e.productCount + e.categoryCount + numericFeatureCount
}

// Encode は観測値を特徴ベクトルへ変換します。
// 並び順: 商品one-hot、カテゴリone-hot、promotion, unit_price,
// comp_1, comp_2, comp_3, holiday, weekend, month の固定順。
func (e *FeatureEncoder) Encode(obs models.Observation) []float64 {
	features := make([]float64, e.VectorLength())

	if idx, ok := e.productIndex[obs.ProductName]; ok {
		features[idx] = 1
	}
	if idx, ok := e.categoryIndex[obs.ProductCategory]; ok {
		features[e.productCount+idx] = 1
	}

	offset := e.productCount + e.categoryCount
	features[offset+0] = float64(obs.Promotion)
	features[offset+1] = obs.UnitPrice
	features[offset+2] = obs.Comp1
	features[offset+3] = obs.Comp2
	features[offset+4] = obs.Comp3
	features[offset+5] = float64(obs.Holiday)
	features[offset+6] = float64(obs.Weekend)
	features[offset+7] = float64(obs.Month)

	return features
}
