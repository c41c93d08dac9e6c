package services

import (
	"math"
	"math/rand"
	"testing"

	config "retail-pricing-api/configs"
	"retail-pricing-api/pkg/models"

	"github.com/stretchr/testify/assert"
)

// 単一商品のテスト用カタログ
func newTestCatalog() *config.Catalog {
	return config.NewCatalog(
		[]string{"Test Category"},
		map[string]config.CategorySpec{
			"Test Category": {
				Products: []string{"Test Product", "Other Product"},
				PriceMin: 100,
				PriceMax: 1000,
			},
		},
	)
}

// 既知の線形関係 qty = 2000 - 2*price に従う学習データを作る
func linearRows(n int) []models.TrainingRow {
	rows := make([]models.TrainingRow, 0, n)
	for i := 0; i < n; i++ {
		price := 100 + float64(i)*(900/float64(n-1))
		qty := int(math.Round(2000 - 2*price))
		rows = append(rows, models.TrainingRow{
			ProductName:     "Test Product",
			ProductCategory: "Test Category",
			UnitPrice:       price,
			Month:           1,
			Qty:             qty,
		})
	}
	return rows
}

func TestTrainEmptyDataset(t *testing.T) {
	encoder := NewFeatureEncoder(newTestCatalog())
	model := NewPricingModelService(encoder)

	err := model.Train(nil)
	assert.ErrorIs(t, err, ErrEmptyTrainingSet)
	assert.False(t, model.IsReady())
}

func TestPredictBeforeTrain(t *testing.T) {
	encoder := NewFeatureEncoder(newTestCatalog())
	model := NewPricingModelService(encoder)

	_, err := model.Predict(models.Observation{ProductName: "Test Product"})
	assert.ErrorIs(t, err, ErrModelNotTrained)
}

func TestTrainSetsReadiness(t *testing.T) {
	encoder := NewFeatureEncoder(newTestCatalog())
	model := NewPricingModelService(encoder)

	assert.False(t, model.IsReady())
	err := model.Train(linearRows(100))
	assert.NoError(t, err)
	assert.True(t, model.IsReady())
}

// 既知の線形関係を学習させ、補間点の予測がそれを再現することを確認する。
func TestPredictRecoversLinearRelationship(t *testing.T) {
	encoder := NewFeatureEncoder(newTestCatalog())
	model := NewPricingModelService(encoder)

	err := model.Train(linearRows(200))
	assert.NoError(t, err)

	obs := models.Observation{
		ProductName:     "Test Product",
		ProductCategory: "Test Category",
		UnitPrice:       500,
		Month:           1,
	}
	demand, err := model.Predict(obs)
	assert.NoError(t, err)
	assert.InDelta(t, 1000, demand, 5)
}

// 線形フィットが負に外挿する極端な入力でも需要は0でクランプされる。
func TestPredictNeverNegative(t *testing.T) {
	encoder := NewFeatureEncoder(newTestCatalog())
	model := NewPricingModelService(encoder)

	err := model.Train(linearRows(100))
	assert.NoError(t, err)

	obs := models.Observation{
		ProductName:     "Test Product",
		ProductCategory: "Test Category",
		UnitPrice:       1e6, // 需要が負になる価格
		Month:           12,
	}
	demand, err := model.Predict(obs)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, demand, 0.0)
}

// 予測は係数と特徴量の決定的な線形結合であり、同じ入力は常に同じ出力になる。
func TestPredictDeterministic(t *testing.T) {
	encoder := NewFeatureEncoder(newTestCatalog())
	model := NewPricingModelService(encoder)

	err := model.Train(linearRows(100))
	assert.NoError(t, err)

	obs := models.Observation{
		ProductName:     "Test Product",
		ProductCategory: "Test Category",
		UnitPrice:       321.5,
		Month:           6,
	}
	first, err := model.Predict(obs)
	assert.NoError(t, err)
	second, err := model.Predict(obs)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

// フルカタログの合成データでも学習が成立し、全域で非負の予測を返す。
func TestTrainOnSyntheticDataset(t *testing.T) {
	catalog := config.DefaultCatalog()
	encoder := NewFeatureEncoder(catalog)
	dataset := NewDatasetService(catalog, rand.New(rand.NewSource(42)))
	model := NewPricingModelService(encoder)

	err := model.Train(dataset.Generate())
	assert.NoError(t, err)
	assert.True(t, model.IsReady())

	for _, product := range catalog.ProductNames()[:5] {
		demand, err := model.Predict(models.Observation{
			ProductName:     product,
			ProductCategory: catalog.CategoryNames()[0],
			UnitPrice:       500,
			Month:           6,
		})
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, demand, 0.0)
	}
}
