package services

import (
	"math/rand"
	"sync"
	"testing"

	config "retail-pricing-api/configs"

	"github.com/stretchr/testify/assert"
)

func TestGenerateDatasetSize(t *testing.T) {
	catalog := config.DefaultCatalog()
	service := NewDatasetService(catalog, rand.New(rand.NewSource(42)))

	rows := service.Generate()

	// |商品数| × 12か月 × 12サンプル
	expected := len(catalog.ProductNames()) * 12 * samplesPerMonthPerProduct
	assert.Equal(t, expected, len(rows))
}

func TestGenerateDatasetInvariants(t *testing.T) {
	catalog := config.DefaultCatalog()
	service := NewDatasetService(catalog, rand.New(rand.NewSource(1)))

	rows := service.Generate()
	assert.NotEmpty(t, rows)

	for _, row := range rows {
		// 数量は常に非負
		assert.GreaterOrEqual(t, row.Qty, 0)

		// 価格はカテゴリの価格帯に収まる
		priceMin, priceMax, ok := catalog.PriceRange(row.ProductName)
		assert.True(t, ok, "生成された商品はカタログに存在するはず: %s", row.ProductName)
		assert.GreaterOrEqual(t, row.UnitPrice, priceMin)
		assert.LessOrEqual(t, row.UnitPrice, priceMax)

		// 競合価格は自社価格の±15%以内
		for _, comp := range []float64{row.Comp1, row.Comp2, row.Comp3} {
			assert.GreaterOrEqual(t, comp, row.UnitPrice*0.85)
			assert.LessOrEqual(t, comp, row.UnitPrice*1.15)
		}

		assert.GreaterOrEqual(t, row.Month, 1)
		assert.LessOrEqual(t, row.Month, 12)
	}
}

// 二値特徴量の出現率が指定確率に近いことを統計的に確認する。
// サンプル数は1万超なので±3%の許容幅で十分安定する。
func TestGenerateDatasetBernoulliRates(t *testing.T) {
	catalog := config.DefaultCatalog()
	service := NewDatasetService(catalog, rand.New(rand.NewSource(7)))

	rows := service.Generate()

	var promotion, holiday, weekend int
	for _, row := range rows {
		promotion += row.Promotion
		holiday += row.Holiday
		weekend += row.Weekend
	}
	n := float64(len(rows))

	assert.InDelta(t, 0.30, float64(promotion)/n, 0.03)
	assert.InDelta(t, 0.12, float64(holiday)/n, 0.03)
	assert.InDelta(t, 0.35, float64(weekend)/n, 0.03)
}

// 同一商品でも価格が高いサンプルほど数量が小さい傾向（負の価格弾力性）を確認する。
func TestGenerateDatasetPriceElasticity(t *testing.T) {
	catalog := config.DefaultCatalog()
	service := NewDatasetService(catalog, rand.New(rand.NewSource(99)))

	rows := service.Generate()

	// 最初の商品・同一月のサンプルだけを取り出して相関の符号を見る
	product := catalog.ProductNames()[0]
	var prices, qtys []float64
	for _, row := range rows {
		if row.ProductName == product && row.Promotion == 0 && row.Holiday == 0 && row.Weekend == 0 {
			prices = append(prices, row.UnitPrice)
			qtys = append(qtys, float64(row.Qty))
		}
	}
	assert.Greater(t, len(prices), 10)

	var meanP, meanQ float64
	for i := range prices {
		meanP += prices[i]
		meanQ += qtys[i]
	}
	meanP /= float64(len(prices))
	meanQ /= float64(len(qtys))

	var cov float64
	for i := range prices {
		cov += (prices[i] - meanP) * (qtys[i] - meanQ)
	}
	assert.Less(t, cov, 0.0, "価格と数量の共分散は負になるはず")
}

// Generateはエクスポートエンドポイント経由で並行に呼ばれるため、
// 複数goroutineから同時に呼んでも安全であることを確認する（-race検出対象）。
func TestGenerateConcurrent(t *testing.T) {
	catalog := config.DefaultCatalog()
	service := NewDatasetService(catalog, rand.New(rand.NewSource(42)))

	expected := len(catalog.ProductNames()) * 12 * samplesPerMonthPerProduct

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rows := service.Generate()
			assert.Equal(t, expected, len(rows))
		}()
	}
	wg.Wait()
}

func TestGenerateEmptyCatalog(t *testing.T) {
	catalog := config.NewCatalog(nil, map[string]config.CategorySpec{})
	service := NewDatasetService(catalog, rand.New(rand.NewSource(1)))

	rows := service.Generate()
	assert.Empty(t, rows)
}
