package services

import (
	"math"
	"math/rand"
	"sync"

	config "retail-pricing-api/configs"
	"retail-pricing-api/pkg/models"
)

// 1商品・1か月あたりのサンプル数
const samplesPerMonthPerProduct = 12

// DatasetService は価格弾力性を織り込んだ合成販売データを生成するサービスです。
// 乱数源は外部から注入します。テストでは固定シード、運用では時刻シードを渡します。
// *rand.Randは並行アクセスに対して安全ではないため、mutexで保護します。
type DatasetService struct {
	catalog *config.Catalog
	mu      sync.Mutex
	rng     *rand.Rand
}

// NewDatasetService 新しい合成データ生成サービスを作成
func NewDatasetService(catalog *config.Catalog, rng *rand.Rand) *DatasetService {
	return &DatasetService{
		catalog: catalog,
		rng:     rng,
	}
}

// Generate はカタログ全商品について12か月×12サンプルの学習データを生成します。
// 出力サイズは |商品数|×12×12 行。カタログが空の場合は空スライスを返します。
// 複数のHTTPリクエストから同時に呼ばれる可能性があるため、乱数源を握ったまま実行します。
func (s *DatasetService) Generate() []models.TrainingRow {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows []models.TrainingRow

	for _, category := range s.catalog.CategoryNames() {
		spec, ok := s.catalog.Spec(category)
		if !ok {
			continue
		}
		pmin, pmax := spec.PriceMin, spec.PriceMax

		for _, product := range spec.Products {
			// 商品ごとの基準パラメータ
			basePrice := s.uniform(pmin*1.1, pmax*0.9)
			elasticity := s.uniform(0.8, 2.5)
			baseDemandLevel := float64(1000 + s.rng.Intn(1500)) // [1000, 2500)

			for month := 1; month <= 12; month++ {
				seasonal := 1.0 + 0.25*math.Sin(2*math.Pi*float64(month-1)/12.0)

				for i := 0; i < samplesPerMonthPerProduct; i++ {
					unitPrice := clip(s.normal(basePrice, basePrice*0.15), pmin, pmax)

					promotion := s.bernoulli(0.3)
					holiday := s.bernoulli(0.12)
					weekend := s.bernoulli(0.35)

					comp1 := unitPrice * s.uniform(0.85, 1.15)
					comp2 := unitPrice * s.uniform(0.85, 1.15)
					comp3 := unitPrice * s.uniform(0.85, 1.15)

					demand := baseDemandLevel*seasonal -
						elasticity*unitPrice +
						(comp1+comp2+comp3)*0.03 +
						float64(promotion)*250 + float64(holiday)*150 + float64(weekend)*70 +
						s.normal(0, 50)

					qty := int(math.Round(demand))
					if qty < 0 {
						qty = 0
					}

					rows = append(rows, models.TrainingRow{
						ProductName:     product,
						ProductCategory: category,
						Promotion:       promotion,
						UnitPrice:       unitPrice,
						Comp1:           comp1,
						Comp2:           comp2,
						Comp3:           comp3,
						Holiday:         holiday,
						Weekend:         weekend,
						Month:           month,
						Qty:             qty,
					})
				}
			}
		}
	}

	return rows
}

// normal はBox-Muller変換で正規乱数を生成します。
// uは対数の定義域エラーを避けるため0を除外します。
func (s *DatasetService) normal(mean, stdDev float64) float64 {
	u := 1 - s.rng.Float64() // (0, 1]
	v := s.rng.Float64()
	z := math.Sqrt(-2.0*math.Log(u)) * math.Cos(2.0*math.Pi*v)
	return z*stdDev + mean
}

// uniform は[lo, hi)の一様乱数を生成します。
func (s *DatasetService) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// bernoulli は確率pで1を返すベルヌーイ試行です。
func (s *DatasetService) bernoulli(p float64) int {
	if s.rng.Float64() < p {
		return 1
	}
	return 0
}

// clip は値を[min, max]に収めます。
func clip(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
