package services

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"retail-pricing-api/pkg/models"
)

var (
	// ErrModelNotTrained 学習完了前に予測が呼ばれた場合のエラー
	ErrModelNotTrained = errors.New("model is not trained yet")
	// ErrEmptyTrainingSet 学習データが0行の場合のエラー
	ErrEmptyTrainingSet = errors.New("training dataset is empty")
)

// PricingModelService は需要を予測する多変量線形回帰モデルです。
// 起動時に一度だけ学習し、以降は読み取り専用です。学習完了はatomicフラグで
// 公開されるため、複数のリクエストから安全に並行して予測を呼び出せます。
type PricingModelService struct {
	encoder *FeatureEncoder
	coef    []float64
	trained atomic.Bool
}

// NewPricingModelService 新しい回帰モデルサービスを作成
func NewPricingModelService(encoder *FeatureEncoder) *PricingModelService {
	return &PricingModelService{
		encoder: encoder,
	}
}

// IsReady は学習が完了しているかを返します。
func (s *PricingModelService) IsReady() bool {
	return s.trained.Load()
}

// Train は最小二乗法で係数ベクトルを当てはめます。
// 学習データが空、または特徴ベクトル長が不整合の場合はエラーを返し、
// 準備完了フラグは立てません。
func (s *PricingModelService) Train(rows []models.TrainingRow) error {
	if len(rows) == 0 {
		return ErrEmptyTrainingSet
	}

	k := s.encoder.VectorLength()
	n := len(rows)

	X := make([][]float64, n)
	y := make([]float64, n)
	for i, row := range rows {
		features := s.encoder.Encode(row.Observation())
		if len(features) != k {
			return fmt.Errorf("学習データ%d行目の特徴ベクトル長が不正です: got %d, want %d", i, len(features), k)
		}
		X[i] = features
		y[i] = float64(row.Qty)
	}

	// 正規方程式 X'X beta = X'y を構築
	xtx := make([][]float64, k)
	for i := 0; i < k; i++ {
		xtx[i] = make([]float64, k)
	}
	xty := make([]float64, k)
	for t := 0; t < n; t++ {
		for i := 0; i < k; i++ {
			xi := X[t][i]
			if xi == 0 {
				continue
			}
			for j := i; j < k; j++ {
				xtx[i][j] += xi * X[t][j]
			}
			xty[i] += xi * y[t]
		}
	}
	// 対称性で下三角を埋める
	for i := 0; i < k; i++ {
		for j := 0; j < i; j++ {
			xtx[i][j] = xtx[j][i]
		}
	}

	// one-hotブロック間の完全な共線性でX'Xは特異になるため、
	// トレースに比例した微小値を対角に加えてCholesky分解を安定化する。
	var trace float64
	for i := 0; i < k; i++ {
		trace += xtx[i][i]
	}
	jitter := 1e-9 * trace / float64(k)
	for i := 0; i < k; i++ {
		xtx[i][i] += jitter
	}

	beta, err := solveSymmetric(xtx, xty)
	if err != nil {
		return fmt.Errorf("正規方程式の求解に失敗: %w", err)
	}

	s.coef = beta
	s.trained.Store(true)
	return nil
}

// Predict は観測値に対する需要予測を返します。
// 線形フィットが負に外挿しても需要は0でクランプされます。
func (s *PricingModelService) Predict(obs models.Observation) (float64, error) {
	if !s.trained.Load() {
		return 0, ErrModelNotTrained
	}

	features := s.encoder.Encode(obs)
	var demand float64
	for i, c := range s.coef {
		demand += c * features[i]
	}

	return math.Max(0, demand), nil
}

// solveSymmetric は対称正定値行列AについてA*x=bをCholesky分解で解きます。
func solveSymmetric(A [][]float64, b []float64) ([]float64, error) {
	n := len(A)
	if n == 0 || len(b) != n {
		return nil, errors.New("invalid system dimensions")
	}

	// AをLへコピー
	L := make([][]float64, n)
	for i := 0; i < n; i++ {
		L[i] = make([]float64, n)
		copy(L[i], A[i])
	}

	// Cholesky分解
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			var sum float64
			for k := 0; k < j; k++ {
				sum += L[i][k] * L[j][k]
			}
			if i == j {
				val := L[i][i] - sum
				if val <= 0 {
					return nil, errors.New("matrix is not positive definite")
				}
				L[i][j] = math.Sqrt(val)
			} else {
				L[i][j] = (L[i][j] - sum) / L[j][j]
			}
		}
		for j := i + 1; j < n; j++ {
			L[i][j] = 0
		}
	}

	// 前進代入
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < i; j++ {
			sum += L[i][j] * y[j]
		}
		y[i] = (b[i] - sum) / L[i][i]
	}

	// 後退代入
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		var sum float64
		for j := i + 1; j < n; j++ {
			sum += L[j][i] * x[j]
		}
		x[i] = (y[i] - sum) / L[i][i]
	}

	return x, nil
}
