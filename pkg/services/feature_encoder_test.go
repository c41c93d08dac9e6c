package services

import (
	"testing"

	config "retail-pricing-api/configs"
	"retail-pricing-api/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestFeatureEncoderVectorLength(t *testing.T) {
	catalog := config.DefaultCatalog()
	encoder := NewFeatureEncoder(catalog)

	// 全商品 + 全カテゴリ + 数値特徴量8個
	expected := len(catalog.ProductNames()) + len(catalog.CategoryNames()) + numericFeatureCount
	assert.Equal(t, expected, encoder.VectorLength())
}

func TestFeatureEncoderOneHotBlocks(t *testing.T) {
	catalog := config.DefaultCatalog()
	encoder := NewFeatureEncoder(catalog)

	products := catalog.ProductNames()
	categories := catalog.CategoryNames()

	obs := models.Observation{
		ProductName:     products[0],
		ProductCategory: categories[0],
	}
	features := encoder.Encode(obs)

	// 商品one-hotブロックは先頭商品の位置だけ1
	var productOnes int
	for i := 0; i < len(products); i++ {
		if features[i] == 1 {
			productOnes++
			assert.Equal(t, 0, i)
		}
	}
	assert.Equal(t, 1, productOnes)

	// カテゴリone-hotブロックも同様
	var categoryOnes int
	for i := 0; i < len(categories); i++ {
		if features[len(products)+i] == 1 {
			categoryOnes++
			assert.Equal(t, 0, i)
		}
	}
	assert.Equal(t, 1, categoryOnes)
}

func TestFeatureEncoderNumericOrder(t *testing.T) {
	catalog := config.DefaultCatalog()
	encoder := NewFeatureEncoder(catalog)

	obs := models.Observation{
		ProductName:     "iPhone 15 Pro",
		ProductCategory: "Smartphones & Tablets",
		Promotion:       1,
		UnitPrice:       999.5,
		Comp1:           950,
		Comp2:           1000,
		Comp3:           1050,
		Holiday:         1,
		Weekend:         0,
		Month:           7,
	}
	features := encoder.Encode(obs)

	offset := len(catalog.ProductNames()) + len(catalog.CategoryNames())
	assert.Equal(t, []float64{1, 999.5, 950, 1000, 1050, 1, 0, 7}, features[offset:])
}

// 未知の商品名・カテゴリ名はエラーにならず全ゼロブロックへ縮退する。
func TestFeatureEncoderUnknownNames(t *testing.T) {
	catalog := config.DefaultCatalog()
	encoder := NewFeatureEncoder(catalog)

	obs := models.Observation{
		ProductName:     "存在しない商品",
		ProductCategory: "存在しないカテゴリ",
		UnitPrice:       100,
		Month:           1,
	}
	features := encoder.Encode(obs)

	assert.Equal(t, encoder.VectorLength(), len(features))

	blockEnd := len(catalog.ProductNames()) + len(catalog.CategoryNames())
	for i := 0; i < blockEnd; i++ {
		assert.Zero(t, features[i], "one-hotブロックは全ゼロのはず (index %d)", i)
	}

	// 数値特徴量はそのまま残る
	assert.Equal(t, 100.0, features[blockEnd+1])
}

// 未指定の数値フィールドはゼロ埋めされ、エラーにはならない。
func TestFeatureEncoderPartialObservation(t *testing.T) {
	catalog := config.DefaultCatalog()
	encoder := NewFeatureEncoder(catalog)

	features := encoder.Encode(models.Observation{ProductName: "iPad Air"})

	offset := len(catalog.ProductNames()) + len(catalog.CategoryNames())
	for i := offset; i < len(features); i++ {
		assert.Zero(t, features[i])
	}
}
