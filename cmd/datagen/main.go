package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	config "retail-pricing-api/configs"
	"retail-pricing-api/pkg/services"

	"github.com/joho/godotenv"
)

// データセットをファイルへ書き出すオフラインツール。
// サーバーは起動時に毎回生成するため通常は不要だが、
// 外部分析やモデル比較のために同じ分布のスナップショットを残せる。
func main() {
	output := flag.String("o", "extended_retail_data.csv", "出力ファイルパス（.csv または .xlsx）")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.LoadConfig()
	seed := cfg.DatasetSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	catalog := config.DefaultCatalog()
	datasetService := services.NewDatasetService(catalog, rand.New(rand.NewSource(seed)))

	log.Printf("🚀 合成データセットを生成します（seed=%d）...", seed)
	rows := datasetService.Generate()

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("出力ファイルの作成に失敗: %v", err)
	}
	defer f.Close()

	switch {
	case strings.HasSuffix(*output, ".xlsx"):
		err = services.WriteDatasetXLSX(f, rows)
	default:
		err = services.WriteDatasetCSV(f, rows)
	}
	if err != nil {
		log.Fatalf("データセットの書き出しに失敗: %v", err)
	}

	log.Printf("✅ %d行のデータセットを %s に書き出しました", len(rows), *output)
}
