package handlers

import (
	"bytes"
	"net/http"

	"retail-pricing-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// DatasetHandler 学習データセットの出力ハンドラー
type DatasetHandler struct {
	dataset *services.DatasetService
}

// NewDatasetHandler 新しいデータセットハンドラーを作成
func NewDatasetHandler(dataset *services.DatasetService) *DatasetHandler {
	return &DatasetHandler{
		dataset: dataset,
	}
}

// Export は合成データセットをCSVまたはXLSXでダウンロードさせます。
// formatクエリパラメータで形式を指定します（デフォルト: csv）。
func (dh *DatasetHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	rows := dh.dataset.Generate()

	var buf bytes.Buffer
	switch format {
	case "csv":
		if err := services.WriteDatasetCSV(&buf, rows); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "データセットの出力に失敗しました: " + err.Error(),
			})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="extended_retail_data.csv"`)
		c.Data(http.StatusOK, "text/csv", buf.Bytes())

	case "xlsx":
		if err := services.WriteDatasetXLSX(&buf, rows); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "データセットの出力に失敗しました: " + err.Error(),
			})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="extended_retail_data.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())

	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "未対応の形式です: " + format,
		})
	}
}
