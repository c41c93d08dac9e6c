package services

import (
	"bytes"
	"encoding/csv"
	"testing"

	"retail-pricing-api/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func exportTestRows() []models.TrainingRow {
	return []models.TrainingRow{
		{
			ProductName:     "Test Product",
			ProductCategory: "Test Category",
			Promotion:       1,
			UnitPrice:       123.45,
			Comp1:           110,
			Comp2:           120,
			Comp3:           130,
			Holiday:         0,
			Weekend:         1,
			Month:           3,
			Qty:             1500,
		},
		{
			ProductName:     "Other Product",
			ProductCategory: "Test Category",
			UnitPrice:       200,
			Month:           12,
			Qty:             800,
		},
	}
}

func TestWriteDatasetCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteDatasetCSV(&buf, exportTestRows())
	assert.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)

	// ヘッダー + 2行
	assert.Len(t, records, 3)
	assert.Equal(t, datasetHeader, records[0])
	assert.Equal(t, "Test Product", records[1][0])
	assert.Equal(t, "1500", records[1][10])
	assert.Equal(t, "12", records[2][9])
}

func TestWriteDatasetXLSX(t *testing.T) {
	var buf bytes.Buffer
	err := WriteDatasetXLSX(&buf, exportTestRows())
	assert.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	assert.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Sheet1", "A1")
	assert.NoError(t, err)
	assert.Equal(t, "product_name", header)

	product, err := f.GetCellValue("Sheet1", "A2")
	assert.NoError(t, err)
	assert.Equal(t, "Test Product", product)

	qty, err := f.GetCellValue("Sheet1", "K3")
	assert.NoError(t, err)
	assert.Equal(t, "800", qty)
}
