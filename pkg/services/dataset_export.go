package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"retail-pricing-api/pkg/models"

	"github.com/xuri/excelize/v2"
)

// datasetHeader は出力ファイルの列順です。学習時の特徴量順と揃えています。
var datasetHeader = []string{
	"product_name", "product_category", "promotion", "unit_price",
	"comp_1", "comp_2", "comp_3", "holiday", "weekend", "month", "qty",
}

// WriteDatasetCSV は学習データをCSV形式で書き出します。
func WriteDatasetCSV(w io.Writer, rows []models.TrainingRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(datasetHeader); err != nil {
		return fmt.Errorf("CSVヘッダーの書き込みに失敗: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.ProductName,
			row.ProductCategory,
			strconv.Itoa(row.Promotion),
			strconv.FormatFloat(row.UnitPrice, 'f', -1, 64),
			strconv.FormatFloat(row.Comp1, 'f', -1, 64),
			strconv.FormatFloat(row.Comp2, 'f', -1, 64),
			strconv.FormatFloat(row.Comp3, 'f', -1, 64),
			strconv.Itoa(row.Holiday),
			strconv.Itoa(row.Weekend),
			strconv.Itoa(row.Month),
			strconv.Itoa(row.Qty),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("CSV行の書き込みに失敗: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteDatasetXLSX は学習データをExcelワークブックとして書き出します。
func WriteDatasetXLSX(w io.Writer, rows []models.TrainingRow) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	for col, name := range datasetHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.ProductName, row.ProductCategory, row.Promotion, row.UnitPrice,
			row.Comp1, row.Comp2, row.Comp3, row.Holiday, row.Weekend, row.Month, row.Qty,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("XLSXの書き込みに失敗: %w", err)
	}
	return nil
}
