package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ysugihara/inventory-scraper/internal/models"
)

// Result sheet columns, in upload order.
var resultHeader = []string{"仕入れ元URL", "仕入れ価格", "在庫ステータス", "最終更新日時"}

// Render serializes result rows as CSV text, header first, one row per input
// URL in input order.
func Render(rows []models.Row) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(resultHeader); err != nil {
		return "", fmt.Errorf("failed to write result header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.SourceURL,
			strconv.Itoa(row.Price),
			row.Stock.String(),
			row.Timestamp,
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write result row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush result csv: %w", err)
	}
	return buf.String(), nil
}

// WriteFile saves the result CSV with a UTF-8 BOM so the sheet opens cleanly
// in Excel.
func WriteFile(path string, rows []models.Row) error {
	content, err := Render(rows)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	data := append([]byte("\uFEFF"), content...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write result csv: %w", err)
	}
	return nil
}
