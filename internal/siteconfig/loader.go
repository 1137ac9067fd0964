package siteconfig

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Supplier-master sheet column headers. Multi-valued cells are comma-joined.
const (
	colName             = "サイト名"
	colURLPatterns      = "URLパターン（カンマ区切り）"
	colPriceSelectors   = "価格セレクタ（カンマ区切り）"
	colExcludeSelectors = "価格除外セレクタ（カンマ区切り）"
	colStockSelectors   = "在庫セレクタ（カンマ区切り）"
	colInStockKeywords  = "在庫ありキーワード（カンマ区切り）"
	colOutStockKeywords = "売り切れキーワード（カンマ区切り）"
	colActiveFlag       = "有効フラグ"

	activeFlagValue = "有効"
)

// ErrNotSupplierSheet is returned when the CSV header does not carry the
// supplier-master columns, e.g. when the export URL pointed at the wrong tab.
var ErrNotSupplierSheet = errors.New("siteconfig: csv is not a supplier master sheet")

var validate = validator.New()

// LoadCSV parses the supplier-master configuration sheet. Only rows flagged
// active are registered; rows failing validation are logged and skipped rather
// than failing the whole load.
func LoadCSV(r io.Reader) ([]*SiteConfig, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read config sheet header: %w", err)
	}
	stripBOM(header)

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{colName, colURLPatterns, colPriceSelectors} {
		if _, ok := cols[required]; !ok {
			return nil, ErrNotSupplierSheet
		}
	}

	logger := slog.Default().With("component", "siteconfig")
	var configs []*SiteConfig

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read config sheet row: %w", err)
		}

		field := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		if field(colActiveFlag) != activeFlagValue {
			continue
		}
		name := field(colName)
		if name == "" {
			continue
		}

		cfg := &SiteConfig{
			Name:                  name,
			URLPatterns:           splitList(field(colURLPatterns)),
			PriceSelectors:        splitList(field(colPriceSelectors)),
			PriceExcludeSelectors: splitList(field(colExcludeSelectors)),
			StockSelectors:        splitList(field(colStockSelectors)),
			InStockKeywords:       splitList(field(colInStockKeywords)),
			OutOfStockKeywords:    splitList(field(colOutStockKeywords)),
		}

		if err := validate.Struct(cfg); err != nil {
			logger.Warn("skipping invalid site config row", "site", name, "error", err)
			continue
		}
		configs = append(configs, cfg)
	}

	return configs, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func stripBOM(header []string) {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
}
