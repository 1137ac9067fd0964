package siteconfig

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const supplierSheetHeader = "サイト名,URLパターン（カンマ区切り）,価格セレクタ（カンマ区切り）,価格除外セレクタ（カンマ区切り）,在庫セレクタ（カンマ区切り）,在庫ありキーワード（カンマ区切り）,売り切れキーワード（カンマ区切り）,有効フラグ"

func TestLoadCSV(t *testing.T) {
	csv := supplierSheetHeader + "\n" +
		"テストショップ,testshop.jp,.price,[class*='Recommend'],.stock,在庫あり,売り切れ,有効\n" +
		"無効ショップ,disabled.jp,.price,,,,,無効\n" +
		"メルカリ,\"mercari.com,jp.mercari.com\",\"[data-testid='price'],.item-price\",,,購入手続きへ,売り切れ,有効\n"

	configs, err := LoadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, configs, 2)

	first := configs[0]
	assert.Equal(t, "テストショップ", first.Name)
	assert.Equal(t, []string{"testshop.jp"}, first.URLPatterns)
	assert.Equal(t, []string{".price"}, first.PriceSelectors)
	assert.Equal(t, []string{"[class*='Recommend']"}, first.PriceExcludeSelectors)
	assert.Equal(t, []string{"在庫あり"}, first.InStockKeywords)

	second := configs[1]
	assert.Equal(t, "メルカリ", second.Name)
	assert.Equal(t, []string{"mercari.com", "jp.mercari.com"}, second.URLPatterns)
	assert.Equal(t, []string{"[data-testid='price']", ".item-price"}, second.PriceSelectors)
}

func TestLoadCSVSkipsInvalidRows(t *testing.T) {
	// A row without URL patterns fails validation but must not poison the load.
	csv := supplierSheetHeader + "\n" +
		"パターンなし,,.price,,,,,有効\n" +
		"正常ショップ,ok.jp,.price,,,,,有効\n"

	configs, err := LoadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "正常ショップ", configs[0].Name)
}

func TestLoadCSVRejectsWrongSheet(t *testing.T) {
	csv := "商品名,価格\nテスト,1000\n"

	_, err := LoadCSV(strings.NewReader(csv))
	assert.ErrorIs(t, err, ErrNotSupplierSheet)
}

func TestLoadCSVStripsBOM(t *testing.T) {
	csv := "\uFEFF" + supplierSheetHeader + "\n" +
		"ショップ,shop.jp,.price,,,,,有効\n"

	configs, err := LoadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, configs, 1)
}

func TestLoadCSVEmptyBody(t *testing.T) {
	configs, err := LoadCSV(strings.NewReader(supplierSheetHeader + "\n"))
	require.NoError(t, err)
	assert.Empty(t, configs)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList("a, b"))
	assert.Equal(t, []string{"a"}, splitList("a,,  "))
	assert.Nil(t, splitList(""))
}
