package sheet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ysugihara/inventory-scraper/internal/models"
)

func sampleRows() []models.Row {
	return []models.Row{
		{SourceURL: "https://example.jp/item/1", Price: 4800, Stock: models.StockInStock, Timestamp: "2026-08-29 12:00:00"},
		{SourceURL: "https://example.jp/item/2", Price: 0, Stock: models.StockOutOfStock, Timestamp: "2026-08-29 12:00:05"},
		{SourceURL: "https://example.jp/item/3", Price: models.PriceNotFound, Stock: models.StockUnknown, Timestamp: "2026-08-29 12:00:10"},
	}
}

func TestRender(t *testing.T) {
	content, err := Render(sampleRows())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "仕入れ元URL,仕入れ価格,在庫ステータス,最終更新日時", lines[0])
	assert.Equal(t, "https://example.jp/item/1,4800,在庫あり,2026-08-29 12:00:00", lines[1])
	assert.Equal(t, "https://example.jp/item/2,0,売り切れ,2026-08-29 12:00:05", lines[2])
	assert.Equal(t, "https://example.jp/item/3,-1,不明,2026-08-29 12:00:10", lines[3])
}

func TestRenderKeepsOneRowPerInput(t *testing.T) {
	rows := sampleRows()
	content, err := Render(rows)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	assert.Len(t, lines, len(rows)+1)
}

func TestRenderEmpty(t *testing.T) {
	content, err := Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "仕入れ元URL,仕入れ価格,在庫ステータス,最終更新日時\n", content)
}

func TestWriteFileAddsBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.csv")
	require.NoError(t, WriteFile(path, sampleRows()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\uFEFF"))
	assert.Contains(t, string(data), "仕入れ元URL")
}
