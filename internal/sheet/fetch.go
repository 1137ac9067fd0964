package sheet

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Column carrying the supplier page URL in the inventory sheet.
const supplierURLColumn = "仕入れ元URL"

// ErrMissingURLColumn aborts the whole batch: without the URL column there is
// nothing to scrape.
var ErrMissingURLColumn = errors.New("sheet: supplier URL column not found")

// Client fetches published Google Sheets tabs as CSV over their export URL.
type Client struct {
	http      *http.Client
	userAgent string
	logger    *slog.Logger
}

func NewClient() *Client {
	return &Client{
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
		userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		logger:    slog.Default().With("component", "sheet"),
	}
}

// ExportURL builds the CSV export endpoint for one sheet tab.
func ExportURL(spreadsheetID, gid string) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv&gid=%s", spreadsheetID, gid)
}

// FetchCSV downloads one tab and returns its raw CSV body. An HTML body
// means the sheet answered with an error page rather than an export.
func (c *Client) FetchCSV(ctx context.Context, spreadsheetID, gid string) ([]byte, error) {
	url := ExportURL(spreadsheetID, gid)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/csv,*/*;q=0.8")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet export returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet body: %w", err)
	}

	if looksLikeHTML(body) {
		return nil, fmt.Errorf("sheet export returned an error page for gid %s", gid)
	}

	c.logger.Info("sheet tab fetched", "gid", gid, "bytes", len(body))
	return body, nil
}

// FetchSupplierURLs downloads the inventory tab and returns the non-empty
// supplier URLs in sheet order.
func (c *Client) FetchSupplierURLs(ctx context.Context, spreadsheetID, gid string) ([]string, error) {
	body, err := c.FetchCSV(ctx, spreadsheetID, gid)
	if err != nil {
		return nil, err
	}
	return ParseSupplierURLs(strings.NewReader(stripBOM(string(body))))
}

// ParseSupplierURLs extracts the supplier URL column from inventory CSV rows,
// skipping blank cells. Rows keep their sheet order.
func ParseSupplierURLs(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory header: %w", err)
	}

	urlCol := -1
	for i, h := range header {
		if strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")) == supplierURLColumn {
			urlCol = i
			break
		}
	}
	if urlCol < 0 {
		return nil, ErrMissingURLColumn
	}

	var urls []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read inventory row: %w", err)
		}
		if urlCol >= len(record) {
			continue
		}
		if url := strings.TrimSpace(record[urlCol]); url != "" {
			urls = append(urls, url)
		}
	}

	return urls, nil
}

func looksLikeHTML(body []byte) bool {
	head := strings.TrimSpace(string(body[:min(len(body), 256)]))
	headLower := strings.ToLower(head)
	return strings.HasPrefix(headLower, "<!doctype html") || strings.HasPrefix(headLower, "<html")
}

func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
