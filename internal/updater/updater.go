package updater

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ysugihara/inventory-scraper/internal/metrics"
)

// maxChunkSize keeps each POST comfortably inside the web-app's payload
// limit. Conservative on purpose: a rejected oversized chunk loses rows.
const maxChunkSize = 50000

var (
	// ErrHTMLResponse means the endpoint answered with an error page instead
	// of its JSON envelope, typically a stale deployment.
	ErrHTMLResponse = errors.New("updater: endpoint returned an HTML error page")
	// ErrUpdateFailed carries the endpoint's own failure report.
	ErrUpdateFailed = errors.New("updater: endpoint reported failure")
)

// Response is the update confirmation envelope the endpoint reports back.
type Response struct {
	Success           bool   `json:"success"`
	UpdateCount       int    `json:"updateCount"`
	PriceUpdateCount  int    `json:"priceUpdateCount"`
	StatusUpdateCount int    `json:"statusUpdateCount"`
	DateUpdateCount   int    `json:"dateUpdateCount"`
	NotFoundCount     int    `json:"notFoundCount"`
	Error             string `json:"error"`
}

// Updater pushes the result CSV to the spreadsheet's web-app endpoint.
type Updater struct {
	endpoint string
	http     *http.Client
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func New(endpoint string, m *metrics.Metrics) *Updater {
	return &Updater{
		endpoint: endpoint,
		http: &http.Client{
			Timeout: 5 * time.Minute,
		},
		metrics: m,
		logger:  slog.Default().With("component", "updater"),
	}
}

// Send delivers the whole result CSV, chunking when the payload exceeds the
// size threshold. A chunk that fails to send is logged and skipped; the
// remaining chunks still go out. Only an empty payload or a single-shot
// failure is returned as an error.
func (u *Updater) Send(ctx context.Context, csvContent string) error {
	if strings.TrimSpace(csvContent) == "" {
		u.logger.Info("nothing to send")
		return nil
	}

	dataRows := len(strings.Split(strings.TrimRight(csvContent, "\n"), "\n")) - 1
	u.logger.Info("sending results", "rows", dataRows, "bytes", len(csvContent))

	if len(csvContent) <= maxChunkSize {
		resp, err := u.post(ctx, csvContent)
		u.observe(err)
		if err != nil {
			return err
		}
		u.logConfirmation(resp)
		return nil
	}

	chunks := splitChunks(csvContent, maxChunkSize)
	u.logger.Info("payload exceeds chunk size, splitting", "chunks", len(chunks))

	for i, chunk := range chunks {
		resp, err := u.post(ctx, chunk)
		u.observe(err)
		if err != nil {
			u.logger.Error("chunk delivery failed, skipping", "chunk", i+1, "total", len(chunks), "error", err)
			continue
		}
		u.logger.Info("chunk delivered", "chunk", i+1, "total", len(chunks))
		u.logConfirmation(resp)
	}
	return nil
}

func (u *Updater) observe(err error) {
	if err != nil {
		u.metrics.ObserveChunk("failed")
	} else {
		u.metrics.ObserveChunk("sent")
	}
}

func (u *Updater) post(ctx context.Context, csvContent string) (*Response, error) {
	payload, err := json.Marshal(map[string]string{"csvData": csvContent})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to post update: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read update response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("update endpoint returned status %d", resp.StatusCode)
	}

	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "<!DOCTYPE html") || strings.HasPrefix(trimmed, "<html") {
		return nil, fmt.Errorf("%w: %s", ErrHTMLResponse, truncate(trimmed, 200))
	}

	var parsed Response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode update response: %w", err)
	}
	if !parsed.Success {
		return &parsed, fmt.Errorf("%w: %s", ErrUpdateFailed, parsed.Error)
	}
	return &parsed, nil
}

func (u *Updater) logConfirmation(resp *Response) {
	if resp == nil {
		return
	}
	u.logger.Info("update confirmed",
		"updated", resp.UpdateCount,
		"priceUpdates", resp.PriceUpdateCount,
		"statusUpdates", resp.StatusUpdateCount,
		"dateUpdates", resp.DateUpdateCount,
		"unmatched", resp.NotFoundCount,
	)
	if resp.NotFoundCount > 0 {
		u.logger.Warn("some result URLs did not match any sheet row", "unmatched", resp.NotFoundCount)
	}
}

// splitChunks divides the CSV into row-count chunks computed from the total
// byte size, each retaining the header so every chunk is independently valid.
func splitChunks(csvContent string, maxSize int) []string {
	lines := strings.Split(strings.TrimRight(csvContent, "\n"), "\n")
	if len(lines) < 2 {
		return []string{csvContent}
	}

	header := lines[0]
	dataLines := lines[1:]

	chunkCount := (len(csvContent) + maxSize - 1) / maxSize
	if chunkCount < 1 {
		chunkCount = 1
	}
	linesPerChunk := len(dataLines) / chunkCount
	if linesPerChunk < 1 {
		linesPerChunk = 1
	}

	var chunks []string
	for i := 0; i < len(dataLines); i += linesPerChunk {
		end := i + linesPerChunk
		if end > len(dataLines) {
			end = len(dataLines)
		}
		chunk := header + "\n" + strings.Join(dataLines[i:end], "\n") + "\n"
		chunks = append(chunks, chunk)
	}
	return chunks
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
