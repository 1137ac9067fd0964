package models

import (
	"time"
)

// StockStatus is the tri-state availability classification of a listing.
type StockStatus int

const (
	// StockUnknown means the page could not be classified.
	StockUnknown StockStatus = iota
	// StockInStock is the default state for a reachable product page.
	StockInStock
	// StockOutOfStock is authoritative: any sold-out signal wins.
	StockOutOfStock
)

// The spreadsheet columns carry Japanese literals; these are the exact
// strings the update endpoint matches against.
const (
	stockInStockLabel    = "在庫あり"
	stockOutOfStockLabel = "売り切れ"
	stockUnknownLabel    = "不明"
)

func (s StockStatus) String() string {
	switch s {
	case StockInStock:
		return stockInStockLabel
	case StockOutOfStock:
		return stockOutOfStockLabel
	default:
		return stockUnknownLabel
	}
}

// Sentinel prices. PriceNotFound means extraction ran but located no value;
// a zero price paired with StockOutOfStock means the page itself was confirmed
// gone (404-equivalent). Any positive value is a believed real price in whole yen.
const (
	PriceNotFound    = -1
	PriceUnavailable = 0
)

// Result is the outcome of scraping one product page. It is created once per
// URL and never mutated afterwards.
type Result struct {
	Price     int         `json:"price"`
	Stock     StockStatus `json:"stock"`
	Timestamp string      `json:"timestamp"`
}

// TimestampLayout matches the sheet's last-updated column format.
const TimestampLayout = "2006-01-02 15:04:05"

// NewResult stamps a result at completion time.
func NewResult(price int, stock StockStatus) Result {
	return Result{
		Price:     price,
		Stock:     stock,
		Timestamp: time.Now().Format(TimestampLayout),
	}
}

// Row is the unit persisted to the results sink: one per input URL,
// order-preserving with the input feed.
type Row struct {
	SourceURL string
	Price     int
	Stock     StockStatus
	Timestamp string
}

// NewRow binds a result to its source URL.
func NewRow(url string, r Result) Row {
	return Row{
		SourceURL: url,
		Price:     r.Price,
		Stock:     r.Stock,
		Timestamp: r.Timestamp,
	}
}
