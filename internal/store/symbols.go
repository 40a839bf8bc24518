package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Symbol is one configured instrument: the ticker passed verbatim to the
// data source plus a human-readable display name.
type Symbol struct {
	Ticker string
	Name   string
}

// LoadSymbols reads the symbol list CSV. The file must have a header row
// containing a Ticker column; a Name column is optional. An unreadable or
// empty list is an error (the batch must not start without it).
func LoadSymbols(path string) ([]Symbol, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open symbol list: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read symbol list: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("symbol list %s is empty", path)
	}

	tickerCol, nameCol := -1, -1
	for i, h := range records[0] {
		switch strings.TrimSpace(h) {
		case "Ticker":
			tickerCol = i
		case "Name":
			nameCol = i
		}
	}
	if tickerCol < 0 {
		return nil, fmt.Errorf("symbol list %s has no Ticker column", path)
	}

	var symbols []Symbol
	for _, rec := range records[1:] {
		if tickerCol >= len(rec) {
			continue
		}
		ticker := strings.TrimSpace(rec[tickerCol])
		if ticker == "" {
			continue
		}
		s := Symbol{Ticker: ticker}
		if nameCol >= 0 && nameCol < len(rec) {
			s.Name = strings.TrimSpace(rec[nameCol])
		}
		symbols = append(symbols, s)
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("symbol list %s has no tickers", path)
	}
	return symbols, nil
}
